package llm

// SchemaName is the name the response_format registers the schema under.
const SchemaName = "rgi_schema"

// BuildRGISchema returns the extraction JSON Schema as a generic map. We
// pass it to the model as a structured-output constraint and also use it
// locally for advisory validation.
//
// additionalProperties is asymmetric on purpose: outer objects reject
// unknown keys, but person/value items inside acts stay lax. Existing
// consumers depend on that laxity, so tightening it would be a behavior
// change.
func BuildRGISchema() map[string]any {
	pessoaItems := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"nome":    map[string]any{"type": "string"},
			"relacao": map[string]any{"type": "string"},
			"cpf":     map[string]any{"type": "string"},
		},
	}
	valorItems := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"rotulo":    map[string]any{"type": "string"},
			"moeda":     map[string]any{"type": "string"},
			"valor_str": map[string]any{"type": "string"},
			"valor_num": map[string]any{"type": "number"},
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"document_metadata": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"matricula":           map[string]any{"type": "string"},
					"ficha":               map[string]any{"type": "string"},
					"cartorio":            map[string]any{"type": "string"},
					"oficio":              map[string]any{"type": "string"},
					"cidade":              map[string]any{"type": "string"},
					"uf":                  map[string]any{"type": "string"},
					"cnm":                 map[string]any{"type": "string"},
					"paginas_processadas": map[string]any{"type": "integer"},
					"observacoes":         map[string]any{"type": "string"},
				},
			},
			"imovel": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"identificacao": closedObject(map[string]any{
						"tipo":                 map[string]any{"type": "string"},
						"unidade":              map[string]any{"type": "string"},
						"bloco_torre":          map[string]any{"type": "string"},
						"pavimento":            map[string]any{"type": "string"},
						"edificio_condominio":  map[string]any{"type": "string"},
					}),
					"localizacao": closedObject(map[string]any{
						"logradouro":       map[string]any{"type": "string"},
						"numero":           map[string]any{"type": "string"},
						"complemento":      map[string]any{"type": "string"},
						"bairro":           map[string]any{"type": "string"},
						"distrito":         map[string]any{"type": "string"},
						"cidade":           map[string]any{"type": "string"},
						"uf":               map[string]any{"type": "string"},
						"cep":              map[string]any{"type": "string"},
						"lote":             map[string]any{"type": "string"},
						"quadra":           map[string]any{"type": "string"},
						"loteamento":       map[string]any{"type": "string"},
						"ponto_referencia": map[string]any{"type": "string"},
					}),
					"areas": closedObject(map[string]any{
						"area_privativa_str": map[string]any{"type": "string"},
						"area_privativa_m2":  map[string]any{"type": "number"},
						"area_total_str":     map[string]any{"type": "string"},
						"area_total_m2":      map[string]any{"type": "number"},
						"area_terreno_str":   map[string]any{"type": "string"},
						"area_terreno_m2":    map[string]any{"type": "number"},
						"fracao_ideal_str":   map[string]any{"type": "string"},
						"fracao_ideal_num":   map[string]any{"type": "number"},
					}),
					"dependencias": closedObject(map[string]any{
						"quartos":               map[string]any{"type": "string"},
						"suites":                map[string]any{"type": "string"},
						"banheiros":             map[string]any{"type": "string"},
						"lavabos":               map[string]any{"type": "string"},
						"salas":                 map[string]any{"type": "string"},
						"cozinha":               map[string]any{"type": "string"},
						"area_servico":          map[string]any{"type": "string"},
						"dependencia_empregada": map[string]any{"type": "string"},
						"outros":                map[string]any{"type": "string"},
					}),
					"vagas_garagem": closedObject(map[string]any{
						"quantidade":     map[string]any{"type": "string"},
						"tipo":           map[string]any{"type": "string"},
						"identificacoes": map[string]any{"type": "string"},
					}),
					"caracteristicas": closedObject(map[string]any{
						"posicao":             map[string]any{"type": "string"},
						"orientacao_solar":    map[string]any{"type": "string"},
						"vista":               map[string]any{"type": "string"},
						"estado_conservacao":  map[string]any{"type": "string"},
						"padrao_construtivo":  map[string]any{"type": "string"},
						"ano_construcao":      map[string]any{"type": "string"},
						"elevadores":          map[string]any{"type": "string"},
						"ocupacao":            map[string]any{"type": "string"},
						"uso":                 map[string]any{"type": "string"},
						"inscricao_municipal": map[string]any{"type": "string"},
					}),
					"descricao":               map[string]any{"type": "string"},
					"condominio_fracao_ideal": map[string]any{"type": "string"},
					"dimensoes":               map[string]any{"type": "string"},
					"confrontacoes":           map[string]any{"type": "string"},
				},
			},
			"proprietarios": map[string]any{
				"type": "array",
				"items": closedObject(map[string]any{
					"nome":           map[string]any{"type": "string"},
					"cpf":            map[string]any{"type": "string"},
					"rg":             map[string]any{"type": "string"},
					"nacionalidade":  map[string]any{"type": "string"},
					"estado_civil":   map[string]any{"type": "string"},
					"profissao":      map[string]any{"type": "string"},
					"regime_de_bens": map[string]any{"type": "string"},
					"conjuge":        map[string]any{"type": "string"},
					"quota_fracao":   map[string]any{"type": "string"},
					"observacoes":    map[string]any{"type": "string"},
				}),
			},
			"registros": map[string]any{
				"type": "array",
				"items": closedObject(map[string]any{
					"numero":   map[string]any{"type": "string"},
					"tipo":     map[string]any{"type": "string"},
					"data":     map[string]any{"type": "string"},
					"detalhes": map[string]any{"type": "string"},
					"pessoas_envolvidas": map[string]any{
						"type":  "array",
						"items": pessoaItems,
					},
					// compat with older outputs that produced this typo
					"pessoas_envovidas": map[string]any{
						"type":  "array",
						"items": pessoaItems,
					},
					"valores": map[string]any{
						"type":  "array",
						"items": valorItems,
					},
				}),
			},
			"valores_mencionados": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"moeda":     map[string]any{"type": "string"},
						"valor_str": map[string]any{"type": "string"},
						"valor_num": map[string]any{"type": "number"},
						"contexto":  map[string]any{"type": "string"},
						"pagina":    map[string]any{"type": "integer"},
					},
				},
			},
			"selos_e_custas": closedObject(map[string]any{
				"itbi":   map[string]any{"type": "string"},
				"guias":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"selos":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"custas": map[string]any{"type": "string"},
			}),
			"referencias": map[string]any{
				"type": "array",
				"items": closedObject(map[string]any{
					"pagina": map[string]any{"type": "integer"},
					"trecho": map[string]any{"type": "string"},
				}),
			},
			"confidence": map[string]any{
				"type":                 "object",
				"additionalProperties": true,
			},
		},
	}
}

// ResponseSchema wraps the schema the way the chat-completions
// response_format expects it. Enforcement stays non-strict.
func ResponseSchema() map[string]any {
	return map[string]any{
		"name":   SchemaName,
		"schema": BuildRGISchema(),
		"strict": false,
	}
}

func closedObject(props map[string]any) map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}
