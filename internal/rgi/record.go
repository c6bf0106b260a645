// Package rgi holds the document-level record for a Brazilian property
// registry ("Registro Geral de Imóveis") and the rules for building one
// record out of possibly-inconsistent per-batch model fragments.
package rgi

// Pessoa is a person involved in a registry act (heir, spouse, executor...).
type Pessoa struct {
	Nome    string `json:"nome,omitempty"`
	Relacao string `json:"relacao,omitempty"`
	CPF     string `json:"cpf,omitempty"`
}

// Valor is a monetary mention, either inside an act or document-wide.
type Valor struct {
	Rotulo   string  `json:"rotulo,omitempty"`
	Moeda    string  `json:"moeda,omitempty"`
	ValorStr string  `json:"valor_str,omitempty"`
	ValorNum float64 `json:"valor_num,omitempty"`
	Contexto string  `json:"contexto,omitempty"`
	Pagina   int     `json:"pagina,omitempty"`
}

// Proprietario is one owner entry, in document order.
type Proprietario struct {
	Nome          string `json:"nome,omitempty"`
	CPF           string `json:"cpf,omitempty"`
	RG            string `json:"rg,omitempty"`
	Nacionalidade string `json:"nacionalidade,omitempty"`
	EstadoCivil   string `json:"estado_civil,omitempty"`
	Profissao     string `json:"profissao,omitempty"`
	RegimeDeBens  string `json:"regime_de_bens,omitempty"`
	Conjuge       string `json:"conjuge,omitempty"`
	QuotaFracao   string `json:"quota_fracao,omitempty"`
	Observacoes   string `json:"observacoes,omitempty"`
}

// Registro is one registry act ("R-" registration or "AV-" annotation).
// PessoasEnvovidas is the misspelled key older model outputs used; it is
// accepted on input and always migrated to PessoasEnvolvidas before the
// record is returned.
type Registro struct {
	Numero            string   `json:"numero,omitempty"`
	Tipo              string   `json:"tipo,omitempty"`
	Data              string   `json:"data,omitempty"`
	Detalhes          string   `json:"detalhes,omitempty"`
	PessoasEnvolvidas []Pessoa `json:"pessoas_envolvidas,omitempty"`
	PessoasEnvovidas  []Pessoa `json:"pessoas_envovidas,omitempty"`
	Valores           []Valor  `json:"valores,omitempty"`
}

// SelosECustas accumulates stamps, payment slips and fee scalars.
type SelosECustas struct {
	ITBI   string   `json:"itbi,omitempty"`
	Guias  []string `json:"guias"`
	Selos  []string `json:"selos"`
	Custas string   `json:"custas,omitempty"`
}

// Referencia is a (page, excerpt) pair backing a critical field.
type Referencia struct {
	Pagina int    `json:"pagina,omitempty"`
	Trecho string `json:"trecho,omitempty"`
}

// Record is the top-level aggregate. It is owned by the merge loop while a
// run is in flight and must be treated as read-only once returned.
//
// DocumentMetadata and Imovel stay generic maps: the metadata merge is a
// shallow non-empty union and the imovel merge treats every top-level key as
// an atomic value, so typed fields would buy nothing there.
type Record struct {
	DocumentMetadata   map[string]any `json:"document_metadata"`
	Imovel             map[string]any `json:"imovel"`
	Proprietarios      []Proprietario `json:"proprietarios"`
	Registros          []Registro     `json:"registros"`
	ValoresMencionados []Valor        `json:"valores_mencionados"`
	SelosECustas       SelosECustas   `json:"selos_e_custas"`
	Referencias        []Referencia   `json:"referencias"`
	Confidence         map[string]any `json:"confidence"`
}

// NewRecord returns the empty accumulator a run starts from.
func NewRecord() *Record {
	return &Record{
		DocumentMetadata:   map[string]any{"paginas_processadas": 0},
		Imovel:             map[string]any{},
		Proprietarios:      []Proprietario{},
		Registros:          []Registro{},
		ValoresMencionados: []Valor{},
		SelosECustas:       SelosECustas{Guias: []string{}, Selos: []string{}},
		Referencias:        []Referencia{},
		Confidence:         map[string]any{},
	}
}

// isEmpty reports whether a decoded JSON value counts as absent for merge
// purposes: nil, empty string, empty array, empty object.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}
