package rgi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fragmentWith(owners ...string) *Record {
	f := NewRecord()
	for _, n := range owners {
		f.Proprietarios = append(f.Proprietarios, Proprietario{Nome: n})
	}
	return f
}

func TestMergeAppendsArraysInBatchOrder(t *testing.T) {
	acc := NewRecord()
	Merge(acc, fragmentWith("A", "B"))
	Merge(acc, fragmentWith("C"))

	names := make([]string, 0, len(acc.Proprietarios))
	for _, p := range acc.Proprietarios {
		names = append(names, p.Nome)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestMergeInOrderAssociativity(t *testing.T) {
	// Merging [A,B] then [C] must equal [A] then [B] then [C] for array fields.
	left := NewRecord()
	Merge(left, fragmentWith("A", "B"))
	Merge(left, fragmentWith("C"))

	right := NewRecord()
	Merge(right, fragmentWith("A"))
	Merge(right, fragmentWith("B"))
	Merge(right, fragmentWith("C"))

	assert.Equal(t, left.Proprietarios, right.Proprietarios)
}

func TestMergeMetadataEmptyNeverOverwrites(t *testing.T) {
	acc := NewRecord()
	acc.DocumentMetadata["matricula"] = "12345"

	batch := NewRecord()
	batch.DocumentMetadata["matricula"] = ""
	batch.DocumentMetadata["cidade"] = "Niterói"
	Merge(acc, batch)

	assert.Equal(t, "12345", acc.DocumentMetadata["matricula"])
	assert.Equal(t, "Niterói", acc.DocumentMetadata["cidade"])
}

func TestMergeMetadataEmptyThenNonEmptySets(t *testing.T) {
	acc := NewRecord()
	batch := NewRecord()
	batch.DocumentMetadata["uf"] = "RJ"
	Merge(acc, batch)
	assert.Equal(t, "RJ", acc.DocumentMetadata["uf"])
}

func TestMergeImovelFirstNonEmptyWins(t *testing.T) {
	acc := NewRecord()
	first := NewRecord()
	first.Imovel["descricao"] = "apartamento 201"
	Merge(acc, first)

	second := NewRecord()
	second.Imovel["descricao"] = "outra descrição"
	second.Imovel["confrontacoes"] = "frente para a rua"
	Merge(acc, second)

	assert.Equal(t, "apartamento 201", acc.Imovel["descricao"])
	assert.Equal(t, "frente para a rua", acc.Imovel["confrontacoes"])
}

func TestMergeImovelSubObjectsAreAtomic(t *testing.T) {
	acc := NewRecord()
	first := NewRecord()
	first.Imovel["areas"] = map[string]any{"area_total_str": "80 m²"}
	Merge(acc, first)

	// A later, fuller areas object does not patch leaves into the held one.
	second := NewRecord()
	second.Imovel["areas"] = map[string]any{
		"area_total_str": "80 m²",
		"area_total_m2":  80.0,
	}
	Merge(acc, second)

	areas, ok := acc.Imovel["areas"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, areas, "area_total_m2")
}

func TestMergeSelosECustas(t *testing.T) {
	acc := NewRecord()

	first := NewRecord()
	first.SelosECustas = SelosECustas{ITBI: "R$ 1.000,00", Guias: []string{"guia 1"}, Selos: []string{}}
	Merge(acc, first)

	second := NewRecord()
	second.SelosECustas = SelosECustas{ITBI: "R$ 9.999,00", Guias: []string{"guia 2"}, Selos: []string{"selo A"}, Custas: "R$ 50,00"}
	Merge(acc, second)

	assert.Equal(t, "R$ 1.000,00", acc.SelosECustas.ITBI)
	assert.Equal(t, "R$ 50,00", acc.SelosECustas.Custas)
	assert.Equal(t, []string{"guia 1", "guia 2"}, acc.SelosECustas.Guias)
	assert.Equal(t, []string{"selo A"}, acc.SelosECustas.Selos)
}

func TestSetProcessedPagesOverwritesModelValue(t *testing.T) {
	acc := NewRecord()
	batch := NewRecord()
	batch.DocumentMetadata["paginas_processadas"] = 99
	Merge(acc, batch)

	acc.SetProcessedPages(4)
	assert.Equal(t, 4, acc.DocumentMetadata["paginas_processadas"])
}

func TestRecordJSONRoundTrip(t *testing.T) {
	rec := NewRecord()
	rec.DocumentMetadata["cartorio"] = "2º Ofício de Registro de Imóveis"
	rec.Imovel["descricao"] = "IMÓVEL - apartamento nº 201, com área de 80,00 m²"
	rec.Proprietarios = append(rec.Proprietarios, Proprietario{Nome: "José Conceição", CPF: "12345678909"})
	rec.Registros = append(rec.Registros, Registro{
		Numero:            "R-3",
		PessoasEnvolvidas: []Pessoa{{Nome: "Maria", Relacao: "herdeira"}},
	})
	rec.SetProcessedPages(2)

	first, err := json.Marshal(rec)
	require.NoError(t, err)

	var back Record
	require.NoError(t, json.Unmarshal(first, &back))
	second, err := json.Marshal(&back)
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
	assert.Contains(t, string(second), "José Conceição")
}
