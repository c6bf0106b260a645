package rgi

import (
	"fmt"
	"regexp"
)

const derivationMethod = "produto_medidas_lineares"

var nonDigits = regexp.MustCompile(`\D`)

// Finalize runs the post-merge passes on the accumulated record: legacy key
// migration, best-effort area derivation and owner CPF normalization.
func (r *Record) Finalize() {
	r.migrateLegacyKeys()
	r.deriveAreas()
	r.normalizeCPFs()
}

// migrateLegacyKeys moves the misspelled "pessoas_envovidas" act key onto
// the correct one. When an act already carries the correct key the legacy
// content is discarded rather than silently overwriting it; either way the
// misspelled key never survives into the final record.
func (r *Record) migrateLegacyKeys() {
	for i := range r.Registros {
		reg := &r.Registros[i]
		if len(reg.PessoasEnvovidas) > 0 && len(reg.PessoasEnvolvidas) == 0 {
			reg.PessoasEnvolvidas = reg.PessoasEnvovidas
		}
		reg.PessoasEnvovidas = nil
	}
}

// deriveAreas backfills missing numeric areas from linear measurements found
// in the free text. Total area may draw on the transcribed description; the
// terrain area uses only boundary and dimension text, since the description
// usually describes the unit rather than the lot. Every derived value is
// recorded under confidence.derived.areas so downstream consumers can tell
// read values from inferred ones.
func (r *Record) deriveAreas() {
	descricao := r.imovelText("descricao")
	confrontacoes := r.imovelText("confrontacoes")
	dimensoes := r.imovelText("dimensoes")

	if !r.hasAreaLeaf("area_total_m2") {
		if v, ok := InferArea(descricao, confrontacoes, dimensoes); ok {
			r.setDerivedArea("area_total_m2", "area_total_str", v)
		}
	}
	if !r.hasAreaLeaf("area_terreno_m2") {
		if v, ok := InferArea(confrontacoes, dimensoes); ok {
			r.setDerivedArea("area_terreno_m2", "area_terreno_str", v)
		}
	}
}

// normalizeCPFs strips every non-digit character from owner CPFs, e.g.
// "123.456.789-09" -> "12345678909". Absent CPFs stay absent.
func (r *Record) normalizeCPFs() {
	for i := range r.Proprietarios {
		if r.Proprietarios[i].CPF != "" {
			r.Proprietarios[i].CPF = nonDigits.ReplaceAllString(r.Proprietarios[i].CPF, "")
		}
	}
}

func (r *Record) imovelText(key string) string {
	s, _ := r.Imovel[key].(string)
	return s
}

// hasAreaLeaf checks the areas sub-object leaf-by-leaf, regardless of the
// atomic-per-key policy the merge applied above it.
func (r *Record) hasAreaLeaf(key string) bool {
	areas, _ := r.Imovel["areas"].(map[string]any)
	if areas == nil {
		return false
	}
	switch v := areas[key].(type) {
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return !isEmpty(areas[key])
}

func (r *Record) setDerivedArea(numKey, strKey string, v float64) {
	areas, _ := r.Imovel["areas"].(map[string]any)
	if areas == nil {
		areas = map[string]any{}
		r.Imovel["areas"] = areas
	}
	areas[numKey] = v
	// Only synthesize the textual value when the model did not read one.
	if isEmpty(areas[strKey]) {
		areas[strKey] = fmt.Sprintf("%.2f m² (inferida)", v)
	}

	derived, _ := r.Confidence["derived"].(map[string]any)
	if derived == nil {
		derived = map[string]any{}
		r.Confidence["derived"] = derived
	}
	derivedAreas, _ := derived["areas"].(map[string]any)
	if derivedAreas == nil {
		derivedAreas = map[string]any{}
		derived["areas"] = derivedAreas
	}
	derivedAreas[numKey] = derivationMethod
}
