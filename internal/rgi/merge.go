package rgi

// Merge folds one batch fragment into the accumulator. Rules, per field
// group:
//
//   - document_metadata: shallow union; a non-empty batch value overwrites or
//     adds, an empty one never clobbers what is already there.
//   - proprietarios, registros, valores_mencionados, referencias: append-only,
//     batch order after accumulator order.
//   - selos_e_custas: guias/selos concatenated, itbi/custas first-wins.
//   - imovel: atomic per top-level key, first non-empty value wins. Nested
//     sub-objects (localizacao, areas, ...) are whole values here; a later,
//     fuller "areas" cannot patch a single missing leaf. The derivation pass
//     compensates with its own leaf-level checks.
//
// paginas_processadas is deliberately not touched here; SetProcessedPages
// writes it exactly once after the last batch, overwriting anything the
// model reported.
func Merge(acc, batch *Record) {
	if batch == nil {
		return
	}

	for k, v := range batch.DocumentMetadata {
		if !isEmpty(v) {
			acc.DocumentMetadata[k] = v
		}
	}

	acc.Proprietarios = append(acc.Proprietarios, batch.Proprietarios...)
	acc.Registros = append(acc.Registros, batch.Registros...)
	acc.ValoresMencionados = append(acc.ValoresMencionados, batch.ValoresMencionados...)
	acc.Referencias = append(acc.Referencias, batch.Referencias...)

	acc.SelosECustas.Guias = append(acc.SelosECustas.Guias, batch.SelosECustas.Guias...)
	acc.SelosECustas.Selos = append(acc.SelosECustas.Selos, batch.SelosECustas.Selos...)
	if acc.SelosECustas.ITBI == "" && batch.SelosECustas.ITBI != "" {
		acc.SelosECustas.ITBI = batch.SelosECustas.ITBI
	}
	if acc.SelosECustas.Custas == "" && batch.SelosECustas.Custas != "" {
		acc.SelosECustas.Custas = batch.SelosECustas.Custas
	}

	for k, v := range batch.Imovel {
		if !isEmpty(v) && isEmpty(acc.Imovel[k]) {
			acc.Imovel[k] = v
		}
	}
}

// SetProcessedPages records the total number of pages actually sent to the
// model. Called once, after all batches.
func (r *Record) SetProcessedPages(total int) {
	r.DocumentMetadata["paginas_processadas"] = total
}
