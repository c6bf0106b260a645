// Package export renders a finished document record as an XLSX workbook:
// the tabular views the dashboard shows, in a file an appraiser can keep.
package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/koortimativa/rgi-extractor/internal/rgi"
)

// WorkbookXLSX returns an XLSX workbook (as bytes) for the given record,
// with one sheet per record group.
func WorkbookXLSX(rec *rgi.Record, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f := excelize.NewFile()

	if err := writeResumo(f, rec); err != nil {
		return nil, err
	}
	if err := writeProprietarios(f, rec.Proprietarios); err != nil {
		return nil, err
	}
	if err := writeRegistros(f, rec.Registros); err != nil {
		return nil, err
	}
	if err := writeValores(f, rec.ValoresMencionados); err != nil {
		return nil, err
	}

	// excelize starts every workbook with "Sheet1"; drop it once the real
	// sheets exist.
	_ = f.DeleteSheet("Sheet1")
	if idx, _ := f.GetSheetIndex("Resumo"); idx >= 0 {
		f.SetActiveSheet(idx)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	logger.Info("export.xlsx.ok",
		"proprietarios", len(rec.Proprietarios),
		"registros", len(rec.Registros),
		"valores", len(rec.ValoresMencionados),
		"bytes", buf.Len(),
	)
	return buf.Bytes(), nil
}

func newSheet(f *excelize.File, name string, headers []string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("new sheet %s: %w", name, err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func writeResumo(f *excelize.File, rec *rgi.Record) error {
	const sheet = "Resumo"
	if err := newSheet(f, sheet, []string{"Campo", "Valor"}); err != nil {
		return err
	}
	row := 2
	for _, k := range []string{"matricula", "ficha", "cartorio", "oficio", "cidade", "uf", "cnm", "paginas_processadas", "observacoes"} {
		v, ok := rec.DocumentMetadata[k]
		if !ok || v == nil || v == "" {
			continue
		}
		writeRow(f, sheet, row, []any{strings.ReplaceAll(k, "_", " "), fmt.Sprintf("%v", v)})
		row++
	}
	if descricao, ok := rec.Imovel["descricao"].(string); ok && descricao != "" {
		writeRow(f, sheet, row, []any{"descricao do imovel", descricao})
	}
	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "B", 80)
	return nil
}

func writeProprietarios(f *excelize.File, owners []rgi.Proprietario) error {
	const sheet = "Proprietarios"
	if err := newSheet(f, sheet, []string{"Nome", "CPF", "RG", "Estado Civil", "Regime de Bens", "Cônjuge", "Quota/Fração", "Nacionalidade", "Profissão", "Observações"}); err != nil {
		return err
	}
	for i, p := range owners {
		writeRow(f, sheet, i+2, []any{p.Nome, p.CPF, p.RG, p.EstadoCivil, p.RegimeDeBens, p.Conjuge, p.QuotaFracao, p.Nacionalidade, p.Profissao, p.Observacoes})
	}
	_ = f.SetColWidth(sheet, "A", "A", 32)
	return nil
}

func writeRegistros(f *excelize.File, regs []rgi.Registro) error {
	const sheet = "Registros"
	if err := newSheet(f, sheet, []string{"Número", "Tipo", "Data", "Detalhes", "Pessoas Envolvidas", "Valores"}); err != nil {
		return err
	}
	for i, r := range regs {
		pessoas := make([]string, 0, len(r.PessoasEnvolvidas))
		for _, p := range r.PessoasEnvolvidas {
			if p.Relacao != "" {
				pessoas = append(pessoas, p.Nome+" ("+p.Relacao+")")
			} else {
				pessoas = append(pessoas, p.Nome)
			}
		}
		valores := make([]string, 0, len(r.Valores))
		for _, v := range r.Valores {
			valores = append(valores, strings.TrimSpace(v.Rotulo+" "+v.Moeda+" "+v.ValorStr))
		}
		writeRow(f, sheet, i+2, []any{r.Numero, r.Tipo, r.Data, r.Detalhes, strings.Join(pessoas, "; "), strings.Join(valores, "; ")})
	}
	_ = f.SetColWidth(sheet, "D", "D", 60)
	return nil
}

func writeValores(f *excelize.File, vals []rgi.Valor) error {
	const sheet = "Valores"
	if err := newSheet(f, sheet, []string{"Moeda", "Valor", "Valor Numérico", "Página", "Contexto"}); err != nil {
		return err
	}
	for i, v := range vals {
		writeRow(f, sheet, i+2, []any{v.Moeda, v.ValorStr, v.ValorNum, v.Pagina, v.Contexto})
	}
	_ = f.SetColWidth(sheet, "E", "E", 60)
	return nil
}
