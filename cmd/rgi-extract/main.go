// rgi-extract reads property-registry scans (PDF, JPG or PNG), runs the
// batched vision extraction and writes the merged record as JSON.
//
// Usage: rgi-extract [--model NAME] [--out PATH|-] [--xlsx PATH] [--dpi N] <path>...
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/koortimativa/rgi-extractor/internal/common"
	"github.com/koortimativa/rgi-extractor/internal/export"
	"github.com/koortimativa/rgi-extractor/internal/llm/openai"
	"github.com/koortimativa/rgi-extractor/internal/pdf"
	"github.com/koortimativa/rgi-extractor/internal/pipeline"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	model := flag.String("model", "", "model name (default from OPENAI_MODEL)")
	out := flag.String("out", "-", "output path, or - for stdout")
	xlsxOut := flag.String("xlsx", "", "also write an XLSX workbook to this path")
	dpi := flag.Int("dpi", 0, "rasterization DPI for PDF inputs (default from RENDER_DPI)")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: rgi-extract [--model NAME] [--out PATH|-] [--xlsx PATH] [--dpi N] <path>...")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if *model != "" {
		cfg.LLM.Model = *model
	}
	if *dpi > 0 {
		cfg.PDF.DPI = *dpi
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	sort.Strings(paths)

	ctx := context.Background()
	workDir, err := os.MkdirTemp("", "rgi-pages-*")
	if err != nil {
		logger.Error("create work dir", "error", err)
		os.Exit(1)
	}
	defer func() {
		if rerr := os.RemoveAll(workDir); rerr != nil {
			logger.Warn("cleanup failed", "dir", workDir, "error", rerr)
		}
	}()

	imagePaths, err := collectPages(ctx, cfg, paths, workDir, logger)
	if err != nil {
		logger.Error("prepare pages", "error", err)
		os.Exit(1)
	}

	client := openai.NewClient(openai.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, logger)

	ex := pipeline.New(client, cfg.Payload, cfg.LLM.MaxImagesPerCall, cfg.LLM.Timeout, logger)
	rec, err := ex.Run(ctx, pipeline.NumberPages(imagePaths))
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		logger.Error("encode record", "error", err)
		os.Exit(1)
	}

	if *out == "-" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			logger.Error("write stdout", "error", err)
			os.Exit(1)
		}
	} else {
		if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
			logger.Error("write output", "path", *out, "error", err)
			os.Exit(1)
		}
		fmt.Printf("[ok] JSON salvo em: %s\n", *out)
	}

	if *xlsxOut != "" {
		data, err := export.WorkbookXLSX(rec, logger)
		if err != nil {
			logger.Error("build workbook", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxOut, data, 0o644); err != nil {
			logger.Error("write workbook", "path", *xlsxOut, "error", err)
			os.Exit(1)
		}
		fmt.Printf("[ok] XLSX salvo em: %s\n", *xlsxOut)
	}
}

// collectPages expands PDF inputs into rendered page images and passes
// image inputs through as single pages, preserving the sorted input order.
func collectPages(ctx context.Context, cfg *common.Config, paths []string, workDir string, logger *slog.Logger) ([]string, error) {
	renderer := pdf.NewRenderer(cfg.PDF.Pdftoppm)
	var images []string
	for i, p := range paths {
		if !strings.EqualFold(filepath.Ext(p), ".pdf") {
			images = append(images, p)
			continue
		}
		n, err := pdf.PageCount(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		logger.Info("render.start", "file", p, "pages", n, "dpi", cfg.PDF.DPI)
		sub := filepath.Join(workDir, fmt.Sprintf("doc-%03d", i+1))
		if err := os.Mkdir(sub, 0o755); err != nil {
			return nil, err
		}
		pages, err := renderer.Render(ctx, p, cfg.PDF.DPI, sub)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		images = append(images, pages...)
	}
	return images, nil
}
