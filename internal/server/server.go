// Package server is the HTTP backend for the dashboard: a PDF comes in as a
// multipart upload, the finished record goes back as JSON (or as an XLSX
// workbook).
package server

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/koortimativa/rgi-extractor/internal/common"
	"github.com/koortimativa/rgi-extractor/internal/export"
	"github.com/koortimativa/rgi-extractor/internal/llm"
	"github.com/koortimativa/rgi-extractor/internal/pdf"
	"github.com/koortimativa/rgi-extractor/internal/pipeline"
)

// ExtractorFactory builds a model client for the model name chosen per
// request ("" means the configured default).
type ExtractorFactory func(model string) llm.BatchExtractor

// PageRenderer rasterizes a PDF into page-ordered image paths.
type PageRenderer interface {
	Render(ctx context.Context, pdfPath string, dpi int, workDir string) ([]string, error)
}

// Server wires the extraction pipeline behind HTTP handlers.
type Server struct {
	cfg       *common.Config
	factory   ExtractorFactory
	renderer  PageRenderer
	pageCount func(path string) (int, error)
	logger    *slog.Logger
}

// New builds a Server. renderer defaults to the pdftoppm renderer when nil.
func New(cfg *common.Config, factory ExtractorFactory, renderer PageRenderer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if renderer == nil {
		renderer = pdf.NewRenderer(cfg.PDF.Pdftoppm)
	}
	return &Server{
		cfg:       cfg,
		factory:   factory,
		renderer:  renderer,
		pageCount: pdf.PageCount,
		logger:    logger,
	}
}

// App returns the configured Fiber application.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    s.cfg.Server.BodyLimitMB << 20,
		ErrorHandler: s.errorHandler(),
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Post("/api/extract", s.handleExtract)

	return app
}

// handleExtract runs the whole flow for one uploaded PDF: rasterize,
// batch-extract, merge, finalize. Temp artifacts live in a per-request
// directory removed whether or not the run succeeds.
func (s *Server) handleExtract(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "MISSING_FILE", "Envie o documento em PDF no campo 'file'.", err.Error())
	}

	model := c.FormValue("model", s.cfg.LLM.Model)
	dpi := s.cfg.PDF.DPI
	if v := c.FormValue("dpi"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DPI", "DPI inválido.", v)
		}
		dpi = n
	}

	workDir, err := os.MkdirTemp("", "rgi-extract-*")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Falha ao preparar área de trabalho.", err.Error())
	}
	defer func() {
		if rerr := os.RemoveAll(workDir); rerr != nil {
			s.logger.Warn("server.cleanup_failed", "dir", workDir, "error", rerr)
		}
	}()

	pdfPath := filepath.Join(workDir, "upload.pdf")
	if err := c.SaveFile(fileHeader, pdfPath); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Falha ao receber o arquivo.", err.Error())
	}

	start := time.Now()
	n, err := s.pageCount(pdfPath)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_PDF", "O arquivo enviado não parece ser um PDF válido.", err.Error())
	}
	s.logger.Info("server.extract.start", "file", fileHeader.Filename, "pages", n, "model", model, "dpi", dpi)

	paths, err := s.renderer.Render(c.UserContext(), pdfPath, dpi, workDir)
	if err != nil {
		return writeError(c, fiber.StatusBadGateway, "RENDER_FAILED",
			"Não foi possível converter o PDF em imagens. Tente reduzir o DPI ou reenviar o arquivo.", err.Error())
	}

	ex := pipeline.New(s.factory(model), s.cfg.Payload, s.cfg.LLM.MaxImagesPerCall, s.cfg.LLM.Timeout, s.logger)
	rec, err := ex.Run(c.UserContext(), pipeline.NumberPages(paths))
	if err != nil {
		return writeError(c, fiber.StatusBadGateway, "EXTRACTION_FAILED",
			"Não foi possível concluir. Tente reduzir o DPI, reenviar o PDF ou dividir em menos páginas.", err.Error())
	}

	s.logger.Info("server.extract.ok", "file", fileHeader.Filename, "elapsed_ms", time.Since(start).Milliseconds())

	if c.Query("format") == "xlsx" {
		data, err := export.WorkbookXLSX(rec, s.logger)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "EXPORT_FAILED", "Falha ao gerar a planilha.", err.Error())
		}
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileHeader.Filename+`.xlsx"`)
		return c.Type("xlsx").Send(data)
	}
	return c.JSON(rec)
}
