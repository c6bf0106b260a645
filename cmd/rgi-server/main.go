// rgi-server exposes the extraction pipeline over HTTP for the dashboard.
package main

import (
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/koortimativa/rgi-extractor/internal/common"
	"github.com/koortimativa/rgi-extractor/internal/llm"
	"github.com/koortimativa/rgi-extractor/internal/llm/openai"
	"github.com/koortimativa/rgi-extractor/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	factory := func(model string) llm.BatchExtractor {
		if model == "" {
			model = cfg.LLM.Model
		}
		return openai.NewClient(openai.Config{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   model,
			Timeout: cfg.LLM.Timeout,
		}, logger)
	}

	srv := server.New(cfg, factory, nil, logger)
	app := srv.App()

	logger.Info("server.listen", "addr", cfg.Server.Addr)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
