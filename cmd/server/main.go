package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "slidetext/docs"
	"slidetext/internal/config"
	"slidetext/internal/extract"
	"slidetext/internal/handler"
	"slidetext/internal/router"
	"slidetext/internal/service"
	"slidetext/internal/validator"
)

// @title slidetext API
// @version 1.0
// @description Converts PowerPoint (.pptx) uploads to plain text.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	setupLogging(&cfg.Log)

	// Initialize the validation rules and extractor
	rules := validator.NewEngine(validator.DefaultRegistry(&cfg.Limits))
	extractor := extract.NewExtractor(&cfg.Limits)

	// Initialize services
	convertSvc := service.NewConvertService(rules, extractor)

	// Initialize handlers
	indexH := handler.NewIndexHandler()
	convertH := handler.NewConvertHandler(convertSvc)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg, indexH, convertH, healthH)

	log.Info().Str("port", cfg.Server.Port).Str("env", cfg.Server.Environment).Msg("server starting")
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func setupLogging(cfg *config.LogConfig) {
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
