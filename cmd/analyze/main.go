// Command analyze runs the conversion pipeline once against a local file and
// prints the result as JSON. Useful for trying extraction and the analyzers
// without starting the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/docmdio/docmd/constants"
	"github.com/docmdio/docmd/internal/common"
	"github.com/docmdio/docmd/internal/extract"
	"github.com/docmdio/docmd/internal/llm"
	"github.com/docmdio/docmd/internal/pipeline"
)

func main() {
	features := flag.String("features", "", "comma-separated feature names; empty runs all")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "analyze [-features a,b] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	_ = godotenv.Load()
	cfg, err := common.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read file", "path", path, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	extractor := extract.NewExtractor(extract.Config{
		Pdftotext:     cfg.Extract.Pdftotext,
		Pdftoppm:      cfg.Extract.Pdftoppm,
		Tesseract:     cfg.Extract.Tesseract,
		TesseractLang: cfg.Extract.TesseractLang,
		DPI:           cfg.Extract.DPI,
		MaxPages:      cfg.Extract.MaxPages,
		MinTextChars:  cfg.Extract.MinTextChars,
	}, logger)
	engine := llm.NewEngine(llm.Config{
		ModelPath:     cfg.LLM.ModelPath,
		Binary:        cfg.LLM.Binary,
		CtxSize:       cfg.LLM.CtxSize,
		MaxTokens:     cfg.LLM.MaxTokens,
		Temperature:   cfg.LLM.Temperature,
		Timeout:       cfg.LLM.Timeout,
		MaxInputChars: cfg.LLM.MaxInputChars,
	}, logger)
	analyzer := pipeline.NewAnalyzer(extractor, engine, logger)

	var names []string
	for _, n := range strings.Split(*features, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	res, err := analyzer.Analyze(ctx, extract.Document{
		Filename: filepath.Base(path),
		Data:     data,
	}, constants.ParseFeatures(names))
	if err != nil {
		logger.Error("analysis failed", "path", path, "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
}
