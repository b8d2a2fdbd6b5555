// Package pipeline sequences text extraction and the selected analysis
// features over one document and assembles a single Result.
//
// Extraction is effectively mandatory: every other feature reads the
// extracted text, so an extraction failure fails the request as a whole.
// After that, features are isolated: one feature failing (most commonly the
// LLM being unavailable) omits its field and nothing else. LLM-backed
// features run last so cheap rule-based features are never delayed behind
// model calls.
package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/docmdio/docmd/constants"
	"github.com/docmdio/docmd/internal/analysis"
	"github.com/docmdio/docmd/internal/common"
	"github.com/docmdio/docmd/internal/extract"
	"github.com/docmdio/docmd/internal/llm"
)

// Engine is the inference surface the orchestrator depends on.
type Engine interface {
	Available() bool
	Run(ctx context.Context, task llm.Task, text string) (string, error)
	GenerateTitle(ctx context.Context, text string) (string, error)
}

// Analyzer coordinates extraction, rule-based analyzers, and the LLM engine.
type Analyzer struct {
	extractor extract.TextExtractor
	engine    Engine
	logger    *slog.Logger
}

func NewAnalyzer(extractor extract.TextExtractor, engine Engine, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{extractor: extractor, engine: engine, logger: logger}
}

// Analyze converts the document and runs the selected features against the
// extracted text. An empty selection means all features. The only fatal
// condition is failing to obtain any text at all.
func (a *Analyzer) Analyze(ctx context.Context, doc extract.Document, features constants.FeatureSet) (Result, error) {
	if len(features) == 0 {
		features = constants.ParseFeatures(nil)
	}

	ext, err := a.extractor.Extract(ctx, doc)
	if err != nil {
		a.logger.Error("pipeline.extract.failed", "filename", doc.Filename, "error", err)
		return Result{}, err
	}

	res := Result{
		Filename: doc.Filename,
		Format:   ext.Format,
		UsedOCR:  ext.UsedOCR,
		Pages:    ext.Pages,
		Warnings: ext.Warnings,
	}
	if features.Has(constants.FeatureMarkdownExtraction) {
		res.MarkdownContent = ext.Markdown
	}

	// Downstream analyzers share one read-only view of the text.
	text := ext.Markdown

	if features.Has(constants.FeatureKeywordExtraction) {
		res.Keywords = analysis.ExtractKeywords(text, analysis.DefaultMaxKeywords)
	}
	if features.Has(constants.FeatureCategorization) {
		res.Categories = analysis.ClassifyCategories(text)
	}
	if features.Has(constants.FeatureSeverity) {
		sev := analysis.ClassifySeverity(text)
		res.Severity = &sev
	}
	res.Statistics = statsFor(text)

	// LLM-backed features last: generation dominates wall-clock time.
	wantsLLM := features.Has(constants.FeatureSummarization) || features.Has(constants.FeatureCorrection)

	if features.Has(constants.FeatureTitlePrediction) {
		res.PredictedTitle = a.predictTitle(ctx, ext, text, wantsLLM)
	}
	if features.Has(constants.FeatureSummarization) {
		if out, ok := a.runLLM(ctx, llm.TaskSummarizeAndCorrect, text); ok {
			res.SummaryContent = out
		}
	}
	if features.Has(constants.FeatureCorrection) {
		if out, ok := a.runLLM(ctx, llm.TaskCorrectOnly, text); ok {
			res.CorrectedContent = out
		}
	}

	return res, nil
}

// predictTitle prefers the model when LLM processing is enabled and the
// engine is ready, and falls back to the heuristic in every failure mode so
// title prediction never fails the request.
func (a *Analyzer) predictTitle(ctx context.Context, ext extract.Result, text string, allowLLM bool) string {
	if allowLLM && a.engine.Available() {
		title, err := a.engine.GenerateTitle(ctx, text)
		if err == nil && title != "" {
			return title
		}
		a.logger.Debug("pipeline.title.llm_fallback", "error", err)
	}
	if title := analysis.PredictTitle(text, analysis.DefaultMaxTitleLength); title != "" {
		return title
	}
	// Converter-provided titles (docx styles, first heading) as a last resort.
	return ext.Title
}

// runLLM executes one generation task, treating unavailability as "feature
// skipped" rather than an error.
func (a *Analyzer) runLLM(ctx context.Context, task llm.Task, text string) (string, bool) {
	out, err := a.engine.Run(ctx, task, text)
	if err != nil {
		if errors.Is(err, common.ErrModelUnavailable) {
			a.logger.Debug("pipeline.llm.skipped", "task", string(task))
		} else {
			a.logger.Warn("pipeline.llm.failed", "task", string(task), "error", err)
		}
		return "", false
	}
	return out, true
}

func statsFor(text string) *analysis.TextStatistics {
	if text == "" {
		return nil
	}
	s := analysis.ComputeStatistics(text)
	return &s
}
