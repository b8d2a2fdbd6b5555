package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/docmdio/docmd/constants"
	"github.com/docmdio/docmd/internal/common"
	"github.com/docmdio/docmd/internal/extract"
	"github.com/docmdio/docmd/internal/llm"
)

type stubExtractor struct {
	res extract.Result
	err error
}

func (s stubExtractor) Extract(context.Context, extract.Document) (extract.Result, error) {
	return s.res, s.err
}

type stubEngine struct {
	available bool
	title     string
	outputs   map[llm.Task]string
	err       error
	calls     []llm.Task
}

func (s *stubEngine) Available() bool { return s.available }

func (s *stubEngine) Run(_ context.Context, task llm.Task, _ string) (string, error) {
	s.calls = append(s.calls, task)
	if s.err != nil {
		return "", s.err
	}
	return s.outputs[task], nil
}

func (s *stubEngine) GenerateTitle(context.Context, string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.title, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleText = "# Quarterly Business Report\n\nRevenue analysis and sales data. Urgent review required."

func sampleExtractor() stubExtractor {
	return stubExtractor{res: extract.Result{
		Markdown: sampleText,
		Format:   constants.PDF,
		Method:   "pdf-text",
		Pages:    2,
	}}
}

func TestAnalyzeAllFeatures(t *testing.T) {
	engine := &stubEngine{
		available: true,
		title:     "Quarterly Business Report 2024",
		outputs: map[llm.Task]string{
			llm.TaskSummarizeAndCorrect: "the summary",
			llm.TaskCorrectOnly:         "the corrected text",
		},
	}
	a := NewAnalyzer(sampleExtractor(), engine, discardLogger())

	res, err := a.Analyze(context.Background(), extract.Document{Filename: "q.pdf"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if res.MarkdownContent != sampleText {
		t.Error("markdown content missing")
	}
	if res.PredictedTitle != "Quarterly Business Report 2024" {
		t.Errorf("title = %q, want the model title", res.PredictedTitle)
	}
	if len(res.Keywords) == 0 {
		t.Error("keywords missing")
	}
	if len(res.Categories) == 0 {
		t.Error("categories missing")
	}
	if res.Severity == nil || res.Severity.Severity != constants.SeverityCritical {
		t.Errorf("severity = %v, want Critical", res.Severity)
	}
	if res.SummaryContent != "the summary" || res.CorrectedContent != "the corrected text" {
		t.Errorf("llm outputs: summary=%q corrected=%q", res.SummaryContent, res.CorrectedContent)
	}
	if res.Statistics == nil {
		t.Error("statistics missing")
	}
	if res.Format != constants.PDF || res.Pages != 2 {
		t.Errorf("extraction metadata lost: %+v", res)
	}
}

func TestAnalyzeExtractionFailureIsFatal(t *testing.T) {
	a := NewAnalyzer(stubExtractor{err: common.ErrExtraction}, &stubEngine{}, discardLogger())
	_, err := a.Analyze(context.Background(), extract.Document{Filename: "x.pdf"}, nil)
	if !errors.Is(err, common.ErrExtraction) {
		t.Fatalf("err = %v, want ErrExtraction", err)
	}
}

func TestAnalyzeSubsetOfFeatures(t *testing.T) {
	engine := &stubEngine{available: true}
	a := NewAnalyzer(sampleExtractor(), engine, discardLogger())

	features := constants.ParseFeatures([]string{"keyword_extraction"})
	res, err := a.Analyze(context.Background(), extract.Document{Filename: "q.pdf"}, features)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Keywords) == 0 {
		t.Error("selected feature missing")
	}
	if res.MarkdownContent != "" || res.PredictedTitle != "" || res.Categories != nil || res.Severity != nil {
		t.Errorf("unselected features leaked into the result: %+v", res)
	}
	if len(engine.calls) != 0 {
		t.Errorf("LLM ran for unselected features: %v", engine.calls)
	}
}

func TestAnalyzeModelUnavailableDegrades(t *testing.T) {
	engine := &stubEngine{available: false, err: common.ErrModelUnavailable}
	a := NewAnalyzer(sampleExtractor(), engine, discardLogger())

	res, err := a.Analyze(context.Background(), extract.Document{Filename: "q.pdf"}, nil)
	if err != nil {
		t.Fatalf("model unavailability must not fail the request: %v", err)
	}

	if res.SummaryContent != "" || res.CorrectedContent != "" {
		t.Error("llm fields present despite unavailable model")
	}
	// The heuristic covers for the model.
	if res.PredictedTitle != "Quarterly Business Report" {
		t.Errorf("fallback title = %q", res.PredictedTitle)
	}
	if len(res.Keywords) == 0 || len(res.Categories) == 0 || res.Severity == nil {
		t.Error("rule-based features must survive llm unavailability")
	}
}

func TestAnalyzeTitleSkipsModelWithoutLLMFeatures(t *testing.T) {
	engine := &stubEngine{available: true, title: "Model Title"}
	a := NewAnalyzer(sampleExtractor(), engine, discardLogger())

	features := constants.ParseFeatures([]string{"title_prediction"})
	res, err := a.Analyze(context.Background(), extract.Document{Filename: "q.pdf"}, features)
	if err != nil {
		t.Fatal(err)
	}
	// Without summarization or correction selected the cheap heuristic is
	// used even though the model is ready.
	if res.PredictedTitle != "Quarterly Business Report" {
		t.Errorf("title = %q, want the heuristic title", res.PredictedTitle)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	engine := &stubEngine{available: false, err: common.ErrModelUnavailable}
	a := NewAnalyzer(sampleExtractor(), engine, discardLogger())

	first, err := a.Analyze(context.Background(), extract.Document{Filename: "q.pdf"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		got, err := a.Analyze(context.Background(), extract.Document{Filename: "q.pdf"}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d diverged:\n%+v\nvs\n%+v", i, got, first)
		}
	}
}
