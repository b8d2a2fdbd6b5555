// Package llm wraps a local GGUF model behind a uniform request/response
// contract with availability detection and graceful degradation.
//
// Inference runs through a llama.cpp-compatible CLI binary, treated as a
// black box the same way the extractor treats its OCR tools. The model is
// "loaded" lazily and at most once per process: the first call resolves the
// model artifact and the binary; if either is missing the engine parks in
// Unavailable and every later call short-circuits without retrying the
// expensive load. Per-call inference errors degrade only that call.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docmdio/docmd/internal/common"
)

// Task selects the prompt the model is asked to perform.
type Task string

const (
	TaskSummarizeAndCorrect Task = "summarize_and_correct"
	TaskCorrectOnly         Task = "correct_only"
)

// State is the engine lifecycle.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
	StateUnavailable   State = "unavailable"
)

// Runner lets us stub the inference binary in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

// Config configures the engine. Zero values get defaults.
type Config struct {
	ModelPath   string // path to the GGUF artifact; empty means no model installed
	Binary      string // llama.cpp CLI; if empty -> "llama-cli"
	CtxSize     int    // context window, default 4096
	MaxTokens   int    // generation budget, default 2048
	Temperature float32
	Timeout     time.Duration // per-call wall clock bound, default 2m

	// MaxInputChars is the prompt-input budget; longer documents are
	// truncated at a paragraph or sentence boundary before prompting.
	MaxInputChars int
}

// Engine is the shared, lazily-initialized inference handle.
type Engine struct {
	cfg    Config
	runner Runner
	logger *slog.Logger

	mu    sync.Mutex // guards state and serializes generation
	state State
}

func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Binary == "" {
		cfg.Binary = "llama-cli"
	}
	if cfg.CtxSize <= 0 {
		cfg.CtxSize = 4096
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2048
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.MaxInputChars <= 0 {
		cfg.MaxInputChars = 8000
	}
	return &Engine{cfg: cfg, runner: execRunner{}, logger: logger, state: StateUninitialized}
}

// Available reports whether the engine can serve generation calls,
// performing the lazy one-time load on first use.
func (e *Engine) Available() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ensureLoadedLocked() == StateReady
}

// State returns the current lifecycle state without triggering a load.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ensureLoadedLocked runs the Uninitialized → Loading → Ready|Unavailable
// transition once. Unavailable is sticky: later calls never retry the load.
// Ready is terminal for the process lifetime.
func (e *Engine) ensureLoadedLocked() State {
	if e.state != StateUninitialized {
		return e.state
	}
	e.state = StateLoading

	if e.cfg.ModelPath == "" {
		e.logger.Warn("llm.load.no_model_path")
		e.state = StateUnavailable
		return e.state
	}
	if st, err := os.Stat(e.cfg.ModelPath); err != nil || st.IsDir() {
		e.logger.Warn("llm.load.model_missing", "model_path", e.cfg.ModelPath, "error", err)
		e.state = StateUnavailable
		return e.state
	}
	if _, err := exec.LookPath(e.cfg.Binary); err != nil {
		e.logger.Warn("llm.load.binary_missing", "binary", e.cfg.Binary, "error", err)
		e.state = StateUnavailable
		return e.state
	}

	e.logger.Info("llm.load.ready", "model_path", e.cfg.ModelPath, "binary", e.cfg.Binary)
	e.state = StateReady
	return e.state
}

// Run processes text with the given task and returns the generated output.
// Returns common.ErrModelUnavailable when the engine is not Ready or when
// this particular call fails; a failed call never parks a Ready engine.
func (e *Engine) Run(ctx context.Context, task Task, text string) (string, error) {
	prompt := BuildPrompt(task, e.truncateInput(text))
	return e.generate(ctx, string(task), prompt, e.cfg.MaxTokens, e.cfg.Temperature, []string{chatMLEnd, endOfText})
}

// GenerateTitle asks the model for a short document title. The output is
// stripped of surrounding quotes and whitespace.
func (e *Engine) GenerateTitle(ctx context.Context, text string) (string, error) {
	prompt := BuildTitlePrompt(truncateRunes(text, titleInputChars))
	out, err := e.generate(ctx, "generate_title", prompt, titleMaxTokens, titleTemperature, []string{chatMLEnd, endOfText, "\n\n"})
	if err != nil {
		return "", err
	}
	title := cleanupTitle(out)
	if title == "" {
		return "", fmt.Errorf("%w: empty title", common.ErrModelUnavailable)
	}
	return title, nil
}

func (e *Engine) generate(ctx context.Context, task, prompt string, maxTokens int, temperature float32, stops []string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ensureLoadedLocked() != StateReady {
		return "", common.ErrModelUnavailable
	}

	rid := uuid.New().String()
	start := time.Now()
	e.logger.Info("llm.generate.start",
		"req_id", rid,
		"task", task,
		"prompt_chars", len(prompt),
		"prompt_tokens", CountTokens(prompt),
		"max_tokens", maxTokens,
		"temperature", temperature,
	)

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	args := []string{
		"-m", e.cfg.ModelPath,
		"-p", prompt,
		"-n", fmt.Sprintf("%d", maxTokens),
		"-c", fmt.Sprintf("%d", e.cfg.CtxSize),
		"--temp", fmt.Sprintf("%.2f", temperature),
		"--no-display-prompt",
		"-no-cnv",
	}
	for _, s := range stops {
		args = append(args, "-r", s)
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Binary, args...)
	if err != nil {
		// Degrade this call only; the engine stays Ready.
		e.logger.Error("llm.generate.failed",
			"req_id", rid,
			"task", task,
			"error", err,
			"stderr_bytes", len(errb),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("%w: %v", common.ErrModelUnavailable, err)
	}

	text := strings.TrimSpace(stripStops(string(out), stops))
	if text == "" {
		e.logger.Error("llm.generate.empty", "req_id", rid, "task", task)
		return "", fmt.Errorf("%w: no output generated", common.ErrModelUnavailable)
	}

	e.logger.Info("llm.generate.done",
		"req_id", rid,
		"task", task,
		"output_chars", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

// stripStops removes any stop marker the CLI may have echoed at the tail.
func stripStops(s string, stops []string) string {
	for _, stop := range stops {
		if i := strings.Index(s, stop); i >= 0 {
			s = s[:i]
		}
	}
	return s
}

// Info describes the engine for diagnostics endpoints.
type Info struct {
	State       State  `json:"state"`
	ModelPath   string `json:"model_path,omitempty"`
	ModelExists bool   `json:"model_exists"`
}

// ModelInfo reports the configured artifact and lifecycle state without
// forcing a load.
func (e *Engine) ModelInfo() Info {
	info := Info{State: e.State(), ModelPath: e.cfg.ModelPath}
	if e.cfg.ModelPath != "" {
		if st, err := os.Stat(e.cfg.ModelPath); err == nil && !st.IsDir() {
			info.ModelExists = true
		}
	}
	return info
}
