package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Extract  ExtractConfig  `yaml:"extract"`
	LLM      LLMConfig      `yaml:"llm"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds the conversion-history store configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ExtractConfig holds text-extraction and OCR configuration
type ExtractConfig struct {
	Pdftotext string `yaml:"pdftotext"`
	Pdftoppm  string `yaml:"pdftoppm"`
	Tesseract string `yaml:"tesseract"`

	TesseractLang string `yaml:"tesseract_lang"`
	DPI           int    `yaml:"dpi"`
	MaxPages      int    `yaml:"max_pages"`

	// MinTextChars is the non-whitespace character count below which a
	// direct PDF extraction is treated as empty and OCR kicks in.
	MinTextChars int `yaml:"min_text_chars"`
}

// LLMConfig holds local-inference configuration
type LLMConfig struct {
	ModelPath   string        `yaml:"model_path"`
	Binary      string        `yaml:"binary"`
	CtxSize     int           `yaml:"ctx_size"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`

	// MaxInputChars is the prompt-input character budget; longer documents
	// are truncated at a paragraph or sentence boundary before prompting.
	MaxInputChars int `yaml:"max_input_chars"`
}

// LoadConfig loads configuration from environment variables. If DOCMD_CONFIG
// points at a YAML file, its values are loaded first and the environment
// overrides them.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			MaxUploadBytes:  50 * 1024 * 1024,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "docmd.db",
		},
		Extract: ExtractConfig{
			Pdftotext:     "pdftotext",
			Pdftoppm:      "pdftoppm",
			Tesseract:     "tesseract",
			TesseractLang: "eng+ind",
			DPI:           300,
			MaxPages:      0,
			MinTextChars:  20,
		},
		LLM: LLMConfig{
			Binary:        "llama-cli",
			CtxSize:       4096,
			MaxTokens:     2048,
			Temperature:   0.7,
			Timeout:       2 * time.Minute,
			MaxInputChars: 8000,
		},
	}

	if path := os.Getenv("DOCMD_CONFIG"); path != "" {
		if err := cfg.mergeYAML(path); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays set environment variables on the current values, so the
// environment always wins over the YAML file and the defaults.
func (c *Config) applyEnv() {
	c.Server.Addr = getEnv("HTTP_ADDR", c.Server.Addr)
	c.Server.MaxUploadBytes = int64(getEnvAsInt("MAX_UPLOAD_BYTES", int(c.Server.MaxUploadBytes)))
	c.Server.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Database.Path = getEnv("DB_PATH", c.Database.Path)

	c.Extract.Pdftotext = getEnv("PDFTOTEXT_BIN", c.Extract.Pdftotext)
	c.Extract.Pdftoppm = getEnv("PDFTOPPM_BIN", c.Extract.Pdftoppm)
	c.Extract.Tesseract = getEnv("TESSERACT_BIN", c.Extract.Tesseract)
	c.Extract.TesseractLang = getEnv("TESSERACT_LANG", c.Extract.TesseractLang)
	c.Extract.DPI = getEnvAsInt("OCR_DPI", c.Extract.DPI)
	c.Extract.MaxPages = getEnvAsInt("OCR_MAX_PAGES", c.Extract.MaxPages)
	c.Extract.MinTextChars = getEnvAsInt("OCR_MIN_TEXT_CHARS", c.Extract.MinTextChars)

	c.LLM.ModelPath = getEnv("LLM_MODEL_PATH", c.LLM.ModelPath)
	c.LLM.Binary = getEnv("LLM_BINARY", c.LLM.Binary)
	c.LLM.CtxSize = getEnvAsInt("LLM_CTX_SIZE", c.LLM.CtxSize)
	c.LLM.MaxTokens = getEnvAsInt("LLM_MAX_TOKENS", c.LLM.MaxTokens)
	c.LLM.Temperature = getEnvAsFloat32("LLM_TEMPERATURE", c.LLM.Temperature)
	c.LLM.Timeout = getEnvAsDuration("LLM_TIMEOUT", c.LLM.Timeout)
	c.LLM.MaxInputChars = getEnvAsInt("LLM_MAX_INPUT_CHARS", c.LLM.MaxInputChars)
}

func (c *Config) mergeYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Database.Path == "" {
		return NewAppError("CONFIG_ERROR", "DB_PATH is required", ErrInvalidInput)
	}
	if c.Extract.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_DPI must be positive", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
