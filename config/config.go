package config

import (
	"fmt"
	"strconv"
	"strings"
)

// OllamaConfig holds connection settings for the local Ollama service
type OllamaConfig struct {
	BaseURL     string // Base URL of the Ollama HTTP API
	VisionModel string // Vision-capable model used for text and image classification
	TextModel   string // Text model used for prompt rewriting
	// TimeoutSeconds bounds the chat round-trip. 0 means no client-side
	// timeout, matching the original behavior of waiting out inference.
	TimeoutSeconds int
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	LogRequests  bool // Log incoming request metadata
	LogDecisions bool // Log classification and rewrite decisions
	LogVerbose   bool // Log raw text content (may contain the sensitive data itself)
}

// Config holds all configuration for the guardrail service
type Config struct {
	ListenAddr     string
	ClassifierName string
	Ollama         OllamaConfig
	ONNXModelPath  string
	TokenizerPath  string
	SentryDSN      string
	Logging        LoggingConfig
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:     ":8000",
		ClassifierName: "model_classifier",
		Ollama: OllamaConfig{
			BaseURL:     "http://localhost:11434",
			VisionModel: "llava:7b",
			TextModel:   "llama3",
		},
		ONNXModelPath: "model/quantized/model_quantized.onnx",
		TokenizerPath: "model/quantized/tokenizer.json",
		Logging: LoggingConfig{
			LogRequests:  true,
			LogDecisions: true,
			LogVerbose:   false,
		},
	}
}

// Validate checks the configuration for values that would only fail at runtime
func (c *Config) Validate() error {
	if err := validatePort(c.ListenAddr, "ListenAddr"); err != nil {
		return err
	}
	if c.ClassifierName == "" {
		return fmt.Errorf("ClassifierName cannot be empty")
	}
	if c.Ollama.BaseURL == "" {
		return fmt.Errorf("Ollama.BaseURL cannot be empty")
	}
	if c.Ollama.TimeoutSeconds < 0 {
		return fmt.Errorf("Ollama.TimeoutSeconds cannot be negative (current value: %d)", c.Ollama.TimeoutSeconds)
	}
	return nil
}

// validatePort checks that a listen address is in ":PORT" form with a valid port
func validatePort(port string, fieldName string) error {
	if port == "" {
		return fmt.Errorf("%s: port cannot be empty", fieldName)
	}
	if !strings.HasPrefix(port, ":") {
		return fmt.Errorf("%s: port must be in format ':PORT' where PORT is numeric (current value: %s)", fieldName, port)
	}
	p, err := strconv.Atoi(strings.TrimPrefix(port, ":"))
	if err != nil {
		return fmt.Errorf("%s: port must be in format ':PORT' where PORT is numeric (current value: %s)", fieldName, port)
	}
	if p < 1 || p > 65535 {
		return fmt.Errorf("%s: port must be between 1 and 65535 (current value: %d)", fieldName, p)
	}
	return nil
}

// GetLogDecisions returns whether to log classification decisions
func (lc LoggingConfig) GetLogDecisions() bool {
	return lc.LogDecisions
}

// GetLogVerbose returns whether to log raw text content
func (lc LoggingConfig) GetLogVerbose() bool {
	return lc.LogVerbose
}
