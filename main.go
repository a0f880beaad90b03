package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"github.com/promptguard/promptguard/config"
	"github.com/promptguard/promptguard/server"
)

const TRUE = "true"

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file from current directory")
	} else {
		log.Printf("Note: .env file not found or could not be loaded: %v", err)
	}

	// Load configuration
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "Path to JSON config file")
	flag.Parse()

	if *configPath != "" {
		loadConfigFromFile(*configPath, cfg)
	}

	// Override configuration with environment variables
	loadConfigFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.Printf("Warning: failed to initialize Sentry: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
			log.Println("Sentry error reporting enabled")
		}
	}

	// Create and start server
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Start server with error handling
	srv.StartWithErrorHandling()
}

// loadConfigFromFile loads configuration from a JSON file
func loadConfigFromFile(path string, cfg *config.Config) {
	// #nosec G304 - Config file path is controlled by application, not user input
	file, err := os.Open(path)
	if err != nil {
		log.Printf("Failed to open config file: %v", err)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("Failed to close config file: %v", err)
		}
	}()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		log.Printf("Failed to decode config file: %v", err)
	}
}

// loadConfigFromEnv loads configuration from environment variables
func loadConfigFromEnv(cfg *config.Config) {
	// Application configuration
	if listenAddr := os.Getenv("LISTEN_ADDR"); listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	if classifierName := os.Getenv("CLASSIFIER_NAME"); classifierName != "" {
		cfg.ClassifierName = classifierName
	}

	if sentryDSN := os.Getenv("SENTRY_DSN"); sentryDSN != "" {
		cfg.SentryDSN = sentryDSN
	}

	// Ollama configuration
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		cfg.Ollama.BaseURL = baseURL
	}

	if visionModel := os.Getenv("OLLAMA_VISION_MODEL"); visionModel != "" {
		cfg.Ollama.VisionModel = visionModel
	}

	if textModel := os.Getenv("OLLAMA_TEXT_MODEL"); textModel != "" {
		cfg.Ollama.TextModel = textModel
	}

	if timeout := os.Getenv("OLLAMA_TIMEOUT_SECONDS"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			cfg.Ollama.TimeoutSeconds = t
		}
	}

	// ONNX classifier configuration
	if modelPath := os.Getenv("ONNX_MODEL_PATH"); modelPath != "" {
		cfg.ONNXModelPath = modelPath
	}

	if tokenizerPath := os.Getenv("TOKENIZER_PATH"); tokenizerPath != "" {
		cfg.TokenizerPath = tokenizerPath
	}

	// Logging configuration
	if logRequests := os.Getenv("LOG_REQUESTS"); logRequests != "" {
		cfg.Logging.LogRequests = logRequests == TRUE
	}

	if logDecisions := os.Getenv("LOG_DECISIONS"); logDecisions != "" {
		cfg.Logging.LogDecisions = logDecisions == TRUE
	}

	if logVerbose := os.Getenv("LOG_VERBOSE"); logVerbose != "" {
		cfg.Logging.LogVerbose = logVerbose == TRUE
	}
}
