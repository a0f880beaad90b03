package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"

	"github.com/promptguard/promptguard/config"
	"github.com/promptguard/promptguard/ollama"
	"github.com/promptguard/promptguard/sensitive"
)

// checkRequest is the body of POST /check. Text is required (an empty
// string is valid); Image is an optional base64 still image.
type checkRequest struct {
	Text  *string `json:"text"`
	Image string  `json:"image,omitempty"`
}

type checkResponse struct {
	Sensitive      bool    `json:"sensitive"`
	ModifiedPrompt *string `json:"modified_prompt"`
}

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	classifier sensitive.Classifier
	pipeline   *sensitive.Pipeline
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	client := ollama.NewClient(cfg.Ollama.BaseURL, time.Duration(cfg.Ollama.TimeoutSeconds)*time.Second)

	classifier, err := newClassifier(cfg, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier: %w", err)
	}

	rewriter := sensitive.NewModelRewriter(client, cfg.Ollama.TextModel)
	pipeline := sensitive.NewPipeline(classifier, rewriter, cfg.Logging)

	return &Server{
		config:     cfg,
		classifier: classifier,
		pipeline:   pipeline,
	}, nil
}

// newClassifier builds the configured classifier backend
func newClassifier(cfg *config.Config, client ollama.ChatClient) (sensitive.Classifier, error) {
	classifierConfig := make(map[string]interface{})
	switch cfg.ClassifierName {
	case sensitive.ClassifierNameModel:
		classifierConfig["chat_client"] = client
		classifierConfig["model"] = cfg.Ollama.VisionModel
	case sensitive.ClassifierNameONNX:
		classifierConfig["model_path"] = cfg.ONNXModelPath
		classifierConfig["tokenizer_path"] = cfg.TokenizerPath
	default:
		return nil, fmt.Errorf("invalid classifier name: %s", cfg.ClassifierName)
	}
	return sensitive.NewClassifier(cfg.ClassifierName, classifierConfig)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("Starting sensitive-data check service on port %s", s.config.ListenAddr)
	log.Printf("Classification enabled with classifier: %s", s.classifier.GetName())
	log.Printf("Ollama endpoint: %s (vision=%s, text=%s)",
		s.config.Ollama.BaseURL, s.config.Ollama.VisionModel, s.config.Ollama.TextModel)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthCheck)
	mux.HandleFunc("/check", s.handleCheck)

	// Create server with timeout configuration
	server := &http.Server{
		Addr:         s.config.ListenAddr,
		Handler:      s.recoverMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

// StartWithErrorHandling starts the server with proper error handling
func (s *Server) StartWithErrorHandling() {
	if err := s.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// recoverMiddleware turns panics into 500 responses instead of dropped
// connections, reporting them to Sentry when configured
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				sentry.CurrentHub().Recover(rec)
				log.Printf("[Server] Recovered from panic: %v", rec)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// healthCheck provides a simple health check endpoint
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	s.corsHandler(w, r)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"healthy","service":"Promptguard Check Service"}`)); err != nil {
		log.Printf("Failed to write health check response: %v", err)
	}
}

// corsHandler adds CORS headers to the response. The check endpoint is
// consumed by a browser extension, so the policy is fully open.
func (s *Server) corsHandler(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "false")
	} else {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}

	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// handleCheck classifies the submitted text or image and returns the
// sanitized rewrite when sensitive text was found
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		s.corsHandler(w, r)
		w.WriteHeader(http.StatusOK)
		return
	}

	s.corsHandler(w, r)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[Check] %s Failed to decode request body: %v", requestID, err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Text == nil {
		log.Printf("[Check] %s Missing required field 'text'", requestID)
		http.Error(w, "Missing required field: text", http.StatusBadRequest)
		return
	}

	if s.config.Logging.LogRequests {
		log.Printf("[Check] %s Received request (text: %d bytes, image: %t)",
			requestID, len(*req.Text), req.Image != "")
	}

	result := s.pipeline.Handle(r.Context(), sensitive.Request{
		Text:  *req.Text,
		Image: req.Image,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(checkResponse{
		Sensitive:      result.Sensitive,
		ModifiedPrompt: result.ModifiedText,
	}); err != nil {
		log.Printf("[Check] %s Failed to write response: %v", requestID, err)
	}
}

// Close closes the server and cleans up resources
func (s *Server) Close() error {
	if s.classifier != nil {
		return s.classifier.Close()
	}
	return nil
}
