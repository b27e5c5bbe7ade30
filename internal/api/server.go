// Package api exposes document synthesis over HTTP.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/kiwitts/kiwi-go/internal/config"
	"github.com/kiwitts/kiwi-go/internal/document"
	"github.com/kiwitts/kiwi-go/internal/store"
	"github.com/kiwitts/kiwi-go/internal/tts"
)

// synthesizer is the part of tts.Client the handlers use.
type synthesizer interface {
	Synthesize(ctx context.Context, text, outputPath string) *tts.ProcessingResult
}

// Server handles HTTP API requests.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	server     *http.Server
	files      *store.Store
	extractors *document.Registry

	// The synthesis client is created lazily on the first request and
	// reused until a request asks for a different configuration.
	mu       sync.Mutex
	synth    synthesizer
	synthCfg tts.Config
	newSynth func(ctx context.Context, cfg tts.Config) (synthesizer, error)
}

// New creates a new API server.
func New(cfg *config.Config, logger *slog.Logger, files *store.Store) *Server {
	s := &Server{
		cfg:        cfg,
		logger:     logger,
		files:      files,
		extractors: document.DefaultRegistry(),
		newSynth: func(ctx context.Context, c tts.Config) (synthesizer, error) {
			return tts.New(ctx, c, logger)
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/healthz", s.handleHealthz)
	mux.HandleFunc("GET /v1/voices", s.handleVoices)
	mux.HandleFunc("POST /v1/synthesize", s.withAuth(s.handleSynthesize))
	mux.HandleFunc("POST /v1/synthesize-file", s.withAuth(s.handleSynthesizeFile))
	mux.HandleFunc("GET /v1/download/{id}", s.withAuth(s.handleDownload))
	mux.HandleFunc("DELETE /v1/cleanup", s.withAuth(s.handleCleanup))

	s.server = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:     s.withCORS(mux),
		ReadTimeout: 30 * time.Second,
		// Synthesis of a large document can take a while.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// getClient returns a synthesis client for cfg, reusing the cached one when
// the configuration has not changed.
func (s *Server) getClient(ctx context.Context, cfg tts.Config) (synthesizer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.synth != nil && s.synthCfg == cfg {
		return s.synth, nil
	}

	client, err := s.newSynth(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s.synth = client
	s.synthCfg = cfg
	return client, nil
}
