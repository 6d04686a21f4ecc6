package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/ynxchain/ynx-indexer/internal/common"
	"github.com/ynxchain/ynx-indexer/internal/logger"
	"github.com/ynxchain/ynx-indexer/pkg/api/docs"
	"github.com/ynxchain/ynx-indexer/pkg/config"
)

// Ensure docs are registered
var _ = docs.SwaggerInfo

const shutdownCtxTimeout = 10 * time.Second

// Server represents the API HTTP server.
type Server struct {
	config  *config.APIConfig
	handler *Handler
	server  *http.Server
	log     *logger.Logger
}

// NewServer creates a new API server. metrics serves /metrics.
func NewServer(cfg *config.APIConfig, engine QueryEngine, metrics http.Handler, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}
	log = log.WithComponent(common.ComponentAPI)

	handler := NewHandler(engine, log)

	mux := http.NewServeMux()

	// Status endpoints
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/stats", handler.Stats)
	mux.Handle("/metrics", metrics)

	// Chain data endpoints
	mux.HandleFunc("/blocks", handler.ListBlocks)
	mux.HandleFunc("/blocks/{height...}", handler.GetBlock)
	mux.HandleFunc("/txs", handler.ListTxs)
	mux.HandleFunc("/txs/{hash...}", handler.GetTx)
	mux.HandleFunc("/validators", handler.Validators)

	// Governance summary, also under the path used by the YNX web console
	mux.HandleFunc("/overview", handler.Overview)
	mux.HandleFunc("/ynx/overview", handler.Overview)

	if cfg.Swagger {
		mux.Handle("/swagger/", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
			httpSwagger.DeepLinking(true),
		))
	}

	mux.HandleFunc("/", handler.NotFound)

	// Apply middleware
	var h http.Handler = mux
	h = methodGuard(h)
	h = CORSMiddleware(cfg.CORS.AllowedOrigins)(h)
	h = MetricsMiddleware()(h)
	h = LoggingMiddleware(log)(h)
	h = RecoveryMiddleware(log)(h)

	httpServer := &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
		IdleTimeout:  cfg.IdleTimeout.Duration,
	}

	return &Server{
		config:  cfg,
		handler: handler,
		server:  httpServer,
		log:     log,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves requests until ctx is done, then shuts down gracefully.
// It returns early if the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.log.Infow("starting API server", "address", s.config.ListenAddress)

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("API server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownCtxTimeout)
	defer cancel()

	s.log.Info("shutting down API server")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown error: %w", err)
	}

	s.log.Info("API server stopped")
	return nil
}
