package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/g-rebels/kr-holiday/pkg/krholidays"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Server exposes a Calendar over a JSON HTTP API
type Server struct {
	cal        krholidays.Calendar
	logger     *zap.Logger
	router     *mux.Router
	httpServer *http.Server
}

// New creates a server listening on addr
func New(cal krholidays.Calendar, addr string, readTimeout time.Duration, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cal:    cal,
		logger: logger,
		router: mux.NewRouter(),
	}
	s.routes()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(s.logRequests)

	s.router.Handle("/healthz", &healthHandler{}).Methods(http.MethodGet)

	v1 := s.router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/days/{date}", s.handleDay).Methods(http.MethodGet)
	v1.HandleFunc("/years", s.handleYears).Methods(http.MethodGet)
	v1.HandleFunc("/years/{year:[0-9]+}/holidays", s.handleYearHolidays).Methods(http.MethodGet)
	v1.HandleFunc("/years/{year:[0-9]+}/summary", s.handleYearSummary).Methods(http.MethodGet)
	v1.HandleFunc("/years/{year:[0-9]+}/months/{month:[0-9]+}/holidays", s.handleMonthHolidays).Methods(http.MethodGet)
	v1.HandleFunc("/years/{year:[0-9]+}/months/{month:[0-9]+}/workdays", s.handleMonthWorkdays).Methods(http.MethodGet)
	v1.HandleFunc("/next-holiday/{date}", s.handleNextHoliday).Methods(http.MethodGet)
	v1.HandleFunc("/workdays/count", s.handleCountWorkdays).Methods(http.MethodGet)
	v1.HandleFunc("/workdays/add", s.handleAddWorkdays).Methods(http.MethodGet)
}

// Handler returns the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server started", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case sig := <-sigChan:
		s.logger.Info("Received signal, shutting down",
			zap.String("signal", sig.String()))
	case <-ctx.Done():
		s.logger.Info("Context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

// healthHandler answers liveness probes
type healthHandler struct{}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Add("Application-Status", "OK")
	w.WriteHeader(http.StatusOK)
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Debug("Request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
