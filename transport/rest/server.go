package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const shutdownTimeout = 10 * time.Second

type statsProvider interface {
	Stats() entity.Stats
}

type matchLister interface {
	ListRecent(ctx context.Context, limit int64) ([]*entity.MatchResult, error)
}

type Server struct {
	logger  *slog.Logger
	stats   statsProvider
	matches matchLister
}

func New(logger *slog.Logger, stats statsProvider, matches matchLister) *Server {
	return &Server{
		logger:  logger.With("component", "rest"),
		stats:   stats,
		matches: matches,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)
	mux.HandleFunc("GET /stats", that.statsHandler)
	mux.HandleFunc("GET /matches/recent", that.recentMatchesHandler)

	return mux
}

// Start - serves the ops endpoints until ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
