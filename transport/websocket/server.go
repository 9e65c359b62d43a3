package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second

	bannerText = "Gomoku WebSocket Server"
)

type Server struct {
	logger     *slog.Logger
	dispatcher *Dispatcher
	upgrader   websocket.Upgrader
}

func New(logger *slog.Logger, rooms roomManager) *Server {
	return &Server{
		logger:     logger.With("component", "websocket"),
		dispatcher: NewDispatcher(logger, rooms),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Start - starts WebSocket server and stops it when ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that,
		ReadHeaderTimeout: readHeaderTimeout,
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

// ServeHTTP - upgrades websocket requests on any path; plain requests get a banner.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	if !websocket.IsWebSocketUpgrade(req) {
		writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
		writer.WriteHeader(http.StatusOK)
		if _, err := writer.Write([]byte(bannerText)); err != nil {
			log.Error("failed to write banner", "error", err)
		}

		return
	}

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConn(that.logger, ws)

	log.Info("WebSocket connection established", "connID", conn.ID(), "remote", req.RemoteAddr)

	go conn.writePump()
	conn.readPump(req.Context(), that.dispatcher)

	log.Info("WebSocket connection closed", "connID", conn.ID())
}
