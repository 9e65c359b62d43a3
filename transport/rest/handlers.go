package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

func (that *Server) statsHandler(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.stats.Stats())
}

func (that *Server) recentMatchesHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "recentMatchesHandler")

	limit := int64(defaultRecentLimit)

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}

		limit = min(parsed, maxRecentLimit)
	}

	matches, err := that.matches.ListRecent(r.Context(), limit)
	if err != nil {
		log.Error("failed to list recent matches", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if matches == nil {
		matches = []*entity.MatchResult{}
	}

	that.writeJSON(w, http.StatusOK, matches)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
