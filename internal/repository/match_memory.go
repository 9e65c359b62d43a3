package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type memoryMatch struct {
	mu          sync.RWMutex
	results     map[string]*entity.MatchResult
	recent      []string
	recentLimit int
}

// NewMemoryMatchRepository - keeps results in process memory, used when Redis is disabled.
func NewMemoryMatchRepository(recentLimit int) MatchRepository {
	if recentLimit < 1 {
		recentLimit = 1
	}

	return &memoryMatch{
		results:     make(map[string]*entity.MatchResult),
		recentLimit: recentLimit,
	}
}

func (that *memoryMatch) Save(_ context.Context, result *entity.MatchResult) error {
	stored := *result

	that.mu.Lock()
	defer that.mu.Unlock()

	that.results[result.ID] = &stored
	that.recent = append([]string{result.ID}, that.recent...)

	if len(that.recent) > that.recentLimit {
		for _, id := range that.recent[that.recentLimit:] {
			delete(that.results, id)
		}
		that.recent = that.recent[:that.recentLimit]
	}

	return nil
}

func (that *memoryMatch) GetByID(_ context.Context, id string) (*entity.MatchResult, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	result, ok := that.results[id]
	if !ok {
		return nil, apperror.ErrMatchNotFound
	}

	found := *result

	return &found, nil
}

func (that *memoryMatch) ListRecent(_ context.Context, limit int64) ([]*entity.MatchResult, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	results := make([]*entity.MatchResult, 0, min(int(max(limit, 0)), len(that.recent)))
	for _, id := range that.recent {
		if int64(len(results)) >= limit {
			break
		}

		found := *that.results[id]
		results = append(results, &found)
	}

	return results, nil
}
