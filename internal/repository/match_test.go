package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/testing/suite"
)

func newMatch(id string) *entity.MatchResult {
	return &entity.MatchResult{
		ID:        id,
		RoomID:    "ABC123",
		Status:    entity.StatusWon,
		Winner:    entity.MarkX,
		MoveCount: 9,
		Players: []entity.PlayerInfo{
			{Name: "alice", Symbol: entity.MarkX},
			{Name: "bob", Symbol: entity.MarkO},
		},
		StartedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		FinishedAt: time.Date(2026, 1, 2, 3, 9, 5, 0, time.UTC),
	}
}

// testMatchRepository runs the shared contract against any MatchRepository.
func testMatchRepository(t *testing.T, newRepo func(t *testing.T, recentLimit int64) (context.Context, MatchRepository)) {
	t.Run("Save and GetByID", func(t *testing.T) {
		ctx, repo := newRepo(t, 10)

		// Given: a finished match
		match := newMatch("m1")

		// When: it is saved
		require.NoError(t, repo.Save(ctx, match))

		// Then: it can be read back unchanged
		stored, err := repo.GetByID(ctx, "m1")
		require.NoError(t, err)
		assert.Equal(t, match, stored)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		ctx, repo := newRepo(t, 10)

		stored, err := repo.GetByID(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrMatchNotFound)
		assert.Nil(t, stored)
	})

	t.Run("ListRecent returns newest first within the cap", func(t *testing.T) {
		ctx, repo := newRepo(t, 3)

		// Given: five matches saved in order
		for i := range 5 {
			require.NoError(t, repo.Save(ctx, newMatch(fmt.Sprintf("m%d", i))))
		}

		// When: asking for more than the cap
		recent, err := repo.ListRecent(ctx, 10)

		// Then: only the three newest come back, newest first
		require.NoError(t, err)
		require.Len(t, recent, 3)
		assert.Equal(t, "m4", recent[0].ID)
		assert.Equal(t, "m3", recent[1].ID)
		assert.Equal(t, "m2", recent[2].ID)

		limited, err := repo.ListRecent(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, limited, 2)
	})

	t.Run("ListRecent on empty history", func(t *testing.T) {
		ctx, repo := newRepo(t, 3)

		recent, err := repo.ListRecent(ctx, 5)

		require.NoError(t, err)
		assert.Empty(t, recent)
	})
}

func TestMemoryMatchRepository(t *testing.T) {
	testMatchRepository(t, func(_ *testing.T, recentLimit int64) (context.Context, MatchRepository) {
		return context.Background(), NewMemoryMatchRepository(int(recentLimit))
	})
}

func TestRedisMatchRepository(t *testing.T) {
	testMatchRepository(t, func(t *testing.T, recentLimit int64) (context.Context, MatchRepository) {
		ctx, st := suite.New(t)

		return ctx, NewMatchRepository(st.Storage, time.Hour, recentLimit)
	})
}

func TestRedisMatchRepository_TTL(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a repository with a one hour retention
	repo := NewMatchRepository(st.Storage, time.Hour, 10)

	// When: a match is saved
	require.NoError(t, repo.Save(ctx, newMatch("m1")))

	// Then: its key expires
	ttl, err := st.Storage.TTL(ctx, matchKey("m1")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)
}
