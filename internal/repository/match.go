package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

const recentMatchesKey = "matches:recent"

type MatchRepository interface {
	Save(ctx context.Context, result *entity.MatchResult) error
	GetByID(ctx context.Context, id string) (*entity.MatchResult, error)
	ListRecent(ctx context.Context, limit int64) ([]*entity.MatchResult, error)
}

type dbMatch struct {
	client *redis.Client

	ttl         time.Duration
	recentLimit int64
}

// NewMatchRepository - stores results under match:<id> and keeps the newest ids in a capped list.
func NewMatchRepository(client *redis.Client, ttl time.Duration, recentLimit int64) MatchRepository {
	return &dbMatch{
		client:      client,
		ttl:         ttl,
		recentLimit: recentLimit,
	}
}

func matchKey(id string) string {
	return "match:" + id
}

func (that *dbMatch) Save(ctx context.Context, result *entity.MatchResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal match: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, matchKey(result.ID), resultJSON, that.ttl)
		pipe.LPush(ctx, recentMatchesKey, result.ID)
		pipe.LTrim(ctx, recentMatchesKey, 0, that.recentLimit-1)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*entity.MatchResult, error) {
	response, err := that.client.Get(ctx, matchKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	var result entity.MatchResult
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &result, nil
}

// ListRecent - returns up to limit results, newest first. Expired entries are skipped.
func (that *dbMatch) ListRecent(ctx context.Context, limit int64) ([]*entity.MatchResult, error) {
	if limit <= 0 {
		return []*entity.MatchResult{}, nil
	}

	ids, err := that.client.LRange(ctx, recentMatchesKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent matches: %w", err)
	}

	results := make([]*entity.MatchResult, 0, len(ids))
	if len(ids) == 0 {
		return results, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, matchKey(id))
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent matches: %w", err)
	}

	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var result entity.MatchResult
		if err = json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match: %w", err)
		}

		results = append(results, &result)
	}

	return results, nil
}
