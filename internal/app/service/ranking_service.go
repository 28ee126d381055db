package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/heppy363/Play/internal/domain/model"
	"github.com/heppy363/Play/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const rankingCacheKey = "ranking:global"

// RankingService serves the total-score leaderboard, read-through cached in
// Redis with the database as authority. Cache failures fall back to the
// database silently.
type RankingService struct {
	progressRepo repository.ProgressRepository
	cache        *redis.Client // nil disables caching
	cacheTTL     time.Duration
}

func NewRankingService(progressRepo repository.ProgressRepository, cache *redis.Client, cacheTTL time.Duration) *RankingService {
	return &RankingService{progressRepo: progressRepo, cache: cache, cacheTTL: cacheTTL}
}

func (s *RankingService) Ranking(ctx context.Context) ([]model.RankingEntry, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, rankingCacheKey).Bytes()
		if err == nil {
			var entries []model.RankingEntry
			if err := json.Unmarshal(cached, &entries); err == nil {
				return entries, nil
			}
		} else if err != redis.Nil {
			log.Printf("ranking cache read failed: %v", err)
		}
	}

	entries, err := s.progressRepo.Ranking(ctx)
	if err != nil {
		return nil, fmt.Errorf("ranking query: %w", err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, rankingCacheKey, payload, s.cacheTTL).Err(); err != nil {
				log.Printf("ranking cache write failed: %v", err)
			}
		}
	}
	return entries, nil
}
