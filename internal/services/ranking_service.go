package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gridironhq/cfb-ranker/internal/models"
	"github.com/gridironhq/cfb-ranker/internal/postseason"
	"github.com/gridironhq/cfb-ranker/internal/ranking"
)

// RankingService is the read-side facade: it loads season aggregates, runs
// a ranking pass, and derives postseason projections, with redis caching in
// front of each derived result.
type RankingService struct {
	store   *Store
	cache   *CacheService
	engine  *ranking.Engine
	bracket *postseason.BracketGenerator
	bowls   *postseason.BowlAssigner
	logger  *logrus.Logger
	ttl     time.Duration
}

func NewRankingService(
	store *Store,
	cache *CacheService,
	engine *ranking.Engine,
	bracket *postseason.BracketGenerator,
	bowls *postseason.BowlAssigner,
	logger *logrus.Logger,
	ttl time.Duration,
) *RankingService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RankingService{
		store:   store,
		cache:   cache,
		engine:  engine,
		bracket: bracket,
		bowls:   bowls,
		logger:  logger,
		ttl:     ttl,
	}
}

// Rankings returns the full ordered ranking for a season.
func (s *RankingService) Rankings(ctx context.Context, season int) ([]ranking.Entry, error) {
	cacheKey := RankingsCacheKey(season)
	if s.cache != nil {
		var cached []ranking.Entry
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	records, err := s.store.RecordsBySeason(season)
	if err != nil {
		return nil, fmt.Errorf("failed to load season records: %w", err)
	}

	entries := s.engine.Rank(records)

	if s.cache != nil && len(entries) > 0 {
		if err := s.cache.SetWithRetry(ctx, cacheKey, entries, s.ttl, 3); err != nil {
			s.logger.Warnf("Failed to cache rankings for season %d: %v", season, err)
		}
	}
	return entries, nil
}

// TeamDetail returns one team's entry plus its scored wins. The bool is
// false when the team has no record this season.
func (s *RankingService) TeamDetail(ctx context.Context, season int, team string) (ranking.Entry, []ranking.WinDetail, bool, error) {
	records, err := s.store.RecordsBySeason(season)
	if err != nil {
		return ranking.Entry{}, nil, false, fmt.Errorf("failed to load season records: %w", err)
	}

	entry, wins, ok := s.engine.TeamDetail(team, records)
	return entry, wins, ok, nil
}

// Record returns one team's raw season aggregate.
func (s *RankingService) Record(ctx context.Context, season int, team string) (*models.TeamSeasonRecord, error) {
	return s.store.RecordForTeam(season, team)
}

// Bracket generates the current 12-team playoff projection.
func (s *RankingService) Bracket(ctx context.Context, season int) (postseason.Bracket, error) {
	cacheKey := BracketCacheKey(season)
	if s.cache != nil {
		var cached postseason.Bracket
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.Rankings(ctx, season)
	if err != nil {
		return postseason.Bracket{}, err
	}

	bracket := s.bracket.Generate(entries)

	if s.cache != nil && bracket.Complete {
		if err := s.cache.Set(ctx, cacheKey, bracket, s.ttl); err != nil {
			s.logger.Warnf("Failed to cache bracket for season %d: %v", season, err)
		}
	}
	return bracket, nil
}

// Bowls projects the bowl slate beneath the playoff field.
func (s *RankingService) Bowls(ctx context.Context, season int) (postseason.ProjectionResult, error) {
	cacheKey := BowlsCacheKey(season)
	if s.cache != nil {
		var cached postseason.ProjectionResult
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.Rankings(ctx, season)
	if err != nil {
		return postseason.ProjectionResult{}, err
	}
	records, err := s.store.RecordsBySeason(season)
	if err != nil {
		return postseason.ProjectionResult{}, fmt.Errorf("failed to load season records: %w", err)
	}

	bracket := s.bracket.Generate(entries)
	cfpField := make([]string, 0, len(bracket.Slots))
	for _, slot := range bracket.Slots {
		cfpField = append(cfpField, slot.Team)
	}

	result := s.bowls.Project(entries, records, cfpField)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, s.ttl); err != nil {
			s.logger.Warnf("Failed to cache bowl projection for season %d: %v", season, err)
		}
	}
	return result, nil
}
