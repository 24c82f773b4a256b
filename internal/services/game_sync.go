package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/gridironhq/cfb-ranker/internal/models"
	"github.com/gridironhq/cfb-ranker/internal/predictions"
	"github.com/gridironhq/cfb-ranker/internal/ranking"
)

// ScoreboardProvider supplies completed results from an external feed.
type ScoreboardProvider interface {
	CompletedGames(ctx context.Context, season, week int) ([]models.Game, error)
}

// GameSyncService owns the scheduled ingest loop: pulling completed games,
// rebuilding season aggregates, resolving pending predictions, and the
// nightly weight recalibration.
type GameSyncService struct {
	store      *Store
	cache      *CacheService
	aggregator *ranking.Aggregator
	tracker    *predictions.Tracker
	provider   ScoreboardProvider
	logger     *logrus.Logger
	cron       *cron.Cron

	mu           sync.Mutex
	isRunning    bool
	season       int
	syncInterval time.Duration
}

func NewGameSyncService(
	store *Store,
	cache *CacheService,
	aggregator *ranking.Aggregator,
	tracker *predictions.Tracker,
	provider ScoreboardProvider,
	logger *logrus.Logger,
	season int,
	syncInterval time.Duration,
) *GameSyncService {
	return &GameSyncService{
		store:        store,
		cache:        cache,
		aggregator:   aggregator,
		tracker:      tracker,
		provider:     provider,
		logger:       logger,
		cron:         cron.New(),
		season:       season,
		syncInterval: syncInterval,
	}
}

// Start schedules the sync jobs.
func (s *GameSyncService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("game sync is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.syncInterval.String())
	if _, err := s.cron.AddFunc(schedule, s.syncCompletedGames); err != nil {
		return fmt.Errorf("failed to schedule game sync: %w", err)
	}

	// College football results land Saturday evenings; sweep pending
	// predictions hourly so resolutions do not wait for the next sync.
	if _, err := s.cron.AddFunc("0 * * * *", s.resolveSweep); err != nil {
		return fmt.Errorf("failed to schedule resolution sweep: %w", err)
	}

	// Nightly recalibration and cache cleanup.
	if _, err := s.cron.AddFunc("0 3 * * *", s.nightly); err != nil {
		return fmt.Errorf("failed to schedule nightly job: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	go s.syncCompletedGames()

	s.logger.Info("Game sync service started")
	return nil
}

// Stop halts scheduled syncing.
func (s *GameSyncService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Game sync service stopped")
}

// IngestGames appends completed results, rebuilds aggregates, and resolves
// any predictions the new results settle. Returns the number of games
// actually ingested; duplicates are skipped.
func (s *GameSyncService) IngestGames(games []models.Game) (int, error) {
	ingested := 0
	for i := range games {
		games[i].Season = s.season
		if err := s.store.InsertGame(&games[i]); err != nil {
			s.logger.WithFields(logrus.Fields{
				"home": games[i].HomeTeam,
				"away": games[i].AwayTeam,
				"week": games[i].Week,
			}).Warnf("Skipping game: %v", err)
			continue
		}
		ingested++
	}

	if ingested == 0 {
		return 0, nil
	}

	if err := s.RebuildRecords(); err != nil {
		return ingested, err
	}
	if _, err := s.ResolvePending(); err != nil {
		s.logger.Errorf("Failed to resolve predictions after ingest: %v", err)
	}
	return ingested, nil
}

// RebuildRecords re-aggregates the whole season from the game log. The
// rebuild is idempotent, so running it again on an unchanged game set is
// harmless.
func (s *GameSyncService) RebuildRecords() error {
	games, err := s.store.GamesBySeason(s.season)
	if err != nil {
		return err
	}

	records := s.aggregator.Aggregate(s.season, games)
	if err := s.store.ReplaceSeasonRecords(s.season, records); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateRankingKeys(context.Background(), s.season); err != nil {
			s.logger.Warnf("Failed to invalidate ranking cache: %v", err)
		}
	}

	s.logger.Infof("Rebuilt season records for %d teams from %d games", len(records), len(games))
	return nil
}

// ResolvePending matches pending predictions against completed games and
// writes their resolutions. Returns the number resolved.
func (s *GameSyncService) ResolvePending() (int, error) {
	pending, err := s.store.PendingPredictions(s.season)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	games, err := s.store.GamesBySeason(s.season)
	if err != nil {
		return 0, err
	}

	resolved := 0
	for i := range pending {
		p := &pending[i]
		for _, game := range games {
			if game.Week != p.Week || !p.Matches(game.HomeTeam, game.AwayTeam) {
				continue
			}
			if err := s.tracker.Resolve(p, game.Winner(), float64(game.Margin())); err != nil {
				s.logger.Warnf("Could not resolve prediction %s: %v", p.PublicID, err)
				break
			}
			if err := s.store.SaveResolution(p); err != nil {
				s.logger.Errorf("Failed to persist resolution for %s: %v", p.PublicID, err)
				break
			}
			resolved++
			break
		}
	}

	if resolved > 0 {
		s.logger.Infof("Resolved %d predictions", resolved)
	}
	return resolved, nil
}

// Recalibrate recomputes suggested temporal weights from resolved
// predictions and persists the weeks that changed.
func (s *GameSyncService) Recalibrate() error {
	logs, err := s.store.PredictionsBySeason(s.season)
	if err != nil {
		return err
	}
	changed := s.tracker.Recalibrate(logs)
	if len(changed) == 0 {
		return nil
	}
	if err := s.store.SaveWeights(s.season, changed); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateRankingKeys(context.Background(), s.season); err != nil {
			s.logger.Warnf("Failed to invalidate ranking cache: %v", err)
		}
	}
	return nil
}

func (s *GameSyncService) syncCompletedGames() {
	if s.provider == nil {
		return
	}

	week := s.currentWeek()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	games, err := s.provider.CompletedGames(ctx, s.season, week)
	if err != nil {
		s.logger.Errorf("Scoreboard sync failed: %v", err)
		return
	}
	if len(games) == 0 {
		return
	}

	if count, err := s.IngestGames(games); err != nil {
		s.logger.Errorf("Failed to ingest synced games: %v", err)
	} else if count > 0 {
		s.logger.Infof("Synced %d new games from scoreboard", count)
	}
}

func (s *GameSyncService) resolveSweep() {
	if _, err := s.ResolvePending(); err != nil {
		s.logger.Errorf("Resolution sweep failed: %v", err)
	}
}

func (s *GameSyncService) nightly() {
	if err := s.Recalibrate(); err != nil {
		s.logger.Errorf("Nightly recalibration failed: %v", err)
	}
	if s.cache != nil {
		if err := s.cache.InvalidateRankingKeys(context.Background(), s.season); err != nil {
			s.logger.Warnf("Nightly cache cleanup failed: %v", err)
		}
	}
}

// currentWeek is the latest week with a recorded game, plus one.
func (s *GameSyncService) currentWeek() int {
	games, err := s.store.GamesBySeason(s.season)
	if err != nil || len(games) == 0 {
		return 1
	}
	latest := 0
	for _, game := range games {
		if game.Week > latest {
			latest = game.Week
		}
	}
	if latest >= 16 {
		return latest
	}
	return latest + 1
}

// Status reports the scheduler state for the health endpoint.
func (s *GameSyncService) Status() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	nextRuns := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		nextRuns = append(nextRuns, entry.Next)
	}

	return map[string]interface{}{
		"is_running":    s.isRunning,
		"sync_interval": s.syncInterval.String(),
		"season":        s.season,
		"next_runs":     nextRuns,
	}
}
