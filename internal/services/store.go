package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gridironhq/cfb-ranker/internal/models"
	"github.com/gridironhq/cfb-ranker/pkg/database"
)

// Store is the repository for games, season records, predictions, and
// temporal weights. Writes that represent "one game's effect" or "one
// prediction's resolution" run inside a transaction so a crash never
// leaves a half-updated row.
type Store struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewStore(db *database.DB, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store{db: db, logger: logger}
}

// --- Games ---

// InsertGame validates and appends one completed result. Duplicate
// matchups for the same week are rejected by the unique index.
func (s *Store) InsertGame(game *models.Game) error {
	if err := game.Validate(); err != nil {
		return fmt.Errorf("malformed game: %w", err)
	}
	if err := s.db.Create(game).Error; err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return nil
}

func (s *Store) GamesBySeason(season int) ([]models.Game, error) {
	var games []models.Game
	err := s.db.Where("season = ?", season).
		Order("week, game_date, id").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch games: %w", err)
	}
	return games, nil
}

func (s *Store) GamesByWeek(season, week int) ([]models.Game, error) {
	var games []models.Game
	err := s.db.Where("season = ? AND week = ?", season, week).
		Order("game_date, id").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch games for week %d: %w", week, err)
	}
	return games, nil
}

// --- Season records ---

// ReplaceSeasonRecords swaps in a freshly aggregated record set for the
// season in one transaction.
func (s *Store) ReplaceSeasonRecords(season int, records map[string]*models.TeamSeasonRecord) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("season = ?", season).Delete(&models.TeamSeasonRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear season records: %w", err)
		}
		for _, rec := range records {
			rec.ID = 0
			if err := tx.Create(rec).Error; err != nil {
				return fmt.Errorf("failed to save record for %s: %w", rec.Team, err)
			}
		}
		return nil
	})
}

func (s *Store) RecordsBySeason(season int) (map[string]*models.TeamSeasonRecord, error) {
	var rows []models.TeamSeasonRecord
	if err := s.db.Where("season = ?", season).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch season records: %w", err)
	}
	records := make(map[string]*models.TeamSeasonRecord, len(rows))
	for i := range rows {
		records[rows[i].Team] = &rows[i]
	}
	return records, nil
}

func (s *Store) RecordForTeam(season int, team string) (*models.TeamSeasonRecord, error) {
	var rec models.TeamSeasonRecord
	err := s.db.Where("season = ? AND team = ?", season, team).First(&rec).Error
	if err != nil {
		return nil, fmt.Errorf("no record for %s: %w", team, err)
	}
	return &rec, nil
}

// --- Predictions ---

func (s *Store) InsertPrediction(p *models.PredictionLog) error {
	if p.PublicID == "" {
		p.PublicID = uuid.NewString()
	}
	if err := s.db.Create(p).Error; err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}
	return nil
}

func (s *Store) PredictionsBySeason(season int) ([]models.PredictionLog, error) {
	var logs []models.PredictionLog
	err := s.db.Where("season = ?", season).
		Order("week, created_at").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch predictions: %w", err)
	}
	return logs, nil
}

func (s *Store) PendingPredictions(season int) ([]models.PredictionLog, error) {
	var logs []models.PredictionLog
	err := s.db.Where("season = ? AND resolved = ?", season, false).
		Order("week, created_at").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending predictions: %w", err)
	}
	return logs, nil
}

// SaveResolution persists the write-once resolution half of a prediction.
// The guard on resolved = false keeps a racing second resolver from
// overwriting a terminal row.
func (s *Store) SaveResolution(p *models.PredictionLog) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PredictionLog{}).
			Where("id = ? AND resolved = ?", p.ID, false).
			Updates(map[string]interface{}{
				"resolved":       true,
				"actual_winner":  p.ActualWinner,
				"actual_margin":  p.ActualMargin,
				"winner_correct": p.WinnerCorrect,
				"margin_error":   p.MarginError,
				"accuracy_score": p.AccuracyScore,
				"resolved_at":    p.ResolvedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to save resolution: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("prediction %s already resolved", p.PublicID)
		}
		return nil
	})
}

// --- Temporal weights ---

func (s *Store) LoadWeights(season int) (map[int]float64, error) {
	var rows []models.TemporalWeight
	if err := s.db.Where("season = ?", season).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load temporal weights: %w", err)
	}
	weights := make(map[int]float64, len(rows))
	for _, row := range rows {
		weights[row.Week] = row.Weight
	}
	return weights, nil
}

// SaveWeights upserts the changed weeks in one transaction.
func (s *Store) SaveWeights(season int, weights map[int]float64) error {
	if len(weights) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for week, weight := range weights {
			row := models.TemporalWeight{Season: season, Week: week, Weight: weight}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "season"}, {Name: "week"}},
				DoUpdates: clause.AssignmentColumns([]string{"weight", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("failed to save weight for week %d: %w", week, err)
			}
		}
		return nil
	})
}

// --- Scheduled games ---

func (s *Store) ScheduledGames(season int) ([]models.ScheduledGame, error) {
	var games []models.ScheduledGame
	err := s.db.Where("season = ?", season).Order("kickoff").Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scheduled games: %w", err)
	}
	return games, nil
}

// --- Narrative audit ---

func (s *Store) InsertNarrativeLog(log *models.NarrativeLog) {
	if err := s.db.Create(log).Error; err != nil {
		// Audit failure never blocks the caller.
		s.logger.Warnf("Failed to store narrative log: %v", err)
	}
}
