package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gridironhq/cfb-ranker/internal/models"
	"github.com/gridironhq/cfb-ranker/pkg/config"
	"github.com/gridironhq/cfb-ranker/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(db, cfg.Season); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	// Enable UUID extension for PostgreSQL
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Auto migrate all models
	if err := db.AutoMigrate(
		&models.Game{},
		&models.ScheduledGame{},
		&models.TeamSeasonRecord{},
		&models.PredictionLog{},
		&models.TemporalWeight{},
		&models.NarrativeLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	// Create indexes
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_games_season_week ON games(season, week)",
		"CREATE INDEX IF NOT EXISTS idx_games_home_team ON games(home_team)",
		"CREATE INDEX IF NOT EXISTS idx_games_away_team ON games(away_team)",
		"CREATE INDEX IF NOT EXISTS idx_records_season_team ON team_season_records(season, team)",
		"CREATE INDEX IF NOT EXISTS idx_predictions_season_week ON prediction_logs(season, week)",
		"CREATE INDEX IF NOT EXISTS idx_predictions_pending ON prediction_logs(season) WHERE resolved = false",
		"CREATE INDEX IF NOT EXISTS idx_scheduled_season_week ON scheduled_games(season, week)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func dropTables(db *database.DB) error {
	tables := []string{
		"narrative_logs",
		"temporal_weights",
		"prediction_logs",
		"team_season_records",
		"scheduled_games",
		"games",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}

func seedData(db *database.DB, season int) error {
	base := time.Date(season, time.August, 30, 19, 0, 0, 0, time.UTC)

	// A small opening-weeks slate, enough to exercise a ranking pass.
	games := []models.Game{
		{Season: season, Week: 1, HomeTeam: "Georgia", AwayTeam: "Clemson", HomeScore: 34, AwayScore: 3, NeutralSite: true, GameDate: base},
		{Season: season, Week: 1, HomeTeam: "Ohio State", AwayTeam: "Akron", HomeScore: 52, AwayScore: 6, GameDate: base},
		{Season: season, Week: 1, HomeTeam: "Michigan", AwayTeam: "Fresno State", HomeScore: 30, AwayScore: 10, GameDate: base},
		{Season: season, Week: 1, HomeTeam: "Texas", AwayTeam: "Colorado State", HomeScore: 52, AwayScore: 0, GameDate: base},
		{Season: season, Week: 1, HomeTeam: "Alabama", AwayTeam: "Western Kentucky", HomeScore: 63, AwayScore: 0, GameDate: base},
		{Season: season, Week: 1, HomeTeam: "Boise State", AwayTeam: "Georgia Southern", HomeScore: 56, AwayScore: 45, GameDate: base},
		{Season: season, Week: 2, HomeTeam: "Texas", AwayTeam: "Michigan", HomeScore: 31, AwayScore: 12, GameDate: base.AddDate(0, 0, 7)},
		{Season: season, Week: 2, HomeTeam: "Ohio State", AwayTeam: "Western Michigan", HomeScore: 56, AwayScore: 0, GameDate: base.AddDate(0, 0, 7)},
		{Season: season, Week: 2, HomeTeam: "Alabama", AwayTeam: "South Florida", HomeScore: 42, AwayScore: 16, GameDate: base.AddDate(0, 0, 7)},
		{Season: season, Week: 2, HomeTeam: "Oregon", AwayTeam: "Boise State", HomeScore: 37, AwayScore: 34, GameDate: base.AddDate(0, 0, 7)},
		{Season: season, Week: 3, HomeTeam: "Georgia", AwayTeam: "Kentucky", HomeScore: 13, AwayScore: 12, GameDate: base.AddDate(0, 0, 14)},
		{Season: season, Week: 3, HomeTeam: "Penn State", AwayTeam: "Kent State", HomeScore: 56, AwayScore: 0, GameDate: base.AddDate(0, 0, 14)},
	}

	if err := db.Create(&games).Error; err != nil {
		return fmt.Errorf("failed to seed games: %w", err)
	}
	logrus.Infof("Seeded %d games for season %d", len(games), season)

	// Default temporal weights for early weeks.
	weights := make([]models.TemporalWeight, 0, 16)
	for week := 1; week <= 16; week++ {
		weights = append(weights, models.TemporalWeight{
			Season: season,
			Week:   week,
			Weight: 1.0,
		})
	}
	if err := db.Create(&weights).Error; err != nil {
		logrus.Warnf("Failed to seed temporal weights (may already exist): %v", err)
	}

	// Upcoming slate for eligibility windows.
	scheduled := []models.ScheduledGame{
		{Season: season, Week: 4, HomeTeam: "Alabama", AwayTeam: "Georgia", Kickoff: base.AddDate(0, 0, 21)},
		{Season: season, Week: 4, HomeTeam: "Ohio State", AwayTeam: "Penn State", Kickoff: base.AddDate(0, 0, 21)},
		{Season: season, Week: 4, HomeTeam: "Oregon", AwayTeam: "Washington", Kickoff: base.AddDate(0, 0, 21)},
	}
	if err := db.Create(&scheduled).Error; err != nil {
		logrus.Warnf("Failed to seed scheduled games: %v", err)
	}

	return nil
}
