package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gridironhq/cfb-ranker/internal/models"
)

// ScoreboardClient pulls completed college football results from the ESPN
// public scoreboard API.
type ScoreboardClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewScoreboardClient creates a scoreboard client. baseURL defaults to the
// ESPN college football scoreboard when empty.
func NewScoreboardClient(baseURL string, logger *logrus.Logger) *ScoreboardClient {
	if baseURL == "" {
		baseURL = "http://site.api.espn.com/apis/site/v2/sports/football/college-football/scoreboard"
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ScoreboardClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Scoreboard API response structures
type scoreboardResponse struct {
	Events []struct {
		ID           string `json:"id"`
		Date         string `json:"date"`
		Name         string `json:"name"`
		Competitions []struct {
			ID          string `json:"id"`
			NeutralSite bool   `json:"neutralSite"`
			Status      struct {
				Type struct {
					Completed bool   `json:"completed"`
					Name      string `json:"name"`
				} `json:"type"`
				Period int `json:"period"`
			} `json:"status"`
			Competitors []struct {
				ID       string         `json:"id"`
				HomeAway string         `json:"homeAway"`
				Score    string         `json:"score"`
				Team     scoreboardTeam `json:"team"`
			} `json:"competitors"`
		} `json:"competitions"`
	} `json:"events"`
}

type scoreboardTeam struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
	Location     string `json:"location"`
}

// CompletedGames fetches final results for the given season week. Events
// still in progress are skipped; the next sweep picks them up.
func (c *ScoreboardClient) CompletedGames(ctx context.Context, season, week int) ([]models.Game, error) {
	url := fmt.Sprintf("%s?seasontype=2&year=%d&week=%d", c.baseURL, season, week)

	var scoreboard scoreboardResponse
	if err := c.makeRequest(ctx, url, &scoreboard); err != nil {
		return nil, fmt.Errorf("failed to fetch scoreboard: %w", err)
	}

	var games []models.Game
	for _, event := range scoreboard.Events {
		for _, competition := range event.Competitions {
			if !competition.Status.Type.Completed {
				continue
			}

			game := models.Game{
				Season:      season,
				Week:        week,
				NeutralSite: competition.NeutralSite,
				Overtime:    competition.Status.Period > 4,
			}
			if parsed, err := time.Parse("2006-01-02T15:04Z", event.Date); err == nil {
				game.GameDate = parsed
			}

			for _, competitor := range competition.Competitors {
				score, err := strconv.Atoi(competitor.Score)
				if err != nil {
					c.logger.Warnf("Unparseable score %q in event %s", competitor.Score, event.ID)
					continue
				}
				switch competitor.HomeAway {
				case "home":
					game.HomeTeam = competitor.Team.Location
					game.HomeScore = score
				case "away":
					game.AwayTeam = competitor.Team.Location
					game.AwayScore = score
				}
			}

			if err := game.Validate(); err != nil {
				c.logger.WithFields(logrus.Fields{
					"event": event.ID,
					"error": err.Error(),
				}).Warn("Skipping malformed scoreboard event")
				continue
			}
			games = append(games, game)
		}
	}

	return games, nil
}

// makeRequest performs an HTTP request with exponential backoff.
func (c *ScoreboardClient) makeRequest(ctx context.Context, url string, target interface{}) error {
	var resp *http.Response
	var err error

	for attempt := 0; attempt < 3; attempt++ {
		var req *http.Request
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err = c.httpClient.Do(req)
		if err == nil && resp.StatusCode == http.StatusOK {
			break
		}

		if resp != nil {
			resp.Body.Close()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		waitTime := time.Duration(math.Pow(2, float64(attempt))) * time.Second
		c.logger.Warnf("Scoreboard request failed (attempt %d), waiting %v: %v", attempt+1, waitTime, err)
		time.Sleep(waitTime)
	}

	if err != nil {
		return fmt.Errorf("request failed after retries: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(target)
}
