package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"gorm.io/datatypes"

	"github.com/gridironhq/cfb-ranker/internal/models"
	"github.com/gridironhq/cfb-ranker/internal/postseason"
	"github.com/gridironhq/cfb-ranker/internal/ranking"
	"github.com/gridironhq/cfb-ranker/pkg/config"
)

// NarrativePlaceholder is returned whenever generation fails. The ranking
// path never depends on this service succeeding.
const NarrativePlaceholder = "Narrative commentary is temporarily unavailable."

// AnthropicRequest represents the request structure for the Claude API
type AnthropicRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

// Message represents a message in the Claude conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AnthropicResponse represents the response from the Claude API
type AnthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NarrativeService generates ranking and bracket commentary from
// already-computed numbers. It is timeout-bounded, rate-limited, and
// circuit-broken so a flaky upstream degrades to placeholder text instead
// of slowing rankings down.
type NarrativeService struct {
	store     *Store
	config    *config.Config
	cache     *CacheService
	apiClient *http.Client
	breaker   *gobreaker.CircuitBreaker
	limiter   *rate.Limiter
	logger    *logrus.Logger
}

func NewNarrativeService(store *Store, cfg *config.Config, cache *CacheService, logger *logrus.Logger) *NarrativeService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	settings := gobreaker.Settings{
		Name:        "anthropic",
		MaxRequests: uint32(cfg.CircuitBreakerRequests),
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	perMinute := cfg.NarrativeRateLimit
	if perMinute <= 0 {
		perMinute = 5
	}

	return &NarrativeService{
		store:  store,
		config: cfg,
		cache:  cache,
		apiClient: &http.Client{
			Timeout: cfg.NarrativeTimeout,
		},
		breaker: gobreaker.NewCircuitBreaker(settings),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		logger:  logger,
	}
}

// RankingsNarrative returns commentary for the current top of the
// rankings. Failures of any kind produce the placeholder.
func (s *NarrativeService) RankingsNarrative(ctx context.Context, season, week int, entries []ranking.Entry) string {
	cacheKey := NarrativeCacheKey(season, week, "rankings")
	if s.cache != nil {
		var cached string
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && cached != "" {
			return cached
		}
	}

	prompt := s.buildRankingsPrompt(week, entries)
	text, err := s.generate(ctx, season, week, "rankings", prompt)
	if err != nil {
		s.logger.Warnf("Rankings narrative degraded to placeholder: %v", err)
		return NarrativePlaceholder
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, text, s.config.NarrativeCacheTTL)
	}
	return text
}

// BracketNarrative returns commentary for a generated playoff bracket.
func (s *NarrativeService) BracketNarrative(ctx context.Context, season, week int, bracket postseason.Bracket) string {
	cacheKey := NarrativeCacheKey(season, week, "bracket")
	if s.cache != nil {
		var cached string
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil && cached != "" {
			return cached
		}
	}

	prompt := s.buildBracketPrompt(bracket)
	text, err := s.generate(ctx, season, week, "bracket", prompt)
	if err != nil {
		s.logger.Warnf("Bracket narrative degraded to placeholder: %v", err)
		return NarrativePlaceholder
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, text, s.config.NarrativeCacheTTL)
	}
	return text
}

func (s *NarrativeService) generate(ctx context.Context, season, week int, kind, prompt string) (string, error) {
	if !s.limiter.Allow() {
		return "", errors.New("narrative rate limit exceeded")
	}

	start := time.Now()
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.callAnthropic(ctx, prompt)
	})

	if s.store != nil {
		requestData, _ := json.Marshal(map[string]string{"prompt": prompt})
		responseText := ""
		if err == nil {
			responseText = result.(string)
		}
		responseData, _ := json.Marshal(map[string]string{"text": responseText})
		s.store.InsertNarrativeLog(&models.NarrativeLog{
			Season:    season,
			Week:      week,
			Kind:      kind,
			Request:   datatypes.JSON(requestData),
			Response:  datatypes.JSON(responseData),
			Succeeded: err == nil,
			LatencyMS: time.Since(start).Milliseconds(),
		})
	}

	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (s *NarrativeService) buildRankingsPrompt(week int, entries []ranking.Entry) string {
	var prompt strings.Builder

	prompt.WriteString("You are a college football analyst writing a short weekly rankings recap.\n\n")
	prompt.WriteString(fmt.Sprintf("Week: %d\n\nCurrent rankings:\n", week))

	limit := len(entries)
	if limit > 12 {
		limit = 12
	}
	for _, entry := range entries[:limit] {
		prompt.WriteString(fmt.Sprintf("%d. %s (%s) %d-%d, adjusted total %.2f\n",
			entry.Position, entry.Team, entry.Conference, entry.Wins, entry.Losses, entry.AdjustedTotal))
	}

	prompt.WriteString("\nWrite 2-3 paragraphs on the state of the race. ")
	prompt.WriteString("Mention movement near the playoff cut line. Plain prose, no lists.")

	return prompt.String()
}

func (s *NarrativeService) buildBracketPrompt(bracket postseason.Bracket) string {
	var prompt strings.Builder

	prompt.WriteString("You are a college football analyst reacting to a projected 12-team playoff bracket.\n\n")
	prompt.WriteString("Seeds:\n")
	for _, slot := range bracket.Slots {
		if slot.IsBye {
			prompt.WriteString(fmt.Sprintf("%d. %s (first-round bye)\n", slot.Seed, slot.Team))
		} else {
			prompt.WriteString(fmt.Sprintf("%d. %s\n", slot.Seed, slot.Team))
		}
	}
	prompt.WriteString("\nFirst-round games:\n")
	for _, game := range bracket.FirstRound {
		prompt.WriteString(fmt.Sprintf("%s (%d) vs %s (%d)\n",
			game.HighSeed.Team, game.HighSeed.Seed, game.LowSeed.Team, game.LowSeed.Seed))
	}

	prompt.WriteString("\nWrite 2 paragraphs: the biggest seeding surprise and the best first-round matchup.")

	return prompt.String()
}

// callAnthropic makes one request to the Anthropic API.
func (s *NarrativeService) callAnthropic(ctx context.Context, prompt string) (string, error) {
	if s.config.AnthropicAPIKey == "" {
		return "", errors.New("Anthropic API key not configured")
	}

	reqBody := AnthropicRequest{
		Model:     "claude-3-haiku-20240307",
		MaxTokens: 1024,
		Messages: []Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.anthropic.com/v1/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.config.AnthropicAPIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := s.apiClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var anthropicResp AnthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&anthropicResp); err != nil {
		return "", err
	}

	if len(anthropicResp.Content) == 0 {
		return "", errors.New("no content in API response")
	}

	return anthropicResp.Content[0].Text, nil
}
