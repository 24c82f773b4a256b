package predictions

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gridironhq/cfb-ranker/internal/models"
	"github.com/gridironhq/cfb-ranker/internal/ranking"
)

// Recalibration thresholds: weeks grading out above the high bar earn more
// temporal weight, weeks below the low bar lose some.
const (
	accuracyHighBar = 80.0
	accuracyLowBar  = 60.0
	weightStep      = 0.05
	minFactorSample = 3
)

// WeekRecord aggregates prediction performance for one week.
type WeekRecord struct {
	Week            int     `json:"week"`
	Predictions     int     `json:"predictions"`
	Resolved        int     `json:"resolved"`
	AvgConfidence   float64 `json:"avg_confidence"`
	AvgAccuracy     float64 `json:"avg_accuracy"`
	WinnerAccuracy  float64 `json:"winner_accuracy"`
	CurrentWeight   float64 `json:"current_weight"`
	SuggestedWeight float64 `json:"suggested_weight"`
}

// FactorStat surfaces how a named prediction factor correlates with
// accuracy. Factors with fewer than three resolved samples are withheld.
type FactorStat struct {
	Factor         string  `json:"factor"`
	Samples        int     `json:"samples"`
	AvgAccuracy    float64 `json:"avg_accuracy"`
	WinnerAccuracy float64 `json:"winner_accuracy"`
}

// Report is the season-wide accuracy picture.
type Report struct {
	Weeks           []WeekRecord `json:"weeks"`
	Factors         []FactorStat `json:"factors"`
	OverallAccuracy float64      `json:"overall_accuracy"`
	ResolvedCount   int          `json:"resolved_count"`
	PendingCount    int          `json:"pending_count"`
}

// Tracker scores resolved predictions and recalibrates the temporal weight
// table from weekly accuracy. It is the table's only writer.
type Tracker struct {
	weights *ranking.TemporalWeightTable
	logger  *logrus.Logger
}

func NewTracker(weights *ranking.TemporalWeightTable, logger *logrus.Logger) *Tracker {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Tracker{weights: weights, logger: logger}
}

// Score grades one resolved prediction on a 0-100 scale. A correct winner
// call floors at 50 and loses 2 points per point of margin error; a wrong
// call starts at 50 and loses 1.5 per point.
func Score(winnerCorrect bool, marginError float64) float64 {
	if winnerCorrect {
		return math.Max(50, 100-math.Min(50, 2*marginError))
	}
	return math.Max(0, 50-1.5*marginError)
}

// Resolve fills the resolution half of a pending prediction. Resolved
// predictions are terminal and are never re-resolved.
func (t *Tracker) Resolve(p *models.PredictionLog, actualWinner string, actualMargin float64) error {
	if p.Resolved {
		return fmt.Errorf("prediction %s already resolved", p.PublicID)
	}

	winnerCorrect := p.PredictedWinner == actualWinner

	// With the wrong winner the error is the full swing between the
	// predicted and actual outcomes.
	marginError := math.Abs(p.PredictedMargin - actualMargin)
	if !winnerCorrect {
		marginError = p.PredictedMargin + actualMargin
	}

	score := Score(winnerCorrect, marginError)
	now := time.Now().UTC()

	p.Resolved = true
	p.ActualWinner = &actualWinner
	p.ActualMargin = &actualMargin
	p.WinnerCorrect = &winnerCorrect
	p.MarginError = &marginError
	p.AccuracyScore = &score
	p.ResolvedAt = &now

	t.logger.WithFields(logrus.Fields{
		"prediction": p.PublicID,
		"week":       p.Week,
		"correct":    winnerCorrect,
		"score":      score,
	}).Debug("Prediction resolved")

	return nil
}

// Report builds weekly records and factor diagnostics from a season's logs.
func (t *Tracker) Report(logs []models.PredictionLog) Report {
	type weekAgg struct {
		predictions    int
		resolved       int
		confidenceSum  float64
		accuracySum    float64
		winnersCorrect int
	}
	weeks := make(map[int]*weekAgg)

	type factorAgg struct {
		samples        int
		accuracySum    float64
		winnersCorrect int
	}
	factors := make(map[string]*factorAgg)

	var resolvedCount, pendingCount int
	var overallSum float64

	for i := range logs {
		p := &logs[i]
		agg, ok := weeks[p.Week]
		if !ok {
			agg = &weekAgg{}
			weeks[p.Week] = agg
		}
		agg.predictions++
		agg.confidenceSum += p.Confidence

		if !p.Resolved || p.AccuracyScore == nil {
			pendingCount++
			continue
		}
		resolvedCount++
		overallSum += *p.AccuracyScore
		agg.resolved++
		agg.accuracySum += *p.AccuracyScore
		if p.WinnerCorrect != nil && *p.WinnerCorrect {
			agg.winnersCorrect++
		}

		for _, factor := range p.Factors {
			fa, ok := factors[factor]
			if !ok {
				fa = &factorAgg{}
				factors[factor] = fa
			}
			fa.samples++
			fa.accuracySum += *p.AccuracyScore
			if p.WinnerCorrect != nil && *p.WinnerCorrect {
				fa.winnersCorrect++
			}
		}
	}

	weekNums := make([]int, 0, len(weeks))
	for week := range weeks {
		weekNums = append(weekNums, week)
	}
	sort.Ints(weekNums)

	weekRecords := make([]WeekRecord, 0, len(weekNums))
	for _, week := range weekNums {
		agg := weeks[week]
		record := WeekRecord{
			Week:          week,
			Predictions:   agg.predictions,
			Resolved:      agg.resolved,
			AvgConfidence: agg.confidenceSum / float64(agg.predictions),
			CurrentWeight: t.weights.Weight(week),
		}
		if agg.resolved > 0 {
			record.AvgAccuracy = agg.accuracySum / float64(agg.resolved)
			record.WinnerAccuracy = float64(agg.winnersCorrect) / float64(agg.resolved) * 100
		}
		record.SuggestedWeight = suggestWeight(record.CurrentWeight, record.AvgAccuracy, agg.resolved)
		weekRecords = append(weekRecords, record)
	}

	factorStats := make([]FactorStat, 0, len(factors))
	for factor, fa := range factors {
		if fa.samples < minFactorSample {
			continue
		}
		factorStats = append(factorStats, FactorStat{
			Factor:         factor,
			Samples:        fa.samples,
			AvgAccuracy:    fa.accuracySum / float64(fa.samples),
			WinnerAccuracy: float64(fa.winnersCorrect) / float64(fa.samples) * 100,
		})
	}
	sort.Slice(factorStats, func(i, j int) bool {
		if factorStats[i].AvgAccuracy != factorStats[j].AvgAccuracy {
			return factorStats[i].AvgAccuracy > factorStats[j].AvgAccuracy
		}
		return factorStats[i].Factor < factorStats[j].Factor
	})

	report := Report{
		Weeks:         weekRecords,
		Factors:       factorStats,
		ResolvedCount: resolvedCount,
		PendingCount:  pendingCount,
	}
	if resolvedCount > 0 {
		report.OverallAccuracy = overallSum / float64(resolvedCount)
	}
	return report
}

// Recalibrate applies each week's suggested weight to the table and
// returns the weeks that changed.
func (t *Tracker) Recalibrate(logs []models.PredictionLog) map[int]float64 {
	changed := make(map[int]float64)
	for _, record := range t.Report(logs).Weeks {
		if record.SuggestedWeight == record.CurrentWeight {
			continue
		}
		t.weights.Set(record.Week, record.SuggestedWeight)
		changed[record.Week] = record.SuggestedWeight
		t.logger.WithFields(logrus.Fields{
			"week":   record.Week,
			"weight": record.SuggestedWeight,
		}).Info("Temporal weight recalibrated")
	}
	return changed
}

func suggestWeight(current, avgAccuracy float64, resolved int) float64 {
	if resolved == 0 {
		return current
	}
	switch {
	case avgAccuracy > accuracyHighBar:
		return math.Min(ranking.WeightCeiling, current+weightStep)
	case avgAccuracy < accuracyLowBar:
		return math.Max(ranking.WeightFloor, current-weightStep)
	default:
		return current
	}
}
