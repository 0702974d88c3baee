package services

import "math"

// ScoreResult is the outcome of a single price guess.
type ScoreResult struct {
	Points     int     `json:"points"`
	Tier       string  `json:"tier"`
	PercentOff float64 `json:"percent_off"`
}

const (
	TierExcellent = "excellent"
	TierVeryClose = "very close"
	TierGood      = "good"
	TierFar       = "far"
	TierMissed    = "missed"
)

// scoreTiers is evaluated in ascending order; first match wins.
var scoreTiers = []struct {
	maxPercentOff float64
	points        int
	tier          string
}{
	{5, 1000, TierExcellent},
	{10, 500, TierVeryClose},
	{20, 250, TierGood},
	{50, 100, TierFar},
}

type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// Score rates a guess against the actual listing price by percentage
// deviation. The candidate query filters out non-positive prices, so
// actual <= 0 only happens on a caller bug.
func (s *ScoringService) Score(guess, actual float64) (ScoreResult, error) {
	if actual <= 0 || guess < 0 || math.IsNaN(guess) || math.IsInf(guess, 0) {
		return ScoreResult{}, ErrInvalidInput
	}

	percentOff := math.Abs(guess-actual) / actual * 100

	for _, t := range scoreTiers {
		if percentOff <= t.maxPercentOff {
			return ScoreResult{Points: t.points, Tier: t.tier, PercentOff: percentOff}, nil
		}
	}
	return ScoreResult{Points: 0, Tier: TierMissed, PercentOff: percentOff}, nil
}
