package config

const (
	envScoringBase     = "SCORING_BASE_POINTS"
	envScoringMinDelta = "SCORING_MIN_DELTA"
	envScoringMaxDelta = "SCORING_MAX_DELTA"
)

// ScoringConfig holds every coefficient of the rating delta formula.
// The original point system shipped with two diverging hand-rolled
// variants of these numbers; keeping them as data makes the canonical
// set explicit and lets deployments re-tune without a code change.
type ScoringConfig struct {
	// BasePoints is credited to winners and debited from losers before
	// any performance terms.
	BasePoints int
	// MinDelta/MaxDelta clamp the winner delta to [MinDelta, MaxDelta]
	// and the loser delta to [-MaxDelta, -MinDelta], before the streak
	// bonus is added.
	MinDelta int
	MaxDelta int
	// PositionWeights scale the rounded KDA per assigned position.
	PositionWeights map[string]float64
	// DefaultPositionWeight applies to an unrecognized position.
	DefaultPositionWeight float64
	// LoserKDANumerator is divided by the loser's weighted KDA to
	// produce the (negated) loser performance term.
	LoserKDANumerator float64
	// GoldWeight scales the own-gold / opponent-gold ratio.
	GoldWeight float64
	// VisionDivisor divides the support vision-score difference.
	VisionDivisor int
	// CSDivisor divides the creep-score difference for non-support lines.
	CSDivisor int
	// OpponentComparisonWeight scales the same-position raw-KDA ratio.
	OpponentComparisonWeight float64
	// StreakTiers maps the minimum absolute streak (post-transition) to
	// the bonus magnitude. Losing streaks mirror with negated bonuses.
	StreakTiers []StreakTier
}

// StreakTier pairs a streak threshold with its bonus.
type StreakTier struct {
	MinStreak int
	Bonus     int
}

// DefaultScoring returns the canonical coefficient set.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		BasePoints: 7,
		MinDelta:   7,
		MaxDelta:   75,
		PositionWeights: map[string]float64{
			"TOP": 3.0,
			"JGL": 2.5,
			"MID": 2.5,
			"ADC": 2.0,
			"SUP": 2.0,
		},
		DefaultPositionWeight:    0.5,
		LoserKDANumerator:        15,
		GoldWeight:               0.5,
		VisionDivisor:            10,
		CSDivisor:                5,
		OpponentComparisonWeight: 2,
		StreakTiers: []StreakTier{
			{MinStreak: 6, Bonus: 5},
			{MinStreak: 4, Bonus: 3},
			{MinStreak: 2, Bonus: 2},
		},
	}
}

func loadScoring() ScoringConfig {
	cfg := DefaultScoring()
	cfg.BasePoints = intEnvOrDefault(envScoringBase, cfg.BasePoints)
	cfg.MinDelta = intEnvOrDefault(envScoringMinDelta, cfg.MinDelta)
	cfg.MaxDelta = intEnvOrDefault(envScoringMaxDelta, cfg.MaxDelta)
	return cfg
}
