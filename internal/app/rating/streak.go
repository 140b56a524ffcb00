package rating

import "github.com/sjounng/team-draft-lol/internal/config"

// NextStreak advances a signed win/loss streak. A win on a losing
// streak restarts at 1; a loss on a winning streak restarts at -1.
func NextStreak(current int, isWinner bool) int {
	if isWinner {
		if current < 0 {
			return 1
		}
		return current + 1
	}
	if current > 0 {
		return -1
	}
	return current - 1
}

// BonusFor maps a post-transition streak to its bonus points. Winning
// streaks pay the tier bonus, losing streaks pay its negation.
func BonusFor(streak int, tiers []config.StreakTier) int {
	for _, t := range tiers {
		if streak >= t.MinStreak {
			return t.Bonus
		}
		if streak <= -t.MinStreak {
			return -t.Bonus
		}
	}
	return 0
}

// prevStreak steps a streak back toward zero. It is the fallback
// inversion used when no pre-match snapshot exists; it cannot recover
// a streak that flipped sign at the match being cancelled.
func prevStreak(current int) int {
	switch {
	case current > 0:
		return current - 1
	case current < 0:
		return current + 1
	default:
		return 0
	}
}
