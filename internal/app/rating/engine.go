package rating

import (
	"math"

	"github.com/sjounng/team-draft-lol/internal/config"
	"github.com/sjounng/team-draft-lol/internal/domain"
)

// Engine computes per-player rating deltas for finished matches and
// applies, cancels, or replays their effect on player state. All
// coefficients come from the ScoringConfig so a formula retune never
// needs a code change.
//
// The engine mutates the in-memory players and match handed to it;
// persisting the result atomically is the caller's job.
type Engine struct {
	cfg config.ScoringConfig
}

func NewEngine(cfg config.ScoringConfig) *Engine {
	return &Engine{cfg: cfg}
}

// ComputeDelta returns the signed rating change for one line of a
// match. preStreak is the player's streak before this match took
// effect; it only feeds the streak bonus, which is added after the
// clamp, so the unbonused delta for a winner always lands in
// [MinDelta, MaxDelta] and for a loser in [-MaxDelta, -MinDelta].
func (e *Engine) ComputeDelta(m *domain.Match, line domain.MatchLine, preStreak int) int {
	isWinner := m.LineIsWinner(line)

	total := float64(e.cfg.BasePoints)
	if !isWinner {
		total = -total
	}

	kda := float64(line.Kills + line.Assists)
	if line.Deaths > 0 {
		kda /= float64(line.Deaths)
	}
	weighted := math.Round(kda) * e.positionWeight(line.Position)

	if isWinner {
		total += clampFloat(weighted, float64(e.cfg.MinDelta), float64(e.cfg.MaxDelta))
	} else {
		perf := float64(e.cfg.MinDelta)
		if weighted != 0 {
			perf = math.Min(float64(e.cfg.MaxDelta), e.cfg.LoserKDANumerator/weighted)
		}
		total -= perf
	}

	ownGold, oppGold := m.TeamGold(line.TeamNumber)
	goldTerm := math.Round(float64(ownGold) / float64(maxInt(oppGold, 1)) * e.cfg.GoldWeight)
	if isWinner {
		total += goldTerm
	} else {
		total -= goldTerm
	}

	if opp, ok := m.OpposingLine(line); ok {
		total += e.laneDiffTerm(line, opp, isWinner)
		total += e.opponentComparisonTerm(line, opp, isWinner)
	}

	if isWinner {
		total = clampFloat(total, float64(e.cfg.MinDelta), float64(e.cfg.MaxDelta))
	} else {
		total = clampFloat(total, -float64(e.cfg.MaxDelta), -float64(e.cfg.MinDelta))
	}

	total += float64(BonusFor(NextStreak(preStreak, isWinner), e.cfg.StreakTiers))
	return int(math.Round(total))
}

// laneDiffTerm compares creep score against the direct lane opponent,
// or vision score for the support matchup.
func (e *Engine) laneDiffTerm(line, opp domain.MatchLine, isWinner bool) float64 {
	divisor := e.cfg.CSDivisor
	if line.Position == domain.PositionSupport {
		divisor = e.cfg.VisionDivisor
	}
	term := float64((line.CS - opp.CS) / maxInt(divisor, 1))
	if !isWinner {
		term = -term
	}
	return term
}

// opponentComparisonTerm rewards or penalizes a player by the ratio of
// raw kill participation against the same-position opponent. Equal
// participation contributes nothing.
func (e *Engine) opponentComparisonTerm(line, opp domain.MatchLine, isWinner bool) float64 {
	mine := line.Kills + line.Assists
	theirs := opp.Kills + opp.Assists
	if mine == theirs {
		return 0
	}

	var ratio float64
	if theirs > mine {
		if isWinner {
			ratio = float64(theirs) / float64(maxInt(mine, 1))
		} else {
			ratio = float64(mine) / float64(maxInt(theirs, 1))
		}
		return ratio * e.cfg.OpponentComparisonWeight
	}
	if isWinner {
		ratio = float64(theirs) / float64(maxInt(mine, 1))
	} else {
		ratio = float64(mine) / float64(maxInt(theirs, 1))
	}
	return -ratio * e.cfg.OpponentComparisonWeight
}

// Apply computes and commits every line's delta: rating moves by the
// delta (floored at zero), the streak advances, and each line records
// the pre-match streak so the transition can be inverted exactly.
func (e *Engine) Apply(m *domain.Match, players map[int64]*domain.Player) ([]domain.Outcome, error) {
	if m.IsApplied {
		return nil, domain.ErrAlreadyApplied
	}
	outcomes := make([]domain.Outcome, 0, len(m.Lines))
	for i := range m.Lines {
		line := m.Lines[i]
		player, ok := players[line.PlayerID]
		if !ok {
			return nil, domain.ErrPlayerNotFound
		}
		pre := player.Streak
		snapshot := pre
		m.Lines[i].StreakAtMatch = &snapshot

		delta := e.ComputeDelta(m, line, pre)
		before := player.Rating
		player.Rating = maxInt(0, before+delta)
		player.Streak = NextStreak(pre, m.LineIsWinner(line))

		outcomes = append(outcomes, e.outcome(m, line, player, before, delta, pre))
	}
	m.IsApplied = true
	return outcomes, nil
}

// Cancel reverses an applied match. The streak is restored from the
// line's pre-match snapshot when one exists, which makes the streak
// inversion exact; without a snapshot it steps back toward zero. The
// rating reversal subtracts the recomputed delta and is approximate
// when the apply hit the zero floor.
func (e *Engine) Cancel(m *domain.Match, players map[int64]*domain.Player) ([]domain.Outcome, error) {
	if !m.IsApplied {
		return nil, domain.ErrNotApplied
	}
	outcomes := make([]domain.Outcome, 0, len(m.Lines))
	for i := range m.Lines {
		line := m.Lines[i]
		player, ok := players[line.PlayerID]
		if !ok {
			return nil, domain.ErrPlayerNotFound
		}
		pre := prevStreak(player.Streak)
		if line.StreakAtMatch != nil {
			pre = *line.StreakAtMatch
		}

		delta := e.ComputeDelta(m, line, pre)
		before := player.Rating
		player.Rating = maxInt(0, before-delta)
		player.Streak = pre
		m.Lines[i].StreakAtMatch = nil

		outcomes = append(outcomes, e.outcome(m, line, player, before, -delta, pre))
	}
	m.IsApplied = false
	return outcomes, nil
}

// Simulate runs the delta pipeline against current player state
// without committing anything.
func (e *Engine) Simulate(m *domain.Match, players map[int64]*domain.Player) ([]domain.Outcome, error) {
	outcomes := make([]domain.Outcome, 0, len(m.Lines))
	for _, line := range m.Lines {
		player, ok := players[line.PlayerID]
		if !ok {
			return nil, domain.ErrPlayerNotFound
		}
		delta := e.ComputeDelta(m, line, player.Streak)
		preview := *player
		preview.Rating = maxInt(0, player.Rating+delta)
		outcomes = append(outcomes, e.outcome(m, line, &preview, player.Rating, delta, player.Streak))
	}
	return outcomes, nil
}

// Recalculate re-baselines a match history against the current
// coefficient set: each match, strictly in the given (creation) order,
// is cancelled if applied and then re-applied. Running it twice yields
// the same final ratings and streaks.
func (e *Engine) Recalculate(matches []*domain.Match, players map[int64]*domain.Player) ([][]domain.Outcome, error) {
	all := make([][]domain.Outcome, 0, len(matches))
	for _, m := range matches {
		if m.IsApplied {
			if _, err := e.Cancel(m, players); err != nil {
				return nil, err
			}
		}
		outcomes, err := e.Apply(m, players)
		if err != nil {
			return nil, err
		}
		all = append(all, outcomes)
	}
	return all, nil
}

func (e *Engine) outcome(m *domain.Match, line domain.MatchLine, player *domain.Player, before, delta, preStreak int) domain.Outcome {
	isWinner := m.LineIsWinner(line)
	return domain.Outcome{
		PlayerID:     line.PlayerID,
		Name:         player.Name,
		SummonerName: player.SummonerName,
		TeamNumber:   line.TeamNumber,
		Position:     line.Position,
		IsWinner:     isWinner,
		BeforeRating: before,
		AfterRating:  player.Rating,
		Delta:        delta,
		StreakBonus:  BonusFor(NextStreak(preStreak, isWinner), e.cfg.StreakTiers),
	}
}

func (e *Engine) positionWeight(p domain.Position) float64 {
	if w, ok := e.cfg.PositionWeights[string(p)]; ok {
		return w
	}
	return e.cfg.DefaultPositionWeight
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
