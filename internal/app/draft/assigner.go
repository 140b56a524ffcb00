package draft

import (
	"math"
	"sort"

	"github.com/sjounng/team-draft-lol/internal/domain"
)

// Role-fit multipliers per assignment tier. A sub-lane or fill seat
// taken by a primary-support player is a weaker fit than the same seat
// taken by anyone else, hence the extra discount.
const (
	mainWeight        = 1.0
	subWeight         = 0.85
	subWeightSupMain  = 0.75
	fillWeight        = 0.70
	fillWeightSupMain = 0.60
)

// AssignPositions seats a five-player team into the five positions
// using three tiers, each walked in canonical position order:
//
//  1. MAIN: the lowest-rated unassigned player whose main lane matches.
//  2. SUB: the lowest-rated unassigned player whose sub lane matches.
//  3. FILL: remaining players ascending by rating into the remaining
//     positions.
//
// Rating ties break by input order, which callers keep ID-ascending for
// determinism. Every position ends up filled exactly once.
func AssignPositions(team []domain.Player, teamNumber int) domain.TeamComposition {
	assigned := make(map[domain.Position]domain.Assignment, teamSize)
	taken := make(map[int64]bool, teamSize)

	for _, pos := range domain.Positions {
		if p, ok := lowestRated(team, taken, func(c domain.Player) bool { return c.MainLane == pos }); ok {
			assigned[pos] = newAssignment(p, pos, domain.PositionTypeMain, mainWeight)
			taken[p.ID] = true
		}
	}

	for _, pos := range domain.Positions {
		if _, done := assigned[pos]; done {
			continue
		}
		if p, ok := lowestRated(team, taken, func(c domain.Player) bool { return c.SubLane == pos }); ok {
			weight := subWeight
			if p.MainLane == domain.PositionSupport {
				weight = subWeightSupMain
			}
			assigned[pos] = newAssignment(p, pos, domain.PositionTypeSub, weight)
			taken[p.ID] = true
		}
	}

	remaining := make([]domain.Player, 0, teamSize)
	for _, p := range team {
		if !taken[p.ID] {
			remaining = append(remaining, p)
		}
	}
	sort.SliceStable(remaining, func(i, j int) bool { return remaining[i].Rating < remaining[j].Rating })

	idx := 0
	for _, pos := range domain.Positions {
		if _, done := assigned[pos]; done {
			continue
		}
		p := remaining[idx]
		idx++
		weight := fillWeight
		if p.MainLane == domain.PositionSupport {
			weight = fillWeightSupMain
		}
		assigned[pos] = newAssignment(p, pos, domain.PositionTypeFill, weight)
	}

	comp := domain.TeamComposition{TeamNumber: teamNumber}
	for _, pos := range domain.Positions {
		a := assigned[pos]
		comp.Assignments = append(comp.Assignments, a)
		comp.TotalScore += a.AdjustedScore
	}
	return comp
}

func lowestRated(team []domain.Player, taken map[int64]bool, fits func(domain.Player) bool) (domain.Player, bool) {
	var best domain.Player
	found := false
	for _, p := range team {
		if taken[p.ID] || !fits(p) {
			continue
		}
		if !found || p.Rating < best.Rating {
			best = p
			found = true
		}
	}
	return best, found
}

func newAssignment(p domain.Player, pos domain.Position, tier domain.PositionType, weight float64) domain.Assignment {
	return domain.Assignment{
		PlayerID:      p.ID,
		Name:          p.Name,
		SummonerName:  p.SummonerName,
		Position:      pos,
		Type:          tier,
		MainLane:      p.MainLane,
		SubLane:       p.SubLane,
		Rating:        p.Rating,
		AdjustedScore: int(math.Round(float64(p.Rating) * weight)),
	}
}
