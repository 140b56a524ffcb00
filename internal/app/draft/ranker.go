package draft

import (
	"sort"

	"github.com/sjounng/team-draft-lol/internal/domain"
)

// maxRanked caps how many combinations a ranked set retains.
const maxRanked = 10

// Rank runs the full combination search for a roster: every unique
// partition is seated by AssignPositions, scored on the fairness
// criteria, and the top combinations are returned in ranking order.
//
// The ranking contract: more players on their main position beats
// everything, then seating weaker players on their main position, then
// the tightest total-score parity.
func Rank(players []domain.Player) (domain.RankedSet, error) {
	partitions, err := Partitions(players)
	if err != nil {
		return domain.RankedSet{}, err
	}

	maxRating := 0
	ids := make([]int64, 0, len(players))
	for _, p := range players {
		if p.Rating > maxRating {
			maxRating = p.Rating
		}
		ids = append(ids, p.ID)
	}

	combos := make([]domain.Combination, 0, len(partitions))
	for _, part := range partitions {
		team1 := AssignPositions(part.Team1, 1)
		team2 := AssignPositions(part.Team2, 2)
		combos = append(combos, domain.Combination{
			Team1:                     team1,
			Team2:                     team2,
			ScoreDifference:           abs(team1.TotalScore - team2.TotalScore),
			MainPositionCount:         mainCount(team1) + mainCount(team2),
			MainPositionLowScoreBonus: lowScoreBonus(team1, maxRating) + lowScoreBonus(team2, maxRating),
		})
	}

	sort.SliceStable(combos, func(i, j int) bool {
		a, b := combos[i], combos[j]
		if a.MainPositionCount != b.MainPositionCount {
			return a.MainPositionCount > b.MainPositionCount
		}
		if a.MainPositionLowScoreBonus != b.MainPositionLowScoreBonus {
			return a.MainPositionLowScoreBonus > b.MainPositionLowScoreBonus
		}
		return a.ScoreDifference < b.ScoreDifference
	})

	if len(combos) > maxRanked {
		combos = combos[:maxRanked]
	}
	return domain.RankedSet{Key: RosterKey(ids), Combinations: combos}, nil
}

func mainCount(team domain.TeamComposition) int {
	count := 0
	for _, a := range team.Assignments {
		if a.Type == domain.PositionTypeMain {
			count++
		}
	}
	return count
}

// lowScoreBonus sums (maxRating - rating) over MAIN assignments: a
// weaker player on their main position contributes a larger bonus.
func lowScoreBonus(team domain.TeamComposition, maxRating int) int {
	bonus := 0
	for _, a := range team.Assignments {
		if a.Type == domain.PositionTypeMain {
			bonus += maxRating - a.Rating
		}
	}
	return bonus
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
