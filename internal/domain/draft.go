package domain

// Assignment binds one player to one position at a given tier. The
// adjusted score is the player's rating scaled by the tier's role-fit
// multiplier and rounded to the nearest integer.
type Assignment struct {
	PlayerID      int64        `json:"playerId"`
	Name          string       `json:"name"`
	SummonerName  string       `json:"summonerName"`
	Position      Position     `json:"assignedPosition"`
	Type          PositionType `json:"positionType"`
	MainLane      Position     `json:"mainLane"`
	SubLane       Position     `json:"subLane"`
	Rating        int          `json:"originalScore"`
	AdjustedScore int          `json:"adjustedScore"`
}

// TeamComposition is one side of a partition: five assignments, one per
// position, and the sum of their adjusted scores.
type TeamComposition struct {
	TeamNumber  int          `json:"teamNumber"`
	Assignments []Assignment `json:"players"`
	TotalScore  int          `json:"totalScore"`
}

// ByPosition returns the assignment for the given position, if any.
func (t TeamComposition) ByPosition(p Position) (Assignment, bool) {
	for _, a := range t.Assignments {
		if a.Position == p {
			return a, true
		}
	}
	return Assignment{}, false
}

// Combination is one way of splitting the roster into two teams,
// together with the fairness criteria it is ranked on.
type Combination struct {
	Team1                     TeamComposition `json:"team1"`
	Team2                     TeamComposition `json:"team2"`
	ScoreDifference           int             `json:"scoreDifference"`
	MainPositionCount         int             `json:"mainPositionCount"`
	MainPositionLowScoreBonus int             `json:"mainPositionLowScoreBonus"`
}

// RankedSet is the ordered top list of combinations for one exact
// 10-player roster, identified by its sorted player-ID key.
type RankedSet struct {
	Key          string        `json:"rosterKey"`
	Combinations []Combination `json:"combinations"`
}

// Selection is the reroll payload: one combination plus the roster key
// and the 1-based navigation state over the ranked set it was drawn
// from.
type Selection struct {
	Combination
	Key                   string `json:"rosterKey"`
	CurrentCombination    int    `json:"currentCombination"`
	TotalCombinations     int    `json:"totalCombinations"`
	AvailableCombinations []int  `json:"availableCombinations"`
}
