package domain

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// MatchLine is one player's combat statistics for a finished match.
// CS holds creep score, or vision score for the SUP line. StreakAtMatch
// snapshots the player's streak immediately before the match's effect
// was applied; it is nil until the match has been applied once.
type MatchLine struct {
	PlayerID      int64    `json:"playerId"`
	TeamNumber    int      `json:"teamNumber"`
	Position      Position `json:"assignedPosition"`
	Kills         int      `json:"kills"`
	Deaths        int      `json:"deaths"`
	Assists       int      `json:"assists"`
	CS            int      `json:"cs"`
	StreakAtMatch *int     `json:"streakAtMatch,omitempty"`
}

// Match is a completed game's record: team aggregates, the winner flag,
// and exactly ten per-player lines (five per team, one per position).
type Match struct {
	ID         int64       `json:"matchId"`
	OwnerID    uuid.UUID   `json:"-"`
	Team1Won   bool        `json:"team1Won"`
	Team1Kills int         `json:"team1Kills"`
	Team2Kills int         `json:"team2Kills"`
	Team1Gold  int         `json:"team1Gold"`
	Team2Gold  int         `json:"team2Gold"`
	IsApplied  bool        `json:"isApplied"`
	Lines      []MatchLine `json:"playerRecords"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// LineIsWinner reports whether the given line is on the winning team.
func (m Match) LineIsWinner(line MatchLine) bool {
	return (line.TeamNumber == 1) == m.Team1Won
}

// OpposingLine finds the line holding the same position on the other
// team.
func (m Match) OpposingLine(line MatchLine) (MatchLine, bool) {
	for _, l := range m.Lines {
		if l.Position == line.Position && l.TeamNumber != line.TeamNumber {
			return l, true
		}
	}
	return MatchLine{}, false
}

// TeamGold returns the gold totals for the line's own team and its
// opponent.
func (m Match) TeamGold(teamNumber int) (own, opponent int) {
	if teamNumber == 1 {
		return m.Team1Gold, m.Team2Gold
	}
	return m.Team2Gold, m.Team1Gold
}

// Validate checks the structural invariants of a match record: exactly
// ten lines, five per team, one line per (team, position) pair, and no
// repeated player.
func (m Match) Validate() error {
	if len(m.Lines) != 10 {
		return ErrInvalidMatch
	}
	type slot struct {
		team     int
		position Position
	}
	perTeam := map[int]int{}
	seenSlot := map[slot]bool{}
	seenPlayer := map[int64]bool{}
	for _, l := range m.Lines {
		if l.TeamNumber != 1 && l.TeamNumber != 2 {
			return ErrInvalidMatch
		}
		if !l.Position.Valid() {
			return ErrInvalidMatch
		}
		if seenPlayer[l.PlayerID] {
			return ErrInvalidMatch
		}
		if seenSlot[slot{l.TeamNumber, l.Position}] {
			return ErrInvalidMatch
		}
		seenPlayer[l.PlayerID] = true
		seenSlot[slot{l.TeamNumber, l.Position}] = true
		perTeam[l.TeamNumber]++
	}
	if perTeam[1] != 5 || perTeam[2] != 5 {
		return ErrInvalidMatch
	}
	return nil
}

// Outcome is the per-player result of applying, cancelling, or
// simulating a match.
type Outcome struct {
	PlayerID     int64    `json:"playerId"`
	Name         string   `json:"playerName"`
	SummonerName string   `json:"summonerName"`
	TeamNumber   int      `json:"teamNumber"`
	Position     Position `json:"assignedPosition"`
	IsWinner     bool     `json:"isWinner"`
	BeforeRating int      `json:"beforeScore"`
	AfterRating  int      `json:"afterScore"`
	Delta        int      `json:"scoreChange"`
	StreakBonus  int      `json:"streakBonus"`
}
