package draft

import (
	"math/bits"
	"sort"
	"strconv"
	"strings"

	"github.com/sjounng/team-draft-lol/internal/domain"
)

const (
	rosterSize = 10
	teamSize   = 5
)

// Partition is one split of the roster into two five-player teams.
// Team1 always holds the lexicographically smaller sorted-ID tuple, so
// the (team1, team2) pairing is deterministic for a given roster.
type Partition struct {
	Team1 []domain.Player
	Team2 []domain.Player
}

// Partitions enumerates every unique way to split ten players into two
// teams of five: C(10,5) = 252 subsets collapse to 126 partitions once
// each subset is deduplicated against its complement.
//
// Enumeration is an iterative bitmask walk over the ID-sorted roster.
// A subset and its complement describe the same partition, so only
// masks containing the lowest-ID player are kept; that player's side is
// by construction the lexicographically smaller tuple and becomes team1.
func Partitions(players []domain.Player) ([]Partition, error) {
	if len(players) != rosterSize {
		return nil, domain.ErrInvalidRosterSize
	}
	seen := make(map[int64]bool, rosterSize)
	for _, p := range players {
		if seen[p.ID] {
			return nil, domain.ErrInvalidRosterSize
		}
		seen[p.ID] = true
	}

	sorted := make([]domain.Player, len(players))
	copy(sorted, players)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	partitions := make([]Partition, 0, 126)
	for mask := 0; mask < 1<<rosterSize; mask++ {
		if bits.OnesCount(uint(mask)) != teamSize || mask&1 == 0 {
			continue
		}
		team1 := make([]domain.Player, 0, teamSize)
		team2 := make([]domain.Player, 0, teamSize)
		for i, p := range sorted {
			if mask&(1<<i) != 0 {
				team1 = append(team1, p)
			} else {
				team2 = append(team2, p)
			}
		}
		partitions = append(partitions, Partition{Team1: team1, Team2: team2})
	}
	return partitions, nil
}

// RosterKey builds the cache key for an exact roster: the sorted player
// IDs joined with dashes.
func RosterKey(playerIDs []int64) string {
	ids := make([]int64, len(playerIDs))
	copy(ids, playerIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, "-")
}
