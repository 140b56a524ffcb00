package rating

import (
	"testing"

	"github.com/sjounng/team-draft-lol/internal/config"
)

func TestNextStreakTransitions(t *testing.T) {
	cases := []struct {
		name    string
		current int
		winner  bool
		want    int
	}{
		{"win extends winning streak", 3, true, 4},
		{"win from zero", 0, true, 1},
		{"win resets losing streak", -4, true, 1},
		{"loss extends losing streak", -2, false, -3},
		{"loss from zero", 0, false, -1},
		{"loss resets winning streak", 5, false, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextStreak(tc.current, tc.winner); got != tc.want {
				t.Fatalf("NextStreak(%d, %v) = %d, want %d", tc.current, tc.winner, got, tc.want)
			}
		})
	}
}

func TestBonusForTiers(t *testing.T) {
	tiers := config.DefaultScoring().StreakTiers
	cases := []struct {
		streak int
		want   int
	}{
		{0, 0}, {1, 0}, {-1, 0},
		{2, 2}, {3, 2}, {-2, -2}, {-3, -2},
		{4, 3}, {5, 3}, {-4, -3}, {-5, -3},
		{6, 5}, {9, 5}, {-6, -5}, {-9, -5},
	}
	for _, tc := range cases {
		if got := BonusFor(tc.streak, tiers); got != tc.want {
			t.Fatalf("BonusFor(%d) = %d, want %d", tc.streak, got, tc.want)
		}
	}
}

func TestPrevStreakStepsTowardZero(t *testing.T) {
	cases := []struct{ in, want int }{
		{3, 2}, {1, 0}, {0, 0}, {-1, 0}, {-4, -3},
	}
	for _, tc := range cases {
		if got := prevStreak(tc.in); got != tc.want {
			t.Fatalf("prevStreak(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
