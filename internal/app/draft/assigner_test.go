package draft

import (
	"testing"

	"github.com/sjounng/team-draft-lol/internal/domain"
)

func fiveOf(roster []domain.Player) []domain.Player {
	return roster[:5]
}

func TestAssignPositionsFillsEverySlot(t *testing.T) {
	comp := AssignPositions(fiveOf(testRoster()), 1)
	if len(comp.Assignments) != 5 {
		t.Fatalf("expected 5 assignments, got %d", len(comp.Assignments))
	}
	seenPos := make(map[domain.Position]bool)
	seenPlayer := make(map[int64]bool)
	for _, a := range comp.Assignments {
		if seenPos[a.Position] {
			t.Fatalf("position %s assigned twice", a.Position)
		}
		if seenPlayer[a.PlayerID] {
			t.Fatalf("player %d assigned twice", a.PlayerID)
		}
		seenPos[a.Position] = true
		seenPlayer[a.PlayerID] = true
	}
}

func TestAssignPositionsAllMains(t *testing.T) {
	// One main per position: everyone lands on their main lane at full weight.
	team := []domain.Player{
		{ID: 1, MainLane: domain.PositionTop, SubLane: domain.PositionMid, Rating: 500},
		{ID: 2, MainLane: domain.PositionJungle, SubLane: domain.PositionTop, Rating: 450},
		{ID: 3, MainLane: domain.PositionMid, SubLane: domain.PositionADC, Rating: 610},
		{ID: 4, MainLane: domain.PositionADC, SubLane: domain.PositionSupport, Rating: 390},
		{ID: 5, MainLane: domain.PositionSupport, SubLane: domain.PositionJungle, Rating: 520},
	}
	comp := AssignPositions(team, 1)
	total := 0
	for _, a := range comp.Assignments {
		if a.Type != domain.PositionTypeMain {
			t.Fatalf("expected MAIN for %s, got %s", a.Position, a.Type)
		}
		if a.AdjustedScore != a.Rating {
			t.Fatalf("MAIN adjusted score must equal rating: %d != %d", a.AdjustedScore, a.Rating)
		}
		total += a.AdjustedScore
	}
	if comp.TotalScore != total {
		t.Fatalf("total score mismatch: %d != %d", comp.TotalScore, total)
	}
}

func TestAssignPositionsMainPrefersLowestRating(t *testing.T) {
	team := []domain.Player{
		{ID: 1, MainLane: domain.PositionTop, SubLane: domain.PositionMid, Rating: 700},
		{ID: 2, MainLane: domain.PositionTop, SubLane: domain.PositionJungle, Rating: 300},
		{ID: 3, MainLane: domain.PositionMid, SubLane: domain.PositionADC, Rating: 500},
		{ID: 4, MainLane: domain.PositionADC, SubLane: domain.PositionSupport, Rating: 500},
		{ID: 5, MainLane: domain.PositionSupport, SubLane: domain.PositionJungle, Rating: 500},
	}
	comp := AssignPositions(team, 1)
	top, ok := comp.ByPosition(domain.PositionTop)
	if !ok {
		t.Fatalf("top not assigned")
	}
	if top.PlayerID != 2 {
		t.Fatalf("expected lowest-rated main on TOP, got player %d", top.PlayerID)
	}
}

func TestAssignPositionsSubAndFillDiscounts(t *testing.T) {
	// Two SUP mains: the cheaper one takes SUP as MAIN, the other subs
	// JGL at the SUP-main discount, and the leftover TOP main fills ADC.
	team := []domain.Player{
		{ID: 1, MainLane: domain.PositionTop, SubLane: domain.PositionMid, Rating: 400},
		{ID: 2, MainLane: domain.PositionSupport, SubLane: domain.PositionJungle, Rating: 400},
		{ID: 3, MainLane: domain.PositionMid, SubLane: domain.PositionTop, Rating: 400},
		{ID: 4, MainLane: domain.PositionSupport, SubLane: domain.PositionTop, Rating: 300},
		{ID: 5, MainLane: domain.PositionTop, SubLane: domain.PositionMid, Rating: 500},
	}
	comp := AssignPositions(team, 1)

	sup, _ := comp.ByPosition(domain.PositionSupport)
	if sup.Type != domain.PositionTypeMain || sup.PlayerID != 4 {
		t.Fatalf("expected player 4 on SUP as MAIN, got %+v", sup)
	}

	jgl, _ := comp.ByPosition(domain.PositionJungle)
	if jgl.Type != domain.PositionTypeSub || jgl.PlayerID != 2 {
		t.Fatalf("expected player 2 on JGL as SUB, got %+v", jgl)
	}
	// SUP-main on a sub seat: 400 * 0.75.
	if jgl.AdjustedScore != 300 {
		t.Fatalf("expected SUP-main sub discount 300, got %d", jgl.AdjustedScore)
	}

	adc, _ := comp.ByPosition(domain.PositionADC)
	if adc.Type != domain.PositionTypeFill || adc.PlayerID != 5 {
		t.Fatalf("expected player 5 filling ADC, got %+v", adc)
	}
	// Non-SUP-main fill: 500 * 0.70.
	if adc.AdjustedScore != 350 {
		t.Fatalf("expected fill discount 350, got %d", adc.AdjustedScore)
	}
}

func TestAssignPositionsDiscountsBelowRating(t *testing.T) {
	comp := AssignPositions(fiveOf(testRoster()), 1)
	for _, a := range comp.Assignments {
		if a.Type == domain.PositionTypeMain {
			if a.AdjustedScore != a.Rating {
				t.Fatalf("MAIN score must equal rating")
			}
			continue
		}
		if a.Rating > 0 && a.AdjustedScore >= a.Rating {
			t.Fatalf("%s assignment must discount: %d >= %d", a.Type, a.AdjustedScore, a.Rating)
		}
	}
}
