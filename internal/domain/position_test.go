package domain

import "testing"

func TestPositionsCanonicalOrder(t *testing.T) {
	want := []Position{PositionTop, PositionJungle, PositionMid, PositionADC, PositionSupport}
	if len(Positions) != len(want) {
		t.Fatalf("expected %d positions, got %d", len(want), len(Positions))
	}
	for i, p := range want {
		if Positions[i] != p {
			t.Fatalf("position %d: expected %s, got %s", i, p, Positions[i])
		}
	}
}

func TestPositionValid(t *testing.T) {
	for _, p := range Positions {
		if !p.Valid() {
			t.Fatalf("expected %s to be valid", p)
		}
	}
	if Position("FEED").Valid() {
		t.Fatalf("expected unknown position to be invalid")
	}
}
