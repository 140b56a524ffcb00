package draft

import (
	"context"
	"testing"
	"time"

	"github.com/sjounng/team-draft-lol/internal/domain"
	"github.com/sjounng/team-draft-lol/internal/metrics"
)

type stubPlayerStore struct {
	players []domain.Player
	calls   int
}

func (s *stubPlayerStore) GetPlayers(ctx context.Context, ids []int64) ([]domain.Player, error) {
	s.calls++
	byID := make(map[int64]domain.Player, len(s.players))
	for _, p := range s.players {
		byID[p.ID] = p
	}
	var out []domain.Player
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func rosterIDs(players []domain.Player) []int64 {
	ids := make([]int64, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return ids
}

func newTestService(players []domain.Player) (*Service, *stubPlayerStore) {
	store := &stubPlayerStore{players: players}
	return NewService(store, NewCache(time.Minute), nil, metrics.NewRecorder()), store
}

func TestGenerateReturnsSelection(t *testing.T) {
	roster := testRoster()
	svc, _ := newTestService(roster)

	sel, err := svc.Generate(context.Background(), rosterIDs(roster), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.CurrentCombination != 1 {
		t.Fatalf("expected first combination, got %d", sel.CurrentCombination)
	}
	if sel.TotalCombinations != len(sel.AvailableCombinations) {
		t.Fatalf("navigation state inconsistent: %d vs %d",
			sel.TotalCombinations, len(sel.AvailableCombinations))
	}
	if sel.AvailableCombinations[0] != 1 {
		t.Fatalf("available combinations must be 1-based")
	}
}

func TestGenerateOutOfRangeIndexResetsToFirst(t *testing.T) {
	roster := testRoster()
	svc, _ := newTestService(roster)

	first, err := svc.Generate(context.Background(), rosterIDs(roster), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	beyond, err := svc.Generate(context.Background(), rosterIDs(roster), first.TotalCombinations+5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if beyond.CurrentCombination != 1 {
		t.Fatalf("out-of-range index must reset to 1, got %d", beyond.CurrentCombination)
	}
	if beyond.ScoreDifference != first.ScoreDifference {
		t.Fatalf("reset selection must be the first-ranked combination")
	}
}

func TestGenerateServesRepeatRostersFromCache(t *testing.T) {
	roster := testRoster()
	svc, _ := newTestService(roster)
	rec := svc.recorder

	if _, err := svc.Generate(context.Background(), rosterIDs(roster), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Generate(context.Background(), rosterIDs(roster), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := rec.Snapshot()
	if snap.Generations != 1 {
		t.Fatalf("expected a single search, got %d", snap.Generations)
	}
	if snap.CacheHits != 1 {
		t.Fatalf("expected one cache hit, got %d", snap.CacheHits)
	}
}

func TestGenerateDistinctRostersCoexistInCache(t *testing.T) {
	rosterA := testRoster()
	rosterB := testRoster()
	for i := range rosterB {
		rosterB[i].ID += 100
	}
	svc, _ := newTestService(append(rosterA, rosterB...))

	if _, err := svc.Generate(context.Background(), rosterIDs(rosterA), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Generate(context.Background(), rosterIDs(rosterB), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Both rosters must now be served from cache.
	if _, err := svc.Generate(context.Background(), rosterIDs(rosterA), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Generate(context.Background(), rosterIDs(rosterB), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := svc.recorder.Snapshot()
	if snap.Generations != 2 || snap.CacheHits != 2 {
		t.Fatalf("expected 2 searches and 2 hits, got %+v", snap)
	}
}

func TestGenerateRejectsBadRosters(t *testing.T) {
	roster := testRoster()
	svc, store := newTestService(roster)

	if _, err := svc.Generate(context.Background(), rosterIDs(roster)[:9], 0); err != domain.ErrInvalidRosterSize {
		t.Fatalf("expected ErrInvalidRosterSize, got %v", err)
	}

	dup := rosterIDs(roster)
	dup[9] = dup[0]
	if _, err := svc.Generate(context.Background(), dup, 0); err != domain.ErrInvalidRosterSize {
		t.Fatalf("expected ErrInvalidRosterSize for duplicates, got %v", err)
	}
	if store.calls != 0 {
		t.Fatalf("store must not be hit for invalid rosters")
	}

	missing := rosterIDs(roster)
	missing[9] = 999
	if _, err := svc.Generate(context.Background(), missing, 0); err != domain.ErrPlayerNotFound {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestSelectRequiresCachedRoster(t *testing.T) {
	roster := testRoster()
	svc, _ := newTestService(roster)

	if _, ok := svc.Select(RosterKey(rosterIDs(roster)), 0); ok {
		t.Fatalf("expected miss before any generation")
	}

	if _, err := svc.Generate(context.Background(), rosterIDs(roster), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel, ok := svc.Select(RosterKey(rosterIDs(roster)), 2)
	if !ok {
		t.Fatalf("expected cached roster to be selectable")
	}
	if sel.CurrentCombination != 3 {
		t.Fatalf("expected 1-based combination 3, got %d", sel.CurrentCombination)
	}
}
