package players

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"

	"github.com/sjounng/team-draft-lol/internal/domain"
)

type stubStore struct {
	players map[int64]domain.Player
	nextID  int64
}

func newStubStore() *stubStore {
	return &stubStore{players: map[int64]domain.Player{}, nextID: 1}
}

func (s *stubStore) CreatePlayer(ctx context.Context, p domain.Player) (domain.Player, error) {
	p.ID = s.nextID
	s.nextID++
	s.players[p.ID] = p
	return p, nil
}

func (s *stubStore) GetPlayer(ctx context.Context, id int64) (domain.Player, error) {
	p, ok := s.players[id]
	if !ok {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	return p, nil
}

func (s *stubStore) ListPlayersByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Player, error) {
	var out []domain.Player
	for _, p := range s.players {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubStore) UpdatePlayer(ctx context.Context, p domain.Player) (domain.Player, error) {
	if _, ok := s.players[p.ID]; !ok {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	s.players[p.ID] = p
	return p, nil
}

func (s *stubStore) DeletePlayer(ctx context.Context, id int64) error {
	if _, ok := s.players[id]; !ok {
		return domain.ErrPlayerNotFound
	}
	delete(s.players, id)
	return nil
}

func validPlayer() domain.Player {
	return domain.Player{
		Name:         "Faker",
		SummonerName: "Hide on bush",
		MainLane:     domain.PositionMid,
		SubLane:      domain.PositionTop,
		Rating:       900,
	}
}

func TestCreateAssignsOwnerAndResetsStreak(t *testing.T) {
	svc := NewService(newStubStore())
	owner := uuid.Must(uuid.NewV4())

	in := validPlayer()
	in.Streak = 7
	created, err := svc.Create(context.Background(), owner, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.OwnerID != owner {
		t.Fatalf("owner not assigned")
	}
	if created.Streak != 0 {
		t.Fatalf("new players must start streak-neutral, got %d", created.Streak)
	}
	if created.ID == 0 {
		t.Fatalf("expected an assigned ID")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newStubStore())
	owner := uuid.Must(uuid.NewV4())

	cases := []struct {
		name   string
		mutate func(*domain.Player)
		want   error
	}{
		{"empty name", func(p *domain.Player) { p.Name = " " }, domain.ErrInvalidPlayer},
		{"bad lane", func(p *domain.Player) { p.MainLane = "BOT" }, domain.ErrInvalidPlayer},
		{"same lanes", func(p *domain.Player) { p.SubLane = p.MainLane }, domain.ErrSameLanes},
		{"negative rating", func(p *domain.Player) { p.Rating = -1 }, domain.ErrInvalidPlayer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPlayer()
			tc.mutate(&p)
			if _, err := svc.Create(context.Background(), owner, p); err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc := NewService(newStubStore())
	owner := uuid.Must(uuid.NewV4())
	other := uuid.Must(uuid.NewV4())

	created, err := svc.Create(context.Background(), owner, validPlayer())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(context.Background(), other, created.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Get(context.Background(), owner, 999); err != domain.ErrPlayerNotFound {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestUpdateKeepsRatingAndStreak(t *testing.T) {
	store := newStubStore()
	svc := NewService(store)
	owner := uuid.Must(uuid.NewV4())

	created, err := svc.Create(context.Background(), owner, validPlayer())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored := store.players[created.ID]
	stored.Rating = 950
	stored.Streak = 3
	store.players[created.ID] = stored

	in := created
	in.Name = "Renamed"
	in.Rating = 1
	in.Streak = -9
	updated, err := svc.Update(context.Background(), owner, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("name not updated")
	}
	if updated.Rating != 950 || updated.Streak != 3 {
		t.Fatalf("rating/streak must be immutable via update, got %d/%d", updated.Rating, updated.Streak)
	}
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	svc := NewService(newStubStore())
	owner := uuid.Must(uuid.NewV4())
	other := uuid.Must(uuid.NewV4())

	created, err := svc.Create(context.Background(), owner, validPlayer())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), other, created.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(context.Background(), owner, created.ID); err != domain.ErrPlayerNotFound {
		t.Fatalf("expected ErrPlayerNotFound after delete, got %v", err)
	}
}

func TestListScopesToOwner(t *testing.T) {
	svc := NewService(newStubStore())
	owner := uuid.Must(uuid.NewV4())
	other := uuid.Must(uuid.NewV4())

	if _, err := svc.Create(context.Background(), owner, validPlayer()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(context.Background(), other, validPlayer()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mine, err := svc.List(context.Background(), owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 player, got %d", len(mine))
	}
}
