package players

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/sjounng/team-draft-lol/internal/domain"
)

// Store defines the contract for persisting and retrieving players.
type Store interface {
	CreatePlayer(ctx context.Context, p domain.Player) (domain.Player, error)
	GetPlayer(ctx context.Context, id int64) (domain.Player, error)
	ListPlayersByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Player, error)
	UpdatePlayer(ctx context.Context, p domain.Player) (domain.Player, error)
	DeletePlayer(ctx context.Context, id int64) error
}

// Service owns the player roster CRUD. Every operation is scoped to
// the calling profile: touching another owner's player fails with
// ErrForbidden.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create validates and persists a new player for the owner.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, p domain.Player) (domain.Player, error) {
	if err := validate(p); err != nil {
		return domain.Player{}, err
	}
	p.OwnerID = ownerID
	p.Streak = 0
	p.CreatedAt = time.Now().UTC()
	return s.store.CreatePlayer(ctx, p)
}

// Get returns one of the owner's players.
func (s *Service) Get(ctx context.Context, ownerID uuid.UUID, id int64) (domain.Player, error) {
	p, err := s.store.GetPlayer(ctx, id)
	if err != nil {
		return domain.Player{}, err
	}
	if p.OwnerID != ownerID {
		return domain.Player{}, domain.ErrForbidden
	}
	return p, nil
}

// List returns every player the owner has registered.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Player, error) {
	return s.store.ListPlayersByOwner(ctx, ownerID)
}

// Update replaces a player's profile fields. Rating and streak move
// only through the rating engine, so incoming values for them are
// ignored in favor of the stored ones.
func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, p domain.Player) (domain.Player, error) {
	current, err := s.Get(ctx, ownerID, p.ID)
	if err != nil {
		return domain.Player{}, err
	}
	if err := validate(p); err != nil {
		return domain.Player{}, err
	}
	current.Name = p.Name
	current.SummonerName = p.SummonerName
	current.MainLane = p.MainLane
	current.SubLane = p.SubLane
	return s.store.UpdatePlayer(ctx, current)
}

// Delete removes one of the owner's players.
func (s *Service) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	return s.store.DeletePlayer(ctx, id)
}

func validate(p domain.Player) error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.ErrInvalidPlayer
	}
	if !p.MainLane.Valid() || !p.SubLane.Valid() {
		return domain.ErrInvalidPlayer
	}
	if p.MainLane == p.SubLane {
		return domain.ErrSameLanes
	}
	if p.Rating < 0 {
		return domain.ErrInvalidPlayer
	}
	return nil
}
