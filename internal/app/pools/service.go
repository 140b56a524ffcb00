package pools

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/sjounng/team-draft-lol/internal/domain"
)

// Store defines the contract for persisting and retrieving pools.
type Store interface {
	CreatePool(ctx context.Context, p domain.Pool) (domain.Pool, error)
	GetPool(ctx context.Context, id int64) (domain.Pool, error)
	ListPoolsByProfile(ctx context.Context, profileID uuid.UUID) ([]domain.Pool, error)
	UpdatePool(ctx context.Context, p domain.Pool) (domain.Pool, error)
	DeletePool(ctx context.Context, id int64) error
}

// Service manages player pools. Owners can mutate a pool; members get
// read access only.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create persists a new pool for the owner.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, p domain.Pool) (domain.Pool, error) {
	if strings.TrimSpace(p.Name) == "" {
		return domain.Pool{}, domain.ErrInvalidPool
	}
	p.OwnerID = ownerID
	p.CreatedAt = time.Now().UTC()
	return s.store.CreatePool(ctx, p)
}

// Get returns a pool the profile owns or is a member of.
func (s *Service) Get(ctx context.Context, profileID uuid.UUID, id int64) (domain.Pool, error) {
	pool, err := s.store.GetPool(ctx, id)
	if err != nil {
		return domain.Pool{}, err
	}
	if !pool.CanRead(profileID) {
		return domain.Pool{}, domain.ErrForbidden
	}
	return pool, nil
}

// List returns every pool the profile owns or is a member of.
func (s *Service) List(ctx context.Context, profileID uuid.UUID) ([]domain.Pool, error) {
	return s.store.ListPoolsByProfile(ctx, profileID)
}

// Update replaces a pool's name, players, and members. Only the owner
// may mutate.
func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, p domain.Pool) (domain.Pool, error) {
	current, err := s.owned(ctx, ownerID, p.ID)
	if err != nil {
		return domain.Pool{}, err
	}
	if strings.TrimSpace(p.Name) != "" {
		current.Name = p.Name
	}
	current.PlayerIDs = p.PlayerIDs
	current.MemberIDs = p.MemberIDs
	return s.store.UpdatePool(ctx, current)
}

// AddPlayers appends player IDs to the pool, skipping duplicates.
func (s *Service) AddPlayers(ctx context.Context, ownerID uuid.UUID, id int64, playerIDs []int64) (domain.Pool, error) {
	current, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return domain.Pool{}, err
	}
	present := make(map[int64]bool, len(current.PlayerIDs))
	for _, pid := range current.PlayerIDs {
		present[pid] = true
	}
	for _, pid := range playerIDs {
		if !present[pid] {
			current.PlayerIDs = append(current.PlayerIDs, pid)
			present[pid] = true
		}
	}
	return s.store.UpdatePool(ctx, current)
}

// RemovePlayer drops one player ID from the pool.
func (s *Service) RemovePlayer(ctx context.Context, ownerID uuid.UUID, id, playerID int64) (domain.Pool, error) {
	current, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return domain.Pool{}, err
	}
	kept := current.PlayerIDs[:0]
	for _, pid := range current.PlayerIDs {
		if pid != playerID {
			kept = append(kept, pid)
		}
	}
	current.PlayerIDs = kept
	return s.store.UpdatePool(ctx, current)
}

// Delete removes a pool. Only the owner may delete.
func (s *Service) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.store.DeletePool(ctx, id)
}

func (s *Service) owned(ctx context.Context, ownerID uuid.UUID, id int64) (domain.Pool, error) {
	pool, err := s.store.GetPool(ctx, id)
	if err != nil {
		return domain.Pool{}, err
	}
	if pool.OwnerID != ownerID {
		return domain.Pool{}, domain.ErrForbidden
	}
	return pool, nil
}
