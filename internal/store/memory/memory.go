package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/sjounng/team-draft-lol/internal/domain"
)

// Store keeps all application state in memory behind one RWMutex. It
// implements every service store interface and backs the server when
// no DATABASE_URL is configured, as well as the test suites.
type Store struct {
	mu           sync.RWMutex
	profiles     map[uuid.UUID]domain.Profile
	players      map[int64]domain.Player
	pools        map[int64]domain.Pool
	matches      map[int64]domain.Match
	nextPlayerID int64
	nextPoolID   int64
	nextMatchID  int64
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		profiles:     make(map[uuid.UUID]domain.Profile),
		players:      make(map[int64]domain.Player),
		pools:        make(map[int64]domain.Pool),
		matches:      make(map[int64]domain.Match),
		nextPlayerID: 1,
		nextPoolID:   1,
		nextMatchID:  1,
	}
}

func (s *Store) CreateProfile(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.profiles {
		if existing.Username == p.Username {
			return domain.Profile{}, domain.ErrUsernameTaken
		}
	}
	s.profiles[p.ID] = p
	return p, nil
}

func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	return p, nil
}

func (s *Store) GetProfileByUsername(ctx context.Context, username string) (domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.profiles {
		if p.Username == username {
			return p, nil
		}
	}
	return domain.Profile{}, domain.ErrProfileNotFound
}

func (s *Store) CreatePlayer(ctx context.Context, p domain.Player) (domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextPlayerID
	s.nextPlayerID++
	s.players[p.ID] = p
	return p, nil
}

func (s *Store) GetPlayer(ctx context.Context, id int64) (domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	return p, nil
}

// GetPlayers returns the players that exist among the requested IDs.
// Missing IDs are skipped, not errors; callers decide whether a short
// result matters.
func (s *Store) GetPlayers(ctx context.Context, ids []int64) ([]domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.players[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *Store) ListPlayersByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Player
	for _, p := range s.players {
		if p.OwnerID == ownerID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) UpdatePlayer(ctx context.Context, p domain.Player) (domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[p.ID]; !ok {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	s.players[p.ID] = p
	return p, nil
}

func (s *Store) DeletePlayer(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[id]; !ok {
		return domain.ErrPlayerNotFound
	}
	delete(s.players, id)
	return nil
}

func (s *Store) CreatePool(ctx context.Context, p domain.Pool) (domain.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextPoolID
	s.nextPoolID++
	s.pools[p.ID] = p
	return p, nil
}

func (s *Store) GetPool(ctx context.Context, id int64) (domain.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pools[id]
	if !ok {
		return domain.Pool{}, domain.ErrPoolNotFound
	}
	return p, nil
}

func (s *Store) ListPoolsByProfile(ctx context.Context, profileID uuid.UUID) ([]domain.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Pool
	for _, p := range s.pools {
		if p.CanRead(profileID) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) UpdatePool(ctx context.Context, p domain.Pool) (domain.Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pools[p.ID]; !ok {
		return domain.Pool{}, domain.ErrPoolNotFound
	}
	s.pools[p.ID] = p
	return p, nil
}

func (s *Store) DeletePool(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pools[id]; !ok {
		return domain.ErrPoolNotFound
	}
	delete(s.pools, id)
	return nil
}

func (s *Store) CreateMatch(ctx context.Context, m domain.Match) (domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.nextMatchID
	s.nextMatchID++
	m.Lines = cloneLines(m.Lines)
	s.matches[m.ID] = m
	return m, nil
}

func (s *Store) GetMatch(ctx context.Context, id int64) (domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	if !ok {
		return domain.Match{}, domain.ErrMatchNotFound
	}
	m.Lines = cloneLines(m.Lines)
	return m, nil
}

// ListMatchesByOwner returns the owner's matches oldest first, the
// order the rating engine replays history in.
func (s *Store) ListMatchesByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Match
	for _, m := range s.matches {
		if m.OwnerID == ownerID {
			m.Lines = cloneLines(m.Lines)
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) UpdateMatch(ctx context.Context, m domain.Match) (domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[m.ID]; !ok {
		return domain.Match{}, domain.ErrMatchNotFound
	}
	m.Lines = cloneLines(m.Lines)
	s.matches[m.ID] = m
	return m, nil
}

func (s *Store) DeleteMatch(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[id]; !ok {
		return domain.ErrMatchNotFound
	}
	delete(s.matches, id)
	return nil
}

// SaveMatchEffect persists a match and the players it moved under one
// lock acquisition, the in-memory equivalent of a transaction.
func (s *Store) SaveMatchEffect(ctx context.Context, m domain.Match, players []domain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[m.ID]; !ok {
		return domain.ErrMatchNotFound
	}
	for _, p := range players {
		if _, ok := s.players[p.ID]; !ok {
			return domain.ErrPlayerNotFound
		}
	}
	m.Lines = cloneLines(m.Lines)
	s.matches[m.ID] = m
	for _, p := range players {
		s.players[p.ID] = p
	}
	return nil
}

// cloneLines copies a line slice, including the streak snapshot
// pointers, so callers never share mutable state with the store.
func cloneLines(lines []domain.MatchLine) []domain.MatchLine {
	out := make([]domain.MatchLine, len(lines))
	copy(out, lines)
	for i := range out {
		if out[i].StreakAtMatch != nil {
			v := *out[i].StreakAtMatch
			out[i].StreakAtMatch = &v
		}
	}
	return out
}
