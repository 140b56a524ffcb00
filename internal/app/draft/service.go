package draft

import (
	"context"
	"log/slog"
	"time"

	"github.com/sjounng/team-draft-lol/internal/domain"
	"github.com/sjounng/team-draft-lol/internal/logging"
	"github.com/sjounng/team-draft-lol/internal/metrics"
)

// PlayerStore resolves player identities to player records.
type PlayerStore interface {
	GetPlayers(ctx context.Context, ids []int64) ([]domain.Player, error)
}

// Service coordinates team generation: roster resolution, the cached
// combination search, and reroll selection.
type Service struct {
	store    PlayerStore
	cache    *Cache
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewService constructs a Service with the provided collaborators.
func NewService(store PlayerStore, cache *Cache, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{store: store, cache: cache, logger: logger, recorder: recorder}
}

// Generate resolves the roster, serves the ranked set from cache when
// the exact ten identities were ranked before, and selects the
// combination at index. An out-of-range index resets to 0, the
// first-ranked combination; it does not wrap.
func (s *Service) Generate(ctx context.Context, playerIDs []int64, index int) (domain.Selection, error) {
	if len(playerIDs) != rosterSize || hasDuplicates(playerIDs) {
		return domain.Selection{}, domain.ErrInvalidRosterSize
	}

	players, err := s.store.GetPlayers(ctx, playerIDs)
	if err != nil {
		return domain.Selection{}, err
	}
	if len(players) != rosterSize {
		return domain.Selection{}, domain.ErrPlayerNotFound
	}

	key := RosterKey(playerIDs)
	set, hit := s.cache.Get(key)
	if !hit {
		start := time.Now()
		set, err = Rank(players)
		if err != nil {
			return domain.Selection{}, err
		}
		s.cache.Put(set)
		s.recorder.RecordGeneration(time.Since(start), false)
		logging.Info(logging.FromContext(ctx, s.logger), "ranked roster combinations",
			logging.FieldRosterKey, key, logging.FieldCount, len(set.Combinations))
	} else {
		s.recorder.RecordGeneration(0, true)
	}

	return selection(set, index), nil
}

// Select serves a reroll against an already ranked roster. The second
// return value is false when the roster key has no cached set, in which
// case the caller must regenerate from player identities.
func (s *Service) Select(key string, index int) (domain.Selection, bool) {
	set, ok := s.cache.Get(key)
	if !ok {
		return domain.Selection{}, false
	}
	return selection(set, index), true
}

func selection(set domain.RankedSet, index int) domain.Selection {
	if index < 0 || index >= len(set.Combinations) {
		index = 0
	}
	available := make([]int, len(set.Combinations))
	for i := range available {
		available[i] = i + 1
	}
	return domain.Selection{
		Combination:           set.Combinations[index],
		Key:                   set.Key,
		CurrentCombination:    index + 1,
		TotalCombinations:     len(set.Combinations),
		AvailableCombinations: available,
	}
}

func hasDuplicates(ids []int64) bool {
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}
