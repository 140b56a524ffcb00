package matches

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/sjounng/team-draft-lol/internal/app/rating"
	"github.com/sjounng/team-draft-lol/internal/domain"
	"github.com/sjounng/team-draft-lol/internal/logging"
	"github.com/sjounng/team-draft-lol/internal/metrics"
)

// Store defines the persistence contract for matches and the player
// state the rating engine mutates. SaveMatchEffect must persist the
// match (flag and line snapshots) together with the changed players as
// one atomic unit.
type Store interface {
	CreateMatch(ctx context.Context, m domain.Match) (domain.Match, error)
	GetMatch(ctx context.Context, id int64) (domain.Match, error)
	ListMatchesByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Match, error)
	UpdateMatch(ctx context.Context, m domain.Match) (domain.Match, error)
	DeleteMatch(ctx context.Context, id int64) error
	GetPlayers(ctx context.Context, ids []int64) ([]domain.Player, error)
	SaveMatchEffect(ctx context.Context, m domain.Match, players []domain.Player) error
}

// Service owns match records and drives the rating engine's apply,
// cancel, recalculate, and simulate operations against them.
type Service struct {
	store    Store
	engine   *rating.Engine
	logger   *slog.Logger
	recorder *metrics.Recorder
}

func NewService(store Store, engine *rating.Engine, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{store: store, engine: engine, logger: logger, recorder: recorder}
}

// Create validates and persists a new, unapplied match record.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, m domain.Match) (domain.Match, error) {
	if err := m.Validate(); err != nil {
		return domain.Match{}, err
	}
	m.OwnerID = ownerID
	m.IsApplied = false
	m.CreatedAt = time.Now().UTC()
	for i := range m.Lines {
		m.Lines[i].StreakAtMatch = nil
	}
	return s.store.CreateMatch(ctx, m)
}

// Get returns one of the owner's matches.
func (s *Service) Get(ctx context.Context, ownerID uuid.UUID, id int64) (domain.Match, error) {
	return s.owned(ctx, ownerID, id)
}

// List returns the owner's matches in creation order, oldest first.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Match, error) {
	return s.store.ListMatchesByOwner(ctx, ownerID)
}

// Update replaces a match's statistics. If the stored match was
// applied, its rating effect is cancelled first so the record never
// claims an effect computed from stale numbers.
func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, m domain.Match) (domain.Match, error) {
	current, err := s.owned(ctx, ownerID, m.ID)
	if err != nil {
		return domain.Match{}, err
	}
	if err := m.Validate(); err != nil {
		return domain.Match{}, err
	}
	if current.IsApplied {
		if _, err := s.Cancel(ctx, ownerID, current.ID); err != nil {
			return domain.Match{}, err
		}
	}
	m.OwnerID = current.OwnerID
	m.CreatedAt = current.CreatedAt
	m.IsApplied = false
	for i := range m.Lines {
		m.Lines[i].StreakAtMatch = nil
	}
	return s.store.UpdateMatch(ctx, m)
}

// Delete removes a match, cancelling its rating effect first when it
// is still applied.
func (s *Service) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	current, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if current.IsApplied {
		if _, err := s.Cancel(ctx, ownerID, id); err != nil {
			return err
		}
	}
	return s.store.DeleteMatch(ctx, id)
}

// Apply commits the match's rating effect to every involved player.
func (s *Service) Apply(ctx context.Context, ownerID uuid.UUID, id int64) ([]domain.Outcome, error) {
	start := time.Now()
	outcomes, err := s.runEffect(ctx, ownerID, id, s.engine.Apply)
	s.recorder.RecordRatingOp(metrics.OpApply, time.Since(start), err)
	if err == nil {
		logging.Info(logging.FromContext(ctx, s.logger), "match applied", logging.FieldMatchID, id)
	}
	return outcomes, err
}

// Cancel reverses a previously applied match.
func (s *Service) Cancel(ctx context.Context, ownerID uuid.UUID, id int64) ([]domain.Outcome, error) {
	start := time.Now()
	outcomes, err := s.runEffect(ctx, ownerID, id, s.engine.Cancel)
	s.recorder.RecordRatingOp(metrics.OpCancel, time.Since(start), err)
	if err == nil {
		logging.Info(logging.FromContext(ctx, s.logger), "match cancelled", logging.FieldMatchID, id)
	}
	return outcomes, err
}

// Simulate previews the match's rating effect without committing it.
func (s *Service) Simulate(ctx context.Context, ownerID uuid.UUID, id int64) ([]domain.Outcome, error) {
	m, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	players, err := s.loadPlayers(ctx, m)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	outcomes, err := s.engine.Simulate(&m, players)
	s.recorder.RecordRatingOp(metrics.OpSimulate, time.Since(start), err)
	return outcomes, err
}

// Recalculate re-baselines the owner's entire match history against
// the current formula, strictly in creation order, and persists every
// step atomically per match.
func (s *Service) Recalculate(ctx context.Context, ownerID uuid.UUID) ([][]domain.Outcome, error) {
	start := time.Now()
	all, err := s.recalculate(ctx, ownerID)
	s.recorder.RecordRatingOp(metrics.OpRecalculate, time.Since(start), err)
	if err == nil {
		logging.Info(logging.FromContext(ctx, s.logger), "history recalculated",
			logging.FieldProfileID, ownerID.String(), logging.FieldCount, len(all))
	}
	return all, err
}

func (s *Service) recalculate(ctx context.Context, ownerID uuid.UUID) ([][]domain.Outcome, error) {
	history, err := s.store.ListMatchesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	all := make([][]domain.Outcome, 0, len(history))
	for i := range history {
		m := history[i]
		players, err := s.loadPlayers(ctx, m)
		if err != nil {
			return nil, err
		}
		if m.IsApplied {
			if _, err := s.engine.Cancel(&m, players); err != nil {
				return nil, err
			}
		}
		outcomes, err := s.engine.Apply(&m, players)
		if err != nil {
			return nil, err
		}
		if err := s.persistEffect(ctx, m, players); err != nil {
			return nil, err
		}
		all = append(all, outcomes)
	}
	return all, nil
}

type effectFn func(*domain.Match, map[int64]*domain.Player) ([]domain.Outcome, error)

func (s *Service) runEffect(ctx context.Context, ownerID uuid.UUID, id int64, effect effectFn) ([]domain.Outcome, error) {
	m, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	players, err := s.loadPlayers(ctx, m)
	if err != nil {
		return nil, err
	}
	outcomes, err := effect(&m, players)
	if err != nil {
		return nil, err
	}
	if err := s.persistEffect(ctx, m, players); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (s *Service) persistEffect(ctx context.Context, m domain.Match, players map[int64]*domain.Player) error {
	changed := make([]domain.Player, 0, len(players))
	for _, p := range players {
		changed = append(changed, *p)
	}
	return s.store.SaveMatchEffect(ctx, m, changed)
}

func (s *Service) loadPlayers(ctx context.Context, m domain.Match) (map[int64]*domain.Player, error) {
	ids := make([]int64, 0, len(m.Lines))
	for _, line := range m.Lines {
		ids = append(ids, line.PlayerID)
	}
	players, err := s.store.GetPlayers(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(players) != len(ids) {
		return nil, domain.ErrPlayerNotFound
	}
	byID := make(map[int64]*domain.Player, len(players))
	for i := range players {
		byID[players[i].ID] = &players[i]
	}
	return byID, nil
}

func (s *Service) owned(ctx context.Context, ownerID uuid.UUID, id int64) (domain.Match, error) {
	m, err := s.store.GetMatch(ctx, id)
	if err != nil {
		return domain.Match{}, err
	}
	if m.OwnerID != ownerID {
		return domain.Match{}, domain.ErrForbidden
	}
	return m, nil
}
