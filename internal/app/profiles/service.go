package profiles

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/sjounng/team-draft-lol/internal/auth"
	"github.com/sjounng/team-draft-lol/internal/domain"
	"github.com/sjounng/team-draft-lol/internal/logging"
)

// Store defines the contract for persisting and retrieving profiles.
type Store interface {
	CreateProfile(ctx context.Context, p domain.Profile) (domain.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (domain.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (domain.Profile, error)
}

// Service handles signup, login, and profile lookup.
type Service struct {
	store  Store
	tokens *auth.TokenIssuer
	logger *slog.Logger
}

func NewService(store Store, tokens *auth.TokenIssuer, logger *slog.Logger) *Service {
	return &Service{store: store, tokens: tokens, logger: logger}
}

// Register creates a profile with a bcrypt password hash. Usernames
// are unique; a taken name surfaces as ErrUsernameTaken.
func (s *Service) Register(ctx context.Context, username, email, password string) (domain.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.Profile{}, domain.ErrInvalidCredential
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.Profile{}, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return domain.Profile{}, err
	}
	profile, err := s.store.CreateProfile(ctx, domain.Profile{
		ID:           id,
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return domain.Profile{}, err
	}
	logging.Info(logging.FromContext(ctx, s.logger), "profile registered", logging.FieldProfileID, profile.ID.String())
	return profile, nil
}

// Login verifies credentials and issues a signed token. Unknown
// usernames and wrong passwords both map to ErrInvalidCredential.
func (s *Service) Login(ctx context.Context, username, password string) (string, domain.Profile, error) {
	profile, err := s.store.GetProfileByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", domain.Profile{}, domain.ErrInvalidCredential
	}
	if err := auth.CheckPassword(profile.PasswordHash, password); err != nil {
		return "", domain.Profile{}, err
	}
	token, err := s.tokens.Issue(profile.ID, profile.Username, time.Now())
	if err != nil {
		return "", domain.Profile{}, err
	}
	return token, profile, nil
}

// Get returns a profile by its UUID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Profile, error) {
	return s.store.GetProfile(ctx, id)
}
