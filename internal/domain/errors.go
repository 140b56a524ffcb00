package domain

import "errors"

// Domain failure kinds. Callers branch on these with errors.Is; the
// HTTP layer maps them to status codes.
var (
	ErrInvalidRosterSize = errors.New("exactly 10 distinct players are required")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPoolNotFound      = errors.New("pool not found")
	ErrMatchNotFound     = errors.New("match not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrAlreadyApplied    = errors.New("match has already been applied")
	ErrNotApplied        = errors.New("match has not been applied")
	ErrInvalidMatch      = errors.New("match must have 10 lines, 5 per team, one per position")
	ErrInvalidPlayer     = errors.New("player name and lanes are required")
	ErrInvalidPool       = errors.New("pool name is required")
	ErrSameLanes         = errors.New("main lane and sub lane must differ")
	ErrForbidden         = errors.New("access denied")
	ErrUsernameTaken     = errors.New("username already registered")
	ErrInvalidCredential = errors.New("invalid username or password")
)
