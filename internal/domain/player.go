package domain

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Player is a pool candidate with a persistent rating and streak.
// Rating never drops below zero; Streak is signed (positive = consecutive
// wins, negative = consecutive losses, 0 = neutral).
type Player struct {
	ID           int64     `json:"playerId"`
	OwnerID      uuid.UUID `json:"-"`
	Name         string    `json:"name"`
	SummonerName string    `json:"summonerName"`
	MainLane     Position  `json:"mainLane"`
	SubLane      Position  `json:"subLane"`
	Rating       int       `json:"rating"`
	Streak       int       `json:"streak"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is an account that owns players, pools, and match records.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Pool groups players under an owner, with optional member profiles
// that get read access.
type Pool struct {
	ID        int64       `json:"poolId"`
	OwnerID   uuid.UUID   `json:"ownerId"`
	Name      string      `json:"name"`
	PlayerIDs []int64     `json:"playerIds"`
	MemberIDs []uuid.UUID `json:"memberIds"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CanRead reports whether the profile owns the pool or is a member.
func (p Pool) CanRead(profileID uuid.UUID) bool {
	if p.OwnerID == profileID {
		return true
	}
	for _, id := range p.MemberIDs {
		if id == profileID {
			return true
		}
	}
	return false
}
