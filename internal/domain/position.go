package domain

// Position is one of the five fixed role slots on a team.
type Position string

const (
	PositionTop     Position = "TOP"
	PositionJungle  Position = "JGL"
	PositionMid     Position = "MID"
	PositionADC     Position = "ADC"
	PositionSupport Position = "SUP"
)

// Positions lists every position in canonical order. Tie-breaking and
// fill order during assignment depend on this ordering.
var Positions = []Position{
	PositionTop,
	PositionJungle,
	PositionMid,
	PositionADC,
	PositionSupport,
}

// Valid reports whether p is one of the five known positions.
func (p Position) Valid() bool {
	switch p {
	case PositionTop, PositionJungle, PositionMid, PositionADC, PositionSupport:
		return true
	}
	return false
}

// PositionType records the tier at which a player was bound to a position.
type PositionType string

const (
	PositionTypeMain PositionType = "MAIN"
	PositionTypeSub  PositionType = "SUB"
	PositionTypeFill PositionType = "FILL"
)
