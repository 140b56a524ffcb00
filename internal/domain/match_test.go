package domain

import "testing"

func validMatch() Match {
	m := Match{
		ID:         1,
		Team1Won:   true,
		Team1Gold:  50000,
		Team2Gold:  45000,
		Team1Kills: 20,
		Team2Kills: 12,
	}
	var id int64 = 1
	for team := 1; team <= 2; team++ {
		for _, pos := range Positions {
			m.Lines = append(m.Lines, MatchLine{
				PlayerID:   id,
				TeamNumber: team,
				Position:   pos,
				Kills:      3,
				Deaths:     2,
				Assists:    5,
				CS:         150,
			})
			id++
		}
	}
	return m
}

func TestValidateAcceptsFullRoster(t *testing.T) {
	m := validMatch()
	if err := m.Validate(); err != nil {
		t.Fatalf("expected valid match, got %v", err)
	}
}

func TestValidateRejectsWrongLineCount(t *testing.T) {
	m := validMatch()
	m.Lines = m.Lines[:9]
	if err := m.Validate(); err != ErrInvalidMatch {
		t.Fatalf("expected ErrInvalidMatch, got %v", err)
	}
}

func TestValidateRejectsDuplicateSlot(t *testing.T) {
	m := validMatch()
	m.Lines[1].Position = m.Lines[0].Position
	if err := m.Validate(); err != ErrInvalidMatch {
		t.Fatalf("expected ErrInvalidMatch for duplicate slot, got %v", err)
	}
}

func TestValidateRejectsRepeatedPlayer(t *testing.T) {
	m := validMatch()
	m.Lines[9].PlayerID = m.Lines[0].PlayerID
	if err := m.Validate(); err != ErrInvalidMatch {
		t.Fatalf("expected ErrInvalidMatch for repeated player, got %v", err)
	}
}

func TestValidateRejectsUnevenTeams(t *testing.T) {
	m := validMatch()
	m.Lines[9].TeamNumber = 1
	if err := m.Validate(); err != ErrInvalidMatch {
		t.Fatalf("expected ErrInvalidMatch for uneven teams, got %v", err)
	}
}

func TestLineIsWinner(t *testing.T) {
	m := validMatch()
	if !m.LineIsWinner(m.Lines[0]) {
		t.Fatalf("team 1 line should win when team1Won is set")
	}
	if m.LineIsWinner(m.Lines[5]) {
		t.Fatalf("team 2 line should lose when team1Won is set")
	}
	m.Team1Won = false
	if m.LineIsWinner(m.Lines[0]) {
		t.Fatalf("team 1 line should lose when team1Won is unset")
	}
}

func TestOpposingLine(t *testing.T) {
	m := validMatch()
	opp, ok := m.OpposingLine(m.Lines[0])
	if !ok {
		t.Fatalf("expected opposing line for %s", m.Lines[0].Position)
	}
	if opp.TeamNumber == m.Lines[0].TeamNumber || opp.Position != m.Lines[0].Position {
		t.Fatalf("unexpected opposing line: %+v", opp)
	}
}

func TestTeamGold(t *testing.T) {
	m := validMatch()
	own, opp := m.TeamGold(2)
	if own != m.Team2Gold || opp != m.Team1Gold {
		t.Fatalf("expected (%d,%d), got (%d,%d)", m.Team2Gold, m.Team1Gold, own, opp)
	}
}
