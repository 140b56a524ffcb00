package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sjounng/team-draft-lol/internal/domain"
)

// Store persists all application state in PostgreSQL through a pgx
// connection pool. It implements every service store interface.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to the database, verifies the connection, and ensures
// the schema exists.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return s, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id            UUID PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS players (
	id            BIGSERIAL PRIMARY KEY,
	owner_id      UUID NOT NULL REFERENCES profiles(id),
	name          TEXT NOT NULL,
	summoner_name TEXT NOT NULL DEFAULT '',
	main_lane     TEXT NOT NULL,
	sub_lane      TEXT NOT NULL,
	rating        INT NOT NULL DEFAULT 0,
	streak        INT NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS players_owner_idx ON players(owner_id);

CREATE TABLE IF NOT EXISTS pools (
	id         BIGSERIAL PRIMARY KEY,
	owner_id   UUID NOT NULL REFERENCES profiles(id),
	name       TEXT NOT NULL,
	player_ids BIGINT[] NOT NULL DEFAULT '{}',
	member_ids UUID[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS pools_owner_idx ON pools(owner_id);

CREATE TABLE IF NOT EXISTS matches (
	id          BIGSERIAL PRIMARY KEY,
	owner_id    UUID NOT NULL REFERENCES profiles(id),
	team1_won   BOOLEAN NOT NULL,
	team1_kills INT NOT NULL DEFAULT 0,
	team2_kills INT NOT NULL DEFAULT 0,
	team1_gold  INT NOT NULL DEFAULT 0,
	team2_gold  INT NOT NULL DEFAULT 0,
	is_applied  BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS matches_owner_created_idx ON matches(owner_id, created_at);

CREATE TABLE IF NOT EXISTS match_lines (
	match_id        BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
	player_id       BIGINT NOT NULL REFERENCES players(id),
	team_number     INT NOT NULL,
	position        TEXT NOT NULL,
	kills           INT NOT NULL DEFAULT 0,
	deaths          INT NOT NULL DEFAULT 0,
	assists         INT NOT NULL DEFAULT 0,
	cs              INT NOT NULL DEFAULT 0,
	streak_at_match INT,
	PRIMARY KEY (match_id, team_number, position)
);
`

func (s *Store) CreateProfile(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (id, username, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID.String(), p.Username, p.Email, p.PasswordHash, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Profile{}, domain.ErrUsernameTaken
		}
		return domain.Profile{}, err
	}
	return p, nil
}

func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (domain.Profile, error) {
	return s.scanProfile(s.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at
		 FROM profiles WHERE id = $1`, id.String()))
}

func (s *Store) GetProfileByUsername(ctx context.Context, username string) (domain.Profile, error) {
	return s.scanProfile(s.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at
		 FROM profiles WHERE username = $1`, username))
}

func (s *Store) scanProfile(row pgx.Row) (domain.Profile, error) {
	var p domain.Profile
	var id string
	err := row.Scan(&id, &p.Username, &p.Email, &p.PasswordHash, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, err
	}
	p.ID, err = uuid.FromString(id)
	if err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

func (s *Store) CreatePlayer(ctx context.Context, p domain.Player) (domain.Player, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO players (owner_id, name, summoner_name, main_lane, sub_lane, rating, streak, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		p.OwnerID.String(), p.Name, p.SummonerName, string(p.MainLane), string(p.SubLane),
		p.Rating, p.Streak, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return domain.Player{}, err
	}
	return p, nil
}

const playerColumns = `id, owner_id, name, summoner_name, main_lane, sub_lane, rating, streak, created_at`

func (s *Store) GetPlayer(ctx context.Context, id int64) (domain.Player, error) {
	p, err := scanPlayer(s.pool.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	return p, err
}

func (s *Store) GetPlayers(ctx context.Context, ids []int64) ([]domain.Player, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlayers(rows)
}

func (s *Store) ListPlayersByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Player, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+playerColumns+` FROM players WHERE owner_id = $1 ORDER BY id`, ownerID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlayers(rows)
}

func (s *Store) UpdatePlayer(ctx context.Context, p domain.Player) (domain.Player, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE players
		 SET name = $2, summoner_name = $3, main_lane = $4, sub_lane = $5, rating = $6, streak = $7
		 WHERE id = $1`,
		p.ID, p.Name, p.SummonerName, string(p.MainLane), string(p.SubLane), p.Rating, p.Streak)
	if err != nil {
		return domain.Player{}, err
	}
	if tag.RowsAffected() == 0 {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	return p, nil
}

func (s *Store) DeletePlayer(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}

func scanPlayer(row pgx.Row) (domain.Player, error) {
	var p domain.Player
	var ownerID, mainLane, subLane string
	err := row.Scan(&p.ID, &ownerID, &p.Name, &p.SummonerName, &mainLane, &subLane,
		&p.Rating, &p.Streak, &p.CreatedAt)
	if err != nil {
		return domain.Player{}, err
	}
	p.OwnerID, err = uuid.FromString(ownerID)
	if err != nil {
		return domain.Player{}, err
	}
	p.MainLane = domain.Position(mainLane)
	p.SubLane = domain.Position(subLane)
	return p, nil
}

func collectPlayers(rows pgx.Rows) ([]domain.Player, error) {
	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *Store) CreatePool(ctx context.Context, p domain.Pool) (domain.Pool, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO pools (owner_id, name, player_ids, member_ids, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		p.OwnerID.String(), p.Name, p.PlayerIDs, uuidStrings(p.MemberIDs), p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return domain.Pool{}, err
	}
	return p, nil
}

func (s *Store) GetPool(ctx context.Context, id int64) (domain.Pool, error) {
	p, err := scanPool(s.pool.QueryRow(ctx,
		`SELECT id, owner_id, name, player_ids, member_ids, created_at
		 FROM pools WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Pool{}, domain.ErrPoolNotFound
	}
	return p, err
}

func (s *Store) ListPoolsByProfile(ctx context.Context, profileID uuid.UUID) ([]domain.Pool, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, owner_id, name, player_ids, member_ids, created_at
		 FROM pools WHERE owner_id = $1 OR $1::uuid = ANY(member_ids)
		 ORDER BY id`, profileID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pools []domain.Pool
	for rows.Next() {
		p, err := scanPool(rows)
		if err != nil {
			return nil, err
		}
		pools = append(pools, p)
	}
	return pools, rows.Err()
}

func (s *Store) UpdatePool(ctx context.Context, p domain.Pool) (domain.Pool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE pools SET name = $2, player_ids = $3, member_ids = $4 WHERE id = $1`,
		p.ID, p.Name, p.PlayerIDs, uuidStrings(p.MemberIDs))
	if err != nil {
		return domain.Pool{}, err
	}
	if tag.RowsAffected() == 0 {
		return domain.Pool{}, domain.ErrPoolNotFound
	}
	return p, nil
}

func (s *Store) DeletePool(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM pools WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPoolNotFound
	}
	return nil
}

func scanPool(row pgx.Row) (domain.Pool, error) {
	var p domain.Pool
	var ownerID string
	var memberIDs []string
	err := row.Scan(&p.ID, &ownerID, &p.Name, &p.PlayerIDs, &memberIDs, &p.CreatedAt)
	if err != nil {
		return domain.Pool{}, err
	}
	p.OwnerID, err = uuid.FromString(ownerID)
	if err != nil {
		return domain.Pool{}, err
	}
	p.MemberIDs = make([]uuid.UUID, 0, len(memberIDs))
	for _, raw := range memberIDs {
		id, err := uuid.FromString(raw)
		if err != nil {
			return domain.Pool{}, err
		}
		p.MemberIDs = append(p.MemberIDs, id)
	}
	return p, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func (s *Store) CreateMatch(ctx context.Context, m domain.Match) (domain.Match, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Match{}, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO matches (owner_id, team1_won, team1_kills, team2_kills, team1_gold, team2_gold, is_applied, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		m.OwnerID.String(), m.Team1Won, m.Team1Kills, m.Team2Kills,
		m.Team1Gold, m.Team2Gold, m.IsApplied, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		return domain.Match{}, err
	}
	if err := insertLines(ctx, tx, m.ID, m.Lines); err != nil {
		return domain.Match{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Match{}, err
	}
	return m, nil
}

func (s *Store) GetMatch(ctx context.Context, id int64) (domain.Match, error) {
	m, err := scanMatch(s.pool.QueryRow(ctx,
		`SELECT id, owner_id, team1_won, team1_kills, team2_kills, team1_gold, team2_gold, is_applied, created_at
		 FROM matches WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Match{}, domain.ErrMatchNotFound
	}
	if err != nil {
		return domain.Match{}, err
	}
	m.Lines, err = s.loadLines(ctx, m.ID)
	if err != nil {
		return domain.Match{}, err
	}
	return m, nil
}

func (s *Store) ListMatchesByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Match, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, owner_id, team1_won, team1_kills, team2_kills, team1_gold, team2_gold, is_applied, created_at
		 FROM matches WHERE owner_id = $1 ORDER BY created_at, id`, ownerID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range matches {
		matches[i].Lines, err = s.loadLines(ctx, matches[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return matches, nil
}

func (s *Store) UpdateMatch(ctx context.Context, m domain.Match) (domain.Match, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Match{}, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE matches
		 SET team1_won = $2, team1_kills = $3, team2_kills = $4, team1_gold = $5, team2_gold = $6, is_applied = $7
		 WHERE id = $1`,
		m.ID, m.Team1Won, m.Team1Kills, m.Team2Kills, m.Team1Gold, m.Team2Gold, m.IsApplied)
	if err != nil {
		return domain.Match{}, err
	}
	if tag.RowsAffected() == 0 {
		return domain.Match{}, domain.ErrMatchNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM match_lines WHERE match_id = $1`, m.ID); err != nil {
		return domain.Match{}, err
	}
	if err := insertLines(ctx, tx, m.ID, m.Lines); err != nil {
		return domain.Match{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Match{}, err
	}
	return m, nil
}

func (s *Store) DeleteMatch(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}

// SaveMatchEffect commits a rating effect as one transaction: the
// match flag, every line's streak snapshot, and the moved players all
// land together or not at all.
func (s *Store) SaveMatchEffect(ctx context.Context, m domain.Match, players []domain.Player) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE matches SET is_applied = $2 WHERE id = $1`, m.ID, m.IsApplied)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMatchNotFound
	}
	for _, line := range m.Lines {
		if _, err := tx.Exec(ctx,
			`UPDATE match_lines SET streak_at_match = $3
			 WHERE match_id = $1 AND player_id = $2`,
			m.ID, line.PlayerID, line.StreakAtMatch); err != nil {
			return err
		}
	}
	for _, p := range players {
		tag, err := tx.Exec(ctx,
			`UPDATE players SET rating = $2, streak = $3 WHERE id = $1`,
			p.ID, p.Rating, p.Streak)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrPlayerNotFound
		}
	}
	return tx.Commit(ctx)
}

func scanMatch(row pgx.Row) (domain.Match, error) {
	var m domain.Match
	var ownerID string
	err := row.Scan(&m.ID, &ownerID, &m.Team1Won, &m.Team1Kills, &m.Team2Kills,
		&m.Team1Gold, &m.Team2Gold, &m.IsApplied, &m.CreatedAt)
	if err != nil {
		return domain.Match{}, err
	}
	m.OwnerID, err = uuid.FromString(ownerID)
	if err != nil {
		return domain.Match{}, err
	}
	return m, nil
}

func (s *Store) loadLines(ctx context.Context, matchID int64) ([]domain.MatchLine, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT player_id, team_number, position, kills, deaths, assists, cs, streak_at_match
		 FROM match_lines WHERE match_id = $1 ORDER BY team_number, position`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.MatchLine
	for rows.Next() {
		var line domain.MatchLine
		var position string
		if err := rows.Scan(&line.PlayerID, &line.TeamNumber, &position,
			&line.Kills, &line.Deaths, &line.Assists, &line.CS, &line.StreakAtMatch); err != nil {
			return nil, err
		}
		line.Position = domain.Position(position)
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func insertLines(ctx context.Context, tx pgx.Tx, matchID int64, lines []domain.MatchLine) error {
	for _, line := range lines {
		if _, err := tx.Exec(ctx,
			`INSERT INTO match_lines (match_id, player_id, team_number, position, kills, deaths, assists, cs, streak_at_match)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			matchID, line.PlayerID, line.TeamNumber, string(line.Position),
			line.Kills, line.Deaths, line.Assists, line.CS, line.StreakAtMatch); err != nil {
			return err
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
