package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/poiregame/poire-go/internal/model"
	"github.com/poiregame/poire-go/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface,
// using the pure-Go modernc.org/sqlite driver
type Storage struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at the given path and ensures
// the schema exists
func New(path string) (*Storage, error) {
	if path == "" {
		return nil, errors.New("sqlite: database path is empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: ensure db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// modernc.org/sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: configure: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			status TEXT NOT NULL,
			last_seen TIMESTAMP,
			click_multiplier REAL NOT NULL DEFAULT 1.0,
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_players_status ON players(status);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			code TEXT PRIMARY KEY,
			creator TEXT NOT NULL UNIQUE,
			score INTEGER NOT NULL DEFAULT 0,
			click_multiplier REAL NOT NULL DEFAULT 1.0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_members (
			session_code TEXT NOT NULL,
			player_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY(session_code, player_id),
			FOREIGN KEY(session_code) REFERENCES sessions(code)
				ON DELETE CASCADE ON UPDATE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_session_members_player ON session_members(player_id);`,
		`CREATE TABLE IF NOT EXISTS game_scores (
			game TEXT NOT NULL,
			player_id TEXT NOT NULL,
			best_score INTEGER NOT NULL DEFAULT 0,
			credits INTEGER NOT NULL DEFAULT 0,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY(game, player_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_game_scores_best ON game_scores(game, best_score DESC);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("sqlite: apply schema: %w", err)
		}
	}
	return nil
}

// Close releases database resources
func (s *Storage) Close() error {
	return s.db.Close()
}

var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	var lastSeen sql.NullTime
	if player.LastSeen != nil {
		lastSeen = sql.NullTime{Time: *player.LastSeen, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (id, password_hash, status, last_seen, click_multiplier, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			password_hash = excluded.password_hash,
			status = excluded.status,
			last_seen = excluded.last_seen,
			click_multiplier = excluded.click_multiplier`,
		string(player.ID), player.PasswordHash, string(player.Status),
		lastSeen, player.ClickMultiplier, player.CreatedAt,
	)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash, status, last_seen, click_multiplier, created_at
		FROM players WHERE id = ?`, string(id))
	return scanPlayer(row)
}

func (s *Storage) PlayerExists(ctx context.Context, id model.PlayerID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)`, string(id)).Scan(&exists)
	return exists, err
}

func (s *Storage) ListPlayersByStatus(ctx context.Context, status model.PlayerStatus) ([]*model.Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, password_hash, status, last_seen, click_multiplier, created_at
		FROM players WHERE status = ?`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []*model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (*model.Player, error) {
	var p model.Player
	var status string
	var lastSeen sql.NullTime
	err := row.Scan(&p.ID, &p.PasswordHash, &status, &lastSeen, &p.ClickMultiplier, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	p.Status = model.PlayerStatus(status)
	if lastSeen.Valid {
		t := lastSeen.Time
		p.LastSeen = &t
	}
	return &p, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (code, creator, score, click_multiplier, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			score = excluded.score,
			click_multiplier = excluded.click_multiplier,
			updated_at = excluded.updated_at`,
		string(session.Code), string(session.Creator), session.Score,
		session.ClickMultiplier, session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return err
	}

	// Rewrite the member list wholesale; it is at most MaxMembers rows
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM session_members WHERE session_code = ?`, string(session.Code)); err != nil {
		return err
	}
	for i, m := range session.Members {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO session_members (session_code, player_id, position) VALUES (?, ?, ?)`,
			string(session.Code), string(m), i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Storage) GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	session, err := s.scanSession(ctx, `
		SELECT code, creator, score, click_multiplier, created_at, updated_at
		FROM sessions WHERE code = ?`, string(code))
	if err != nil {
		return nil, err
	}
	if err := s.loadMembers(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Storage) SessionExists(ctx context.Context, code model.SessionCode) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM sessions WHERE code = ?)`, string(code)).Scan(&exists)
	return exists, err
}

func (s *Storage) GetSessionByCreator(ctx context.Context, creator model.PlayerID) (*model.Session, error) {
	session, err := s.scanSession(ctx, `
		SELECT code, creator, score, click_multiplier, created_at, updated_at
		FROM sessions WHERE creator = ?`, string(creator))
	if err != nil {
		return nil, err
	}
	if err := s.loadMembers(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Storage) GetSessionsByMember(ctx context.Context, id model.PlayerID) ([]*model.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_code FROM session_members WHERE player_id = ?`, string(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []model.SessionCode
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, model.SessionCode(code))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sessions := make([]*model.Session, 0, len(codes))
	for _, code := range codes {
		session, err := s.GetSession(ctx, code)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (s *Storage) RenameSession(ctx context.Context, oldCode, newCode model.SessionCode) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var taken bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM sessions WHERE code = ?)`, string(newCode)).Scan(&taken); err != nil {
		return err
	}
	if taken {
		return model.ErrSessionCodeTaken
	}

	// ON UPDATE CASCADE carries the member rows over
	res, err := tx.ExecContext(ctx,
		`UPDATE sessions SET code = ? WHERE code = ?`, string(newCode), string(oldCode))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrSessionNotFound
	}

	return tx.Commit()
}

func (s *Storage) scanSession(ctx context.Context, query string, args ...any) (*model.Session, error) {
	var session model.Session
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&session.Code, &session.Creator, &session.Score,
		&session.ClickMultiplier, &session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *Storage) loadMembers(ctx context.Context, session *model.Session) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT player_id FROM session_members
		WHERE session_code = ? ORDER BY position`, string(session.Code))
	if err != nil {
		return err
	}
	defer rows.Close()

	session.Members = []model.PlayerID{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		session.Members = append(session.Members, model.PlayerID(id))
	}
	return rows.Err()
}

// Game score operations

func (s *Storage) SaveGameScore(ctx context.Context, score *model.GameScore) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO game_scores (game, player_id, best_score, credits, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(game, player_id) DO UPDATE SET
			best_score = excluded.best_score,
			credits = excluded.credits,
			updated_at = excluded.updated_at`,
		score.Game, string(score.PlayerID), score.BestScore, score.Credits, score.UpdatedAt,
	)
	return err
}

func (s *Storage) GetGameScore(ctx context.Context, game string, id model.PlayerID) (*model.GameScore, error) {
	var score model.GameScore
	err := s.db.QueryRowContext(ctx, `
		SELECT game, player_id, best_score, credits, updated_at
		FROM game_scores WHERE game = ? AND player_id = ?`,
		game, string(id),
	).Scan(&score.Game, &score.PlayerID, &score.BestScore, &score.Credits, &score.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrScoreNotFound
		}
		return nil, err
	}
	return &score, nil
}

func (s *Storage) TopGameScores(ctx context.Context, game string, limit int) ([]*model.GameScore, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT game, player_id, best_score, credits, updated_at
		FROM game_scores WHERE game = ?
		ORDER BY best_score DESC, player_id ASC LIMIT ?`, game, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []*model.GameScore
	for rows.Next() {
		var score model.GameScore
		if err := rows.Scan(&score.Game, &score.PlayerID, &score.BestScore,
			&score.Credits, &score.UpdatedAt); err != nil {
			return nil, err
		}
		scores = append(scores, &score)
	}
	return scores, rows.Err()
}
