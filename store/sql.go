package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hex/game"
	"strconv"
	"strings"
	"time"
)

// sqlStore holds the queries shared by the sqlite and postgres backends. Queries are
// written with ? placeholders and rebound per driver.
type sqlStore struct {
	db     *sql.DB
	rebind func(query string) string
}

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	width      INTEGER NOT NULL,
	height     INTEGER NOT NULL,
	winner     INTEGER NOT NULL,
	moves      TEXT NOT NULL,
	started_at BIGINT NOT NULL,
	ended_at   BIGINT NOT NULL
)`

const endedAtIndex = `CREATE INDEX IF NOT EXISTS games_ended_at_idx ON games (ended_at DESC)`

func (s *sqlStore) ensureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create games table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, endedAtIndex); err != nil {
		return fmt.Errorf("failed to create games index: %w", err)
	}
	return nil
}

func (s *sqlStore) SaveGame(ctx context.Context, record Record) error {
	if err := validateRecord(record); err != nil {
		return err
	}
	moves, err := encodeMoves(record.Moves)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.rebind(`
INSERT INTO games (id, width, height, winner, moves, started_at, ended_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	width = excluded.width,
	height = excluded.height,
	winner = excluded.winner,
	moves = excluded.moves,
	started_at = excluded.started_at,
	ended_at = excluded.ended_at`),
		record.ID, record.Width, record.Height, int(record.Winner), moves,
		record.StartedAt.UnixNano(), record.EndedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save game %s: %w", record.ID, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		record    Record
		winner    int
		moves     string
		startedAt int64
		endedAt   int64
	)
	if err := row.Scan(&record.ID, &record.Width, &record.Height, &winner, &moves, &startedAt, &endedAt); err != nil {
		return Record{}, err
	}
	decoded, err := decodeMoves(moves)
	if err != nil {
		return Record{}, err
	}
	record.Winner = game.Color(winner)
	record.Moves = decoded
	record.StartedAt = time.Unix(0, startedAt).UTC()
	record.EndedAt = time.Unix(0, endedAt).UTC()
	return record, nil
}

func (s *sqlStore) GetGame(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`
SELECT id, width, height, winner, moves, started_at, ended_at
FROM games WHERE id = ?`), id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to load game %s: %w", id, err)
	}
	return record, nil
}

func (s *sqlStore) ListGames(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
SELECT id, width, height, winner, moves, started_at, ended_at
FROM games ORDER BY ended_at DESC, id ASC LIMIT ?`), normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

func questionMarks(query string) string {
	return query
}

// dollarPlaceholders rewrites ? placeholders to $1, $2, ...
func dollarPlaceholders(query string) string {
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
