package game

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

// Move is one decision taken by a session.
type Move struct {
	SessionID  string
	Tick       int
	Head       Coordinate
	Meal       Coordinate
	Command    Command
	PathLength int // 0 when the meal was unreachable
	Fallback   bool
	CreatedAt  time.Time
}

// Journal receives every decision a session makes.
type Journal interface {
	Record(ctx context.Context, move Move) error
}

type SQLiteJournal struct {
	db     *sql.DB
	logger *log.Logger
}

const movesTableName = "moves"

func NewSQLiteJournal(ctx context.Context, dbPath string, logger *log.Logger) (*SQLiteJournal, error) {
	if logger == nil {
		logger = log.Default()
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", dbPath, err)
	}

	journal := &SQLiteJournal{db: db, logger: logger}
	if err := journal.createTable(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return journal, nil
}

func (j *SQLiteJournal) createTable(ctx context.Context) error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + movesTableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		head_x INTEGER NOT NULL,
		head_y INTEGER NOT NULL,
		meal_x INTEGER NOT NULL,
		meal_y INTEGER NOT NULL,
		command TEXT NOT NULL,
		path_length INTEGER NOT NULL,
		fallback INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);`

	if _, err := j.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	j.logger.Debug("Moves table ensured.")
	return nil
}

func (j *SQLiteJournal) Record(ctx context.Context, move Move) error {
	const insertSQL = `
	INSERT INTO ` + movesTableName + ` (session_id, tick, head_x, head_y, meal_x, meal_y, command, path_length, fallback, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	createdAt := move.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := j.db.ExecContext(ctx, insertSQL,
		move.SessionID, move.Tick,
		move.Head.X, move.Head.Y,
		move.Meal.X, move.Meal.Y,
		move.Command.String(), move.PathLength, move.Fallback,
		createdAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert move %d for session %s: %w", move.Tick, move.SessionID, err)
	}

	return nil
}

// Moves returns a page of a session's moves in tick order.
func (j *SQLiteJournal) Moves(ctx context.Context, sessionID string, limit, offset int) ([]Move, error) {
	const selectSQL = `
	SELECT session_id, tick, head_x, head_y, meal_x, meal_y, command, path_length, fallback, created_at
	FROM ` + movesTableName + `
	WHERE session_id = ?
	ORDER BY tick ASC, id ASC
	LIMIT ? OFFSET ?;`

	rows, err := j.db.QueryContext(ctx, selectSQL, sessionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query moves: %w", err)
	}
	defer rows.Close()

	var moves []Move
	for rows.Next() {
		var move Move
		var command string
		var createdAt int64
		err := rows.Scan(&move.SessionID, &move.Tick,
			&move.Head.X, &move.Head.Y,
			&move.Meal.X, &move.Meal.Y,
			&command, &move.PathLength, &move.Fallback, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		move.Command = ParseCommand(command)
		move.CreatedAt = time.UnixMilli(createdAt)
		moves = append(moves, move)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}

	return moves, nil
}

func (j *SQLiteJournal) Count(ctx context.Context, sessionID string) (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + movesTableName + ` WHERE session_id = ?;`
	var count int
	if err := j.db.QueryRowContext(ctx, countSQL, sessionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get move count: %w", err)
	}
	return count, nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
