package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultCommand is returned while the snake has no neck to derive a heading from.
const DefaultCommand = CommandTurnLeft

var (
	ErrEmptySnake = errors.New("snake has no segments")
	ErrNoMeal     = errors.New("no meal given")
	ErrFieldSize  = errors.New("field size must not be negative")
)

// Session tracks one game across successive NextCommand calls.
// It is not safe for concurrent use.
type Session struct {
	id       string
	field    *Field
	snake    []Coordinate
	meal     Coordinate
	tick     int
	journal  Journal
	fallback Fallback
	logger   *log.Logger
}

type SessionOption func(*Session)

func WithJournal(journal Journal) SessionOption {
	return func(s *Session) { s.journal = journal }
}

func WithFallback(fallback Fallback) SessionOption {
	return func(s *Session) {
		if fallback != nil {
			s.fallback = fallback
		}
	}
}

func WithLogger(logger *log.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithSessionID(id string) SessionOption {
	return func(s *Session) { s.id = id }
}

// StartGame creates a session on a fresh field. Only the first meal is used.
func StartGame(snake []string, meals []string, fieldSize int, opts ...SessionOption) (*Session, error) {
	if fieldSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrFieldSize, fieldSize)
	}
	if len(meals) == 0 {
		return nil, ErrNoMeal
	}

	snakeCoordinates, err := ConvertCoordinates(snake)
	if err != nil {
		return nil, fmt.Errorf("parsing snake: %w", err)
	}
	meal, err := ConvertCoordinate(meals[0])
	if err != nil {
		return nil, fmt.Errorf("parsing meal: %w", err)
	}

	session := &Session{
		id:       "session-" + strconv.FormatInt(time.Now().UnixNano(), 36),
		field:    NewField(fieldSize),
		snake:    snakeCoordinates,
		meal:     meal,
		fallback: defaultFallback,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(session)
	}

	session.logger.Debug("Game started", "session", session.id, "field_size", fieldSize, "snake_length", len(snakeCoordinates), "meal", meal)
	return session, nil
}

// NextCommand replaces the snake and meal and returns the turn that moves the
// head one step along a shortest path to the meal.
func (s *Session) NextCommand(ctx context.Context, snake []string, meal string) (Command, error) {
	snakeCoordinates, err := ConvertCoordinates(snake)
	if err != nil {
		return CommandInPlace, fmt.Errorf("parsing snake: %w", err)
	}
	if len(snakeCoordinates) == 0 {
		return CommandInPlace, ErrEmptySnake
	}
	mealCoordinate, err := ConvertCoordinate(meal)
	if err != nil {
		return CommandInPlace, fmt.Errorf("parsing meal: %w", err)
	}

	s.snake = snakeCoordinates
	s.meal = mealCoordinate
	s.tick++

	move := Move{
		SessionID: s.id,
		Tick:      s.tick,
		Head:      s.snake[0],
		Meal:      s.meal,
		Command:   DefaultCommand,
	}

	if len(s.snake) > 1 {
		move.Command, move.PathLength, move.Fallback = s.decide()
	}

	s.logger.Debug("Next command", "session", s.id, "tick", s.tick, "head", move.Head, "meal", move.Meal,
		"command", move.Command, "path_length", move.PathLength, "fallback", move.Fallback)

	s.record(ctx, move)
	return move.Command, nil
}

func (s *Session) decide() (Command, int, bool) {
	head, neck := s.snake[0], s.snake[1]

	path := s.field.SetBarriers(s.snake).Path(head, s.meal)
	if len(path) > 1 {
		return CommandFor(neck, head, path[1]), len(path) - 1, false
	}

	next, ok := s.fallback.NextCoordinate(s.field, s.snake, s.meal)
	if !ok {
		s.logger.Warn("Snake is trapped", "session", s.id, "head", head)
		return CommandInPlace, 0, true
	}
	return CommandFor(neck, head, next), 0, true
}

func (s *Session) record(ctx context.Context, move Move) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(ctx, move); err != nil {
		s.logger.Error("Move journal persist failed", "session", s.id, "tick", move.Tick, "error", err)
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Field() *Field {
	return s.field
}

func (s *Session) Snake() []Coordinate {
	snake := make([]Coordinate, len(s.snake))
	copy(snake, s.snake)
	return snake
}

func (s *Session) Meal() Coordinate {
	return s.meal
}

func (s *Session) Tick() int {
	return s.tick
}
