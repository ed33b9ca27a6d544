// Package history reads recorded move histories and replays them through a
// game session.
//
// A history holds one frame per line:
//
//	<snake segment> <snake segment> ... | <meal>
//
// Segments use the "<x>;<y>" notation, head first. Blank lines and lines
// starting with '#' are skipped.
package history

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Mshel/snakepilot/internal/game"
)

var (
	ErrMalformedFrame = errors.New("malformed frame")
	ErrEmptyHistory   = errors.New("history has no frames")
)

type Frame struct {
	Line  int
	Snake []string
	Meal  string
}

func Parse(r io.Reader) ([]Frame, error) {
	var frames []Frame

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		frame, err := parseFrame(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		frame.Line = lineNumber
		frames = append(frames, frame)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	return frames, nil
}

func parseFrame(line string) (Frame, error) {
	snakePart, mealPart, ok := strings.Cut(line, "|")
	if !ok {
		return Frame{}, fmt.Errorf("%w: missing '|' separator", ErrMalformedFrame)
	}

	snake := strings.Fields(snakePart)
	if len(snake) == 0 {
		return Frame{}, fmt.Errorf("%w: no snake segments", ErrMalformedFrame)
	}

	meal := strings.TrimSpace(mealPart)
	if meal == "" {
		return Frame{}, fmt.Errorf("%w: no meal", ErrMalformedFrame)
	}

	return Frame{Snake: snake, Meal: meal}, nil
}

// Replay starts a game from the first frame and asks for a command on every
// frame, the first one included.
func Replay(ctx context.Context, frames []Frame, fieldSize int, opts ...game.SessionOption) (*game.Session, []game.Command, error) {
	if len(frames) == 0 {
		return nil, nil, ErrEmptyHistory
	}

	session, err := game.StartGame(frames[0].Snake, []string{frames[0].Meal}, fieldSize, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("line %d: %w", frames[0].Line, err)
	}

	commands := make([]game.Command, 0, len(frames))
	for _, frame := range frames {
		if err := ctx.Err(); err != nil {
			return session, commands, err
		}

		command, err := session.NextCommand(ctx, frame.Snake, frame.Meal)
		if err != nil {
			return session, commands, fmt.Errorf("line %d: %w", frame.Line, err)
		}
		commands = append(commands, command)
	}

	return session, commands, nil
}
