package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrMalformedCoordinate = errors.New("malformed coordinate")

// Coordinate is a cell position on the field, X is the column and Y the row.
type Coordinate struct {
	X int
	Y int
}

func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{X: c.X + other.X, Y: c.Y + other.Y}
}

func (c Coordinate) String() string {
	return strconv.Itoa(c.X) + ";" + strconv.Itoa(c.Y)
}

func GetManhattanDistance(c1, c2 Coordinate) int {
	return abs(c1.X-c2.X) + abs(c1.Y-c2.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ConvertCoordinate parses the game notation "<x>;<y>".
// Each part is read like a base-10 integer prefix: leading whitespace is
// skipped and trailing garbage after the digits is ignored.
func ConvertCoordinate(gameCoordinate string) (Coordinate, error) {
	parts := strings.Split(gameCoordinate, ";")
	if len(parts) < 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrMalformedCoordinate, gameCoordinate)
	}

	x, err := parseIntPrefix(parts[0])
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %q x part", ErrMalformedCoordinate, gameCoordinate)
	}
	y, err := parseIntPrefix(parts[1])
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %q y part", ErrMalformedCoordinate, gameCoordinate)
	}

	return Coordinate{X: x, Y: y}, nil
}

func ConvertCoordinates(gameCoordinates []string) ([]Coordinate, error) {
	result := make([]Coordinate, 0, len(gameCoordinates))
	for _, gameCoordinate := range gameCoordinates {
		coordinate, err := ConvertCoordinate(gameCoordinate)
		if err != nil {
			return nil, err
		}
		result = append(result, coordinate)
	}
	return result, nil
}

func parseIntPrefix(s string) (int, error) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, ErrMalformedCoordinate
	}

	return strconv.Atoi(s[:end])
}
