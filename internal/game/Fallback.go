package game

// Fallback picks the next head position when the meal cannot be reached.
// The field passed in already has the snake body marked as barriers.
type Fallback interface {
	NextCoordinate(field *Field, snake []Coordinate, meal Coordinate) (Coordinate, bool)
}

// SurvivalFallback steps onto the first free neighbour of the head in
// north, east, south, west order, skipping the neck.
type SurvivalFallback struct{}

func (s *SurvivalFallback) NextCoordinate(field *Field, snake []Coordinate, _ Coordinate) (Coordinate, bool) {
	validMoves := s.validMoves(field, snake)
	if len(validMoves) == 0 {
		return Coordinate{}, false // Trapped
	}
	return validMoves[0], true
}

func (s *SurvivalFallback) validMoves(field *Field, snake []Coordinate) []Coordinate {
	if len(snake) == 0 {
		return nil
	}

	head := snake[0]
	var moves []Coordinate
	for _, next := range field.CoordinatesAround(head) {
		// Prevent moving backwards
		if len(snake) > 1 && next == snake[1] {
			continue
		}
		if !field.IsFree(next) {
			continue
		}
		moves = append(moves, next)
	}
	return moves
}

var defaultFallback Fallback = &SurvivalFallback{}
