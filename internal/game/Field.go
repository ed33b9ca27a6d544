package game

const (
	FreeCell    = 0
	BarrierCell = -1
)

// Field is a square grid of cells. A cell is free (0) or a barrier (-1);
// positive values only exist inside the working copy of a Path search.
type Field struct {
	size  int
	cells [][]int
}

func NewField(size int) *Field {
	field := &Field{size: size}
	return field.ResetCells()
}

// Cells returns a deep copy of the grid.
func (f *Field) Cells() [][]int {
	cells := make([][]int, len(f.cells))
	for row := range f.cells {
		cells[row] = make([]int, len(f.cells[row]))
		copy(cells[row], f.cells[row])
	}
	return cells
}

func (f *Field) Size() int {
	return f.size
}

// ResetCells reallocates an all free grid.
func (f *Field) ResetCells() *Field {
	rows := max(f.size, 0)
	f.cells = make([][]int, rows)
	for row := 0; row < rows; row++ {
		f.cells[row] = make([]int, rows)
	}
	return f
}

// SetBarriers replaces the barrier set. Coordinates outside the field are skipped.
func (f *Field) SetBarriers(barriers []Coordinate) *Field {
	f.ResetCells()

	for _, barrier := range barriers {
		if !f.Contains(barrier) {
			continue
		}
		f.cells[barrier.Y][barrier.X] = BarrierCell
	}

	return f
}

func (f *Field) Contains(c Coordinate) bool {
	return c.Y >= 0 && c.Y < len(f.cells) && c.X >= 0 && c.X < len(f.cells[c.Y])
}

// IsFree reports whether c is inside the field and not a barrier.
func (f *Field) IsFree(c Coordinate) bool {
	return f.Contains(c) && f.cells[c.Y][c.X] == FreeCell
}

// CoordinatesAround returns the in-range orthogonal neighbours of center,
// always in north, east, south, west order.
func (f *Field) CoordinatesAround(center Coordinate) []Coordinate {
	around := make([]Coordinate, 0, len(compassDirections))
	for _, dir := range compassDirections {
		next := center.Add(dir.Delta())
		if f.Contains(next) {
			around = append(around, next)
		}
	}
	return around
}

// Path finds a shortest path from start to finish with the Lee wave
// algorithm. The result includes both ends; nil means finish is unreachable.
// A finish cell that is a barrier stops the wave at once and yields [finish].
// Among several shortest paths the backtrack picks predecessors in
// north, east, south, west order.
func (f *Field) Path(start, finish Coordinate) []Coordinate {
	if !f.Contains(start) || !f.Contains(finish) {
		return nil
	}

	cells := f.Cells()
	cells[start.Y][start.X] = 1

	for d := 1; cells[finish.Y][finish.X] == FreeCell; d++ {
		propagated := false

		for y, row := range cells {
			for x, value := range row {
				if value != d {
					continue
				}
				for _, around := range f.CoordinatesAround(Coordinate{X: x, Y: y}) {
					if cells[around.Y][around.X] == FreeCell {
						cells[around.Y][around.X] = d + 1
						propagated = true
					}
				}
			}
		}

		if !propagated {
			break
		}
	}

	if cells[finish.Y][finish.X] == FreeCell {
		return nil
	}

	path := []Coordinate{finish}
	for d := cells[finish.Y][finish.X]; d > cells[start.Y][start.X]; d-- {
		current := path[len(path)-1]
		for _, around := range f.CoordinatesAround(current) {
			if cells[around.Y][around.X] == d-1 {
				path = append(path, around)
				break
			}
		}
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
