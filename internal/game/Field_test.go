package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allCellsEqual(cells [][]int, want int) bool {
	for _, row := range cells {
		for _, cell := range row {
			if cell != want {
				return false
			}
		}
	}
	return true
}

func TestNewField(t *testing.T) {
	field := NewField(10)
	cells := field.Cells()

	require.Len(t, cells, 10)
	for _, row := range cells {
		assert.Len(t, row, 10)
	}
	assert.True(t, allCellsEqual(cells, FreeCell))
}

func TestFieldSize(t *testing.T) {
	size := rand.Intn(10)
	assert.Equal(t, size, NewField(size).Size())
	assert.Equal(t, 0, NewField(0).Size())
	assert.Empty(t, NewField(0).Cells())
}

func TestFieldCellsReturnsCopy(t *testing.T) {
	field := NewField(3)

	cells := field.Cells()
	cells[1][1] = 42
	cells[0] = []int{7}

	fresh := field.Cells()
	assert.Equal(t, [][]int{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}, fresh)
}

func TestFieldResetCellsReturnsField(t *testing.T) {
	field := NewField(4)
	assert.Same(t, field, field.ResetCells())
	assert.Same(t, field, field.SetBarriers(nil))
}

func TestFieldCoordinatesAround(t *testing.T) {
	field := NewField(10)

	tests := []struct {
		name   string
		center Coordinate
		around []Coordinate
	}{
		{"corner", Coordinate{0, 0}, []Coordinate{{1, 0}, {0, 1}}},
		{"top edge", Coordinate{1, 0}, []Coordinate{{2, 0}, {1, 1}, {0, 0}}},
		{"interior", Coordinate{1, 1}, []Coordinate{{1, 0}, {2, 1}, {1, 2}, {0, 1}}},
		{"left edge", Coordinate{0, 1}, []Coordinate{{0, 0}, {1, 1}, {0, 2}}},
		{"far corner", Coordinate{9, 9}, []Coordinate{{9, 8}, {8, 9}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := field.CoordinatesAround(tt.center)
			assert.ElementsMatch(t, tt.around, got)
			for _, c := range got {
				assert.Equal(t, 1, GetManhattanDistance(tt.center, c))
			}
		})
	}
}

func TestFieldCoordinatesAroundOrder(t *testing.T) {
	got := NewField(3).CoordinatesAround(Coordinate{1, 1})
	assert.Equal(t, []Coordinate{{1, 0}, {2, 1}, {1, 2}, {0, 1}}, got)
}

func TestFieldSetBarriersFillsEverything(t *testing.T) {
	field := NewField(10)

	var coordinates []Coordinate
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			coordinates = append(coordinates, Coordinate{x, y})
		}
	}

	field.SetBarriers(coordinates)
	assert.True(t, allCellsEqual(field.Cells(), BarrierCell))
}

func TestFieldSetBarriersReplacesPrevious(t *testing.T) {
	field := NewField(10)
	corners := []Coordinate{{0, 0}, {9, 0}, {9, 9}, {0, 9}}
	center := []Coordinate{{4, 4}, {5, 4}, {5, 5}, {4, 5}}

	field.SetBarriers(corners)
	cells := field.Cells()
	for _, c := range corners {
		assert.Equal(t, BarrierCell, cells[c.Y][c.X])
	}

	field.SetBarriers(center)
	cells = field.Cells()
	for _, c := range center {
		assert.Equal(t, BarrierCell, cells[c.Y][c.X])
	}
	for _, c := range corners {
		assert.Equal(t, FreeCell, cells[c.Y][c.X])
	}

	field.SetBarriers([]Coordinate{})
	assert.True(t, allCellsEqual(field.Cells(), FreeCell))
}

func TestFieldSetBarriersSkipsOutOfRange(t *testing.T) {
	field := NewField(2)
	field.SetBarriers([]Coordinate{{-1, 0}, {2, 1}, {1, 1}})
	assert.Equal(t, [][]int{{0, 0}, {0, -1}}, field.Cells())
}

func TestFieldPath(t *testing.T) {
	tests := []struct {
		name     string
		barriers []Coordinate
		start    Coordinate
		finish   Coordinate
		want     []Coordinate
	}{
		{
			name:     "around top barrier",
			barriers: []Coordinate{{1, 0}},
			start:    Coordinate{0, 0},
			finish:   Coordinate{1, 1},
			want:     []Coordinate{{0, 0}, {0, 1}, {1, 1}},
		},
		{
			name:     "around left barrier",
			barriers: []Coordinate{{0, 1}},
			start:    Coordinate{0, 0},
			finish:   Coordinate{1, 1},
			want:     []Coordinate{{0, 0}, {1, 0}, {1, 1}},
		},
		{
			name:     "walled off",
			barriers: []Coordinate{{1, 0}, {0, 1}},
			start:    Coordinate{0, 0},
			finish:   Coordinate{1, 1},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewField(2).SetBarriers(tt.barriers).Path(tt.start, tt.finish)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldPathTieBreak(t *testing.T) {
	got := NewField(3).Path(Coordinate{0, 0}, Coordinate{2, 2})
	assert.Equal(t, []Coordinate{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}}, got)
}

func TestFieldPathIsShortest(t *testing.T) {
	field := NewField(8)
	start := Coordinate{1, 6}
	finish := Coordinate{7, 0}

	path := field.Path(start, finish)
	require.NotEmpty(t, path)
	assert.Equal(t, start, path[0])
	assert.Equal(t, finish, path[len(path)-1])
	assert.Equal(t, GetManhattanDistance(start, finish), len(path)-1)

	for i := 1; i < len(path); i++ {
		assert.Equal(t, 1, GetManhattanDistance(path[i-1], path[i]))
	}
}

func TestFieldPathDetour(t *testing.T) {
	// A wall on column 2 with a gap at the bottom row.
	field := NewField(5).SetBarriers([]Coordinate{{2, 0}, {2, 1}, {2, 2}, {2, 3}})

	path := field.Path(Coordinate{0, 0}, Coordinate{4, 0})
	require.NotEmpty(t, path)
	assert.Equal(t, 12, len(path)-1)
	for _, c := range path {
		assert.NotEqual(t, BarrierCell, field.Cells()[c.Y][c.X])
	}
}

func TestFieldPathStartOnBarrier(t *testing.T) {
	field := NewField(3).SetBarriers([]Coordinate{{0, 0}, {1, 0}})

	got := field.Path(Coordinate{0, 0}, Coordinate{0, 2})
	assert.Equal(t, []Coordinate{{0, 0}, {0, 1}, {0, 2}}, got)
}

func TestFieldPathSameCell(t *testing.T) {
	got := NewField(3).Path(Coordinate{1, 1}, Coordinate{1, 1})
	assert.Equal(t, []Coordinate{{1, 1}}, got)
}

func TestFieldPathFinishOnBarrier(t *testing.T) {
	field := NewField(3).SetBarriers([]Coordinate{{2, 2}})
	assert.Equal(t, []Coordinate{{2, 2}}, field.Path(Coordinate{0, 0}, Coordinate{2, 2}))

	// The barrier finish is not relabelled, so the cells stay as they were.
	assert.Equal(t, BarrierCell, field.Cells()[2][2])
}

func TestFieldPathOutOfRange(t *testing.T) {
	field := NewField(3)
	assert.Nil(t, field.Path(Coordinate{-1, 0}, Coordinate{2, 2}))
	assert.Nil(t, field.Path(Coordinate{0, 0}, Coordinate{3, 0}))
}

func TestFieldPathLeavesCellsUntouched(t *testing.T) {
	field := NewField(4).SetBarriers([]Coordinate{{1, 1}})
	before := field.Cells()

	field.Path(Coordinate{0, 0}, Coordinate{3, 3})

	assert.Equal(t, before, field.Cells())
}
