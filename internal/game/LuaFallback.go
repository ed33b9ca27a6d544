package game

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

const luaFallbackFunction = "nextCoordinate"

var ErrLuaFallback = errors.New("lua fallback")

// LuaFallback runs a user script defining
//
//	function nextCoordinate(head, meal, cells) return {X=.., Y=..} end
//
// head and meal are {X, Y} tables and cells is a 1-indexed table of rows.
// A script failure or an illegal answer defers to SurvivalFallback.
type LuaFallback struct {
	Name       string
	Definition string
	logger     *log.Logger
	survival   SurvivalFallback
}

func NewLuaFallback(name, definition string, logger *log.Logger) (*LuaFallback, error) {
	if logger == nil {
		logger = log.Default()
	}

	luaState := lua.NewState()
	defer luaState.Close()
	if err := luaState.DoString(definition); err != nil {
		return nil, fmt.Errorf("%w: could not parse %s: %v", ErrLuaFallback, name, err)
	}
	if luaState.GetGlobal(luaFallbackFunction).Type() != lua.LTFunction {
		return nil, fmt.Errorf("%w: %s does not define %s", ErrLuaFallback, name, luaFallbackFunction)
	}

	return &LuaFallback{Name: name, Definition: definition, logger: logger}, nil
}

func LoadLuaFallback(path string, logger *log.Logger) (*LuaFallback, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lua fallback %s: %w", path, err)
	}
	return NewLuaFallback(path, string(data), logger)
}

func (l *LuaFallback) NextCoordinate(field *Field, snake []Coordinate, meal Coordinate) (Coordinate, bool) {
	if len(snake) == 0 {
		return Coordinate{}, false
	}

	next, err := l.callScript(field, snake[0], meal)
	if err != nil {
		l.getLogger().Warn("Lua fallback failed, using survival move", "script", l.Name, "error", err)
		return l.survival.NextCoordinate(field, snake, meal)
	}

	if !l.isLegalMove(field, snake, next) {
		l.getLogger().Warn("Lua fallback returned an illegal move", "script", l.Name, "head", snake[0], "next", next)
		return l.survival.NextCoordinate(field, snake, meal)
	}

	return next, true
}

func (l *LuaFallback) getLogger() *log.Logger {
	if l.logger == nil {
		return log.Default()
	}
	return l.logger
}

func (l *LuaFallback) isLegalMove(field *Field, snake []Coordinate, next Coordinate) bool {
	if len(snake) > 1 && next == snake[1] {
		return false
	}
	if !field.IsFree(next) {
		return false
	}
	return GetManhattanDistance(snake[0], next) == 1
}

func (l *LuaFallback) callScript(field *Field, head, meal Coordinate) (Coordinate, error) {
	luaState := lua.NewState()
	defer luaState.Close()
	if err := luaState.DoString(l.Definition); err != nil {
		return Coordinate{}, fmt.Errorf("could not parse lua definition: %w", err)
	}

	err := luaState.CallByParam(lua.P{
		Fn:      luaState.GetGlobal(luaFallbackFunction),
		NRet:    1,
		Protect: true,
	}, coordinateToLuaTable(luaState, head), coordinateToLuaTable(luaState, meal), cellsToLuaTable(luaState, field.Cells()))
	if err != nil {
		return Coordinate{}, fmt.Errorf("could not execute lua definition: %w", err)
	}

	luaReturn := luaState.Get(-1)
	luaState.Pop(1)
	luaTable, ok := luaReturn.(*lua.LTable)
	if !ok {
		return Coordinate{}, fmt.Errorf("lua return value was type %s, expected table", luaReturn.Type().String())
	}

	return convertLuaCoordinateTable(luaTable), nil
}

func coordinateToLuaTable(luaState *lua.LState, c Coordinate) *lua.LTable {
	table := luaState.NewTable()
	table.RawSetString("X", lua.LNumber(c.X))
	table.RawSetString("Y", lua.LNumber(c.Y))
	return table
}

func cellsToLuaTable(luaState *lua.LState, cells [][]int) *lua.LTable {
	rows := luaState.NewTable()
	for y, row := range cells {
		luaRow := luaState.NewTable()
		for x, value := range row {
			luaRow.RawSetInt(x+1, lua.LNumber(value))
		}
		rows.RawSetInt(y+1, luaRow)
	}
	return rows
}

func convertLuaCoordinateTable(luaTbl *lua.LTable) Coordinate {
	result := Coordinate{X: -1, Y: -1}
	luaTbl.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString {
			return
		}

		switch lua.LVAsString(key) {
		case "X":
			result.X = int(lua.LVAsNumber(value))
		case "Y":
			result.Y = int(lua.LVAsNumber(value))
		}
	})
	return result
}
