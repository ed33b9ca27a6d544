package game

// Direction is the compass heading between two adjacent cells.
type Direction int

const (
	DirectionInPlace Direction = iota
	DirectionTop
	DirectionRight
	DirectionBottom
	DirectionLeft
)

// compassDirections is the neighbour enumeration order used by path search.
var compassDirections = [...]Direction{DirectionTop, DirectionRight, DirectionBottom, DirectionLeft}

func (d Direction) String() string {
	switch d {
	case DirectionTop:
		return "TOP"
	case DirectionRight:
		return "RIGHT"
	case DirectionBottom:
		return "BOTTOM"
	case DirectionLeft:
		return "LEFT"
	}
	return "IN_PLACE"
}

func (d Direction) Delta() Coordinate {
	switch d {
	case DirectionTop:
		return Coordinate{X: 0, Y: -1}
	case DirectionRight:
		return Coordinate{X: 1, Y: 0}
	case DirectionBottom:
		return Coordinate{X: 0, Y: 1}
	case DirectionLeft:
		return Coordinate{X: -1, Y: 0}
	}
	return Coordinate{}
}

func (d Direction) Clockwise() Direction {
	switch d {
	case DirectionTop:
		return DirectionRight
	case DirectionRight:
		return DirectionBottom
	case DirectionBottom:
		return DirectionLeft
	case DirectionLeft:
		return DirectionTop
	}
	return DirectionInPlace
}

func (d Direction) CounterClockwise() Direction {
	switch d {
	case DirectionTop:
		return DirectionLeft
	case DirectionLeft:
		return DirectionBottom
	case DirectionBottom:
		return DirectionRight
	case DirectionRight:
		return DirectionTop
	}
	return DirectionInPlace
}

func (d Direction) Opposite() Direction {
	return d.Clockwise().Clockwise()
}

// Command is the relative turn a snake makes to change heading.
type Command int

const (
	CommandInPlace Command = iota
	CommandTurnRight
	CommandForward
	CommandTurnLeft
)

func (c Command) String() string {
	switch c {
	case CommandTurnRight:
		return "TURN_RIGHT"
	case CommandForward:
		return "FORWARD"
	case CommandTurnLeft:
		return "TURN_LEFT"
	}
	return "IN_PLACE"
}

// DirectionBetween checks top, right, bottom and left in that order.
func DirectionBetween(curr, next Coordinate) Direction {
	switch {
	case next.Y < curr.Y:
		return DirectionTop
	case next.X > curr.X:
		return DirectionRight
	case next.Y > curr.Y:
		return DirectionBottom
	case next.X < curr.X:
		return DirectionLeft
	}
	return DirectionInPlace
}

type headingChange struct {
	from, to Direction
}

// Reversals have no entry and translate to CommandInPlace.
var headingCommands = map[headingChange]Command{
	{DirectionTop, DirectionTop}:       CommandForward,
	{DirectionTop, DirectionRight}:     CommandTurnRight,
	{DirectionTop, DirectionLeft}:      CommandTurnLeft,
	{DirectionRight, DirectionTop}:     CommandTurnLeft,
	{DirectionRight, DirectionRight}:   CommandForward,
	{DirectionRight, DirectionBottom}:  CommandTurnRight,
	{DirectionBottom, DirectionRight}:  CommandTurnLeft,
	{DirectionBottom, DirectionBottom}: CommandForward,
	{DirectionBottom, DirectionLeft}:   CommandTurnRight,
	{DirectionLeft, DirectionTop}:      CommandTurnRight,
	{DirectionLeft, DirectionBottom}:   CommandTurnLeft,
	{DirectionLeft, DirectionLeft}:     CommandForward,
}

// CommandFor returns the turn needed to keep moving from prev->curr into curr->next.
func CommandFor(prev, curr, next Coordinate) Command {
	change := headingChange{from: DirectionBetween(prev, curr), to: DirectionBetween(curr, next)}
	if command, ok := headingCommands[change]; ok {
		return command
	}
	return CommandInPlace
}

// ParseCommand is the inverse of Command.String. Unknown names map to CommandInPlace.
func ParseCommand(name string) Command {
	switch name {
	case "TURN_RIGHT":
		return CommandTurnRight
	case "FORWARD":
		return CommandForward
	case "TURN_LEFT":
		return CommandTurnLeft
	}
	return CommandInPlace
}
