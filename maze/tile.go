package maze

import (
	"fmt"
)

// TileKind classifies a single tile of the maze grid.
type TileKind uint8

// Tile kinds. A tile starts as Open and is replaced at most once by one of the
// other kinds; Entrance and Exit are never repainted.
const (
	Open TileKind = iota
	Border
	Entrance
	Exit
	Path
)

var tileKindNames = map[TileKind]string{
	Open:     "open",
	Border:   "border",
	Entrance: "entrance",
	Exit:     "exit",
	Path:     "path",
}

// String returns the lower-case name of the kind.
func (k TileKind) String() string {
	if name, ok := tileKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TileKind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k TileKind) MarshalText() ([]byte, error) {
	if _, ok := tileKindNames[k]; !ok {
		return nil, fmt.Errorf("%w: unknown tile kind %d", ErrInvalidArgument, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *TileKind) UnmarshalText(text []byte) error {
	for kind, name := range tileKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: unknown tile kind %q", ErrInvalidArgument, text)
}

// IsWalkable reports whether a walker may stand on a tile of this kind.
func (k TileKind) IsWalkable() bool {
	switch k {
	case Open, Entrance, Exit, Path:
		return true
	case Border:
		return false
	default:
		panic(fmt.Sprintf("maze: unhandled tile kind %d", uint8(k)))
	}
}

// Coordinate is a grid index. It also serves as the identity of the tile held
// at that index.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns the coordinate as "(x,y)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns c shifted by d.
func (c Coordinate) Add(d Coordinate) Coordinate {
	return Coordinate{X: c.X + d.X, Y: c.Y + d.Y}
}

// Manhattan returns the taxicab distance between a and b.
func Manhattan(a, b Coordinate) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// IsNeighbor reports whether a and b are 4-adjacent.
// Comparing a tile to itself is a caller bug and returns ErrInvalidArgument.
func IsNeighbor(a, b Coordinate) (bool, error) {
	if a == b {
		return false, fmt.Errorf("%w: neighbor check of %s against itself", ErrInvalidArgument, a)
	}
	return Manhattan(a, b) == 1, nil
}

// Tile is one cell of the grid. It carries the maze dimension so that border
// checks can be answered locally.
type Tile struct {
	Kind      TileKind
	Pos       Coordinate
	Dimension int
}

// NewTile creates a tile of the given kind at pos.
func NewTile(kind TileKind, pos Coordinate, dimension int) Tile {
	return Tile{Kind: kind, Pos: pos, Dimension: dimension}
}

// OnBorder reports whether the tile lies on the outer ring of its grid.
func (t Tile) OnBorder() bool {
	last := t.Dimension - 1
	return t.Pos.X == 0 || t.Pos.Y == 0 || t.Pos.X == last || t.Pos.Y == last
}

// With returns a copy of t of a different kind at the same position.
func (t Tile) With(kind TileKind) Tile {
	t.Kind = kind
	return t
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
