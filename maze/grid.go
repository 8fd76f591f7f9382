package maze

import (
	"fmt"
)

const (
	MinDimension = 3 // Smallest grid with a border and an interior.
)

// Directions lists the 4-connected offsets in the fixed order North, South, East, West.
// The order is part of the determinism contract of seeded generation.
var Directions = []Coordinate{
	{X: 0, Y: -1}, // North
	{X: 0, Y: 1},  // South
	{X: 1, Y: 0},  // East
	{X: -1, Y: 0}, // West
}

// Grid is a square dimension x dimension array of tiles indexed [x][y].
// It is allocated once as all-Open and then mutated tile by tile.
type Grid struct {
	dimension int      // Number of tiles per side
	tiles     [][]Tile // Tiles indexed [x][y]
}

// NewGrid allocates a grid of Open tiles.
func NewGrid(dimension int) (*Grid, error) {
	if dimension < MinDimension {
		return nil, fmt.Errorf("%w: %d is smaller than %d", ErrInvalidDimension, dimension, MinDimension)
	}

	tiles := make([][]Tile, dimension)
	for x := range tiles {
		tiles[x] = make([]Tile, dimension)
		for y := range tiles[x] {
			tiles[x][y] = NewTile(Open, Coordinate{X: x, Y: y}, dimension)
		}
	}

	return &Grid{
		dimension: dimension,
		tiles:     tiles,
	}, nil
}

// Dimension returns the number of tiles per side.
func (g *Grid) Dimension() int {
	return g.dimension
}

// InBound reports whether c is a valid index of the grid.
func (g *Grid) InBound(c Coordinate) bool {
	return c.X >= 0 && c.X < g.dimension && c.Y >= 0 && c.Y < g.dimension
}

// Get returns the tile at (x, y).
func (g *Grid) Get(x, y int) (Tile, error) {
	c := Coordinate{X: x, Y: y}
	if !g.InBound(c) {
		return Tile{}, fmt.Errorf("%w: %s on a %dx%d grid", ErrOutOfBounds, c, g.dimension, g.dimension)
	}
	return g.tiles[x][y], nil
}

// At returns the tile at c and panics if c is out of bounds.
// Use it only with coordinates produced by the grid itself.
func (g *Grid) At(c Coordinate) Tile {
	if !g.InBound(c) {
		panic(fmt.Sprintf("maze: %s out of bounds on a %dx%d grid", c, g.dimension, g.dimension))
	}
	return g.tiles[c.X][c.Y]
}

// Replace overwrites the tile at (x, y). The tile must carry the same
// coordinate, and only Open tiles may change kind. Either violation is a
// programmer error and panics.
func (g *Grid) Replace(x, y int, tile Tile) {
	c := Coordinate{X: x, Y: y}
	if !g.InBound(c) {
		panic(fmt.Sprintf("maze: replace at %s out of bounds", c))
	}
	if tile.Pos != c {
		panic(fmt.Sprintf("maze: tile at %s placed into slot %s", tile.Pos, c))
	}
	if old := g.tiles[x][y].Kind; old != Open && old != tile.Kind {
		panic(fmt.Sprintf("maze: %s tile at %s cannot become %s", old, c, tile.Kind))
	}
	g.tiles[x][y] = tile
}

// paint replaces the tile at c with a tile of the given kind.
func (g *Grid) paint(c Coordinate, kind TileKind) {
	g.Replace(c.X, c.Y, g.At(c).With(kind))
}

// Neighbors4 returns the in-bound 4-adjacent coordinates of c in Directions order.
func (g *Grid) Neighbors4(c Coordinate) []Coordinate {
	result := make([]Coordinate, 0, len(Directions))
	for _, delta := range Directions {
		neighbor := c.Add(delta)
		if g.InBound(neighbor) {
			result = append(result, neighbor)
		}
	}
	return result
}

// IsBorder reports whether c lies on the outer ring of the grid.
func (g *Grid) IsBorder(c Coordinate) bool {
	last := g.dimension - 1
	return c.X == 0 || c.Y == 0 || c.X == last || c.Y == last
}

// BorderCoordinates returns every border coordinate in row-major [x][y] order.
func (g *Grid) BorderCoordinates() []Coordinate {
	var result []Coordinate
	for x := 0; x < g.dimension; x++ {
		for y := 0; y < g.dimension; y++ {
			c := Coordinate{X: x, Y: y}
			if g.IsBorder(c) {
				result = append(result, c)
			}
		}
	}
	return result
}

// Count returns the number of tiles of the given kind.
func (g *Grid) Count(kind TileKind) int {
	n := 0
	for x := range g.tiles {
		for y := range g.tiles[x] {
			if g.tiles[x][y].Kind == kind {
				n++
			}
		}
	}
	return n
}

// Kinds returns a copy of the grid as a kind matrix indexed [x][y].
func (g *Grid) Kinds() [][]TileKind {
	kinds := make([][]TileKind, g.dimension)
	for x := range g.tiles {
		kinds[x] = make([]TileKind, g.dimension)
		for y := range g.tiles[x] {
			kinds[x][y] = g.tiles[x][y].Kind
		}
	}
	return kinds
}

// clone returns a deep copy of the grid.
func (g *Grid) clone() *Grid {
	tiles := make([][]Tile, g.dimension)
	for x := range g.tiles {
		tiles[x] = append([]Tile(nil), g.tiles[x]...)
	}
	return &Grid{dimension: g.dimension, tiles: tiles}
}
