/*
Package maze generates square grid mazes.

A maze is built in three fixed stages over a shared Grid: an Entrance and an Exit
are placed on the border (never 4-adjacent to each other), the remaining border
is sealed with Border tiles, and a self-avoiding random walk paints a Path from
the Entrance to the Exit. Optional post-processing Stages may then run over the
finished skeleton.

All randomness comes from the *rand.Rand passed to Generate, so a fixed seed
reproduces the same layout.
*/
package maze

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// Stage is a post-processing step run after the solution path is painted and
// before the maze is returned. Stages may only reclassify Open tiles: Grid.Replace
// panics on any other transition, and Generate rejects a maze whose stages added
// a second Entrance or Exit.
type Stage interface {
	Apply(g *Grid, entrance, exit Coordinate, rng *rand.Rand) error
}

// StageFunc adapts a function to the Stage interface.
type StageFunc func(g *Grid, entrance, exit Coordinate, rng *rand.Rand) error

// Apply calls f.
func (f StageFunc) Apply(g *Grid, entrance, exit Coordinate, rng *rand.Rand) error {
	return f(g, entrance, exit, rng)
}

// Maze is a generated maze. It is read-only once Generate returns.
type Maze struct {
	grid     *Grid        // Exclusively owned tile grid
	entrance Coordinate   // Position of the Entrance tile
	exit     Coordinate   // Position of the Exit tile
	path     []Coordinate // Solution walk from entrance to exit
}

// Options tunes GenerateWithOptions.
type Options struct {
	Backtrack bool    // Let the path walk retreat from dead ends
	Stages    []Stage // Post-processing, run in order
}

// Generate builds a maze of the given dimension with the plain walk. Errors
// from any stage are returned as is and no partial maze is produced;
// ErrUnreachable is the one the caller is expected to retry.
func Generate(dimension int, rng *rand.Rand, stages ...Stage) (*Maze, error) {
	return GenerateWithOptions(dimension, rng, Options{Stages: stages})
}

// GenerateWithOptions is Generate with a configurable walk. With Backtrack set
// the walk only fails when a portal has no interior neighbor.
func GenerateWithOptions(dimension int, rng *rand.Rand, opts Options) (*Maze, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidArgument)
	}

	grid, err := NewGrid(dimension)
	if err != nil {
		return nil, err
	}

	entrance, err := PlaceEntrance(grid, rng)
	if err != nil {
		return nil, err
	}

	exit, err := PlaceExit(grid, entrance, rng)
	if err != nil {
		return nil, err
	}

	SealBorder(grid)

	path, err := PaintPath(grid, entrance, exit, rng, WithBacktracking(opts.Backtrack))
	if err != nil {
		return nil, err
	}

	for i, stage := range opts.Stages {
		if err := stage.Apply(grid, entrance, exit, rng); err != nil {
			return nil, fmt.Errorf("post-processing stage %d: %w", i, err)
		}
		if n, m := grid.Count(Entrance), grid.Count(Exit); n != 1 || m != 1 {
			return nil, fmt.Errorf("post-processing stage %d left %d entrances and %d exits: %w", i, n, m, ErrBrokenLayout)
		}
	}

	return &Maze{
		grid:     grid,
		entrance: entrance,
		exit:     exit,
		path:     path,
	}, nil
}

// Dimension returns the number of tiles per side.
func (m *Maze) Dimension() int {
	return m.grid.Dimension()
}

// TileAt returns the tile at (x, y).
func (m *Maze) TileAt(x, y int) (Tile, error) {
	return m.grid.Get(x, y)
}

// Entrance returns the Entrance position.
func (m *Maze) Entrance() Coordinate {
	return m.entrance
}

// Exit returns the Exit position.
func (m *Maze) Exit() Coordinate {
	return m.exit
}

// Path returns a copy of the solution walk, entrance first and exit last.
func (m *Maze) Path() []Coordinate {
	return append([]Coordinate(nil), m.path...)
}

// Tiles returns a copy of the tile kinds indexed [x][y].
func (m *Maze) Tiles() [][]TileKind {
	return m.grid.Kinds()
}

// Grid returns a deep copy of the underlying grid.
func (m *Maze) Grid() *Grid {
	return m.grid.clone()
}

// IsReachable reports whether to can be reached from from by 4-connected steps
// over non-Border tiles.
func IsReachable(g *Grid, from, to Coordinate) (bool, error) {
	if !g.InBound(from) || !g.InBound(to) {
		return false, fmt.Errorf("reachability %s -> %s: %w", from, to, ErrOutOfBounds)
	}
	if !g.At(from).Kind.IsWalkable() || !g.At(to).Kind.IsWalkable() {
		return false, nil
	}

	seen := mapset.Of(from)
	queue := []Coordinate{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return true, nil
		}
		for _, n := range g.Neighbors4(cur) {
			if seen.Has(n) || !g.At(n).Kind.IsWalkable() {
				continue
			}
			seen.Put(n)
			queue = append(queue, n)
		}
	}
	return false, nil
}
