package maze

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// WalkState is the state of a path walk. Succeeded, Unreachable and Looped are terminal.
type WalkState uint8

const (
	Walking WalkState = iota
	Succeeded
	Unreachable
	Looped
)

func (s WalkState) String() string {
	switch s {
	case Walking:
		return "walking"
	case Succeeded:
		return "succeeded"
	case Unreachable:
		return "unreachable"
	case Looped:
		return "looped"
	default:
		return fmt.Sprintf("WalkState(%d)", uint8(s))
	}
}

type paintConfig struct {
	avoidDeadEnds bool
	backtrack     bool
}

// PaintOption configures PaintPath.
type PaintOption func(*paintConfig)

// WithDeadEndAvoidance toggles selection-time filtering. With filtering off the
// walk may step onto any non-Border neighbor except the one it just left, and
// revisiting a tile ends the walk with ErrLoopDetected.
func WithDeadEndAvoidance(enabled bool) PaintOption {
	return func(c *paintConfig) {
		c.avoidDeadEnds = enabled
	}
}

// WithBacktracking lets a dead-ended walk retreat along its own path and try
// another branch instead of failing. A tile the walk retreats from is never
// entered again, so the walk still visits each tile at most once. It only
// applies with dead-end avoidance on.
func WithBacktracking(enabled bool) PaintOption {
	return func(c *paintConfig) {
		c.backtrack = enabled
	}
}

// walker holds the state of a single self-avoiding random walk.
type walker struct {
	grid          *Grid
	end           Coordinate
	rng           *rand.Rand
	avoidDeadEnds bool
	backtrack     bool

	current     Coordinate
	previous    Coordinate
	hasPrevious bool
	visited     mapset.Set[Coordinate] // Tiles on the current path
	dead        mapset.Set[Coordinate] // Tiles retreated from
	path        []Coordinate
	state       WalkState
}

// PaintPath walks from start to end over Open tiles, painting every Open tile
// of the walk as Path, and returns the walk in order (start and end included).
//
// By default the walk never backtracks. A candidate tile is rejected when it
// touches the walk anywhere other than the current tile, and, with dead-end
// avoidance on, when it has no way forward. The end tile is taken as soon as
// it is adjacent. Tiles are painted once the walk ends; on failure the grid
// keeps the tiles walked so far painted.
func PaintPath(g *Grid, start, end Coordinate, rng *rand.Rand, opts ...PaintOption) ([]Coordinate, error) {
	if !g.InBound(start) || !g.InBound(end) {
		return nil, fmt.Errorf("painting path %s -> %s: %w", start, end, ErrOutOfBounds)
	}
	if start == end {
		return nil, fmt.Errorf("painting path: start and end are both %s: %w", start, ErrInvalidArgument)
	}

	cfg := paintConfig{avoidDeadEnds: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	w := &walker{
		grid:          g,
		end:           end,
		rng:           rng,
		avoidDeadEnds: cfg.avoidDeadEnds,
		backtrack:     cfg.avoidDeadEnds && cfg.backtrack,
		current:       start,
		visited:       mapset.New[Coordinate](),
		dead:          mapset.New[Coordinate](),
		path:          []Coordinate{start},
		state:         Walking,
	}
	w.visited.Put(start)

	for w.state == Walking {
		w.step()
	}

	for _, c := range w.path {
		if g.At(c).Kind == Open {
			g.paint(c, Path)
		}
	}

	switch w.state {
	case Succeeded:
		return w.path, nil
	case Unreachable:
		return nil, fmt.Errorf("walk stopped at %s after %d tiles: %w", w.current, len(w.path), ErrUnreachable)
	case Looped:
		return nil, fmt.Errorf("walk returned to a visited tile from %s: %w", w.current, ErrLoopDetected)
	default:
		panic(fmt.Sprintf("maze: walk ended in state %s", w.state))
	}
}

// step advances the walk by one tile, or retreats by one when backtracking.
func (w *walker) step() {
	if w.current == w.end {
		w.state = Succeeded
		return
	}

	candidates := w.candidates()
	if len(candidates) == 0 {
		if w.backtrack && len(w.path) > 1 {
			w.retreat()
			return
		}
		w.state = Unreachable
		return
	}

	next := candidates[w.rng.Intn(len(candidates))]
	if w.visited.Has(next) {
		w.state = Looped
		return
	}

	w.previous, w.hasPrevious = w.current, true
	w.current = next
	w.visited.Put(next)
	w.path = append(w.path, next)
}

// retreat drops the current tile from the path and marks it dead.
func (w *walker) retreat() {
	w.visited.Remove(w.current)
	w.dead.Put(w.current)
	w.path = w.path[:len(w.path)-1]

	n := len(w.path)
	w.current = w.path[n-1]
	w.hasPrevious = n > 1
	if w.hasPrevious {
		w.previous = w.path[n-2]
	}
}

// candidates returns the tiles the walk may move to from the current tile.
func (w *walker) candidates() []Coordinate {
	var result []Coordinate
	for _, n := range w.grid.Neighbors4(w.current) {
		if w.hasPrevious && n == w.previous {
			continue
		}
		if n == w.end {
			return []Coordinate{n}
		}

		kind := w.grid.At(n).Kind
		if !w.avoidDeadEnds {
			if kind.IsWalkable() {
				result = append(result, n)
			}
			continue
		}

		if kind != Open || w.visited.Has(n) || w.dead.Has(n) {
			continue
		}
		if w.touchesWalk(n) || w.isTrap(n) {
			continue
		}
		result = append(result, n)
	}
	return result
}

// touchesWalk reports whether c is adjacent to a visited tile other than the current one.
func (w *walker) touchesWalk(c Coordinate) bool {
	for _, n := range w.grid.Neighbors4(c) {
		if n != w.current && w.visited.Has(n) {
			return true
		}
	}
	return false
}

// isTrap reports whether c has at most one walkable neighbor, counting the
// current tile and ignoring Border, visited and dead tiles.
func (w *walker) isTrap(c Coordinate) bool {
	walkable := 0
	for _, n := range w.grid.Neighbors4(c) {
		if n == w.current {
			walkable++
			continue
		}
		if w.grid.At(n).Kind == Border || w.visited.Has(n) || w.dead.Has(n) {
			continue
		}
		walkable++
	}
	return walkable <= 1
}
