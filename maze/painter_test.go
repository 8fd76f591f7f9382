package maze

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corridorGrid returns a 5x5 grid whose only walkable tiles are the given ones
// plus the portals.
func corridorGrid(t *testing.T, entrance, exit Coordinate, open ...Coordinate) *Grid {
	t.Helper()
	g, err := NewGrid(5)
	require.NoError(t, err)

	keep := map[Coordinate]bool{entrance: true, exit: true}
	for _, c := range open {
		keep[c] = true
	}
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			c := Coordinate{X: x, Y: y}
			if !keep[c] {
				g.paint(c, Border)
			}
		}
	}
	g.paint(entrance, Entrance)
	g.paint(exit, Exit)
	return g
}

// preparedGrid places portals and seals the border.
func preparedGrid(t *testing.T, dimension int, rng *rand.Rand) (*Grid, Coordinate, Coordinate) {
	t.Helper()
	g, err := NewGrid(dimension)
	require.NoError(t, err)
	entrance, err := PlaceEntrance(g, rng)
	require.NoError(t, err)
	exit, err := PlaceExit(g, entrance, rng)
	require.NoError(t, err)
	SealBorder(g)
	return g, entrance, exit
}

func TestPaintPathCorridor(t *testing.T) {
	entrance, exit := Coordinate{X: 0, Y: 2}, Coordinate{X: 4, Y: 2}
	want := []Coordinate{entrance, {1, 2}, {2, 2}, {3, 2}, exit}

	for seed := int64(1); seed <= 20; seed++ {
		g := corridorGrid(t, entrance, exit, Coordinate{X: 1, Y: 2}, Coordinate{X: 2, Y: 2}, Coordinate{X: 3, Y: 2})

		path, err := PaintPath(g, entrance, exit, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		assert.Equal(t, want, path)
		assert.Equal(t, 3, g.Count(Path))
		assert.Equal(t, Entrance, g.At(entrance).Kind)
		assert.Equal(t, Exit, g.At(exit).Kind)
	}
}

func TestPaintPathAvoidsDeadEnds(t *testing.T) {
	entrance, exit := Coordinate{X: 0, Y: 1}, Coordinate{X: 4, Y: 1}
	pocket := Coordinate{X: 1, Y: 2}
	open := []Coordinate{{1, 1}, {2, 1}, {3, 1}, pocket}

	t.Run("pocket is never entered", func(t *testing.T) {
		for seed := int64(1); seed <= 50; seed++ {
			g := corridorGrid(t, entrance, exit, open...)
			path, err := PaintPath(g, entrance, exit, rand.New(rand.NewSource(seed)))
			require.NoError(t, err)
			assert.NotContains(t, path, pocket)
			assert.Equal(t, Open, g.At(pocket).Kind)
		}
	})

	t.Run("without filtering the pocket can trap the walk", func(t *testing.T) {
		trapped := 0
		for seed := int64(1); seed <= 50; seed++ {
			g := corridorGrid(t, entrance, exit, open...)
			_, err := PaintPath(g, entrance, exit, rand.New(rand.NewSource(seed)), WithDeadEndAvoidance(false))
			if err != nil {
				require.ErrorIs(t, err, ErrUnreachable)
				trapped++
			}
		}
		assert.Greater(t, trapped, 0)
	})
}

func TestPaintPathUnreachable(t *testing.T) {
	entrance, exit := Coordinate{X: 0, Y: 1}, Coordinate{X: 4, Y: 3}

	for _, backtrack := range []bool{false, true} {
		g := corridorGrid(t, entrance, exit, Coordinate{X: 1, Y: 1}, Coordinate{X: 2, Y: 1})

		path, err := PaintPath(g, entrance, exit, rand.New(rand.NewSource(1)), WithBacktracking(backtrack))
		assert.ErrorIs(t, err, ErrUnreachable, "backtrack=%v", backtrack)
		assert.Nil(t, path)
	}
}

func TestPaintPathBacktracking(t *testing.T) {
	// A two-tile side branch passes the one-step trap check.
	entrance, exit := Coordinate{X: 0, Y: 1}, Coordinate{X: 4, Y: 1}
	branch := []Coordinate{{2, 2}, {2, 3}}
	open := append([]Coordinate{{1, 1}, {2, 1}, {3, 1}}, branch...)
	want := []Coordinate{entrance, {1, 1}, {2, 1}, {3, 1}, exit}

	t.Run("plain walk can dead-end in the branch", func(t *testing.T) {
		stuck := 0
		for seed := int64(1); seed <= 50; seed++ {
			g := corridorGrid(t, entrance, exit, open...)
			if _, err := PaintPath(g, entrance, exit, rand.New(rand.NewSource(seed))); err != nil {
				require.ErrorIs(t, err, ErrUnreachable)
				stuck++
			}
		}
		assert.Greater(t, stuck, 0)
	})

	t.Run("backtracking walk retreats out of the branch", func(t *testing.T) {
		for seed := int64(1); seed <= 50; seed++ {
			g := corridorGrid(t, entrance, exit, open...)
			path, err := PaintPath(g, entrance, exit, rand.New(rand.NewSource(seed)), WithBacktracking(true))
			require.NoError(t, err)
			assert.Equal(t, want, path)
			for _, c := range branch {
				assert.Equal(t, Open, g.At(c).Kind, "retreated tile %s stays Open", c)
			}
		}
	})

	t.Run("ignored without dead-end avoidance", func(t *testing.T) {
		for seed := int64(1); seed <= 50; seed++ {
			g := corridorGrid(t, entrance, exit, open...)
			_, err := PaintPath(g, entrance, exit, rand.New(rand.NewSource(seed)),
				WithDeadEndAvoidance(false), WithBacktracking(true))
			if err != nil {
				assert.True(t, errors.Is(err, ErrUnreachable) || errors.Is(err, ErrLoopDetected))
			}
		}
	})
}

func TestPaintPathArguments(t *testing.T) {
	g, err := NewGrid(4)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))

	_, err = PaintPath(g, Coordinate{X: 0, Y: 1}, Coordinate{X: 0, Y: 1}, rng)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = PaintPath(g, Coordinate{X: 0, Y: 1}, Coordinate{X: 9, Y: 1}, rng)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestPaintPathShape(t *testing.T) {
	for dim := 3; dim <= 12; dim++ {
		for seed := int64(1); seed <= 40; seed++ {
			g, entrance, exit := preparedGrid(t, dim, rand.New(rand.NewSource(seed)))

			path, err := PaintPath(g, entrance, exit, rand.New(rand.NewSource(seed)))
			if err != nil {
				require.ErrorIs(t, err, ErrUnreachable, "dim %d seed %d", dim, seed)
				continue
			}

			assert.Equal(t, entrance, path[0])
			assert.Equal(t, exit, path[len(path)-1])
			assert.Equal(t, len(path)-2, g.Count(Path))
			assertSimplePath(t, g, path)
			if dim == 3 {
				assert.Len(t, path, 3)
			}
		}
	}
}

func TestPaintPathWithoutFilteringTerminates(t *testing.T) {
	var succeeded, looped int
	for seed := int64(1); seed <= 200; seed++ {
		g, entrance, exit := preparedGrid(t, 8, rand.New(rand.NewSource(seed)))

		_, err := PaintPath(g, entrance, exit, rand.New(rand.NewSource(seed)), WithDeadEndAvoidance(false))
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrLoopDetected):
			looped++
		default:
			require.ErrorIs(t, err, ErrUnreachable)
		}
	}
	assert.Greater(t, looped, 0)
	t.Logf("unfiltered walks: %d succeeded, %d looped", succeeded, looped)
}

// assertSimplePath checks that the walk is a chain: consecutive tiles are
// adjacent, endpoints have one walked neighbor and inner tiles have two.
func assertSimplePath(t *testing.T, g *Grid, path []Coordinate) {
	t.Helper()
	onPath := map[Coordinate]bool{}
	for _, c := range path {
		assert.False(t, onPath[c], "tile %s walked twice", c)
		onPath[c] = true
	}

	for i, c := range path {
		if i > 0 {
			assert.Equal(t, 1, Manhattan(path[i-1], c))
		}

		degree := 0
		for _, n := range g.Neighbors4(c) {
			if onPath[n] {
				degree++
			}
		}
		if i == 0 || i == len(path)-1 {
			assert.Equal(t, 1, degree, "endpoint %s", c)
		} else {
			assert.Equal(t, 2, degree, "inner tile %s", c)
			assert.Equal(t, Path, g.At(c).Kind)
		}
	}
}
