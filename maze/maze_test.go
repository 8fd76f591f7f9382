package maze

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstMaze returns the first successful maze for seeds starting at seed.
func firstMaze(t *testing.T, dimension int, seed int64, stages ...Stage) (*Maze, int64) {
	t.Helper()
	for s := seed; s < seed+500; s++ {
		m, err := Generate(dimension, rand.New(rand.NewSource(s)), stages...)
		if err == nil {
			return m, s
		}
		require.ErrorIs(t, err, ErrUnreachable)
	}
	t.Fatalf("no maze of dimension %d generated from seed %d", dimension, seed)
	return nil, 0
}

func TestGenerate(t *testing.T) {
	t.Run("invalid dimension", func(t *testing.T) {
		m, err := Generate(2, rand.New(rand.NewSource(1)))
		assert.ErrorIs(t, err, ErrInvalidDimension)
		assert.Nil(t, m)
	})

	t.Run("nil random source", func(t *testing.T) {
		_, err := Generate(5, nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("border holds only portals and border tiles", func(t *testing.T) {
		for dim := 3; dim <= 15; dim++ {
			for seed := int64(1); seed <= 30; seed++ {
				m, err := Generate(dim, rand.New(rand.NewSource(seed)))
				if err != nil {
					require.ErrorIs(t, err, ErrUnreachable)
					continue
				}

				g := m.Grid()
				for _, c := range g.BorderCoordinates() {
					tile, err := m.TileAt(c.X, c.Y)
					require.NoError(t, err)
					assert.Contains(t, []TileKind{Entrance, Exit, Border}, tile.Kind)
				}
				assert.Equal(t, 1, g.Count(Entrance))
				assert.Equal(t, 1, g.Count(Exit))

				adjacent, err := IsNeighbor(m.Entrance(), m.Exit())
				require.NoError(t, err)
				assert.False(t, adjacent)

				reachable, err := IsReachable(g, m.Entrance(), m.Exit())
				require.NoError(t, err)
				assert.True(t, reachable)
				assertSimplePath(t, g, m.Path())
			}
		}
	})

	t.Run("dimension 3 never loops", func(t *testing.T) {
		for seed := int64(1); seed <= 100; seed++ {
			m, err := Generate(3, rand.New(rand.NewSource(seed)))
			if err != nil {
				assert.ErrorIs(t, err, ErrUnreachable)
				assert.False(t, errors.Is(err, ErrLoopDetected))
				continue
			}
			assert.Len(t, m.Path(), 3)
		}
	})
}

func TestGenerateIsDeterministic(t *testing.T) {
	first, seed := firstMaze(t, 5, 20250208)

	second, err := Generate(5, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	assert.Equal(t, first.Tiles(), second.Tiles())
	assert.Equal(t, first.Entrance(), second.Entrance())
	assert.Equal(t, first.Exit(), second.Exit())
	assert.Equal(t, first.Path(), second.Path())

	third, err := GenerateWithOptions(5, rand.New(rand.NewSource(seed)), Options{Backtrack: true})
	require.NoError(t, err)
	assert.Equal(t, first.Tiles(), third.Tiles(), "a walk that never dead-ends consumes the same randomness")
}

// isCorner reports whether c is a corner of a dimension x dimension grid.
func isCorner(c Coordinate, dimension int) bool {
	last := dimension - 1
	return (c.X == 0 || c.X == last) && (c.Y == 0 || c.Y == last)
}

func TestGenerateWithBacktracking(t *testing.T) {
	for _, dim := range []int{3, 5, 8, 12, 20, 50} {
		succeeded := 0
		for seed := int64(1); seed <= 60; seed++ {
			m, err := GenerateWithOptions(dim, rand.New(rand.NewSource(seed)), Options{Backtrack: true})
			if err != nil {
				require.ErrorIs(t, err, ErrUnreachable)

				// Replay portal placement: a corner portal has no interior neighbor.
				_, entrance, exit := preparedGrid(t, dim, rand.New(rand.NewSource(seed)))
				assert.True(t, isCorner(entrance, dim) || isCorner(exit, dim),
					"dim %d seed %d failed with portals %s and %s", dim, seed, entrance, exit)
				continue
			}

			succeeded++
			g := m.Grid()
			reachable, err := IsReachable(g, m.Entrance(), m.Exit())
			require.NoError(t, err)
			assert.True(t, reachable)
			assert.Equal(t, len(m.Path())-2, g.Count(Path))
			assertSimplePath(t, g, m.Path())
		}
		if dim >= 20 {
			assert.GreaterOrEqual(t, succeeded, 40, "dim %d", dim)
		}
	}
}

func TestGenerateStages(t *testing.T) {
	t.Run("stages run in order over the painted maze", func(t *testing.T) {
		var calls []int
		record := func(id int) Stage {
			return StageFunc(func(g *Grid, entrance, exit Coordinate, rng *rand.Rand) error {
				assert.Equal(t, Entrance, g.At(entrance).Kind)
				assert.Equal(t, Exit, g.At(exit).Kind)
				assert.Greater(t, g.Count(Path), 0)
				calls = append(calls, id)
				return nil
			})
		}

		firstMaze(t, 7, 1, record(1), record(2))
		assert.Equal(t, []int{1, 2}, calls)
	})

	t.Run("a failing stage aborts generation", func(t *testing.T) {
		errStage := errors.New("stage failed")
		_, seed := firstMaze(t, 7, 1)

		m, err := Generate(7, rand.New(rand.NewSource(seed)), StageFunc(func(*Grid, Coordinate, Coordinate, *rand.Rand) error {
			return errStage
		}))
		assert.ErrorIs(t, err, errStage)
		assert.Nil(t, m)
	})

	t.Run("a stage may wall off Open tiles", func(t *testing.T) {
		_, seed := firstMaze(t, 7, 1)
		walled := 0

		m, err := Generate(7, rand.New(rand.NewSource(seed)), StageFunc(func(g *Grid, _, _ Coordinate, _ *rand.Rand) error {
			for x := 1; x < 6; x++ {
				for y := 1; y < 6; y++ {
					if c := (Coordinate{X: x, Y: y}); g.At(c).Kind == Open {
						g.paint(c, Border)
						walled++
					}
				}
			}
			return nil
		}))
		require.NoError(t, err)
		assert.Equal(t, 0, m.Grid().Count(Open))
		assert.Greater(t, walled, 0)
	})

	t.Run("a stage cannot reclassify a portal", func(t *testing.T) {
		_, seed := firstMaze(t, 7, 1)

		assert.Panics(t, func() {
			_, _ = Generate(7, rand.New(rand.NewSource(seed)), StageFunc(func(g *Grid, entrance, _ Coordinate, _ *rand.Rand) error {
				g.Replace(entrance.X, entrance.Y, g.At(entrance).With(Border))
				return nil
			}))
		})
	})

	t.Run("a stage cannot undo the path", func(t *testing.T) {
		m, seed := firstMaze(t, 7, 1)
		inner := m.Path()[1]

		assert.Panics(t, func() {
			_, _ = Generate(7, rand.New(rand.NewSource(seed)), StageFunc(func(g *Grid, _, _ Coordinate, _ *rand.Rand) error {
				g.Replace(inner.X, inner.Y, g.At(inner).With(Open))
				return nil
			}))
		})
	})

	t.Run("a stage adding a second exit is rejected", func(t *testing.T) {
		_, seed := firstMaze(t, 7, 1)

		m, err := Generate(7, rand.New(rand.NewSource(seed)), StageFunc(func(g *Grid, _, _ Coordinate, _ *rand.Rand) error {
			for x := 1; x < 6; x++ {
				for y := 1; y < 6; y++ {
					if c := (Coordinate{X: x, Y: y}); g.At(c).Kind == Open {
						g.paint(c, Exit)
						return nil
					}
				}
			}
			return errors.New("no Open tile left")
		}))
		assert.ErrorIs(t, err, ErrBrokenLayout)
		assert.Nil(t, m)
	})
}

func TestMazeAccessorsReturnCopies(t *testing.T) {
	m, _ := firstMaze(t, 6, 1)

	tiles := m.Tiles()
	tiles[0][0] = Path
	tile, err := m.TileAt(0, 0)
	require.NoError(t, err)
	assert.NotEqual(t, Path, tile.Kind)

	path := m.Path()
	path[0] = Coordinate{X: -1, Y: -1}
	assert.Equal(t, m.Entrance(), m.Path()[0])

	_, err = m.TileAt(6, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestIsReachable(t *testing.T) {
	g, err := NewGrid(4)
	require.NoError(t, err)
	for y := 0; y < 4; y++ {
		g.paint(Coordinate{X: 2, Y: y}, Border)
	}

	ok, err := IsReachable(g, Coordinate{X: 0, Y: 0}, Coordinate{X: 1, Y: 3})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsReachable(g, Coordinate{X: 0, Y: 0}, Coordinate{X: 3, Y: 3})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsReachable(g, Coordinate{X: 0, Y: 0}, Coordinate{X: 2, Y: 0})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = IsReachable(g, Coordinate{X: 0, Y: 0}, Coordinate{X: 4, Y: 0})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}
