package maze

import (
	"fmt"
	"math/rand"
)

// openBorder returns the Open border coordinates of g, skipping any coordinate
// 4-adjacent to one of exclude.
func openBorder(g *Grid, exclude ...Coordinate) []Coordinate {
	var result []Coordinate
	for _, c := range g.BorderCoordinates() {
		if g.At(c).Kind != Open {
			continue
		}
		if adjacentToAny(c, exclude) {
			continue
		}
		result = append(result, c)
	}
	return result
}

// adjacentToAny reports whether c is 4-adjacent to any of others.
// A coordinate equal to c is not adjacent.
func adjacentToAny(c Coordinate, others []Coordinate) bool {
	for _, o := range others {
		if o == c {
			continue
		}
		if ok, _ := IsNeighbor(c, o); ok {
			return true
		}
	}
	return false
}

// PlaceEntrance turns a uniformly chosen Open border tile into the Entrance.
func PlaceEntrance(g *Grid, rng *rand.Rand) (Coordinate, error) {
	candidates := openBorder(g)
	if len(candidates) == 0 {
		return Coordinate{}, fmt.Errorf("placing entrance: %w", ErrNoAvailableTile)
	}

	chosen := candidates[rng.Intn(len(candidates))]
	g.paint(chosen, Entrance)
	return chosen, nil
}

// PlaceExit turns a uniformly chosen Open border tile into the Exit. Tiles
// 4-adjacent to entrance are never eligible; if that leaves no candidate the
// call fails with ErrNoAvailableTile rather than relaxing the rule.
func PlaceExit(g *Grid, entrance Coordinate, rng *rand.Rand) (Coordinate, error) {
	candidates := openBorder(g, entrance)
	if len(candidates) == 0 {
		return Coordinate{}, fmt.Errorf("placing exit away from entrance %s: %w", entrance, ErrNoAvailableTile)
	}

	chosen := candidates[rng.Intn(len(candidates))]
	g.paint(chosen, Exit)
	return chosen, nil
}

// SealBorder turns every remaining Open border tile into a Border tile.
// It must run after both portals are placed.
func SealBorder(g *Grid) {
	for _, c := range openBorder(g) {
		g.paint(c, Border)
	}
}
