// Package mazeapi exposes maze generation over HTTP.
package mazeapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/google/uuid"
)

// GenerateRequest represents a request to generate a new maze.
type GenerateRequest struct {
	Dimension int    `json:"dimension" binding:"required"`
	Seed      *int64 `json:"seed"` // Optional; omitted picks a random seed
}

// MazeResponse represents a generated maze. Tiles are indexed [x][y].
type MazeResponse struct {
	ID        uuid.UUID         `json:"id"`
	Dimension int               `json:"dimension"`
	Seed      int64             `json:"seed"`
	Attempts  int               `json:"attempts"`
	Entrance  maze.Coordinate   `json:"entrance"`
	Exit      maze.Coordinate   `json:"exit"`
	Path      []maze.Coordinate `json:"path"`
	Tiles     [][]maze.TileKind `json:"tiles"`
	CreatedAt time.Time         `json:"created_at"`
}

func responseFromRecord(r *dmn.MazeRecord) *MazeResponse {
	return &MazeResponse{
		ID:        r.ID,
		Dimension: r.Dimension,
		Seed:      r.Seed,
		Attempts:  r.Attempts,
		Entrance:  r.Entrance,
		Exit:      r.Exit,
		Path:      r.Path,
		Tiles:     r.Tiles,
		CreatedAt: r.CreatedAt,
	}
}
