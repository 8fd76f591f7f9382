// Package dmn holds the records exchanged between the generation service and its clients.
package dmn

import (
	"time"

	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/google/uuid"
)

// MazeRecord is a generated maze together with the inputs needed to reproduce it.
type MazeRecord struct {
	ID        uuid.UUID         `json:"id"`
	Dimension int               `json:"dimension"`
	Seed      int64             `json:"seed"`
	Attempts  int               `json:"attempts"` // Generation attempts spent, including the successful one
	Entrance  maze.Coordinate   `json:"entrance"`
	Exit      maze.Coordinate   `json:"exit"`
	Path      []maze.Coordinate `json:"path"`
	Tiles     [][]maze.TileKind `json:"tiles"` // Indexed [x][y]
	CreatedAt time.Time         `json:"created_at"`
}

// NewMazeRecord captures m as a record.
func NewMazeRecord(id uuid.UUID, seed int64, attempts int, m *maze.Maze, createdAt time.Time) *MazeRecord {
	return &MazeRecord{
		ID:        id,
		Dimension: m.Dimension(),
		Seed:      seed,
		Attempts:  attempts,
		Entrance:  m.Entrance(),
		Exit:      m.Exit(),
		Path:      m.Path(),
		Tiles:     m.Tiles(),
		CreatedAt: createdAt.UTC(),
	}
}
