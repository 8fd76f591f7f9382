package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/google/uuid"
)

// MazeGenerator generates mazes and looks up previously generated ones.
type MazeGenerator interface {
	// Generate builds a maze of the given dimension. A nil seed picks one at random;
	// the seed used is always part of the returned record.
	Generate(ctx context.Context, dimension int, seed *int64) (*dmn.MazeRecord, error)

	// ByID returns a record generated earlier, while it is still cached.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)
}
