package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/google/uuid"
)

const (
	defaultPrefix       = "mazegen"
	defaultMaxAttempts  = 25
	defaultMaxDimension = 50

	seedKeyFmt = "%s:maze:dim_%d:seed_%d"
	idKeyFmt   = "%s:maze:id_%s"
)

var (
	ErrMazeNotFound     = errors.New("maze not found")
	ErrAttemptsExceeded = errors.New("generation attempts exhausted")
)

// Options configures a MazeGenerator.
type Options struct {
	// Cache key prefix
	Prefix string

	// MaxAttempts bounds regeneration after an unreachable walk
	MaxAttempts int

	// MaxDimension is the largest accepted maze dimension
	MaxDimension int

	// Stages run after the solution path of every generated maze
	Stages []maze.Stage

	// PlainWalk turns off the backtracking path walk
	PlainWalk bool

	// Clock returns the creation time of records; defaults to time.Now
	Clock func() time.Time
}

// MazeGenerator wraps maze.Generate with seeding, a bounded retry policy and caching.
type MazeGenerator struct {
	cache  i.MazeCache
	logger i.Logger
	opts   *Options
}

// NewMazeGenerator creates a MazeGenerator. cache may be nil, in which case
// nothing is cached and ByID always misses.
func NewMazeGenerator(cache i.MazeCache, logger i.Logger, opts *Options) (i.MazeGenerator, error) {
	if logger == nil {
		return nil, errors.New("nil logger")
	}

	if opts == nil {
		opts = &Options{}
	}

	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}

	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}

	if opts.MaxDimension <= 0 {
		opts.MaxDimension = defaultMaxDimension
	}

	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &MazeGenerator{
		cache:  cache,
		logger: logger,
		opts:   opts,
	}, nil
}

// Generate returns the maze for (dimension, seed), generating it on a cache miss.
func (mg *MazeGenerator) Generate(ctx context.Context, dimension int, seed *int64) (*dmn.MazeRecord, error) {
	if dimension < maze.MinDimension || dimension > mg.opts.MaxDimension {
		return nil, fmt.Errorf("%w: %d is outside [%d, %d]", maze.ErrInvalidDimension, dimension, maze.MinDimension, mg.opts.MaxDimension)
	}

	s := time.Now().UnixNano()
	if seed != nil {
		s = *seed
	}

	seedKey := fmt.Sprintf(seedKeyFmt, mg.opts.Prefix, dimension, s)
	if record, err := mg.load(ctx, seedKey); err == nil {
		mg.logger.Info(fmt.Sprintf("Serving cached maze: ID=%s Dimension=%d Seed=%d", record.ID, dimension, s))
		return record, nil
	}

	if mg.cache == nil {
		return mg.generate(dimension, s)
	}

	var record *dmn.MazeRecord
	locked := false
	err := mg.cache.WithLock(ctx, seedKey, func(ctx context.Context) error {
		locked = true
		// Another holder of the lock may have generated it meanwhile.
		if cached, err := mg.load(ctx, seedKey); err == nil {
			record = cached
			return nil
		}

		generated, err := mg.generate(dimension, s)
		if err != nil {
			return err
		}
		record = generated
		mg.store(ctx, seedKey, record)
		return nil
	})
	if err != nil && !locked && ctx.Err() == nil {
		// The cache is best effort; generate unguarded rather than fail the request.
		mg.logger.Warning(fmt.Sprintf("Locking %s failed, generating without lock: %s", seedKey, err))
		record, err = mg.generate(dimension, s)
		if err != nil {
			return nil, err
		}
		mg.store(ctx, seedKey, record)
		return record, nil
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

// ByID returns a cached record by ID.
func (mg *MazeGenerator) ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	record, err := mg.load(ctx, fmt.Sprintf(idKeyFmt, mg.opts.Prefix, id))
	if err != nil {
		return nil, ErrMazeNotFound
	}
	return record, nil
}

// generate runs the retry loop over one random source seeded with seed.
func (mg *MazeGenerator) generate(dimension int, seed int64) (*dmn.MazeRecord, error) {
	rng := rand.New(rand.NewSource(seed))

	for attempt := 1; attempt <= mg.opts.MaxAttempts; attempt++ {
		m, err := maze.GenerateWithOptions(dimension, rng, maze.Options{
			Backtrack: !mg.opts.PlainWalk,
			Stages:    mg.opts.Stages,
		})
		if errors.Is(err, maze.ErrUnreachable) {
			mg.logger.Warning(fmt.Sprintf("Attempt %d/%d unreachable: Dimension=%d Seed=%d", attempt, mg.opts.MaxAttempts, dimension, seed))
			continue
		}
		if err != nil {
			mg.logger.Error(fmt.Sprintf("Generating maze: Dimension=%d Seed=%d: %s", dimension, seed, err))
			return nil, err
		}

		reachable, err := maze.IsReachable(m.Grid(), m.Entrance(), m.Exit())
		if err != nil || !reachable {
			mg.logger.Error(fmt.Sprintf("Generated maze failed verification: Dimension=%d Seed=%d", dimension, seed))
			return nil, fmt.Errorf("verifying maze: %w", maze.ErrUnreachable)
		}

		record := dmn.NewMazeRecord(uuid.New(), seed, attempt, m, mg.opts.Clock())
		mg.logger.Info(fmt.Sprintf("Maze generated: ID=%s Dimension=%d Seed=%d Attempts=%d", record.ID, dimension, seed, attempt))
		return record, nil
	}

	mg.logger.Error(fmt.Sprintf("Giving up after %d attempts: Dimension=%d Seed=%d", mg.opts.MaxAttempts, dimension, seed))
	return nil, fmt.Errorf("%w after %d tries: %w", ErrAttemptsExceeded, mg.opts.MaxAttempts, maze.ErrUnreachable)
}

func (mg *MazeGenerator) load(ctx context.Context, key string) (*dmn.MazeRecord, error) {
	if mg.cache == nil {
		return nil, i.ErrCacheMiss
	}

	raw, err := mg.cache.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, i.ErrCacheMiss) {
			mg.logger.Warning(fmt.Sprintf("Reading cache key %s: %s", key, err))
		}
		return nil, err
	}

	var record dmn.MazeRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		mg.logger.Warning(fmt.Sprintf("Discarding malformed cache entry %s: %s", key, err))
		return nil, err
	}
	return &record, nil
}

// store writes record under its seed key and its ID key. Cache failures are
// logged and do not fail the generation.
func (mg *MazeGenerator) store(ctx context.Context, seedKey string, record *dmn.MazeRecord) {
	raw, err := json.Marshal(record)
	if err != nil {
		mg.logger.Error(fmt.Sprintf("Encoding maze %s: %s", record.ID, err))
		return
	}

	for _, key := range []string{seedKey, fmt.Sprintf(idKeyFmt, mg.opts.Prefix, record.ID)} {
		if err := mg.cache.Store(ctx, key, raw); err != nil {
			mg.logger.Warning(fmt.Sprintf("Caching maze %s under %s: %s", record.ID, key, err))
		}
	}
}
