package counter

import (
	"context"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/linecount/internal/traverser"
	"github.com/dshills/linecount/pkg/types"
)

// Counter aggregates line counts for root directories
type Counter struct {
	fs     billy.Filesystem
	filter traverser.Filter
	logger *zap.Logger

	// Maps a configured root onto its directory on fs (default: unchanged)
	resolve func(root string) (string, error)

	// Number of roots counted at once (default: 1)
	workers int
}

// Option configures a Counter
type Option func(*Counter)

// WithLogger sets the diagnostic sink. Access failures are logged at warn level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Counter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithWorkers sets how many roots are counted concurrently.
// Values below 1 fall back to sequential counting.
func WithWorkers(n int) Option {
	return func(c *Counter) {
		if n < 1 {
			n = 1
		}
		c.workers = n
	}
}

// WithRootResolver sets how a configured root is located on the filesystem,
// e.g. filepath.Abs for relative roots on the host. Results and diagnostics
// keep the root as configured.
func WithRootResolver(resolve func(root string) (string, error)) Option {
	return func(c *Counter) {
		if resolve != nil {
			c.resolve = resolve
		}
	}
}

// New creates a Counter reading from fsys
func New(fsys billy.Filesystem, filter traverser.Filter, opts ...Option) *Counter {
	c := &Counter{
		fs:      fsys,
		filter:  filter,
		logger:  zap.NewNop(),
		resolve: func(root string) (string, error) { return root, nil },
		workers: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CountRoot counts every qualifying file below root.
//
// Failures never abort the root: each one is logged, recorded on the result
// and skipped. A file that fails mid-read contributes nothing, not a partial
// count. If ctx is cancelled the partial result is returned with ctx.Err().
func (c *Counter) CountRoot(ctx context.Context, root string) (types.RootResult, error) {
	result := types.RootResult{Root: root}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	dir, err := c.resolve(root)
	if err != nil {
		c.record(&result, root, fmt.Errorf("%w: %s: %v", types.ErrRootUnavailable, root, err))
		return result, nil
	}

	for f, err := range traverser.WalkFrom(c.fs, dir, root, c.filter) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}

		if err != nil {
			if types.KindOf(err) == types.KindFileUnreadable {
				result.FailedFiles++
			}
			c.record(&result, f.Name, err)
			continue
		}

		lines, err := CountFile(c.fs, f.Path)
		if err != nil {
			result.FailedFiles++
			c.record(&result, f.Name, err)
			continue
		}

		result.Lines += lines
		result.Files++
	}

	c.logger.Debug("root counted",
		zap.String("root", root),
		zap.Int("lines", result.Lines),
		zap.Int("files", result.Files),
		zap.Int("failed", result.FailedFiles),
	)

	return result, nil
}

// CountAll counts every root and returns the results in the order given.
//
// Roots are independent: with more than one worker each root is counted by
// its own goroutine into its own RootResult, and the results are combined
// only after all of them finish. The only error returned is cancellation.
func (c *Counter) CountAll(ctx context.Context, roots []string) (*types.Report, error) {
	results := make([]types.RootResult, len(roots))

	if c.workers == 1 {
		for i, root := range roots {
			res, err := c.CountRoot(ctx, root)
			if err != nil {
				return nil, fmt.Errorf("counting %s: %w", root, err)
			}
			results[i] = res
		}
		return &types.Report{Roots: results}, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, root := range roots {
		g.Go(func() error {
			res, err := c.CountRoot(gctx, root)
			if err != nil {
				return fmt.Errorf("counting %s: %w", root, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &types.Report{Roots: results}, nil
}

func (c *Counter) record(result *types.RootResult, path string, err error) {
	diag := types.NewDiagnostic(path, err)
	result.Diagnostics = append(result.Diagnostics, diag)

	c.logger.Warn("skipped",
		zap.String("kind", string(diag.Kind)),
		zap.String("path", path),
		zap.Error(err),
	)
}
