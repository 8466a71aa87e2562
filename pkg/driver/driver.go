package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/logging"
	"github.com/arthur-debert/modup/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Runner processes a single archive. *pipeline.Pipeline implements it.
type Runner interface {
	Run(archivePath string) types.UpdateResult
	Plan(archivePath string) types.UpdateResult
}

// Options configures a Driver
type Options struct {
	FileSystem types.FS
	Runner     Runner

	// Staging is the directory searched for archives.
	Staging string

	// Pattern selects archive files by name. Defaults to DefaultPattern.
	Pattern string

	// Workers bounds the number of concurrent pipelines. Zero or less
	// means the host's available parallelism.
	Workers int

	// DryRun plans every archive instead of updating it.
	DryRun bool
}

// Driver runs the update pipeline over every pending archive.
type Driver struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a Driver from opts.
func New(opts Options) (*Driver, error) {
	if opts.FileSystem == nil {
		return nil, errors.New(errors.ErrInvalidInput, "driver requires a filesystem")
	}
	if opts.Runner == nil {
		return nil, errors.New(errors.ErrInvalidInput, "driver requires a runner")
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers()
	}
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}
	return &Driver{opts: opts, logger: logging.GetLogger("driver")}, nil
}

// DefaultWorkers returns the host's available parallelism.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Run discovers the pending archives and processes each one. The returned
// error covers discovery only; per-archive failures live in the report.
// Canceling ctx stops archives that have not started yet, they are
// reported as failed; running pipelines always finish.
func (d *Driver) Run(ctx context.Context) (*types.Report, error) {
	done := logging.LogOperationStart(d.logger, "update")
	defer done()

	archives, err := Discover(d.opts.FileSystem, d.opts.Staging, d.opts.Pattern)
	if err != nil {
		return nil, err
	}

	report := &types.Report{
		DryRun:    d.opts.DryRun,
		Timestamp: time.Now(),
		Results:   make([]types.UpdateResult, len(archives)),
	}

	if len(archives) == 0 {
		d.logger.Info().Str("staging", d.opts.Staging).Msg("No archives to process")
		return report, nil
	}

	d.logger.Info().
		Int("archives", len(archives)).
		Int("workers", d.opts.Workers).
		Bool("dryRun", d.opts.DryRun).
		Msg("Processing archives")

	// Goroutines never return an error so one failure cannot cancel the rest.
	var g errgroup.Group
	g.SetLimit(d.opts.Workers)

	for i, archivePath := range archives {
		if err := ctx.Err(); err != nil {
			report.Results[i] = canceled(archivePath, err)
			continue
		}
		g.Go(func() error {
			report.Results[i] = d.process(archivePath)
			return nil
		})
	}
	_ = g.Wait()

	report.Sort()

	d.logger.Info().
		Int("succeeded", len(report.Succeeded())).
		Int("failed", len(report.Failed())).
		Msg("All archives processed")

	return report, nil
}

// process runs one archive, turning a panic into a failed result so it is
// reported like any other failure.
func (d *Driver) process(archivePath string) (result types.UpdateResult) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Str("archive", archivePath).Interface("panic", r).Msg("Pipeline panicked")
			result = types.UpdateResult{
				Archive:  archivePath,
				Package:  types.Package{ArchivePath: archivePath},
				Stage:    types.StageFailed,
				FailedAt: types.StageExtracting,
				Err: errors.New(errors.ErrInternal, fmt.Sprintf("pipeline panicked: %v", r)).
					WithDetail("archive", archivePath),
			}
		}
	}()

	if d.opts.DryRun {
		return d.opts.Runner.Plan(archivePath)
	}
	return d.opts.Runner.Run(archivePath)
}

func canceled(archivePath string, err error) types.UpdateResult {
	return types.UpdateResult{
		Archive:  archivePath,
		Package:  types.Package{ArchivePath: archivePath},
		Stage:    types.StageFailed,
		FailedAt: types.StageExtracting,
		Err: errors.Wrap(err, errors.ErrInternal, "update canceled before it started").
			WithDetail("archive", archivePath),
	}
}
