package pipeline

import (
	"time"

	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/types"
	"github.com/rs/zerolog"
)

// run tracks one archive through the state machine.
type run struct {
	start  time.Time
	stage  types.Stage
	result types.UpdateResult
	logger zerolog.Logger
}

func (r *run) setPackage(pkg types.Package) {
	r.result.Package = pkg
	r.logger = r.logger.With().Str("package", pkg.Name).Logger()
}

func (r *run) advance(to types.Stage) error {
	if !types.CanTransition(r.stage, to) {
		return errors.Newf(errors.ErrInternal, "invalid stage transition %s -> %s", r.stage, to)
	}
	r.logger.Debug().
		Str("from", r.stage.String()).
		Str("to", to.String()).
		Msg("Stage transition")
	r.stage = to
	return nil
}

func (r *run) fail(err error) types.UpdateResult {
	details := map[string]interface{}{"archive": r.result.Archive}
	if r.result.Package.Name != "" {
		details["package"] = r.result.Package.Name
	}
	err = errors.Annotate(err, details)

	r.result.FailedAt = r.stage
	r.result.Stage = types.StageFailed
	r.result.Err = err
	r.result.Duration = time.Since(r.start)

	r.logger.Error().
		Err(err).
		Str("stage", r.stage.String()).
		Msg("Update failed")
	return r.result
}

func (r *run) finish(msg string) types.UpdateResult {
	r.result.Stage = r.stage
	r.result.Duration = time.Since(r.start)

	r.logger.Info().
		Bool("stale", r.result.Stale).
		Bool("configMigrated", r.result.ConfigMigrated).
		Dur("duration", r.result.Duration).
		Msg(msg)
	return r.result
}
