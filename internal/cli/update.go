package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/modup/pkg/config"
	"github.com/arthur-debert/modup/pkg/driver"
	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/filesystem"
	"github.com/arthur-debert/modup/pkg/logging"
	"github.com/arthur-debert/modup/pkg/paths"
	"github.com/arthur-debert/modup/pkg/pipeline"
	"github.com/arthur-debert/modup/pkg/ui"
	"github.com/spf13/cobra"
)

// loadConfig layers the configuration sources with the flags the user set
// explicitly.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	overrides := map[string]interface{}{}
	flags := cmd.Flags()
	if flags.Changed("staging") {
		overrides["paths.staging"] = opts.staging
	}
	if flags.Changed("install") {
		overrides["paths.install"] = opts.install
	}
	if flags.Changed("pattern") {
		overrides["archives.pattern"] = opts.pattern
	}
	if flags.Changed("workers") {
		overrides["update.workers"] = opts.workers
	}
	if flags.Changed("lock-by-name") {
		overrides["update.lock_by_name"] = opts.lockByName
	}
	if flags.Changed("output") {
		overrides["output.format"] = opts.output
	}

	// modup.toml is looked up where the archives are
	stagingDir := opts.staging
	if stagingDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		stagingDir = cwd
	}

	return config.Load(config.LoadOptions{
		UserConfigPath: opts.configPath,
		StagingDir:     stagingDir,
		Overrides:      overrides,
	})
}

// renderError reports err in the configured format when possible.
func renderError(cmd *cobra.Command, format string, err error) error {
	f, perr := ui.ParseFormat(format)
	if perr != nil {
		f = ui.FormatAuto
	}
	if renderer, rerr := ui.NewRenderer(f, cmd.ErrOrStderr()); rerr == nil {
		_ = renderer.RenderError(err)
	}
	return err
}

func runUpdate(cmd *cobra.Command, opts *globalOptions, dryRun bool) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return renderError(cmd, opts.output, err)
	}

	layout, err := cfg.Layout()
	if err != nil {
		return renderError(cmd, cfg.Output.Format, err)
	}

	fs := filesystem.NewOS()

	var locker pipeline.Locker
	if cfg.Update.LockByName {
		locker = driver.NewNameLocks()
	}

	p, err := pipeline.New(pipeline.Options{
		FileSystem: fs,
		Layout:     layout,
		ConfigFile: cfg.Migration.ConfigFile,
		Exclude:    cfg.Migration.Exclude,
		Locker:     locker,
	})
	if err != nil {
		return renderError(cmd, cfg.Output.Format, err)
	}

	d, err := driver.New(driver.Options{
		FileSystem: fs,
		Runner:     p,
		Staging:    layout.Staging(),
		Pattern:    cfg.Archives.Pattern,
		Workers:    cfg.Update.Workers,
		DryRun:     dryRun,
	})
	if err != nil {
		return renderError(cmd, cfg.Output.Format, err)
	}

	startLog := logging.WithFields(map[string]interface{}{
		"staging": layout.Staging(),
		"install": layout.Install(),
		"dryRun":  dryRun,
	})
	startLog.Info().Msg("Starting update")

	report, err := d.Run(cmd.Context())
	if err != nil {
		return renderError(cmd, cfg.Output.Format, err)
	}

	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := renderer.RenderReport(report); err != nil {
		return err
	}

	if failed := len(report.Failed()); failed > 0 {
		return errors.Newf(errors.ErrUpdateFailed, MsgErrUpdateFailed, failed, len(report.Results))
	}
	return nil
}

type genConfigOptions struct {
	effective bool
	write     bool
	force     bool
}

func runGenConfig(cmd *cobra.Command, opts *globalOptions, gen genConfigOptions) error {
	content := []byte(config.GenerateConfigContent())
	if gen.effective {
		cfg, err := loadConfig(cmd, opts)
		if err != nil {
			return renderError(cmd, opts.output, err)
		}
		if content, err = config.Marshal(cfg); err != nil {
			return err
		}
	}

	if !gen.write {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}

	target := opts.configPath
	if target == "" {
		target = paths.UserConfigPath()
	}

	fs := filesystem.NewOS()
	if _, err := fs.Stat(target); err == nil && !gen.force {
		return renderError(cmd, opts.output,
			errors.Newf(errors.ErrAlreadyExists, MsgErrConfigExists, target).WithDetail("path", target))
	}
	if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return renderError(cmd, opts.output,
			errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(target)))
	}
	if err := fs.WriteFile(target, content, 0644); err != nil {
		return renderError(cmd, opts.output,
			errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target))
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
	return err
}
