package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/arthur-debert/modup/pkg/errors"
	"github.com/arthur-debert/modup/pkg/logging"
	"github.com/arthur-debert/modup/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable modup reads
const EnvPrefix = "MODUP_"

// LoadOptions selects the optional configuration sources.
type LoadOptions struct {
	// UserConfigPath defaults to paths.UserConfigPath().
	UserConfigPath string

	// StagingDir is searched for a modup.toml. Empty skips it.
	StagingDir string

	// Overrides are dotted keys set from the command line.
	Overrides map[string]interface{}
}

// Load builds the effective configuration and validates it.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load built-in defaults")
	}

	// 2. User config, then 3. staging config
	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = paths.UserConfigPath()
	}
	sources := []string{userPath}
	if opts.StagingDir != "" {
		sources = append(sources, filepath.Join(opts.StagingDir, paths.StagingConfigFile))
	}
	for _, path := range sources {
		loaded, err := loadFile(k, path)
		if err != nil {
			return nil, err
		}
		if loaded {
			logger.Debug().Str("path", path).Msg("Loaded config file")
		}
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 5. Command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				trimSliceHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("staging", cfg.Paths.Staging).
		Str("install", cfg.Paths.Install).
		Str("pattern", cfg.Archives.Pattern).
		Int("workers", cfg.Update.Workers).
		Msg("Configuration loaded")

	return &cfg, nil
}

// loadFile merges a TOML file into k. A missing file is not an error.
func loadFile(k *koanf.Koanf, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat config %s", path).
			WithDetail("path", path)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return false, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return true, nil
}

// envKey maps MODUP_MIGRATION_CONFIG_FILE to migration.config_file.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

// trimSliceHookFunc drops blanks around comma separated list items.
func trimSliceHookFunc() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		items, ok := data.([]string)
		if !ok || to.Kind() != reflect.Slice {
			return data, nil
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out, nil
	}
}
