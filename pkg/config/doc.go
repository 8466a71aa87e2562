// Package config loads modup's configuration.
//
// Settings are layered with koanf: embedded defaults, the user's config
// file, a modup.toml next to the archives, MODUP_* environment variables
// and finally explicit overrides from the command line. Environment
// variables name the section and key separated by the first underscore,
// so MODUP_UPDATE_WORKERS sets update.workers and
// MODUP_MIGRATION_CONFIG_FILE sets migration.config_file. Lists are
// comma separated.
package config
