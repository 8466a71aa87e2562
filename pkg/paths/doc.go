// Package paths provides centralized path handling for modup.
//
// modup works with two directories:
//
//   - Staging: the directory holding downloaded archives (the working
//     directory by default). Archives are extracted here first.
//   - Install: the live installation directory, one level above staging,
//     with one subdirectory per installed package.
//
// # Environment Variables
//
//   - MODUP_CONFIG_DIR: Override the user config directory (default: $XDG_CONFIG_HOME/modup)
//
// # Usage
//
//	layout, err := paths.New("", "")   // staging = cwd, install = ..
//	installed := layout.InstalledPath("Alpha")  // /games/Mods/Alpha
//	extracted := layout.ExtractedPath("Alpha")  // /games/Mods/updates/Alpha
package paths
