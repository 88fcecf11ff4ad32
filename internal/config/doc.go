// Package config provides user configuration management for rentwizard.
//
// This package manages a YAML-based configuration file holding the HTTP
// server listen address, the difficulty-index lookup service endpoint,
// session persistence tuning and application preferences. The file
// follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/rentwizard/config.yaml or $HOME/.config/rentwizard/config.yaml
//   - macOS: $HOME/.config/rentwizard/config.yaml
//   - Windows: %LOCALAPPDATA%\rentwizard\config.yaml
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	settings.Preferences.Locale = "nl"
//	if err := settings.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global settings use sync.Once for safe initialization across
// goroutines. File operations are protected by a mutex to ensure atomic
// writes.
package config
