// Package config provides scribe's configuration.
//
// Configuration is resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. SCRIBE_* environment    │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. .env files              │  ← only fills unset variables
//	├─────────────────────────────┤
//	│  2. Config file             │  ← scribe.toml / scribe.yaml
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The result is validated before it is returned. Watch reloads the file
// layer whenever the file changes on disk.
//
// # Sub-packages
//
//   - loader: file decoding (TOML, YAML), .env and environment variables
//   - watcher: fsnotify-based file watching for live reload
//
// # Basic Usage
//
//	cfg, err := config.Load(config.WithFile("scribe.toml"))
//	if err != nil {
//	    return err
//	}
//	trigger := cfg.Editor.TriggerRune()
package config
