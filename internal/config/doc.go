// Package config defines the configuration structure for resort-catalog.
//
// Defaults are declared with struct tags and applied by creasty/defaults.
// The CLI overlays flags and RESORT_CATALOG_* environment variables on top
// through viper.
//
// # Configuration Structure
//
//	Configuration
//	├── DBPath        - SQLite database file
//	├── Reinitialize  - Remove the database file before opening
//	├── LogFormat     - Logging format
//	├── LogLevel      - Logging verbosity
//	└── Access        - Role privilege levels
//
// # Fields
//
//	┌──────────────────────┬──────────────┬─────────────────────────────────────┐
//	│ Field                │ Default      │ Description                         │
//	├──────────────────────┼──────────────┼─────────────────────────────────────┤
//	│ DBPath               │ "resorts.db" │ Path of the database (":memory:" ok)│
//	│ Reinitialize         │ false        │ Delete the database before opening  │
//	│ LogFormat            │ "console"    │ "console" or "json"                 │
//	│ LogLevel             │ "info"       │ debug, info, warn, error            │
//	│ Access.AdminPrivilege│ -1           │ Level granted to the admin role     │
//	│ Access.UserPrivilege │ 0            │ Level granted to the user role      │
//	└──────────────────────┴──────────────┴─────────────────────────────────────┘
//
// Lower privilege levels are more privileged: reads require the user level,
// writes require the admin level.
//
// # Debug Logging
//
// All fields are tagged with `debugmap:"visible"`; DebugMap() returns a map
// for structured logging:
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
