// Package config provides centralized configuration constants and path
// resolution for TaskGraph. All default values live here so there is a
// single source of truth.
package config

// Viper keys.
const (
	// KeyDataPath overrides where the graph database lives.
	KeyDataPath = "data.path"

	// KeyServerPort is the HTTP API listen port.
	KeyServerPort = "server.port"

	// KeyOverrideInProgress controls whether automatic status derivation
	// may demote a manually started (in_progress) task back to blocked or
	// pending when its prerequisites change. Completed tasks are never
	// demoted regardless of this setting.
	KeyOverrideInProgress = "engine.overrideInProgress"
)

// Defaults.
const (
	// DefaultServerPort is the default HTTP API port.
	DefaultServerPort = 8377

	// DefaultOverrideInProgress keeps the engine's hands off in_progress
	// tasks unless the operator opts in.
	DefaultOverrideInProgress = false
)
