// Package config holds the runtime configuration for seoscan: CLI flag
// values, the optional .seoscan YAML project file, default constants,
// and XDG directory resolution for artifacts and the run history
// database. The Config struct is populated once after flag parsing and
// passed through the application by dependency injection; there is no
// global configuration state.
package config
