// Package database provides SQLite-backed run history: every pipeline
// run is stored with its per-step outcomes and a snapshot of the top
// keywords, so past runs can be listed and compared without re-querying
// the provider.
package database
