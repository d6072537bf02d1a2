// Package report renders pipeline run results in multiple formats:
// human-readable text for the terminal, Markdown for sharing, and JSON
// for tool integration.
package report
