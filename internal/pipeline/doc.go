// Package pipeline orchestrates the analysis stages of a run: keyword
// research, SERP gap analysis, backlink gaps, content clustering,
// internal linking, and the technical audit. Stages execute strictly in
// sequence; a failed stage is recorded and the run continues, so one
// provider outage never discards the rest of the analysis.
package pipeline
