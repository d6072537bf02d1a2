// Package audit runs the technical site audit: it submits a crawl task
// to the provider, classifies the aggregate check counts through a
// static severity mapping, and derives per-page issue lists.
package audit
