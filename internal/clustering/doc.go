// Package clustering groups a keyword universe into topical clusters,
// matches each cluster against existing site pages, and produces a
// prioritized content calendar of pages to create or optimize.
package clustering
