// Package model defines the core data types shared across the seoscan
// pipeline: keyword records, content clusters, pages and link edges, SERP
// and backlink opportunities, technical audit issues, and the pipeline run
// report. Types in this package are plain data with small helper methods;
// the analytical logic that produces them lives in the stage packages.
package model
