// Package keywords builds the deduplicated keyword universe for a site:
// seed metrics first, then related-keyword and people-also-search
// expansions, each scored with a composite opportunity metric.
package keywords
