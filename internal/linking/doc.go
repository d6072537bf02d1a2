// Package linking recommends new internal links between content pages
// based on topical relevance, and maps the site's existing link graph.
package linking
