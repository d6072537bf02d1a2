// Package main provides the entry point for the seoscan CLI.
//
// seoscan runs a multi-stage SEO analysis for a domain: keyword
// research, SERP gap analysis, backlink gaps, content clustering,
// internal link recommendations, and a technical site audit.
//
// Usage:
//
//	seoscan run --domain example.com --seeds "seo tools" --competitors rival.com
//	seoscan history
//
// See --help for all available options.
package main

// main is the entry point for seoscan.
func main() {
	Execute()
}
