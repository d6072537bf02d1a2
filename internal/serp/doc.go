// Package serp analyzes search result rankings for a keyword set:
// where our domain ranks, where competitors rank, which SERP features
// appear, and which keywords are ranking gaps worth pursuing.
package serp
