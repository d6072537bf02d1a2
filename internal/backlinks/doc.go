// Package backlinks finds link-building opportunities by intersecting
// referring domains: domains that link to competitors but not to the
// operator are outreach candidates, scored by authority and coverage.
package backlinks
