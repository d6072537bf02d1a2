// Package seoapi provides the rate-limited client for the third-party
// SEO data provider. All requests pass through a fixed-interval gate so
// the pipeline never exceeds the provider's rate limits, and asynchronous
// provider tasks (SERP rankings, site crawls) are awaited with a bounded
// poll loop.
package seoapi
