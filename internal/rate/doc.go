// Package rate provides a fixed-interval gate used to space out calls
// to third-party SEO data providers. The gate makes the inter-request
// delay an explicit, testable contract instead of ad hoc sleeps after
// each call.
package rate
