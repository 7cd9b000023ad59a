// Package ratelimit provides the single admission gate that every network
// call to the catalogue passes through.
//
// The catalogue publishes no rate-limit policy, so the client enforces its
// own: a minimum wall-clock interval between any two requests, with no burst
// allowance. One Limiter instance is shared by the page fetcher and every
// concurrent detail fetch, which serializes the whole crawl's traffic into
// evenly spaced requests regardless of how many goroutines are in flight.
package ratelimit
