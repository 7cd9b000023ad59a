// Package crawler orchestrates multi-page catalogue crawls.
//
// # Architecture
//
// The package is designed around the Scheduler type, which drives a crawl
// through its phases: fetch the first page to learn the result size, fetch
// the remaining pages concurrently, then fan out over every listed course
// to fetch its detail record.
//
// Design decision: The Scheduler owns concurrency and retries while the
// catalog package owns fetching and validation because:
//  1. Page fetching stays synchronous and testable in isolation
//  2. Retry classification is a crawl policy, not a transport property
//  3. The shared rate limiter below the scheduler keeps request spacing
//     correct no matter how many goroutines are in flight
//
// # Components
//
//   - Scheduler: coordinates a crawl run and assembles its Outcome
//   - ProgressSink: receives progress callbacks during a run
//   - ChannelSink: adapts progress callbacks to a channel for UIs
//
// # Failure policy
//
// The first page is load-bearing: without it the result size is unknown,
// so its failure aborts the run. Every later page and every detail fetch
// is retried and then dropped on exhaustion, recorded in the Outcome's
// failure counters. Cancellation stops the run but still returns the
// partial Outcome gathered so far.
package crawler
