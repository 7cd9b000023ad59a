// Package retry wraps fallible operations with bounded, exponentially
// backed-off re-attempts.
//
// The policy is pure data (Spec); the wrapping is an explicit call to Do
// rather than a decorator, so there is no hidden or process-wide retry
// state. Stop conditions are ORed: an operation gives up as soon as either
// the attempt budget or the elapsed-time budget is spent. Every re-attempt
// is announced on the injected logger at warn level before the backoff
// sleep, which callers rely on for crawl diagnostics.
package retry
