package crawler

import (
	"github.com/utcatalog/coursecrawl/internal/model"
)

// ProgressSink receives progress callbacks during a crawl run. Callbacks
// arrive from the scheduler's worker goroutines, so implementations must be
// safe for concurrent use.
type ProgressSink interface {
	// OnFirstPage is called once, after the first page succeeds, with the
	// page that fixed the crawl's expected size.
	OnFirstPage(page *model.SearchPage)

	// OnDetail is called after each successful detail fetch, in completion
	// order.
	OnDetail(detail model.Detail)
}

// NopSink discards all progress callbacks. It is the scheduler's default.
type NopSink struct{}

// OnFirstPage implements ProgressSink.
func (NopSink) OnFirstPage(*model.SearchPage) {}

// OnDetail implements ProgressSink.
func (NopSink) OnDetail(model.Detail) {}

// EventKind discriminates progress events on a ChannelSink.
type EventKind int

// Event kinds.
const (
	// EventFirstPage carries the first page of a run.
	EventFirstPage EventKind = iota
	// EventDetail carries one fetched detail record.
	EventDetail
)

// Event is one progress notification. Exactly one payload field is set,
// according to Kind.
type Event struct {
	Kind   EventKind
	Page   *model.SearchPage
	Detail *model.Detail
}

// ChannelSink forwards progress events to a channel, for UIs and tests
// that consume progress as a stream.
//
// Design decision: Events are dropped, not queued, when the channel is
// full because:
//  1. A slow consumer must never stall the crawl's worker goroutines
//  2. Progress is advisory; the Outcome is the source of truth
//  3. Dropping keeps the sink allocation-free on the hot path
type ChannelSink struct {
	events chan Event
}

// NewChannelSink creates a ChannelSink buffering up to size events.
func NewChannelSink(size int) *ChannelSink {
	return &ChannelSink{events: make(chan Event, size)}
}

// Events returns the receive side of the sink.
func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// Close closes the event channel. Call it only after the crawl returned.
func (s *ChannelSink) Close() {
	close(s.events)
}

// OnFirstPage implements ProgressSink.
func (s *ChannelSink) OnFirstPage(page *model.SearchPage) {
	s.send(Event{Kind: EventFirstPage, Page: page})
}

// OnDetail implements ProgressSink.
func (s *ChannelSink) OnDetail(detail model.Detail) {
	s.send(Event{Kind: EventDetail, Detail: &detail})
}

// send delivers the event without blocking.
func (s *ChannelSink) send(ev Event) {
	select {
	case s.events <- ev:
	default:
	}
}
