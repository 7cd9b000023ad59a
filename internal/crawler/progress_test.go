package crawler

import (
	"testing"

	"github.com/utcatalog/coursecrawl/internal/model"
)

// TestChannelSink tests the channel-backed progress sink.
func TestChannelSink(t *testing.T) {
	t.Parallel()

	t.Run("forwards events in order", func(t *testing.T) {
		t.Parallel()

		sink := NewChannelSink(4)
		sink.OnFirstPage(&model.SearchPage{TotalCount: 25})
		sink.OnDetail(model.Detail{Item: model.Item{TimetableCode: "30001"}})
		sink.Close()

		var events []Event
		for ev := range sink.Events() {
			events = append(events, ev)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Kind != EventFirstPage || events[0].Page.TotalCount != 25 {
			t.Errorf("unexpected first event %+v", events[0])
		}
		if events[1].Kind != EventDetail || events[1].Detail.TimetableCode != "30001" {
			t.Errorf("unexpected second event %+v", events[1])
		}
	})

	t.Run("drops events when the buffer is full", func(t *testing.T) {
		t.Parallel()

		sink := NewChannelSink(1)
		sink.OnDetail(model.Detail{Item: model.Item{TimetableCode: "30001"}})
		// The buffer is full; this must not block.
		sink.OnDetail(model.Detail{Item: model.Item{TimetableCode: "30002"}})
		sink.Close()

		var events []Event
		for ev := range sink.Events() {
			events = append(events, ev)
		}
		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}
		if events[0].Detail.TimetableCode != "30001" {
			t.Errorf("unexpected surviving event %+v", events[0])
		}
	})
}
