package watch

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// eventRecorder collects delivered events for inspection after the fact.
type eventRecorder struct {
	mu     sync.Mutex
	events []ChangeEvent
}

func (r *eventRecorder) deliver(ev ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *eventRecorder) snapshot() []ChangeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ChangeEvent(nil), r.events...)
}

func TestChangeDebouncer_CoalescesBurstToLatestEvent(t *testing.T) {
	rec := &eventRecorder{}
	d := NewChangeDebouncer(50*time.Millisecond, rec.deliver)
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Observe(ChangeEvent{Path: fmt.Sprintf("backlog-%d.json", i), ChangeType: "write"})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)
	got := rec.snapshot()
	if len(got) != 1 {
		t.Fatalf("delivered %d events, want 1", len(got))
	}
	if got[0].Path != "backlog-9.json" {
		t.Errorf("delivered path = %q, want the latest of the burst", got[0].Path)
	}
}

func TestChangeDebouncer_DeliversAgainAfterQuietPeriod(t *testing.T) {
	rec := &eventRecorder{}
	d := NewChangeDebouncer(20*time.Millisecond, rec.deliver)
	defer d.Stop()

	d.Observe(ChangeEvent{Path: "backlog.json", ChangeType: "write"})
	time.Sleep(60 * time.Millisecond)
	d.Observe(ChangeEvent{Path: "sprints.json", ChangeType: "create"})
	time.Sleep(60 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 2 {
		t.Fatalf("delivered %d events, want 2", len(got))
	}
	if got[0].Path != "backlog.json" || got[1].Path != "sprints.json" {
		t.Errorf("delivered paths = %q, %q; want backlog.json then sprints.json", got[0].Path, got[1].Path)
	}
}

func TestChangeDebouncer_StopCancelsPending(t *testing.T) {
	rec := &eventRecorder{}
	d := NewChangeDebouncer(30*time.Millisecond, rec.deliver)

	d.Observe(ChangeEvent{Path: "backlog.json", ChangeType: "remove"})
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("delivered %d events after Stop, want 0", len(got))
	}
}
