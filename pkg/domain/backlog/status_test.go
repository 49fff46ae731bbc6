package backlog

import (
	"encoding/json"
	"testing"
)

func TestDevStatus_TransitionWith(t *testing.T) {
	tests := []struct {
		name    string
		from    DevStatus
		event   string
		want    DevStatus
		wantErr bool
	}{
		{"hold to ready", StatusOnHold, "ready", StatusReady, false},
		{"ready to in progress", StatusReady, "start", StatusInProgress, false},
		{"ready back on hold", StatusReady, "hold", StatusOnHold, false},
		{"ready to blocked", StatusReady, "block", StatusBlocked, false},
		{"in progress to completed", StatusInProgress, "complete", StatusCompleted, false},
		{"in progress to blocked", StatusInProgress, "block", StatusBlocked, false},
		{"in progress stopped", StatusInProgress, "stop", StatusReady, false},
		{"blocked to ready", StatusBlocked, "unblock", StatusReady, false},
		{"completed reopened", StatusCompleted, "reopen", StatusReady, false},
		{"hold cannot start", StatusOnHold, "start", StatusOnHold, true},
		{"ready cannot complete", StatusReady, "complete", StatusReady, true},
		{"blocked cannot complete", StatusBlocked, "complete", StatusBlocked, true},
		{"completed cannot block", StatusCompleted, "block", StatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.TransitionWith(tt.event)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TransitionWith(%q) error = %v, wantErr %v", tt.event, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("TransitionWith(%q) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestDevStatus_IsForecastable(t *testing.T) {
	for _, status := range AllDevStatuses() {
		want := status != StatusCompleted
		if got := status.IsForecastable(); got != want {
			t.Errorf("%s IsForecastable() = %v, want %v", status, got, want)
		}
	}
}

func TestDevStatus_ValidEvents(t *testing.T) {
	events := StatusReady.ValidEvents()
	if len(events) != 3 {
		t.Errorf("ready ValidEvents() = %v, want 3 events", events)
	}
	for _, event := range events {
		if !StatusReady.CanTransitionWith(event) {
			t.Errorf("ValidEvents() returned %q but CanTransitionWith rejects it", event)
		}
	}
}

func TestDevStatus_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DevStatus
		wantErr bool
	}{
		{"valid", `"in_progress"`, StatusInProgress, false},
		{"empty defaults to on hold", `""`, StatusOnHold, false},
		{"unrecognized", `"doing"`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s DevStatus
			err := json.Unmarshal([]byte(tt.input), &s)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && s != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.input, s, tt.want)
			}
		})
	}
}
