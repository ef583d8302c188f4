package engine

import (
	"testing"

	"github.com/leengari/shardmerge/internal/executor"
)

// MockObserver is a test observer that records events
type MockObserver struct {
	Events []Event
}

func (m *MockObserver) OnEvent(event Event) {
	m.Events = append(m.Events, event)
}

func (m *MockObserver) types() []EventType {
	out := make([]EventType, len(m.Events))
	for i, e := range m.Events {
		out[i] = e.Type
	}
	return out
}

func TestAddObserver(t *testing.T) {
	eng := New(executor.Env{})
	observer := &MockObserver{}

	eng.AddObserver(observer)

	if len(eng.observers) != 1 {
		t.Errorf("Expected 1 observer, got %d", len(eng.observers))
	}
}

func TestRemoveObserver(t *testing.T) {
	eng := New(executor.Env{})
	observer := &MockObserver{}

	eng.AddObserver(observer)
	eng.RemoveObserver(observer)

	if len(eng.observers) != 0 {
		t.Errorf("Expected 0 observers, got %d", len(eng.observers))
	}
}

func TestNotifyWithNoObservers(t *testing.T) {
	eng := New(executor.Env{})

	// Should not panic
	eng.notify(Event{Type: EventParseStart, MergeID: "test-merge"})
}

func TestNotifyWithMultipleObservers(t *testing.T) {
	eng := New(executor.Env{})
	observer1 := &MockObserver{}
	observer2 := &MockObserver{}

	eng.AddObserver(observer1)
	eng.AddObserver(observer2)

	testEvent := Event{Type: EventParseStart, MergeID: "test-merge", Data: "SHOW TABLE STATUS"}
	eng.notify(testEvent)

	if len(observer1.Events) != 1 {
		t.Errorf("Observer1: Expected 1 event, got %d", len(observer1.Events))
	}
	if len(observer2.Events) != 1 {
		t.Errorf("Observer2: Expected 1 event, got %d", len(observer2.Events))
	}

	if observer1.Events[0].Type != EventParseStart {
		t.Errorf("Observer1: Expected EventParseStart, got %v", observer1.Events[0].Type)
	}
	if observer2.Events[0].Type != EventParseStart {
		t.Errorf("Observer2: Expected EventParseStart, got %v", observer2.Events[0].Type)
	}
}

func TestEventTimestamp(t *testing.T) {
	eng := New(executor.Env{})
	observer := &MockObserver{}
	eng.AddObserver(observer)

	eng.notify(Event{Type: EventParseStart, MergeID: "test-merge"})

	if observer.Events[0].Timestamp.IsZero() {
		t.Error("Expected timestamp to be set, got zero value")
	}
}

func TestMetricsObserverIgnoresUnrelatedEvents(t *testing.T) {
	mo := NewMetricsObserver()

	// Should not panic on events without a summary or decision
	mo.OnEvent(Event{Type: EventParseStart, Data: "SHOW TABLES"})
	mo.OnEvent(Event{Type: EventMergeEnd, Data: "not a summary"})
	mo.OnEvent(Event{Type: EventMergeEnd, Data: MergeSummary{}})
}
