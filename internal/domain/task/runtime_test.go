package task

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

type fakeOutcomeStore struct {
	mu    sync.Mutex
	items map[string]Outcome
}

func newFakeStore() *fakeOutcomeStore {
	return &fakeOutcomeStore{items: make(map[string]Outcome)}
}

func (s *fakeOutcomeStore) Put(_ context.Context, handle string, outcome Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[handle] = outcome
	return nil
}

func (s *fakeOutcomeStore) Get(_ context.Context, handle string) (Outcome, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	oc, ok := s.items[handle]
	return oc, ok, nil
}

func (s *fakeOutcomeStore) Close(context.Context) error { return nil }

func pollUntilTerminal(t *testing.T, m *Manager, handle string) Outcome {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		oc, err := m.Poll(context.Background(), handle)
		if err != nil {
			t.Fatalf("poll: %v", err)
		}
		if oc.Terminal() {
			return oc
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("job never reached a terminal outcome")
	return Outcome{}
}

func TestSubmitUnregisteredType(t *testing.T) {
	m := NewManager(Config{Workers: 1}, newFakeStore(), nil)
	defer m.Stop()

	if _, err := m.Submit(Type("nope"), nil); err == nil {
		t.Fatal("expected error for unregistered task type")
	}
}

func TestSuccessfulJobLifecycle(t *testing.T) {
	m := NewManager(Config{Workers: 2}, newFakeStore(), nil)
	defer m.Stop()

	m.Register("generate", func(tk *Task) error {
		tk.Result = Success(42, "Test Podcast", 3)
		return nil
	})

	handle, err := m.Submit("generate", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if handle == "" {
		t.Fatal("expected non-empty handle")
	}

	oc := pollUntilTerminal(t, m, handle)
	if oc.Status != StatusSuccess {
		t.Fatalf("status = %s, want success", oc.Status)
	}
	if oc.PodcastID != 42 || oc.Title != "Test Podcast" {
		t.Errorf("unexpected outcome: %+v", oc)
	}
}

func TestPollIsIdempotentAfterTerminal(t *testing.T) {
	m := NewManager(Config{Workers: 1}, newFakeStore(), nil)
	defer m.Stop()

	m.Register("generate", func(tk *Task) error {
		tk.Result = Success(1, "Stable", 0)
		return nil
	})

	handle, err := m.Submit("generate", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	first := pollUntilTerminal(t, m, handle)
	for i := 0; i < 5; i++ {
		again, err := m.Poll(context.Background(), handle)
		if err != nil {
			t.Fatalf("poll %d: %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("poll %d returned different outcome: %+v vs %+v", i, again, first)
		}
	}
}

func TestExecutorErrorBecomesErrorOutcome(t *testing.T) {
	m := NewManager(Config{Workers: 1}, newFakeStore(), nil)
	defer m.Stop()

	m.Register("failing", func(tk *Task) error {
		return errors.New("synthesis exploded")
	})

	handle, err := m.Submit("failing", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	oc := pollUntilTerminal(t, m, handle)
	if oc.Status != StatusError {
		t.Fatalf("status = %s, want error", oc.Status)
	}
	if oc.Error != "synthesis exploded" {
		t.Errorf("error message = %q", oc.Error)
	}
}

func TestPanickingExecutorIsContained(t *testing.T) {
	m := NewManager(Config{Workers: 1}, newFakeStore(), nil)
	defer m.Stop()

	m.Register("panicky", func(tk *Task) error {
		panic("boom")
	})

	handle, err := m.Submit("panicky", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	oc := pollUntilTerminal(t, m, handle)
	if oc.Status != StatusError {
		t.Fatalf("status = %s, want error", oc.Status)
	}
}

func TestMalformedResultIsNormalized(t *testing.T) {
	m := NewManager(Config{Workers: 1}, newFakeStore(), nil)
	defer m.Stop()

	m.Register("weird", func(tk *Task) error {
		tk.Result = map[string]string{"shape": "unexpected"}
		return nil
	})

	handle, err := m.Submit("weird", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	oc := pollUntilTerminal(t, m, handle)
	if oc.Status != StatusError {
		t.Fatalf("status = %s, want error", oc.Status)
	}
	if oc.Error != ErrUnexpectedResult {
		t.Errorf("error = %q, want %q", oc.Error, ErrUnexpectedResult)
	}
}

func TestUnknownHandlePollsAsPending(t *testing.T) {
	m := NewManager(Config{Workers: 1}, newFakeStore(), nil)
	defer m.Stop()

	oc, err := m.Poll(context.Background(), "never-submitted")
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if oc.Status != StatusProcessing || oc.State != StatePending {
		t.Errorf("outcome = %+v, want processing/PENDING", oc)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		result   any
		expected string
	}{
		{"terminal success passes through", Success(1, "t", 0), StatusSuccess},
		{"terminal error passes through", Failure("x"), StatusError},
		{"pointer outcome", func() any { oc := Failure("y"); return &oc }(), StatusError},
		{"processing is not terminal", Processing(StateStarted), StatusError},
		{"nil result", nil, StatusError},
		{"arbitrary map", map[string]int{"a": 1}, StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.result); got.Status != tt.expected {
				t.Errorf("Normalize() status = %s, want %s", got.Status, tt.expected)
			}
		})
	}
}
