package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/example/bfhl-service/events"
	"github.com/go-monolith/mono/pkg/types"
)

type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any) {}
func (m *mockLogger) Info(_ string, _ ...any)  {}
func (m *mockLogger) Warn(_ string, _ ...any)  {}
func (m *mockLogger) Error(_ string, _ ...any) {}
func (m *mockLogger) With(_ ...any) types.Logger {
	return m
}
func (m *mockLogger) WithModule(_ string) types.Logger {
	return m
}
func (m *mockLogger) WithError(_ error) types.Logger {
	return m
}

func TestModule_Name(t *testing.T) {
	m := NewModule(&mockLogger{})
	if m.Name() != "analytics" {
		t.Errorf("Name() = %q, want 'analytics'", m.Name())
	}
}

func TestModule_HandleEventAndGetStats(t *testing.T) {
	m := NewModule(&mockLogger{})
	ctx := context.Background()

	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	dispatched := []events.OperationDispatchedEvent{
		{Operation: "fibonacci", Success: true, Status: 200, DurationMs: 1, DispatchedAt: time.Now()},
		{Operation: "AI", Success: false, Status: 500, DurationMs: 30, DispatchedAt: time.Now()},
		{Operation: "", Success: false, Status: 400, DispatchedAt: time.Now()},
	}
	for _, e := range dispatched {
		if err := m.handleOperationDispatched(ctx, e, nil); err != nil {
			t.Fatalf("handleOperationDispatched() error = %v", err)
		}
	}

	summary, err := m.getStats(ctx, StatsRequest{}, nil)
	if err != nil {
		t.Fatalf("getStats() error = %v", err)
	}
	if summary.Total != 3 {
		t.Errorf("Total = %d, want 3", summary.Total)
	}
	if summary.Operations["AI"].Failure != 1 {
		t.Errorf("AI failures = %d, want 1", summary.Operations["AI"].Failure)
	}
	if summary.Operations[rejectedOperation].Failure != 1 {
		t.Errorf("rejected failures = %d, want 1", summary.Operations[rejectedOperation].Failure)
	}

	if err := m.Stop(ctx); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestNewStatsAdapter_NilContainerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil container")
		}
	}()
	NewStatsAdapter(nil)
}
