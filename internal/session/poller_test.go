package session

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"eunify/internal/domain"
)

func TestStatusPollerChecksImmediately(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newFixture(t)
	f.src.status = domain.ConnectionStatus{Connected: true, GremlinURL: "ws://graph:8182/gremlin"}

	poller := NewStatusPoller(f.session, time.Hour, zap.NewNop().Sugar())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	select {
	case ev := <-f.events:
		if ev.Type != EventStatusUpdated {
			t.Fatalf("event = %s, want %s", ev.Type, EventStatusUpdated)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no status update")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	poller.Wait()

	if !f.session.Snapshot().Status.Connected {
		t.Error("expected connected status")
	}
}

func TestStatusPollerTicks(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newFixture(t)
	poller := NewStatusPoller(f.session, 10*time.Millisecond, zap.NewNop().Sugar())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	// flip the status after the first check; a later tick must see it
	time.Sleep(30 * time.Millisecond)
	f.src.mu.Lock()
	f.src.status = domain.ConnectionStatus{Connected: true}
	f.src.mu.Unlock()

	deadline := time.After(5 * time.Second)
	for !f.session.Snapshot().Status.Connected {
		select {
		case <-deadline:
			t.Fatal("status never refreshed")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
}
