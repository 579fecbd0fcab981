package bus

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/epping-food-court/api/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// countingRecompute counts invocations and stamps each snapshot with its
// sequence number via TotalOrders.
func countingRecompute() (RecomputeFunc, *atomic.Int32) {
	var calls atomic.Int32
	fn := func(ctx context.Context) (*model.StatsSnapshot, error) {
		n := calls.Add(1)
		return &model.StatsSnapshot{TotalOrders: int(n)}, nil
	}
	return fn, &calls
}

// collector gathers delivered snapshots for assertions.
type collector struct {
	mu    sync.Mutex
	snaps []model.StatsSnapshot
}

func (c *collector) callback(snap model.StatsSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snaps = append(c.snaps, snap)
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.snaps)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}

func TestNotify_DebouncesBursts(t *testing.T) {
	recompute, calls := countingRecompute()
	b := New(recompute, 30*time.Millisecond, time.Hour, testLogger())

	// A burst of rapid changes inside the window.
	for i := 0; i < 10; i++ {
		b.Notify()
		time.Sleep(time.Millisecond)
	}

	waitFor(t, time.Second, func() bool { return calls.Load() >= 1 })
	time.Sleep(60 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Fatalf("recompute ran %d times for one burst, want 1", got)
	}
}

func TestNotify_SeparateBurstsFireSeparately(t *testing.T) {
	recompute, calls := countingRecompute()
	b := New(recompute, 20*time.Millisecond, time.Hour, testLogger())

	b.Notify()
	waitFor(t, time.Second, func() bool { return calls.Load() == 1 })

	b.Notify()
	waitFor(t, time.Second, func() bool { return calls.Load() == 2 })
}

func TestSubscribe_ReceivesPublishedSnapshot(t *testing.T) {
	recompute, _ := countingRecompute()
	b := New(recompute, 10*time.Millisecond, time.Hour, testLogger())

	c := &collector{}
	unsubscribe := b.Subscribe(c.callback)
	defer unsubscribe()

	b.Notify()
	waitFor(t, time.Second, func() bool { return c.count() >= 1 })
}

func TestSubscribe_ReplaysLatestSnapshot(t *testing.T) {
	recompute, _ := countingRecompute()
	b := New(recompute, 10*time.Millisecond, time.Hour, testLogger())

	// Compute once before anyone subscribes.
	if _, err := b.Snapshot(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := &collector{}
	unsubscribe := b.Subscribe(c.callback)
	defer unsubscribe()

	// The late joiner still gets the current state without a new trigger.
	waitFor(t, time.Second, func() bool { return c.count() == 1 })
}

func TestUnsubscribe_Idempotent(t *testing.T) {
	recompute, _ := countingRecompute()
	b := New(recompute, 10*time.Millisecond, time.Hour, testLogger())

	stay := &collector{}
	keep := b.Subscribe(stay.callback)
	defer keep()

	gone := &collector{}
	unsubscribe := b.Subscribe(gone.callback)
	unsubscribe()
	unsubscribe()
	unsubscribe()

	b.Notify()
	waitFor(t, time.Second, func() bool { return stay.count() >= 1 })

	if gone.count() != 0 {
		t.Fatal("unsubscribed callback must not receive snapshots")
	}
}

func TestRun_HeartbeatRefreshes(t *testing.T) {
	recompute, calls := countingRecompute()
	b := New(recompute, time.Hour, 20*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	// One immediate refresh plus at least two heartbeat ticks.
	waitFor(t, time.Second, func() bool { return calls.Load() >= 3 })
}

func TestRun_StopsOnCancel(t *testing.T) {
	recompute, _ := countingRecompute()
	b := New(recompute, time.Hour, 10*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestSnapshot_ComputesOnDemand(t *testing.T) {
	recompute, calls := countingRecompute()
	b := New(recompute, time.Hour, time.Hour, testLogger())

	if b.Latest() != nil {
		t.Fatal("no snapshot should exist before the first computation")
	}

	snap, err := b.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.TotalOrders != 1 {
		t.Fatalf("snapshot sequence = %d, want 1", snap.TotalOrders)
	}

	// Second call serves the cached snapshot.
	if _, err := b.Snapshot(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("recompute ran %d times, want 1", got)
	}
}

func TestSnapshot_PropagatesError(t *testing.T) {
	wantErr := errors.New("data api down")
	b := New(func(ctx context.Context) (*model.StatsSnapshot, error) {
		return nil, wantErr
	}, time.Hour, time.Hour, testLogger())

	if _, err := b.Snapshot(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected recompute error, got: %v", err)
	}
}

func TestRefresh_FailureKeepsPreviousSnapshot(t *testing.T) {
	var fail atomic.Bool
	b := New(func(ctx context.Context) (*model.StatsSnapshot, error) {
		if fail.Load() {
			return nil, errors.New("data api down")
		}
		return &model.StatsSnapshot{TotalOrders: 7}, nil
	}, 10*time.Millisecond, time.Hour, testLogger())

	if _, err := b.Snapshot(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fail.Store(true)
	b.Notify()
	time.Sleep(50 * time.Millisecond)

	snap := b.Latest()
	if snap == nil || snap.TotalOrders != 7 {
		t.Fatal("failed recompute must leave the previous snapshot current")
	}
}

func TestDeliver_SlowSubscriberGetsFreshest(t *testing.T) {
	sub := &subscriber{inbox: make(chan model.StatsSnapshot, 2)}

	// Fill past capacity; the oldest entries get shed.
	for i := 1; i <= 5; i++ {
		deliver(sub, model.StatsSnapshot{TotalOrders: i})
	}

	var last model.StatsSnapshot
	for {
		select {
		case snap := <-sub.inbox:
			last = snap
			continue
		default:
		}
		break
	}
	if last.TotalOrders != 5 {
		t.Fatalf("freshest snapshot = %d, want 5", last.TotalOrders)
	}
}
