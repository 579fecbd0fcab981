// Package bus delivers fresh stats snapshots to dashboard subscribers.
// Two independent triggers feed one idempotent recompute-and-broadcast:
// a coarse heartbeat that keeps panels from going stale, and a coalescing
// debounce that collapses bursts of mutation notifications into a single
// recomputation.
package bus

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/epping-food-court/api/internal/model"
)

// RecomputeFunc produces a fresh snapshot from the current order and
// inventory views.
type RecomputeFunc func(ctx context.Context) (*model.StatsSnapshot, error)

// subscriber owns a buffered inbox drained by its own goroutine, so
// delivery is FIFO per subscriber and a slow callback cannot stall the
// others.
type subscriber struct {
	inbox chan model.StatsSnapshot
	done  chan struct{}
}

// Bus is the live update channel between the stats aggregator and the
// dashboard panels.
type Bus struct {
	recompute RecomputeFunc
	delay     time.Duration // debounce window
	interval  time.Duration // heartbeat period
	log       *slog.Logger

	mu       sync.Mutex
	subs     map[uuid.UUID]*subscriber
	latest   *model.StatsSnapshot
	debounce *time.Timer
}

func New(recompute RecomputeFunc, delay, interval time.Duration, log *slog.Logger) *Bus {
	return &Bus{
		recompute: recompute,
		delay:     delay,
		interval:  interval,
		log:       log,
		subs:      make(map[uuid.UUID]*subscriber),
	}
}

// Subscribe registers fn and returns its unsubscribe function. If a
// snapshot has already been computed it is delivered immediately, so new
// panels never render empty. Unsubscribing is idempotent, affects no
// other subscriber, and means any recompute already in flight is simply
// never delivered to fn.
func (b *Bus) Subscribe(fn func(model.StatsSnapshot)) func() {
	sub := &subscriber{
		inbox: make(chan model.StatsSnapshot, 16),
		done:  make(chan struct{}),
	}
	go func() {
		for {
			select {
			case snap := <-sub.inbox:
				fn(snap)
			case <-sub.done:
				return
			}
		}
	}()

	id := uuid.New()
	b.mu.Lock()
	b.subs[id] = sub
	latest := b.latest
	b.mu.Unlock()

	if latest != nil {
		deliver(sub, *latest)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(sub.done)
		})
	}
}

// Notify schedules a debounced recompute. Each call reschedules the one
// pending timer rather than stacking a new one, so N rapid changes inside
// the window fire exactly one recomputation.
func (b *Bus) Notify() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.debounce == nil {
		b.debounce = time.AfterFunc(b.delay, b.refresh)
		return
	}
	b.debounce.Reset(b.delay)
}

// Run drives the heartbeat until ctx is cancelled. It performs one
// immediate refresh so subscribers have a snapshot from the start. The
// heartbeat never consults the debounce state; both may fire for the same
// change, which is fine because recomputation is idempotent.
func (b *Bus) Run(ctx context.Context) error {
	b.refresh()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			b.refresh()
		}
	}
}

// Latest returns the most recently computed snapshot, or nil before the
// first computation.
func (b *Bus) Latest() *model.StatsSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latest == nil {
		return nil
	}
	snap := *b.latest
	return &snap
}

// Snapshot returns the latest snapshot, computing one synchronously when
// none exists yet.
func (b *Bus) Snapshot(ctx context.Context) (*model.StatsSnapshot, error) {
	if snap := b.Latest(); snap != nil {
		return snap, nil
	}
	snap, err := b.recompute(ctx)
	if err != nil {
		return nil, err
	}
	b.publish(snap)
	return snap, nil
}

// refresh recomputes and broadcasts. Failures are logged and the previous
// snapshot stays current; the next trigger retries naturally.
func (b *Bus) refresh() {
	snap, err := b.recompute(context.Background())
	if err != nil {
		b.log.Warn("stats recompute failed", "error", err)
		return
	}
	b.publish(snap)
}

func (b *Bus) publish(snap *model.StatsSnapshot) {
	b.mu.Lock()
	b.latest = snap
	subs := make([]*subscriber, 0, len(b.subs))
	for _, sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.Unlock()

	for _, sub := range subs {
		deliver(sub, *snap)
	}
}

// deliver enqueues without blocking. A full inbox sheds the oldest
// snapshot first: later snapshots supersede earlier ones, so the freshest
// must get through.
func deliver(sub *subscriber, snap model.StatsSnapshot) {
	for {
		select {
		case sub.inbox <- snap:
			return
		default:
			select {
			case <-sub.inbox:
			default:
			}
		}
	}
}
