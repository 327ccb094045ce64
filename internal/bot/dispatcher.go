// internal/bot/dispatcher.go
package bot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/javajoker/shopbot/internal/utils"
)

type Handler interface {
	HandleEvent(ctx context.Context, ev Event) error
}

type HandlerFunc func(ctx context.Context, ev Event) error

func (f HandlerFunc) HandleEvent(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

var ErrDispatcherStopped = errors.New("dispatcher stopped")

type DispatcherOptions struct {
	Workers   int
	QueueSize int
	// RatePerSecond and Burst size the per-user token bucket. Zero disables
	// limiting.
	RatePerSecond float64
	Burst         int
	// EventTimeout bounds the handling of a single event.
	EventTimeout time.Duration
	// OnDrop is called for events rejected by the limiter.
	OnDrop func(ctx context.Context, ev Event)
}

// Dispatcher fans events out to a fixed pool of workers. Events of one user
// always land on the same worker, so they are handled in arrival order while
// different users proceed in parallel.
type Dispatcher struct {
	handler Handler
	opts    DispatcherOptions
	limiter *utils.KeyedLimiter[int64]
	queues  []chan Event
	wg      sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

func NewDispatcher(handler Handler, opts DispatcherOptions) *Dispatcher {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 64
	}
	if opts.EventTimeout <= 0 {
		opts.EventTimeout = 30 * time.Second
	}

	d := &Dispatcher{
		handler: handler,
		opts:    opts,
		queues:  make([]chan Event, opts.Workers),
	}
	if opts.RatePerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		d.limiter = utils.NewKeyedLimiter[int64](rate.Limit(opts.RatePerSecond), burst)
	}
	for i := range d.queues {
		d.queues[i] = make(chan Event, opts.QueueSize)
	}
	return d
}

// Start launches the workers. They exit once Stop has drained the queues.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, queue := range d.queues {
		d.wg.Add(1)
		go d.worker(ctx, i, queue)
	}
	if d.limiter != nil {
		go d.limiter.RunCleanup(ctx)
	}
}

// Submit queues ev for its user's worker. It blocks while that worker's
// queue is full.
func (d *Dispatcher) Submit(ctx context.Context, ev Event) error {
	if ev.TraceID == "" {
		ev.TraceID = uuid.NewString()
	}

	if d.limiter != nil && !d.limiter.Allow(ev.UserID) {
		if d.opts.OnDrop != nil {
			d.opts.OnDrop(ctx, ev)
		}
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrDispatcherStopped
	}

	select {
	case d.queues[d.shard(ev.UserID)] <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) shard(userID int64) int {
	return int(uint64(userID) % uint64(len(d.queues)))
}

// Stop closes the queues and waits for queued events to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, queue := range d.queues {
		close(queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) worker(ctx context.Context, id int, queue <-chan Event) {
	defer d.wg.Done()
	for ev := range queue {
		d.handle(ctx, id, ev)
	}
}

func (d *Dispatcher) handle(ctx context.Context, worker int, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"worker":   worker,
				"user_id":  ev.UserID,
				"trace_id": ev.TraceID,
				"panic":    r,
			}).Error("Recovered from panic in event handler")
		}
	}()

	// queued events still finish after the parent context is cancelled
	eventCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.opts.EventTimeout)
	defer cancel()

	_ = d.handler.HandleEvent(eventCtx, ev)
}
