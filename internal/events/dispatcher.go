package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/order"

	"go.uber.org/zap"
)

var (
	ErrQueueFull        = errors.New("event queue is full")
	ErrDispatcherClosed = errors.New("event dispatcher is closed")
)

// Subscriber receives order-created events from a Dispatcher.
type Subscriber interface {
	Name() string
	HandleOrderCreated(ctx context.Context, ev OrderCreated) error
}

type envelope struct {
	event     OrderCreated
	requestID string
}

// Dispatcher queues order-created events and delivers them to every
// subscriber from a single background goroutine. A failing or panicking
// subscriber is logged and skipped; it never affects the other subscribers
// or the producer.
type Dispatcher struct {
	queue   chan envelope
	subs    []Subscriber
	metrics *metrics.Registry

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(size int, reg *metrics.Registry, subs ...Subscriber) *Dispatcher {
	if size <= 0 {
		size = 1
	}
	if reg == nil {
		reg = metrics.Default()
	}
	return &Dispatcher{
		queue:   make(chan envelope, size),
		subs:    subs,
		metrics: reg,
		done:    make(chan struct{}),
	}
}

// NotifyOrderCreated enqueues the event without blocking.
func (d *Dispatcher) NotifyOrderCreated(ctx context.Context, o *order.Order) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	env := envelope{event: NewOrderCreated(o), requestID: logger.RequestIDFrom(ctx)}
	select {
	case d.queue <- env:
		return nil
	default:
		d.metrics.Counter("event_dropped").Inc()
		return ErrQueueFull
	}
}

// Run delivers queued events until Close has drained the queue or ctx is
// cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	defer close(d.done)

	for {
		select {
		case env, ok := <-d.queue:
			if !ok {
				return
			}
			d.deliver(ctx, env)
		case <-ctx.Done():
			return
		}
	}
}

// Close stops accepting events and waits for Run to deliver the ones already
// queued.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) deliver(ctx context.Context, env envelope) {
	if env.requestID != "" {
		ctx = logger.WithRequestID(ctx, env.requestID)
	}
	for _, sub := range d.subs {
		if err := d.handle(ctx, sub, env.event); err != nil {
			d.metrics.Counter("event_delivery_failure").Inc()
			logger.FromCtx(ctx).Error("subscriber failed",
				zap.String("subscriber", sub.Name()),
				zap.Uint("order_id", env.event.OrderID),
				zap.Error(err),
			)
			continue
		}
		d.metrics.Counter("event_delivered").Inc()
	}
}

func (d *Dispatcher) handle(ctx context.Context, sub Subscriber, ev OrderCreated) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panic: %v", r)
		}
	}()
	return sub.HandleOrderCreated(ctx, ev)
}
