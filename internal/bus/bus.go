// Package bus implements the single-consumer typed channel that feeds the
// Screen's dispatch loop. Producers (client sockets, pty readers, plugin
// host) each hold a Sender and never block each other; the Screen drains
// the shared channel one instruction at a time, to completion, with no
// preemption.
package bus

import (
	"context"
	"errors"
)

// ErrClosed is returned by Send once the bus has been closed.
var ErrClosed = errors.New("bus: closed")

// Bus is a FIFO channel of T with many senders and a single receiver.
type Bus[T any] struct {
	ch     chan T
	closed chan struct{}
}

// New creates a Bus with the given buffer depth. A depth of 0 makes Send
// block until the receiver is ready, matching a direct handoff.
func New[T any](depth int) *Bus[T] {
	return &Bus[T]{
		ch:     make(chan T, depth),
		closed: make(chan struct{}),
	}
}

// Sender is the producer-facing half of a Bus, handed out to peer
// subsystems so they cannot close or receive from the bus themselves.
type Sender[T any] struct {
	b *Bus[T]
}

// Sender returns a handle producers use to enqueue messages.
func (b *Bus[T]) Sender() Sender[T] { return Sender[T]{b: b} }

// Send enqueues msg, blocking if the bus is full. It returns ErrClosed if
// the bus has been closed, and ctx.Err() if ctx is cancelled first.
func (s Sender[T]) Send(ctx context.Context, msg T) error {
	select {
	case <-s.b.closed:
		return ErrClosed
	default:
	}
	select {
	case s.b.ch <- msg:
		return nil
	case <-s.b.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recv blocks until a message is available, the bus is closed, or ctx is
// cancelled. The dispatch loop calls this once per iteration and processes
// the result to completion before calling it again.
func (b *Bus[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	select {
	case msg := <-b.ch:
		return msg, nil
	case <-b.closed:
		select {
		case msg := <-b.ch:
			return msg, nil
		default:
			return zero, ErrClosed
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Close stops accepting new sends. Messages already queued remain
// available to Recv until drained.
func (b *Bus[T]) Close() {
	select {
	case <-b.closed:
	default:
		close(b.closed)
	}
}
