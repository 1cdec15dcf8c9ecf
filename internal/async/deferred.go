// Package async provides one-shot result cells and retry policies for
// background loads.
package async

import (
	"context"
	"fmt"
)

// Deferred is a result that becomes available exactly once. Any number of
// goroutines may await it; they all observe the same value and error.
type Deferred[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs fn in a new goroutine and returns a Deferred for its result.
// fn receives ctx and should stop early when it is cancelled.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Deferred[T] {
	d := &Deferred[T]{done: make(chan struct{})}
	go func() {
		defer close(d.done)
		defer func() {
			if r := recover(); r != nil {
				d.err = fmt.Errorf("panic in deferred load: %v", r)
			}
		}()
		d.val, d.err = fn(ctx)
	}()
	return d
}

// Resolved returns a Deferred that is already complete.
func Resolved[T any](val T, err error) *Deferred[T] {
	d := &Deferred[T]{done: make(chan struct{}), val: val, err: err}
	close(d.done)
	return d
}

// Await blocks until the result is available or ctx is done. Cancelling
// ctx only stops this caller from waiting; the underlying work continues.
func (d *Deferred[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.val, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed once the result is available.
func (d *Deferred[T]) Done() <-chan struct{} {
	return d.done
}

// Ready reports whether the result is available without blocking.
func (d *Deferred[T]) Ready() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}
