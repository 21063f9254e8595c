// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package model

import (
	"context"
	"errors"
)

// Producer consumes the values delivered through a PushSink. It runs on
// its own goroutine and must return once the values channel is closed,
// which is the sink's cancellation signal. Returning nil or
// ErrPushCancelled both count as a normal exit; any other error is
// surfaced by Close.
type Producer func(ctx context.Context, values <-chan any) error

// PushSink bridges a value producer to a response being built
// incrementally. It is a single-producer single-consumer, cooperative
// construct: Append hands one value to the producer and waits for it to be
// accepted, so values arrive in exactly the call order of Append.
type PushSink struct {
	length int

	ctx      context.Context
	response any

	values chan any
	done   chan struct{}
	err    error

	onInit   func(*PushSink) error
	onFinish func()
	onError  func(error)

	bound  bool
	closed bool
}

// NewPushSink creates an unbound sink. onInit, when not nil, runs after
// Init binds the sink; onError, when not nil, is notified of a producer
// failure observed by Close. Both may be nil.
func NewPushSink(onInit func(*PushSink) error, onError func(error)) *PushSink {
	return &PushSink{onInit: onInit, onError: onError}
}

// Init binds the sink to a context, a response under construction and a
// producer, and starts the producer. It may be called only once per sink.
// onFinish runs unconditionally once the producer has terminated, whether
// or not it was cancelled. onError, when not nil, replaces the
// construction-time error callback.
func (p *PushSink) Init(ctx context.Context, response any, producer Producer, onFinish func(), onError func(error)) error {
	if p.bound {
		return configErrorf("push sink already initialized")
	}
	p.bound = true

	p.length = 0
	p.ctx = ctx
	p.response = response
	p.onFinish = onFinish
	if onError != nil {
		p.onError = onError
	}

	p.values = make(chan any)
	p.done = make(chan struct{})
	go func() {
		p.err = producer(ctx, p.values)
		close(p.done)
	}()

	if p.onInit != nil {
		return p.onInit(p)
	}
	return nil
}

// Context returns the bound context.
func (p *PushSink) Context() context.Context {
	return p.ctx
}

// Response returns the response the sink was bound to.
func (p *PushSink) Response() any {
	return p.response
}

// Len returns the number of values appended so far.
func (p *PushSink) Len() int {
	return p.length
}

// Append delivers v to the producer and blocks until the producer accepts
// it. It fails with ErrSinkClosed when the sink is unbound or closed, and
// with the producer's error when the producer already exited abnormally.
func (p *PushSink) Append(v any) error {
	if !p.bound || p.closed {
		return ErrSinkClosed
	}
	select {
	case p.values <- v:
		p.length++
		return nil
	case <-p.done:
		if p.err != nil && !errors.Is(p.err, ErrPushCancelled) {
			return p.err
		}
		return ErrSinkClosed
	}
}

// Close requests cancellation by closing the values channel and waits for
// the producer to terminate. The finish callback runs no matter how the
// producer exits. A producer returning nil or ErrPushCancelled closes
// cleanly; any other error is passed to the error callback and returned.
// Close cannot forcibly terminate a producer that ignores the signal.
func (p *PushSink) Close() error {
	if !p.bound || p.closed {
		return ErrSinkClosed
	}
	p.closed = true
	close(p.values)

	defer func() {
		if p.onFinish != nil {
			p.onFinish()
		}
	}()

	<-p.done
	if p.err != nil && !errors.Is(p.err, ErrPushCancelled) {
		if p.onError != nil {
			p.onError(p.err)
		}
		return p.err
	}
	return nil
}
