/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package semaphore bounds the number of concurrently running workers a
// caller (the write aggregator's async callback, any future pooled
// dispatcher) may have in flight at once.
package semaphore

import (
	"context"

	xsem "golang.org/x/sync/semaphore"
)

// Semaphore hands out a bounded number of worker slots. A negative or
// zero weight means unlimited: NewWorker and NewWorkerTry always
// succeed and DeferWorker is a no-op.
type Semaphore interface {
	// Weighted returns the configured concurrency limit, or a
	// negative value when unlimited.
	Weighted() int64

	// NewWorker blocks until a slot is free or ctx is done.
	NewWorker() error

	// NewWorkerTry acquires a slot without blocking, reporting
	// whether one was available.
	NewWorkerTry() bool

	// DeferWorker releases a slot acquired by NewWorker or
	// NewWorkerTry.
	DeferWorker()

	// DeferMain releases every resource owned by the semaphore. Safe
	// to call more than once.
	DeferMain()

	// Clone returns a new, independent Semaphore with the same
	// weight and context.
	Clone() Semaphore
}

type semaphore struct {
	ctx    context.Context
	cancel context.CancelFunc
	weight int64
	sem    *xsem.Weighted
}

// New returns a Semaphore bounding concurrency to max simultaneous
// workers (unlimited when max <= 0), derived from ctx. progress is
// accepted for compatibility with callers that request a progress
// display; this implementation has none, so it is ignored.
func New(ctx context.Context, max int, progress bool) Semaphore {
	if ctx == nil {
		ctx = context.Background()
	}
	cctx, cancel := context.WithCancel(ctx)

	s := &semaphore{
		ctx:    cctx,
		cancel: cancel,
		weight: int64(max),
	}
	if s.weight > 0 {
		s.sem = xsem.NewWeighted(s.weight)
	}
	return s
}

func (s *semaphore) Weighted() int64 {
	return s.weight
}

func (s *semaphore) NewWorker() error {
	if s.sem == nil {
		return nil
	}
	return s.sem.Acquire(s.ctx, 1)
}

func (s *semaphore) NewWorkerTry() bool {
	if s.sem == nil {
		return true
	}
	return s.sem.TryAcquire(1)
}

func (s *semaphore) DeferWorker() {
	if s.sem == nil {
		return
	}
	s.sem.Release(1)
}

func (s *semaphore) DeferMain() {
	s.cancel()
}

func (s *semaphore) Clone() Semaphore {
	return New(s.ctx, int(s.weight), false)
}

var _ Semaphore = (*semaphore)(nil)
