/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package startStop gives any "run until cancelled" function a uniform
// Start/Stop/Restart lifecycle with uptime and error tracking, so
// callers (the write aggregator, the TCP accept loop) don't each
// reinvent their own goroutine supervision.
package startStop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// StartStop supervises a single background function across repeated
// Start/Stop cycles.
type StartStop interface {
	// Start launches the configured start function on its own
	// goroutine and returns immediately; a previous run still in
	// flight is stopped first. Errors from the function are recorded,
	// not returned.
	Start(ctx context.Context) error

	// Stop cancels the running instance and invokes the configured
	// stop function, recording any error it returns.
	Stop(ctx context.Context) error

	// Restart is Stop followed by Start.
	Restart(ctx context.Context) error

	// IsRunning reports whether the start function is currently
	// executing.
	IsRunning() bool

	// Uptime reports how long the current run has been active, or
	// zero when not running.
	Uptime() time.Duration

	// ErrorsLast returns the most recently recorded error, or nil.
	ErrorsLast() error

	// ErrorsList returns every error recorded during the current run.
	ErrorsList() []error
}

type runFunc func(ctx context.Context) error

type startStop struct {
	start runFunc
	stop  runFunc

	mu        sync.Mutex
	cancel    context.CancelFunc
	startedAt time.Time
	running   bool
	errs      []error
}

// New returns a StartStop driving start on Start and stop on Stop. Either
// may be nil: calling the corresponding method then records an
// "invalid start/stop function" error instead of panicking.
func New(start, stop func(ctx context.Context) error) StartStop {
	return &startStop{
		start: start,
		stop:  stop,
	}
}

func (s *startStop) addErr(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.errs = append(s.errs, err)
	s.mu.Unlock()
}

func (s *startStop) Start(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.startedAt = time.Now()
	s.running = true
	s.errs = nil
	fn := s.start
	s.mu.Unlock()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.addErr(fmt.Errorf("panic in start function: %v", r))
			}
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()

		if fn == nil {
			s.addErr(errors.New("invalid start function"))
			return
		}

		s.addErr(fn(ctx))
	}()

	return nil
}

func (s *startStop) Stop(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	s.mu.Lock()
	cancel := s.cancel
	fn := s.stop
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				s.addErr(fmt.Errorf("panic in stop function: %v", r))
			}
		}()

		if fn == nil {
			s.addErr(errors.New("invalid stop function"))
			return
		}

		s.addErr(fn(parent))
	}()

	return nil
}

func (s *startStop) Restart(ctx context.Context) error {
	_ = s.Stop(ctx)
	return s.Start(ctx)
}

func (s *startStop) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *startStop) Uptime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return 0
	}
	return time.Since(s.startedAt)
}

func (s *startStop) ErrorsLast() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.errs) == 0 {
		return nil
	}
	return s.errs[len(s.errs)-1]
}

func (s *startStop) ErrorsList() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]error, len(s.errs))
	copy(out, s.errs)
	return out
}

var _ StartStop = (*startStop)(nil)
