/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package resume implements the server-side async session-resumption
// protocol: a RECORD/REQUEST_SENT/COMPLETE state machine gating when an
// external session lookup is dispatched, and a bounded snapshot of the
// pre-handshake bytes so a resumption attempt can be "replayed" once the
// external answer arrives.
//
// crypto/tls does not expose the session-cache get/put/remove callback
// triple this protocol is grounded on; tls.Config.UnwrapSession is the
// synchronous hook fired with the ticket identity the client presented,
// once the handshake actually needs a session to resume, so it is used
// as the single dispatch point: blocking inside it reproduces the
// observable suspend/resume behavior (handshake stalls, external
// resolver answers, handshake continues with the resumed session) and
// its return value feeds directly back into the handshake instead of
// being discarded.
package resume

import (
	"sync"
)

// State is the per-handshake async-resumption state.
type State uint8

const (
	// StateCompleteNoAsync is the state for handshakes with no resumption
	// getter registered at all: the protocol never engages.
	StateCompleteNoAsync State = iota
	StateRecord
	StateRequestSent
	StateComplete
)

// SnapshotLimit is the byte threshold from spec: encrypted input of at
// most this many bytes is snapshotted for replay; beyond it resumption
// recording is abandoned.
const SnapshotLimit = 1024

// Answer is the external resolver's reply to a dispatched lookup.
type Answer struct {
	SessionData []byte
	Found       bool
}

// Resolver dispatches an async session lookup for id, returning a
// channel the external subsystem answers on exactly once.
type Resolver func(id []byte) <-chan Answer

// Tracker drives one handshake's resumption state machine.
type Tracker struct {
	Resolver Resolver

	mu       sync.Mutex
	state    State
	snapshot []byte
	resolved Answer
}

// NewTracker returns a Tracker with no resolver: state stays
// StateCompleteNoAsync and Begin/OnLookup are no-ops, matching a
// context with no async getter registered.
func NewTracker(resolver Resolver) *Tracker {
	t := &Tracker{Resolver: resolver}
	if resolver != nil {
		t.state = StateRecord
	} else {
		t.state = StateCompleteNoAsync
	}
	return t
}

// State reports the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Snapshot records the pre-handshake bytes seen so far. Call it before
// OnLookup with the cumulative encrypted-input bytes; once more than
// SnapshotLimit bytes have arrived while still in StateRecord, recording
// is abandoned and the state is forced to StateComplete (no resumption
// lookup will be attempted for this handshake).
func (t *Tracker) Snapshot(buffered []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRecord {
		return
	}

	if len(buffered) > SnapshotLimit {
		t.state = StateComplete
		t.snapshot = nil
		return
	}

	t.snapshot = append([]byte(nil), buffered...)
}

// HasSnapshot reports whether a replayable snapshot was captured.
func (t *Tracker) HasSnapshot() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot != nil
}

// OnLookup is invoked once per handshake, from inside
// tls.Config.UnwrapSession, with the resumption identifier the
// client presented (possibly empty, meaning no resumption was
// attempted). It promotes StateRecord to StateRequestSent, dispatches
// the resolver, and blocks until the external answer arrives, after
// which the state is StateComplete and the answer is cached for the
// replayed handshake attempt (which re-enters OnLookup and finds
// StateComplete, returning the cached answer without redispatching).
func (t *Tracker) OnLookup(id []byte) Answer {
	t.mu.Lock()

	switch t.state {
	case StateComplete:
		a := t.resolved
		t.mu.Unlock()
		return a

	case StateRecord:
		t.state = StateRequestSent
		resolver := t.Resolver
		t.mu.Unlock()

		var a Answer
		if resolver != nil {
			a = <-resolver(id)
		}

		t.mu.Lock()
		t.resolved = a
		t.state = StateComplete
		t.mu.Unlock()
		return a

	default:
		// StateCompleteNoAsync or an unexpected re-entrant call: report
		// not-found without dispatching anything.
		t.mu.Unlock()
		return Answer{}
	}
}
