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

// Package tlsconn implements the TLS Adapter: it wraps a net.Conn with
// crypto/tls, driving handshake, application data, and latency-aware
// record sizing while classifying every failure into the error
// catalog's categories.
package tlsconn

import (
	"context"
	"crypto/tls"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sabouaram/tlssocket/scratch"
	"github.com/sabouaram/tlssocket/socket/latency"
	"github.com/sabouaram/tlssocket/socket/resume"
)

// pipeConn is the byte-IO back-end the TLS engine is driven through.
// It tees every byte read during the handshake into a bounded snapshot
// so socket/resume can gate recording on the exact byte count the
// engine has consumed, and it refuses writes issued from inside a Read
// call — the renegotiation-detection back-channel flag of spec.md
// §4.2/§9, translated to a per-goroutine marker instead of a C global.
type pipeConn struct {
	net.Conn

	tracker *resume.Tracker

	mu       sync.Mutex
	snapshot []byte

	insideRead int32
	renegFlag  int32
}

func newPipeConn(conn net.Conn, tracker *resume.Tracker) *pipeConn {
	return &pipeConn{Conn: conn, tracker: tracker}
}

func (p *pipeConn) Read(b []byte) (int, error) {
	atomic.StoreInt32(&p.insideRead, 1)
	defer atomic.StoreInt32(&p.insideRead, 0)

	n, err := p.Conn.Read(b)
	if n > 0 && p.tracker != nil {
		p.mu.Lock()
		p.snapshot = append(p.snapshot, b[:n]...)
		p.tracker.Snapshot(p.snapshot)
		p.mu.Unlock()
	}

	return n, err
}

func (p *pipeConn) Write(b []byte) (int, error) {
	if atomic.LoadInt32(&p.insideRead) == 1 {
		atomic.StoreInt32(&p.renegFlag, 1)
		return 0, errRenegotiation
	}
	return p.Conn.Write(b)
}

// renegotiated reports whether a write was attempted from inside a
// read during this pipeConn's lifetime.
func (p *pipeConn) renegotiated() bool {
	return atomic.LoadInt32(&p.renegFlag) == 1
}

var errRenegotiation = renegotiationError{}

type renegotiationError struct{}

func (renegotiationError) Error() string { return "tls: renegotiation attempted mid-read" }

// Adapter owns a *tls.Conn bound to a pipeConn, plus this module's
// latency optimizer and (server-side) resumption tracker.
type Adapter struct {
	pipe *pipeConn
	conn *tls.Conn
	lat  *latency.State
	tr   *resume.Tracker

	serverName string
	isClient   bool

	// MinRTT gates the latency optimizer the way spec.md §4.7 does:
	// below it the optimizer disables itself permanently. Zero means
	// "always engage when telemetry is available".
	MinRTT time.Duration
}

// NewServer wraps conn for a server-side handshake. cfg.WrapSession and
// cfg.UnwrapSession are overridden to route resumption through tracker
// when tracker is non-nil: WrapSession serializes the negotiated session
// into the ticket identity handed to the client, and UnwrapSession
// blocks in tracker.OnLookup with that identity and feeds the answered
// SessionData back into the handshake, so a resumed connection actually
// completes as a resumed connection instead of a full one.
func NewServer(conn net.Conn, cfg *tls.Config, lat *latency.State, tracker *resume.Tracker) *Adapter {
	pipe := newPipeConn(conn, tracker)

	effective := cfg.Clone()
	if tracker != nil {
		effective.WrapSession = func(cs tls.ConnectionState, ss *tls.SessionState) ([]byte, error) {
			return ss.Bytes()
		}
		effective.UnwrapSession = func(identity []byte, cs tls.ConnectionState) (*tls.SessionState, error) {
			answer := tracker.OnLookup(identity)
			if !answer.Found || len(answer.SessionData) == 0 {
				return nil, nil
			}
			return tls.ParseSessionState(answer.SessionData)
		}
	}

	return &Adapter{
		pipe: pipe,
		conn: tls.Server(pipe, effective),
		lat:  lat,
		tr:   tracker,
	}
}

// NewClient wraps conn for a client-side handshake against serverName.
func NewClient(conn net.Conn, cfg *tls.Config, lat *latency.State, serverName string) *Adapter {
	effective := cfg.Clone()
	effective.ServerName = serverName

	pipe := newPipeConn(conn, nil)

	return &Adapter{
		pipe:       pipe,
		conn:       tls.Client(pipe, effective),
		lat:        lat,
		serverName: serverName,
		isClient:   true,
	}
}

// Handshake runs the TLS handshake to completion, classifying any
// failure via Classify. On the client side, a successful handshake
// implies hostname validation against serverName already passed
// (crypto/tls performs it as part of Handshake when ServerName is set
// and InsecureSkipVerify is false).
func (a *Adapter) Handshake(ctx context.Context) error {
	if err := a.conn.HandshakeContext(ctx); err != nil {
		if a.pipe.renegotiated() {
			return errRenegotiation
		}
		return err
	}

	if a.isClient {
		state := a.conn.ConnectionState()
		if len(state.PeerCertificates) == 0 {
			return errNoCert
		}
	}

	return nil
}

var errNoCert = noCertError{}

type noCertError struct{}

func (noCertError) Error() string { return "ssl_no_cert" }

// Read decrypts application data, surfacing ssl_renegotiation_unsupported
// when the peer attempted a renegotiation during this call.
func (a *Adapter) Read(p []byte) (int, error) {
	n, err := a.conn.Read(p)
	if err != nil && a.pipe.renegotiated() {
		return n, errRenegotiation
	}
	return n, err
}

// writeScratch stages every outbound chunk Write produces before it is
// handed to the underlying tls.Conn, so repeated writes on a busy
// socket reuse one record-sized buffer instead of retaining slices of
// whatever the caller passed in.
var writeScratch = &scratch.Pool{Size: scratch.DefaultSize}

// Write encrypts p, splitting it into chunks sized by the latency
// optimizer (re-probing via PrepareForWrite whenever it is due, else
// using its cached RecordSize) so that no single tls.Conn.Write call
// produces a record larger than the policy's current choice. Each
// chunk is staged through writeScratch before being written.
func (a *Adapter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	total := 0
	for total < len(p) {
		size := a.writeSize()
		if size <= 0 || size > len(p)-total {
			size = len(p) - total
		}

		buf := writeScratch.Get()
		if cap(buf) < size {
			buf = make([]byte, size)
		}
		buf = buf[:size]
		copy(buf, p[total:total+size])

		n, err := a.conn.Write(buf)
		writeScratch.Put(buf)

		total += n
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

func (a *Adapter) writeSize() int {
	if a.lat == nil {
		return 1400
	}

	switch a.lat.Mode() {
	case latency.ModeTBD, latency.ModeNeedsUpdate:
		cs := a.conn.ConnectionState().CipherSuite
		return a.lat.PrepareForWrite(a.MinRTT, true, cs)
	default:
		return a.lat.RecordSize()
	}
}

// Close runs the TLS shutdown handshake before closing the underlying
// connection.
func (a *Adapter) Close() error {
	_ = a.conn.Close()
	return nil
}

// TLSState reports that TLS is active and the negotiated ALPN
// protocol, satisfying socket.TLSStater.
func (a *Adapter) TLSState() (bool, string) {
	return true, a.conn.ConnectionState().NegotiatedProtocol
}

// ConnectionState exposes the full negotiated state (cipher suite,
// version, session reuse) for the latency optimizer and tests.
func (a *Adapter) ConnectionState() tls.ConnectionState {
	return a.conn.ConnectionState()
}

func (a *Adapter) LocalAddr() net.Addr                { return a.conn.LocalAddr() }
func (a *Adapter) RemoteAddr() net.Addr               { return a.conn.RemoteAddr() }
func (a *Adapter) SetDeadline(t time.Time) error      { return a.conn.SetDeadline(t) }
func (a *Adapter) SetReadDeadline(t time.Time) error  { return a.conn.SetReadDeadline(t) }
func (a *Adapter) SetWriteDeadline(t time.Time) error { return a.conn.SetWriteDeadline(t) }

var _ net.Conn = (*Adapter)(nil)
