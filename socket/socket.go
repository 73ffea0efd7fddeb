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

// Package socket implements the Socket Core: a goroutine-per-connection
// wrapper around net.Conn (or a TLS-adapted net.Conn) that exposes a
// Context to a HandlerFunc and owns the single shutdown path every
// other component (TLS adapter, latency optimizer, handoff) attaches
// to.
package socket

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	liberr "github.com/sabouaram/tlssocket/errors"
	liblog "github.com/sabouaram/tlssocket/logger"
	"github.com/sabouaram/tlssocket/socket/handoff"
)

// TLSStater is implemented by connections that can report their TLS
// negotiation outcome, typically *tlsconn.Adapter. A plain net.Conn
// simply reports TLS as disabled.
type TLSStater interface {
	TLSState() (enabled bool, negotiatedProto string)
}

// Socket adapts a net.Conn into a socket.Context and drives its
// handler goroutine. It is the single owner of the connection's
// lifecycle: Close is idempotent and safe from any goroutine.
type Socket struct {
	id   uuid.UUID
	conn net.Conn
	ctx  context.Context
	stop context.CancelFunc

	closed   int32
	handoff  int32
	closeMu  sync.Mutex
	closeErr error

	log liblog.Logger
}

// New wraps conn for use by a HandlerFunc, deriving its Context from
// parent (context.Background() if nil).
func New(parent context.Context, conn net.Conn) *Socket {
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithCancel(parent)

	return &Socket{
		id:   uuid.New(),
		conn: conn,
		ctx:  ctx,
		stop: cancel,
		log:  liblog.New(ctx),
	}
}

// ID is a process-unique identifier assigned to this socket at
// construction, useful for correlating log lines and handoff
// snapshots across event loops.
func (s *Socket) ID() uuid.UUID {
	return s.id
}

// Serve runs fn on this socket's own goroutine, recovering a panic
// into ErrorHandlerPanic so one misbehaving handler cannot take down
// the process, and closes the socket once fn returns (unless a
// handoff is in progress).
func (s *Socket) Serve(fn HandlerFunc) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("connection handler panicked", ErrorHandlerPanic.Error(nil), r)
			}
			if atomic.LoadInt32(&s.handoff) == 0 {
				_ = s.Close()
			}
		}()

		fn(s)
	}()
}

func (s *Socket) Read(p []byte) (int, error) {
	if atomic.LoadInt32(&s.closed) == 1 {
		return 0, ErrorReadAfterShutdown.Error(nil)
	}
	return s.conn.Read(p)
}

func (s *Socket) Write(p []byte) (int, error) {
	if atomic.LoadInt32(&s.closed) == 1 {
		return 0, ErrorWriteAfterShutdown.Error(nil)
	}
	return s.conn.Write(p)
}

// Close is idempotent: repeated calls return ErrorSocketAlreadyClosed
// after the first, which actually tears down the connection.
func (s *Socket) Close() error {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()

	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return ErrorSocketAlreadyClosed.Error(nil)
	}

	s.stop()
	s.closeErr = s.conn.Close()
	return s.closeErr
}

// IsClosed reports whether Close has already run.
func (s *Socket) IsClosed() bool {
	return atomic.LoadInt32(&s.closed) == 1
}

func (s *Socket) Context() context.Context {
	return s.ctx
}

func (s *Socket) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

func (s *Socket) RemoteAddr() net.Addr {
	return s.conn.RemoteAddr()
}

func (s *Socket) SetDeadline(t time.Time) error {
	return s.conn.SetDeadline(t)
}

func (s *Socket) SetReadDeadline(t time.Time) error {
	return s.conn.SetReadDeadline(t)
}

func (s *Socket) SetWriteDeadline(t time.Time) error {
	return s.conn.SetWriteDeadline(t)
}

func (s *Socket) TLSState() (bool, string) {
	if st, ok := s.conn.(TLSStater); ok {
		return st.TLSState()
	}
	return false, ""
}

// Conn exposes the wrapped net.Conn, for components (latency
// optimizer, handoff) that must reach the raw file descriptor or
// re-wrap the connection.
func (s *Socket) Conn() net.Conn {
	return s.conn
}

// BeginHandoff marks the socket as being exported so Serve's deferred
// cleanup does not close the underlying connection once the handler
// returns; see socket/handoff.
func (s *Socket) BeginHandoff() liberr.Error {
	if !atomic.CompareAndSwapInt32(&s.handoff, 0, 1) {
		return ErrorHandoffInProgress.Error(nil)
	}
	return nil
}

// Handoff marks the socket as exported via BeginHandoff and produces a
// handoff.Snapshot the connection can be reconstructed from in another
// process. buffered is any bytes the caller already read off the
// socket but has not yet processed; they are replayed first by
// handoff.Import.
//
// An active TLS session cannot be carried across this boundary:
// crypto/tls keeps its read/write cipher state unexported, so there is
// no way to hand a mid-stream *tls.Conn off to another process without
// the importing side losing the ability to decrypt what follows. A
// TLS-enabled socket fails with ErrorTLSHandoffUnsupported instead of
// silently dropping the session.
func (s *Socket) Handoff(buffered []byte) (*handoff.Snapshot, liberr.Error) {
	if enabled, _ := s.TLSState(); enabled {
		return nil, ErrorTLSHandoffUnsupported.Error(nil)
	}

	if err := s.BeginHandoff(); err != nil {
		return nil, err
	}

	snap, e := handoff.Export(s.conn, buffered)
	if e != nil {
		atomic.StoreInt32(&s.handoff, 0)
		return nil, liberr.UnknownError.Error(e)
	}

	return snap, nil
}

var _ Context = (*Socket)(nil)
