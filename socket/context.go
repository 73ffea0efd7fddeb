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

package socket

import (
	"context"
	"net"
	"time"
)

// Context is handed to a connection handler. It is a io.ReadWriteCloser
// scoped to a single accepted or dialed socket, plus the addressing and
// deadline controls a handler needs without reaching into net.Conn
// directly.
type Context interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Close() error

	Context() context.Context
	LocalAddr() net.Addr
	RemoteAddr() net.Addr

	SetDeadline(t time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error

	// TLSState returns whether the connection is protected by TLS and,
	// if so, the negotiated ALPN protocol (empty string otherwise).
	TLSState() (enabled bool, negotiatedProto string)
}

// HandlerFunc processes one accepted/dialed connection. It must return
// once the connection is finished with; the socket is closed by the
// caller when the handler returns unless it has already been closed.
type HandlerFunc func(c Context)

// Server is a bound listening endpoint. Listen runs its accept loop (or,
// for a connectionless network, its single receive loop) and blocks
// until the server is closed or ctx is done.
type Server interface {
	Listen(ctx context.Context) error
	Close() error
	IsRunning() bool
	OpenConnections() int64
	Addr() net.Addr
}

// Client is an outbound endpoint. Connect dials (or redials) the
// configured address; Read/Write/Close operate on whatever connection
// the last successful Connect established.
type Client interface {
	Connect(ctx context.Context) error
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Close() error
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
}
