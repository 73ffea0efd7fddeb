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

// Package handoff lets a live stream socket be exported from one event
// loop and imported into another: the underlying file descriptor is
// duplicated via *net.TCPConn.File, and any bytes already buffered but
// not yet delivered to the application are carried alongside it so the
// receiving loop can replay them before resuming reads from the fd.
package handoff

import (
	"net"
	"os"

	liberr "github.com/sabouaram/tlssocket/errors"
)

const (
	ErrorUnsupportedConn liberr.CodeError = iota + liberr.MinPkgSocketHandoff
	ErrorDuplicateFailed
	ErrorImportFailed
)

var isCodeError = false

// IsCodeError reports whether this package's error codes are registered.
func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = liberr.ExistInMapMessage(ErrorUnsupportedConn)
	liberr.RegisterIdFctMessage(ErrorUnsupportedConn, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case liberr.UnknownError:
		return ""
	case ErrorUnsupportedConn:
		return "connection does not support file descriptor handoff"
	case ErrorDuplicateFailed:
		return "failed to duplicate the connection's file descriptor"
	case ErrorImportFailed:
		return "failed to reconstruct a connection from the handed-off descriptor"
	}
	return ""
}

// Snapshot is an exported socket: a duplicated, independently-owned
// file descriptor plus any bytes the source loop had already read off
// the wire but not yet delivered to its handler.
type Snapshot struct {
	file     *os.File
	Buffered []byte

	LocalAddr  net.Addr
	RemoteAddr net.Addr
}

// Export duplicates conn's file descriptor into a Snapshot and closes
// this process's reference to the original net.Conn (the duplicated fd
// keeps the socket alive). buffered is any applicationData already
// pulled off conn that the importing side must see first.
func Export(conn net.Conn, buffered []byte) (*Snapshot, error) {
	type fileConn interface {
		File() (*os.File, error)
	}

	fc, ok := conn.(fileConn)
	if !ok {
		return nil, ErrorUnsupportedConn.Error(nil)
	}

	f, err := fc.File()
	if err != nil {
		return nil, ErrorDuplicateFailed.Error(err)
	}

	snap := &Snapshot{
		file:       f,
		Buffered:   append([]byte(nil), buffered...),
		LocalAddr:  conn.LocalAddr(),
		RemoteAddr: conn.RemoteAddr(),
	}

	_ = conn.Close()

	return snap, nil
}

// Import reconstructs a net.Conn from a Snapshot produced by Export,
// in this process or another one that received the descriptor over a
// unix-domain socket control message. The returned conn replays
// Snapshot.Buffered before any byte newly read off the fd, so callers
// never need to special-case the carried-over bytes.
func Import(snap *Snapshot) (net.Conn, error) {
	conn, err := net.FileConn(snap.file)
	if err != nil {
		return nil, ErrorImportFailed.Error(err)
	}
	_ = snap.file.Close()

	if len(snap.Buffered) == 0 {
		return conn, nil
	}

	return &replayConn{Conn: conn, pending: snap.Buffered}, nil
}

// replayConn prepends pending bytes to the first Read calls before
// falling through to the underlying connection.
type replayConn struct {
	net.Conn
	pending []byte
}

func (r *replayConn) Read(p []byte) (int, error) {
	if len(r.pending) == 0 {
		return r.Conn.Read(p)
	}

	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}
