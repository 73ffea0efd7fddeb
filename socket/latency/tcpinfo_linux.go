//go:build linux

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

package latency

import (
	"net"
	"time"

	"golang.org/x/sys/unix"
)

// LinuxSource reads TCP_INFO and sets TCP_NOTSENT_LOWAT through
// golang.org/x/sys/unix in place of hand-rolled syscall.Syscall6
// plumbing. One LinuxSource is bound to a single *net.TCPConn.
type LinuxSource struct {
	conn *net.TCPConn
}

// NewLinuxSource binds a Source to conn.
func NewLinuxSource(conn *net.TCPConn) *LinuxSource {
	return &LinuxSource{conn: conn}
}

var _ Source = (*LinuxSource)(nil)

func (s *LinuxSource) Telemetry() Telemetry {
	var out Telemetry

	raw, err := s.conn.SyscallConn()
	if err != nil {
		return out
	}

	ctrlErr := raw.Control(func(fd uintptr) {
		info, e := unix.GetsockoptTCPInfo(int(fd), unix.IPPROTO_TCP, unix.TCP_INFO)
		if e != nil {
			return
		}

		out.RTT = time.Duration(info.Rtt) * time.Microsecond
		out.MSS = int(info.Snd_mss)
		out.Cwnd = int(info.Snd_cwnd)
		out.Unacked = int(info.Unacked)
		out.Obtained = true
	})

	if ctrlErr != nil {
		return Telemetry{}
	}

	return out
}

func (s *LinuxSource) SetNotSentLowWat(bytes int) bool {
	raw, err := s.conn.SyscallConn()
	if err != nil {
		return false
	}

	ok := false
	ctrlErr := raw.Control(func(fd uintptr) {
		ok = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NOTSENT_LOWAT, bytes) == nil
	})

	return ctrlErr == nil && ok
}

// NewDefaultState returns a State backed by the platform's real
// TCP_INFO source, bound to conn.
func NewDefaultState(conn *net.TCPConn) *State {
	return NewState(NewLinuxSource(conn))
}
