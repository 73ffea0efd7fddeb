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

package server

import (
	"errors"
	"net"
	"time"
)

// packetConn adapts a net.PacketConn (udp, unixgram) into the net.Conn
// shape socket.Socket expects, so a connectionless listener can still be
// handed to a socket.HandlerFunc as one long-lived Context. Every
// incoming datagram is treated as a chunk of one continuous stream;
// the originating address of each datagram is discarded.
type packetConn struct {
	pc net.PacketConn
}

func newPacketConn(pc net.PacketConn) *packetConn {
	return &packetConn{pc: pc}
}

func (p *packetConn) Read(b []byte) (int, error) {
	n, _, err := p.pc.ReadFrom(b)
	return n, err
}

// Write is unsupported: a connectionless server listens, it does not
// know which peer a reply should target without also tracking the
// sender address per read, which this adapter does not do.
func (p *packetConn) Write([]byte) (int, error) {
	return 0, errors.New("write not supported on a connectionless listening socket")
}

func (p *packetConn) Close() error {
	return p.pc.Close()
}

func (p *packetConn) LocalAddr() net.Addr {
	return p.pc.LocalAddr()
}

func (p *packetConn) RemoteAddr() net.Addr {
	return nil
}

func (p *packetConn) SetDeadline(t time.Time) error {
	return p.pc.SetDeadline(t)
}

func (p *packetConn) SetReadDeadline(t time.Time) error {
	return p.pc.SetReadDeadline(t)
}

func (p *packetConn) SetWriteDeadline(t time.Time) error {
	return p.pc.SetWriteDeadline(t)
}

var _ net.Conn = (*packetConn)(nil)
