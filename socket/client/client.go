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

// Package client implements socket.Client: a dial target that can be
// (re)connected on demand, optionally driving stream connections
// through the TLS adapter. Connect replaces whatever connection was
// open before, which is what lets a caller like the syslog writer hook
// retry a dead connection by calling Connect again before the next
// Write.
package client

import (
	"context"
	"errors"
	"net"
	"sync"

	liblog "github.com/sabouaram/tlssocket/logger"
	"github.com/sabouaram/tlssocket/socket"
	"github.com/sabouaram/tlssocket/socket/config"
	"github.com/sabouaram/tlssocket/socket/latency"
	"github.com/sabouaram/tlssocket/socket/tlsconn"
)

var errNotConnected = errors.New("client not connected")

type client struct {
	cfg config.Client
	log liblog.Logger

	mu   sync.Mutex
	conn net.Conn
}

// New validates cfg and returns a socket.Client that dials lazily: no
// network I/O happens until Connect is called.
func New(cfg config.Client, log liblog.Logger) (socket.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = liblog.New(context.Background())
	}
	return &client{cfg: cfg, log: log}, nil
}

func (c *client) Connect(ctx context.Context) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, c.cfg.Network.String(), c.cfg.Address)
	if err != nil {
		return err
	}

	if c.cfg.TLS.Enabled && c.cfg.TLS.Config != nil {
		serverName := c.cfg.TLS.ServerName
		tlsCfg := c.cfg.TLS.Config.TlsConfig(serverName)

		var lat *latency.State
		if tcpConn, ok := conn.(*net.TCPConn); ok {
			lat = latency.NewDefaultState(tcpConn)
		}

		adapter := tlsconn.NewClient(conn, tlsCfg, lat, serverName)
		if err := adapter.Handshake(ctx); err != nil {
			_ = conn.Close()
			return tlsconn.Classify(err).Error(err)
		}
		conn = adapter
	}

	c.mu.Lock()
	old := c.conn
	c.conn = conn
	c.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return nil
}

func (c *client) current() net.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

func (c *client) Read(p []byte) (int, error) {
	conn := c.current()
	if conn == nil {
		return 0, errNotConnected
	}
	return conn.Read(p)
}

func (c *client) Write(p []byte) (int, error) {
	conn := c.current()
	if conn == nil {
		return 0, errNotConnected
	}
	return conn.Write(p)
}

func (c *client) Close() error {
	conn := c.current()
	if conn == nil {
		return nil
	}
	return conn.Close()
}

func (c *client) LocalAddr() net.Addr {
	conn := c.current()
	if conn == nil {
		return nil
	}
	return conn.LocalAddr()
}

func (c *client) RemoteAddr() net.Addr {
	conn := c.current()
	if conn == nil {
		return nil
	}
	return conn.RemoteAddr()
}

var _ socket.Client = (*client)(nil)
