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

// Package server implements socket.Server for both stream networks
// (tcp, tcp4, tcp6, unix) -- accepting one connection per client and
// optionally driving it through the TLS adapter -- and connectionless
// networks (udp, udp4, udp6, unixgram), where there is no Accept and a
// single handler owns the whole listening endpoint for its lifetime.
package server

import (
	"context"
	"crypto/tls"
	"net"
	"os"
	"sync/atomic"

	liblog "github.com/sabouaram/tlssocket/logger"
	"github.com/sabouaram/tlssocket/socket"
	"github.com/sabouaram/tlssocket/socket/config"
	"github.com/sabouaram/tlssocket/socket/latency"
	"github.com/sabouaram/tlssocket/socket/metrics"
	"github.com/sabouaram/tlssocket/socket/resume"
	"github.com/sabouaram/tlssocket/socket/tlsconn"
)

// server backs both the stream and the datagram implementation of
// socket.Server; exactly one of ln/pc is set, matching cfg.Network.
type server struct {
	ln net.Listener
	pc net.PacketConn

	ctx    context.Context
	cancel context.CancelFunc

	handler socket.HandlerFunc
	cfg     config.Server
	log     liblog.Logger

	tlsEnabled int32
	tlsCfg     atomic.Value // *tls.Config

	open   int64
	closed int32

	metrics *metrics.Collectors
}

// New binds cfg.Address over cfg.Network. The returned socket.Server is
// bound and reachable immediately; call Listen to start serving it.
func New(ctx context.Context, handler socket.HandlerFunc, cfg config.Server) (socket.Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cctx, cancel := context.WithCancel(ctx)

	s := &server{
		ctx:     cctx,
		cancel:  cancel,
		handler: handler,
		cfg:     cfg,
		log:     liblog.New(cctx),
	}

	if cfg.TLS.Enabled && cfg.TLS.Config != nil {
		atomic.StoreInt32(&s.tlsEnabled, 1)
		s.tlsCfg.Store(cfg.TLS.Config.TlsConfig(""))
	}

	var err error
	if cfg.Network.IsDatagram() {
		s.pc, err = net.ListenPacket(cfg.Network.String(), cfg.Address)
	} else {
		s.ln, err = net.Listen(cfg.Network.String(), cfg.Address)
	}
	if err != nil {
		cancel()
		return nil, err
	}

	if cfg.Network.IsUnix() {
		applyUnixPerm(cfg.Address, cfg.PermFile, cfg.GroupPerm)
	}

	return s, nil
}

// applyUnixPerm sets the mode and, unless sentinel -1, the group
// ownership of a just-bound unix-domain socket path. Failures are
// ignored: a socket left at its default mode is still usable, just
// less restricted than asked.
func applyUnixPerm(path string, mode uint32, gid int) {
	if mode != 0 {
		_ = os.Chmod(path, os.FileMode(mode))
	}
	if gid >= 0 {
		_ = os.Chown(path, -1, gid)
	}
}

// Listen runs the accept loop (stream) or the single receive loop
// (datagram), blocking until the server is closed or ctx is done.
func (s *server) Listen(ctx context.Context) error {
	if ctx != nil {
		// Tie the caller's context to this server's own lifecycle:
		// either it ending or an explicit Close tears the listener
		// down, which is what actually unblocks Accept/ReadFrom.
		stop := context.AfterFunc(ctx, func() { _ = s.Close() })
		defer stop()
	}

	if s.pc != nil {
		return s.serveDatagram()
	}
	return s.acceptLoop()
}

func (s *server) acceptLoop() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if s.ctx.Err() != nil || atomic.LoadInt32(&s.closed) == 1 {
				return err
			}
			s.log.Error("accept failed", err, nil)
			continue
		}

		atomic.AddInt64(&s.open, 1)
		if s.metrics != nil {
			s.metrics.OpenConnections.Inc()
		}
		go s.handleStream(conn)
	}
}

func (s *server) handleStream(conn net.Conn) {
	defer func() {
		atomic.AddInt64(&s.open, -1)
		if s.metrics != nil {
			s.metrics.OpenConnections.Dec()
		}
	}()

	if tcpConn, ok := conn.(*net.TCPConn); ok && s.cfg.ConIdleTimeout > 0 {
		_ = tcpConn.SetKeepAlive(true)
	}

	var sc *socket.Socket

	if atomic.LoadInt32(&s.tlsEnabled) == 1 {
		cfg, _ := s.tlsCfg.Load().(*tls.Config)

		var lat *latency.State
		if tcpConn, ok := conn.(*net.TCPConn); ok {
			lat = latency.NewDefaultState(tcpConn)
		}

		tr := resume.NewTracker(nil)
		adapter := tlsconn.NewServer(conn, cfg, lat, tr)

		if err := adapter.Handshake(s.ctx); err != nil {
			s.log.Error("tls handshake failed", tlsconn.Classify(err).Error(err), nil)
			if s.metrics != nil {
				s.metrics.HandshakeFailed()
			}
			_ = conn.Close()
			return
		}
		if s.metrics != nil {
			s.metrics.HandshakeOK()
		}

		sc = socket.New(s.ctx, adapter)
	} else {
		sc = socket.New(s.ctx, conn)
	}

	done := make(chan struct{})
	sc.Serve(func(c socket.Context) {
		defer close(done)
		s.handler(c)
	})
	<-done
}

// serveDatagram wraps the listening packet connection as a single
// socket.Context and hands it to the handler once: a connectionless
// socket has no per-client Accept, so there is exactly one session for
// the endpoint's whole lifetime.
func (s *server) serveDatagram() error {
	atomic.AddInt64(&s.open, 1)
	if s.metrics != nil {
		s.metrics.OpenConnections.Inc()
	}
	defer func() {
		atomic.AddInt64(&s.open, -1)
		if s.metrics != nil {
			s.metrics.OpenConnections.Dec()
		}
	}()

	sc := socket.New(s.ctx, newPacketConn(s.pc))

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.handler(sc)
	}()

	select {
	case <-done:
	case <-s.ctx.Done():
	}
	return s.ctx.Err()
}

func (s *server) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil
	}
	s.cancel()
	if s.pc != nil {
		return s.pc.Close()
	}
	return s.ln.Close()
}

func (s *server) IsRunning() bool {
	return atomic.LoadInt32(&s.closed) == 0
}

func (s *server) OpenConnections() int64 {
	return atomic.LoadInt64(&s.open)
}

func (s *server) Addr() net.Addr {
	if s.pc != nil {
		return s.pc.LocalAddr()
	}
	return s.ln.Addr()
}

// SetMetrics attaches Prometheus collectors tracking open connections
// and handshake outcomes for this server.
func (s *server) SetMetrics(c *metrics.Collectors) {
	s.metrics = c
}

// SetTLS swaps the TLS configuration used for stream connections
// accepted from this point forward; it has no effect on a datagram
// server, which never negotiates TLS.
func (s *server) SetTLS(enabled bool, tlsCfg *tls.Config) {
	if !enabled {
		atomic.StoreInt32(&s.tlsEnabled, 0)
		return
	}
	s.tlsCfg.Store(tlsCfg)
	atomic.StoreInt32(&s.tlsEnabled, 1)
}

var _ socket.Server = (*server)(nil)
