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

// Package metrics exposes a small set of Prometheus collectors for the
// stream-socket server: open connection count and TLS handshake
// outcomes, registered against a caller-supplied registry so tests and
// multiple server instances never collide on the default one.
package metrics

import (
	prmsdk "github.com/prometheus/client_golang/prometheus"
)

// Collectors holds the metrics a socket/server.Server reports. The
// zero value is unusable; build one with NewCollectors.
type Collectors struct {
	OpenConnections prmsdk.Gauge
	Handshakes      *prmsdk.CounterVec
}

// NewCollectors builds and registers a fresh set of collectors against
// reg. Passing prometheus.NewRegistry() keeps concurrently-running test
// servers from fighting over the global default registry.
func NewCollectors(reg prmsdk.Registerer, namespace string) *Collectors {
	c := &Collectors{
		OpenConnections: prmsdk.NewGauge(prmsdk.GaugeOpts{
			Namespace: namespace,
			Name:      "open_connections",
			Help:      "Number of currently accepted, in-flight connections.",
		}),
		Handshakes: prmsdk.NewCounterVec(prmsdk.CounterOpts{
			Namespace: namespace,
			Name:      "tls_handshakes_total",
			Help:      "TLS handshakes grouped by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(c.OpenConnections, c.Handshakes)
	return c
}

// HandshakeOK records a successful handshake.
func (c *Collectors) HandshakeOK() {
	if c == nil {
		return
	}
	c.Handshakes.WithLabelValues("ok").Inc()
}

// HandshakeFailed records a failed handshake.
func (c *Collectors) HandshakeFailed() {
	if c == nil {
		return
	}
	c.Handshakes.WithLabelValues("failed").Inc()
}
