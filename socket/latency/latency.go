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

// Package latency picks the per-write TLS record size from live TCP
// telemetry (RTT, congestion window, unacked segments, MSS) instead of
// relying on crypto/tls's own adaptive record sizing, which this
// module always disables via DynamicRecordSizingDisabled.
package latency

import (
	"crypto/tls"
	"math"
	"time"
)

// Mode is the latency-optimization state machine's current mode.
type Mode uint8

const (
	ModeTBD Mode = iota
	ModeDisabled
	ModeUseTinyRecords
	ModeUseLargeRecords
	ModeNeedsUpdate
)

// SizeMax signals "no write-size cap" the way the original C API
// returns SIZE_MAX.
const SizeMax = math.MaxInt

// Overhead maps a cipher suite to its per-TLS-record overhead in
// bytes. Each cipher maps explicitly; there is no fall-through between
// cases, unlike the switch this module is grounded on, whose missing
// break statements between cipher cases left it ambiguous whether
// fall-through was intended.
func Overhead(cipherSuite uint16) (overhead int, ok bool) {
	switch cipherSuite {
	case tls.TLS_RSA_WITH_AES_128_GCM_SHA256,
		tls.TLS_RSA_WITH_AES_256_GCM_SHA384,
		tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
		tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
		tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
		tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
		tls.TLS_AES_128_GCM_SHA256,
		tls.TLS_AES_256_GCM_SHA384:
		return 5 + 8 + 12, true
	case tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
		tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
		tls.TLS_CHACHA20_POLY1305_SHA256:
		return 5 + 16, true
	default:
		return 0, false
	}
}

// Telemetry is one TCP_INFO-equivalent sample: round-trip time,
// maximum segment size, congestion window (segments), and unacked
// segments.
type Telemetry struct {
	RTT      time.Duration
	MSS      int
	Cwnd     int
	Unacked  int
	Obtained bool
}

// Source fetches live telemetry for one bound connection and applies
// the TCP_NOTSENT_LOWAT knob to it; see tcpinfo_linux.go for the real
// implementation (one Source per *net.TCPConn) and tcpinfo_other.go
// for the disabled stub on other platforms.
type Source interface {
	Telemetry() Telemetry
	SetNotSentLowWat(bytes int) bool
}

// State is the per-socket latency-optimization state machine.
type State struct {
	Source Source

	mode     Mode
	mss      int
	overhead int
}

// NewState returns a State in mode TBD, using src for telemetry.
func NewState(src Source) *State {
	return &State{Source: src, mode: ModeTBD}
}

// Mode reports the current mode.
func (s *State) Mode() Mode {
	return s.mode
}

// PrepareForWrite implements prepare_for_latency_optimized_write: it
// returns the suggested write size for the next chunk handed to
// tls.Conn.Write, or SizeMax when no cap is warranted.
func (s *State) PrepareForWrite(minRTT time.Duration, tlsActive bool, cipherSuite uint16) int {
	switch s.mode {
	case ModeDisabled:
		return SizeMax

	case ModeTBD:
		return s.firstCall(minRTT, tlsActive, cipherSuite)

	case ModeNeedsUpdate:
		t := s.Source.Telemetry()
		if !t.Obtained {
			return SizeMax
		}
		return s.decide(t)

	default:
		return SizeMax
	}
}

func (s *State) firstCall(minRTT time.Duration, tlsActive bool, cipherSuite uint16) int {
	t := s.Source.Telemetry()
	if !t.Obtained {
		s.mode = ModeDisabled
		return SizeMax
	}

	if t.RTT < minRTT {
		s.mode = ModeDisabled
		return SizeMax
	}

	if tlsActive {
		overhead, ok := Overhead(cipherSuite)
		if !ok {
			s.mode = ModeDisabled
			return SizeMax
		}
		s.overhead = overhead
	}

	if !s.Source.SetNotSentLowWat(1) {
		s.mode = ModeDisabled
		return SizeMax
	}

	s.mss = t.MSS
	return s.decide(t)
}

func (s *State) decide(t Telemetry) int {
	if s.mss == 0 {
		s.mss = t.MSS
	}

	if s.mss*t.Cwnd >= 65536 {
		s.mode = ModeUseLargeRecords
		return SizeMax
	}

	s.mode = ModeUseTinyRecords

	sendable := t.Cwnd - t.Unacked
	if sendable < 0 {
		sendable = 0
	}

	return (sendable + 1) * (s.mss - s.overhead)
}

// RecordSize implements the write-path record-size table of §4.6:
// the size to feed tls.Conn.Write per call, given the current mode
// (not the per-call suggestion from PrepareForWrite, which only
// caps aggregate write size).
func (s *State) RecordSize() int {
	switch s.mode {
	case ModeUseTinyRecords, ModeNeedsUpdate:
		s.mode = ModeNeedsUpdate
		if s.mss > 0 {
			return s.mss
		}
		return 1400
	case ModeUseLargeRecords:
		s.mode = ModeNeedsUpdate
		return 16384 - s.overhead
	default:
		return 1400
	}
}
