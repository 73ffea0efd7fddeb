//go:build !linux

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

import "net"

// NoopSource reports no telemetry on platforms lacking TCP_INFO /
// TCP_NOTSENT_LOWAT, which drives State permanently into ModeDisabled
// on its first call, matching §4.7's "platform lacks TCP_INFO" clause.
type NoopSource struct{}

var _ Source = NoopSource{}

func (NoopSource) Telemetry() Telemetry {
	return Telemetry{}
}

func (NoopSource) SetNotSentLowWat(bytes int) bool {
	return false
}

// NewDefaultState returns a State backed by NoopSource on platforms
// without a TCP_INFO implementation here.
func NewDefaultState(conn *net.TCPConn) *State {
	return NewState(NoopSource{})
}
