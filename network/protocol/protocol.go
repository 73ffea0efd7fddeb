/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package protocol enumerates the network protocols socket configs bind to.
package protocol

import "strings"

// NetworkProtocol identifies a network/address family understood by net.Dial / net.Listen.
type NetworkProtocol uint8

const (
	NetworkEmpty NetworkProtocol = iota
	NetworkUnix
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkIP
	NetworkIP4
	NetworkIP6
	NetworkUnixGram
)

var codes = map[NetworkProtocol]string{
	NetworkUnix:     "unix",
	NetworkTCP:      "tcp",
	NetworkTCP4:     "tcp4",
	NetworkTCP6:     "tcp6",
	NetworkUDP:      "udp",
	NetworkUDP4:     "udp4",
	NetworkUDP6:     "udp6",
	NetworkIP:       "ip",
	NetworkIP4:      "ip4",
	NetworkIP6:      "ip6",
	NetworkUnixGram: "unixgram",
}

// Int returns the numeric enum value, or 0 for any value outside the known range.
func (n NetworkProtocol) Int() int {
	if _, ok := codes[n]; !ok {
		return 0
	}
	return int(n)
}

// Int64 is Int as an int64.
func (n NetworkProtocol) Int64() int64 {
	return int64(n.Int())
}

// Uint is Int as a uint.
func (n NetworkProtocol) Uint() uint {
	return uint(n.Int())
}

// Uint64 is Int as a uint64.
func (n NetworkProtocol) Uint64() uint64 {
	return uint64(n.Int())
}

// String returns the net package network name ("tcp", "udp", "unix", ...), or "" if unknown.
func (n NetworkProtocol) String() string {
	return codes[n]
}

// Code is an alias of String, matching the rest of this module's Cipher/Curves/Version types.
func (n NetworkProtocol) Code() string {
	return n.String()
}

// IsTCP reports whether the protocol is carried over a stream socket reachable by crypto/tls.
func (n NetworkProtocol) IsTCP() bool {
	switch n {
	case NetworkTCP, NetworkTCP4, NetworkTCP6:
		return true
	default:
		return false
	}
}

// IsUDP reports whether the protocol is a datagram socket.
func (n NetworkProtocol) IsUDP() bool {
	switch n {
	case NetworkUDP, NetworkUDP4, NetworkUDP6:
		return true
	default:
		return false
	}
}

// IsUnix reports whether the protocol is a filesystem-path socket.
func (n NetworkProtocol) IsUnix() bool {
	switch n {
	case NetworkUnix, NetworkUnixGram:
		return true
	default:
		return false
	}
}

// IsStream reports whether the protocol is connection-oriented, reachable by
// net.Listen/net.Dial and wrappable by crypto/tls.
func (n NetworkProtocol) IsStream() bool {
	switch n {
	case NetworkTCP, NetworkTCP4, NetworkTCP6, NetworkUnix:
		return true
	default:
		return false
	}
}

// IsDatagram reports whether the protocol is connectionless, reachable by
// net.ListenPacket/net.Dial but not wrappable by crypto/tls.
func (n NetworkProtocol) IsDatagram() bool {
	switch n {
	case NetworkUDP, NetworkUDP4, NetworkUDP6, NetworkUnixGram:
		return true
	default:
		return false
	}
}

// Parse returns the protocol matching a net-package network string (case-insensitive).
func Parse(s string) NetworkProtocol {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, c := range codes {
		if c == s {
			return p
		}
	}
	return NetworkEmpty
}

// ParseInt64 is the inverse of Int64.
func ParseInt64(i int64) NetworkProtocol {
	p := NetworkProtocol(i)
	if _, ok := codes[p]; !ok {
		return NetworkEmpty
	}
	return p
}
