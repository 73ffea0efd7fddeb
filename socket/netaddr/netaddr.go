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

// Package netaddr caches and compares peer addresses the way the
// socket core needs: a fast dotted-quad path for IPv4, a total order
// usable as a map/sort key, and a host-order port accessor.
package netaddr

import (
	"net"
	"strings"
)

// Family identifies the address family of a cached peer address.
type Family uint8

const (
	FamilyUnknown Family = iota
	FamilyUnix
	FamilyInet4
	FamilyInet6
)

// Addr is a cached, comparable snapshot of a net.Addr.
type Addr struct {
	Family   Family
	Path     string // unix
	IP       net.IP // inet4/inet6
	Port     int
	FlowInfo uint32 // inet6 only
	ScopeID  uint32 // inet6 only
}

// From caches a in an Addr, dispatching on its concrete type the same
// way the backend's get_peername_uncached would dispatch on sa_family.
func From(a net.Addr) Addr {
	switch v := a.(type) {
	case *net.TCPAddr:
		return fromIP(v.IP, v.Port, v.Zone)
	case *net.UDPAddr:
		return fromIP(v.IP, v.Port, v.Zone)
	case *net.UnixAddr:
		return Addr{Family: FamilyUnix, Path: v.Name}
	default:
		return Addr{Family: FamilyUnknown, Path: a.String()}
	}
}

func fromIP(ip net.IP, port int, zone string) Addr {
	if v4 := ip.To4(); v4 != nil {
		return Addr{Family: FamilyInet4, IP: v4, Port: port}
	}

	var scope uint32
	if zone != "" {
		if iface, err := net.InterfaceByName(zone); err == nil {
			scope = uint32(iface.Index)
		}
	}

	return Addr{Family: FamilyInet6, IP: ip.To16(), Port: port, ScopeID: scope}
}

// String formats the address, taking the IPv4 dotted-quad fast path
// without going through a generic resolver for that family.
func (a Addr) String() string {
	switch a.Family {
	case FamilyUnix:
		return a.Path
	case FamilyInet4:
		return a.IP.String()
	case FamilyInet6:
		return "[" + a.IP.String() + "]"
	default:
		return a.Path
	}
}

// Port returns the host-order port for inet4/inet6 addresses, or -1
// for any other family.
func (a Addr) PortOf() int {
	switch a.Family {
	case FamilyInet4, FamilyInet6:
		return a.Port
	default:
		return -1
	}
}

// Compare defines a total order over Addr values: family first, then
// family-specific fields (unix path lexical order; v4 address then
// port; v6 address, port, flow info, scope id).
func Compare(x, y Addr) int {
	if x.Family != y.Family {
		if x.Family < y.Family {
			return -1
		}
		return 1
	}

	switch x.Family {
	case FamilyUnix:
		return strings.Compare(x.Path, y.Path)
	case FamilyInet4:
		if c := compareIP(x.IP, y.IP); c != 0 {
			return c
		}
		return compareInt(x.Port, y.Port)
	case FamilyInet6:
		if c := compareIP(x.IP, y.IP); c != 0 {
			return c
		}
		if c := compareInt(x.Port, y.Port); c != 0 {
			return c
		}
		if c := compareUint32(x.FlowInfo, y.FlowInfo); c != 0 {
			return c
		}
		return compareUint32(x.ScopeID, y.ScopeID)
	default:
		return strings.Compare(x.Path, y.Path)
	}
}

// Equal reports whether x and y are byte-equal in family and address
// fields (Compare(x, y) == 0).
func Equal(x, y Addr) bool {
	return Compare(x, y) == 0
}

func compareIP(x, y net.IP) int {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	for i := 0; i < n; i++ {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return compareInt(len(x), len(y))
}

func compareInt(x, y int) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func compareUint32(x, y uint32) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}
