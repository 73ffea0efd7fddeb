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

// Package config declares the client/server bind configuration for
// stream sockets, mirroring the rest of this module's config structs.
package config

import (
	"time"

	"github.com/sabouaram/tlssocket/certificates"
	liberr "github.com/sabouaram/tlssocket/errors"
	"github.com/sabouaram/tlssocket/network/protocol"
)

// MaxGID is the highest unix group id this package accepts for a unix
// socket's group ownership (unused for TCP binds, kept for config
// symmetry with the rest of this module's socket family).
const MaxGID = 1 << 20

// TLS is the nested TLS configuration for a socket endpoint.
type TLS struct {
	Enabled    bool
	Config     certificates.TLSConfig
	ServerName string
}

// Validate reports ErrorInvalidTLSConfig when TLS is enabled but no
// certificate config has been attached.
func (t TLS) Validate() liberr.Error {
	if !t.Enabled {
		return nil
	}
	if t.Config == nil {
		return ErrorInvalidTLSConfig.Error(nil)
	}
	return nil
}

// TLSServer and TLSClient name TLS by the endpoint role it configures;
// both are this package's single TLS struct, matching how the rest of
// this module's config packages read at their call sites.
type (
	TLSServer = TLS
	TLSClient = TLS
)

// Server is a listening endpoint's configuration.
type Server struct {
	Network protocol.NetworkProtocol
	Address string
	TLS     TLS

	PermFile       uint32
	GroupPerm      int
	ConIdleTimeout time.Duration
}

// Validate checks the endpoint describes a bindable network with a
// non-empty address and, if TLS is enabled, a usable TLS config.
func (s Server) Validate() liberr.Error {
	if !s.Network.IsStream() && !s.Network.IsDatagram() {
		return ErrorInvalidNetwork.Error(nil)
	}
	if s.Address == "" {
		return ErrorInvalidAddress.Error(nil)
	}
	// GroupPerm of -1 means "leave the group ownership unchanged",
	// mirroring os.Chown's sentinel for "don't change this ID".
	if s.GroupPerm < -1 || s.GroupPerm > MaxGID {
		return ErrorInvalidGroup.Error(nil)
	}
	if s.TLS.Enabled && !s.Network.IsStream() {
		return ErrorInvalidNetwork.Error(nil)
	}
	if err := s.TLS.Validate(); err != nil {
		return err
	}
	return nil
}

// GetTLS returns the *tls.Config to drive the handshake with, or nil
// when TLS is disabled.
func (s Server) GetTLS() certificates.TLSConfig {
	if !s.TLS.Enabled {
		return nil
	}
	return s.TLS.Config
}

// Client is an outbound connection's configuration.
type Client struct {
	Network protocol.NetworkProtocol
	Address string
	TLS     TLS

	ConIdleTimeout time.Duration
}

// Validate checks the endpoint describes a dialable network with a
// non-empty address and, if TLS is enabled, a usable TLS config over a
// stream-capable network.
func (c Client) Validate() liberr.Error {
	if !c.Network.IsStream() && !c.Network.IsDatagram() {
		return ErrorInvalidNetwork.Error(nil)
	}
	if c.Address == "" {
		return ErrorInvalidAddress.Error(nil)
	}
	if c.TLS.Enabled && !c.Network.IsStream() {
		return ErrorInvalidNetwork.Error(nil)
	}
	if err := c.TLS.Validate(); err != nil {
		return err
	}
	return nil
}

// GetTLS returns the *tls.Config to drive the handshake with, or nil
// when TLS is disabled.
func (c Client) GetTLS() certificates.TLSConfig {
	if !c.TLS.Enabled {
		return nil
	}
	return c.TLS.Config
}
