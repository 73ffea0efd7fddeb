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

package tlsconn

import (
	"crypto/x509"
	"errors"
	"io"
	"strings"

	liberr "github.com/sabouaram/tlssocket/errors"
)

const (
	ErrorNoCert errorsCodeBase = iota + liberr.MinPkgSocketTLS
	ErrorCertInvalid
	ErrorCertNameMismatch
	ErrorHandshakeFailure
	ErrorDecode
	ErrorRenegotiationUnsupported
)

type errorsCodeBase = liberr.CodeError

var isCodeError = false

// IsCodeError reports whether this package's error codes are registered.
func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = liberr.ExistInMapMessage(ErrorNoCert)
	liberr.RegisterIdFctMessage(ErrorNoCert, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case liberr.UnknownError:
		return ""
	case ErrorNoCert:
		return "ssl_no_cert"
	case ErrorCertInvalid:
		return "ssl_cert_invalid"
	case ErrorCertNameMismatch:
		return "ssl_cert_name_mismatch"
	case ErrorHandshakeFailure:
		return "ssl_handshake_failure"
	case ErrorDecode:
		return "ssl_decode"
	case ErrorRenegotiationUnsupported:
		return "ssl_renegotiation_unsupported"
	}

	return ""
}

// Kind is one of the original spec's category strings, preserved so
// callers can branch the way spec.md intends: compare against an
// exported errors.CodeError sentinel (Go's safe idiom for the spec's
// "pointer-compare against exported constant error strings").
type Kind = liberr.CodeError

// Classify maps a handshake or I/O error from crypto/tls into one of
// this module's error-kind sentinels.
func Classify(err error) liberr.CodeError {
	if err == nil {
		return liberr.UnknownError
	}

	var hostErr x509.HostnameError
	if errors.As(err, &hostErr) {
		return ErrorCertNameMismatch
	}

	var unknownAuth x509.UnknownAuthorityError
	if errors.As(err, &unknownAuth) {
		return ErrorCertInvalid
	}

	var certInvalid x509.CertificateInvalidError
	if errors.As(err, &certInvalid) {
		return ErrorCertInvalid
	}

	msg := err.Error()

	switch {
	case strings.Contains(msg, "no certificates"):
		return ErrorNoCert
	case strings.Contains(msg, "renegotiation"):
		return ErrorRenegotiationUnsupported
	case strings.Contains(msg, "bad record") || strings.Contains(msg, "decryption") || strings.Contains(msg, "decode"):
		return ErrorDecode
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return liberr.UnknownError
	default:
		return ErrorHandshakeFailure
	}
}
