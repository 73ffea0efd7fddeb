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

package socket

import "github.com/sabouaram/tlssocket/errors"

const (
	ErrorParamsEmpty errors.CodeError = iota + errors.MinPkgSocket
	ErrorSocketClosed
	ErrorSocketAlreadyClosed
	ErrorWriteAfterShutdown
	ErrorReadAfterShutdown
	ErrorHandlerPanic
	ErrorHandoffInProgress
	ErrorTLSHandoffUnsupported
)

// Kind classifies an error code into the broad buckets the caller needs
// to decide whether a failure is retryable, a protocol violation, or a
// plain closed-socket condition.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindClosed
	KindProtocol
	KindTemporary
)

// KindOf classifies one of this package's error codes into the broad
// buckets callers need to decide whether a failure is retryable, a
// protocol violation, or a plain closed-socket condition.
func KindOf(code errors.CodeError) Kind {
	switch code {
	case ErrorSocketClosed, ErrorSocketAlreadyClosed, ErrorWriteAfterShutdown, ErrorReadAfterShutdown:
		return KindClosed
	case ErrorParamsEmpty, ErrorHandlerPanic:
		return KindProtocol
	case ErrorHandoffInProgress, ErrorTLSHandoffUnsupported:
		return KindTemporary
	default:
		return KindUnknown
	}
}

var isCodeError = false

// IsCodeError reports whether this package's error codes are registered
// with the errors package message registry.
func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorParamsEmpty)
	errors.RegisterIdFctMessage(ErrorParamsEmpty, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorParamsEmpty:
		return "given parameters is empty"
	case ErrorSocketClosed:
		return "socket is closed"
	case ErrorSocketAlreadyClosed:
		return "socket is already closed"
	case ErrorWriteAfterShutdown:
		return "write attempted after shutdown"
	case ErrorReadAfterShutdown:
		return "read attempted after shutdown"
	case ErrorHandlerPanic:
		return "connection handler panicked"
	case ErrorHandoffInProgress:
		return "socket has an export/import handoff in progress"
	case ErrorTLSHandoffUnsupported:
		return "handoff of an active TLS session is not supported: crypto/tls exposes no way to export mid-stream cipher state"
	}

	return ""
}
