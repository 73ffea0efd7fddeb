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

// Package alpn implements server-preference-first ALPN selection,
// decoding the client's raw length-prefixed protocol list the same
// way the wire extension encodes it rather than relying on
// crypto/tls's own NextProtos matching, which does not expose this
// exact algorithm as a standalone testable function.
package alpn

// Select returns the first protocol in preferred (server order) that
// also appears in the client's length-prefixed protocol list raw. An
// empty string means "no acknowledgement": either no overlap, or raw
// is malformed (a length prefix exceeding the remaining bytes).
func Select(preferred []string, raw []byte) string {
	client, ok := decode(raw)
	if !ok {
		return ""
	}

	set := make(map[string]struct{}, len(client))
	for _, p := range client {
		set[p] = struct{}{}
	}

	for _, p := range preferred {
		if _, found := set[p]; found {
			return p
		}
	}

	return ""
}

// decode parses a ProtocolNameList as carried in the ALPN extension:
// a sequence of single length-prefixed byte strings.
func decode(raw []byte) ([]string, bool) {
	var out []string

	for len(raw) > 0 {
		n := int(raw[0])
		raw = raw[1:]

		if n > len(raw) {
			return nil, false
		}

		out = append(out, string(raw[:n]))
		raw = raw[n:]
	}

	return out, true
}

// Encode is the inverse of decode, building a wire-format
// length-prefixed protocol list from plain strings. Protocols longer
// than 255 bytes are silently dropped, matching the extension's
// single-byte length field.
func Encode(protos []string) []byte {
	out := make([]byte, 0, len(protos)*8)

	for _, p := range protos {
		if len(p) > 255 {
			continue
		}
		out = append(out, byte(len(p)))
		out = append(out, p...)
	}

	return out
}
