/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package size

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var parseRegexp = regexp.MustCompile(`^([+-]?)([0-9]*\.?[0-9]*)([A-Za-z]*)$`)

// Parse reads a human-readable size such as "5MB" or "1.5 GiB" into a
// Size. Leading/trailing whitespace and surrounding quotes are ignored,
// the leading sign may only be "+", and the unit may be given either as
// a single letter (B, K, M, G, T, P, E) or its two-letter form
// (KB, MB, GB, TB, PB, EB), case-insensitively.
func Parse(s string) (Size, error) {
	s = trimQuotes(strings.TrimSpace(s))
	s = strings.TrimSpace(s)
	if s == "" {
		return SizeNul, fmt.Errorf("size: invalid size %q", s)
	}

	m := parseRegexp.FindStringSubmatch(s)
	if m == nil {
		return SizeNul, fmt.Errorf("size: invalid size %q", s)
	}

	sign, numPart, unitPart := m[1], m[2], m[3]
	if sign == "-" {
		return SizeNul, fmt.Errorf("size: negative size not allowed: %q", s)
	}
	if numPart == "" || numPart == "." {
		return SizeNul, fmt.Errorf("size: invalid size %q", s)
	}
	if unitPart == "" {
		return SizeNul, fmt.Errorf("size: missing unit in %q", s)
	}

	mult, ok := unitMultiplier(unitPart)
	if !ok {
		return SizeNul, fmt.Errorf("size: unknown unit %q", unitPart)
	}

	f, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return SizeNul, fmt.Errorf("size: invalid size %q", s)
	}

	result := f * float64(mult)
	if math.IsInf(result, 1) || result > float64(math.MaxUint64) {
		return SizeNul, fmt.Errorf("size: value out of range %q", s)
	}
	return Size(result), nil
}

// ParseByte is Parse over a byte slice.
func ParseByte(b []byte) (Size, error) {
	return Parse(string(b))
}

// ParseSize is an alias for Parse.
func ParseSize(s string) (Size, error) {
	return Parse(s)
}

// ParseByteAsSize is an alias for ParseByte.
func ParseByteAsSize(b []byte) (Size, error) {
	return ParseByte(b)
}

// GetSize parses s and reports whether it succeeded, discarding the error.
func GetSize(s string) (Size, bool) {
	v, err := Parse(s)
	if err != nil {
		return SizeNul, false
	}
	return v, true
}

func trimQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

func unitMultiplier(u string) (Size, bool) {
	switch strings.ToUpper(u) {
	case "B":
		return SizeUnit, true
	case "K", "KB":
		return SizeKilo, true
	case "M", "MB":
		return SizeMega, true
	case "G", "GB":
		return SizeGiga, true
	case "T", "TB":
		return SizeTera, true
	case "P", "PB":
		return SizePeta, true
	case "E", "EB":
		return SizeExa, true
	default:
		return 0, false
	}
}
