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

import "fmt"

// Format renders s scaled to its largest matching unit and formatted with
// the given printf verb, without any unit suffix. Use one of the
// FormatRoundN constants for a fixed decimal precision, or any other
// float verb such as "%e".
func (s Size) Format(format string) string {
	div, _ := scaleOf(s)
	return fmt.Sprintf(format, float64(s)/float64(div))
}

// String renders s scaled to its largest matching unit, with two decimal
// digits of precision and the matching unit suffix.
func (s Size) String() string {
	return s.Format(FormatRound2) + s.Unit(0)
}

// Unit returns the unit suffix for s: the scale prefix (K, M, G, T, P, E,
// or empty for plain bytes) followed by suffix, or "B" when suffix is 0.
func (s Size) Unit(suffix rune) string {
	_, prefix := scaleOf(s)
	if suffix == 0 {
		return prefix + "B"
	}
	return prefix + string(suffix)
}

// Code behaves like Unit, except that a zero suffix falls back to the
// package's default unit rune set by SetDefaultUnit instead of "B".
func (s Size) Code(suffix rune) string {
	_, prefix := scaleOf(s)
	if suffix == 0 {
		suffix = defaultUnit
	}
	return prefix + string(suffix)
}

// KiloBytes returns the number of whole kilobytes in s.
func (s Size) KiloBytes() uint64 {
	return uint64(s) / uint64(SizeKilo)
}

// MegaBytes returns the number of whole megabytes in s.
func (s Size) MegaBytes() uint64 {
	return uint64(s) / uint64(SizeMega)
}

// GigaBytes returns the number of whole gigabytes in s.
func (s Size) GigaBytes() uint64 {
	return uint64(s) / uint64(SizeGiga)
}

// TeraBytes returns the number of whole terabytes in s.
func (s Size) TeraBytes() uint64 {
	return uint64(s) / uint64(SizeTera)
}

// PetaBytes returns the number of whole petabytes in s.
func (s Size) PetaBytes() uint64 {
	return uint64(s) / uint64(SizePeta)
}

// ExaBytes returns the number of whole exabytes in s.
func (s Size) ExaBytes() uint64 {
	return uint64(s) / uint64(SizeExa)
}
