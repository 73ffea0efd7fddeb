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

import "math"

// Uint64 returns s as a uint64.
func (s Size) Uint64() uint64 {
	return uint64(s)
}

// Uint32 returns s as a uint32, capped at math.MaxUint32.
func (s Size) Uint32() uint32 {
	if uint64(s) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(s)
}

// Uint returns s as a uint, capped at math.MaxUint.
func (s Size) Uint() uint {
	if uint64(s) > uint64(math.MaxUint) {
		return math.MaxUint
	}
	return uint(s)
}

// Int64 returns s as an int64, capped at math.MaxInt64.
func (s Size) Int64() int64 {
	if uint64(s) > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(s)
}

// Int32 returns s as an int32, capped at math.MaxInt32.
func (s Size) Int32() int32 {
	if uint64(s) > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(s)
}

// Int returns s as an int, capped at math.MaxInt.
func (s Size) Int() int {
	if uint64(s) > uint64(math.MaxInt) {
		return math.MaxInt
	}
	return int(s)
}

// Float64 returns s as a float64.
func (s Size) Float64() float64 {
	return float64(s)
}

// Float32 returns s as a float32, capped at math.MaxFloat32.
func (s Size) Float32() float32 {
	f := float64(s)
	if f > math.MaxFloat32 {
		return math.MaxFloat32
	}
	return float32(f)
}

// ParseInt64 builds a Size from an int64, taking its absolute value.
func ParseInt64(v int64) Size {
	if v < 0 {
		return Size(uint64(-v))
	}
	return Size(uint64(v))
}

// SizeFromInt64 is an alias for ParseInt64.
func SizeFromInt64(v int64) Size {
	return ParseInt64(v)
}

// ParseUint64 builds a Size from a raw byte count.
func ParseUint64(v uint64) Size {
	return Size(v)
}

// ParseFloat64 builds a Size from a float64: the value is floored toward
// negative infinity, then its absolute value is taken, then capped at
// math.MaxUint64.
func ParseFloat64(v float64) Size {
	if math.IsNaN(v) {
		return SizeNul
	}
	v = math.Floor(v)
	v = math.Abs(v)
	if math.IsInf(v, 1) || v > float64(math.MaxUint64) {
		return Size(math.MaxUint64)
	}
	return Size(v)
}

// SizeFromFloat64 is an alias for ParseFloat64.
func SizeFromFloat64(v float64) Size {
	return ParseFloat64(v)
}
