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
)

// Mul multiplies s by factor in place, rounding the result up to the next
// whole byte and capping at math.MaxUint64 on overflow. Negative factors
// are treated as zero.
func (s *Size) Mul(factor float64) {
	_ = s.MulErr(factor)
}

// MulErr behaves like Mul but reports an overflow instead of silently
// capping it.
func (s *Size) MulErr(factor float64) error {
	if factor < 0 {
		factor = 0
	}
	result := math.Ceil(float64(*s) * factor)
	if math.IsInf(result, 1) || result > float64(math.MaxUint64) {
		*s = Size(math.MaxUint64)
		return fmt.Errorf("size: multiplication overflow")
	}
	*s = Size(result)
	return nil
}

// Div divides s by divisor in place, rounding the result up to the next
// whole byte. A divisor that is zero or negative leaves s unchanged.
func (s *Size) Div(divisor float64) {
	_ = s.DivErr(divisor)
}

// DivErr behaves like Div but reports an invalid divisor instead of
// silently ignoring it.
func (s *Size) DivErr(divisor float64) error {
	if divisor <= 0 {
		return fmt.Errorf("size: invalid diviser %v", divisor)
	}
	result := math.Ceil(float64(*s) / divisor)
	if result > float64(math.MaxUint64) {
		*s = Size(math.MaxUint64)
		return fmt.Errorf("size: division overflow")
	}
	*s = Size(result)
	return nil
}

// Add adds v bytes to s in place, capping at math.MaxUint64 on overflow.
func (s *Size) Add(v uint64) {
	_ = s.AddErr(v)
}

// AddErr behaves like Add but reports an overflow instead of silently
// capping it.
func (s *Size) AddErr(v uint64) error {
	cur := uint64(*s)
	if v > math.MaxUint64-cur {
		*s = Size(math.MaxUint64)
		return fmt.Errorf("size: addition overflow")
	}
	*s = Size(cur + v)
	return nil
}

// Sub subtracts v bytes from s in place, flooring at SizeNul on underflow.
func (s *Size) Sub(v uint64) {
	_ = s.SubErr(v)
}

// SubErr behaves like Sub but reports an invalid subtractor instead of
// silently flooring it.
func (s *Size) SubErr(v uint64) error {
	cur := uint64(*s)
	if v > cur {
		*s = SizeNul
		return fmt.Errorf("size: invalid substractor %d", v)
	}
	*s = Size(cur - v)
	return nil
}
