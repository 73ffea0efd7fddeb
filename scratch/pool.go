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

// Package scratch provides a pool of reusable, fixed-capacity byte
// slices for the record-sized scratch space the TLS adapter needs on
// every read and write.
package scratch

import "sync"

// DefaultSize is the scratch slice capacity handed out when a Pool is
// used without an explicit Size, large enough for a maximum-size TLS
// record (16384) plus header/MAC overhead.
const DefaultSize = 16 * 1024

// Pool hands out byte slices of a fixed capacity, recycling them
// through a sync.Pool to avoid per-record heap churn on busy sockets.
type Pool struct {
	Size int

	once sync.Once
	pool sync.Pool
}

func (p *Pool) init() {
	p.once.Do(func() {
		size := p.Size
		if size <= 0 {
			size = DefaultSize
		}

		p.pool.New = func() interface{} {
			b := make([]byte, size)
			return &b
		}
	})
}

// Get returns a slice of length Size (or DefaultSize), reused from the
// pool when available.
func (p *Pool) Get() []byte {
	p.init()
	b := p.pool.Get().(*[]byte)
	return *b
}

// Put returns b to the pool. Slices with a capacity smaller than the
// pool's configured size are dropped rather than recycled.
func (p *Pool) Put(b []byte) {
	p.init()

	size := p.Size
	if size <= 0 {
		size = DefaultSize
	}

	if cap(b) < size {
		return
	}

	b = b[:cap(b)]
	p.pool.Put(&b)
}
