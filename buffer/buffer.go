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

// Package buffer holds the socket's pending-bytes buffer: an in-memory
// bytes.Buffer that spills to a temp file once it grows past a threshold,
// so a slow reader on one side of a socket cannot pin unbounded memory on
// the other.
package buffer

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// DefaultSpillThreshold is the buffered byte count above which Buffer
// moves its content to a backing temp file.
const DefaultSpillThreshold = 256 * 1024

// Buffer is an io.ReadWriteCloser accumulating bytes in memory until
// Threshold is exceeded, at which point it spills to disk and serves
// reads through a memory-mapped view of the spill file.
type Buffer struct {
	Threshold int

	mem  bytes.Buffer
	file *os.File
	ra   *mmap.ReaderAt
	off  int64
	size int64
}

// New returns a Buffer using DefaultSpillThreshold.
func New() *Buffer {
	return &Buffer{Threshold: DefaultSpillThreshold}
}

// Len reports the number of unread bytes currently held.
func (b *Buffer) Len() int64 {
	if b.ra != nil {
		return b.size - b.off
	}
	return int64(b.mem.Len())
}

// Write appends p, spilling to a temp file once Threshold is crossed.
// Write never fails because data does not fit: it grows the backing
// store instead.
func (b *Buffer) Write(p []byte) (int, error) {
	if b.ra != nil {
		return b.writeSpilled(p)
	}

	n, err := b.mem.Write(p)
	if err != nil {
		return n, err
	}

	if b.mem.Len() > b.threshold() {
		if e := b.spill(); e != nil {
			return n, e
		}
	}

	return n, nil
}

func (b *Buffer) threshold() int {
	if b.Threshold <= 0 {
		return DefaultSpillThreshold
	}
	return b.Threshold
}

func (b *Buffer) spill() error {
	f, err := os.CreateTemp("", "tlssocket-buffer-*")
	if err != nil {
		return err
	}

	if _, err = f.Write(b.mem.Bytes()); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}

	b.size = int64(b.mem.Len())
	b.mem.Reset()
	b.file = f

	ra, err := mmap.Open(f.Name())
	if err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}

	b.ra = ra
	return nil
}

func (b *Buffer) writeSpilled(p []byte) (int, error) {
	n, err := b.file.WriteAt(p, b.size)
	if err != nil {
		return n, err
	}
	b.size += int64(n)
	return n, nil
}

// Read drains buffered bytes, transparently switching back from the
// spill file to the in-memory path once it is exhausted.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.ra == nil {
		return b.mem.Read(p)
	}

	n, err := b.ra.ReadAt(p, b.off)
	b.off += int64(n)

	if b.off >= b.size {
		if err == nil || err == io.EOF {
			err = b.unspill()
			if err == nil {
				err = io.EOF
			}
		}
	}

	return n, err
}

func (b *Buffer) unspill() error {
	name := b.file.Name()

	if e := b.ra.Close(); e != nil {
		return e
	}
	if e := b.file.Close(); e != nil {
		return e
	}

	b.ra = nil
	b.file = nil
	b.off = 0
	b.size = 0

	return os.Remove(name)
}

// Bytes returns the remaining unread bytes, reading the spill file in
// full when one is active.
func (b *Buffer) Bytes() []byte {
	if b.ra == nil {
		return b.mem.Bytes()
	}

	out := make([]byte, b.size-b.off)
	_, _ = b.ra.ReadAt(out, b.off)
	return out
}

// Reset discards all buffered content and removes any spill file.
func (b *Buffer) Reset() {
	b.mem.Reset()

	if b.ra != nil {
		name := b.file.Name()
		_ = b.ra.Close()
		_ = b.file.Close()
		_ = os.Remove(name)
		b.ra = nil
		b.file = nil
	}

	b.off = 0
	b.size = 0
}

// Close releases any spill file backing this buffer.
func (b *Buffer) Close() error {
	if b.ra == nil {
		return nil
	}

	name := b.file.Name()
	err := b.ra.Close()
	if e := b.file.Close(); e != nil && err == nil {
		err = e
	}
	if e := os.Remove(name); e != nil && err == nil {
		err = e
	}

	b.ra = nil
	b.file = nil
	return err
}
