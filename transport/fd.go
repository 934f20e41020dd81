/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

package transport

import (
	"io"

	"golang.org/x/sys/unix"
)

// fdTransport wraps caller-supplied descriptors that are already open and
// connected (the setup path covered by Connection.SetFds), skipping both
// dialing and the opening-state Step entirely.
type fdTransport struct {
	in, out int
}

// NewFdPair wraps an already-connected pair of descriptors (equal for a
// single bidirectional socket) as a Transport. The caller remains
// responsible for having put them in non-blocking mode.
func NewFdPair(in, out int) Transport {
	return &fdTransport{in: in, out: out}
}

func (f *fdTransport) Step() (bool, error) { return true, nil }

func (f *fdTransport) Fd() int { return f.in }

func (f *fdTransport) Read(p []byte) (int, error) {
	n, err := unix.Read(f.in, p)
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		return 0, nil
	}
	if n == 0 && err == nil && len(p) > 0 {
		return 0, io.EOF
	}
	if n < 0 {
		n = 0
	}
	return n, err
}

func (f *fdTransport) Write(p []byte) (int, error) {
	n, err := unix.Write(f.out, p)
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		return 0, nil
	}
	if n < 0 {
		n = 0
	}
	return n, err
}

func (f *fdTransport) Atomic() bool { return false }

func (f *fdTransport) Close() error {
	err1 := unix.Close(f.in)
	if f.out != f.in {
		if err2 := unix.Close(f.out); err2 != nil {
			return err2
		}
	}
	return err1
}
