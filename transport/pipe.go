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

import "io"

// fder is implemented by *os.File, which is what exec.Cmd's StdinPipe and
// StdoutPipe return under the hood; unixexec: transports need the raw fd
// to hand back from Transport.Fd so the connection engine can multiplex
// on it the same way it does a socket.
type fder interface {
	Fd() uintptr
}

type pipeWriter struct {
	w io.WriteCloser
}

func newPipeWriter(w io.WriteCloser) *pipeWriter {
	return &pipeWriter{w: w}
}

func (p *pipeWriter) Write(b []byte) (int, error) { return p.w.Write(b) }

func (p *pipeWriter) Close() error { return p.w.Close() }

type pipeReader struct {
	r io.ReadCloser
}

func newPipeReader(r io.ReadCloser) *pipeReader {
	return &pipeReader{r: r}
}

func (p *pipeReader) Read(b []byte) (int, error) { return p.r.Read(b) }

func (p *pipeReader) Close() error { return p.r.Close() }

func (p *pipeReader) Fd() int {
	if f, ok := p.r.(fder); ok {
		return int(f.Fd())
	}
	return -1
}
