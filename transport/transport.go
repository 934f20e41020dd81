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

// Package transport defines the contract the connection engine holds the
// socket-, exec- and kernel-transport collaborators to. Opening a socket,
// spawning a peer process, and performing the auth handshake are each
// transport-specific and out of this core's scope; the engine only ever
// drives a Transport through Step/Read/Write/Fd/Close.
package transport

import "github.com/nabbar/godbus/addr"

// Transport is one connected (or connecting) endpoint. A Transport is not
// safe for concurrent use; the owning Connection serializes it same as
// everything else in the engine.
type Transport interface {
	// Step advances a pending connect attempt by one non-blocking unit of
	// work. It returns true once the transport is fully connected; until
	// then the caller polls Fd for write-readiness and calls Step again.
	Step() (connected bool, err error)

	// Fd returns the descriptor the caller should multiplex on.
	Fd() int

	// Read attempts one non-blocking read. Returning (0, nil) means
	// would-block, not EOF.
	Read(p []byte) (n int, err error)

	// Write attempts one non-blocking write, possibly partial.
	Write(p []byte) (n int, err error)

	// Atomic reports whether Write delivers a message whole or not at
	// all (kernel transports) as opposed to resumable partial writes
	// (stream transports).
	Atomic() bool

	// Close releases the transport's resources. Idempotent.
	Close() error
}

// Dialer constructs a Transport for one resolved address endpoint. The
// connection engine calls Dial once per attempt as its address cursor
// advances; the dial itself must not block past what it takes to create
// the local socket / pipe, the handshake itself happens across
// subsequent Step calls.
type Dialer interface {
	Dial(ep *addr.Endpoint) (Transport, error)
}
