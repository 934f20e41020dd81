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

// Package conn implements the connection engine: the state machine carrying
// a connection from unset through opening, authenticating, hello, running,
// to closed, wired to the I/O queues, the reply tracker, the filter/match
// dispatch and the object tree.
package conn

// State is one of the six lifecycle states a Connection moves through.
type State uint8

const (
	StateUnset State = iota
	StateOpening
	StateAuthenticating
	StateHello
	StateRunning
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnset:
		return "unset"
	case StateOpening:
		return "opening"
	case StateAuthenticating:
		return "authenticating"
	case StateHello:
		return "hello"
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Role distinguishes a client dialing a broker from a peer-to-peer server
// endpoint and from an anonymous-auth client.
type Role uint8

const (
	RoleClient Role = iota
	RoleServer
	RoleAnonymous
)

// AttachFlags negotiates what metadata the peer attaches to messages. The
// actual wire encoding of attached data belongs to the codec collaborator;
// the engine only carries the negotiated bitmask through the handshake.
type AttachFlags uint32

const (
	AttachUnixFDs AttachFlags = 1 << iota
	AttachSenderCredentials
	AttachTimestamp
)

// Events is the readiness bitmask GetEvents returns for the caller's poll
// loop.
type Events uint8

const (
	EventReadable Events = 1 << iota
	EventWritable
)

func (e Events) Readable() bool { return e&EventReadable != 0 }
func (e Events) Writable() bool { return e&EventWritable != 0 }
