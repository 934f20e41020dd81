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

package conn

import "github.com/nabbar/godbus/transport"

// Authenticator drives the SASL-style handshake during the authenticating
// state. Authentication policy is explicitly out of this core's scope
// (§1); the engine only needs to step it and know whether it still has
// bytes queued to write.
type Authenticator interface {
	// Step advances the handshake by one non-blocking unit of work. It
	// returns true once authentication has completed.
	Step(t transport.Transport) (done bool, err error)

	// PendingWrite reports whether the authenticator still has outbound
	// bytes to send, informing get-events' write-readiness bit.
	PendingWrite() bool
}

// nullAuthenticator completes immediately, for transports (or test
// harnesses) that perform no handshake of their own.
type nullAuthenticator struct{}

// NewNullAuthenticator returns an Authenticator that reports done on its
// first Step, useful for kernel transports and local testing.
func NewNullAuthenticator() Authenticator {
	return &nullAuthenticator{}
}

func (n *nullAuthenticator) Step(_ transport.Transport) (bool, error) { return true, nil }

func (n *nullAuthenticator) PendingWrite() bool { return false }
