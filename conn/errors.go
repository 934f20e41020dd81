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

import "github.com/nabbar/godbus/errors"

const (
	ErrorInvalidArgument errors.CodeError = iota + errors.MinPkgConn
	ErrorNotConnected
	ErrorChildProcess
	ErrorNoMemory
	ErrorNoBufferSpace
	ErrorPermissionDenied
	ErrorBusy
	ErrorTimedOut
	ErrorProtocol
	ErrorWireError
)

func init() {
	errors.RegisterIdFctMessage(ErrorInvalidArgument, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorInvalidArgument:
		return "malformed path, interface, signature, or setup call outside unset"
	case ErrorNotConnected:
		return "operation requires an open connection"
	case ErrorChildProcess:
		return "connection was separated from its owner by a fork"
	case ErrorNoMemory:
		return "resource exhaustion"
	case ErrorNoBufferSpace:
		return "queue is full"
	case ErrorPermissionDenied:
		return "lifecycle violation"
	case ErrorBusy:
		return "recursive dispatch on this connection"
	case ErrorTimedOut:
		return "call or tracker deadline elapsed"
	case ErrorProtocol:
		return "wire-level protocol violation"
	case ErrorWireError:
		return "carried in a method-error reply"
	}
	return ""
}

func newErr(code errors.CodeError) error {
	return errors.New(uint16(code), getMessage(code))
}
