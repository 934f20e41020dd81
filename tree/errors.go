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

package tree

import "github.com/nabbar/godbus/errors"

const (
	ErrorInvalidPath errors.CodeError = iota + errors.MinPkgTree
	ErrorInvalidInterface
	ErrorInvalidMember
	ErrorInvalidSignature
	ErrorMissingHandler
	ErrorInvalidFlags
	ErrorAlreadyExists
	ErrorWrongProtocol
	ErrorNotFound
)

func init() {
	errors.RegisterIdFctMessage(ErrorInvalidPath, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorInvalidPath:
		return "object path is not a valid absolute path"
	case ErrorInvalidInterface:
		return "interface name is empty or malformed"
	case ErrorInvalidMember:
		return "member name is empty or malformed"
	case ErrorInvalidSignature:
		return "signature is malformed"
	case ErrorMissingHandler:
		return "vtable entry is missing its handler"
	case ErrorInvalidFlags:
		return "invalidates-only requires emits-change"
	case ErrorAlreadyExists:
		return "interface is already registered at this node"
	case ErrorWrongProtocol:
		return "fallback and non-fallback registrations conflict on this interface"
	case ErrorNotFound:
		return "no matching property or registration"
	}
	return ""
}
