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

package addr

import "github.com/nabbar/godbus/errors"

const (
	ErrorEmptyAddress errors.CodeError = iota + errors.MinPkgAddr
	ErrorUnknownScheme
	ErrorMissingKey
	ErrorConflictingKey
	ErrorInvalidEscape
	ErrorInvalidArgvIndex
	ErrorAllEndpointsFailed
	ErrorNoRuntimeDir
)

func init() {
	errors.RegisterIdFctMessage(ErrorEmptyAddress, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorEmptyAddress:
		return "address string is empty"
	case ErrorUnknownScheme:
		return "unrecognized address scheme"
	case ErrorMissingKey:
		return "endpoint is missing a mandatory key"
	case ErrorConflictingKey:
		return "endpoint carries mutually exclusive keys"
	case ErrorInvalidEscape:
		return "invalid %XX escape sequence in address value"
	case ErrorInvalidArgvIndex:
		return "argv index is out of range or leaves a hole"
	case ErrorAllEndpointsFailed:
		return "every endpoint in the address list failed to connect"
	case ErrorNoRuntimeDir:
		return "no runtime directory available to derive the session bus address"
	}
	return ""
}
