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

import "github.com/nabbar/godbus/errors"

const (
	ErrorUnsupportedScheme errors.CodeError = iota + errors.MinPkgTransport
	ErrorMissingAddress
	ErrorKernelUnavailable
	ErrorConnectionRefused
	ErrorNoSuchFile
)

func init() {
	errors.RegisterIdFctMessage(ErrorUnsupportedScheme, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorUnsupportedScheme:
		return "address scheme is not handled by this dialer"
	case ErrorMissingAddress:
		return "endpoint carries neither a path nor a host to dial"
	case ErrorKernelUnavailable:
		return "kernel transport is not available on this platform"
	case ErrorConnectionRefused:
		return "no endpoint in the address list could be reached"
	case ErrorNoSuchFile:
		return "runtime directory for the session bus socket does not exist"
	}
	return ""
}

func newErr(code errors.CodeError) error {
	return errors.New(uint16(code), getMessage(code))
}
