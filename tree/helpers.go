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

import (
	"strings"

	liberr "github.com/nabbar/godbus/errors"
)

func newErr(code liberr.CodeError) error {
	return liberr.New(uint16(code), getMessage(code))
}

func validPath(p string) bool {
	if p == "" || p[0] != '/' {
		return false
	}
	if p == "/" {
		return true
	}
	if strings.HasSuffix(p, "/") {
		return false
	}
	for _, seg := range strings.Split(p[1:], "/") {
		if seg == "" {
			return false
		}
	}
	return true
}

// parentOf returns the parent path of p, or "" if p is the root.
// Re-architected per the spec's design notes: the parent is the substring
// up to (but excluding) the final '/', or "/" at the root -- not the
// mis-sized strndupa(path, MAX(1, path-e)) construct from the source.
func parentOf(p string) string {
	if p == "/" {
		return ""
	}
	idx := strings.LastIndexByte(p, '/')
	if idx == 0 {
		return "/"
	}
	return p[:idx]
}

// ancestorPrefixes yields p's ancestor paths from the closest parent down
// to "/", inclusive, for fallback routing: stripping one trailing segment
// at a time until '/' is reached.
func ancestorPrefixes(p string) []string {
	if p == "/" {
		return nil
	}
	var out []string
	for {
		idx := strings.LastIndexByte(p, '/')
		if idx <= 0 {
			out = append(out, "/")
			break
		}
		p = p[:idx]
		if p == "" {
			p = "/"
		}
		out = append(out, p)
	}
	return out
}
