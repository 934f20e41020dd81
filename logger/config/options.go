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

// Package config carries the options accepted by logger.New.
package config

import (
	"io"

	loglvl "github.com/nabbar/godbus/logger/level"
)

// Options configures a logger instance. The logger always uses a text
// formatter. A nil Options gives Info level and os.Stderr; a nil Writer
// gives os.Stderr.
type Options struct {
	// Level is the minimal severity that will be emitted. Its zero value is
	// PanicLevel, which is honored as given.
	Level loglvl.Level

	// DisableTimestamp removes the timestamp field from each entry; useful
	// under test harnesses that diff log output.
	DisableTimestamp bool

	// EnableTrace adds the caller file:line to every entry, whatever its level.
	EnableTrace bool

	// Writer is the destination stream. Defaults to os.Stderr.
	Writer io.Writer
}

func (o *Options) writer() io.Writer {
	if o == nil || o.Writer == nil {
		return nil
	}
	return o.Writer
}
