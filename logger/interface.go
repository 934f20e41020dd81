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

// Package logger provides the structured, leveled logging used across every
// component of the bus engine (connection lifecycle, dispatcher, object tree).
//
// It wraps logrus with the fields/level vocabulary shared by the rest of the
// module so a caller can attach request-scoped data (serial, path, member)
// without the component itself depending on logrus directly.
package logger

import (
	"io"

	logcfg "github.com/nabbar/godbus/logger/config"
	logfld "github.com/nabbar/godbus/logger/fields"
	loglvl "github.com/nabbar/godbus/logger/level"
)

// Options configures a Logger; see logcfg.Options for field documentation.
type Options = logcfg.Options

// Logger is the structured logger every engine component receives at
// construction time. It is safe for concurrent use.
type Logger interface {
	io.Writer

	// SetLevel changes the minimal level emitted from now on.
	SetLevel(lvl loglvl.Level)

	// GetLevel returns the minimal level currently emitted.
	GetLevel() loglvl.Level

	// WithFields returns a derived logger carrying the given fields in
	// addition to (and overriding) any fields already attached.
	WithFields(f logfld.Fields) Logger

	// WithField is a shorthand for WithFields for a single key/value pair.
	WithField(key string, val interface{}) Logger

	Debug(message string, data interface{}, args ...interface{})
	Info(message string, data interface{}, args ...interface{})
	Warning(message string, data interface{}, args ...interface{})
	Error(message string, data interface{}, args ...interface{})

	// Entry returns a builder for a message at lvl; nothing is written until
	// its Log is called. An error attached with Entry.Error adds its code and
	// trace as fields when it implements liberr.Error.
	Entry(lvl loglvl.Level, message string) Entry
}

// Entry is the builder returned by Logger.Entry: attach optional data and
// error information before flushing it at the configured level.
type Entry interface {
	Data(data interface{}) Entry
	Error(err error) Entry
	Log()
}

// New builds a Logger writing formatted entries to opt.Writer (os.Stderr
// when nil) filtered at opt.Level.
func New(opt *Options) Logger {
	return newLogger(opt)
}
