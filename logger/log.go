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

package logger

import (
	"fmt"

	"github.com/sirupsen/logrus"

	liberr "github.com/nabbar/godbus/errors"
	loglvl "github.com/nabbar/godbus/logger/level"
)

type entry struct {
	o   *lgr
	lvl loglvl.Level
	msg string
	dta interface{}
	err error
}

func (o *lgr) newEntry(lvl loglvl.Level, message string) Entry {
	return &entry{
		o:   o,
		lvl: lvl,
		msg: message,
	}
}

func (e *entry) Data(data interface{}) Entry {
	e.dta = data
	return e
}

func (e *entry) Error(err error) Entry {
	e.err = err
	return e
}

func (e *entry) Log() {
	if e == nil || e.o == nil {
		return
	}

	e.o.m.RLock()
	r := e.o.r
	f := e.o.f
	e.o.m.RUnlock()

	flds := logrus.Fields{}

	if f != nil {
		f.Walk(func(key string, val interface{}) bool {
			flds[key] = val
			return true
		})
	}

	if e.dta != nil {
		flds["data"] = e.dta
	}

	if e.err != nil {
		if ce := liberr.Get(e.err); ce != nil {
			flds["error.code"] = ce.GetCode().Uint16()
			flds["error.trace"] = ce.Error()
		} else {
			flds["error"] = e.err.Error()
		}
	}

	r.WithFields(flds).Log(e.lvl.Logrus(), e.msg)
}

func (o *lgr) Entry(lvl loglvl.Level, message string) Entry {
	return o.newEntry(lvl, message)
}

func (o *lgr) Debug(message string, data interface{}, args ...interface{}) {
	o.newEntry(loglvl.DebugLevel, fmt.Sprintf(message, args...)).Data(data).Log()
}

func (o *lgr) Info(message string, data interface{}, args ...interface{}) {
	o.newEntry(loglvl.InfoLevel, fmt.Sprintf(message, args...)).Data(data).Log()
}

func (o *lgr) Warning(message string, data interface{}, args ...interface{}) {
	o.newEntry(loglvl.WarnLevel, fmt.Sprintf(message, args...)).Data(data).Log()
}

func (o *lgr) Error(message string, data interface{}, args ...interface{}) {
	o.newEntry(loglvl.ErrorLevel, fmt.Sprintf(message, args...)).Data(data).Log()
}
