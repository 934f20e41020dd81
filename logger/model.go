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
	"context"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	logcfg "github.com/nabbar/godbus/logger/config"
	logfld "github.com/nabbar/godbus/logger/fields"
	loglvl "github.com/nabbar/godbus/logger/level"
)

type lgr struct {
	m sync.RWMutex
	r *logrus.Logger
	f logfld.Fields
}

func defaultFormatter(opt *logcfg.Options) logrus.Formatter {
	return &logrus.TextFormatter{
		ForceQuote:       true,
		QuoteEmptyFields: true,
		DisableTimestamp: opt != nil && opt.DisableTimestamp,
		FullTimestamp:    true,
		TimestampFormat:  time.RFC3339,
	}
}

func newLogger(opt *logcfg.Options) Logger {
	r := logrus.New()
	r.SetFormatter(defaultFormatter(opt))
	r.SetLevel(logrus.DebugLevel)

	if opt != nil && opt.Writer != nil {
		r.SetOutput(opt.Writer)
	} else {
		r.SetOutput(os.Stderr)
	}

	if opt != nil && opt.EnableTrace {
		r.SetReportCaller(true)
	}

	lv := loglvl.InfoLevel
	if opt != nil {
		lv = opt.Level
	}
	if lv == 0 && (opt == nil || opt.Level != loglvl.PanicLevel) {
		lv = loglvl.InfoLevel
	}

	o := &lgr{
		r: r,
		f: logfld.New(context.Background()),
	}
	o.SetLevel(lv)

	return o
}

func (o *lgr) clone() *lgr {
	return &lgr{
		r: o.r,
		f: o.f.Clone(),
	}
}

func (o *lgr) SetLevel(lvl loglvl.Level) {
	o.m.Lock()
	defer o.m.Unlock()
	o.r.SetLevel(lvl.Logrus())
}

func (o *lgr) GetLevel() loglvl.Level {
	o.m.RLock()
	defer o.m.RUnlock()
	return loglvl.ParseFromUint32(uint32(o.r.GetLevel()))
}

func (o *lgr) WithFields(f logfld.Fields) Logger {
	n := o.clone()
	if f != nil {
		f.Walk(func(key string, val interface{}) bool {
			n.f.Store(key, val)
			return true
		})
	}
	return n
}

func (o *lgr) WithField(key string, val interface{}) Logger {
	n := o.clone()
	n.f.Store(key, val)
	return n
}

func (o *lgr) Write(p []byte) (int, error) {
	o.newEntry(loglvl.InfoLevel, string(p)).Log()
	return len(p), nil
}
