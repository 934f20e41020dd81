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

// Package dispatch runs registered filters and match-rule callbacks over
// every incoming message. Both lists may be mutated from within a callback
// invoked during the very iteration that is walking them; the "modified
// flag + iteration counter" scheme makes that safe without locking.
package dispatch

import "github.com/nabbar/godbus/message"

// FilterFunc is a filter callback. A non-zero return short-circuits the
// remaining pipeline for this message.
type FilterFunc func(msg *message.Message, userdata interface{}) int

type filterEntry struct {
	id            uint64
	fn            FilterFunc
	userdata      interface{}
	lastIteration uint64
	removed       bool
}

// Filters is the ordered, reentrancy-safe list of registered filters.
type Filters struct {
	list      []*filterEntry
	nextID    uint64
	iteration uint64
	modified  bool
}

// NewFilters creates an empty filter list.
func NewFilters() *Filters {
	return &Filters{}
}

// Add appends a filter and returns an id usable with Remove.
func (f *Filters) Add(fn FilterFunc, userdata interface{}) uint64 {
	f.nextID++
	id := f.nextID
	// Stamp lastIteration with the current counter so a filter added
	// mid-dispatch is treated as "already seen" this round and only
	// becomes eligible starting with the next Dispatch call.
	f.list = append(f.list, &filterEntry{id: id, fn: fn, userdata: userdata, lastIteration: f.iteration})
	f.modified = true
	return id
}

// Remove unregisters the filter with the given id. Safe to call from
// within Dispatch: the entry is marked removed and skipped, not spliced
// out mid-iteration.
func (f *Filters) Remove(id uint64) bool {
	for _, e := range f.list {
		if e.id == id && !e.removed {
			e.removed = true
			f.modified = true
			return true
		}
	}
	return false
}

// Dispatch bumps the iteration counter once, then offers msg to every
// filter at most once, restarting its scan from the beginning whenever a
// callback mutates the list (Add/Remove set the modified flag). A filter
// already invoked this iteration (lastIteration == iteration) is skipped
// on a restart; a filter added mid-iteration is stamped by Add with the
// current counter and so is not invoked until the next call to Dispatch.
func (f *Filters) Dispatch(msg *message.Message) int {
	f.iteration++
	iter := f.iteration

	i := 0
	for i < len(f.list) {
		e := f.list[i]
		if e.removed || e.lastIteration == iter {
			i++
			continue
		}

		f.modified = false
		e.lastIteration = iter
		result := e.fn(msg, e.userdata)

		if f.modified {
			f.compact()
			i = 0
			continue
		}

		if result != 0 {
			return result
		}
		i++
	}

	f.compact()
	return 0
}

func (f *Filters) compact() {
	out := f.list[:0]
	for _, e := range f.list {
		if !e.removed {
			out = append(out, e)
		}
	}
	f.list = out
}

// Len reports the number of live filters.
func (f *Filters) Len() int {
	return len(f.list)
}
