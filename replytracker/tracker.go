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

// Package replytracker maps outgoing call serials to pending-call callbacks
// and times them out via a min-heap keyed on deadline. It never performs
// I/O; the connection engine calls OnReply/Tick as messages arrive and
// time passes.
package replytracker

import (
	"container/heap"
	"time"

	liberr "github.com/nabbar/godbus/errors"
	"github.com/nabbar/godbus/message"
)

// Callback receives the reply (or a synthetic timeout error message) for a
// registered call. A non-zero return short-circuits further dispatch of
// the same message by the caller.
type Callback func(reply *message.Message) int

// Never is the sentinel timeout meaning "no deadline". It is distinct from
// 0, which applies the tracker's default timeout.
const Never time.Duration = -1

type pending struct {
	serial   uint32
	cb       Callback
	userdata interface{}
	deadline time.Time // zero value means never
	index    int       // heap position, -1 when not in the heap
}

// Tracker is the serial -> pending-call map plus its deadline-ordered heap.
// It is not safe for concurrent use; the owning connection serializes it.
type Tracker struct {
	byserial     map[uint32]*pending
	heap         pendingHeap
	defaultTimeo time.Duration
	now          func() time.Time
}

// New creates a tracker applying defaultTimeout whenever Register is asked
// for timeout==0 (meaning "apply the library-wide default").
func New(defaultTimeout time.Duration) *Tracker {
	return &Tracker{
		byserial:     make(map[uint32]*pending),
		defaultTimeo: defaultTimeout,
		now:          time.Now,
	}
}

// Register reserves serial, storing cb/userdata. A positive timeout (or
// zero, meaning "apply the default") schedules the entry on the heap;
// Never skips the heap entirely.
func (t *Tracker) Register(serial uint32, cb Callback, userdata interface{}, timeout time.Duration) error {
	if _, ok := t.byserial[serial]; ok {
		return liberr.New(uint16(ErrorSerialReserved), getMessage(ErrorSerialReserved))
	}

	p := &pending{serial: serial, cb: cb, userdata: userdata, index: -1}

	if timeout != Never {
		if timeout == 0 {
			timeout = t.defaultTimeo
		}
		if timeout <= 0 {
			timeout = t.defaultTimeo
		}
		p.deadline = t.now().Add(timeout)
		heap.Push(&t.heap, p)
	}

	t.byserial[serial] = p
	return nil
}

// Cancel removes and frees the entry for serial. It is idempotent and
// reports whether an entry existed.
func (t *Tracker) Cancel(serial uint32) bool {
	p, ok := t.byserial[serial]
	if !ok {
		return false
	}
	delete(t.byserial, serial)
	if p.index >= 0 {
		heap.Remove(&t.heap, p.index)
	}
	return true
}

// OnReply looks up reply.ReplySerial; if present, removes the entry from
// both structures, invokes its callback, and propagates its return. It
// returns (0, false) when no entry matched reply.ReplySerial.
func (t *Tracker) OnReply(reply *message.Message) (result int, handled bool) {
	if reply == nil {
		return 0, false
	}
	p, ok := t.byserial[reply.ReplySerial]
	if !ok {
		return 0, false
	}
	delete(t.byserial, p.serial)
	if p.index >= 0 {
		heap.Remove(&t.heap, p.index)
	}
	return p.cb(reply), true
}

// Tick peeks the heap head; if its deadline has elapsed, synthesizes a
// timeout error message with that serial, removes the entry, invokes its
// callback and reports progress. At most one timeout is processed per
// call, matching the dispatcher's one-step-at-a-time contract.
func (t *Tracker) Tick() bool {
	if t.heap.Len() == 0 {
		return false
	}

	head := t.heap[0]
	if head.deadline.After(t.now()) {
		return false
	}

	heap.Pop(&t.heap)
	delete(t.byserial, head.serial)

	timeout := &message.Message{
		Type:        message.TypeError,
		ReplySerial: head.serial,
		ErrorName:   message.ErrTimeout,
	}
	head.cb(timeout)
	return true
}

// NextDeadline returns the earliest pending-call deadline and true, or the
// zero time and false when no entry carries a finite deadline.
func (t *Tracker) NextDeadline() (time.Time, bool) {
	if t.heap.Len() == 0 {
		return time.Time{}, false
	}
	return t.heap[0].deadline, true
}

// Len returns the number of registered pending calls (heaped or not).
func (t *Tracker) Len() int {
	return len(t.byserial)
}

// pendingHeap implements container/heap.Interface, ordered strictly by
// deadline; entries with equal deadlines may pop in either order.
type pendingHeap []*pending

func (h pendingHeap) Len() int { return len(h) }

func (h pendingHeap) Less(i, j int) bool {
	return h[i].deadline.Before(h[j].deadline)
}

func (h pendingHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pendingHeap) Push(x interface{}) {
	p := x.(*pending)
	p.index = len(*h)
	*h = append(*h, p)
}

func (h *pendingHeap) Pop() interface{} {
	old := *h
	n := len(old)
	p := old[n-1]
	old[n-1] = nil
	p.index = -1
	*h = old[:n-1]
	return p
}
