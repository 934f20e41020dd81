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

// Package queue implements the two bounded FIFOs the connection engine
// drives: rqueue (inbound, awaiting dispatch) and wqueue (outbound,
// awaiting transmission), plus the windex bookkeeping for partial writes.
// Neither queue ever blocks; a full queue reports no-buffer-space.
package queue

import (
	"github.com/nabbar/godbus/message"
)

// Queue is a bounded FIFO of message pointers. It is not safe for
// concurrent use: the connection that owns it is single-threaded per §5.
type Queue struct {
	items []*message.Message
	max   int
}

// New creates a queue bounded at max entries. max <= 0 means unbounded.
func New(max int) *Queue {
	return &Queue{max: max}
}

// Len returns the number of queued messages.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Empty reports whether the queue currently holds no message.
func (q *Queue) Empty() bool {
	return q.Len() == 0
}

// Push appends m to the tail. The wqueue invariant (capacity for at least
// one entry) is the caller's responsibility: Push only enforces max when
// the queue already holds at least one item, so a single in-flight
// partial write always has room to be recorded.
func (q *Queue) Push(m *message.Message) error {
	if q.max > 0 && len(q.items) >= q.max && len(q.items) > 0 {
		return newNoBufferSpace()
	}
	q.items = append(q.items, m)
	return nil
}

// Peek returns the head of the queue without removing it.
func (q *Queue) Peek() *message.Message {
	if q.Len() == 0 {
		return nil
	}
	return q.items[0]
}

// Pop removes and returns the head of the queue.
func (q *Queue) Pop() *message.Message {
	if q.Len() == 0 {
		return nil
	}
	m := q.items[0]
	q.items = q.items[1:]
	return m
}

func newNoBufferSpace() error {
	return newErr(ErrorNoBufferSpace)
}
