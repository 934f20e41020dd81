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

package queue

import "github.com/nabbar/godbus/message"

// WQueue is the outbound queue. It additionally tracks windex: how many
// bytes of the head message have already been written, so a partial
// stream write can resume instead of restarting.
type WQueue struct {
	q      *Queue
	windex int
}

// NewWQueue creates an outbound queue bounded at max entries.
func NewWQueue(max int) *WQueue {
	return &WQueue{q: New(max)}
}

func (w *WQueue) Len() int   { return w.q.Len() }
func (w *WQueue) Empty() bool { return w.q.Empty() }
func (w *WQueue) Peek() *message.Message { return w.q.Peek() }

// Push enqueues a sealed message. It fails with no-buffer-space once the
// queue holds max entries; queued messages, and the head's partial-write
// progress, are kept. An empty queue always admits one entry (max <= 0 is
// unbounded), so the head whose progress windex records has its place.
func (w *WQueue) Push(m *message.Message) error {
	if w.q.max > 0 && w.q.Len() >= w.q.max {
		return newNoBufferSpace()
	}
	w.q.items = append(w.q.items, m)
	return nil
}

// WIndex returns the number of bytes of the head message already written.
func (w *WQueue) WIndex() int {
	return w.windex
}

// Advance records n additional bytes written for the current head. When
// the head is fully written (n reaches total), call Complete instead.
func (w *WQueue) Advance(n int) {
	w.windex += n
}

// Complete releases the head message (fully transmitted) and resets
// windex for the new head.
func (w *WQueue) Complete() *message.Message {
	m := w.q.Pop()
	w.windex = 0
	return m
}
