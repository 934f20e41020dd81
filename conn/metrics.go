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

package conn

// MetricsSink receives point-in-time observations emitted by the connection
// engine as it runs. Implementations are called synchronously from whatever
// goroutine drives Process/Send/Call and must not block or re-enter the
// connection; the metrics package provides a prometheus-backed one.
type MetricsSink interface {
	// ObserveState is called whenever the connection's lifecycle state
	// changes, including the terminal transition to closed.
	ObserveState(s State)
	// ObserveQueues reports current queue occupancy after a step that may
	// have changed it.
	ObserveQueues(rqueueLen, wqueueLen, pendingCalls int)
	// IncDispatched counts one inbound message run through dispatchOne.
	IncDispatched()
	// IncTimedOut counts one reply-tracker entry that expired via Tick.
	IncTimedOut()
}

type noopMetrics struct{}

func (noopMetrics) ObserveState(State)          {}
func (noopMetrics) ObserveQueues(int, int, int) {}
func (noopMetrics) IncDispatched()              {}
func (noopMetrics) IncTimedOut()                {}

// setState transitions the connection to s and reports it to the configured
// metrics sink, keeping every lifecycle assignment observable in one place.
func (c *Connection) setState(s State) {
	c.state = s
	c.metrics.ObserveState(s)
}

func (c *Connection) observeQueues() {
	c.metrics.ObserveQueues(c.rq.Len(), c.wq.Len(), c.tracker.Len())
}
