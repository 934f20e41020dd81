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

// Package metrics implements conn.MetricsSink on top of
// github.com/prometheus/client_golang, so a connection's lifecycle and
// queue occupancy can be scraped like any other service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nabbar/godbus/conn"
)

// Collector is a conn.MetricsSink backed by a dedicated prometheus
// registry. Register it with a connection via conn.SetMetrics before
// Start, and expose Registry() through an HTTP handler.
type Collector struct {
	reg *prometheus.Registry

	state      *prometheus.GaugeVec
	rqueueLen  prometheus.Gauge
	wqueueLen  prometheus.Gauge
	pending    prometheus.Gauge
	dispatched prometheus.Counter
	timedOut   prometheus.Counter
}

// New builds a Collector and registers its metrics under namespace "godbus".
func New() *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "godbus",
			Subsystem: "conn",
			Name:      "state",
			Help:      "1 for the connection's current lifecycle state, 0 for every other state label.",
		}, []string{"state"}),
		rqueueLen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "godbus",
			Subsystem: "conn",
			Name:      "rqueue_length",
			Help:      "Number of inbound messages awaiting dispatch.",
		}),
		wqueueLen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "godbus",
			Subsystem: "conn",
			Name:      "wqueue_length",
			Help:      "Number of outbound messages awaiting transmission.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "godbus",
			Subsystem: "conn",
			Name:      "pending_calls",
			Help:      "Number of method calls awaiting a reply or timeout.",
		}),
		dispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "godbus",
			Subsystem: "conn",
			Name:      "dispatched_total",
			Help:      "Inbound messages run through the dispatch chain.",
		}),
		timedOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "godbus",
			Subsystem: "conn",
			Name:      "call_timeouts_total",
			Help:      "Pending calls that expired via the reply tracker's tick.",
		}),
	}

	c.reg.MustRegister(c.state, c.rqueueLen, c.wqueueLen, c.pending, c.dispatched, c.timedOut)
	return c
}

// Registry exposes the underlying registry for an HTTP handler
// (promhttp.HandlerFor), or for merging into a process-wide registry.
func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// ObserveState implements conn.MetricsSink.
func (c *Collector) ObserveState(s conn.State) {
	for _, label := range stateLabels {
		v := 0.0
		if label == s.String() {
			v = 1.0
		}
		c.state.WithLabelValues(label).Set(v)
	}
}

// ObserveQueues implements conn.MetricsSink.
func (c *Collector) ObserveQueues(rqueueLen, wqueueLen, pendingCalls int) {
	c.rqueueLen.Set(float64(rqueueLen))
	c.wqueueLen.Set(float64(wqueueLen))
	c.pending.Set(float64(pendingCalls))
}

// IncDispatched implements conn.MetricsSink.
func (c *Collector) IncDispatched() { c.dispatched.Inc() }

// IncTimedOut implements conn.MetricsSink.
func (c *Collector) IncTimedOut() { c.timedOut.Inc() }

var stateLabels = []string{"unset", "opening", "authenticating", "hello", "running", "closed"}

var _ conn.MetricsSink = (*Collector)(nil)
