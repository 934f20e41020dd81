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

import (
	"time"

	"golang.org/x/sys/unix"
)

// GetFd returns the descriptor the caller should multiplex on. Requiring a
// single descriptor for both directions mirrors the real library: a split
// in/out fd pair cannot be expressed as one poll entry.
func (c *Connection) GetFd() (int, error) {
	if err := c.checkOwner(); err != nil {
		return -1, err
	}
	if c.fdsSet {
		if c.inFd != c.outFd {
			return -1, newErr(ErrorPermissionDenied)
		}
		return c.inFd, nil
	}
	if c.trans == nil {
		return -1, newErr(ErrorNotConnected)
	}
	return c.trans.Fd(), nil
}

// GetEvents returns the readiness bitmask the caller should poll for,
// depending on the current state, per §4.3.
func (c *Connection) GetEvents() (Events, error) {
	if err := c.checkOwner(); err != nil {
		return 0, err
	}
	switch c.state {
	case StateOpening:
		return EventWritable, nil
	case StateAuthenticating:
		e := EventReadable
		if c.auth.PendingWrite() {
			e |= EventWritable
		}
		return e, nil
	case StateHello, StateRunning:
		var e Events
		if c.rq.Empty() {
			e |= EventReadable
		}
		if !c.wq.Empty() {
			e |= EventWritable
		}
		return e, nil
	default:
		return 0, newErr(ErrorNotConnected)
	}
}

// GetTimeout returns the absolute deadline the caller's poll should be
// bounded by, or false when none applies.
func (c *Connection) GetTimeout() (time.Time, bool) {
	switch c.state {
	case StateAuthenticating:
		return c.authDeadline, true
	case StateHello, StateRunning:
		return c.tracker.NextDeadline()
	default:
		return time.Time{}, false
	}
}

// Process advances the connection by exactly one step. Recursive
// invocation (from within a dispatched callback) reports busy.
func (c *Connection) Process() (int, error) {
	if err := c.checkOwner(); err != nil {
		return -1, err
	}
	if c.processing {
		return -1, newErr(ErrorBusy)
	}
	c.processing = true
	defer func() { c.processing = false }()

	switch c.state {
	case StateClosed:
		return -1, newErr(ErrorNotConnected)
	case StateOpening:
		return c.stepOpening()
	case StateAuthenticating:
		return c.stepAuthenticating()
	case StateHello, StateRunning:
		return c.stepRunning()
	default:
		return 0, nil
	}
}

func (c *Connection) fail(err error) error {
	c.setState(StateClosed)
	if c.trans != nil {
		_ = c.trans.Close()
	}
	return err
}

func (c *Connection) stepOpening() (int, error) {
	connected, err := c.trans.Step()
	if err != nil {
		return -1, c.fail(err)
	}
	if !connected {
		return 0, nil
	}
	c.setState(StateAuthenticating)
	c.authDeadline = time.Now().Add(c.authTimeout)
	return 1, nil
}

func (c *Connection) stepAuthenticating() (int, error) {
	if !c.authDeadline.IsZero() && time.Now().After(c.authDeadline) {
		return -1, c.fail(newErr(ErrorTimedOut))
	}

	done, err := c.auth.Step(c.trans)
	if err != nil {
		return -1, c.fail(err)
	}
	if !done {
		return 0, nil
	}

	if c.role == RoleClient && !c.isKernelTransport() {
		c.setState(StateHello)
		if err = c.sendHello(); err != nil {
			return -1, c.fail(err)
		}
	} else {
		c.setState(StateRunning)
	}
	return 1, nil
}

func (c *Connection) stepRunning() (int, error) {
	if c.tracker.Tick() {
		c.metrics.IncTimedOut()
		c.observeQueues()
		return 1, nil
	}

	if !c.rq.Empty() {
		msg := c.rq.Pop()
		c.metrics.IncDispatched()
		if err := c.dispatchOne(msg); err != nil {
			return -1, err
		}
		c.observeQueues()
		return 1, nil
	}

	n, err := c.trans.Read(c.readBuf)
	if err != nil {
		return -1, c.fail(err)
	}
	if n > 0 {
		c.readAccum = append(c.readAccum, c.readBuf[:n]...)
		progressed := false
		for {
			msg, consumed, uerr := c.codec.Unmarshal(c.readAccum)
			if uerr != nil {
				return -1, c.fail(uerr)
			}
			if consumed == 0 {
				break
			}
			c.readAccum = c.readAccum[consumed:]
			if msg != nil {
				if perr := c.rq.Push(msg); perr != nil {
					return -1, c.fail(perr)
				}
				progressed = true
			}
		}
		if progressed {
			c.observeQueues()
			return 1, nil
		}
		return 0, nil
	}

	if !c.wq.Empty() {
		return c.stepWrite()
	}

	return 0, nil
}

func (c *Connection) stepWrite() (int, error) {
	head := c.wq.Peek()
	if head != c.wireFor {
		wire, err := c.codec.Marshal(head)
		if err != nil {
			return -1, c.fail(err)
		}
		c.wireCache = wire
		c.wireFor = head
	}

	offset := c.wq.WIndex()
	if offset >= len(c.wireCache) {
		c.wq.Complete()
		c.wireCache = nil
		c.wireFor = nil
		return 1, nil
	}

	n, err := c.trans.Write(c.wireCache[offset:])
	if err != nil {
		return -1, c.fail(err)
	}
	if n == 0 {
		return 0, nil
	}

	c.wq.Advance(n)
	if c.wq.WIndex() >= len(c.wireCache) || c.trans.Atomic() {
		c.wq.Complete()
		c.wireCache = nil
		c.wireFor = nil
	}
	return 1, nil
}

// Wait blocks on readiness up to timeout intersected with GetTimeout, or
// returns immediately (0, nil) when rqueue already has a message waiting.
func (c *Connection) Wait(timeout time.Duration) (int, error) {
	if err := c.checkOwner(); err != nil {
		return -1, err
	}
	if !c.rq.Empty() {
		return 0, nil
	}

	events, err := c.GetEvents()
	if err != nil {
		return -1, err
	}
	fd, err := c.GetFd()
	if err != nil {
		return -1, err
	}

	deadline := time.Now().Add(timeout)
	if dl, ok := c.GetTimeout(); ok && dl.Before(deadline) {
		deadline = dl
	}
	remain := time.Until(deadline)
	if remain < 0 {
		remain = 0
	}

	var pollEvents int16
	if events.Readable() {
		pollEvents |= unix.POLLIN
	}
	if events.Writable() {
		pollEvents |= unix.POLLOUT
	}

	fds := []unix.PollFd{{Fd: int32(fd), Events: pollEvents}}
	n, perr := unix.Poll(fds, int(remain.Milliseconds()))
	if perr != nil && perr != unix.EINTR {
		return -1, perr
	}
	return n, nil
}

// Flush drives the connection to running (completing any in-progress
// handshake) and then drains wqueue, interleaving writes with waits.
func (c *Connection) Flush() error {
	for c.state != StateRunning && c.state != StateClosed {
		n, err := c.Process()
		if err != nil {
			return err
		}
		if n == 0 {
			if _, err = c.Wait(c.authTimeout); err != nil {
				return err
			}
		}
	}
	if c.state == StateClosed {
		return newErr(ErrorNotConnected)
	}

	for !c.wq.Empty() {
		n, err := c.Process()
		if err != nil {
			return err
		}
		if n == 0 {
			if _, err = c.Wait(c.callTimeout); err != nil {
				return err
			}
		}
	}
	return nil
}
