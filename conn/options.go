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

	"github.com/nabbar/godbus/addr"
	"github.com/nabbar/godbus/logger"
	"github.com/nabbar/godbus/message"
	"github.com/nabbar/godbus/queue"
	"github.com/nabbar/godbus/replytracker"
	"github.com/nabbar/godbus/transport"
)

// Setup operations (this file) are legal only in state unset; calling any
// of them afterward reports permission-denied, per §4.1.
func (c *Connection) checkSetup() error {
	if err := c.checkOwner(); err != nil {
		return err
	}
	if c.state != StateUnset {
		return newErr(ErrorPermissionDenied)
	}
	return nil
}

// SetAddress parses and stores the semicolon-separated bus address.
func (c *Connection) SetAddress(address string) error {
	if err := c.checkSetup(); err != nil {
		return err
	}
	list, err := addr.Parse(address)
	if err != nil {
		return err
	}
	c.address = address
	c.addrList = list
	return nil
}

// SetFds configures the connection to use already-open descriptors instead
// of dialing an address. A single descriptor usable for both directions is
// passed as both in and out.
func (c *Connection) SetFds(in, out int) error {
	if err := c.checkSetup(); err != nil {
		return err
	}
	if in < 0 || out < 0 {
		return newErr(ErrorInvalidArgument)
	}
	c.inFd = in
	c.outFd = out
	c.fdsSet = true
	return nil
}

// SetExecArgs configures a unixexec: peer spawn argv, overriding whatever
// address-derived argv would otherwise apply.
func (c *Connection) SetExecArgs(argv []string) error {
	if err := c.checkSetup(); err != nil {
		return err
	}
	if len(argv) == 0 {
		return newErr(ErrorInvalidArgument)
	}
	c.execArgv = argv
	return nil
}

// SetAttachFlags negotiates the attach/fd flags presented during the
// handshake.
func (c *Connection) SetAttachFlags(f AttachFlags) error {
	if err := c.checkSetup(); err != nil {
		return err
	}
	c.flags = f
	return nil
}

// SetRole selects client, server or anonymous-client behavior.
func (c *Connection) SetRole(r Role) error {
	if err := c.checkSetup(); err != nil {
		return err
	}
	c.role = r
	return nil
}

// SetAnonymous toggles anonymous authentication for a client connection.
func (c *Connection) SetAnonymous(anon bool) error {
	if err := c.checkSetup(); err != nil {
		return err
	}
	c.anonymous = anon
	return nil
}

// SetLogger overrides the default stderr logger.
func (c *Connection) SetLogger(l logger.Logger) error {
	if err := c.checkSetup(); err != nil {
		return err
	}
	if l == nil {
		return newErr(ErrorInvalidArgument)
	}
	c.log = l
	return nil
}

// SetAuthTimeout overrides the default authenticating-state deadline.
func (c *Connection) SetAuthTimeout(d time.Duration) error {
	if err := c.checkSetup(); err != nil {
		return err
	}
	if d <= 0 {
		return newErr(ErrorInvalidArgument)
	}
	c.authTimeout = d
	return nil
}

// SetDefaultCallTimeout overrides the reply tracker's library-wide default
// used when Call / SendWithReply is asked for timeout==0.
func (c *Connection) SetDefaultCallTimeout(d time.Duration) error {
	if err := c.checkSetup(); err != nil {
		return err
	}
	if d <= 0 {
		return newErr(ErrorInvalidArgument)
	}
	c.callTimeout = d
	c.tracker = replytracker.New(d)
	return nil
}

// SetDialer overrides the default socket/exec dialer, e.g. with a test
// double or a kernel-transport implementation.
func (c *Connection) SetDialer(d transport.Dialer) error {
	if err := c.checkSetup(); err != nil {
		return err
	}
	if d == nil {
		return newErr(ErrorInvalidArgument)
	}
	c.dialer = d
	return nil
}

// SetCodec installs the wire codec collaborator. A connection cannot Start
// without one.
func (c *Connection) SetCodec(codec message.Codec) error {
	if err := c.checkSetup(); err != nil {
		return err
	}
	if codec == nil {
		return newErr(ErrorInvalidArgument)
	}
	c.codec = codec
	return nil
}

// SetAuthenticator overrides the default null (auth-less) handshake.
func (c *Connection) SetAuthenticator(a Authenticator) error {
	if err := c.checkSetup(); err != nil {
		return err
	}
	if a == nil {
		return newErr(ErrorInvalidArgument)
	}
	c.auth = a
	return nil
}

// SetMetrics installs a sink that observes state transitions, queue
// occupancy and dispatch/timeout counts as the connection runs. Passing nil
// restores the no-op default.
func (c *Connection) SetMetrics(m MetricsSink) error {
	if err := c.checkSetup(); err != nil {
		return err
	}
	if m == nil {
		m = noopMetrics{}
	}
	c.metrics = m
	return nil
}

// SetQueueLimits bounds rqueue/wqueue capacity; either value <= 0 means
// unbounded for that queue.
func (c *Connection) SetQueueLimits(rmax, wmax int) error {
	if err := c.checkSetup(); err != nil {
		return err
	}
	c.rq = queue.NewRQueue(rmax)
	c.wq = queue.NewWQueue(wmax)
	return nil
}
