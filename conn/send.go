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

	"github.com/nabbar/godbus/message"
	"github.com/nabbar/godbus/replytracker"
)

func (c *Connection) sendable() error {
	if err := c.checkOwner(); err != nil {
		return err
	}
	if c.state != StateRunning && c.state != StateHello {
		return newErr(ErrorNotConnected)
	}
	return nil
}

// sendSealed implements the send-first-try-direct-write discipline from
// §5: with an empty wqueue it attempts one immediate non-blocking write,
// falling back to enqueueing whatever did not go out. A non-empty wqueue
// always means append, to preserve ordering.
func (c *Connection) sendSealed(msg *message.Message) error {
	if !c.wq.Empty() {
		return c.wq.Push(msg)
	}

	wire, err := c.codec.Marshal(msg)
	if err != nil {
		return err
	}

	n, err := c.trans.Write(wire)
	if err != nil {
		return c.fail(err)
	}
	if n >= len(wire) || c.trans.Atomic() {
		return nil
	}

	if err = c.wq.Push(msg); err != nil {
		return err
	}
	c.wireCache = wire
	c.wireFor = msg
	c.wq.Advance(n)
	return nil
}

// Send transmits msg, sealing it with a fresh serial first if needed. No
// reply is tracked; use SendWithReply or Call for that.
func (c *Connection) Send(msg *message.Message) error {
	if err := c.sendable(); err != nil {
		return err
	}
	if !msg.IsSealed() {
		msg.Seal(c.nextSerial())
	}
	return c.sendSealed(msg)
}

// SendWithReply seals and sends msg, registering cb with the reply
// tracker so it runs when the matching reply (or a synthetic timeout)
// arrives through the ordinary dispatch path. timeout == 0 applies the
// connection's default call timeout; replytracker.Never means "no
// deadline". Returns the assigned serial.
func (c *Connection) SendWithReply(msg *message.Message, timeout time.Duration, cb replytracker.Callback, userdata interface{}) (uint32, error) {
	if err := c.sendable(); err != nil {
		return 0, err
	}
	if msg.Flags.NoReplyExpected() {
		return 0, newErr(ErrorInvalidArgument)
	}
	if msg.IsSealed() {
		return 0, newErr(ErrorInvalidArgument)
	}

	serial := c.nextSerial()
	msg.Seal(serial)

	if err := c.tracker.Register(serial, cb, userdata, timeout); err != nil {
		return 0, err
	}
	if err := c.sendSealed(msg); err != nil {
		c.tracker.Cancel(serial)
		return 0, err
	}
	return serial, nil
}

// Call is the synchronous reply-and-block entry point described in §4.3
// and §5: it seals and sends msg, then reads directly off the transport
// until the matching reply arrives, stashing any other message it
// encounters onto rqueue for the caller's next Process. timeout <= 0
// applies the connection's default call timeout.
func (c *Connection) Call(msg *message.Message, timeout time.Duration) (*message.Message, error) {
	if err := c.checkOwner(); err != nil {
		return nil, err
	}
	if c.processing {
		return nil, newErr(ErrorBusy)
	}
	if c.state != StateRunning {
		return nil, newErr(ErrorNotConnected)
	}
	if msg.IsSealed() {
		return nil, newErr(ErrorInvalidArgument)
	}

	c.processing = true
	defer func() { c.processing = false }()

	serial := c.nextSerial()
	msg.Seal(serial)
	if err := c.sendSealed(msg); err != nil {
		return nil, err
	}

	if timeout <= 0 {
		timeout = c.callTimeout
	}
	deadline := time.Now().Add(timeout)

	for {
		if !time.Now().Before(deadline) {
			return nil, newErr(ErrorTimedOut)
		}

		for !c.wq.Empty() {
			if _, err := c.stepWrite(); err != nil {
				return nil, err
			}
		}

		n, err := c.trans.Read(c.readBuf)
		if err != nil {
			return nil, c.fail(err)
		}
		if n > 0 {
			c.readAccum = append(c.readAccum, c.readBuf[:n]...)
			for {
				reply, consumed, uerr := c.codec.Unmarshal(c.readAccum)
				if uerr != nil {
					return nil, c.fail(uerr)
				}
				if consumed == 0 {
					break
				}
				c.readAccum = c.readAccum[consumed:]
				if reply == nil {
					continue
				}
				if reply.IsReply() && reply.ReplySerial == serial {
					return reply, nil
				}
				if perr := c.rq.Push(reply); perr != nil {
					return nil, perr
				}
			}
			continue
		}

		remain := time.Until(deadline)
		if remain <= 0 {
			return nil, newErr(ErrorTimedOut)
		}
		if _, err = c.Wait(remain); err != nil {
			return nil, err
		}
	}
}
