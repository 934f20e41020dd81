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
	"github.com/nabbar/godbus/builtin"
	"github.com/nabbar/godbus/message"
)

// dispatchOne runs the six-stage chain from §4.7 over a single message
// popped from rqueue, queuing any reply it produces onto wqueue.
func (c *Connection) dispatchOne(msg *message.Message) error {
	if c.state == StateHello && !msg.IsReply() {
		return c.fail(newErr(ErrorProtocol))
	}

	stages := []func(*message.Message) int{
		c.dispatchReply,
		c.filters.Dispatch,
		c.matches.Dispatch,
		c.dispatchBuiltinPeer,
		c.dispatchObject,
	}

	for _, stage := range stages {
		if stage(msg) != 0 {
			return nil
		}
	}
	return nil
}

// dispatchReply is stage 2: reply-tracker dispatch. A message that is not
// a reply, or whose reply-serial matches no pending call, falls through
// unconsumed.
func (c *Connection) dispatchReply(msg *message.Message) int {
	if !msg.IsReply() {
		return 0
	}
	result, handled := c.tracker.OnReply(msg)
	if !handled {
		return 0
	}
	return result
}

// dispatchBuiltinPeer is stage 5: org.freedesktop.DBus.Peer answers every
// path, independent of the object tree.
func (c *Connection) dispatchBuiltinPeer(msg *message.Message) int {
	if msg.Type != message.TypeMethodCall || msg.Interface != message.IfacePeer {
		return 0
	}
	switch msg.Member {
	case "Ping":
		c.replyOut(builtin.Ping(msg))
		return 1
	case "GetMachineId":
		c.replyOut(builtin.GetMachineId(msg))
		return 1
	default:
		return 0
	}
}

// dispatchObject is stage 6: plain callbacks, then vtable methods, then
// the Properties/Introspectable/ObjectManager interfaces the tree knows
// about natively.
func (c *Connection) dispatchObject(msg *message.Message) int {
	if msg.Type != message.TypeMethodCall || msg.Path == "" {
		return 0
	}

	for _, cb := range c.tree.Callbacks(msg.Path) {
		if r := cb(msg, nil); r != 0 {
			return r
		}
	}

	if method, vt, ok := c.tree.FindMethod(msg.Path, msg.Interface, msg.Member); ok {
		if method.InSig != "" && method.InSig != msg.Signature {
			c.replyOut(message.NewError(msg, message.ErrInvalidArgs, "signature mismatch"))
			return 1
		}
		reply, err := method.Handler(msg, vt.Handle)
		if err != nil {
			c.replyOut(message.NewError(msg, message.ErrFailed, err.Error()))
			return 1
		}
		if reply != nil && !msg.Flags.NoReplyExpected() {
			c.replyOut(reply)
		}
		return 1
	}

	switch msg.Interface {
	case message.IfaceProperties:
		return c.dispatchProperties(msg)
	case message.IfaceIntrospect:
		c.replyOut(builtin.Introspect(c.tree, msg))
		return 1
	case message.IfaceObjectManager:
		c.replyOut(builtin.GetManagedObjects(c.tree, msg))
		return 1
	}

	if len(c.tree.Interfaces(msg.Path)) > 0 {
		c.replyOut(message.NewError(msg, message.ErrUnknownMethod, "no such method"))
	} else {
		c.replyOut(message.NewError(msg, message.ErrUnknownObject, "no such object"))
	}
	return 1
}

func (c *Connection) dispatchProperties(msg *message.Message) int {
	switch msg.Member {
	case "Get":
		req, ok := msg.Body.(builtin.GetRequest)
		if !ok {
			c.replyOut(message.NewError(msg, message.ErrInvalidArgs, "malformed Get arguments"))
			return 1
		}
		c.replyOut(builtin.PropertiesGet(c.tree, msg, req))
	case "Set":
		req, ok := msg.Body.(builtin.SetRequest)
		if !ok {
			c.replyOut(message.NewError(msg, message.ErrInvalidArgs, "malformed Set arguments"))
			return 1
		}
		c.replyOut(builtin.PropertiesSet(c.tree, msg, req))
	case "GetAll":
		req, ok := msg.Body.(builtin.GetAllRequest)
		if !ok {
			c.replyOut(message.NewError(msg, message.ErrInvalidArgs, "malformed GetAll arguments"))
			return 1
		}
		c.replyOut(builtin.PropertiesGetAll(c.tree, msg, req))
	default:
		c.replyOut(message.NewError(msg, message.ErrUnknownMethod, "no such method"))
	}
	return 1
}

// replyOut seals a freshly built reply (if not already sealed, e.g. a
// signal queued straight from builtin.PropertiesChanged) and queues it.
// A push failure (queue full) is logged rather than propagated: the
// triggering inbound message has already been consumed by this point.
func (c *Connection) replyOut(m *message.Message) {
	if m == nil {
		return
	}
	if !m.IsSealed() {
		m.Seal(c.nextSerial())
	}
	if err := c.wq.Push(m); err != nil {
		c.log.Error("dropping outbound message, wqueue full", nil, err)
	}
}
