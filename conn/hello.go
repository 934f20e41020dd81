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

import "github.com/nabbar/godbus/message"

const (
	dbusServiceName = "org.freedesktop.DBus"
	dbusObjectPath  = "/"
)

// sendHello issues the initial Hello call immediately on entering state
// hello, per §6. Its reply is consumed through the ordinary reply-tracker
// path, same as any other pending call.
func (c *Connection) sendHello() error {
	call := message.NewMethodCall(dbusServiceName, dbusObjectPath, dbusServiceName, "Hello")
	call.Signature = ""
	serial := c.nextSerial()
	call.Seal(serial)

	if err := c.tracker.Register(serial, c.onHelloReply, nil, c.authTimeout); err != nil {
		return err
	}
	return c.sendSealed(call)
}

// onHelloReply validates the Hello reply per §4.1/§6: a single string
// starting with ':' moves the connection to running; anything else is a
// protocol violation and closes the connection.
func (c *Connection) onHelloReply(reply *message.Message) int {
	if reply.Type == message.TypeError {
		c.log.Error("hello call failed", nil, reply.ErrorName)
		_ = c.fail(newErr(ErrorProtocol))
		return 1
	}

	name, ok := reply.Body.(string)
	if !ok || name == "" || name[0] != ':' {
		_ = c.fail(newErr(ErrorProtocol))
		return 1
	}

	c.uniqueName = name
	c.setState(StateRunning)
	return 1
}
