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

package builtin

import (
	"github.com/nabbar/godbus/message"
	"github.com/nabbar/godbus/tree"
)

// GetManagedObjects answers org.freedesktop.DBus.ObjectManager.GetManagedObjects.
// It is only valid when call.Path or one of its ancestors carries the
// object-manager flag.
func GetManagedObjects(t *tree.Tree, call *message.Message) *message.Message {
	owner, ok := t.ObjectManagerAt(call.Path)
	if !ok {
		return message.NewError(call, message.ErrFailed, getMessage(ErrorNotObjectManager))
	}

	descendants, err := t.Descendants(owner)
	if err != nil {
		return message.NewError(call, message.ErrFailed, err.Error())
	}

	paths := append([]string{owner}, descendants...)
	out := make(map[string]map[string]map[string]interface{})

	for _, p := range paths {
		vtables := t.VTablesAt(p)
		if len(vtables) == 0 {
			continue
		}

		ifaces := make(map[string]map[string]interface{})
		for iface, vt := range vtables {
			props := make(map[string]interface{})
			for _, prop := range vt.Properties {
				if !prop.Flags.Readable() || prop.Getter == nil {
					continue
				}
				if v, gerr := prop.Getter(vt.Handle); gerr == nil {
					props[prop.Name] = v
				}
			}
			ifaces[iface] = props
		}
		out[p] = ifaces
	}

	reply := message.NewMethodReturn(call)
	reply.Signature = "a{oa{sa{sv}}}"
	reply.Body = out
	return reply
}
