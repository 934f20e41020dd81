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

// GetRequest is the decoded body of a Properties.Get call. Decoding the
// wire body into this shape is the codec collaborator's job; the core only
// needs the typed result.
type GetRequest struct {
	Interface string
	Property  string
}

// SetRequest is the decoded body of a Properties.Set call.
type SetRequest struct {
	Interface string
	Property  string
	Value     interface{}
}

// GetAllRequest is the decoded body of a Properties.GetAll call.
type GetAllRequest struct {
	Interface string
}

// PropertiesGet answers org.freedesktop.DBus.Properties.Get.
func PropertiesGet(t *tree.Tree, call *message.Message, req GetRequest) *message.Message {
	prop, vt, ok := t.FindProperty(call.Path, req.Interface, req.Property)
	if !ok || prop == nil || !prop.Flags.Readable() {
		return message.NewError(call, message.ErrUnknownProperty, "no such readable property")
	}

	val, err := prop.Getter(vt.Handle)
	if err != nil {
		return message.NewError(call, message.ErrFailed, err.Error())
	}

	reply := message.NewMethodReturn(call)
	reply.Signature = "v"
	reply.Body = val
	return reply
}

// PropertiesSet answers org.freedesktop.DBus.Properties.Set.
func PropertiesSet(t *tree.Tree, call *message.Message, req SetRequest) *message.Message {
	prop, vt, ok := t.FindProperty(call.Path, req.Interface, req.Property)
	if !ok || prop == nil {
		return message.NewError(call, message.ErrUnknownProperty, "no such property")
	}
	if !prop.Flags.Writable() {
		return message.NewError(call, message.ErrPropertyReadOnly, "property is read-only")
	}

	if err := prop.Setter(vt.Handle, req.Value); err != nil {
		return message.NewError(call, message.ErrFailed, err.Error())
	}

	return message.NewMethodReturn(call)
}

// PropertiesGetAll answers org.freedesktop.DBus.Properties.GetAll. An
// interface with no registration at the path returns an empty dict rather
// than an error, matching the leniency of the real service.
func PropertiesGetAll(t *tree.Tree, call *message.Message, req GetAllRequest) *message.Message {
	out := make(map[string]interface{})

	if vt, ok := t.VTablesAt(call.Path)[req.Interface]; ok {
		for _, p := range vt.Properties {
			if !p.Flags.Readable() || p.Getter == nil {
				continue
			}
			if v, err := p.Getter(vt.Handle); err == nil {
				out[p.Name] = v
			}
		}
	}

	reply := message.NewMethodReturn(call)
	reply.Signature = "a{sv}"
	reply.Body = out
	return reply
}
