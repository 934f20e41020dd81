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

// Package message defines the wire-independent message model shared by the
// connection engine, the object tree and the dispatcher. Header parsing,
// signature validation and body marshalling belong to a separate codec
// collaborator; this package only carries the fields the engine itself must
// reason about (type, flags, serials, routing fields) plus an opaque body.
package message

// Type identifies the four D-Bus message kinds.
type Type uint8

const (
	TypeInvalid Type = iota
	TypeMethodCall
	TypeMethodReturn
	TypeError
	TypeSignal
)

func (t Type) String() string {
	switch t {
	case TypeMethodCall:
		return "method_call"
	case TypeMethodReturn:
		return "method_return"
	case TypeError:
		return "error"
	case TypeSignal:
		return "signal"
	default:
		return "invalid"
	}
}

// Flags carries the bitmask fields honored by the engine.
type Flags uint8

const (
	FlagNoReplyExpected Flags = 1 << iota
	FlagNoAutoStart
	FlagAllowInteractiveAuthorization
)

func (f Flags) NoReplyExpected() bool {
	return f&FlagNoReplyExpected != 0
}

// Message is the header the engine routes on. Body is opaque: it is
// produced and consumed by the codec collaborator and only ferried here.
type Message struct {
	Type        Type
	Flags       Flags
	Serial      uint32
	ReplySerial uint32
	Sender      string
	Destination string
	Path        string
	Interface   string
	Member      string
	Signature   string
	ErrorName   string
	FdCount     uint32
	Version     uint8
	Body        interface{}

	sealed bool
}

// IsSealed reports whether the message has already been assigned a serial
// and frozen.
func (m *Message) IsSealed() bool {
	return m != nil && m.sealed
}

// Seal assigns the given serial and freezes the message. Calling it twice
// on the same message is a programming error the caller must avoid; Seal
// is a no-op on an already-sealed message.
func (m *Message) Seal(serial uint32) {
	if m == nil || m.sealed {
		return
	}
	m.Serial = serial
	m.sealed = true
}

// IsReply reports whether the message is a method-return or method-error.
func (m *Message) IsReply() bool {
	return m != nil && (m.Type == TypeMethodReturn || m.Type == TypeError)
}

// NewMethodCall builds an unsealed method-call message.
func NewMethodCall(dest, path, iface, member string) *Message {
	return &Message{
		Type:        TypeMethodCall,
		Destination: dest,
		Path:        path,
		Interface:   iface,
		Member:      member,
	}
}

// NewMethodReturn builds an unsealed reply to call.
func NewMethodReturn(call *Message) *Message {
	return &Message{
		Type:        TypeMethodReturn,
		ReplySerial: call.Serial,
		Destination: call.Sender,
	}
}

// NewError builds an unsealed error reply to call.
func NewError(call *Message, name, msg string) *Message {
	return &Message{
		Type:        TypeError,
		ReplySerial: call.Serial,
		Destination: call.Sender,
		ErrorName:   name,
		Body:        msg,
	}
}

// NewSignal builds an unsealed signal message.
func NewSignal(path, iface, member string) *Message {
	return &Message{
		Type:      TypeSignal,
		Path:      path,
		Interface: iface,
		Member:    member,
	}
}
