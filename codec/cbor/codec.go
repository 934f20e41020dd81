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

// Package cbor is a reference message.Codec used by this repository's own
// tests and examples to drive a Connection end to end without a real
// D-Bus wire implementation. It is deliberately not the D-Bus wire
// format: header parsing, signature validation and fd attachment for the
// real protocol are the province of the out-of-scope wire codec
// collaborator described by the connection engine's design. This codec
// only needs to round-trip a Message faithfully enough to exercise the
// queues, the reply tracker and the object tree.
package cbor

import (
	"encoding/binary"

	"github.com/fxamacker/cbor/v2"

	"github.com/nabbar/godbus/message"
)

const lengthPrefixSize = 4

// envelope mirrors message.Message's exported fields; it exists because
// Message keeps its sealed flag unexported and Codec must not be able to
// forge a sealed message by decoding one directly.
type envelope struct {
	Type        message.Type
	Flags       message.Flags
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
}

// Codec implements message.Codec over length-prefixed CBOR frames.
type Codec struct{}

// New returns a ready-to-use reference Codec.
func New() *Codec {
	return &Codec{}
}

// Marshal serializes m (which must already be sealed) into a
// length-prefixed CBOR frame.
func (c *Codec) Marshal(m *message.Message) ([]byte, error) {
	if m == nil || !m.IsSealed() {
		return nil, newErr(ErrorNotSealed)
	}

	env := envelope{
		Type:        m.Type,
		Flags:       m.Flags,
		Serial:      m.Serial,
		ReplySerial: m.ReplySerial,
		Sender:      m.Sender,
		Destination: m.Destination,
		Path:        m.Path,
		Interface:   m.Interface,
		Member:      m.Member,
		Signature:   m.Signature,
		ErrorName:   m.ErrorName,
		FdCount:     m.FdCount,
		Version:     m.Version,
		Body:        m.Body,
	}

	body, err := cbor.Marshal(env)
	if err != nil {
		return nil, err
	}

	out := make([]byte, lengthPrefixSize+len(body))
	binary.BigEndian.PutUint32(out, uint32(len(body)))
	copy(out[lengthPrefixSize:], body)
	return out, nil
}

// Unmarshal decodes one frame from the head of buf. It returns
// consumed == 0 and a nil error when buf does not yet hold a complete
// frame, matching message.Codec's would-block contract.
func (c *Codec) Unmarshal(buf []byte) (*message.Message, int, error) {
	if len(buf) < lengthPrefixSize {
		return nil, 0, nil
	}

	bodyLen := int(binary.BigEndian.Uint32(buf))
	total := lengthPrefixSize + bodyLen
	if len(buf) < total {
		return nil, 0, nil
	}

	var env envelope
	if err := cbor.Unmarshal(buf[lengthPrefixSize:total], &env); err != nil {
		return nil, 0, err
	}

	m := &message.Message{
		Type:        env.Type,
		Flags:       env.Flags,
		Serial:      env.Serial,
		ReplySerial: env.ReplySerial,
		Sender:      env.Sender,
		Destination: env.Destination,
		Path:        env.Path,
		Interface:   env.Interface,
		Member:      env.Member,
		Signature:   env.Signature,
		ErrorName:   env.ErrorName,
		FdCount:     env.FdCount,
		Version:     env.Version,
		Body:        env.Body,
	}
	if env.Serial != 0 {
		m.Seal(env.Serial)
	}

	return m, total, nil
}
