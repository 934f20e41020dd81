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

// Package bus wires one-shot CLI requests (ping, introspect, call) to a
// freshly dialed connection: resolve the address, drive the handshake with
// Flush, issue a single blocking Call, then close. Request structs carry
// go-playground/validator tags so malformed flags are rejected before any
// socket is touched.
package bus

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nabbar/godbus/addr"
	"github.com/nabbar/godbus/codec/cbor"
	"github.com/nabbar/godbus/conn"
	"github.com/nabbar/godbus/message"
)

var validate = validator.New()

type PingRequest struct {
	Address     string `validate:"omitempty"`
	Destination string `validate:"required"`
	TimeoutMS   int    `validate:"required,gt=0"`
}

func (r PingRequest) Validate() error { return validate.Struct(r) }

type IntrospectRequest struct {
	Address     string `validate:"omitempty"`
	Destination string `validate:"required"`
	Path        string `validate:"required,startswith=/"`
	TimeoutMS   int    `validate:"required,gt=0"`
}

func (r IntrospectRequest) Validate() error { return validate.Struct(r) }

type CallRequest struct {
	Address     string `validate:"omitempty"`
	Destination string `validate:"required"`
	Path        string `validate:"required,startswith=/"`
	Interface   string `validate:"required"`
	Member      string `validate:"required"`
	TimeoutMS   int    `validate:"required,gt=0"`
}

func (r CallRequest) Validate() error { return validate.Struct(r) }

// resolveAddress returns the explicit address, or the session bus, or the
// system bus, matching the default-address rules in §6.
func resolveAddress(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if a, err := addr.SessionBusAddress(); err == nil && a != "" {
		return a, nil
	}
	return addr.SystemBusAddress(), nil
}

// dial builds a running connection against the requested (or default-
// resolved) bus address, using the repo's own cbor codec as the wire
// codec collaborator.
func dial(explicitAddress string) (*conn.Connection, error) {
	address, err := resolveAddress(explicitAddress)
	if err != nil {
		return nil, err
	}

	c := conn.New()
	if err = c.SetCodec(cbor.New()); err != nil {
		return nil, err
	}
	if err = c.SetAddress(address); err != nil {
		return nil, err
	}
	if err = c.Start(); err != nil {
		return nil, err
	}
	if err = c.Flush(); err != nil {
		return nil, err
	}
	return c, nil
}

func Ping(req PingRequest) error {
	c, err := dial(req.Address)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	call := message.NewMethodCall(req.Destination, "/", message.IfacePeer, "Ping")
	_, err = c.Call(call, time.Duration(req.TimeoutMS)*time.Millisecond)
	return err
}

func Introspect(req IntrospectRequest) (string, error) {
	c, err := dial(req.Address)
	if err != nil {
		return "", err
	}
	defer func() { _ = c.Close() }()

	call := message.NewMethodCall(req.Destination, req.Path, message.IfaceIntrospect, "Introspect")
	reply, err := c.Call(call, time.Duration(req.TimeoutMS)*time.Millisecond)
	if err != nil {
		return "", err
	}
	xml, _ := reply.Body.(string)
	return xml, nil
}

func Call(req CallRequest) (*message.Message, error) {
	c, err := dial(req.Address)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()

	call := message.NewMethodCall(req.Destination, req.Path, req.Interface, req.Member)
	return c.Call(call, time.Duration(req.TimeoutMS)*time.Millisecond)
}
