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

// Package builtin implements the standard interfaces the dispatcher honors
// natively: org.freedesktop.DBus.Peer, Introspectable, Properties and
// ObjectManager.
package builtin

import (
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nabbar/godbus/message"
)

var (
	machineIDOnce sync.Once
	machineID     string
)

// MachineID returns the host's stable machine identifier, read from
// /etc/machine-id or /var/lib/dbus/machine-id, falling back to a
// process-lifetime random id when neither file is readable.
func MachineID() string {
	machineIDOnce.Do(func() {
		for _, p := range []string{"/etc/machine-id", "/var/lib/dbus/machine-id"} {
			if b, err := os.ReadFile(p); err == nil {
				machineID = strings.TrimSpace(string(b))
				return
			}
		}
		machineID = strings.ReplaceAll(uuid.New().String(), "-", "")
	})
	return machineID
}

// Ping answers org.freedesktop.DBus.Peer.Ping with an empty method-return.
func Ping(call *message.Message) *message.Message {
	return message.NewMethodReturn(call)
}

// GetMachineId answers org.freedesktop.DBus.Peer.GetMachineId.
func GetMachineId(call *message.Message) *message.Message {
	reply := message.NewMethodReturn(call)
	reply.Signature = "s"
	reply.Body = MachineID()
	return reply
}
