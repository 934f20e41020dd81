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

// Package addr parses the semicolon-separated bus address grammar (unix,
// tcp, unixexec, kernel schemes) into typed endpoint descriptors and walks
// them on connect failure. It never opens a socket itself; that belongs to
// the transport collaborator.
package addr

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	liberr "github.com/nabbar/godbus/errors"
)

// Scheme identifies one of the four recognized transport families.
type Scheme uint8

const (
	SchemeUnix Scheme = iota
	SchemeTCP
	SchemeUnixExec
	SchemeKernel
)

func (s Scheme) String() string {
	switch s {
	case SchemeUnix:
		return "unix"
	case SchemeTCP:
		return "tcp"
	case SchemeUnixExec:
		return "unixexec"
	case SchemeKernel:
		return "kernel"
	default:
		return "unknown"
	}
}

// Family restricts a tcp endpoint to ipv4 or ipv6; zero means unspecified.
type Family uint8

const (
	FamilyAny Family = iota
	FamilyIPv4
	FamilyIPv6
)

// Endpoint is one parsed member of an address list.
type Endpoint struct {
	Scheme Scheme

	// unix
	Path      string
	Abstract  string
	IsUnixPkt bool

	// tcp
	Host   string
	Port   string
	Family Family

	// unixexec
	Argv []string

	// shared
	GUID string
}

// SocketName returns the effective name to bind/connect a unix socket to,
// and whether it is in the abstract namespace.
func (e *Endpoint) SocketName() (name string, abstract bool) {
	if e.Abstract != "" {
		return e.Abstract, true
	}
	return e.Path, false
}

// List is a parsed, semicolon-separated address with a cursor tracking
// which endpoint to try next.
type List struct {
	Endpoints []*Endpoint
	cursor    int
	lastErr   error
}

// Parse splits addr on ';' and parses every endpoint. An endpoint that
// fails to parse aborts the whole parse with that error.
func Parse(address string) (*List, error) {
	if address == "" {
		return nil, liberr.New(uint16(ErrorEmptyAddress), getMessage(ErrorEmptyAddress))
	}

	l := &List{}

	for _, raw := range strings.Split(address, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		ep, err := parseEndpoint(raw)
		if err != nil {
			return nil, err
		}
		l.Endpoints = append(l.Endpoints, ep)
	}

	if len(l.Endpoints) == 0 {
		return nil, liberr.New(uint16(ErrorEmptyAddress), getMessage(ErrorEmptyAddress))
	}

	return l, nil
}

// Current returns the endpoint the cursor currently points at, or nil if
// the cursor has advanced past the last one.
func (l *List) Current() *Endpoint {
	if l == nil || l.cursor >= len(l.Endpoints) {
		return nil
	}
	return l.Endpoints[l.cursor]
}

// Advance moves the cursor to the next endpoint, recording err as the most
// recent failure. It returns the new current endpoint, or nil when the
// list is exhausted.
func (l *List) Advance(err error) *Endpoint {
	if l == nil {
		return nil
	}
	if err != nil {
		l.lastErr = err
	}
	l.cursor++
	return l.Current()
}

// Exhausted reports whether every endpoint has been tried.
func (l *List) Exhausted() bool {
	return l == nil || l.cursor >= len(l.Endpoints)
}

// Err returns the most recent per-endpoint failure, or a generic
// all-endpoints-failed error when none was recorded.
func (l *List) Err() error {
	if l != nil && l.lastErr != nil {
		return l.lastErr
	}
	return liberr.New(uint16(ErrorAllEndpointsFailed), getMessage(ErrorAllEndpointsFailed))
}

func parseEndpoint(raw string) (*Endpoint, error) {
	scheme, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return nil, liberr.New(uint16(ErrorUnknownScheme), fmt.Sprintf("%s: %s", getMessage(ErrorUnknownScheme), raw))
	}

	kv, err := parseKV(rest)
	if err != nil {
		return nil, err
	}

	ep := &Endpoint{GUID: kv["guid"]}

	switch scheme {
	case "unix":
		ep.Scheme = SchemeUnix
		path, hasPath := kv["path"]
		abstract, hasAbstract := kv["abstract"]
		if hasPath == hasAbstract {
			return nil, liberr.New(uint16(ErrorConflictingKey), getMessage(ErrorConflictingKey))
		}
		ep.Path = path
		ep.Abstract = abstract
	case "tcp":
		ep.Scheme = SchemeTCP
		host, hasHost := kv["host"]
		port, hasPort := kv["port"]
		if !hasHost || !hasPort {
			return nil, liberr.New(uint16(ErrorMissingKey), getMessage(ErrorMissingKey))
		}
		ep.Host = host
		ep.Port = port
		switch kv["family"] {
		case "", "ipv4":
			if kv["family"] == "ipv4" {
				ep.Family = FamilyIPv4
			}
		case "ipv6":
			ep.Family = FamilyIPv6
		default:
			return nil, liberr.New(uint16(ErrorMissingKey), "unrecognized tcp family")
		}
	case "unixexec":
		ep.Scheme = SchemeUnixExec
		path, hasPath := kv["path"]
		if !hasPath {
			return nil, liberr.New(uint16(ErrorMissingKey), getMessage(ErrorMissingKey))
		}
		argv, err := collectArgv(kv, path)
		if err != nil {
			return nil, err
		}
		ep.Path = path
		ep.Argv = argv
	case "kernel":
		ep.Scheme = SchemeKernel
		path, hasPath := kv["path"]
		if !hasPath {
			return nil, liberr.New(uint16(ErrorMissingKey), getMessage(ErrorMissingKey))
		}
		ep.Path = path
	default:
		return nil, liberr.New(uint16(ErrorUnknownScheme), fmt.Sprintf("%s: %s", getMessage(ErrorUnknownScheme), scheme))
	}

	return ep, nil
}

func collectArgv(kv map[string]string, path string) ([]string, error) {
	max := -1
	for k := range kv {
		if !strings.HasPrefix(k, "argv") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(k, "argv"))
		if err != nil || n < 0 || n > 256 {
			return nil, liberr.New(uint16(ErrorInvalidArgvIndex), getMessage(ErrorInvalidArgvIndex))
		}
		if n > max {
			max = n
		}
	}

	if max < 0 {
		return []string{path}, nil
	}

	argv := make([]string, max+1)
	for i := 0; i <= max; i++ {
		v, ok := kv[fmt.Sprintf("argv%d", i)]
		if !ok {
			if i == 0 {
				argv[0] = path
				continue
			}
			return nil, liberr.New(uint16(ErrorInvalidArgvIndex), getMessage(ErrorInvalidArgvIndex))
		}
		argv[i] = v
	}

	return argv, nil
}

func parseKV(rest string) (map[string]string, error) {
	out := make(map[string]string)
	if rest == "" {
		return out, nil
	}
	for _, pair := range strings.Split(rest, ",") {
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, liberr.New(uint16(ErrorMissingKey), fmt.Sprintf("malformed key=value pair: %s", pair))
		}
		dec, err := unescape(v)
		if err != nil {
			return nil, err
		}
		out[k] = dec
	}
	return out, nil
}

func unescape(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", liberr.New(uint16(ErrorInvalidEscape), getMessage(ErrorInvalidEscape))
		}
		n, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
		if err != nil {
			return "", liberr.New(uint16(ErrorInvalidEscape), getMessage(ErrorInvalidEscape))
		}
		b.WriteByte(byte(n))
		i += 2
	}
	return b.String(), nil
}

// SystemBusAddress returns the well-known system bus address, honoring the
// DBUS_SYSTEM_BUS_ADDRESS override.
func SystemBusAddress() string {
	if v := os.Getenv("DBUS_SYSTEM_BUS_ADDRESS"); v != "" {
		return v
	}
	return "unix:path=/run/dbus/system_bus_socket"
}

// SessionBusAddress returns the session bus address from
// DBUS_SESSION_BUS_ADDRESS, falling back to $XDG_RUNTIME_DIR/bus.
func SessionBusAddress() (string, error) {
	if v := os.Getenv("DBUS_SESSION_BUS_ADDRESS"); v != "" {
		return v, nil
	}
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		return "", liberr.New(uint16(ErrorNoRuntimeDir), getMessage(ErrorNoRuntimeDir))
	}
	return "unix:path=" + dir + "/bus", nil
}
