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

package transport

import (
	"io"
	"net"
	"os/exec"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/nabbar/godbus/addr"
)

// NetDialer builds Transport instances for the unix, tcp and unixexec
// address schemes using raw non-blocking sockets (unix abstract-namespace
// sockets need golang.org/x/sys/unix; net.Dial alone cannot express the
// leading NUL byte of an abstract name) and os/exec for peer spawning.
type NetDialer struct{}

// NewNetDialer returns the default socket/exec Dialer.
func NewNetDialer() *NetDialer {
	return &NetDialer{}
}

func (d *NetDialer) Dial(ep *addr.Endpoint) (Transport, error) {
	switch ep.Scheme {
	case addr.SchemeUnix:
		return dialUnix(ep)
	case addr.SchemeTCP:
		return dialTCP(ep)
	case addr.SchemeUnixExec:
		return dialExec(ep)
	case addr.SchemeKernel:
		return nil, newErr(ErrorKernelUnavailable)
	default:
		return nil, newErr(ErrorUnsupportedScheme)
	}
}

// sockTransport wraps a raw non-blocking socket fd obtained via
// golang.org/x/sys/unix. connect() on a non-blocking socket returns
// EINPROGRESS immediately; Step polls for that to clear exactly the way
// the state machine's "opening" state expects.
type sockTransport struct {
	fd        int
	connected bool
}

func newNonblockingSocket(domain, typ int) (int, error) {
	fd, err := unix.Socket(domain, typ|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, err
	}
	return fd, nil
}

func dialUnix(ep *addr.Endpoint) (Transport, error) {
	name, abstract := ep.SocketName()
	if name == "" {
		return nil, newErr(ErrorMissingAddress)
	}

	fd, err := newNonblockingSocket(unix.AF_UNIX, unix.SOCK_STREAM)
	if err != nil {
		return nil, err
	}

	sa := &unix.SockaddrUnix{Name: name}
	if abstract {
		// golang.org/x/sys/unix encodes the abstract namespace itself when
		// Name starts with '@', translating it to the leading NUL byte the
		// kernel expects.
		sa.Name = "@" + name
	}

	if err = unix.Connect(fd, sa); err != nil && err != unix.EINPROGRESS && err != unix.EALREADY {
		_ = unix.Close(fd)
		return nil, err
	}

	return &sockTransport{fd: fd, connected: err == nil}, nil
}

func dialTCP(ep *addr.Endpoint) (Transport, error) {
	if ep.Host == "" || ep.Port == "" {
		return nil, newErr(ErrorMissingAddress)
	}

	domain := unix.AF_INET
	if ep.Family == addr.FamilyIPv6 {
		domain = unix.AF_INET6
	}

	fd, err := newNonblockingSocket(domain, unix.SOCK_STREAM)
	if err != nil {
		return nil, err
	}

	ips, err := net.LookupIP(ep.Host)
	if err != nil || len(ips) == 0 {
		_ = unix.Close(fd)
		if err == nil {
			err = newErr(ErrorMissingAddress)
		}
		return nil, err
	}

	port, err := strconv.Atoi(ep.Port)
	if err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	var sa unix.Sockaddr
	if domain == unix.AF_INET6 {
		var a [16]byte
		copy(a[:], ips[0].To16())
		sa = &unix.SockaddrInet6{Port: port, Addr: a}
	} else {
		var a [4]byte
		copy(a[:], ips[0].To4())
		sa = &unix.SockaddrInet4{Port: port, Addr: a}
	}

	if err = unix.Connect(fd, sa); err != nil && err != unix.EINPROGRESS && err != unix.EALREADY {
		_ = unix.Close(fd)
		return nil, err
	}

	return &sockTransport{fd: fd, connected: err == nil}, nil
}

func (s *sockTransport) Step() (bool, error) {
	if s.connected {
		return true, nil
	}
	errno, gerr := unix.GetsockoptInt(s.fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if gerr != nil {
		return false, gerr
	}
	switch errno {
	case 0:
		s.connected = true
		return true, nil
	case int(unix.EINPROGRESS), int(unix.EALREADY):
		return false, nil
	default:
		return false, unix.Errno(errno)
	}
}

func (s *sockTransport) Fd() int { return s.fd }

func (s *sockTransport) Read(p []byte) (int, error) {
	n, err := unix.Read(s.fd, p)
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		return 0, nil
	}
	if n == 0 && err == nil && len(p) > 0 {
		return 0, io.EOF
	}
	if n < 0 {
		n = 0
	}
	return n, err
}

func (s *sockTransport) Write(p []byte) (int, error) {
	n, err := unix.Write(s.fd, p)
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		return 0, nil
	}
	if n < 0 {
		n = 0
	}
	return n, err
}

func (s *sockTransport) Atomic() bool { return false }

func (s *sockTransport) Close() error {
	if s.fd < 0 {
		return nil
	}
	err := unix.Close(s.fd)
	s.fd = -1
	return err
}

// execTransport spawns a peer process per unixexec: and speaks the
// protocol over its stdin/stdout pipes. Spawning is treated as
// instantaneous (no separate "connecting" phase), so Step always reports
// connected.
type execTransport struct {
	cmd    *exec.Cmd
	stdin  *pipeWriter
	stdout *pipeReader
}

func dialExec(ep *addr.Endpoint) (Transport, error) {
	if len(ep.Argv) == 0 {
		return nil, newErr(ErrorMissingAddress)
	}

	cmd := exec.Command(ep.Argv[0], ep.Argv[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err = cmd.Start(); err != nil {
		return nil, err
	}

	return &execTransport{
		cmd:    cmd,
		stdin:  newPipeWriter(stdin),
		stdout: newPipeReader(stdout),
	}, nil
}

func (e *execTransport) Step() (bool, error) { return true, nil }

func (e *execTransport) Fd() int { return e.stdout.Fd() }

func (e *execTransport) Read(p []byte) (int, error) { return e.stdout.Read(p) }

func (e *execTransport) Write(p []byte) (int, error) { return e.stdin.Write(p) }

func (e *execTransport) Atomic() bool { return false }

func (e *execTransport) Close() error {
	_ = e.stdin.Close()
	_ = e.stdout.Close()
	if e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
	}
	return e.cmd.Wait()
}
