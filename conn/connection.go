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
	"os"
	"time"

	"github.com/nabbar/godbus/addr"
	"github.com/nabbar/godbus/dispatch"
	"github.com/nabbar/godbus/logger"
	"github.com/nabbar/godbus/message"
	"github.com/nabbar/godbus/queue"
	"github.com/nabbar/godbus/replytracker"
	"github.com/nabbar/godbus/transport"
	"github.com/nabbar/godbus/tree"
)

const (
	defaultQueueMax    = 256
	defaultAuthTimeout = 30 * time.Second
	defaultCallTimeout = 25 * time.Second
)

// Connection is the single-owner, single-threaded engine described in §3
// and §5: one instance per live bus, carrying all per-connection state
// through the state machine in state.go.
type Connection struct {
	owningPID int
	state     State
	role      Role
	anonymous bool
	flags     AttachFlags

	address    string
	addrList   *addr.List
	execArgv   []string
	inFd       int
	outFd      int
	fdsSet     bool

	dialer transport.Dialer
	trans  transport.Transport
	auth   Authenticator
	codec  message.Codec

	rq *queue.RQueue
	wq *queue.WQueue

	tracker *replytracker.Tracker
	filters *dispatch.Filters
	matches *dispatch.Matches
	tree    *tree.Tree

	log     logger.Logger
	metrics MetricsSink

	serial     uint32
	uniqueName string
	serverGUID string

	authTimeout time.Duration
	callTimeout time.Duration

	processing   bool
	helloCall    *message.Message
	authDeadline time.Time

	readBuf   []byte
	readAccum []byte

	wireCache []byte
	wireFor   *message.Message
}

// New creates a fresh connection in state unset, with library defaults for
// the dialer, queues, reply-tracker timeout and logger. Setup methods
// (options.go) further configure it before Start.
func New() *Connection {
	return &Connection{
		owningPID:   os.Getpid(),
		state:       StateUnset,
		role:        RoleClient,
		inFd:        -1,
		outFd:       -1,
		dialer:      transport.NewNetDialer(),
		auth:        NewNullAuthenticator(),
		rq:          queue.NewRQueue(defaultQueueMax),
		wq:          queue.NewWQueue(defaultQueueMax),
		tracker:     replytracker.New(defaultCallTimeout),
		filters:     dispatch.NewFilters(),
		matches:     dispatch.NewMatches(),
		tree:        tree.New(),
		log:         logger.New(nil),
		metrics:     noopMetrics{},
		serial:      0,
		authTimeout: defaultAuthTimeout,
		callTimeout: defaultCallTimeout,
		readBuf:     make([]byte, 4096),
	}
}

// State returns the connection's current lifecycle state.
func (c *Connection) State() State { return c.state }

// UniqueName returns the broker-assigned unique name, empty before hello
// completes.
func (c *Connection) UniqueName() string { return c.uniqueName }

// Tree exposes the object tree for registration calls.
func (c *Connection) Tree() *tree.Tree { return c.tree }

// Filters exposes the filter list for registration calls.
func (c *Connection) Filters() *dispatch.Filters { return c.filters }

// Matches exposes the match-rule list for registration calls.
func (c *Connection) Matches() *dispatch.Matches { return c.matches }

func (c *Connection) checkOwner() error {
	if c.owningPID != os.Getpid() {
		return newErr(ErrorChildProcess)
	}
	return nil
}

// isKernelTransport reports whether the current endpoint (when dialed from
// an address list) uses the kernel scheme, which skips the hello handshake
// entirely per §4.1.
func (c *Connection) isKernelTransport() bool {
	if c.addrList == nil {
		return false
	}
	ep := c.addrList.Current()
	return ep != nil && ep.Scheme == addr.SchemeKernel
}

func (c *Connection) nextSerial() uint32 {
	c.serial++
	if c.serial == 0 {
		c.serial = 1
	}
	return c.serial
}

// Start transitions unset -> opening: resolves the first address endpoint
// (or uses explicitly configured fds) and opens the transport.
func (c *Connection) Start() error {
	if err := c.checkOwner(); err != nil {
		return err
	}
	if c.state != StateUnset {
		return newErr(ErrorPermissionDenied)
	}
	if c.codec == nil {
		return newErr(ErrorInvalidArgument)
	}

	if c.fdsSet {
		c.trans = transport.NewFdPair(c.inFd, c.outFd)
	} else {
		if c.addrList == nil {
			return newErr(ErrorInvalidArgument)
		}
		ep := c.addrList.Current()
		if ep == nil {
			return newErr(ErrorInvalidArgument)
		}

		t, err := c.dialer.Dial(ep)
		if err != nil {
			if next := c.addrList.Advance(err); next == nil {
				return c.addrList.Err()
			}
			return c.Start()
		}
		c.trans = t
	}

	c.setState(StateOpening)
	return nil
}

// Close transitions unconditionally to closed. Idempotent.
func (c *Connection) Close() error {
	c.setState(StateClosed)
	if c.trans != nil {
		return c.trans.Close()
	}
	return nil
}
