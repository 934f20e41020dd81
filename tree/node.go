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

package tree

import "github.com/nabbar/godbus/message"

// Enumerator produces dynamic child paths under the node it is registered
// on. Returned paths must start with the node's own path.
type Enumerator func(prefix string) ([]string, error)

type callback struct {
	fn       func(msg *message.Message, handle interface{}) int
	handle   interface{}
	fallback bool
}

// node is one entry of the path tree. Paths are never stored twice: a
// node exists in Tree.byPath iff it has at least one attachment or a
// live child, per the garbage-collection invariant.
type node struct {
	path     string
	parent   *node
	children map[string]*node

	callbacks   []*callback
	vtables     []*VTable
	enumerators []Enumerator
	objectMgr   bool
}

func newNode(path string, parent *node) *node {
	return &node{path: path, parent: parent, children: make(map[string]*node)}
}

// empty reports whether the node carries no attachment and no child --
// the condition under which it is garbage-collected.
func (n *node) empty() bool {
	return len(n.children) == 0 &&
		len(n.callbacks) == 0 &&
		len(n.vtables) == 0 &&
		len(n.enumerators) == 0 &&
		!n.objectMgr
}

func (n *node) vtable(iface string) *VTable {
	for _, v := range n.vtables {
		if v.Interface == iface {
			return v
		}
	}
	return nil
}
