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

// Package tree implements the hierarchical object path tree: per-node
// method vtables, property tables, enumerators, fallbacks and the
// object-manager flag, plus the two accelerator indices the dispatcher
// consults for method calls and Properties.Get/Set.
package tree

import (
	"sort"
	"strings"

	"github.com/nabbar/godbus/message"
)

type indexKey struct {
	path, iface, member string
}

// Tree is the path -> node map plus its two dispatch accelerators. It is
// not safe for concurrent use; the owning connection serializes it.
type Tree struct {
	root    *node
	byPath  map[string]*node
	methods map[indexKey]*VTable
	props   map[indexKey]*VTable
}

// New creates an empty tree rooted at "/".
func New() *Tree {
	root := newNode("/", nil)
	return &Tree{
		root:    root,
		byPath:  map[string]*node{"/": root},
		methods: make(map[indexKey]*VTable),
		props:   make(map[indexKey]*VTable),
	}
}

func (t *Tree) ensure(path string) *node {
	if n, ok := t.byPath[path]; ok {
		return n
	}
	parentPath := parentOf(path)
	parent := t.ensure(parentPath)
	n := newNode(path, parent)
	parent.children[path] = n
	t.byPath[path] = n
	return n
}

// AddCallback registers a plain callback at path. A non-fallback callback
// serves path itself; a fallback callback serves only descendants of path,
// not path itself.
func (t *Tree) AddCallback(path string, fallback bool, fn func(msg *message.Message, handle interface{}) int, handle interface{}) error {
	if !validPath(path) {
		return newErr(ErrorInvalidPath)
	}
	n := t.ensure(path)
	n.callbacks = append(n.callbacks, &callback{fn: fn, handle: handle, fallback: fallback})
	return nil
}

// AddVTable attaches iface at path. Duplicate interfaces at the same node
// are rejected with already-exists; mixing fallback and non-fallback
// registrations of the same interface at the same node is rejected with
// wrong-protocol.
func (t *Tree) AddVTable(path string, v *VTable, fallback bool) error {
	if !validPath(path) {
		return newErr(ErrorInvalidPath)
	}
	if err := validateVTable(v); err != nil {
		return err
	}

	n := t.ensure(path)
	if existing := n.vtable(v.Interface); existing != nil {
		if existing.Fallback != fallback {
			return newErr(ErrorWrongProtocol)
		}
		return newErr(ErrorAlreadyExists)
	}

	v.Fallback = fallback
	n.vtables = append(n.vtables, v)

	for _, m := range v.Methods {
		t.methods[indexKey{path, v.Interface, m.Name}] = v
	}
	for _, p := range v.Properties {
		t.props[indexKey{path, v.Interface, p.Name}] = v
	}
	return nil
}

// RemoveVTable detaches iface from path. It is idempotent: removing an
// already-removed interface reports false ("no change") rather than an
// error, with no observable effect on dispatch.
func (t *Tree) RemoveVTable(path, iface string) bool {
	n, ok := t.byPath[path]
	if !ok {
		return false
	}

	for i, v := range n.vtables {
		if v.Interface != iface {
			continue
		}
		n.vtables = append(n.vtables[:i], n.vtables[i+1:]...)
		for _, m := range v.Methods {
			delete(t.methods, indexKey{path, iface, m.Name})
		}
		for _, p := range v.Properties {
			delete(t.props, indexKey{path, iface, p.Name})
		}
		t.gc(n)
		return true
	}
	return false
}

// AddEnumerator registers a dynamic-child producer at path.
func (t *Tree) AddEnumerator(path string, fn Enumerator) error {
	if !validPath(path) {
		return newErr(ErrorInvalidPath)
	}
	n := t.ensure(path)
	n.enumerators = append(n.enumerators, fn)
	return nil
}

// SetObjectManager flags or unflags path as an object-manager root.
func (t *Tree) SetObjectManager(path string, flag bool) error {
	if !validPath(path) {
		return newErr(ErrorInvalidPath)
	}
	n := t.ensure(path)
	n.objectMgr = flag
	if !flag {
		t.gc(n)
	}
	return nil
}

// gc unlinks n and recurses to its parent when n has become empty, per
// the garbage-collection invariant: a node persists iff it has at least
// one child, callback, vtable, enumerator, or object-manager flag.
func (t *Tree) gc(n *node) {
	for n != nil && n.parent != nil && n.empty() {
		parent := n.parent
		delete(parent.children, n.path)
		delete(t.byPath, n.path)
		n = parent
	}
}

// FindMethod looks up (path, iface, member) first as an exact,
// non-fallback registration, then by walking ancestor prefixes looking
// for a fallback registration of the same interface.
func (t *Tree) FindMethod(path, iface, member string) (*Method, *VTable, bool) {
	if v, ok := t.methods[indexKey{path, iface, member}]; ok && !v.Fallback {
		return v.method(member), v, true
	}
	for _, anc := range ancestorPrefixes(path) {
		if v, ok := t.methods[indexKey{anc, iface, member}]; ok && v.Fallback {
			return v.method(member), v, true
		}
	}
	return nil, nil, false
}

// FindProperty mirrors FindMethod for the Properties interface's Get/Set.
func (t *Tree) FindProperty(path, iface, name string) (*Property, *VTable, bool) {
	if v, ok := t.props[indexKey{path, iface, name}]; ok && !v.Fallback {
		return v.property(name), v, true
	}
	for _, anc := range ancestorPrefixes(path) {
		if v, ok := t.props[indexKey{anc, iface, name}]; ok && v.Fallback {
			return v.property(name), v, true
		}
	}
	return nil, nil, false
}

// Callbacks returns the plain callbacks that apply to path: non-fallback
// ones registered exactly at path, then fallback ones from every
// ancestor, closest first.
func (t *Tree) Callbacks(path string) []func(msg *message.Message, handle interface{}) int {
	var out []func(msg *message.Message, handle interface{}) int
	if n, ok := t.byPath[path]; ok {
		for _, c := range n.callbacks {
			if !c.fallback {
				out = append(out, wrap(c))
			}
		}
	}
	for _, anc := range ancestorPrefixes(path) {
		if n, ok := t.byPath[anc]; ok {
			for _, c := range n.callbacks {
				if c.fallback {
					out = append(out, wrap(c))
				}
			}
		}
	}
	return out
}

func wrap(c *callback) func(msg *message.Message, handle interface{}) int {
	return func(msg *message.Message, _ interface{}) int {
		return c.fn(msg, c.handle)
	}
}

// Exists reports whether path has any registration (node present).
func (t *Tree) Exists(path string) bool {
	_, ok := t.byPath[path]
	return ok
}

// Interfaces returns the interface names attached at path, including
// fallback interfaces inherited from ancestors.
func (t *Tree) Interfaces(path string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(n *node, onlyFallback bool) {
		for _, v := range n.vtables {
			if onlyFallback && !v.Fallback {
				continue
			}
			if !seen[v.Interface] {
				seen[v.Interface] = true
				out = append(out, v.Interface)
			}
		}
	}
	if n, ok := t.byPath[path]; ok {
		add(n, false)
	}
	for _, anc := range ancestorPrefixes(path) {
		if n, ok := t.byPath[anc]; ok {
			add(n, true)
		}
	}
	sort.Strings(out)
	return out
}

// VTablesAt returns the vtables in effect at path (own plus inherited
// fallbacks), keyed by interface name.
func (t *Tree) VTablesAt(path string) map[string]*VTable {
	out := make(map[string]*VTable)
	if n, ok := t.byPath[path]; ok {
		for _, v := range n.vtables {
			out[v.Interface] = v
		}
	}
	for _, anc := range ancestorPrefixes(path) {
		if n, ok := t.byPath[anc]; ok {
			for _, v := range n.vtables {
				if v.Fallback {
					if _, exists := out[v.Interface]; !exists {
						out[v.Interface] = v
					}
				}
			}
		}
	}
	return out
}

// ObjectManagerAt reports whether path or an ancestor carries the
// object-manager flag, and returns the owning path.
func (t *Tree) ObjectManagerAt(path string) (string, bool) {
	if n, ok := t.byPath[path]; ok && n.objectMgr {
		return path, true
	}
	for _, anc := range ancestorPrefixes(path) {
		if n, ok := t.byPath[anc]; ok && n.objectMgr {
			return anc, true
		}
	}
	return "", false
}

// Descendants returns every registered path strictly below prefix, plus
// every valid path yielded by enumerators registered on prefix or any of
// its registered descendants. Results are deduplicated and sorted.
func (t *Tree) Descendants(prefix string) ([]string, error) {
	set := make(map[string]bool)

	for p, n := range t.byPath {
		if p != prefix && strings.HasPrefix(p, prefix) && (prefix == "/" || strings.HasPrefix(p, prefix+"/")) {
			if n.empty() {
				continue
			}
			set[p] = true
		}
	}

	for p, n := range t.byPath {
		if p != prefix && !strings.HasPrefix(p, prefix) {
			continue
		}
		if prefix != "/" && p != prefix && !strings.HasPrefix(p, prefix+"/") {
			continue
		}
		for _, enum := range n.enumerators {
			names, err := enum(p)
			if err != nil {
				return nil, err
			}
			for _, name := range names {
				if validPath(name) && strings.HasPrefix(name, prefix) {
					set[name] = true
				}
			}
		}
	}

	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

// ChildNames returns the direct child path segments of path (not full
// paths), from both registered children and enumerators, deduplicated.
func (t *Tree) ChildNames(path string) ([]string, error) {
	descendants, err := t.Descendants(path)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, d := range descendants {
		rest := strings.TrimPrefix(d, path)
		rest = strings.TrimPrefix(rest, "/")
		if rest == "" {
			continue
		}
		name := strings.SplitN(rest, "/", 2)[0]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
