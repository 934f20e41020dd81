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

package dispatch

import "github.com/nabbar/godbus/message"

// Rule is the subset of a match-rule the dispatcher itself evaluates. The
// full match-rule grammar (arg0namespace, path_namespace, arg[N] predicates
// and their parsing) belongs to an external collaborator; this core only
// needs to test a parsed rule against a message and run the matched
// callback with the same reentrancy discipline as Filters.
type Rule struct {
	Type      message.Type
	Sender    string
	Interface string
	Member    string
	Path      string
}

// Matches reports whether msg satisfies every non-empty field of r.
func (r *Rule) Matches(msg *message.Message) bool {
	if r.Type != 0 && r.Type != msg.Type {
		return false
	}
	if r.Sender != "" && r.Sender != msg.Sender {
		return false
	}
	if r.Interface != "" && r.Interface != msg.Interface {
		return false
	}
	if r.Member != "" && r.Member != msg.Member {
		return false
	}
	if r.Path != "" && r.Path != msg.Path {
		return false
	}
	return true
}

// MatchFunc is invoked for every rule that matches an incoming message.
type MatchFunc func(msg *message.Message, userdata interface{}) int

type matchEntry struct {
	id            uint64
	rule          *Rule
	fn            MatchFunc
	userdata      interface{}
	lastIteration uint64
	removed       bool
}

// Matches is the reentrancy-safe list of registered match rules, indexed
// linearly: the match-rule tree (for O(log n) lookup by predicate) is the
// external collaborator's job, this core only guarantees safe iteration.
type Matches struct {
	list      []*matchEntry
	nextID    uint64
	iteration uint64
	modified  bool
}

// NewMatches creates an empty match-rule list.
func NewMatches() *Matches {
	return &Matches{}
}

// Add registers rule with fn, returning an id usable with Remove.
func (m *Matches) Add(rule *Rule, fn MatchFunc, userdata interface{}) uint64 {
	m.nextID++
	id := m.nextID
	m.list = append(m.list, &matchEntry{id: id, rule: rule, fn: fn, userdata: userdata, lastIteration: m.iteration})
	m.modified = true
	return id
}

// Remove unregisters the match with the given id.
func (m *Matches) Remove(id uint64) bool {
	for _, e := range m.list {
		if e.id == id && !e.removed {
			e.removed = true
			m.modified = true
			return true
		}
	}
	return false
}

// Dispatch offers msg to every rule whose predicate matches, with the same
// modified-flag + iteration-counter reentrancy discipline as Filters.
func (m *Matches) Dispatch(msg *message.Message) int {
	m.iteration++
	iter := m.iteration

	i := 0
	for i < len(m.list) {
		e := m.list[i]
		if e.removed || e.lastIteration == iter || !e.rule.Matches(msg) {
			i++
			continue
		}

		m.modified = false
		e.lastIteration = iter
		result := e.fn(msg, e.userdata)

		if m.modified {
			m.compact()
			i = 0
			continue
		}

		if result != 0 {
			return result
		}
		i++
	}

	m.compact()
	return 0
}

func (m *Matches) compact() {
	out := m.list[:0]
	for _, e := range m.list {
		if !e.removed {
			out = append(out, e)
		}
	}
	m.list = out
}

// Len reports the number of live match rules.
func (m *Matches) Len() int {
	return len(m.list)
}
