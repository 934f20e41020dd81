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

// MethodHandler implements one vtable method. It returns the message to
// send back (a method-return or an error built via message.NewError), or
// a Go error for an unexpected internal failure that the dispatcher turns
// into org.freedesktop.DBus.Error.Failed.
type MethodHandler func(call *message.Message, handle interface{}) (*message.Message, error)

// Method is one entry of a vtable's method list.
type Method struct {
	Name        string
	InSig       string
	OutSig      string
	Handler     MethodHandler
}

// PropertyFlags describes read/write access and change notification for a
// property entry.
type PropertyFlags uint8

const (
	PropReadable PropertyFlags = 1 << iota
	PropWritable
	PropEmitsChange
	PropEmitsInvalidates
)

func (f PropertyFlags) Readable() bool           { return f&PropReadable != 0 }
func (f PropertyFlags) Writable() bool           { return f&PropWritable != 0 }
func (f PropertyFlags) EmitsChange() bool        { return f&PropEmitsChange != 0 }
func (f PropertyFlags) EmitsInvalidatesOnly() bool { return f&PropEmitsInvalidates != 0 }

// PropertyGetter produces the current value of a property as a body value
// the codec collaborator knows how to wrap in a variant.
type PropertyGetter func(handle interface{}) (interface{}, error)

// PropertySetter applies a new value to a property.
type PropertySetter func(handle interface{}, value interface{}) error

// Property is one entry of a vtable's property list.
type Property struct {
	Name    string
	Sig     string
	Flags   PropertyFlags
	Getter  PropertyGetter
	Setter  PropertySetter
}

// Signal is one entry of a vtable's signal list, kept for introspection.
type Signal struct {
	Name string
	Sig  string
}

// VTable is one interface attached to a node: start, methods, properties,
// signals, end, in the order the spec's wire format mandates.
type VTable struct {
	Interface  string
	Fallback   bool
	Methods    []*Method
	Properties []*Property
	Signals    []*Signal

	// Find, when set, is consulted before the static Methods list to pick
	// the Method for a member. Tree.FindMethod only matches members named
	// in Methods, so Find can replace the Method of a listed member but
	// does not add new member names; properties do not use it.
	Find   func(member string) *Method
	Handle interface{}
}

func (v *VTable) method(name string) *Method {
	if v.Find != nil {
		if m := v.Find(name); m != nil {
			return m
		}
	}
	for _, m := range v.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (v *VTable) property(name string) *Property {
	for _, p := range v.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func validateVTable(v *VTable) error {
	if v.Interface == "" {
		return newErr(ErrorInvalidInterface)
	}
	for _, m := range v.Methods {
		if m.Name == "" {
			return newErr(ErrorInvalidMember)
		}
		if m.Handler == nil {
			return newErr(ErrorMissingHandler)
		}
	}
	for _, p := range v.Properties {
		if p.Name == "" {
			return newErr(ErrorInvalidMember)
		}
		if p.Flags.EmitsInvalidatesOnly() && !p.Flags.EmitsChange() {
			return newErr(ErrorInvalidFlags)
		}
		if p.Flags.Readable() && p.Getter == nil {
			return newErr(ErrorMissingHandler)
		}
		if p.Flags.Writable() && p.Setter == nil {
			return newErr(ErrorMissingHandler)
		}
	}
	return nil
}
