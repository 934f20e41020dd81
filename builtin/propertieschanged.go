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

package builtin

import (
	"github.com/nabbar/godbus/message"
	"github.com/nabbar/godbus/tree"
)

// PropertiesChangedBody is the decoded body shape of a PropertiesChanged
// signal: named properties go into Changed unless flagged invalidate-only,
// in which case their name goes into Invalidated instead.
type PropertiesChangedBody struct {
	Interface   string
	Changed     map[string]interface{}
	Invalidated []string
}

// PropertiesChanged builds the org.freedesktop.DBus.Properties.PropertiesChanged
// signal for the named properties of iface at path. A path with no matching
// vtable for iface is reported as ErrorNotFound; a named property that does
// not exist on that vtable, or is not flagged emits-change, is reported as
// ErrorPropertyMissing.
func PropertiesChanged(t *tree.Tree, path, iface string, names []string) (*message.Message, error) {
	vt, ok := t.VTablesAt(path)[iface]
	if !ok {
		return nil, newErr(ErrorNotFound)
	}

	body := PropertiesChangedBody{
		Interface: iface,
		Changed:   make(map[string]interface{}),
	}

	for _, name := range names {
		prop := findProperty(vt.Properties, name)
		if prop == nil || !prop.Flags.EmitsChange() {
			return nil, newErr(ErrorPropertyMissing)
		}
		if prop.Flags.EmitsInvalidatesOnly() {
			body.Invalidated = append(body.Invalidated, name)
			continue
		}
		v, err := prop.Getter(vt.Handle)
		if err != nil {
			return nil, err
		}
		body.Changed[name] = v
	}

	sig := message.NewSignal(path, message.IfaceProperties, "PropertiesChanged")
	sig.Signature = "sa{sv}as"
	sig.Body = body
	return sig, nil
}

func findProperty(props []*tree.Property, name string) *tree.Property {
	for _, p := range props {
		if p.Name == name {
			return p
		}
	}
	return nil
}
