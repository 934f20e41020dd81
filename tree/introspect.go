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

import (
	"encoding/xml"
	"strings"
)

type xmlArg struct {
	Name      string `xml:"name,attr,omitempty"`
	Type      string `xml:"type,attr"`
	Direction string `xml:"direction,attr,omitempty"`
}

type xmlMethod struct {
	Name string   `xml:"name,attr"`
	Args []xmlArg `xml:"arg"`
}

type xmlProperty struct {
	Name   string `xml:"name,attr"`
	Type   string `xml:"type,attr"`
	Access string `xml:"access,attr"`
}

type xmlSignal struct {
	Name string   `xml:"name,attr"`
	Args []xmlArg `xml:"arg"`
}

type xmlInterface struct {
	Name       string        `xml:"name,attr"`
	Methods    []xmlMethod   `xml:"method"`
	Properties []xmlProperty `xml:"property"`
	Signals    []xmlSignal   `xml:"signal"`
}

type xmlNode struct {
	XMLName    xml.Name       `xml:"node"`
	Interfaces []xmlInterface `xml:"interface"`
	Children   []xmlChild     `xml:"node"`
}

type xmlChild struct {
	Name string `xml:"name,attr"`
}

// Introspect builds the introspection XML for path: every interface in
// effect there (own plus inherited fallback vtables) and every direct
// child name.
func (t *Tree) Introspect(path string) (string, error) {
	vtables := t.VTablesAt(path)

	doc := xmlNode{}
	for _, iface := range t.Interfaces(path) {
		v := vtables[iface]
		if v == nil {
			continue
		}
		xi := xmlInterface{Name: iface}
		for _, m := range v.Methods {
			xi.Methods = append(xi.Methods, xmlMethod{Name: m.Name, Args: sigArgs(m.InSig, "in", m.OutSig)})
		}
		for _, p := range v.Properties {
			access := "readwrite"
			switch {
			case p.Flags.Readable() && !p.Flags.Writable():
				access = "read"
			case !p.Flags.Readable() && p.Flags.Writable():
				access = "write"
			}
			xi.Properties = append(xi.Properties, xmlProperty{Name: p.Name, Type: p.Sig, Access: access})
		}
		for _, s := range v.Signals {
			xi.Signals = append(xi.Signals, xmlSignal{Name: s.Name, Args: sigArgs(s.Sig, "", "")})
		}
		doc.Interfaces = append(doc.Interfaces, xi)
	}

	children, err := t.ChildNames(path)
	if err != nil {
		return "", err
	}
	for _, c := range children {
		doc.Children = append(doc.Children, xmlChild{Name: c})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE node PUBLIC "-//freedesktop//DTD D-BUS Object Introspection 1.0//EN" "http://www.freedesktop.org/standards/dbus/1.0/introspect.dtd">` + "\n")
	b.Write(out)
	return b.String(), nil
}

func sigArgs(in, dirIn, out string) []xmlArg {
	var args []xmlArg
	if dirIn != "" {
		for _, t := range splitSig(in) {
			args = append(args, xmlArg{Type: t, Direction: "in"})
		}
		for _, t := range splitSig(out) {
			args = append(args, xmlArg{Type: t, Direction: "out"})
		}
		return args
	}
	for _, t := range splitSig(in) {
		args = append(args, xmlArg{Type: t})
	}
	return args
}

// splitSig splits a D-Bus signature into its top-level single-complete
// types. It is a light-weight structural split (not a validator -- the
// codec collaborator owns signature grammar) used only to shape
// introspection <arg> elements.
func splitSig(sig string) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(sig); i++ {
		switch sig[i] {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
		}
		if depth == 0 && (sig[i] == ')' || sig[i] == '}' || isSimple(sig[i])) {
			out = append(out, sig[start:i+1])
			start = i + 1
		}
	}
	return out
}

func isSimple(b byte) bool {
	switch b {
	case 'y', 'b', 'n', 'q', 'i', 'u', 'x', 't', 'd', 's', 'o', 'g', 'h', 'v':
		return true
	default:
		return false
	}
}
