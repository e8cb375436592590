// Package xmltree provides a small read-only element tree for XML
// documents whose shape is not known ahead of time. It keeps only what
// lookups need: element names, attributes, character data and child
// elements. Processing instructions, comments and namespaces are
// discarded.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Node is a single XML element.
type Node struct {
	Name     string
	Children []*Node

	attrs    map[string]string
	chardata []byte
}

// Parse reads an XML document and returns its root element. The
// document must be well formed; anything else is a parse error.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			if len(t.Attr) > 0 {
				n.attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					n.attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parse xml: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			// The decoder guarantees matched nesting.
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.chardata = append(top.chardata, t...)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parse xml: no root element")
	}
	return root, nil
}

// Attr returns the value of the named attribute, or "" when the
// attribute is absent.
func (n *Node) Attr(name string) string {
	return n.attrs[name]
}

// Text returns the element's character data, including that of nested
// elements.
func (n *Node) Text() string {
	if len(n.Children) == 0 {
		return string(n.chardata)
	}
	var sb strings.Builder
	n.appendText(&sb)
	return sb.String()
}

func (n *Node) appendText(sb *strings.Builder) {
	sb.Write(n.chardata)
	for _, c := range n.Children {
		c.appendText(sb)
	}
}

// SelectFirst walks the slash-separated path below n, taking the first
// matching child at every step. It returns nil when any step is
// missing.
func (n *Node) SelectFirst(path string) *Node {
	cur := n
	for _, step := range strings.Split(path, "/") {
		var next *Node
		for _, c := range cur.Children {
			if c.Name == step {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Select returns every element matching the slash-separated path below
// n. Intermediate steps take the first matching child; the final step
// collects all matches.
func (n *Node) Select(path string) []*Node {
	steps := strings.Split(path, "/")
	cur := n
	for _, step := range steps[:len(steps)-1] {
		cur = cur.SelectFirst(step)
		if cur == nil {
			return nil
		}
	}

	last := steps[len(steps)-1]
	var out []*Node
	for _, c := range cur.Children {
		if c.Name == last {
			out = append(out, c)
		}
	}
	return out
}
