// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parser turns raw USPTO XML streams into canonical patent records.
// It splits concatenated documents, resolves fields across schema variants,
// and normalizes dates and categories.
// Implements: prd001-patent-parsing;
//
//	docs/ARCHITECTURE § Parser.
package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Node is one element of a parsed document tree. Text holds character data
// before the first child; Tail holds character data following the element,
// owned by the parent. This keeps interleaved text in document order so
// flattening reproduces the source reading order.
type Node struct {
	Name     string
	Attrs    []xml.Attr
	Text     string
	Tail     string
	Children []*Node
}

// ParseTree decodes one XML document into a Node tree. Local tag names are
// kept; namespaces are dropped, since the same logical element appears with
// and without a namespace across document variants.
func ParseTree(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local, Attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			cur := stack[len(stack)-1]
			if len(cur.Children) == 0 {
				cur.Text += string(t)
			} else {
				last := cur.Children[len(cur.Children)-1]
				last.Tail += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("no root element")
	}
	return root, nil
}

// ParseTreeString decodes an XML document held in a string.
func ParseTreeString(s string) (*Node, error) {
	return ParseTree(strings.NewReader(s))
}

// Find returns the first element matching path in document order. Each
// path step names an element located anywhere beneath the previous step.
// Returns nil when no element matches.
func (n *Node) Find(path string) *Node {
	var found *Node
	n.findPath(strings.Split(path, "/"), func(m *Node) bool {
		found = m
		return true
	})
	return found
}

// FindAll returns every element matching path in document order.
func (n *Node) FindAll(path string) []*Node {
	var found []*Node
	n.findPath(strings.Split(path, "/"), func(m *Node) bool {
		found = append(found, m)
		return false
	})
	return found
}

// findPath walks descendants matching the step sequence, invoking visit on
// each full match in document order. Visit returning true stops the walk.
func (n *Node) findPath(steps []string, visit func(*Node) bool) bool {
	return n.walkDescendants(steps[0], func(m *Node) bool {
		if len(steps) == 1 {
			return visit(m)
		}
		return m.findPath(steps[1:], visit)
	})
}

// walkDescendants visits descendants named name in document order, stopping
// early when visit returns true.
func (n *Node) walkDescendants(name string, visit func(*Node) bool) bool {
	for _, c := range n.Children {
		if c.Name == name {
			if visit(c) {
				return true
			}
		}
		if c.walkDescendants(name, visit) {
			return true
		}
	}
	return false
}

// FlattenText concatenates an element's own text, each child's flattened
// text, and each child's trailing text in document order, joined by single
// spaces with empty fragments dropped.
func (n *Node) FlattenText() string {
	if n == nil {
		return ""
	}
	var parts []string
	if t := strings.TrimSpace(n.Text); t != "" {
		parts = append(parts, t)
	}
	for _, c := range n.Children {
		if t := c.FlattenText(); t != "" {
			parts = append(parts, t)
		}
		if t := strings.TrimSpace(c.Tail); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
