// Package vdom is the virtual element tree component renderers produce.
//
// The same tree is serialized to HTML for storage and drawn to the terminal by
// the editor.
package vdom

import (
	"sort"
	"strings"
)

// Node is either *Element or Text.
type Node interface {
	isNode()
}

// Text is a literal text node.
type Text string

func (Text) isNode() {}

// Element is a tag with attributes, inline styles, children and an optional
// click handler. Handlers are never serialized.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Style    map[string]string
	Children []Node
	OnClick  func()
}

func (*Element) isNode() {}

// E returns a new element with the given children.
func E(tag string, children ...Node) *Element {
	return &Element{Tag: tag, Children: compact(children)}
}

func (e *Element) Attr(key, value string) *Element {
	if e.Attrs == nil {
		e.Attrs = make(map[string]string, 1)
	}
	e.Attrs[key] = value
	return e
}

func (e *Element) SetStyle(key, value string) *Element {
	if e.Style == nil {
		e.Style = make(map[string]string, 1)
	}
	e.Style[key] = value
	return e
}

func (e *Element) Append(children ...Node) *Element {
	e.Children = append(e.Children, compact(children)...)
	return e
}

func (e *Element) Click(fn func()) *Element {
	e.OnClick = fn
	return e
}

// GetAttr returns an attribute value.
func (e *Element) GetAttr(key string) (string, bool) {
	v, ok := e.Attrs[key]
	return v, ok
}

func (e *Element) StyleValue(key string) string { return e.Style[key] }

// TextContent concatenates all descendant text.
func TextContent(n Node) string {
	var sb strings.Builder
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case Text:
			sb.WriteString(string(n))
		case *Element:
			if n == nil {
				return
			}
			for _, c := range n.Children {
				walk(c)
			}
		}
	}
	walk(n)
	return sb.String()
}

func styleString(style map[string]string) string {
	if len(style) == 0 {
		return ""
	}
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+style[k])
	}
	return strings.Join(parts, ";")
}

// ParseStyle splits an inline style attribute into a map.
func ParseStyle(s string) map[string]string {
	out := map[string]string{}
	for _, decl := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(v)
	}
	return out
}

func compact(nodes []Node) []Node {
	out := nodes[:0:0]
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if e, ok := n.(*Element); ok && e == nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
