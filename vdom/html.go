package vdom

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ToHTMLNode converts a virtual node into an x/net/html node tree.
func ToHTMLNode(n Node) *html.Node {
	switch n := n.(type) {
	case Text:
		return &html.Node{Type: html.TextNode, Data: string(n)}
	case *Element:
		if n == nil {
			return nil
		}
		tag := strings.ToLower(n.Tag)
		out := &html.Node{
			Type:     html.ElementNode,
			Data:     tag,
			DataAtom: atom.Lookup([]byte(tag)),
		}
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			if k == "style" {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out.Attr = append(out.Attr, html.Attribute{Key: k, Val: n.Attrs[k]})
		}
		if s := styleString(n.Style); s != "" {
			out.Attr = append(out.Attr, html.Attribute{Key: "style", Val: s})
		}
		for _, c := range n.Children {
			if hn := ToHTMLNode(c); hn != nil {
				out.AppendChild(hn)
			}
		}
		return out
	default:
		return nil
	}
}

// HTML renders n as HTML markup.
func HTML(n Node) (string, error) {
	hn := ToHTMLNode(n)
	if hn == nil {
		return "", nil
	}
	var sb strings.Builder
	if err := html.Render(&sb, hn); err != nil {
		return "", err
	}
	return sb.String(), nil
}
