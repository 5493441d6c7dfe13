package document

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/iw2rmb/atmention/component"
	"github.com/iw2rmb/atmention/slot"
)

// Reader rebuilds slot trees from HTML.
type Reader struct {
	reg *component.Registry
	svc component.Services
	log *slog.Logger
}

func NewReader(reg *component.Registry, svc component.Services) *Reader {
	log := svc.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Reader{reg: reg, svc: svc, log: log}
}

// NewRoot returns an empty root slot accepting text and inline components.
func NewRoot() *slot.Slot {
	return slot.New(slot.Text, slot.InlineComponent)
}

// Read parses src into root, or into a new root when root is nil.
func (r *Reader) Read(src string, root *slot.Slot) (*slot.Slot, error) {
	if root == nil {
		root = NewRoot()
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("document: parse: %w", err)
	}
	for _, n := range doc.Find("body").Contents().Nodes {
		if err := r.readNode(root, n); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// ParseSlot fills s from the children of n. It is the component.SlotParser
// handed to loaders.
func (r *Reader) ParseSlot(s *slot.Slot, n *html.Node) (*slot.Slot, error) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := r.readNode(s, c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (r *Reader) readNode(s *slot.Slot, n *html.Node) error {
	switch n.Type {
	case html.TextNode:
		s.Retain(s.Length())
		s.Insert(n.Data)
		return nil
	case html.ElementNode:
	default:
		return nil
	}

	if l, ok := r.reg.LoaderFor(n); ok {
		inst, err := l.Read(n, r.svc, r.ParseSlot)
		if err != nil {
			return fmt.Errorf("document: read <%s>: %w", n.Data, err)
		}
		s.Retain(s.Length())
		if !s.InsertComponent(inst) {
			r.log.Warn("component dropped by slot schema", "component", inst.Name())
			inst.Destroy()
		}
		return nil
	}

	if n.Data == "br" {
		s.Retain(s.Length())
		s.Insert("\n")
		return nil
	}

	// Unknown markup is flattened into the surrounding slot.
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := r.readNode(s, c); err != nil {
			return err
		}
	}
	return nil
}
