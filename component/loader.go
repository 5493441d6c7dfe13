package component

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/iw2rmb/atmention/slot"
)

// SlotParser fills s from the contents of n and returns it.
type SlotParser func(s *slot.Slot, n *html.Node) (*slot.Slot, error)

// Loader recognizes a serialized component and rebuilds it.
type Loader interface {
	Match(n *html.Node) bool
	Read(n *html.Node, svc Services, parse SlotParser) (*Instance, error)
}

// Registry holds the definitions and loaders a host knows about.
type Registry struct {
	defs    map[string]*Definition
	order   []string
	loaders []Loader
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds d and, when l is non-nil, its loader.
func (r *Registry) Register(d *Definition, l Loader) error {
	if _, ok := r.defs[d.Name]; ok {
		return fmt.Errorf("%s: %w", d.Name, ErrDuplicate)
	}
	r.defs[d.Name] = d
	r.order = append(r.order, d.Name)
	if l != nil {
		r.loaders = append(r.loaders, l)
	}
	return nil
}

func (r *Registry) Definition(name string) (*Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names lists registered definitions in registration order.
func (r *Registry) Names() []string { return append([]string(nil), r.order...) }

// LoaderFor returns the first loader matching n.
func (r *Registry) LoaderFor(n *html.Node) (Loader, bool) {
	if n == nil || n.Type != html.ElementNode {
		return nil, false
	}
	for _, l := range r.loaders {
		if l.Match(n) {
			return l, true
		}
	}
	return nil, false
}

// FirstElementChild returns n's first element child, skipping text and
// comments.
func FirstElementChild(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// Attr returns the value of attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
