package mention

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/iw2rmb/atmention/component"
	"github.com/iw2rmb/atmention/slot"
)

const matchSelector = `span[component-name="` + Name + `"]`

type loader struct {
	def *component.Definition
}

// NewLoader returns the loader that reads serialized mentions with def.
func NewLoader(def *component.Definition) component.Loader {
	return loader{def: def}
}

// Register adds the mention definition and its loader to r.
func Register(r *component.Registry, opt Options) (*component.Definition, error) {
	def := NewDefinition(opt)
	if err := r.Register(def, NewLoader(def)); err != nil {
		return nil, err
	}
	return def, nil
}

func (l loader) Match(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	return goquery.NewDocumentFromNode(n).Is(matchSelector)
}

func (l loader) Read(n *html.Node, svc component.Services, parse component.SlotParser) (*component.Instance, error) {
	child := component.FirstElementChild(n)
	if child == nil {
		return nil, fmt.Errorf("%s: %w: no slot element", Name, component.ErrMalformed)
	}
	s, err := parse(slot.New(slot.Text), child)
	if err != nil {
		return nil, fmt.Errorf("%s: parse slot: %w", Name, err)
	}
	return l.def.CreateInstance(svc, &component.InitData{Slots: []*slot.Slot{s}})
}
