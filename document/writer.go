package document

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/iw2rmb/atmention/component"
	"github.com/iw2rmb/atmention/slot"
	"github.com/iw2rmb/atmention/vdom"
)

// Nodes renders the content of s as virtual nodes.
func Nodes(s *slot.Slot, outputMode bool, render component.SlotRender) ([]vdom.Node, error) {
	segs := s.Segments()
	out := make([]vdom.Node, 0, len(segs))
	for _, seg := range segs {
		if !seg.IsComponent() {
			out = appendText(out, seg.Text)
			continue
		}
		inst, ok := seg.Component.(*component.Instance)
		if !ok {
			return nil, fmt.Errorf("document: component %q is not an instance", seg.Component.Name())
		}
		if el := inst.Render(outputMode, render); el != nil {
			out = append(out, el)
		}
	}
	return out, nil
}

// appendText splits newlines into br elements.
func appendText(out []vdom.Node, text string) []vdom.Node {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			out = append(out, vdom.E("br"))
		}
		if line != "" {
			out = append(out, vdom.Text(line))
		}
	}
	return out
}

// OutputSlotRender renders nested slots for serialization.
func OutputSlotRender() component.SlotRender {
	var render component.SlotRender
	render = func(s *slot.Slot, host func() *vdom.Element) *vdom.Element {
		el := host()
		nodes, err := Nodes(s, true, render)
		if err != nil {
			return el
		}
		return el.Append(nodes...)
	}
	return render
}

// Write serializes the content of root as HTML.
func Write(root *slot.Slot) (string, error) {
	nodes, err := Nodes(root, true, OutputSlotRender())
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, n := range nodes {
		hn := vdom.ToHTMLNode(n)
		if hn == nil {
			continue
		}
		if err := html.Render(&sb, hn); err != nil {
			return "", fmt.Errorf("document: render: %w", err)
		}
	}
	return sb.String(), nil
}
