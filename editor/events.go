package editor

import "github.com/iw2rmb/atmention/selection"

type ChangeEvent struct {
	// Version increases on every document mutation and component
	// invalidation.
	Version   uint64
	Selection selection.Position
	InMention bool

	// Flattened text with mentions written as "@" + query.
	Text string
}

func buildChangeEvent(d *docState) ChangeEvent {
	pos := d.sel.Position()
	_, inMention := mentionOf(pos.Slot)
	return ChangeEvent{
		Version:   d.version,
		Selection: pos,
		InMention: inMention,
		Text:      d.text(),
	}
}
