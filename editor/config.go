package editor

import (
	"log/slog"

	zone "github.com/lrstanley/bubblezone"

	"github.com/iw2rmb/atmention/mention"
)

// DefaultPopupMaxWidth caps the suggestion popup when Config.PopupMaxWidth
// is zero.
const DefaultPopupMaxWidth = 40

// Config configures the editor Model.
type Config struct {
	// Initial document as HTML.
	HTML string

	Style  Style
	KeyMap KeyMap

	// Mention configures the mention component registered with the editor.
	Mention mention.Options

	// Zones marks popup rows for mouse hit testing. When nil, clicks are
	// resolved against the last rendered popup geometry.
	Zones *zone.Manager

	// ShowStatus reserves the bottom row for the focused mention's state.
	ShowStatus bool

	PopupMaxWidth int

	Logger *slog.Logger

	// OnChange is called from Update when the document or the selection
	// changed.
	OnChange func(ChangeEvent)
}

func normalizeConfig(cfg Config) Config {
	if len(cfg.KeyMap.Left.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.PopupMaxWidth <= 0 {
		cfg.PopupMaxWidth = DefaultPopupMaxWidth
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}
