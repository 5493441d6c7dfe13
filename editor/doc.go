// Package editor provides a Bubble Tea host for slot documents with inline
// mention components.
//
// The package is responsible for input handling, viewport behavior,
// grapheme-aware rendering of the virtual element tree, the suggestion popup
// overlay, and change events for hosts.
package editor
