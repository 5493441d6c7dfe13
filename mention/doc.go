// Package mention implements the inline @mention component.
//
// A mention renders "@", one editable text slot and a floating list of
// suggestions. Every insertion into the slot schedules a delayed suggestion
// computation through the host scheduler; selecting a suggestion replaces
// the slot text and moves the cursor just past the component.
package mention
