// Package slot implements the content containers components own.
//
// A slot is a flat sequence of items. A text item is one grapheme cluster; an
// inline component item is a single opaque unit. Offsets count items, so a
// component always has length 1.
package slot
