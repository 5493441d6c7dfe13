package component

import "errors"

var (
	ErrNoSlots    = errors.New("component: no slots")
	ErrMalformed  = errors.New("component: malformed element")
	ErrDuplicate  = errors.New("component: duplicate definition")
	ErrNoRenderer = errors.New("component: setup returned no renderer")
)
