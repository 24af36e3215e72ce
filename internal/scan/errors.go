package scan

import "errors"

var (
	ErrUnknownAxis  = errors.New("unknown configuration axis")
	ErrInvalidRange = errors.New("invalid index range")
	ErrBadFilter    = errors.New("invalid filter expression")
)
