package types

import "errors"

var (
	ErrInputAccess = errors.New("cannot read input")
	ErrParse       = errors.New("invalid json")
	ErrShape       = errors.New("unexpected document shape")
	ErrOutput      = errors.New("cannot write output")
)
