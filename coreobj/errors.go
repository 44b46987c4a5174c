package coreobj

import "errors"

var (
	// ErrUnknownMember is returned by Call when no object on the chain holds
	// the member.
	ErrUnknownMember = errors.New("unknown member")
	// ErrNotCallable is returned when a member or initializer that must be
	// invoked is not a function.
	ErrNotCallable = errors.New("not callable")
)
