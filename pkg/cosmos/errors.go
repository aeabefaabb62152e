package cosmos

import "errors"

// Kind declaration errors.
var (
	ErrSchema = errors.New("invalid kind declaration")
)

// Construction and lookup errors.
var (
	ErrInvalidName      = errors.New("invalid name")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrDuplicateName    = errors.New("duplicate name")
	ErrNotFound         = errors.New("not found")
	ErrUnknownAttribute = errors.New("unknown attribute")
)

// Link protocol errors. Seeing one of these indicates a caller mutating a
// registry or link outside the sanctioned link/unlink path.
var (
	ErrUnlinkProtocol = errors.New("can only unlink an object through its own Unlink method")
)
