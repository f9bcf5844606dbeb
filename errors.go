package opw

import "errors"

// Sentinel errors for the opw package.
// Use errors.Is to check: errors.Is(err, opw.ErrInvalidParameters)
var (
	ErrInvalidParameters        = errors.New("opw: invalid parameters")
	ErrInvalidRotationDirection = errors.New("opw: invalid rotation direction")
	ErrInvalidBranch            = errors.New("opw: invalid branch")
	ErrInvalidRotation          = errors.New("opw: not a rotation matrix")
)
