package domain

import "errors"

// Sentinel errors for the interest workflow and lookups. Handlers translate
// these to HTTP statuses; everything else is treated as a store failure.
var (
	ErrCropNotFound         = errors.New("crop not found")
	ErrInterestNotFound     = errors.New("interest not found")
	ErrSelfInterest         = errors.New("owner cannot send interest to own crop")
	ErrDuplicateInterest    = errors.New("interest already sent for this crop")
	ErrAlreadyDecided       = errors.New("interest has already been decided")
	ErrInvalidStatus        = errors.New("status must be accepted or rejected")
	ErrInsufficientQuantity = errors.New("requested quantity exceeds available stock")
)
