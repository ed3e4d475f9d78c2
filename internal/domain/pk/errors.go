package pk

import "errors"

var (
	ErrInvalidRegimen          = errors.New("invalid regimen")
	ErrInvalidPharmacokinetics = errors.New("invalid pharmacokinetics")
	ErrInvalidTimeGrid         = errors.New("invalid time grid")
)
