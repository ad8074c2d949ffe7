package domain

import "github.com/pkg/errors"

// Construction errors
var (
	ErrUnknownVariant    = errors.New("unknown loan variant")
	ErrRejectedByPolicy  = errors.New("loan rejected by risk policy")
	ErrInvalidCommitment = errors.New("invalid commitment")
)

// Calculation errors
var (
	ErrInvalidState   = errors.New("invalid loan state")
	ErrInvalidPayment = errors.New("invalid payment")
)
