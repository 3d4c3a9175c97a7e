package poker

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCard reports a card, index or mask outside the 52-card deck.
	ErrInvalidCard = errors.New("invalid card")
	// ErrDuplicateCard reports the same card supplied twice to one evaluation.
	ErrDuplicateCard = errors.New("duplicate card")
)

// CardError describes a caller contract violation. Evaluate5 panics with a
// *CardError; the validating entry points return one.
type CardError struct {
	Err    error // ErrInvalidCard or ErrDuplicateCard
	Detail string
}

func (e *CardError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Detail)
}

func (e *CardError) Unwrap() error { return e.Err }

func invalidIndex(i Index) *CardError {
	return &CardError{Err: ErrInvalidCard, Detail: fmt.Sprintf("index %d not in [0,%d)", uint8(i), NumCards)}
}

func duplicateIndex(i Index) *CardError {
	return &CardError{Err: ErrDuplicateCard, Detail: i.String()}
}
