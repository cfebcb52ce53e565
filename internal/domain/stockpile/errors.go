package stockpile

import (
	"fmt"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
)

// ErrInsufficientResources indicates the source refused the debit
type ErrInsufficientResources struct {
	SourceID  string
	Good      goods.GoodID
	Requested float64
	Available float64
}

func (e *ErrInsufficientResources) Error() string {
	return fmt.Sprintf("insufficient %s at %s: need %g, have %g",
		e.Good, e.SourceID, e.Requested, e.Available)
}

// ErrInvalidAmount indicates a negative or non-finite transfer amount
type ErrInvalidAmount struct {
	Amount float64
}

func (e *ErrInvalidAmount) Error() string {
	return fmt.Sprintf("invalid transfer amount: %g", e.Amount)
}

// ErrInvalidTransfer indicates the transfer endpoints are unusable
type ErrInvalidTransfer struct {
	Reason string
}

func (e *ErrInvalidTransfer) Error() string {
	return fmt.Sprintf("invalid transfer: %s", e.Reason)
}

// ErrCannotHold indicates the destination does not accept the resource type
type ErrCannotHold struct {
	DestinationID string
	Good          goods.GoodID
}

func (e *ErrCannotHold) Error() string {
	return fmt.Sprintf("%s cannot hold %s", e.DestinationID, e.Good)
}
