package stockpile

import (
	"context"
	"math"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// Transfer moves amount of t from one stockpile to another using the canonical procedure:
//
//  1. from.BeforeTransfer(t, -amount, to)
//  2. from.Debit(t, amount); on failure abort without touching to
//  3. to.Credit(t, amount)
//  4. from.AfterTransfer(t, -amount, to) and to.AfterTransfer(t, +amount, from)
//
// A refused debit is reported as *ErrInsufficientResources.
func Transfer(from, to ResourceStockpile, t goods.GoodID, amount float64) error {
	if from == nil || to == nil {
		return &ErrInvalidTransfer{Reason: "source and destination are required"}
	}
	if from.ID().Equals(to.ID()) {
		return &ErrInvalidTransfer{Reason: "source and destination are the same entity"}
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if !to.CanHold(t) {
		return &ErrCannotHold{DestinationID: to.ID().String(), Good: t}
	}

	grant := issue()

	from.BeforeTransfer(t, -amount, to)
	if !from.Debit(grant, t, amount) {
		return &ErrInsufficientResources{
			SourceID:  from.ID().String(),
			Good:      t,
			Requested: amount,
			Available: from.Amount(t),
		}
	}
	to.Credit(grant, t, amount)

	from.AfterTransfer(t, -amount, to)
	to.AfterTransfer(t, amount, from)
	return nil
}

func validateAmount(amount float64) error {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return &ErrInvalidAmount{Amount: amount}
	}
	return nil
}

// Movement describes a completed transfer
type Movement struct {
	From   shared.EntityID
	To     shared.EntityID
	Good   goods.GoodID
	Amount float64
	Date   shared.StarDate
}

// Observer is notified after every successful transfer
type Observer interface {
	OnTransfer(ctx context.Context, m Movement)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(ctx context.Context, m Movement)

func (f ObserverFunc) OnTransfer(ctx context.Context, m Movement) {
	f(ctx, m)
}

// Transferrer runs the canonical transfer procedure and fans completed movements out to
// observers (journal, metrics)
type Transferrer struct {
	clock     shared.SimulationClock
	observers []Observer
}

// NewTransferrer creates a transferrer stamping movements with dates from clock
func NewTransferrer(clock shared.SimulationClock, observers ...Observer) *Transferrer {
	return &Transferrer{
		clock:     clock,
		observers: observers,
	}
}

// AddObserver registers an additional observer
func (tr *Transferrer) AddObserver(o Observer) {
	tr.observers = append(tr.observers, o)
}

// Transfer performs the canonical procedure and notifies observers on success
func (tr *Transferrer) Transfer(ctx context.Context, from, to ResourceStockpile, t goods.GoodID, amount float64) (*Movement, error) {
	if err := Transfer(from, to, t, amount); err != nil {
		return nil, err
	}

	m := Movement{
		From:   from.ID(),
		To:     to.ID(),
		Good:   t,
		Amount: amount,
	}
	if tr.clock != nil {
		m.Date = tr.clock.Now()
	}

	for _, o := range tr.observers {
		o.OnTransfer(ctx, m)
	}
	return &m, nil
}
