package stockpile

import (
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// ResourceStockpile is the contract every storage or production entity satisfies.
//
// Balances only move between entities through Transfer, which brackets every movement with
// the BeforeTransfer/AfterTransfer hooks. Credit and Debit require a Grant that only this
// package can issue, so code elsewhere cannot mutate a balance while skipping the ledger.
//
// Sign convention for the hooks: positive is inbound (import) from the recording
// entity's perspective, negative is outbound (export).
type ResourceStockpile interface {
	ID() shared.EntityID

	// RegisterType begins tracking a resource at zero balance. No-op if already tracked.
	RegisterType(t goods.GoodID)

	// Amount is the current balance. Semantics are implementer specific.
	Amount(t goods.GoodID) float64

	// Credit increases the balance by amount (amount >= 0).
	Credit(g Grant, t goods.GoodID, amount float64)

	// Debit attempts to remove amount and reports whether it succeeded.
	Debit(g Grant, t goods.GoodID, amount float64) bool

	CanHold(t goods.GoodID) bool
	Has(t goods.GoodID) bool
	HeldTypes() []goods.GoodID

	// Bookkeeping hooks, never used for validation
	BeforeTransfer(t goods.GoodID, signedAmount float64, counterpart ResourceStockpile)
	AfterTransfer(t goods.GoodID, signedAmount float64, counterpart ResourceStockpile)
}

// Grant authorizes a single balance mutation. The zero value is not valid.
type Grant struct {
	issued bool
}

// Valid reports whether the grant was issued by this package
func (g Grant) Valid() bool {
	return g.issued
}

func issue() Grant {
	return Grant{issued: true}
}

// Seed places an opening balance on a stockpile outside of any transfer.
// It is meant for colonization and for restoring persisted state; ledger hooks are not
// invoked, so seeded amounts never appear as imports.
func Seed(target ResourceStockpile, t goods.GoodID, amount float64) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	target.RegisterType(t)
	target.Credit(issue(), t, amount)
	return nil
}
