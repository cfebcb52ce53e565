package area

import (
	"fmt"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// CommercialArea is a marketplace run by independent traders
type CommercialArea struct {
	id         shared.EntityID
	tradeValue int
	currency   shared.EntityID
}

// NewCommercialArea creates a commercial area trading in currency
func NewCommercialArea(tradeValue int, currency shared.EntityID) (*CommercialArea, error) {
	return ReconstructCommercialArea(shared.NewEntityID(), tradeValue, currency)
}

// ReconstructCommercialArea rebuilds a commercial area from persisted state
func ReconstructCommercialArea(id shared.EntityID, tradeValue int, currency shared.EntityID) (*CommercialArea, error) {
	if id.IsZero() {
		return nil, shared.NewValidationError("id", "cannot be empty")
	}
	if tradeValue < 0 {
		return nil, shared.NewValidationError("trade_value", fmt.Sprintf("cannot be negative: %d", tradeValue))
	}
	return &CommercialArea{id: id, tradeValue: tradeValue, currency: currency}, nil
}

func (c *CommercialArea) ID() shared.EntityID { return c.id }
func (c *CommercialArea) Kind() Kind { return KindCommercial }
func (c *CommercialArea) JobClassification() JobType { return JobTypeIndependent }
func (c *CommercialArea) Accept(d Dispatcher) { d.DispatchCommercial(c) }
func (c *CommercialArea) TradeValue() int { return c.tradeValue }
func (c *CommercialArea) Currency() shared.EntityID { return c.currency }

func (c *CommercialArea) String() string {
	return fmt.Sprintf("Commercial[%s, value=%d]", c.id.Short(), c.tradeValue)
}
