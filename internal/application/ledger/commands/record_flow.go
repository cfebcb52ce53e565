package commands

import (
	"context"

	"github.com/andrescamacho/spaceeconomy-go/internal/application/common"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/ledger"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/stockpile"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
)

// FlowJournal writes both sides of every completed transfer to the entry repository.
// It is registered as a stockpile.Observer on the session's Transferrer.
type FlowJournal struct {
	entries ledger.EntryRepository
	world   *world.World
}

// NewFlowJournal creates a journal writing to entries
func NewFlowJournal(entries ledger.EntryRepository, w *world.World) *FlowJournal {
	return &FlowJournal{
		entries: entries,
		world:   w,
	}
}

// OnTransfer records the outbound entry for the source and the inbound entry for the
// destination. Failures are logged; the transfer itself has already happened.
func (j *FlowJournal) OnTransfer(ctx context.Context, m stockpile.Movement) {
	if m.Amount == 0 {
		return
	}

	logger := common.LoggerFromContext(ctx)
	internal := j.world.IsInternal(m.From, m.To)

	outbound, err := ledger.NewEntry(m.From, m.To, m.Good, -m.Amount, internal, m.Date)
	if err != nil {
		logger.Log("ERROR", "Failed to build outbound journal entry", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	inbound, err := ledger.NewEntry(m.To, m.From, m.Good, m.Amount, internal, m.Date)
	if err != nil {
		logger.Log("ERROR", "Failed to build inbound journal entry", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if err := j.entries.Create(ctx, outbound, inbound); err != nil {
		logger.Log("ERROR", "Failed to persist journal entries", map[string]interface{}{
			"error": err.Error(),
			"good":  m.Good.String(),
			"from":  m.From.Short(),
			"to":    m.To.Short(),
		})
	}
}

var _ stockpile.Observer = (*FlowJournal)(nil)
