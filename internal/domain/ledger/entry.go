package ledger

import (
	"fmt"
	"math"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// Entry is one journal line: a single side of a completed transfer as seen by the
// recording entity. Entries are immutable once created.
type Entry struct {
	id          EntryID
	entityID    shared.EntityID
	counterpart shared.EntityID
	good        goods.GoodID
	amount      float64 // positive inbound, negative outbound
	direction   FlowDirection
	date        shared.StarDate
}

// NewEntry creates a journal entry with validation
func NewEntry(
	entityID shared.EntityID,
	counterpart shared.EntityID,
	good goods.GoodID,
	amount float64,
	internal bool,
	date shared.StarDate,
) (*Entry, error) {
	e := &Entry{
		id:          NewEntryID(),
		entityID:    entityID,
		counterpart: counterpart,
		good:        good,
		amount:      amount,
		direction:   DirectionFor(amount, internal),
		date:        date,
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// ReconstructEntry reconstructs an entry from persistence
func ReconstructEntry(
	id EntryID,
	entityID shared.EntityID,
	counterpart shared.EntityID,
	good goods.GoodID,
	amount float64,
	direction FlowDirection,
	date shared.StarDate,
) *Entry {
	return &Entry{
		id:          id,
		entityID:    entityID,
		counterpart: counterpart,
		good:        good,
		amount:      amount,
		direction:   direction,
		date:        date,
	}
}

// Validate checks that the entry satisfies all invariants
func (e *Entry) Validate() error {
	if e.entityID.IsZero() {
		return &ErrInvalidEntry{Field: "entity_id", Reason: "entity_id cannot be empty"}
	}
	if e.counterpart.IsZero() {
		return &ErrInvalidEntry{Field: "counterpart_id", Reason: "counterpart_id cannot be empty"}
	}
	if e.amount == 0 || math.IsNaN(e.amount) || math.IsInf(e.amount, 0) {
		return &ErrInvalidEntry{Field: "amount", Reason: fmt.Sprintf("amount must be non-zero and finite: %g", e.amount)}
	}

	// Direction must agree with the sign unless the movement is internal
	switch e.direction {
	case FlowDirectionImport:
		if e.amount < 0 {
			return &ErrInvalidEntry{Field: "direction", Reason: "import entries must be positive"}
		}
	case FlowDirectionExport:
		if e.amount > 0 {
			return &ErrInvalidEntry{Field: "direction", Reason: "export entries must be negative"}
		}
	case FlowDirectionInternal:
	default:
		return &ErrInvalidEntry{Field: "direction", Reason: fmt.Sprintf("invalid direction: %s", e.direction)}
	}
	return nil
}

// Getters (all fields are immutable)

func (e *Entry) ID() EntryID {
	return e.id
}

func (e *Entry) EntityID() shared.EntityID {
	return e.entityID
}

func (e *Entry) CounterpartID() shared.EntityID {
	return e.counterpart
}

func (e *Entry) Good() goods.GoodID {
	return e.good
}

func (e *Entry) Amount() float64 {
	return e.amount
}

func (e *Entry) Direction() FlowDirection {
	return e.direction
}

func (e *Entry) Date() shared.StarDate {
	return e.date
}

// IsInbound returns true if the entry increased the entity's balance
func (e *Entry) IsInbound() bool {
	return e.amount > 0
}

// String provides a human-readable representation
func (e *Entry) String() string {
	return fmt.Sprintf("Entry[%s, %s %s %g with %s at %s]",
		e.id.String(), e.direction, e.good, e.amount, e.counterpart.Short(), e.date)
}
