package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/ledger"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

func TestNewEntry_DirectionFollowsSign(t *testing.T) {
	city := shared.NewEntityID()
	partner := shared.NewEntityID()

	inbound, err := ledger.NewEntry(city, partner, ore, 50, false, 10)
	require.NoError(t, err)
	outbound, err := ledger.NewEntry(city, partner, ore, -50, false, 10)
	require.NoError(t, err)
	internal, err := ledger.NewEntry(city, partner, ore, 8, true, 10)
	require.NoError(t, err)

	assert.Equal(t, ledger.FlowDirectionImport, inbound.Direction())
	assert.True(t, inbound.IsInbound())
	assert.Equal(t, ledger.FlowDirectionExport, outbound.Direction())
	assert.Equal(t, ledger.FlowDirectionInternal, internal.Direction())
	assert.False(t, inbound.ID().IsZero())
}

func TestNewEntry_Validation(t *testing.T) {
	city := shared.NewEntityID()

	tests := []struct {
		name        string
		entity      shared.EntityID
		counterpart shared.EntityID
		amount      float64
		field       string
	}{
		{"missing entity", shared.EntityID{}, shared.NewEntityID(), 1, "entity_id"},
		{"missing counterpart", city, shared.EntityID{}, 1, "counterpart_id"},
		{"zero amount", city, shared.NewEntityID(), 0, "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.NewEntry(tt.entity, tt.counterpart, ore, tt.amount, false, 1)

			var invalid *ledger.ErrInvalidEntry
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestReconstructEntry_ValidateCatchesSignMismatch(t *testing.T) {
	e := ledger.ReconstructEntry(ledger.NewEntryID(), shared.NewEntityID(), shared.NewEntityID(), ore, -5, ledger.FlowDirectionImport, 3)

	assert.Error(t, e.Validate())
}

func TestParseFlowDirection(t *testing.T) {
	d, err := ledger.ParseFlowDirection("EXPORT")
	require.NoError(t, err)
	assert.Equal(t, ledger.FlowDirectionExport, d)

	_, err = ledger.ParseFlowDirection("SIDEWAYS")
	assert.Error(t, err)
}
