package ledger_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/ledger"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

const ore goods.GoodID = 1

func TestResourceLedger_RecordExternalMovements(t *testing.T) {
	l := ledger.NewResourceLedger()
	partner := shared.NewEntityID()

	l.Record(ore, 30, partner, false)
	l.Record(ore, -12, partner, false)

	assert.Equal(t, 30.0, l.Tally(ore, ledger.TallyAdded))
	assert.Equal(t, 12.0, l.Tally(ore, ledger.TallyRemoved))
	assert.Equal(t, 18.0, l.Net(ore))
	assert.Equal(t, 30.0, l.Imported(partner, ore))
	assert.Equal(t, -12.0, l.Exported(partner, ore))
}

func TestResourceLedger_InternalMovementsSkipBuckets(t *testing.T) {
	l := ledger.NewResourceLedger()
	mine := shared.NewEntityID()

	l.Record(ore, 10, mine, true)

	assert.Equal(t, 10.0, l.Tally(ore, ledger.TallyAdded))
	assert.Equal(t, 0.0, l.Imported(mine, ore))

	snap := l.Snapshot()
	assert.Empty(t, snap.Imports)
	assert.Empty(t, snap.Exports)
}

func TestResourceLedger_ZeroAmountIsIgnored(t *testing.T) {
	l := ledger.NewResourceLedger()

	l.Record(ore, 0, shared.NewEntityID(), false)

	assert.Empty(t, l.Snapshot().Goods())
}

func TestResourceLedger_AddedMinusRemovedEqualsSignedSum(t *testing.T) {
	l := ledger.NewResourceLedger()
	partners := []shared.EntityID{shared.NewEntityID(), shared.NewEntityID(), shared.NewEntityID()}
	rng := rand.New(rand.NewSource(7))

	sum := 0.0
	for i := 0; i < 200; i++ {
		amount := float64(rng.Intn(200) - 100)
		sum += amount
		l.Record(ore, amount, partners[i%len(partners)], i%5 == 0)
	}

	assert.InDelta(t, sum, l.Net(ore), 1e-9)
}

func TestResourceLedger_ClearResetsEverything(t *testing.T) {
	l := ledger.NewResourceLedger()
	partner := shared.NewEntityID()
	l.Record(ore, 5, partner, false)
	l.MarkPrimaryProduction(ore)
	l.RecordPeriodProduction(ore, 5)

	l.Clear()

	snap := l.Snapshot()
	assert.Empty(t, snap.Tallies)
	assert.Empty(t, snap.Imports)
	assert.Empty(t, snap.Exports)
	assert.Empty(t, snap.PreviousPeriodProduction)
	assert.Empty(t, snap.PrimaryProduction)
}

func TestResourceLedger_SnapshotIsDetached(t *testing.T) {
	l := ledger.NewResourceLedger()
	partner := shared.NewEntityID()
	l.Record(ore, 5, partner, false)

	snap := l.Snapshot()
	l.Record(ore, 5, partner, false)

	assert.Equal(t, 5.0, snap.Added(ore))
	assert.Equal(t, 5.0, snap.Imports[partner][ore])
	assert.Equal(t, 10.0, l.Tally(ore, ledger.TallyAdded))
}

func TestResourceLedger_PeriodProduction(t *testing.T) {
	l := ledger.NewResourceLedger()

	l.MarkPrimaryProduction(ore)
	l.RecordPeriodProduction(ore, 3)
	l.RecordPeriodProduction(ore, 4)

	snap := l.Snapshot()
	require.Len(t, snap.PrimaryProduction, 1)
	assert.Equal(t, ore, snap.PrimaryProduction[0])
	assert.Equal(t, 7.0, snap.PreviousPeriodProduction[ore])
}
