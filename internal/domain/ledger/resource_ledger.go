package ledger

import (
	"sort"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/goods"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// Tally keys
const (
	TallyAdded   = "added"
	TallyRemoved = "removed"
)

// ResourceLedger is the running account of a stockpile entity: per-resource added/removed
// tallies, import and export buckets keyed by counterpart, and the period production data
// the reporting scheduler reads before clearing.
//
// A ResourceLedger is not safe for concurrent use; the owning entity guards it.
type ResourceLedger struct {
	tallies                  map[goods.GoodID]map[string]float64
	imports                  map[shared.EntityID]map[goods.GoodID]float64
	exports                  map[shared.EntityID]map[goods.GoodID]float64
	previousPeriodProduction map[goods.GoodID]float64
	primaryProduction        map[goods.GoodID]struct{}
}

// NewResourceLedger creates an empty ledger
func NewResourceLedger() *ResourceLedger {
	l := &ResourceLedger{}
	l.Clear()
	return l
}

// Record books one side of a transfer.
// The magnitude is tallied under "added" (signed > 0) or "removed" (signed < 0). Unless the
// movement is internal (counterpart is one of the owner's own areas) the signed amount is
// also bucketed as an import (positive) or export (negative) for the counterpart.
func (l *ResourceLedger) Record(t goods.GoodID, signed float64, counterpart shared.EntityID, internal bool) {
	if signed == 0 {
		return
	}

	tally, ok := l.tallies[t]
	if !ok {
		tally = make(map[string]float64)
		l.tallies[t] = tally
	}
	if signed > 0 {
		tally[TallyAdded] += signed
	} else {
		tally[TallyRemoved] += -signed
	}

	if internal {
		return
	}

	buckets := l.imports
	if signed < 0 {
		buckets = l.exports
	}
	bucket, ok := buckets[counterpart]
	if !ok {
		bucket = make(map[goods.GoodID]float64)
		buckets[counterpart] = bucket
	}
	bucket[t] += signed
}

// Tally returns the accumulated magnitude for a resource under key ("added" or "removed")
func (l *ResourceLedger) Tally(t goods.GoodID, key string) float64 {
	return l.tallies[t][key]
}

// Net returns added minus removed for a resource
func (l *ResourceLedger) Net(t goods.GoodID) float64 {
	return l.tallies[t][TallyAdded] - l.tallies[t][TallyRemoved]
}

// Imported returns the signed amount of t imported from counterpart (>= 0)
func (l *ResourceLedger) Imported(counterpart shared.EntityID, t goods.GoodID) float64 {
	return l.imports[counterpart][t]
}

// Exported returns the signed amount of t exported to counterpart (<= 0)
func (l *ResourceLedger) Exported(counterpart shared.EntityID, t goods.GoodID) float64 {
	return l.exports[counterpart][t]
}

// MarkPrimaryProduction flags t as produced locally during the current period
func (l *ResourceLedger) MarkPrimaryProduction(t goods.GoodID) {
	l.primaryProduction[t] = struct{}{}
}

// RecordPeriodProduction adds amount to the previous-period production snapshot
func (l *ResourceLedger) RecordPeriodProduction(t goods.GoodID, amount float64) {
	l.previousPeriodProduction[t] += amount
}

// Clear resets tallies, imports, exports, previous-period production and primary production
func (l *ResourceLedger) Clear() {
	l.tallies = make(map[goods.GoodID]map[string]float64)
	l.imports = make(map[shared.EntityID]map[goods.GoodID]float64)
	l.exports = make(map[shared.EntityID]map[goods.GoodID]float64)
	l.previousPeriodProduction = make(map[goods.GoodID]float64)
	l.primaryProduction = make(map[goods.GoodID]struct{})
}

// Snapshot returns a deep copy safe to hand to concurrent readers
func (l *ResourceLedger) Snapshot() Snapshot {
	s := Snapshot{
		Tallies:                  make(map[goods.GoodID]map[string]float64, len(l.tallies)),
		Imports:                  copyBuckets(l.imports),
		Exports:                  copyBuckets(l.exports),
		PreviousPeriodProduction: make(map[goods.GoodID]float64, len(l.previousPeriodProduction)),
		PrimaryProduction:        make([]goods.GoodID, 0, len(l.primaryProduction)),
	}
	for t, tally := range l.tallies {
		c := make(map[string]float64, len(tally))
		for k, v := range tally {
			c[k] = v
		}
		s.Tallies[t] = c
	}
	for t, v := range l.previousPeriodProduction {
		s.PreviousPeriodProduction[t] = v
	}
	for t := range l.primaryProduction {
		s.PrimaryProduction = append(s.PrimaryProduction, t)
	}
	sort.Slice(s.PrimaryProduction, func(i, j int) bool { return s.PrimaryProduction[i] < s.PrimaryProduction[j] })
	return s
}

func copyBuckets(src map[shared.EntityID]map[goods.GoodID]float64) map[shared.EntityID]map[goods.GoodID]float64 {
	dst := make(map[shared.EntityID]map[goods.GoodID]float64, len(src))
	for counterpart, bucket := range src {
		c := make(map[goods.GoodID]float64, len(bucket))
		for t, v := range bucket {
			c[t] = v
		}
		dst[counterpart] = c
	}
	return dst
}

// Snapshot is an immutable copy of a ResourceLedger
type Snapshot struct {
	Tallies                  map[goods.GoodID]map[string]float64
	Imports                  map[shared.EntityID]map[goods.GoodID]float64
	Exports                  map[shared.EntityID]map[goods.GoodID]float64
	PreviousPeriodProduction map[goods.GoodID]float64
	PrimaryProduction        []goods.GoodID
}

// Added returns the "added" tally for t
func (s Snapshot) Added(t goods.GoodID) float64 {
	return s.Tallies[t][TallyAdded]
}

// Removed returns the "removed" tally for t
func (s Snapshot) Removed(t goods.GoodID) float64 {
	return s.Tallies[t][TallyRemoved]
}

// Net returns added minus removed for t
func (s Snapshot) Net(t goods.GoodID) float64 {
	return s.Added(t) - s.Removed(t)
}

// Goods returns every resource with a tally, ordered by id
func (s Snapshot) Goods() []goods.GoodID {
	ids := make([]goods.GoodID, 0, len(s.Tallies))
	for t := range s.Tallies {
		ids = append(ids, t)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
