package goods

import (
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// Catalog holds every good defined in a world session.
// Ids come from the allocator handed in at construction, never from a package-level counter.
type Catalog struct {
	mu           sync.RWMutex
	ids          *shared.IDAllocator
	byID         map[GoodID]*Good
	byIdentifier map[string]*Good
}

// NewCatalog creates an empty catalog allocating ids from ids
func NewCatalog(ids *shared.IDAllocator) *Catalog {
	if ids == nil {
		ids = shared.NewIDAllocator(0)
	}
	return &Catalog{
		ids:          ids,
		byID:         make(map[GoodID]*Good),
		byIdentifier: make(map[string]*Good),
	}
}

// Define creates and registers a new good with a freshly allocated id
func (c *Catalog) Define(name, identifier string, volume, mass float64, opts ...GoodOption) (*Good, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byIdentifier[identifier]; exists {
		return nil, &ErrDuplicateGood{Identifier: identifier}
	}

	// Validate before consuming an id
	if _, err := NewGood(0, name, identifier, volume, mass, opts...); err != nil {
		return nil, err
	}

	good, _ := NewGood(GoodID(c.ids.Next()), name, identifier, volume, mass, opts...)
	c.byID[good.id] = good
	c.byIdentifier[identifier] = good
	return good, nil
}

// Restore registers a good that already carries an id (e.g. loaded from persistence)
// and reserves that id in the allocator
func (c *Catalog) Restore(good *Good) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byIdentifier[good.identifier]; exists {
		return &ErrDuplicateGood{Identifier: good.identifier}
	}
	if _, exists := c.byID[good.id]; exists {
		return &ErrDuplicateGood{Identifier: good.identifier}
	}

	c.ids.Reserve(int(good.id))
	c.byID[good.id] = good
	c.byIdentifier[good.identifier] = good
	return nil
}

// Get returns the good with the given id
func (c *Catalog) Get(id GoodID) (*Good, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	good, ok := c.byID[id]
	return good, ok
}

// Lookup resolves a good by identifier. Unknown identifiers produce an ErrUnknownGood
// carrying the closest defined identifier.
func (c *Catalog) Lookup(identifier string) (*Good, error) {
	c.mu.RLock()
	good, ok := c.byIdentifier[identifier]
	c.mu.RUnlock()

	if ok {
		return good, nil
	}
	return nil, &ErrUnknownGood{Identifier: identifier, Suggestion: c.Suggest(identifier)}
}

// Suggest returns the defined identifier closest to the given text, or "" when nothing is
// within a third of the candidate's length
func (c *Catalog) Suggest(identifier string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	token := strings.ToLower(identifier)
	best := ""
	bestDist := -1
	for cand := range c.byIdentifier {
		dist := levenshtein.ComputeDistance(token, strings.ToLower(cand))
		if dist > suggestionLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist || (dist == bestDist && cand < best) {
			best = cand
			bestDist = dist
		}
	}
	return best
}

func suggestionLimit(n int) int {
	limit := n / 3
	if limit < 1 {
		return 1
	}
	return limit
}

// Name returns the on-screen name of a good, or its id string when undefined
func (c *Catalog) Name(id GoodID) string {
	if good, ok := c.Get(id); ok {
		return good.name
	}
	return id.String()
}

// All returns every defined good ordered by id
func (c *Catalog) All() []*Good {
	c.mu.RLock()
	defer c.mu.RUnlock()

	all := make([]*Good, 0, len(c.byID))
	for _, good := range c.byID {
		all = append(all, good)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].id < all[j].id })
	return all
}

// Len returns the number of defined goods
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}
