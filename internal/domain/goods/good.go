package goods

import (
	"fmt"
	"strconv"
)

// GoodID identifies a resource type. Ids are allocated by the Catalog that defines the good.
type GoodID int

func (id GoodID) String() string {
	return "good#" + strconv.Itoa(int(id))
}

// Good is a type of resource that can be stored, produced, and transported
type Good struct {
	id           GoodID
	name         string  // on-screen name
	identifier   string  // unique, human-readable key used in scenario files
	volume       float64 // m^3 per unit
	mass         float64 // kg per unit
	tags         []string
	fractionable bool
}

// GoodOption configures optional attributes of a good
type GoodOption func(*Good)

// WithTags attaches classification tags (e.g. "ore", "food")
func WithTags(tags ...string) GoodOption {
	return func(g *Good) {
		g.tags = append([]string(nil), tags...)
	}
}

// Fractionable marks a good as divisible into fractional units
func Fractionable() GoodOption {
	return func(g *Good) {
		g.fractionable = true
	}
}

// NewGood creates a good definition with validation
func NewGood(id GoodID, name, identifier string, volume, mass float64, opts ...GoodOption) (*Good, error) {
	if name == "" {
		return nil, &ErrInvalidGood{Field: "name", Reason: "name cannot be empty"}
	}
	if identifier == "" {
		return nil, &ErrInvalidGood{Field: "identifier", Reason: "identifier cannot be empty"}
	}
	if volume < 0 {
		return nil, &ErrInvalidGood{Field: "volume", Reason: fmt.Sprintf("volume cannot be negative: %g", volume)}
	}
	if mass < 0 {
		return nil, &ErrInvalidGood{Field: "mass", Reason: fmt.Sprintf("mass cannot be negative: %g", mass)}
	}

	g := &Good{
		id:         id,
		name:       name,
		identifier: identifier,
		volume:     volume,
		mass:       mass,
		tags:       []string{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Getters

func (g *Good) ID() GoodID { return g.id }
func (g *Good) Name() string { return g.name }
func (g *Good) Identifier() string { return g.identifier }
func (g *Good) Volume() float64 { return g.volume }
func (g *Good) Mass() float64 { return g.mass }
func (g *Good) IsFractionable() bool { return g.fractionable }

// Tags returns a copy of the good's tags
func (g *Good) Tags() []string {
	return append([]string(nil), g.tags...)
}

// HasTag reports whether the good carries the given tag
func (g *Good) HasTag(tag string) bool {
	for _, t := range g.tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *Good) String() string {
	return g.name
}
