package ledger

import "fmt"

// FlowDirection classifies a journal entry from the recording entity's perspective
type FlowDirection string

const (
	// FlowDirectionImport is an inbound movement from another entity
	FlowDirectionImport FlowDirection = "IMPORT"

	// FlowDirectionExport is an outbound movement to another entity
	FlowDirectionExport FlowDirection = "EXPORT"

	// FlowDirectionInternal is a movement between an entity and one of its own areas
	FlowDirectionInternal FlowDirection = "INTERNAL"
)

// AllFlowDirections returns all valid directions
func AllFlowDirections() []FlowDirection {
	return []FlowDirection{
		FlowDirectionImport,
		FlowDirectionExport,
		FlowDirectionInternal,
	}
}

// String returns the string representation of the FlowDirection
func (d FlowDirection) String() string {
	return string(d)
}

// IsValid checks if the direction is valid
func (d FlowDirection) IsValid() bool {
	switch d {
	case FlowDirectionImport, FlowDirectionExport, FlowDirectionInternal:
		return true
	default:
		return false
	}
}

// DirectionFor derives the direction of a signed ledger amount
func DirectionFor(signed float64, internal bool) FlowDirection {
	switch {
	case internal:
		return FlowDirectionInternal
	case signed < 0:
		return FlowDirectionExport
	default:
		return FlowDirectionImport
	}
}

// ParseFlowDirection parses a string into a FlowDirection
func ParseFlowDirection(s string) (FlowDirection, error) {
	d := FlowDirection(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid flow direction: %s", s)
	}
	return d, nil
}
