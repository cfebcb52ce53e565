package logistics

import (
	"fmt"

	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
)

// SupplyConnection is an unordered pair of connected cities
type SupplyConnection struct {
	A shared.EntityID
	B shared.EntityID
}

// NewSupplyConnection creates a connection between a and b
func NewSupplyConnection(a, b shared.EntityID) SupplyConnection {
	return SupplyConnection{A: a, B: b}
}

// Equals compares two connections regardless of endpoint order
func (c SupplyConnection) Equals(other SupplyConnection) bool {
	return (c.A.Equals(other.A) && c.B.Equals(other.B)) ||
		(c.A.Equals(other.B) && c.B.Equals(other.A))
}

// Involves reports whether id is one of the endpoints
func (c SupplyConnection) Involves(id shared.EntityID) bool {
	return c.A.Equals(id) || c.B.Equals(id)
}

// Other returns the endpoint opposite to id
func (c SupplyConnection) Other(id shared.EntityID) (shared.EntityID, bool) {
	switch {
	case c.A.Equals(id):
		return c.B, true
	case c.B.Equals(id):
		return c.A, true
	default:
		return shared.EntityID{}, false
	}
}

func (c SupplyConnection) String() string {
	return fmt.Sprintf("%s <-> %s", c.A.Short(), c.B.Short())
}

// SupplyNode is anything that can sit at the end of a supply connection
type SupplyNode interface {
	ID() shared.EntityID
	SupplyConnections() []SupplyConnection
	AddSupplyConnection(c SupplyConnection)
	ClearSupplyConnections()
}

// ConnectSegments records a connection between a and b on both nodes
func ConnectSegments(a, b SupplyNode) SupplyConnection {
	conn := NewSupplyConnection(a.ID(), b.ID())
	a.AddSupplyConnection(conn)
	b.AddSupplyConnection(conn)
	return conn
}
