package logistics

import "fmt"

// ErrNodeNotFound is returned when a city id on the planet does not resolve to a supply node
type ErrNodeNotFound struct {
	ID string
}

func (e *ErrNodeNotFound) Error() string {
	return fmt.Sprintf("supply node not found: %s", e.ID)
}

// ErrMissingLocation is returned when a city on the planet has no coordinates
type ErrMissingLocation struct {
	ID string
}

func (e *ErrMissingLocation) Error() string {
	return fmt.Sprintf("no location for city %s", e.ID)
}

// ErrDuplicateSite is returned when a planet lists the same city twice
type ErrDuplicateSite struct {
	ID string
}

func (e *ErrDuplicateSite) Error() string {
	return fmt.Sprintf("city %s listed more than once", e.ID)
}
