package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/spaceeconomy-go/internal/application/common"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/city"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/shared"
	"github.com/andrescamacho/spaceeconomy-go/internal/domain/world"
)

// ListCityBalancesQuery lists every tracked balance of every city, optionally restricted
// to one planet
type ListCityBalancesQuery struct {
	PlanetID string // empty lists all planets
}

// ListCityBalancesResponse contains one row per city and tracked good
type ListCityBalancesResponse struct {
	Balances []CityBalanceDTO
}

// CityBalanceDTO is a single city balance
type CityBalanceDTO struct {
	CityID   string
	CityName string
	Good     string
	Amount   float64
}

// ListCityBalancesHandler handles the ListCityBalances query
type ListCityBalancesHandler struct {
	world *world.World
}

// NewListCityBalancesHandler creates a new ListCityBalancesHandler
func NewListCityBalancesHandler(w *world.World) *ListCityBalancesHandler {
	return &ListCityBalancesHandler{world: w}
}

// Handle executes the ListCityBalances query
func (h *ListCityBalancesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListCityBalancesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListCityBalancesQuery")
	}

	var cities []*city.City
	if query.PlanetID == "" {
		cities = h.world.Cities()
	} else {
		planetID, err := shared.ParseEntityID(query.PlanetID)
		if err != nil {
			return nil, fmt.Errorf("invalid planet ID: %w", err)
		}
		cities, err = h.world.CitiesOn(planetID)
		if err != nil {
			return nil, err
		}
	}

	catalog := h.world.Catalog()
	response := &ListCityBalancesResponse{}
	for _, c := range cities {
		balances := c.Balances()
		for _, t := range c.HeldTypes() {
			response.Balances = append(response.Balances, CityBalanceDTO{
				CityID:   c.ID().String(),
				CityName: c.Name(),
				Good:     catalog.Name(t),
				Amount:   balances[t],
			})
		}
	}
	return response, nil
}
