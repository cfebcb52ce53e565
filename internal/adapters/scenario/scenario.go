package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Scenario is the YAML description of a starting world
type Scenario struct {
	StartDate int64        `yaml:"start_date" validate:"min=0"`
	Goods     []GoodSpec   `yaml:"goods" validate:"dive"`
	Planets   []PlanetSpec `yaml:"planets" validate:"required,min=1,dive"`
}

// Catalog is a goods-only file shared between scenarios
type Catalog struct {
	Goods []GoodSpec `yaml:"goods" validate:"required,min=1,dive"`
}

type GoodSpec struct {
	Identifier   string   `yaml:"identifier" validate:"required"`
	Name         string   `yaml:"name" validate:"required"`
	Volume       float64  `yaml:"volume" validate:"min=0"`
	Mass         float64  `yaml:"mass" validate:"min=0"`
	Tags         []string `yaml:"tags,omitempty"`
	Fractionable bool     `yaml:"fractionable"`
}

type PlanetSpec struct {
	Name   string        `yaml:"name" validate:"required"`
	Radius float64       `yaml:"radius" validate:"min=0"`
	Strata []StratumSpec `yaml:"strata" validate:"dive"`
	Cities []CitySpec    `yaml:"cities" validate:"dive"`
}

type StratumSpec struct {
	Name     string             `yaml:"name" validate:"required"`
	X        float64            `yaml:"x"`
	Y        float64            `yaml:"y"`
	Radius   float64            `yaml:"radius" validate:"min=0"`
	Deposits map[string]float64 `yaml:"deposits,omitempty"`
}

type CitySpec struct {
	Name         string             `yaml:"name" validate:"required"`
	X            float64            `yaml:"x"`
	Y            float64            `yaml:"y"`
	EnergyNeeded int                `yaml:"energy_needed" validate:"min=0"`
	Resources    map[string]float64 `yaml:"resources,omitempty"`
	Areas        []AreaSpec         `yaml:"areas" validate:"dive"`
}

// AreaSpec describes one area; which fields apply depends on Kind
type AreaSpec struct {
	Kind string `yaml:"kind" validate:"required,oneof=MINE COMMERCIAL POWER_PLANT"`

	// MINE
	Stratum        string             `yaml:"stratum,omitempty" validate:"required_if=Kind MINE"`
	Resource       string             `yaml:"resource,omitempty" validate:"required_if=Kind MINE"`
	Productivity   float64            `yaml:"productivity,omitempty" validate:"min=0"`
	NecessaryGoods map[string]float64 `yaml:"necessary_goods,omitempty"`

	// COMMERCIAL
	TradeValue int    `yaml:"trade_value,omitempty" validate:"min=0"`
	Currency   string `yaml:"currency,omitempty"`

	// POWER_PLANT
	Fuel      string  `yaml:"fuel,omitempty" validate:"required_if=Kind POWER_PLANT"`
	MaxVolume float64 `yaml:"max_volume,omitempty" validate:"min=0"`
	Capacity  int     `yaml:"capacity,omitempty" validate:"min=0"`
}

// Load reads and validates a scenario file
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates scenario YAML
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := decodeStrict(data, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadCatalog reads and validates a goods catalog file
func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var c Catalog
	if err := decodeStrict(b, &c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := validate(&c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

// Validate checks field constraints and cross references (stratum and city names unique
// per planet, good identifiers unique)
func (s *Scenario) Validate() error {
	if err := validate(s); err != nil {
		return err
	}

	seenGoods := make(map[string]bool, len(s.Goods))
	for _, g := range s.Goods {
		if seenGoods[g.Identifier] {
			return fmt.Errorf("duplicate good identifier: %s", g.Identifier)
		}
		seenGoods[g.Identifier] = true
	}

	seenPlanets := make(map[string]bool, len(s.Planets))
	for _, p := range s.Planets {
		if seenPlanets[p.Name] {
			return fmt.Errorf("duplicate planet: %s", p.Name)
		}
		seenPlanets[p.Name] = true

		strata := make(map[string]bool, len(p.Strata))
		for _, st := range p.Strata {
			if strata[st.Name] {
				return fmt.Errorf("planet %s: duplicate stratum %s", p.Name, st.Name)
			}
			strata[st.Name] = true
		}

		cities := make(map[string]bool, len(p.Cities))
		for _, c := range p.Cities {
			if cities[c.Name] {
				return fmt.Errorf("planet %s: duplicate city %s", p.Name, c.Name)
			}
			cities[c.Name] = true

			for _, a := range c.Areas {
				if a.Kind == "MINE" && !strata[a.Stratum] {
					return fmt.Errorf("planet %s: city %s: unknown stratum %s", p.Name, c.Name, a.Stratum)
				}
			}
		}
	}
	return nil
}

func decodeStrict(data []byte, out interface{}) error {
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}
	return nil
}

func validate(i interface{}) error {
	if err := validator.New().Struct(i); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(errs))
			for _, e := range errs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}
