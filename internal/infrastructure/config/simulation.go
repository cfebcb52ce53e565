package config

// SimulationConfig controls the tick runner
type SimulationConfig struct {
	// Maximum ticks per second; 0 runs as fast as possible
	TickRate float64 `mapstructure:"tick_rate" validate:"min=0"`

	// Ticks per reporting period; city ledgers are cleared at each period end
	TicksPerPeriod int `mapstructure:"ticks_per_period" validate:"min=0"`

	// Star date a freshly seeded world starts at
	StartDate int64 `mapstructure:"start_date" validate:"min=0"`

	// Interval in seconds between city balance gauge refreshes while serving metrics
	BalancePollSeconds int `mapstructure:"balance_poll_seconds" validate:"min=1"`

	// PIDFile guards against two servers advancing the same world
	PIDFile string `mapstructure:"pid_file"`
}

// EconomyConfig holds economy rules
type EconomyConfig struct {
	// LegacyCityDebit keeps city balances unchanged on successful debits, reproducing the
	// historical economy where stockpiles never drained
	LegacyCityDebit bool `mapstructure:"legacy_city_debit"`

	// CatalogPath is an optional goods catalog YAML merged before the scenario's own goods
	CatalogPath string `mapstructure:"catalog_path"`
}
