package config

// MetricsConfig controls the Prometheus scrape endpoint started by `serve`
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Absolute URL path, e.g. /metrics
	Path string `mapstructure:"path" validate:"omitempty,scrape_path"`
}
