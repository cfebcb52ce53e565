package config

import "time"

// DatabaseConfig selects where the world, supply networks and resource flows are stored
type DatabaseConfig struct {
	// "sqlite" (default) or "postgres"
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// SQLite file, or ":memory:" for a throwaway world
	Path string `mapstructure:"path" validate:"required_if=Type sqlite"`

	// Postgres DSN. When empty the individual fields below are used.
	URL string `mapstructure:"url" validate:"omitempty,postgres_dsn"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig bounds the gorm connection pool
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1,ltefield=MaxOpen"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime" validate:"min=0"`
}

// usesPostgresFields reports whether the DSN is assembled from Host, Name and friends
func (c DatabaseConfig) usesPostgresFields() bool {
	return c.Type == "postgres" && c.URL == ""
}
