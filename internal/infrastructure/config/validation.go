package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the rules specific to this configuration
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the custom tags and struct rules registered
func NewValidator() *Validator {
	v := validator.New()

	// Tag registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("postgres_dsn", validatePostgresDSN)
	_ = v.RegisterValidation("scrape_path", validateScrapePath)
	v.RegisterStructValidation(validateDatabaseConfig, DatabaseConfig{})
	v.RegisterStructValidation(validateSimulationConfig, SimulationConfig{})

	return &Validator{
		validate: v,
	}
}

func validatePostgresDSN(fl validator.FieldLevel) bool {
	dsn := fl.Field().String()
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func validateScrapePath(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	return strings.HasPrefix(path, "/") && !strings.ContainsAny(path, " \t?#")
}

// Without a URL, postgres needs at least a host and a database name.
func validateDatabaseConfig(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(DatabaseConfig)
	if !cfg.usesPostgresFields() {
		return
	}
	if cfg.Host == "" {
		sl.ReportError(cfg.Host, "Host", "Host", "required_without_url", "")
	}
	if cfg.Name == "" {
		sl.ReportError(cfg.Name, "Name", "Name", "required_without_url", "")
	}
}

// A paced period lasts at least one second of wall time.
func validateSimulationConfig(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(SimulationConfig)
	if cfg.TickRate <= 0 || cfg.TicksPerPeriod <= 0 {
		return
	}
	if float64(cfg.TicksPerPeriod) < cfg.TickRate {
		sl.ReportError(cfg.TicksPerPeriod, "TicksPerPeriod", "TicksPerPeriod", "period_span", fmt.Sprintf("%g", cfg.TickRate))
	}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msg := fmt.Sprintf("field '%s' failed validation: %s (value: '%v')", e.Field(), e.Tag(), e.Value())
		if e.Param() != "" {
			msg += fmt.Sprintf(" [%s]", e.Param())
		}
		messages = append(messages, msg)
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
