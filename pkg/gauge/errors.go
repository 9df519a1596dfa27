package gauge

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig matches every *ConfigError via errors.Is.
var ErrInvalidConfig = errors.New("invalid gauge configuration")

type ErrorCode string

const (
	ErrInvalidRange           ErrorCode = "invalid_range"
	ErrInvalidTickStep        ErrorCode = "invalid_tick_step"
	ErrUnevenTickStep         ErrorCode = "uneven_tick_step"
	ErrInvalidWarningFraction ErrorCode = "invalid_warning_fraction"
	ErrInvalidSweep           ErrorCode = "invalid_sweep"
	ErrInvalidLabelFormat     ErrorCode = "invalid_label_format"
	ErrTooManyTicks           ErrorCode = "too_many_ticks"
)

// ConfigError is returned by New when a GaugeConfig cannot be rendered.
type ConfigError struct {
	Code   ErrorCode
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("gauge: %s: %s (%v): %s", e.Code, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func configError(code ErrorCode, field string, value any, reason string) *ConfigError {
	return &ConfigError{Code: code, Field: field, Value: value, Reason: reason}
}
