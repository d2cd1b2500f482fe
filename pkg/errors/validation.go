package errors

import (
	"math"
	"unicode"
)

// MaxNameLength bounds axis and series names.
const MaxNameLength = 256

// ValidateName validates an axis or series name. The code is returned on
// failure so callers can report axis and series problems separately.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of MaxNameLength bytes
//   - No control characters or null bytes
func ValidateName(code Code, what, name string) error {
	if name == "" {
		return New(code, "%s name cannot be empty", what)
	}

	if len(name) > MaxNameLength {
		return New(code, "%s name too long (max %d characters)", what, MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(code, "%s name %q contains invalid control characters", what, name)
		}
	}

	return nil
}

// ValidateSize validates the available size of a layout. Both dimensions
// must be finite and positive.
func ValidateSize(width, height float64) error {
	if !finite(width) || !finite(height) {
		return New(ErrCodeInvalidSize, "size must be finite, got %gx%g", width, height)
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidSize, "size must be positive, got %gx%g", width, height)
	}
	return nil
}

// ValidateFraction validates a value that must lie in [0, 1].
func ValidateFraction(code Code, field string, v float64) error {
	if !finite(v) {
		return New(code, "%s must be finite", field)
	}
	if v < 0 || v > 1 {
		return New(code, "%s must be between 0 and 1, got %g", field, v)
	}
	return nil
}

// ValidateFinite validates that v is neither NaN nor infinite.
func ValidateFinite(code Code, field string, v float64) error {
	if !finite(v) {
		return New(code, "%s must be finite", field)
	}
	return nil
}

// ValidateNonNegative validates a finite value that must not be negative.
func ValidateNonNegative(code Code, field string, v float64) error {
	if err := ValidateFinite(code, field, v); err != nil {
		return err
	}
	if v < 0 {
		return New(code, "%s cannot be negative, got %g", field, v)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
