package errors

import (
	"strings"
)

// MaxDimension bounds maze width and height at the CLI, config and HTTP
// edges. The core packages accept any positive size.
const MaxDimension = 1000

// ValidateDimensions checks that width and height are at least 1.
func ValidateDimensions(width, height int) error {
	if width < 1 {
		return New(ErrCodeInvalidConfig, "width must be at least 1, got %d", width)
	}
	if height < 1 {
		return New(ErrCodeInvalidConfig, "height must be at least 1, got %d", height)
	}
	return nil
}

// ValidateSize is ValidateDimensions plus the MaxDimension bound, for sizes
// coming from users.
func ValidateSize(width, height int) error {
	if err := ValidateDimensions(width, height); err != nil {
		return err
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidConfig, "maze too large: %dx%d (max %d per side)", width, height, MaxDimension)
	}
	return nil
}

// ValidateFormat checks that format is one of the allowed values.
// The comparison is case-insensitive.
func ValidateFormat(format string, allowed []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	for _, a := range allowed {
		if strings.EqualFold(format, a) {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (expected one of %s)", format, strings.Join(allowed, ", "))
}
