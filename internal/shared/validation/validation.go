package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Seat labels are 1-2 uppercase letters, a hyphen, and 1-3 digits (A-1,
// BB-123). Input is normalized before matching, so "a-1 " sells as "A-1".
var seatNumberPattern = regexp.MustCompile(`^[A-Z]{1,2}-[0-9]{1,3}$`)

// Standard local@domain.tld shape. Exotic RFC addresses are not worth
// supporting in a box office flow.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// NormalizeSeat trims and upper-cases a raw seat label
func NormalizeSeat(seat string) string {
	return strings.ToUpper(strings.TrimSpace(seat))
}

// ValidSeatNumber reports whether the seat label is well formed after
// normalization
func ValidSeatNumber(seat string) bool {
	return seatNumberPattern.MatchString(NormalizeSeat(seat))
}

// ValidEmail reports whether the address has the expected shape
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// RegisterCustomValidators wires domain validators into gin's binding engine
// so DTO tags like binding:"seatnumber" work. Call once at startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("seatnumber", func(fl validator.FieldLevel) bool {
		return ValidSeatNumber(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register seatnumber validator: %w", err)
	}

	return nil
}
