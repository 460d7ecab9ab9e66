package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Exported message templates so tests can assert against the exact issue text.
const (
	ErrRequired       = "is required"
	ErrEmail          = "must be a valid email address"
	ErrMinLength      = "must contain at least %s items"
	ErrMaxLength      = "must contain at most %s items"
	ErrUnique         = "must not contain duplicate values"
	ErrSeatNumber     = "must be a valid seat number (e.g. A1, B12)"
	ErrPaymentMethod  = "must be one of CASH, CARD, ONLINE"
	ErrSeatStatus     = "must be one of AVAILABLE, BOOKED, BLOCKED"
	ErrChannel        = "must be one of DIRECT, WALK_IN, POS, PARTNER"
	ErrDefaultInvalid = "is invalid"
)

var seatNumberRgx = regexp.MustCompile(`^[A-Z]{1,2}[1-9][0-9]{0,2}$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("seat_number", validateSeatNumber)
	validator.RegisterValidation("payment_method", validatePaymentMethod)
	validator.RegisterValidation("seat_status", validateSeatStatus)
	validator.RegisterValidation("channel", validateChannel)

	return validator
}

func validateSeatNumber(fl validator.FieldLevel) bool {
	return seatNumberRgx.MatchString(fl.Field().String())
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "CASH", "CARD", "ONLINE":
		return true
	}

	return false
}

func validateSeatStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "AVAILABLE", "BOOKED", "BLOCKED":
		return true
	}

	return false
}

func validateChannel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "DIRECT", "WALK_IN", "POS", "PARTNER":
		return true
	}

	return false
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "email":
		return ErrEmail
	case "min":
		return fmt.Sprintf(ErrMinLength, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "unique":
		return ErrUnique
	case "seat_number":
		return ErrSeatNumber
	case "payment_method":
		return ErrPaymentMethod
	case "seat_status":
		return ErrSeatStatus
	case "channel":
		return ErrChannel
	default:
		return ErrDefaultInvalid
	}
}
