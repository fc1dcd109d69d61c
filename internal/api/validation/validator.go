package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxPayloadBytes bounds a submission body before it is decoded
const DefaultMaxPayloadBytes = 8 << 10

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[0-9+\-(). ]*[0-9][0-9+\-(). ]*$`)
)

// ErrInvalidSubmission is wrapped by every ValidationError
var ErrInvalidSubmission = errors.New("invalid submission")

// ValidationError names the first invalid or missing field of a submission
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("field %q failed %q (%s)", e.Field, e.Tag, e.Value)
	}
	return fmt.Sprintf("field %q failed %q", e.Field, e.Tag)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSubmission
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("contactemail", validateEmail); err != nil {
		return err
	}
	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		return err
	}

	// Report json field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return nil
}

// validateEmail checks if the email is valid
func validateEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

// validatePhone allows digits and common formatting characters only
func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// Validator turns raw contact form payloads into submissions
type Validator struct {
	validate        *validator.Validate
	maxPayloadBytes int64
}

// NewValidator creates a validator bounding payloads to maxPayloadBytes.
// A non-positive bound falls back to DefaultMaxPayloadBytes.
func NewValidator(maxPayloadBytes int64) *Validator {
	if maxPayloadBytes <= 0 {
		maxPayloadBytes = DefaultMaxPayloadBytes
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterValidators(v); err != nil {
		// Only fails on an empty tag name
		panic(err)
	}

	return &Validator{validate: v, maxPayloadBytes: maxPayloadBytes}
}

// MaxPayloadBytes returns the configured body bound
func (v *Validator) MaxPayloadBytes() int64 {
	return v.maxPayloadBytes
}

// ParseSubmission decodes and validates a raw JSON payload. It has no side
// effects; on failure the error is a *ValidationError.
func (v *Validator) ParseSubmission(raw []byte) (*contact.Submission, error) {
	if int64(len(raw)) > v.maxPayloadBytes {
		return nil, &ValidationError{Field: "body", Tag: "max", Value: fmt.Sprint(v.maxPayloadBytes)}
	}
	if len(raw) == 0 {
		return nil, &ValidationError{Field: "body", Tag: "required"}
	}

	var sub contact.Submission
	if err := json.Unmarshal(raw, &sub); err != nil {
		return nil, decodeError(err)
	}

	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Phone = strings.TrimSpace(sub.Phone)
	sub.Message = strings.TrimSpace(sub.Message)

	if err := v.validate.Struct(&sub); err != nil {
		return nil, firstFieldError(err)
	}

	return &sub, nil
}

func decodeError(err error) *ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return &ValidationError{Field: field, Tag: "type", Value: typeErr.Value}
	}
	return &ValidationError{Field: "body", Tag: "json"}
}

func firstFieldError(err error) *ValidationError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		e := fieldErrs[0]
		return &ValidationError{Field: e.Field(), Tag: e.Tag(), Value: e.Param()}
	}
	return &ValidationError{Field: "body", Tag: "invalid"}
}
