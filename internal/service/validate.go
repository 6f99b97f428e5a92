package service

import (
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validity is the live validation state of the form input.
type Validity int

const (
	ValidityUnknown Validity = iota
	ValidityValid
	ValidityInvalid
)

func (v Validity) String() string {
	switch v {
	case ValidityValid:
		return "valid"
	case ValidityInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Validity) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

var validate = validator.New()

// Validate reports whether input is an absolute URL with a scheme and a host.
// It never touches the network.
func Validate(input string) bool {
	s := strings.TrimSpace(input)

	if err := validate.Var(s, "required,url"); err != nil {
		return false
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Host != ""
}

// CheckValidity maps input to its tri-state validity: unknown while the
// input is empty, valid or invalid otherwise. Whitespace-only input is
// invalid.
func CheckValidity(input string) Validity {
	if input == "" {
		return ValidityUnknown
	}

	if Validate(input) {
		return ValidityValid
	}

	return ValidityInvalid
}
