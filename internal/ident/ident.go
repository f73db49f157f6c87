// internal/ident/ident.go
package ident

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidIdentifier is the sentinel matched by every InvalidIdentifierError.
var ErrInvalidIdentifier = errors.New("invalid identifier")

var identifierRegex = regexp.MustCompile(`^[-\w]+$`)

// InvalidIdentifierError reports an identifier that does not match the
// allowed character set.
type InvalidIdentifierError struct {
	Identifier string
	// Where names the place the identifier was found, e.g. `vertex 3 jack`.
	Where string
}

func (e *InvalidIdentifierError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("invalid identifier %q", e.Identifier)
	}
	return fmt.Sprintf("%s: invalid identifier %q", e.Where, e.Identifier)
}

func (e *InvalidIdentifierError) Unwrap() error { return ErrInvalidIdentifier }

// Validate returns s unchanged when it is a valid identifier.
func Validate(s string) (string, error) {
	if !identifierRegex.MatchString(s) {
		return "", &InvalidIdentifierError{Identifier: s}
	}
	return s, nil
}

// ValidateAt is Validate with the location recorded in the error.
func ValidateAt(where, s string) (string, error) {
	if _, err := Validate(s); err != nil {
		return "", &InvalidIdentifierError{Identifier: s, Where: where}
	}
	return s, nil
}
