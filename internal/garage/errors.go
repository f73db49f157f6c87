package garage

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel matched by every ParseError.
var ErrParse = errors.New("graph parse error")

// ParseError reports a graph document that could not be decoded.
type ParseError struct {
	Path string // Source file, if known
	Msg  string
	Err  error // Underlying decoder error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	prefix := ErrParse.Error()
	if e.Path != "" {
		prefix = fmt.Sprintf("%s: %s", e.Path, prefix)
	}
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", prefix, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", prefix, e.Msg)
	default:
		return prefix
	}
}

// Unwrap exposes both the sentinel and the decoder error.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}
