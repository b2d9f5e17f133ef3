package envelope

import "fmt"

// ParseError reports a malformed envelope mapping. It is deliberately a
// distinct type from the record package's ParseError so callers can tell
// which layer of the wire contract failed.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("rfbus: parsing envelope: %v", e.Err)
	}
	return fmt.Sprintf("rfbus: parsing envelope: field %q: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
