package record

import "fmt"

// ParseError reports a malformed metadata mapping: a missing field, a value
// of the wrong shape, or an unparseable timestamp. The lower-level cause is
// preserved for errors.Is/As inspection.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("rfbus: parsing metadata record: %v", e.Err)
	}
	return fmt.Sprintf("rfbus: parsing metadata record: field %q: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ChecksumMismatchError reports that a record's declared checksum does not
// match an independently computed digest. Both values are carried verbatim.
type ChecksumMismatchError struct {
	Expected string
	Computed string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("rfbus: checksum mismatch: expected %s, computed %s", e.Expected, e.Computed)
}
