package ids

import "github.com/google/uuid"

// NewMessageID returns a freshly generated transport-level message identity
// in canonical UUID form. Every envelope gets its own; two envelopes wrapping
// identical payloads never share an identity.
func NewMessageID() string {
	return uuid.NewString()
}

// ParseMessageID validates s as a unique-identifier string and returns its
// canonical form.
func ParseMessageID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
