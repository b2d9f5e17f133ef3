// Package envelope implements the wire-level wrapper around a serialized
// metadata record. The envelope decouples the wire format from the record's
// field set and adds a transport identity independent of the record's
// business identity.
package envelope

import (
	"fmt"
	"reflect"

	"github.com/rfgrid/rfbus/internal/runtime/ids"
	"github.com/rfgrid/rfbus/internal/runtime/jsoncodec"
	"github.com/rfgrid/rfbus/internal/runtime/record"
)

// Envelope wraps an opaque payload mapping with a source-path tag and a
// unique message identity. Instances are immutable.
type Envelope struct {
	SourcePath string
	Payload    map[string]any
	MessageID  string
}

// FromRecord is the only envelope constructor used for protocol traffic. The
// message identity is freshly generated, so two envelopes wrapping identical
// records are never equal.
func FromRecord(r record.MetadataRecord) Envelope {
	return Envelope{
		SourcePath: r.SourcePath,
		Payload:    r.ToMapping(),
		MessageID:  ids.NewMessageID(),
	}
}

// ToMapping produces the envelope's string-keyed mapping form.
func (e Envelope) ToMapping() map[string]any {
	return map[string]any{
		"source_path": e.SourcePath,
		"payload":     e.Payload,
		"message_id":  e.MessageID,
	}
}

// FromMapping reconstructs an envelope from its mapping form. A missing or
// malformed source_path, payload, or message_id surfaces as a *ParseError;
// the message identity must parse as a valid unique-identifier string.
func FromMapping(m map[string]any) (Envelope, error) {
	var e Envelope

	v, ok := m["source_path"]
	if !ok {
		return Envelope{}, &ParseError{Field: "source_path", Err: fmt.Errorf("field is missing")}
	}
	e.SourcePath, ok = v.(string)
	if !ok {
		return Envelope{}, &ParseError{Field: "source_path", Err: fmt.Errorf("expected string, got %T", v)}
	}

	v, ok = m["payload"]
	if !ok {
		return Envelope{}, &ParseError{Field: "payload", Err: fmt.Errorf("field is missing")}
	}
	e.Payload, ok = v.(map[string]any)
	if !ok {
		return Envelope{}, &ParseError{Field: "payload", Err: fmt.Errorf("expected mapping, got %T", v)}
	}

	v, ok = m["message_id"]
	if !ok {
		return Envelope{}, &ParseError{Field: "message_id", Err: fmt.Errorf("field is missing")}
	}
	raw, ok := v.(string)
	if !ok {
		return Envelope{}, &ParseError{Field: "message_id", Err: fmt.Errorf("expected string, got %T", v)}
	}
	id, err := ids.ParseMessageID(raw)
	if err != nil {
		return Envelope{}, &ParseError{Field: "message_id", Err: err}
	}
	e.MessageID = id

	return e, nil
}

// Encode serializes the envelope's mapping form to the UTF-8 JSON bytes
// published on the wire.
func (e Envelope) Encode() ([]byte, error) {
	return jsoncodec.Marshal(e.ToMapping())
}

// Decode parses wire bytes back into an envelope.
func Decode(data []byte) (Envelope, error) {
	m, err := jsoncodec.UnmarshalMapping(data)
	if err != nil {
		return Envelope{}, &ParseError{Field: "", Err: err}
	}
	return FromMapping(m)
}

// Record reconstructs the metadata record carried in the payload.
func (e Envelope) Record() (record.MetadataRecord, error) {
	return record.FromMapping(e.Payload)
}

// Equal reports structural equality, payload included. Fresh envelopes are
// never equal because their message identities differ.
func (e Envelope) Equal(other Envelope) bool {
	return e.SourcePath == other.SourcePath &&
		e.MessageID == other.MessageID &&
		reflect.DeepEqual(e.Payload, other.Payload)
}
