package record

import (
	"encoding/json"
	"fmt"
	"time"
)

// Field accessors shared by FromMapping. JSON decoding hands back strings,
// json.Number, or float64 depending on the decoder; direct mapping round
// trips keep the native Go types. Both shapes must parse.

func stringField(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", missingField(key)
	}
	s, ok := v.(string)
	if !ok {
		return "", wrongShape(key, "string", v)
	}
	return s, nil
}

func intField(m map[string]any, key string) (int64, error) {
	v, ok := m[key]
	if !ok {
		return 0, missingField(key)
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, &ParseError{Field: key, Err: err}
		}
		return i, nil
	default:
		return 0, wrongShape(key, "integer", v)
	}
}

func floatField(m map[string]any, key string) (float64, error) {
	v, ok := m[key]
	if !ok {
		return 0, missingField(key)
	}
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, &ParseError{Field: key, Err: err}
		}
		return f, nil
	default:
		return 0, wrongShape(key, "number", v)
	}
}

func timeField(m map[string]any, key string) (time.Time, error) {
	s, err := stringField(m, key)
	if err != nil {
		return time.Time{}, err
	}
	// time.Parse accepts fractional seconds whether or not the layout
	// carries them.
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &ParseError{Field: key, Err: err}
	}
	return t, nil
}

func missingField(key string) error {
	return &ParseError{Field: key, Err: fmt.Errorf("field is missing")}
}

func wrongShape(key, want string, got any) error {
	return &ParseError{Field: key, Err: fmt.Errorf("expected %s, got %T", want, got)}
}
