// Package jsoncodec centralizes JSON encoding for the wire protocol and the
// metadata sidecar files.
package jsoncodec

import (
	"bytes"

	"github.com/bytedance/sonic"
)

var defaultConfig = sonic.ConfigStd

func Marshal(v any) ([]byte, error) {
	return defaultConfig.Marshal(v)
}

func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return defaultConfig.MarshalIndent(v, prefix, indent)
}

func Unmarshal(data []byte, v any) error {
	return defaultConfig.Unmarshal(data, v)
}

// UnmarshalMapping decodes data into a string-keyed mapping, keeping numbers
// as json.Number so integer fields (frequencies, sampling rates) survive a
// round trip without drifting through float64.
func UnmarshalMapping(data []byte) (map[string]any, error) {
	dec := defaultConfig.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}
