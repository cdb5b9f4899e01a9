// Package codec selects the byte encoding used for the persisted club record.
// Both codecs are strict on decode: unknown fields are rejected so that a
// record written by an incompatible build surfaces as corruption instead of
// silently losing data.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Names of the supported codecs, as they appear in configuration.
const (
	NameJSON = "json"
	NameCBOR = "cbor"
)

// Codec encodes and decodes a value to and from bytes.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// New returns the codec registered under name.
func New(name string) (Codec, error) {
	switch name {
	case NameJSON:
		return JSON{}, nil
	case NameCBOR:
		return CBOR{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q (want %s or %s)", name, NameJSON, NameCBOR)
	}
}

// JSON is the human-readable codec.
type JSON struct{}

// Name implements Codec.
func (JSON) Name() string { return NameJSON }

// Marshal implements Codec.
func (JSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal implements Codec. Unknown fields and trailing data are errors.
func (JSON) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}
