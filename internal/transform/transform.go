// Package transform provides value transformers applied to call inputs and
// outputs at the wire boundary. A transformer must be a symmetric pure pair:
// deserializing a serialized value yields the original value.
package transform

import (
	"encoding/base64"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// Identity passes values through untouched. It is the default transformer.
type Identity struct{}

func (Identity) DeserializeInput(v any) (any, error) { return v, nil }
func (Identity) SerializeOutput(v any) (any, error)  { return v, nil }

// CBOR carries payloads as base64-wrapped CBOR inside the JSON envelope.
// Outputs are CBOR-encoded then base64'd into a string; inputs reverse the
// two steps. Useful when callers need byte-exact payloads that plain JSON
// would mangle.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCBOR creates a CBOR transformer. Decoded maps use string keys so values
// stay interchangeable with JSON-shaped data.
func NewCBOR() (*CBOR, error) {
	enc, err := cbor.EncOptions{}.EncMode()
	if err != nil {
		return nil, fmt.Errorf("transform: build cbor encoder: %w", err)
	}
	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any{}),
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("transform: build cbor decoder: %w", err)
	}
	return &CBOR{enc: enc, dec: dec}, nil
}

// SerializeOutput encodes the value to CBOR and wraps it in base64.
func (c *CBOR) SerializeOutput(v any) (any, error) {
	raw, err := c.enc.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("transform: cbor encode: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DeserializeInput unwraps base64 and decodes the CBOR payload.
func (c *CBOR) DeserializeInput(v any) (any, error) {
	encoded, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("transform: cbor input must be a base64 string, got %T", v)
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("transform: base64 decode: %w", err)
	}
	var out any
	if err := c.dec.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("transform: cbor decode: %w", err)
	}
	return out, nil
}
