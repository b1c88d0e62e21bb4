package transform

import (
	"reflect"
	"testing"
)

func TestIdentity(t *testing.T) {
	var tr Identity
	in := map[string]any{"a": float64(1)}

	out, err := tr.SerializeOutput(in)
	if err != nil {
		t.Fatal(err)
	}
	back, err := tr.DeserializeInput(out)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, in) {
		t.Errorf("round trip = %v, want %v", back, in)
	}
}

func TestCBOR_RoundTrip(t *testing.T) {
	tr, err := NewCBOR()
	if err != nil {
		t.Fatal(err)
	}

	values := []any{
		"plain string",
		float64(42.5),
		true,
		nil,
		[]any{"a", float64(1), false},
		map[string]any{"nested": map[string]any{"k": "v"}, "n": float64(3)},
	}

	for _, v := range values {
		wire, err := tr.SerializeOutput(v)
		if err != nil {
			t.Fatalf("SerializeOutput(%v) error: %v", v, err)
		}
		if _, ok := wire.(string); !ok {
			t.Fatalf("SerializeOutput(%v) = %T, want base64 string", v, wire)
		}

		back, err := tr.DeserializeInput(wire)
		if err != nil {
			t.Fatalf("DeserializeInput error: %v", err)
		}
		if !reflect.DeepEqual(back, v) {
			t.Errorf("round trip = %#v, want %#v", back, v)
		}
	}
}

func TestCBOR_RejectsNonString(t *testing.T) {
	tr, err := NewCBOR()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.DeserializeInput(map[string]any{}); err == nil {
		t.Error("expected error for non-string input")
	}
	if _, err := tr.DeserializeInput("not-base64!!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
}
