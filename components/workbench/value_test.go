package workbench

import (
	"encoding/json"
	"testing"
)

func TestValueJSONRoundTrip(t *testing.T) {
	row := Row{
		"s": String("North"),
		"n": Number(42.5),
		"b": Bool(true),
		"z": Null(),
	}
	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Row
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for key, want := range row {
		if !back[key].Equal(want) {
			t.Fatalf("key %s: got %#v want %#v", key, back[key], want)
		}
	}
}

func TestValueRejectsNonScalarJSON(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`{"nested":true}`), &v); err == nil {
		t.Fatal("expected error for object value")
	}
	if err := json.Unmarshal([]byte(`[1,2]`), &v); err == nil {
		t.Fatal("expected error for array value")
	}
}

func TestValueFloatCoercion(t *testing.T) {
	cases := []struct {
		v    Value
		want float64
	}{
		{Number(3.5), 3.5},
		{String("120"), 120},
		{String("abc"), 0},
		{Bool(true), 1},
		{Bool(false), 0},
		{Null(), 0},
	}
	for _, tc := range cases {
		if got := tc.v.Float(); got != tc.want {
			t.Errorf("Float(%#v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestValueDisplay(t *testing.T) {
	if got := Number(1200).Display(); got != "1200" {
		t.Fatalf("number display = %q", got)
	}
	if got := Null().Display(); got != "" {
		t.Fatalf("null display = %q", got)
	}
	if got := Bool(true).Display(); got != "true" {
		t.Fatalf("bool display = %q", got)
	}
}
