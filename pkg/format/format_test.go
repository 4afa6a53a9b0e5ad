package format

import "testing"

func TestToPrecision(t *testing.T) {
	tests := []struct {
		val    float64
		places int
		want   float64
	}{
		{3.14159, 2, 3.14},
		{3.14159, 0, 3.14},
		{3.14159, -1, 0},
		{1234, -1, 1230},
		{1250, -2, 1300},
		{1.23456, 3, 1.235},
		{0.25, 1, 0.3},
		{-0.25, 1, -0.2},
		{-1.5, 2, -1.5},
		{42, 4, 42},
	}

	for _, tt := range tests {
		if got := ToPrecision(tt.val, tt.places); got != tt.want {
			t.Errorf("ToPrecision(%v, %d) = %v, want %v", tt.val, tt.places, got, tt.want)
		}
	}
}

func TestStringifySimple(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{
			name: "unquotes plain keys",
			in:   map[string]any{"name": "a", "list": []int{1, 2}},
			want: "{\n  list: [\n    1,\n    2\n  ],\n  name: \"a\"\n}",
		},
		{
			name: "keeps keys with digits or parens",
			in:   map[string]any{"x1": 1, "f(x)": 2},
			want: "{\n  \"f(x)\": 2,\n  \"x1\": 1\n}",
		},
		{
			name: "nested objects",
			in:   map[string]any{"outer": map[string]any{"inner": true}},
			want: "{\n  outer: {\n    inner: true\n  }\n}",
		},
		{
			name: "no html escaping",
			in:   map[string]any{"tag": "<b>"},
			want: "{\n  tag: \"<b>\"\n}",
		},
		{
			name: "scalar",
			in:   7,
			want: "7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StringifySimple(tt.in)
			if err != nil {
				t.Fatalf("StringifySimple() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("StringifySimple() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringifySimpleError(t *testing.T) {
	if _, err := StringifySimple(map[string]any{"ch": make(chan int)}); err == nil {
		t.Error("expected error for unsupported value")
	}
}

func TestReadableShapes(t *testing.T) {
	in := map[string]any{
		"draw": []any{[]any{"m", 0, 0}, []any{"l", 10, 5}},
		"id":   3,
	}
	want := "{\n  \n    \"draw\": [[\n    \"m\", 0, 0],\n   [\n    \"l\", 10, 5]],\n   \n    \"id\": 3}"

	got, err := ReadableShapes(in)
	if err != nil {
		t.Fatalf("ReadableShapes() error: %v", err)
	}
	if got != want {
		t.Errorf("ReadableShapes() = %q, want %q", got, want)
	}
}
