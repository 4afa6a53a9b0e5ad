package errors

import (
	"math"
	"testing"
)

func TestValidateStageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "MC", false},
		{"underscore", "my_stage", false},
		{"mixed case", "IntroScene2", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"space", "my stage", true},
		{"tab", "my\tstage", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSchema) {
				t.Errorf("ValidateStageName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateFramerate(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"24fps", 24, false},
		{"fractional", 29.97, false},

		{"zero", 0, true},
		{"negative", -30, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFramerate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFramerate(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "stage.res", false},
		{"valid nested", "out/diagrams/stage.svg", false},
		{"valid absolute", "/tmp/stage.res", false},
		{"valid dotted name", "v1..2.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}
