package jsonutil

import (
	"encoding/json"
	"testing"
)

func TestFlexibleStringValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"string", `"hello"`, "hello"},
		{"integer", `3306`, "3306"},
		{"float", `3.14`, "3.14"},
		{"whole float", `5432.0`, "5432"},
		{"bool", `true`, "true"},
		{"null", `null`, ""},
		{"empty", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FlexibleStringValue(json.RawMessage(tt.raw))
			if got != tt.want {
				t.Errorf("FlexibleStringValue(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFlexibleBoolValue(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback bool
		want     bool
	}{
		{"native true", `true`, false, true},
		{"native false", `false`, true, false},
		{"string yes", `"yes"`, false, true},
		{"string no", `"no"`, true, false},
		{"string 1", `"1"`, false, true},
		{"number 0", `0`, true, false},
		{"number 2", `2`, false, true},
		{"null uses fallback", `null`, true, true},
		{"empty uses fallback", ``, false, false},
		{"garbage string uses fallback", `"maybe"`, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FlexibleBoolValue(json.RawMessage(tt.raw), tt.fallback)
			if got != tt.want {
				t.Errorf("FlexibleBoolValue(%q, %v) = %v, want %v", tt.raw, tt.fallback, got, tt.want)
			}
		})
	}
}
