package service

import (
	"encoding/json"
	"testing"
)

func TestNormalizeAnswerKey(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"numeric zero", `0`, 0, false},
		{"numeric three", `3`, 3, false},
		{"numeric out of range", `4`, 0, true},
		{"numeric negative", `-1`, 0, true},
		{"letter A", `"A"`, 0, false},
		{"letter D", `"D"`, 3, false},
		{"lowercase letter", `"b"`, 1, false},
		{"letter with spaces", `" C "`, 2, false},
		{"letter out of range", `"E"`, 0, true},
		{"multi char", `"AB"`, 0, true},
		{"empty string", `""`, 0, true},
		{"not a key", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAnswerKey(json.RawMessage(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeAnswerKey(%s) = %d, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeAnswerKey(%s) error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeAnswerKey(%s) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		options []string
		wantErr bool
	}{
		{"four options", []string{"a", "b", "c", "d"}, false},
		{"too few", []string{"a", "b", "c"}, true},
		{"too many", []string{"a", "b", "c", "d", "e"}, true},
		{"blank option", []string{"a", "  ", "c", "d"}, true},
		{"nil", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOptions(tt.options)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateOptions(%v) error = %v, wantErr %v", tt.options, err, tt.wantErr)
			}
		})
	}
}
