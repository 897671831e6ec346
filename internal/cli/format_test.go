package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/evcraddock/amlak/internal/property"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		n        int64
		expected string
	}{
		{"zero", 0, "0"},
		{"small", 999, "999"},
		{"thousands", 250000, "250,000"},
		{"billions", 3200000000, "3,200,000,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatNumber(tt.n)
			if result != tt.expected {
				t.Errorf("formatNumber(%d) = %q, want %q", tt.n, result, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world!", 8, "hello..."},
		{"persian counts runes", "آپارتمان لوکس", 8, "آپارت..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncate(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, result, tt.expected)
			}
		})
	}
}

func TestPrintPropertySummaryOptionalFields(t *testing.T) {
	p := &property.Property{
		ID:    "7",
		Title: "زمین",
		Price: 850_000_000,
		Type:  property.TypeLand,
	}

	var buf bytes.Buffer
	printPropertySummary(&buf, p)
	out := buf.String()

	if !strings.Contains(out, "850 میلیون تومان") {
		t.Errorf("expected price label in %q", out)
	}
	if strings.Contains(out, "Location:") || strings.Contains(out, "Features:") {
		t.Errorf("empty fields should be omitted: %q", out)
	}
}

func TestPrintPropertyTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := printPropertyTable(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "No properties found.\n" {
		t.Errorf("output = %q", buf.String())
	}
}
