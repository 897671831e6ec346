package cli

import (
	"testing"
)

func TestShowRequiresID(t *testing.T) {
	_, err := executeCommand("show")
	if err == nil {
		t.Fatal("expected error when no ID provided")
	}
}

func TestNoArgCommandsRejectArgs(t *testing.T) {
	for _, name := range []string{"list", "featured", "neighborhoods", "contact", "stats", "serve", "status", "version"} {
		t.Run(name, func(t *testing.T) {
			_, err := executeCommand(name, "extra")
			if err == nil {
				t.Fatal("expected error for extra args")
			}
		})
	}
}

func TestAdminCommandsRequireUsername(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"add", []string{"admin", "add"}},
		{"passwd", []string{"admin", "passwd"}},
		{"remove", []string{"admin", "remove"}},
		{"add two names", []string{"admin", "add", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestListRejectsInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown sort", []string{"list", "--sort", "cheapest"}},
		{"unknown type", []string{"list", "--type", "villa"}},
		{"unknown status", []string{"list", "--status", "gone"}},
		{"negative price", []string{"list", "--min-price", "-1"}},
		{"negative area", []string{"list", "--max-area", "-5"}},
		{"negative rooms", []string{"list", "--min-rooms", "-2"}},
		{"non-numeric price", []string{"list", "--min-price", "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			localEnv(t)
			_, err := executeCommand(tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
