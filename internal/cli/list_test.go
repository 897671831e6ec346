package cli

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evcraddock/amlak/internal/catalog"
	"github.com/evcraddock/amlak/internal/db"
	"github.com/evcraddock/amlak/internal/property"
	"github.com/evcraddock/amlak/internal/web"
)

func listIDs(t *testing.T, args ...string) string {
	t.Helper()
	out, err := executeCommand(append(args, "--format", "json")...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	var props []property.Property
	if err := json.Unmarshal([]byte(out), &props); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	ids := make([]string, len(props))
	for i, p := range props {
		ids[i] = p.ID
	}
	return strings.Join(ids, ",")
}

func TestListLocal(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"all", []string{"list"}, "1,2,3,4,5,6"},
		{"price and sort", []string{"list", "--min-price", "3800000000", "--sort", "price_low"}, "4,3,6"},
		{"text", []string{"list", "-q", "لوکس"}, "1,6"},
		{"rooms", []string{"list", "--min-rooms", "3"}, "4,6"},
		{"area bounds inclusive", []string{"list", "--min-area", "100", "--max-area", "100"}, "2,3"},
		{"featured", []string{"list", "--featured"}, "1,2,6"},
		{"not featured", []string{"list", "--featured=false"}, "3,4,5"},
		{"area high", []string{"list", "--sort", "area_high"}, "6,4,2,3,1,5"},
		{"no match", []string{"list", "--status", "sold"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			localEnv(t)
			if got := listIDs(t, tt.args...); got != tt.want {
				t.Errorf("ids = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListTextOutput(t *testing.T) {
	localEnv(t)

	out, err := executeCommand("list", "--min-price", "3800000000")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "3,850,000,000") {
		t.Errorf("expected grouped price in %q", out)
	}
	if !strings.Contains(out, "Total: 3 properties") {
		t.Errorf("expected total in %q", out)
	}

	out, err = executeCommand("list", "--status", "sold")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No properties found.") {
		t.Errorf("output = %q", out)
	}
}

func TestShowLocal(t *testing.T) {
	localEnv(t)

	out, err := executeCommand("show", "1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"آپارتمان لوکس در شهرک کوثر", "3.2 میلیارد تومان", "2,240 million toman", "09145375158", "پارکینگ"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}

	if _, err := executeCommand("show", "99"); err == nil || err.Error() != "property 99 not found" {
		t.Errorf("show missing = %v, want property 99 not found", err)
	}
}

func TestFeaturedAndNeighborhoods(t *testing.T) {
	localEnv(t)

	if got := listIDs(t, "featured"); got != "1,2,6" {
		t.Errorf("featured = %q, want 1,2,6", got)
	}

	out, err := executeCommand("neighborhoods")
	if err != nil {
		t.Fatalf("neighborhoods: %v", err)
	}
	if strings.TrimSpace(out) != "شهرک کوثر" {
		t.Errorf("neighborhoods = %q", out)
	}
}

func TestContactAndStats(t *testing.T) {
	localEnv(t)

	out, err := executeCommand("contact")
	if err != nil {
		t.Fatalf("contact: %v", err)
	}
	if !strings.Contains(out, "Amlakerajaei127@gmail.com") || !strings.Contains(out, "09144567044") {
		t.Errorf("contact = %q", out)
	}

	out, err = executeCommand("stats", "--format", "json")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var s property.Summary
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Count != 6 || s.FeaturedCount != 3 || s.TotalValueBillions() != 21 {
		t.Errorf("summary = %+v", s)
	}
}

func TestListCustomCatalog(t *testing.T) {
	localEnv(t)

	if _, err := executeCommand("list", "--catalog", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing catalog file")
	}
}

func TestListRemote(t *testing.T) {
	localEnv(t)

	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer d.Close()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	handler, err := web.NewServer(cat, d, web.Options{})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv := httptest.NewServer(handler)
	defer srv.Close()

	if got := listIDs(t, "list", "--server", srv.URL, "--min-price", "3800000000", "--sort", "price_low"); got != "4,3,6" {
		t.Errorf("remote ids = %q, want 4,3,6", got)
	}

	t.Setenv("AMLAK_SERVER_URL", srv.URL)
	out, err := executeCommand("show", "99")
	if err == nil || err.Error() != "property 99 not found" {
		t.Errorf("remote show missing = %v (%q), want the local message", err, out)
	}

	out, err = executeCommand("status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "✓ connected") {
		t.Errorf("status = %q", out)
	}
}

func TestStatusUnreachable(t *testing.T) {
	localEnv(t)
	t.Setenv("AMLAK_SERVER_URL", "http://127.0.0.1:1")

	out, err := executeCommand("status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "cannot reach server") {
		t.Errorf("status = %q", out)
	}
}
