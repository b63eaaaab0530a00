package cmd

import (
	"strings"
	"testing"

	"github.com/theirongolddev/cbudget/internal/model"
)

func TestParseAmounts(t *testing.T) {
	got, err := parseAmounts([]string{"jan=100", "3=$1,250.50", "December=40"})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{"jan": 100, "mar": 1250.5, "dec": 40}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
}

func TestParseAmountsAllThenOverride(t *testing.T) {
	got, err := parseAmounts([]string{"all=50", "jul=0"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 12 {
		t.Fatalf("len = %d, want 12", len(got))
	}
	if got["jan"] != 50 || got["jul"] != 0 {
		t.Errorf("jan = %v, jul = %v", got["jan"], got["jul"])
	}
}

func TestParseAmountsErrors(t *testing.T) {
	for _, args := range [][]string{{"jan"}, {"13=5"}, {"foo=5"}, {"jan=abc"}} {
		if _, err := parseAmounts(args); err == nil {
			t.Errorf("parseAmounts(%v) succeeded, want error", args)
		}
	}
}

func TestResolveCategory(t *testing.T) {
	cats := []model.Category{
		{ID: "c1", Name: "Rent"},
		{ID: "c2", Name: "Food"},
		{ID: "c3", Name: "food"},
	}

	tests := []struct {
		ref     string
		want    string
		wantErr string
	}{
		{"c2", "c2", ""},
		{"rent", "c1", ""},
		{"Food", "", "matches 2"},
		{"Travel", "", "no category"},
	}
	for _, tt := range tests {
		got, err := resolveCategory(cats, tt.ref)
		if tt.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("resolveCategory(%q) err = %v, want %q", tt.ref, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("resolveCategory(%q) = %q, %v, want %q", tt.ref, got, err, tt.want)
		}
	}
}

func TestParseDateArg(t *testing.T) {
	got, err := parseDateArg("2025-03-07T10:00:00")
	if err != nil || got != "2025-03-07" {
		t.Errorf("parseDateArg = %q, %v, want 2025-03-07", got, err)
	}
	if _, err := parseDateArg("03/07/2025"); err == nil {
		t.Error("parseDateArg accepted 03/07/2025")
	}
}
