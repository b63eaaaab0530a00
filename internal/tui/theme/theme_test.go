package theme

import "testing"

func TestByNameFallsBackToDefault(t *testing.T) {
	if got := ByName("Tokyo-Night").Name; got != "tokyo-night" {
		t.Errorf("ByName(Tokyo-Night) = %q, want tokyo-night", got)
	}
	if got := ByName("nope").Name; got != FlexokiDark.Name {
		t.Errorf("ByName(nope) = %q, want %q", got, FlexokiDark.Name)
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Errorf("Active = %q, want terminal", Active.Name)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("len(Names()) = %d, want %d", len(names), len(All))
	}
	for _, n := range names {
		if !Known(n) {
			t.Errorf("Known(%q) = false", n)
		}
	}
	if Known("solarized") {
		t.Error("Known(solarized) = true")
	}
}
