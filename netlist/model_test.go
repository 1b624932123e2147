package netlist

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConnectMaintainsInvariant(t *testing.T) {
	m := New()
	m.Connect("SIG", "R1", "1")
	m.Connect("GND", "R1", "2")

	if problems := m.Verify(); len(problems) != 0 {
		t.Fatalf("unexpected invariant violations: %v", problems)
	}

	if got := m.PinsOf("SIG", "R1"); len(got) != 1 || got[0] != "1" {
		t.Fatalf("PinsOf(SIG, R1) = %v, want [1]", got)
	}

	entry := m.Components["R1"].Pins["2"]
	if entry.Net != "GND" {
		t.Fatalf("pin 2 net = %q, want GND", entry.Net)
	}
}

func TestConnectDeduplicatesPins(t *testing.T) {
	m := New()
	m.Connect("SIG", "R1", "1")
	m.Connect("SIG", "R1", "1")

	if got := m.PinsOf("SIG", "R1"); len(got) != 1 {
		t.Fatalf("PinsOf(SIG, R1) = %v, want single entry", got)
	}
}

func TestConnectEmptyNetBecomesNC(t *testing.T) {
	m := New()
	m.Connect("", "U1", "7")

	if got := m.Components["U1"].Pins["7"].Net; got != NC {
		t.Fatalf("pin net = %q, want %q", got, NC)
	}
	if _, ok := m.Nets[NC]["U1"]; !ok {
		t.Fatalf("expected N[NC][U1] to exist")
	}
}

func TestVerifyDetectsMismatch(t *testing.T) {
	m := New()
	m.Connect("SIG", "R1", "1")
	// Corrupt the component side directly to simulate a decoder bug.
	m.Components["R1"].Pins["1"] = PinEntry{Net: "OTHER"}

	problems := m.Verify()
	if len(problems) == 0 {
		t.Fatalf("expected invariant violation to be detected")
	}
}

func TestValidRefdes(t *testing.T) {
	cases := map[string]bool{
		"R1":       true,
		"u1":       true,
		"C_10":     true,
		"A1":       true,
		"":         false,
		"U1.1":     false,
		"inst@top": false,
		"1R":       false,
	}
	for input, want := range cases {
		if got := ValidRefdes(input); got != want {
			t.Errorf("ValidRefdes(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestCleanMPN(t *testing.T) {
	if got := CleanMPN("  10k  "); got != "10k" {
		t.Errorf("CleanMPN trimmed = %q, want 10k", got)
	}
	if got := CleanMPN("   "); got != "" {
		t.Errorf("CleanMPN whitespace-only = %q, want empty", got)
	}
}

func TestPinEntryJSONRoundTrip(t *testing.T) {
	bare := PinEntry{Net: "GND"}
	named := PinEntry{Name: "VIN", Net: "PWR_3V3"}

	for _, want := range []PinEntry{bare, named} {
		data, err := json.Marshal(want)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		var got PinEntry
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestModelParsedTwiceIsStructurallyIdentical(t *testing.T) {
	build := func() *Model {
		m := New()
		m.Connect("A", "R1", "1")
		m.Connect("B", "R1", "2")
		m.Connect("B", "R2", "1")
		m.Connect("C", "R2", "2")
		m.Component("R1").MPN = "10k"
		return m
	}

	a, b := build(), build()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("two builds of the same model differ (-a +b):\n%s", diff)
	}
}
