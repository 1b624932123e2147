package traversal

import "testing"

func TestNaturalLess(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"U2", "U10", true},
		{"U10", "U2", false},
		{"R1", "R2", true},
		{"R9", "R10", true},
		{"R10", "R9", false},
		{"A", "B", true},
		{"A1", "A1", false},
		{"1", "2", true},
		{"pin2", "pin10", true},
	}
	for _, c := range cases {
		if got := naturalLess(c.a, c.b); got != c.want {
			t.Errorf("naturalLess(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestSplitRuns(t *testing.T) {
	got := splitRuns("R10A2")
	want := []string{"R", "10", "A", "2"}
	if len(got) != len(want) {
		t.Fatalf("splitRuns(%q) = %v, want %v", "R10A2", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitRuns(%q)[%d] = %q, want %q", "R10A2", i, got[i], want[i])
		}
	}
}

func TestParseRun(t *testing.T) {
	n, ok := parseRun("042")
	if !ok || n != 42 {
		t.Errorf("parseRun(042) = (%d, %v), want (42, true)", n, ok)
	}
	if _, ok := parseRun("R"); ok {
		t.Errorf("parseRun(R) should report ok=false")
	}
}
