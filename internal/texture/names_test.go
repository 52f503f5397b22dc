package texture

import "testing"

func TestMergeNames(t *testing.T) {
	cases := []struct {
		existing, incoming, want string
	}{
		{"ShinyAluminium", "MatteAluminium", "ShinyMatteAluminium"},
		{"DarkRedPlastic", "DarkBluePlastic", "DarkRedBluePlastic"},
		{"Steel", "Steel", "Steel"},
		{"Steel", "", "Steel"},
		{"", "Steel", "Steel"},
		// No common words: fall back to plain concatenation.
		{"Wood", "Steel", "Wood Steel"},
	}

	for _, c := range cases {
		if got := mergeNames(c.existing, c.incoming); got != c.want {
			t.Errorf("mergeNames(%q, %q) = %q, want %q", c.existing, c.incoming, got, c.want)
		}
	}
}

func TestLCS(t *testing.T) {
	got := lcs([]string{"A", "B", "C", "D"}, []string{"B", "D", "E"})
	if len(got) != 2 || got[0] != "B" || got[1] != "D" {
		t.Errorf("unexpected lcs: %v", got)
	}

	if got := lcs([]string{"A"}, []string{"B"}); len(got) != 0 {
		t.Errorf("expected empty lcs, got %v", got)
	}
}
