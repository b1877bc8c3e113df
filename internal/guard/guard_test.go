package guard

import "testing"

func TestAllow(t *testing.T) {
	cases := []struct {
		name   string
		prefix string
		want   bool
	}{
		{"codex-a", "codex", true},
		{"codex-", "codex", true},
		{"codex-web-1", "codex", true},
		{"codex", "codex", false},       // prefix alone, no hyphen
		{"codexa", "codex", false},      // missing hyphen
		{"codexx-a", "codex", false},    // different prefix
		{"other-a", "codex", false},
		{"", "codex", false},
		{"codex-a", "", false},
	}

	for _, c := range cases {
		if got := Allow(c.name, c.prefix); got != c.want {
			t.Errorf("Allow(%q, %q) = %v, want %v", c.name, c.prefix, got, c.want)
		}
	}
}
