package testutil

import (
	"strings"
	"testing"
)

// ContainsInOrder fails the test unless every want string appears in out,
// each one after the end of the previous match.
func ContainsInOrder(t testing.TB, out string, want ...string) {
	t.Helper()
	rest := out
	for _, w := range want {
		i := strings.Index(rest, w)
		if i < 0 {
			t.Fatalf("expected %q in remaining output %q\nfull output:\n%s", w, rest, out)
		}
		rest = rest[i+len(w):]
	}
}
