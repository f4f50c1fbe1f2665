package stringsx

import "testing"

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", " ", "x", "y"); got != "x" {
		t.Fatalf("FirstNonEmpty: want 'x', got %q", got)
	}
	if got := FirstNonEmpty("", ""); got != "" {
		t.Fatalf("FirstNonEmpty empty: want '', got %q", got)
	}
}

func TestJoinNonEmpty(t *testing.T) {
	if got := JoinNonEmpty(", ", " a ", "", "b"); got != "a, b" {
		t.Fatalf("JoinNonEmpty: want 'a, b', got %q", got)
	}
	if got := JoinNonEmpty("; "); got != "" {
		t.Fatalf("JoinNonEmpty no values: want '', got %q", got)
	}
}
