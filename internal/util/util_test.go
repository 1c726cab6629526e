// internal/util/util_test.go
package util

import "testing"

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("hello", 10); got != "hello" {
		t.Fatalf("expected unchanged string, got %q", got)
	}
	if got := TruncateRunes("hello world", 5); got != "hello…" {
		t.Fatalf("expected truncated string with ellipsis, got %q", got)
	}
	// Limit of zero disables truncation entirely.
	if got := TruncateRunes("hello world", 0); got != "hello world" {
		t.Fatalf("expected no truncation with zero limit, got %q", got)
	}
	// Rune-safe on multibyte input.
	if got := TruncateRunes("µµµµµ", 3); got != "µµµ…" {
		t.Fatalf("expected rune-safe truncation, got %q", got)
	}
}

func TestMinMax(t *testing.T) {
	if Min(2, 3) != 2 || Min(3, 2) != 2 {
		t.Fatal("Min broken")
	}
	if Max(2, 3) != 3 || Max(3, 2) != 3 {
		t.Fatal("Max broken")
	}
}
