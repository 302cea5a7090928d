package util

import "testing"

func TestSanitizeTextRemovesNulAndControls(t *testing.T) {
	in := "ab\x00cd\x01\x02\n\txy"
	out := SanitizeText(in)
	if out != "abcd\n\txy" {
		t.Fatalf("unexpected sanitized output: %q", out)
	}
}

func TestSanitizeTextReplacesInvalidUTF8(t *testing.T) {
	out := SanitizeText("a\xffb")
	if out != "a�b" {
		t.Fatalf("unexpected sanitized output: %q", out)
	}
}

func TestSanitizeTextKeepsSurroundingWhitespace(t *testing.T) {
	out := SanitizeText("  lead and trail\n")
	if out != "  lead and trail\n" {
		t.Fatalf("unexpected sanitized output: %q", out)
	}
}
