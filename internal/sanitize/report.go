package sanitize

import "fmt"

// Report counts the repairs applied to one document.
type Report struct {
	InvalidUTF8  int `json:"invalid_utf8"`
	RemovedChars int `json:"removed_chars"`
	EscapedChars int `json:"escaped_chars"`
}

func (r Report) Changed() bool {
	return r.InvalidUTF8 > 0 || r.RemovedChars > 0 || r.EscapedChars > 0
}

func (r Report) String() string {
	return fmt.Sprintf("invalid_utf8=%d removed_chars=%d escaped_chars=%d", r.InvalidUTF8, r.RemovedChars, r.EscapedChars)
}
