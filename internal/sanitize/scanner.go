package sanitize

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TargetElement is the element whose attribute values get re-escaped.
const TargetElement = "GENESET"

type state int

const (
	outsideTag state = iota
	inTag
	inAttrValue
)

var entityRef = regexp.MustCompile(`^&(?:lt|gt|amp|quot|apos|#[0-9]+|#[xX][0-9a-fA-F]+);`)

// maxEntityLen bounds the lookahead used to recognise an entity reference.
const maxEntityLen = 16

// textWriter is satisfied by *bytes.Buffer, *strings.Builder and
// *bufio.Writer.
type textWriter interface {
	io.ByteWriter
	io.StringWriter
}

// countingWriter discards output; it lets a dry run count escapes.
type countingWriter struct{}

func (countingWriter) WriteByte(byte) error { return nil }
func (countingWriter) WriteString(s string) (int, error) { return len(s), nil }

var (
	openTarget = []byte("<" + TargetElement)
	selfClose  = []byte("/>")
	valueOpen  = []byte(`="`)
)

// scanner walks the text once. In outsideTag it looks for "<GENESET", in
// inTag it copies attribute names and watches for `="`, and in inAttrValue
// it escapes markup characters until the closing quote.
type scanner struct {
	src     []byte
	pos     int
	state   state
	out     textWriter
	escaped int
	// nameRun is true when the last byte written in inTag belongs to an
	// attribute name, which is what makes a following `="` an attribute.
	nameRun bool
}

// EscapeAttributes re-escapes the attribute values of every GENESET start
// tag in text and returns the repaired text and the number of characters it
// had to escape.
func EscapeAttributes(text string) (string, int) {
	var b strings.Builder
	b.Grow(len(text) + len(text)/64)
	n := escapeTo(&b, []byte(text))
	return b.String(), n
}

// escapeTo writes the repaired src to w and returns the number of escaped
// characters. Write errors are left to the caller, which flushes w.
func escapeTo(w textWriter, src []byte) int {
	s := &scanner{src: src, out: w}
	for s.pos < len(s.src) {
		switch s.state {
		case outsideTag:
			s.scanOutside()
		case inTag:
			s.scanTag()
		case inAttrValue:
			s.scanValue()
		}
	}
	return s.escaped
}

func (s *scanner) scanOutside() {
	if bytes.HasPrefix(s.src[s.pos:], openTarget) && s.elementBoundary(s.pos+len(openTarget)) {
		_, _ = s.out.WriteString("<" + TargetElement)
		s.pos += len(openTarget)
		s.state = inTag
		s.nameRun = false
		return
	}
	s.copyByte()
}

// elementBoundary keeps <GENESETS or <GENESET_X from matching the target.
func (s *scanner) elementBoundary(i int) bool {
	if i >= len(s.src) {
		return true
	}
	switch s.src[i] {
	case ' ', '\t', '\n', '\r', '/', '>':
		return true
	}
	return false
}

func (s *scanner) scanTag() {
	rest := s.src[s.pos:]
	switch {
	case bytes.HasPrefix(rest, selfClose):
		_, _ = s.out.WriteString("/>")
		s.pos += 2
		s.state = outsideTag
	case rest[0] == '>':
		s.copyByte()
		s.state = outsideTag
	case bytes.HasPrefix(rest, valueOpen) && s.nameRun:
		_, _ = s.out.WriteString(`="`)
		s.pos += 2
		s.state = inAttrValue
	default:
		c := rest[0]
		s.nameRun = c == '_' || c == '-' || c == '.' || c == ':' || isASCIIAlnum(c)
		s.copyByte()
	}
}

func (s *scanner) scanValue() {
	c := s.src[s.pos]
	switch c {
	case '"':
		if s.closesValue(s.pos + 1) {
			s.copyByte()
			s.state = inTag
			s.nameRun = false
			return
		}
		s.escape("&quot;")
	case '&':
		if ref := s.entityAt(s.pos); ref != "" {
			_, _ = s.out.WriteString(ref)
			s.pos += len(ref)
			return
		}
		s.escape("&amp;")
	case '<':
		s.escape("&lt;")
	case '>':
		s.escape("&gt;")
	default:
		s.copyByte()
	}
}

// closesValue decides whether the quote just before i ends the attribute
// value. It does when nothing follows, when a space is followed by an upper
// case letter (the next attribute name) or by '/', or when the tag ends.
// This is tuned to the GENESET dump, where attribute names are upper case;
// a value containing `" X` is still cut short.
func (s *scanner) closesValue(i int) bool {
	rest := s.src[i:]
	if len(rest) == 0 {
		return true
	}
	if bytes.HasPrefix(rest, selfClose) || rest[0] == '>' {
		return true
	}
	if rest[0] == ' ' && len(rest) > 1 {
		if rest[1] == '/' {
			return true
		}
		r, _ := utf8.DecodeRune(rest[1:])
		return unicode.IsUpper(r)
	}
	return false
}

func (s *scanner) entityAt(i int) string {
	end := i + maxEntityLen
	if end > len(s.src) {
		end = len(s.src)
	}
	return string(entityRef.Find(s.src[i:end]))
}

func (s *scanner) escape(ref string) {
	_, _ = s.out.WriteString(ref)
	s.pos++
	s.escaped++
}

func (s *scanner) copyByte() {
	_ = s.out.WriteByte(s.src[s.pos])
	s.pos++
}

func isASCIIAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
