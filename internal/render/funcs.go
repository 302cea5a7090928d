package render

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/gedex/inflector"

	"genesetdocs/internal/catalog"
	"genesetdocs/internal/models"
)

var geneIDRef = regexp.MustCompile(`\[GeneID=(\d+)\]`)

func funcMap() template.FuncMap {
	fm := sprig.FuncMap()
	fm["geneLinks"] = geneLinks
	fm["collectionDisplay"] = collectionDisplay
	fm["countNoun"] = countNoun
	fm["deref"] = deref
	fm["nbspIndent"] = nbspIndent
	return fm
}

// geneLinks escapes text and turns every [GeneID=n] into an NCBI gene link.
func geneLinks(text string) template.HTML {
	escaped := template.HTMLEscapeString(text)
	return template.HTML(geneIDRef.ReplaceAllString(escaped, `<a href="https://www.ncbi.nlm.nih.gov/gene/$1">[GeneID=$1]</a>`))
}

// collectionDisplay shows a sub-collection under its top-level collection.
func collectionDisplay(c *models.Collection) template.HTML {
	if c == nil || c.Name == "" {
		return ""
	}
	top, _, nested := strings.Cut(c.Name, ":")
	if !nested {
		return template.HTML(template.HTMLEscapeString(c.Name + ": " + c.FullName))
	}
	return template.HTML(template.HTMLEscapeString(top+": "+catalog.StaticCollectionName(top)) +
		"<br>" + strings.Repeat("&nbsp;", 6) +
		template.HTMLEscapeString(strings.TrimPrefix(c.Name, top+":")+": "+c.FullName))
}

// countNoun pluralizes the last word of noun unless n is one.
func countNoun(n int, noun string) string {
	if n == 1 {
		return noun
	}
	head, last := "", noun
	if i := strings.LastIndexByte(noun, ' '); i >= 0 {
		head, last = noun[:i+1], noun[i+1:]
	}
	return head + inflector.Pluralize(last)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nbspIndent(depth any) template.HTML {
	var n int
	switch d := depth.(type) {
	case int:
		n = d
	case int64:
		n = int(d)
	}
	if n <= 0 {
		return ""
	}
	return template.HTML(strings.Repeat("&nbsp;", n*6))
}
