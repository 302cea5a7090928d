// Package relations answers "which other gene sets share this publication"
// and "which other gene sets share an author" over a whole corpus.
//
// A Builder collects one entry per gene set during a first pass over the
// source. Build freezes it into an Index, which is read-only and safe for
// concurrent use. Every result is sorted and free of duplicates.
package relations

import (
	"sort"
	"strings"
)

type entry struct {
	pubKey  string
	authors []string
}

type Builder struct {
	exclude  map[string]struct{}
	entities map[string]entry
	byPub    map[string][]string
	byAuthor map[string][]string
}

// NewBuilder starts an index. Names in exclude never appear in a
// same-publication list.
func NewBuilder(exclude []string) *Builder {
	b := &Builder{
		exclude:  make(map[string]struct{}, len(exclude)),
		entities: make(map[string]entry),
		byPub:    make(map[string][]string),
		byAuthor: make(map[string][]string),
	}
	for _, name := range exclude {
		if name = strings.TrimSpace(name); name != "" {
			b.exclude[name] = struct{}{}
		}
	}
	return b
}

// Add records one gene set. pubKey and authors may be empty. Adding the same
// name twice keeps the last publication key and author list.
func (b *Builder) Add(name, pubKey string, authors []string) {
	if name == "" {
		return
	}
	clean := make([]string, 0, len(authors))
	for _, a := range authors {
		if a = strings.TrimSpace(a); a != "" {
			clean = append(clean, a)
		}
	}
	b.entities[name] = entry{pubKey: pubKey, authors: clean}
	if pubKey != "" {
		b.byPub[pubKey] = append(b.byPub[pubKey], name)
	}
	for _, a := range clean {
		b.byAuthor[a] = append(b.byAuthor[a], name)
	}
}

// Build freezes the collected entries. The Builder must not be used again.
func (b *Builder) Build() *Index {
	for k, names := range b.byPub {
		b.byPub[k] = sortedUnique(names)
	}
	for k, names := range b.byAuthor {
		b.byAuthor[k] = sortedUnique(names)
	}
	idx := &Index{
		exclude:  b.exclude,
		entities: b.entities,
		byPub:    b.byPub,
		byAuthor: b.byAuthor,
	}
	*b = Builder{}
	return idx
}

type Index struct {
	exclude  map[string]struct{}
	entities map[string]entry
	byPub    map[string][]string
	byAuthor map[string][]string
}

// RelatedByPublication lists the gene sets filed under pubKey, minus name
// itself and the excluded names.
func (x *Index) RelatedByPublication(name, pubKey string) []string {
	if pubKey == "" {
		return nil
	}
	group := x.byPub[pubKey]
	out := make([]string, 0, len(group))
	for _, other := range group {
		if other == name {
			continue
		}
		if _, skip := x.exclude[other]; skip {
			continue
		}
		out = append(out, other)
	}
	return out
}

// RelatedByAuthors unions the gene sets of every author of name and removes
// name itself and anything filed under pubKey. Gene sets without a
// publication have no authors to compare, so the result is empty.
func (x *Index) RelatedByAuthors(name, pubKey string) []string {
	if pubKey == "" {
		return nil
	}
	e, ok := x.entities[name]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	for _, a := range e.authors {
		for _, other := range x.byAuthor[a] {
			if other == name {
				continue
			}
			if oe, ok := x.entities[other]; ok && oe.pubKey == pubKey {
				continue
			}
			seen[other] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for other := range seen {
		out = append(out, other)
	}
	sort.Strings(out)
	return out
}

// Len is the number of indexed gene sets.
func (x *Index) Len() int { return len(x.entities) }

func (x *Index) Publications() int { return len(x.byPub) }

func (x *Index) Authors() int { return len(x.byAuthor) }

func sortedUnique(in []string) []string {
	sort.Strings(in)
	out := in[:0]
	for i, s := range in {
		if i > 0 && s == in[i-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}
