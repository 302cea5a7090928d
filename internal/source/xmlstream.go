package source

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"

	"genesetdocs/internal/util"
)

// openInput opens path, decompressing ".gz" files on the fly.
func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := pgzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("gunzip %s: %w", path, err)
	}
	return struct {
		io.Reader
		io.Closer
	}{zr, closerFunc(func() error {
		zr.Close()
		return f.Close()
	})}, nil
}

type closerFunc func() error

func (c closerFunc) Close() error { return c() }

// eachElement streams r and decodes every element named local into a fresh
// T, one at a time. Only the current element is held in memory. Syntax
// errors are reported as ErrCorpusParse.
func eachElement[T any](ctx context.Context, r io.Reader, local string, fn func(*T) error) error {
	dec := xml.NewDecoder(r)
	// Input is UTF-8 after sanitizing whatever the prolog claims.
	dec.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) { return in, nil }
	n := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", util.ErrCorpusParse, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != local {
			continue
		}
		if n++; n%256 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		v := new(T)
		if err := dec.DecodeElement(v, &start); err != nil {
			return fmt.Errorf("%w: %s element %d: %w", util.ErrCorpusParse, local, n, err)
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}
