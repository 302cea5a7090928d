package sanitize

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"
	log "github.com/sirupsen/logrus"

	"genesetdocs/internal/util"
)

// Bytes repairs one whole document held in memory.
func Bytes(b []byte) ([]byte, Report, error) {
	text, invalid, removed, err := decode(b)
	if err != nil {
		return nil, Report{}, err
	}
	var out bytes.Buffer
	out.Grow(len(text) + len(text)/64)
	escaped := escapeTo(&out, text)
	return out.Bytes(), Report{InvalidUTF8: invalid, RemovedChars: removed, EscapedChars: escaped}, nil
}

// Sanitize reads the whole document from r and writes the repaired text to w.
func Sanitize(r io.Reader, w io.Writer) (Report, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("read document: %w", err)
	}
	text, invalid, removed, err := decode(b)
	if err != nil {
		return Report{}, err
	}
	rep := Report{InvalidUTF8: invalid, RemovedChars: removed}
	bw := bufio.NewWriter(w)
	rep.EscapedChars = escapeTo(bw, text)
	if err := bw.Flush(); err != nil {
		return Report{}, fmt.Errorf("write document: %w", err)
	}
	return rep, nil
}

// Result names the file the XML reader should open.
type Result struct {
	// Path is the repaired copy, or the input itself when nothing changed.
	Path   string
	Report Report
	temp   bool
}

// Cleanup removes the repaired copy, if one was written.
func (r Result) Cleanup() {
	if r.temp {
		_ = os.Remove(r.Path)
	}
}

// File repairs the document at path. Gzip-compressed inputs (".gz") are
// decompressed first. When a repair was needed the repaired text is written
// to a new file under tmpDir (os.TempDir when empty); otherwise the original
// path is returned and nothing is written.
func File(ctx context.Context, path, tmpDir string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	raw, err := readMaybeGzip(path)
	if err != nil {
		return Result{}, err
	}
	text, invalid, removed, err := decode(raw)
	if err != nil {
		return Result{}, fmt.Errorf("sanitize %s: %w", path, err)
	}
	rep := Report{InvalidUTF8: invalid, RemovedChars: removed}
	compressed := strings.HasSuffix(path, ".gz")
	if !rep.Changed() && !compressed {
		// Count first so a clean dump is never copied.
		if rep.EscapedChars = escapeTo(countingWriter{}, text); rep.EscapedChars == 0 {
			log.WithField("path", path).Debug("xml needed no repair")
			return Result{Path: path, Report: rep}, nil
		}
	}
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	if err := util.EnsureDir(tmpDir); err != nil {
		return Result{}, err
	}
	base := strings.TrimSuffix(filepath.Base(path), ".gz")
	f, err := os.CreateTemp(tmpDir, "sanitized-*-"+base)
	if err != nil {
		return Result{}, fmt.Errorf("create sanitized copy: %w", err)
	}
	bw := bufio.NewWriterSize(f, 1<<20)
	rep.EscapedChars = escapeTo(bw, text)
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return Result{}, fmt.Errorf("write sanitized copy: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return Result{}, fmt.Errorf("close sanitized copy: %w", err)
	}
	log.WithFields(log.Fields{
		"path":          path,
		"sanitized":     f.Name(),
		"invalid_utf8":  rep.InvalidUTF8,
		"removed_chars": rep.RemovedChars,
		"escaped_chars": rep.EscapedChars,
	}).Info("xml repaired")
	return Result{Path: f.Name(), Report: rep, temp: true}, nil
}

func readMaybeGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := pgzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gunzip %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}
