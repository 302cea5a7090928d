// Package sink stores exported documents and rendered pages. Keys are
// slash separated paths relative to the sink root, e.g.
// "human/HALLMARK_APOPTOSIS.yaml".
package sink

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"genesetdocs/internal/util"
)

type Driver string

const (
	DriverFS     Driver = "fs"
	DriverS3     Driver = "s3"
	DriverMemory Driver = "memory"
)

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("object not found")

// PutOptions carries optional object metadata. The fs driver ignores it.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// Sink is the storage an export or render run writes to. Put replaces any
// existing object in one step, so a reader never sees a partial document.
type Sink interface {
	Driver() Driver
	Put(ctx context.Context, key string, data []byte, opts PutOptions) error
	Get(ctx context.Context, key string) ([]byte, error)
	// List returns every key under prefix, at any depth, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Config selects a driver. Root is the fs directory; the s3 fields follow
// the AWS SDK defaults when empty.
type Config struct {
	Driver    Driver
	Root      string
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	PathStyle bool
}

func Open(ctx context.Context, cfg Config) (Sink, error) {
	switch cfg.Driver {
	case "", DriverFS:
		return NewFS(cfg.Root), nil
	case DriverS3:
		return NewS3(ctx, cfg)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", util.ErrUnknownDriver, cfg.Driver)
	}
}

// cleanKey rejects keys that would leave the sink root.
func cleanKey(key string) (string, error) {
	k := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))[1:]
	if k == "" || k != strings.TrimPrefix(key, "/") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return k, nil
}

// Stems returns the file stems of keys directly inside dir that end in ext,
// e.g. Stems(keys, "human", ".yaml") for a resume skip-set.
func Stems(keys []string, dir, ext string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	dir = strings.Trim(dir, "/")
	for _, k := range keys {
		if path.Dir(k) != dirOrDot(dir) || !strings.HasSuffix(k, ext) {
			continue
		}
		out[strings.TrimSuffix(path.Base(k), ext)] = struct{}{}
	}
	return out
}

func dirOrDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

// Join builds a key from path elements.
func Join(elem ...string) string {
	return strings.TrimPrefix(path.Join(elem...), "/")
}
