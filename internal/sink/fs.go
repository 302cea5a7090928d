package sink

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"genesetdocs/internal/util"
)

// FS stores objects as files under a root directory. Writes go to a temp
// file in the same directory and are renamed into place.
type FS struct {
	root string
}

func NewFS(root string) *FS {
	if root == "" {
		root = "."
	}
	return &FS{root: root}
}

func (s *FS) Driver() Driver { return DriverFS }

func (s *FS) Root() string { return s.root }

func (s *FS) path(key string) (string, error) {
	k, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(k)), nil
}

func (s *FS) Put(ctx context.Context, key string, data []byte, _ PutOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := util.EnsureDir(filepath.Dir(p)); err != nil {
		return err
	}
	return util.WriteFileAtomic(p, data)
}

func (s *FS) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return b, nil
}

// List walks root/prefix. A missing directory lists as empty. Temp files of
// interrupted writes are skipped.
func (s *FS) List(ctx context.Context, prefix string) ([]string, error) {
	base := s.root
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		p, err := s.path(prefix)
		if err != nil {
			return nil, err
		}
		base = p
	}
	var keys []string
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == base {
				return filepath.SkipDir
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || util.IsTempFile(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("list %s: %w", base, err)
	}
	sort.Strings(keys)
	return keys, nil
}
