package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	log "github.com/sirupsen/logrus"

	"genesetdocs/internal/models"
)

type historyElement struct {
	Name     string `xml:"STANDARD_NAME,attr"`
	Versions []struct {
		Num    string `xml:"NUM,attr"`
		Change string `xml:"CHANGE,attr"`
	} `xml:"VERSION"`
}

// LoadHistory reads a GENESET/VERSION history document into versions keyed
// by standard name, in document order. Gene sets without VERSION children
// are left out.
func LoadHistory(ctx context.Context, path string) (map[string][]models.Version, error) {
	rc, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	out := make(map[string][]models.Version)
	err = eachElement(ctx, rc, "GENESET", func(el *historyElement) error {
		if el.Name == "" || len(el.Versions) == 0 {
			return nil
		}
		vs := make([]models.Version, 0, len(el.Versions))
		for _, v := range el.Versions {
			vs = append(vs, models.Version{Version: v.Num, Change: v.Change})
		}
		out[el.Name] = vs
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load history %s: %w", path, err)
	}
	return out, nil
}

// loadHistoryOrEmpty treats a missing or unreadable history document as an
// empty one. Only cancellation is returned.
func loadHistoryOrEmpty(ctx context.Context, path string, logger *log.Entry) (map[string][]models.Version, error) {
	if path == "" {
		logger.Warn("no version history configured")
		return map[string][]models.Version{}, nil
	}
	h, err := LoadHistory(ctx, path)
	switch {
	case err == nil:
		logger.WithFields(log.Fields{"path": path, "gene_sets": len(h)}).Info("loaded version history")
		return h, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, fs.ErrNotExist):
		logger.WithField("path", path).Warn("version history not found, continuing without it")
	default:
		logger.WithError(err).WithField("path", path).Warn("could not load version history, continuing without it")
	}
	return map[string][]models.Version{}, nil
}
