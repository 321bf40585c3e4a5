package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.SegmentReader = (*Reader)(nil)

// storedFile mirrors segmentFile with presence checks on required fields.
type storedFile struct {
	Content   *string        `json:"content"`
	Metadata  map[string]any `json:"metadata"`
	Embedding *[]float32     `json:"embedding"`
}

// Reader loads every segment file under a root directory.
type Reader struct {
	root string
}

// NewReader creates a reader rooted at root.
func NewReader(root string) *Reader {
	return &Reader{root: root}
}

// Load walks the root in lexical order and parses every *.json file.
// The first file that fails to parse aborts the load.
func (r *Reader) Load(ctx context.Context) ([]domain.StoredSegment, error) {
	info, err := os.Stat(r.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, r.root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, r.root)
	}

	var segments []domain.StoredSegment
	err = filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		seg, err := readSegment(path)
		if err != nil {
			return err
		}
		segments = append(segments, seg)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return segments, nil
}

func readSegment(path string) (domain.StoredSegment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.StoredSegment{}, fmt.Errorf("reading %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var f storedFile
	if err := dec.Decode(&f); err != nil {
		return domain.StoredSegment{}, fmt.Errorf("%w: %s: %w", domain.ErrCorruptSegment, path, err)
	}
	if f.Content == nil || f.Embedding == nil {
		return domain.StoredSegment{}, fmt.Errorf("%w: %s: missing content or embedding",
			domain.ErrCorruptSegment, path)
	}

	return domain.StoredSegment{
		Path:      path,
		Content:   *f.Content,
		Metadata:  decodeMetadata(f.Metadata),
		Embedding: *f.Embedding,
	}, nil
}

// decodeMetadata turns json.Number values back into int64 or float64.
func decodeMetadata(raw map[string]any) domain.Metadata {
	if raw == nil {
		return domain.Metadata{}
	}
	meta := make(domain.Metadata, len(raw))
	for k, v := range raw {
		n, ok := v.(json.Number)
		if !ok {
			meta[k] = v
			continue
		}
		if i, err := n.Int64(); err == nil {
			meta[k] = i
		} else if f, err := n.Float64(); err == nil {
			meta[k] = f
		} else {
			meta[k] = n.String()
		}
	}
	return meta
}
