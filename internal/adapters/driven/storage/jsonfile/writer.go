package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/ports/driven"
	"github.com/custodia-labs/patristic/internal/logger"
)

// Ensure Writer implements the interface.
var _ driven.SegmentWriter = (*Writer)(nil)

// segmentFile is the on-disk shape of one segment.
type segmentFile struct {
	Content   string          `json:"content"`
	Metadata  domain.Metadata `json:"metadata"`
	Embedding []float32       `json:"embedding"`
}

// Writer writes one JSON file per segment under a root directory.
//
// Under the overwrite policy the first write for a book and author removes
// that base name's numbered files (_2, _3, ...) left by earlier runs, so a
// run that yields fewer segments leaves no stale files behind.
type Writer struct {
	root   string
	policy domain.WritePolicy
	names  *NameRegistry

	mu      sync.Mutex
	cleared map[string]struct{}
}

// NewWriter creates a writer rooted at root. The directory is created on
// first write.
func NewWriter(root string, policy domain.WritePolicy) (*Writer, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: output directory is empty", domain.ErrInvalidInput)
	}
	if !policy.IsValid() {
		return nil, fmt.Errorf("%w: write policy %q", domain.ErrInvalidInput, policy)
	}

	return &Writer{
		root:    root,
		policy:  policy,
		names:   NewNameRegistry(policy == domain.WritePolicyAppend),
		cleared: make(map[string]struct{}),
	}, nil
}

// Root returns the output directory.
func (w *Writer) Root() string {
	return w.root
}

// Write stores seg and its embedding in the book directory.
func (w *Writer) Write(ctx context.Context, seg domain.Segment, embedding []float32) (domain.WriteOutcome, error) {
	outcome := domain.WriteOutcome{SegmentID: seg.ID}
	if err := ctx.Err(); err != nil {
		return outcome, err
	}

	book := SanitizeName(seg.Book())
	dir := filepath.Join(w.root, book)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return outcome, fmt.Errorf("creating %s: %w", dir, err)
	}

	base := BaseName(seg.Book(), seg.AuthorName())
	if w.policy == domain.WritePolicyOverwrite {
		if err := w.clearNumbered(dir, base); err != nil {
			return outcome, err
		}
	}

	name, err := w.names.Reserve(dir, base)
	if err != nil {
		return outcome, err
	}
	outcome.Path = filepath.Join(dir, name)

	existed, err := fileExists(outcome.Path)
	if err != nil {
		return outcome, err
	}

	switch {
	case !existed:
		outcome.Status = domain.WriteCreated
	case w.policy == domain.WritePolicySkipExisting:
		outcome.Status = domain.WriteSkipped
		logger.Debug("skipping existing %s", outcome.Path)
		return outcome, nil
	default:
		outcome.Status = domain.WriteOverwritten
	}

	data, err := json.Marshal(segmentFile{
		Content:   seg.Content,
		Metadata:  seg.Metadata,
		Embedding: embedding,
	})
	if err != nil {
		return outcome, fmt.Errorf("encoding segment %s: %w", seg.ID, err)
	}

	if err := writeAtomic(dir, outcome.Path, data); err != nil {
		return outcome, err
	}

	logger.Debug("wrote %s (%s)", outcome.Path, outcome.Status)
	return outcome, nil
}

// clearNumbered removes stale numbered files for base, once per run.
func (w *Writer) clearNumbered(dir, base string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := filepath.Join(dir, base)
	if _, done := w.cleared[key]; done {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := numberedIndex(e.Name(), base); !ok {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing stale %s: %w", path, err)
		}
		logger.Debug("removed stale %s", path)
	}

	w.cleared[key] = struct{}{}
	return nil
}

// writeAtomic writes data to a temp file in dir and renames it to path.
func writeAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".segment-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", path, err)
}
