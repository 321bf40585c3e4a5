package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/patristic/internal/core/domain"
)

func segment(id, book, author, content string) domain.Segment {
	return domain.Segment{
		ID:      id,
		Content: content,
		Metadata: domain.Metadata{
			domain.MetaID:         int64(42),
			domain.MetaBook:       book,
			domain.MetaAuthorName: author,
		},
	}
}

func listJSON(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestNewWriter_Validation(t *testing.T) {
	_, err := NewWriter("", domain.WritePolicyAppend)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewWriter(t.TempDir(), domain.WritePolicy("sometimes"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWriter_WritesFileContents(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	w, err := NewWriter(root, domain.WritePolicyAppend)
	require.NoError(t, err)

	out, err := w.Write(context.Background(), segment("s1", "Matthew", "John Chrysostom", "text"), []float32{0.6, 0.8})

	require.NoError(t, err)
	assert.Equal(t, domain.WriteCreated, out.Status)
	assert.Equal(t, "s1", out.SegmentID)
	assert.Equal(t, filepath.Join(root, "matthew", "matthew_John_Chrysostom.json"), out.Path)

	data, err := os.ReadFile(out.Path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "text", decoded["content"])
	assert.Equal(t, []any{0.6, 0.8}, decoded["embedding"])
	assert.Equal(t, map[string]any{
		"id":          float64(42),
		"book":        "Matthew",
		"author_name": "John Chrysostom",
	}, decoded["metadata"])

	// no temp files left behind
	assert.Equal(t, []string{"matthew_John_Chrysostom.json"}, listJSON(t, filepath.Join(root, "matthew")))
}

func TestWriter_MissingMetadataUsesUnknown(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, domain.WritePolicyAppend)
	require.NoError(t, err)

	out, err := w.Write(context.Background(), domain.Segment{ID: "s", Content: "c"}, []float32{1})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "unknown", "unknown_unknown.json"), out.Path)
}

func TestWriter_SameAuthorGetsNumberedFiles(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, domain.WritePolicyAppend)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := w.Write(ctx, segment("s", "john", "Origen", "c"), []float32{1})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"john_Origen.json", "john_Origen_2.json", "john_Origen_3.json"},
		listJSON(t, filepath.Join(root, "john")))
}

func TestWriter_AppendRerunAddsFiles(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	for run := 0; run < 2; run++ {
		w, err := NewWriter(root, domain.WritePolicyAppend)
		require.NoError(t, err)
		for i := 0; i < 2; i++ {
			out, err := w.Write(ctx, segment("s", "john", "Origen", "c"), []float32{1})
			require.NoError(t, err)
			assert.Equal(t, domain.WriteCreated, out.Status)
		}
	}

	assert.Equal(t, []string{
		"john_Origen.json", "john_Origen_2.json", "john_Origen_3.json", "john_Origen_4.json",
	}, listJSON(t, filepath.Join(root, "john")))
}

func TestWriter_OverwriteReplacesFiles(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	first, err := NewWriter(root, domain.WritePolicyOverwrite)
	require.NoError(t, err)
	_, err = first.Write(ctx, segment("s1", "john", "Origen", "old"), []float32{1})
	require.NoError(t, err)

	second, err := NewWriter(root, domain.WritePolicyOverwrite)
	require.NoError(t, err)
	out, err := second.Write(ctx, segment("s2", "john", "Origen", "new"), []float32{1})
	require.NoError(t, err)

	assert.Equal(t, domain.WriteOverwritten, out.Status)
	assert.Equal(t, []string{"john_Origen.json"}, listJSON(t, filepath.Join(root, "john")))

	data, err := os.ReadFile(out.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"content":"new"`)
}

func TestWriter_OverwriteRemovesStaleNumberedFiles(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	first, err := NewWriter(root, domain.WritePolicyOverwrite)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := first.Write(ctx, segment("s", "john", "Origen", "old"), []float32{1})
		require.NoError(t, err)
	}
	_, err = first.Write(ctx, segment("s", "john", "Origen Adamantius", "other"), []float32{1})
	require.NoError(t, err)
	_, err = first.Write(ctx, segment("s", "john", "Origen Adamantius", "other"), []float32{1})
	require.NoError(t, err)

	second, err := NewWriter(root, domain.WritePolicyOverwrite)
	require.NoError(t, err)
	out1, err := second.Write(ctx, segment("s", "john", "Origen", "new"), []float32{1})
	require.NoError(t, err)
	out2, err := second.Write(ctx, segment("s", "john", "Origen", "new"), []float32{1})
	require.NoError(t, err)

	assert.Equal(t, domain.WriteOverwritten, out1.Status)
	assert.Equal(t, domain.WriteCreated, out2.Status)
	assert.Equal(t, []string{
		"john_Origen.json",
		"john_Origen_2.json",
		"john_Origen_Adamantius.json",
		"john_Origen_Adamantius_2.json",
	}, listJSON(t, filepath.Join(root, "john")))
}

func TestNumberedIndex(t *testing.T) {
	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"john_Origen_2.json", 2, true},
		{"john_Origen_17.json", 17, true},
		{"john_Origen.json", 0, false},
		{"john_Origen_1.json", 0, false},
		{"john_Origen_Adamantius_2.json", 0, false},
		{"john_Origen_2.json.tmp", 0, false},
		{"john_Origen_.json", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := numberedIndex(tt.name, "john_Origen")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriter_SkipExistingLeavesFiles(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	first, err := NewWriter(root, domain.WritePolicySkipExisting)
	require.NoError(t, err)
	_, err = first.Write(ctx, segment("s1", "john", "Origen", "old"), []float32{1})
	require.NoError(t, err)

	second, err := NewWriter(root, domain.WritePolicySkipExisting)
	require.NoError(t, err)
	skipped, err := second.Write(ctx, segment("s2", "john", "Origen", "new"), []float32{1})
	require.NoError(t, err)
	created, err := second.Write(ctx, segment("s3", "john", "Origen", "more"), []float32{1})
	require.NoError(t, err)

	assert.Equal(t, domain.WriteSkipped, skipped.Status)
	assert.Equal(t, domain.WriteCreated, created.Status)
	assert.Equal(t, []string{"john_Origen.json", "john_Origen_2.json"}, listJSON(t, filepath.Join(root, "john")))

	data, err := os.ReadFile(skipped.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"content":"old"`)
}

func TestWriter_CancelledContext(t *testing.T) {
	w, err := NewWriter(t.TempDir(), domain.WritePolicyAppend)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = w.Write(ctx, segment("s", "john", "Origen", "c"), []float32{1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriter_UnwritableRoot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0600))

	w, err := NewWriter(file, domain.WritePolicyAppend)
	require.NoError(t, err)

	_, err = w.Write(context.Background(), segment("s", "john", "Origen", "c"), []float32{1})
	assert.Error(t, err)
}
