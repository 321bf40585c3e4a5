package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/patristic/internal/core/domain"
)

func TestReader_LoadsWhatWriterWrote(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, domain.WritePolicyAppend)
	require.NoError(t, err)

	ctx := context.Background()
	seg := segment("s1", "romans", "Origen", "first")
	seg.Metadata[domain.MetaLocationStart] = int64(45001001)
	seg.Metadata["score"] = 0.25
	_, err = w.Write(ctx, seg, []float32{0.6, 0.8})
	require.NoError(t, err)
	_, err = w.Write(ctx, segment("s2", "acts", "Bede", "second"), []float32{1, 0})
	require.NoError(t, err)

	got, err := NewReader(root).Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// lexical walk order: acts before romans
	assert.Equal(t, filepath.Join(root, "acts", "acts_Bede.json"), got[0].Path)
	assert.Equal(t, "second", got[0].Content)
	assert.Equal(t, []float32{1, 0}, got[0].Embedding)

	assert.Equal(t, "first", got[1].Content)
	assert.Equal(t, []float32{0.6, 0.8}, got[1].Embedding)
	assert.Equal(t, int64(42), got[1].Metadata[domain.MetaID])
	assert.Equal(t, int64(45001001), got[1].Metadata[domain.MetaLocationStart])
	assert.Equal(t, 0.25, got[1].Metadata["score"])
	assert.Equal(t, "Origen", got[1].Metadata.String(domain.MetaAuthorName))
}

func TestReader_IgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.json"),
		[]byte(`{"content":"c","metadata":{},"embedding":[1]}`), 0600))

	got, err := NewReader(root).Load(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Metadata{}, got[0].Metadata)
}

func TestReader_CorruptFileNamesPath(t *testing.T) {
	root := t.TempDir()
	bad := filepath.Join(root, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0600))

	_, err := NewReader(root).Load(context.Background())

	require.ErrorIs(t, err, domain.ErrCorruptSegment)
	assert.Contains(t, err.Error(), bad)
}

func TestReader_MissingFieldsAreCorrupt(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.json"), []byte(`{"content":"c"}`), 0600))

	_, err := NewReader(root).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCorruptSegment)
}

func TestReader_MissingRoot(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "missing")).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReader_RootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, nil, 0600))

	_, err := NewReader(file).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReader_EmptyRoot(t *testing.T) {
	got, err := NewReader(t.TempDir()).Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}
