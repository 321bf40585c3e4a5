package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/ports/driven"
)

const createCommentary = `
	CREATE TABLE commentary (
		id INTEGER PRIMARY KEY,
		father_name TEXT,
		file_name TEXT,
		append_to_author_name TEXT,
		ts INTEGER,
		book TEXT,
		location_start INTEGER,
		location_end INTEGER,
		txt TEXT,
		source_url TEXT,
		source_title TEXT
	)
`

type commentaryRow struct {
	id     int64
	author string
	suffix any
	book   string
	text   string
}

func writeCommentaryDB(t *testing.T, rows ...commentaryRow) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.sqlite")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(createCommentary)
	require.NoError(t, err)
	for _, r := range rows {
		_, err := db.Exec(`
			INSERT INTO commentary
				(id, father_name, file_name, append_to_author_name, ts, book,
				 location_start, location_end, txt, source_url, source_title)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, r.id, r.author, "file.toml", r.suffix, 1700000000, r.book, 43001001, 43001005,
			r.text, "https://example.org/"+r.book, "Homilies on "+r.book)
		require.NoError(t, err)
	}
	return path
}

// newTEIServer answers every input with the same vector.
func newTEIServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/embed":
			var req struct {
				Inputs []string `json:"inputs"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			out := make([][]float32, len(req.Inputs))
			for i := range out {
				out[i] = []float32{3, 4, 0, 0}
			}
			_ = json.NewEncoder(w).Encode(out)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func teiSettings(t *testing.T, baseURL string) {
	t.Helper()
	useSettings(t, map[string]any{
		"embedding.provider":   "tei",
		"embedding.model":      "test-model",
		"embedding.base_url":   baseURL,
		"embedding.dimensions": 4,
	})
}

func longText() string {
	return strings.Repeat("In the beginning was the Word, and the Word was with God. ", 25)
}

func TestRootCmd_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"db-file", "d", "./data.sqlite"},
		{"model-name", "m", ""},
		{"output-dir", "o", "./commentary_embeddings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := rootCmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.def, flag.DefValue)
		})
	}

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestRootCmd_RunsPipeline(t *testing.T) {
	srv := newTEIServer(t)
	teiSettings(t, srv.URL)

	db := writeCommentaryDB(t,
		commentaryRow{id: 1, author: "Augustine of Hippo", suffix: "", book: "john", text: longText()},
		commentaryRow{id: 2, author: "Cyprian", suffix: "", book: "romans", text: "Too short to keep."},
		commentaryRow{id: 3, author: "Irenaeus", suffix: "quoted by Aquinas", book: "mark", text: longText()},
		commentaryRow{id: 4, author: "Tertullian", suffix: "", book: "luke", text: longText()},
		commentaryRow{id: 5, author: "Augustine of Hippo", book: "matthew", text: longText()},
	)
	out := filepath.Join(t.TempDir(), "out")

	output, err := execute(t, "", "--db-file", db, "--output-dir", out, "--model-name=")

	require.NoError(t, err)
	assert.Contains(t, output, "Running query:")
	assert.Contains(t, output, "Generating embeddings")
	assert.Contains(t, output, "Run Summary")
	assert.Contains(t, output, "1 created, 0 overwritten, 0 skipped")

	entries, err := os.ReadDir(filepath.Join(out, "john"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "john_Augustine_of_Hippo.json", entries[0].Name())

	data, err := os.ReadFile(filepath.Join(out, "john", entries[0].Name()))
	require.NoError(t, err)
	var stored struct {
		Content   string         `json:"content"`
		Metadata  map[string]any `json:"metadata"`
		Embedding []float64      `json:"embedding"`
	}
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, "john", stored.Metadata["book"])
	require.Len(t, stored.Embedding, 4)
	assert.InDelta(t, 0.6, stored.Embedding[0], 1e-6)
	assert.InDelta(t, 0.8, stored.Embedding[1], 1e-6)

	_, err = os.Stat(filepath.Join(out, "mark"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(out, "matthew"))
	assert.True(t, os.IsNotExist(err))
}

func TestRootCmd_MissingDatabase(t *testing.T) {
	useSettings(t, nil)
	called := false
	prev := newEmbeddingService
	newEmbeddingService = func(context.Context, *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
		called = true
		return nil, domain.ErrEmbeddingUnavailable
	}
	t.Cleanup(func() { newEmbeddingService = prev })

	out := filepath.Join(t.TempDir(), "out")
	_, err := execute(t, "", "--db-file", filepath.Join(t.TempDir(), "missing.sqlite"), "--output-dir", out, "--model-name=")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
	assert.False(t, called)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootCmd_EmbeddingUnavailable(t *testing.T) {
	useSettings(t, nil)
	prev := newEmbeddingService
	newEmbeddingService = func(context.Context, *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
		return nil, domain.ErrEmbeddingUnavailable
	}
	t.Cleanup(func() { newEmbeddingService = prev })

	db := writeCommentaryDB(t)
	out := filepath.Join(t.TempDir(), "out")
	_, err := execute(t, "", "--db-file", db, "--output-dir", out, "--model-name=")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmbeddingUnavailable))
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootCmd_ModelFlagOverridesSettings(t *testing.T) {
	useSettings(t, map[string]any{"embedding.model": "BAAI/bge-large-en-v1.5", "embedding.dimensions": 1024})
	var got domain.EmbeddingSettings
	prev := newEmbeddingService
	newEmbeddingService = func(_ context.Context, s *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
		got = *s
		return nil, domain.ErrEmbeddingUnavailable
	}
	t.Cleanup(func() { newEmbeddingService = prev })

	db := writeCommentaryDB(t)
	_, err := execute(t, "", "--db-file", db, "--output-dir", t.TempDir(), "-m", "BAAI/bge-small-en-v1.5")

	require.Error(t, err)
	assert.Equal(t, "BAAI/bge-small-en-v1.5", got.Model)
	assert.Equal(t, 384, got.Dimensions)
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	_, err := execute(t, "", "extra")
	assert.Error(t, err)
}
