package jsonfile

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "matthew", want: "matthew"},
		{in: "1Corinthians", want: "1corinthians"},
		{in: `a<b>c:d"e/f\g|h?i*j`, want: "a_b_c_d_e_f_g_h_i_j"},
		{in: "Song of Songs", want: "song of songs"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "matthew_Augustine_of_Hippo", BaseName("Matthew", "Augustine of Hippo"))
	assert.Equal(t, "john_A_B", BaseName("john", "A/B"))
	assert.Equal(t, "song_of_songs_Bede", BaseName("Song of Songs", "Bede"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "b.json", FileName("b", 1))
	assert.Equal(t, "b.json", FileName("b", 0))
	assert.Equal(t, "b_2.json", FileName("b", 2))
	assert.Equal(t, "b_10.json", FileName("b", 10))
}

func TestNameRegistry_SequencePerBase(t *testing.T) {
	r := NewNameRegistry(false)
	dir := t.TempDir()

	var got []string
	for _, base := range []string{"a", "a", "b", "a"} {
		name, err := r.Reserve(dir, base)
		require.NoError(t, err)
		got = append(got, name)
	}

	assert.Equal(t, []string{"a.json", "a_2.json", "b.json", "a_3.json"}, got)
}

func TestNameRegistry_SeededFromDisk(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.json", "a_2.json", "a_4.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("{}"), 0600))
	}

	r := NewNameRegistry(true)
	var got []string
	for i := 0; i < 3; i++ {
		name, err := r.Reserve(dir, "a")
		require.NoError(t, err)
		got = append(got, name)
	}

	assert.Equal(t, []string{"a_3.json", "a_5.json", "a_6.json"}, got)
}

func TestNameRegistry_IgnoresDiskWhenNotSeeded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte("{}"), 0600))

	name, err := NewNameRegistry(false).Reserve(dir, "a")

	require.NoError(t, err)
	assert.Equal(t, "a.json", name)
}

func TestNameRegistry_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not-yet")

	name, err := NewNameRegistry(true).Reserve(dir, "a")

	require.NoError(t, err)
	assert.Equal(t, "a.json", name)
}

func TestNameRegistry_ConcurrentReservationsAreUnique(t *testing.T) {
	r := NewNameRegistry(false)
	dir := t.TempDir()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		names = make(map[string]int)
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name, err := r.Reserve(dir, "x")
			assert.NoError(t, err)
			mu.Lock()
			names[name]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, names, 50)
	assert.Contains(t, names, "x.json")
	assert.Contains(t, names, "x_50.json")
}
