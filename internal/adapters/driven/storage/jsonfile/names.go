package jsonfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// invalidNameChars are replaced by SanitizeName.
const invalidNameChars = `<>:"/\|?*`

// SanitizeName replaces characters that are invalid in file names with
// underscores and lower-cases the result.
func SanitizeName(name string) string {
	return strings.ToLower(replaceInvalid(name))
}

func replaceInvalid(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidNameChars, r) {
			return '_'
		}
		return r
	}, name)
}

// BaseName returns the file name stem for a segment of author in book.
// The author keeps its case; path separators in it are replaced.
func BaseName(book, author string) string {
	return strings.ReplaceAll(SanitizeName(book)+"_"+replaceInvalid(author), " ", "_")
}

// FileName returns the name for the index-th file with the given stem.
// The first file has no suffix; later ones are numbered from 2.
func FileName(base string, index int) string {
	if index <= 1 {
		return base + ".json"
	}
	return base + "_" + strconv.Itoa(index) + ".json"
}

// numberedIndex returns N when name is FileName(base, N) for some N >= 2.
func numberedIndex(name, base string) (int, bool) {
	rest, ok := strings.CutPrefix(name, base+"_")
	if !ok {
		return 0, false
	}
	digits, ok := strings.CutSuffix(rest, ".json")
	if !ok || digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 2 {
		return 0, false
	}
	return n, true
}

// NameRegistry hands out unique file names per directory.
//
// When seeded from disk, the names already present in a directory are read
// once, on first use, and skipped. Otherwise numbering starts at 1 for every
// base name regardless of what is on disk.
type NameRegistry struct {
	mu       sync.Mutex
	fromDisk bool
	taken    map[string]map[string]struct{}
	next     map[string]int
}

// NewNameRegistry creates a registry. seedFromDisk selects whether existing
// files count as taken.
func NewNameRegistry(seedFromDisk bool) *NameRegistry {
	return &NameRegistry{
		fromDisk: seedFromDisk,
		taken:    make(map[string]map[string]struct{}),
		next:     make(map[string]int),
	}
}

// Reserve returns the first free name for base in dir and marks it taken.
func (r *NameRegistry) Reserve(dir, base string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	taken, err := r.dirNames(dir)
	if err != nil {
		return "", err
	}

	key := filepath.Join(dir, base)
	index := max(r.next[key], 1)
	name := FileName(base, index)
	for {
		if _, exists := taken[name]; !exists {
			break
		}
		index++
		name = FileName(base, index)
	}

	taken[name] = struct{}{}
	r.next[key] = index + 1
	return name, nil
}

// dirNames returns the taken set for dir (caller must hold lock).
func (r *NameRegistry) dirNames(dir string) (map[string]struct{}, error) {
	if names, ok := r.taken[dir]; ok {
		return names, nil
	}

	names := make(map[string]struct{})
	if r.fromDisk {
		entries, err := os.ReadDir(dir)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("listing %s: %w", dir, err)
		}
		for _, e := range entries {
			names[e.Name()] = struct{}{}
		}
	}

	r.taken[dir] = names
	return names, nil
}
