package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/custodia-labs/patristic/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/services"
	"github.com/custodia-labs/patristic/internal/logger"
)

// useSettings installs a settings service over an in-memory store.
func useSettings(t *testing.T, values map[string]any) *memory.ConfigStore {
	t.Helper()
	store := memory.NewConfigStore(values)
	settingsService = services.NewSettingsService(store)
	t.Cleanup(func() { settingsService = nil })
	return store
}

func stubValidate(t *testing.T, fn func(context.Context, *domain.EmbeddingSettings) error) {
	t.Helper()
	prev := validateEmbedding
	validateEmbedding = fn
	t.Cleanup(func() { validateEmbedding = prev })
}

// execute runs rootCmd with args and stdin, returning combined output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	prevLog := logger.Output()
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		logger.SetOutput(prevLog)
		logger.SetVerbose(false)
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}
