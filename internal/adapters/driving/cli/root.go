// Package cli provides the patristic command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/patristic/internal/adapters/driven/ai"
	"github.com/custodia-labs/patristic/internal/adapters/driven/config/file"
	"github.com/custodia-labs/patristic/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/patristic/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/patristic/internal/adapters/driving/cli/styles"
	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/ports/driven"
	"github.com/custodia-labs/patristic/internal/core/ports/driving"
	"github.com/custodia-labs/patristic/internal/core/services"
	"github.com/custodia-labs/patristic/internal/logger"
	"github.com/custodia-labs/patristic/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags.
var version = "dev"

// settingsService is opened lazily from --config-dir. Tests inject their own.
var settingsService driving.SettingsService

// Adapter constructors, replaced in tests.
var (
	openRecordSource = func(path string) (driven.RecordSource, error) {
		return sqlite.Open(path)
	}
	newEmbeddingService = ai.CreateAndValidateEmbeddingService
)

var (
	dbFile    string
	modelName string
	outputDir string
	configDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "patristic",
	Short: "Embed patristic Bible commentary for semantic search",
	Long: `Reads Church Father commentary on the New Testament from a SQLite database,
splits it into overlapping segments, embeds every segment and writes one JSON
file per segment under the output directory, grouped by book.

Embedding provider, model and write policy come from 'patristic settings'.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	RunE:              runPipeline,
}

func init() {
	rootCmd.Flags().StringVarP(&dbFile, "db-file", "d", domain.DefaultDBPath, "SQLite commentary database")
	rootCmd.Flags().StringVarP(&modelName, "model-name", "m", "", "embedding model (default from settings)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", domain.DefaultOutputDir, "directory for segment files")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/"+file.DefaultDirName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug diagnostics")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())
	return nil
}

func loadSettingsService() (driving.SettingsService, error) {
	if settingsService != nil {
		return settingsService, nil
	}
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	settingsService = services.NewSettingsService(store)
	return settingsService, nil
}

// pipelineConfig merges flags and saved settings into a run configuration.
func pipelineConfig(settings *domain.AppSettings) (domain.PipelineConfig, domain.EmbeddingSettings) {
	embedding := settings.Embedding
	if modelName != "" && modelName != embedding.Model {
		embedding.Model = modelName
		embedding.Dimensions = domain.EmbeddingDimensions()[modelName]
	}

	cfg := domain.DefaultPipelineConfig()
	cfg.DBPath = dbFile
	cfg.OutputDir = outputDir
	cfg.Model = embedding.Model
	cfg.WritePolicy = settings.Output.WritePolicy
	return cfg, embedding
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	svc, err := loadSettingsService()
	if err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	cfg, embeddingSettings := pipelineConfig(settings)
	ctx := cmd.Context()

	source, err := openRecordSource(cfg.DBPath)
	if err != nil {
		return err
	}
	defer source.Close()

	embedding, err := newEmbeddingService(ctx, &embeddingSettings)
	if err != nil {
		return err
	}
	defer embedding.Close()

	writer, err := jsonfile.NewWriter(cfg.OutputDir, cfg.WritePolicy)
	if err != nil {
		return err
	}

	pipeline := services.NewPipelineService(cfg, services.PipelineDeps{
		Source:    source,
		Chunker:   chunker.New(chunker.WithChunkSize(cfg.ChunkSize), chunker.WithOverlap(cfg.ChunkOverlap)),
		Embedding: embedding,
		Writer:    writer,
		Progress:  newProgressReporter(cmd.ErrOrStderr()),
	})

	report, err := pipeline.Run(ctx)
	if report != nil {
		printRunSummary(cmd, cfg, report)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("interrupted")
		}
		return err
	}
	return nil
}

var outputStyles = styles.DefaultStyles()

func printField(cmd *cobra.Command, label, format string, args ...any) {
	cmd.Printf("  %s %s\n", outputStyles.Label.Render(fmt.Sprintf("%-15s", label+":")), fmt.Sprintf(format, args...))
}

func printRunSummary(cmd *cobra.Command, cfg domain.PipelineConfig, report *domain.RunReport) {
	cmd.Println()
	cmd.Println(outputStyles.Title.Render("Run Summary"))
	printField(cmd, "Records read", "%d", report.RecordsRead)
	printField(cmd, "Documents", "%d (%d too short, %d untitled)", report.Documents,
		report.Filtered(domain.FilterTextTooShort), report.Filtered(domain.FilterMissingSourceTitle))
	printField(cmd, "Segments", "%d", report.Segments)
	printField(cmd, "Embedded", "%d (dimensions %d)", len(report.Embedding.Items), report.Embedding.Dimensions)
	if n := len(report.Embedding.Failures); n > 0 {
		printField(cmd, "Failed batches", "%s",
			outputStyles.Warning.Render(fmt.Sprintf("%d (%d segments dropped)", n, report.Embedding.Dropped())))
	}
	printField(cmd, "Files", "%d created, %d overwritten, %d skipped",
		report.WriteCount(domain.WriteCreated),
		report.WriteCount(domain.WriteOverwritten),
		report.WriteCount(domain.WriteSkipped))
	printField(cmd, "Output", "%s", cfg.OutputDir)
	printField(cmd, "Elapsed", "%.2fs", report.Elapsed.Seconds())
}
