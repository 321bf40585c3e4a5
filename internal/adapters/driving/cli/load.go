package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/patristic/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/patristic/internal/core/domain"
	"github.com/custodia-labs/patristic/internal/core/services"
)

var loadOutputDir string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load embeddings from an output directory",
	Long: `Read every segment file under the output directory without calling the
embedding service, then report the number of segments, the count per book,
the embedding dimension and how many vectors are not unit length.`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVarP(&loadOutputDir, "output-dir", "o", domain.DefaultOutputDir, "directory written by a previous run")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, _ []string) error {
	corpus, err := services.NewCorpusService(jsonfile.NewReader(loadOutputDir)).Load(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Println(outputStyles.Title.Render("Corpus"))
	printField(cmd, "Directory", "%s", loadOutputDir)
	printField(cmd, "Segments", "%d", len(corpus.Segments))
	if corpus.Dimensions > 0 {
		printField(cmd, "Dimensions", "%d", corpus.Dimensions)
	} else {
		printField(cmd, "Dimensions", "%s", "mixed or none")
	}
	if corpus.NonUnit > 0 {
		printField(cmd, "Non-unit", "%s", outputStyles.Warning.Render(fmt.Sprintf("%d", corpus.NonUnit)))
	} else {
		printField(cmd, "Non-unit", "%d", 0)
	}

	if len(corpus.Books) == 0 {
		return nil
	}
	books := make([]string, 0, len(corpus.Books))
	for book := range corpus.Books {
		books = append(books, book)
	}
	sort.Strings(books)

	cmd.Println()
	cmd.Println(outputStyles.Title.Render("Books"))
	for _, book := range books {
		cmd.Printf("  %-16s %d\n", book, corpus.Books[book])
	}
	return nil
}
