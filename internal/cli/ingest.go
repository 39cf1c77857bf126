package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/amilyk/TinyRAG/config"
	"github.com/amilyk/TinyRAG/internal/adapter/chunker"
	"github.com/amilyk/TinyRAG/internal/adapter/fs"
	"github.com/amilyk/TinyRAG/internal/adapter/reader"
	"github.com/amilyk/TinyRAG/internal/adapter/store"
	"github.com/amilyk/TinyRAG/internal/usecase"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Chunk, embed and persist documents",
	Long: `Discover text, markdown and PDF files under the given directory, split
them into overlapping chunks, embed every chunk, and persist the resulting
vector store under the storage directory.

Examples:
  tinyrag ingest .               # Ingest current directory
  tinyrag ingest /path/to/docs   # Ingest a specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()

	tok, err := newTokenizer(cfg)
	if err != nil {
		return err
	}

	embedder, closeCache, err := newEmbedder(cfg, GetRootDir())
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer closeCache()

	ingestUC := usecase.NewIngestUseCase(
		fs.NewWalker(cfg.Ingest.Includes, cfg.Ingest.Excludes),
		reader.New(),
		chunker.NewTokenChunker(cfg.Ingest.ChunkTokens, cfg.Ingest.ChunkOverlap, tok),
		store.NewMemoryStore(),
		embedder,
	)

	fmt.Printf("Scanning %s...\n", path)

	var bar *progressbar.ProgressBar
	onProgress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	storeDir := config.StoreDir(GetRootDir(), cfg)
	result, err := ingestUC.Ingest(path, storeDir, onProgress)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("\nIngestion complete:\n")
	fmt.Printf("  Files read:      %d\n", result.FilesRead)
	fmt.Printf("  Chunks created:  %d\n", result.ChunksCreated)
	fmt.Printf("  Vectors stored:  %d (model: %s)\n", result.VectorsComputed, embedder.ModelName())
	fmt.Printf("\nStore written to: %s\n", storeDir)

	return nil
}
