package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amilyk/TinyRAG/config"
	"github.com/amilyk/TinyRAG/internal/adapter/store"
	"github.com/amilyk/TinyRAG/internal/domain"
	"github.com/amilyk/TinyRAG/internal/usecase"
)

var chatQuestion string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions grounded on the ingested documents",
	Long: `Answer a question using the most similar chunks as context for the
configured chat model. With -q a single answer is printed; without it an
interactive session starts that keeps conversation history.

Examples:
  tinyrag chat -q "what does the contract say about termination?"
  tinyrag chat`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatQuestion, "question", "q", "", "question to answer (omit for interactive mode)")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	st := store.NewMemoryStore()
	if err := st.Load(config.StoreDir(GetRootDir(), cfg)); err != nil {
		return fmt.Errorf("no usable store found, run 'tinyrag ingest' first: %w", err)
	}

	embedder, closeCache, err := newEmbedder(cfg, GetRootDir())
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer closeCache()

	chatModel, err := newChatModel(cfg)
	if err != nil {
		return fmt.Errorf("failed to create chat model: %w", err)
	}

	chatUC := usecase.NewChatUseCase(st, embedder, chatModel, cfg.Chat.TopK)

	if chatQuestion != "" {
		answer, _, err := chatUC.Ask(chatQuestion, nil)
		if err != nil {
			return fmt.Errorf("chat failed: %w", err)
		}
		fmt.Println(answer)
		return nil
	}

	return runInteractive(chatUC, chatModel.ModelName())
}

func runInteractive(chatUC *usecase.ChatUseCase, model string) error {
	fmt.Printf("Chatting with %s over the ingested documents. Empty line or Ctrl-D exits.\n", model)

	var history []domain.Message
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			break
		}

		answer, newHistory, err := chatUC.Ask(question, history)
		if err != nil {
			return fmt.Errorf("chat failed: %w", err)
		}
		history = newHistory

		fmt.Println(answer)
		fmt.Println()
	}

	return scanner.Err()
}
