// Command seed loads portfolio content from a YAML file into the configured
// document store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"portfolio-backend/config"
	"portfolio-backend/internal/repository/backend"
	"portfolio-backend/internal/seed"
	"portfolio-backend/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	dryRun bool
	root   string
)

var rootCmd = &cobra.Command{
	Use:   "seed <content.yaml>",
	Short: "Seed portfolio content into the document store",
	Long: `Reads a YAML content file and writes profile, home, skills, about,
experience, projects and blog posts into the store selected by STORE_BACKEND.
Documents are created or replaced; nothing is deleted.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSeed,
}

var validateCmd = &cobra.Command{
	Use:   "validate <content.yaml>",
	Short: "Check a content file without writing anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := loadContent(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d documents\n", args[0], len(content.Plan("portfolio")))
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the documents that would be written")
	rootCmd.Flags().StringVar(&root, "root", "", "root collection (default CONTENT_ROOT)")
	rootCmd.AddCommand(validateCmd)
}

func loadContent(path string) (*seed.Content, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := seed.Load(f)
	if err != nil {
		return nil, err
	}
	if err := content.Validate(nil); err != nil {
		return nil, fmt.Errorf("invalid content in %s:\n%w", path, err)
	}
	return content, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger.Init(cfg.LogLevel)
	if root == "" {
		root = cfg.ContentRoot
	}

	content, err := loadContent(args[0])
	if err != nil {
		return err
	}
	writes := content.Plan(root)

	if dryRun {
		for _, w := range writes {
			fmt.Fprintln(cmd.OutOrStdout(), w.Path)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d documents (dry run)\n", len(writes))
		return nil
	}

	if cfg.StoreBackend == config.BackendMemory {
		return fmt.Errorf("STORE_BACKEND=memory does not persist; choose firestore, postgres or sqlite")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := backend.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	n, err := seed.Apply(ctx, b.Store, writes)
	logger.Log.Info("Seed finished", "store", b.Name, "root", root, "written", n, "total", len(writes))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d documents to %s\n", n, b.Name)
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
