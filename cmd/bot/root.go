package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/PoluyanbIch/ZooTotemBot/data"
	"github.com/PoluyanbIch/ZooTotemBot/internal/config"
	"github.com/PoluyanbIch/ZooTotemBot/internal/service"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "totembot",
		Short:         "Totem animal quiz bot",
		Long:          "totembot runs the Moscow Zoo totem animal quiz on Telegram.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd)
		},
	}

	root.PersistentFlags().String("catalog", "", "Path to the question catalog (overrides TOTEMBOT_CATALOG)")
	root.PersistentFlags().String("categories", "", "Path to the category table YAML (overrides TOTEMBOT_CATEGORIES)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newMatchCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// loadConfig reads the environment (and .env) and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		cfg.CatalogPath = p
	}
	if p, _ := cmd.Flags().GetString("categories"); p != "" {
		cfg.CategoriesPath = p
	}
	return cfg, nil
}

// loadEngine loads the catalog and table named in cfg, falling back to the
// embedded copies for empty paths.
func loadEngine(cfg config.Config, logger *slog.Logger) (*service.Engine, error) {
	var (
		questions []service.QuestionRecord
		err       error
	)
	if cfg.CatalogPath != "" {
		questions, err = service.LoadCatalog(cfg.CatalogPath)
	} else {
		questions, err = service.ParseCatalog(bytes.NewReader(data.Questions))
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	table, err := loadTable(cfg)
	if err != nil {
		return nil, err
	}
	return service.NewEngine(questions, table, logger)
}

func loadTable(cfg config.Config) (*service.CategoryTable, error) {
	var (
		table *service.CategoryTable
		err   error
	)
	if cfg.CategoriesPath != "" {
		table, err = service.LoadCategoryTable(cfg.CategoriesPath)
	} else {
		table, err = service.ParseCategoryTable(data.Animals)
	}
	if err != nil {
		return nil, fmt.Errorf("load category table: %w", err)
	}
	return table, nil
}

func source(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
