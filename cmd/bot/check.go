package main

import (
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the question catalog and category table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			engine, err := loadEngine(cfg, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printf(out, "catalog:    %s (%d questions)\n", source(cfg.CatalogPath), engine.Questions())
			printf(out, "categories: %s (%d animals)\n", source(cfg.CategoriesPath), engine.Table().Len())
			if err := engine.CheckScoring(); err != nil {
				return err
			}
			printf(out, "ok\n")
			return nil
		},
	}
}
