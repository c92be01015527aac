package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/PoluyanbIch/ZooTotemBot/internal/service"
)

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match SIZE HABITAT SPEED RARITY DIET",
		Short: "Resolve a result vector to its totem animal",
		Args:  cobra.ExactArgs(service.AxisCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target service.Vector
			for i, arg := range args {
				x, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("%s: invalid value %q", service.Axis(i), arg)
				}
				target[i] = x
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			table, err := loadTable(cfg)
			if err != nil {
				return err
			}
			match, err := service.BestMatch(target, table)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s\t%s\tdistance=%.1f\n", match.Entry.ID, match.Entry.DisplayName(), match.Distance)
			return nil
		},
	}
}
