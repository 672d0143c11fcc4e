package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/montage/internal/cli"
	"github.com/example/montage/internal/version"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "montage",
		Short:   "Back office for flooring sales and installation",
		Version: version.String(),
		Long: `montage is a CLI tool for running a flooring company's back office:
installation processes with stage-gated checklists, order pipelines,
a dropshipping ledger, and a unified scheduling calendar.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.Bootstrap(configPath)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a local config file")

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.MontageCmd())
	rootCmd.AddCommand(cli.ChecklistCmd())
	rootCmd.AddCommand(cli.OrderCmd())
	rootCmd.AddCommand(cli.CalendarCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
