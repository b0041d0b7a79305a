// Package cli wires configuration, storage and the HTTP server behind the
// produck command.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		Error("%v", err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "produck",
		Short: "Produck - product reviews backend",
		Long: `Produck serves the REST API behind the Produck mobile and web apps:
products with their owner's review, categories, user search and photo uploads.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Path to a .env file (defaults to ./.env when present)")

	root.AddCommand(newServeCommand(opts), newIndexesCommand(opts), newSeedUserCommand(opts))
	return root
}

type rootOptions struct {
	envFile string
}

func requireArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("usage: %s %s", cmd.CommandPath(), usage)
		}
		return nil
	}
}
