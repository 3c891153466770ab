package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cinecraze/catman/internal/autoembed"
	"github.com/cinecraze/catman/internal/bulk"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate embed server links for items without servers",
	Long: `Generate embed server links for items without servers.

Builds one link per enabled provider for every catalog item that has
no servers yet. Items already carrying servers, untitled items and
repeated identities are skipped.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	runner := bulk.NewRunner(a.store, a.log, bulk.WithWorkers(a.cfg.Bulk.Workers))
	report, err := runner.GenerateServers(cmd.Context(), autoembed.NewGenerator(a.log))
	if err != nil {
		return err
	}
	fmt.Printf("Generated servers for %d items, skipped %d\n", report.Generated, report.Skipped)
	return nil
}
