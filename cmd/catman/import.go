package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cinecraze/catman/internal/playlist"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a playlist JSON file into the catalog",
	Long: `Import a playlist JSON file into the catalog.

Series entries are flattened into one catalog item per episode.
Malformed entries are skipped; run with log.level = "debug" to see
which fields were ignored.

Examples:
  catman import playlist.json
  catman import --replace playlist.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().Bool("replace", false, "Clear the catalog before importing")
	importCmd.Flags().Bool("upsert", false, "Update matching items instead of appending")
}

func runImport(cmd *cobra.Command, args []string) error {
	replace, _ := cmd.Flags().GetBool("replace")
	upsert, _ := cmd.Flags().GetBool("upsert")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read playlist: %w", err)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	imp := playlist.NewImporter(a.log)
	items, err := imp.Import(data)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if replace {
		a.store.ClearContent()
	}
	if upsert {
		for _, it := range items {
			a.store.UpdateContent(it)
		}
	} else {
		a.store.AddContentBatch(items)
	}

	fmt.Printf("Imported %d items (%d in catalog)\n", len(items), a.store.Len())
	if warnings := imp.Warnings(); len(warnings) > 0 {
		fmt.Printf("%d entries or fields were skipped or unrecognized\n", len(warnings))
	}
	return nil
}
