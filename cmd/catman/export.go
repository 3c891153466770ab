package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cinecraze/catman/internal/playlist"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as a playlist document",
	Long: `Export the catalog as a playlist document.

Writes the nested JSON playlist to stdout, or to a file with -o.
With --sqlite the playlist is written as a SQLite database instead,
which requires -o.

Examples:
  catman export > playlist.json
  catman export -o playlist.json
  catman export --sqlite -o playlist.db`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	exportCmd.Flags().Bool("sqlite", false, "Write a SQLite playlist database")
}

func runExport(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")
	asSQLite, _ := cmd.Flags().GetBool("sqlite")

	if asSQLite && output == "" {
		return errors.New("--sqlite requires -o <file>")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	items := a.store.AllContent()

	if asSQLite {
		if err := playlist.NewSQLiteExporter(a.log).ExportFile(items, output); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Printf("Wrote %d items to %s\n", len(items), output)
		return nil
	}

	data, err := playlist.Export(items)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if output == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Printf("Wrote %d items to %s\n", len(items), output)
	return nil
}
