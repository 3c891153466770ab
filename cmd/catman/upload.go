package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cinecraze/catman/internal/ghsync"
	"github.com/cinecraze/catman/internal/playlist"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Publish the playlist to the configured GitHub repository",
	Long: `Publish the playlist to the configured GitHub repository.

Exports the catalog and commits it to the repo and path from the
saved settings (or the config file). With --sqlite the SQLite form
is uploaded next to the JSON, with a .db extension.

Examples:
  catman upload
  catman upload --sqlite`,
	Args: cobra.NoArgs,
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().Bool("sqlite", false, "Also upload the SQLite playlist database")
}

func runUpload(cmd *cobra.Command, _ []string) error {
	withSQLite, _ := cmd.Flags().GetBool("sqlite")

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	gh, err := a.githubTarget()
	if err != nil {
		return err
	}

	items := a.store.AllContent()
	data, err := playlist.Export(items)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	client := ghsync.NewClient(gh.Token)
	ctx := cmd.Context()

	if err := client.RepoAccessible(ctx, gh.Repo); err != nil {
		return fmt.Errorf("github: %w", err)
	}
	if err := client.Upload(ctx, gh.Repo, gh.FilePath, data); err != nil {
		return fmt.Errorf("upload %s: %w", gh.FilePath, err)
	}
	fmt.Printf("Uploaded %s to %s (%d items)\n", gh.FilePath, gh.Repo, len(items))

	if withSQLite {
		blob, err := playlist.NewSQLiteExporter(a.log).Bytes(items)
		if err != nil {
			return fmt.Errorf("sqlite export failed: %w", err)
		}
		dbPath := strings.TrimSuffix(gh.FilePath, ".json") + ".db"
		if err := client.Upload(ctx, gh.Repo, dbPath, blob); err != nil {
			return fmt.Errorf("upload %s: %w", dbPath, err)
		}
		fmt.Printf("Uploaded %s to %s\n", dbPath, gh.Repo)
	}
	return nil
}
