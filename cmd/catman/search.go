package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cinecraze/catman/internal/tmdb"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search TMDB for movies and series",
	Long: `Search TMDB for movies and series.

Examples:
  catman search "The Matrix"
  catman search --type tv wednesday`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().String("type", "", "Limit results to one kind (movie or tv)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	mediaType, _ := cmd.Flags().GetString("type")

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	key, err := a.tmdbKey()
	if err != nil {
		return err
	}

	results, err := tmdb.NewClient(key).Search(cmd.Context(), query, mediaType)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No results found")
		return nil
	}

	fmt.Printf("Found %d results for %q:\n\n", len(results), query)
	fmt.Printf("  %10s │ %-6s │ %-40s │ %4s\n", "TMDB ID", "TYPE", "TITLE", "YEAR")
	for _, r := range results {
		title := r.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		year := ""
		if y := r.Year(); y > 0 {
			year = fmt.Sprintf("%d", y)
		}
		fmt.Printf("  %10d │ %-6s │ %-40s │ %4s\n", r.ID, r.MediaType, title, year)
	}
	return nil
}
