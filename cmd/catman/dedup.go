package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dedupCmd = &cobra.Command{
	Use:   "dedup",
	Short: "Remove duplicate catalog items",
	Long: `Remove duplicate catalog items.

Items match when they agree on TMDB id or on title, type and episode
position. The first occurrence wins. With --near, nothing is removed;
instead pairs of suspiciously similar titles are listed for review.

Examples:
  catman dedup
  catman dedup --near
  catman dedup --near --threshold 0.95`,
	Args: cobra.NoArgs,
	RunE: runDedup,
}

func init() {
	rootCmd.AddCommand(dedupCmd)
	dedupCmd.Flags().Bool("near", false, "List near-duplicate pairs instead of removing")
	dedupCmd.Flags().Float32("threshold", 0.9, "Similarity threshold for --near (0..1)")
}

func runDedup(cmd *cobra.Command, _ []string) error {
	near, _ := cmd.Flags().GetBool("near")
	threshold, _ := cmd.Flags().GetFloat32("threshold")

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if near {
		pairs := a.store.NearDuplicates(threshold)
		if len(pairs) == 0 {
			fmt.Println("No near duplicates found")
			return nil
		}
		fmt.Printf("Found %d near-duplicate pairs:\n\n", len(pairs))
		for _, p := range pairs {
			fmt.Printf("  %.2f  %q ~ %q\n", p.Similarity, p.A.DisplayTitle(), p.B.DisplayTitle())
		}
		return nil
	}

	removed := a.store.RemoveDuplicates()
	fmt.Printf("Removed %d duplicates (%d items remain)\n", removed, a.store.Len())
	return nil
}
