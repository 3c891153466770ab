package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all catalog items",
	Long: `Remove all catalog items.

Provider configurations and settings survive unless --all is given,
which resets everything to a fresh install.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().Bool("all", false, "Also reset providers and settings")
}

func runClear(cmd *cobra.Command, _ []string) error {
	all, _ := cmd.Flags().GetBool("all")

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	removed := a.store.Len()
	if all {
		a.store.ClearAll()
		fmt.Printf("Removed %d items and reset all settings\n", removed)
	} else {
		a.store.ClearContent()
		fmt.Printf("Removed %d items\n", removed)
	}
	return nil
}
