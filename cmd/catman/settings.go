package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Persist keys and upload targets in the catalog database",
}

var settingsTMDBKeyCmd = &cobra.Command{
	Use:   "tmdb-key <key>",
	Short: "Save the TMDB API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		a.store.SaveTMDBAPIKey(args[0])
		fmt.Println("TMDB API key saved")
		return nil
	},
}

var settingsGitHubCmd = &cobra.Command{
	Use:   "github",
	Short: "Save the GitHub upload target",
	Long: `Save the GitHub upload target.

Examples:
  catman settings github --token ghp_xxx --repo user/playlists
  catman settings github --repo user/playlists --path live/playlist.json`,
	Args: cobra.NoArgs,
	RunE: runSettingsGitHub,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsTMDBKeyCmd)
	settingsCmd.AddCommand(settingsGitHubCmd)

	settingsGitHubCmd.Flags().String("token", "", "Personal access token")
	settingsGitHubCmd.Flags().String("repo", "", "Repository as owner/repo")
	settingsGitHubCmd.Flags().String("path", "", "File path inside the repository")
}

func runSettingsGitHub(cmd *cobra.Command, _ []string) error {
	token, _ := cmd.Flags().GetString("token")
	repo, _ := cmd.Flags().GetString("repo")
	path, _ := cmd.Flags().GetString("path")

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// Unset flags keep their stored value.
	gh := a.store.GitHubConfig()
	if token != "" {
		gh.Token = token
	}
	if repo != "" {
		gh.Repo = repo
	}
	if path != "" {
		gh.FilePath = path
	}
	a.store.SaveGitHubConfig(gh)
	fmt.Printf("GitHub target saved: %s %s\n", gh.Repo, gh.FilePath)
	return nil
}
