package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "Manage embed server providers",
}

var serversListCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers with status",
	Args:  cobra.NoArgs,
	RunE:  runServersList,
}

var serversEnableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable a provider",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setServerEnabled(args[0], true) },
}

var serversDisableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable a provider",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setServerEnabled(args[0], false) },
}

func init() {
	rootCmd.AddCommand(serversCmd)
	serversCmd.AddCommand(serversListCmd)
	serversCmd.AddCommand(serversEnableCmd)
	serversCmd.AddCommand(serversDisableCmd)
}

func runServersList(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	configs := a.store.ServerConfigs()
	fmt.Printf("  %-16s │ %-8s │ %-8s │ %-7s │ %s\n", "NAME", "ENABLED", "ONLINE", "QUALITY", "CHECKED")
	for _, cfg := range configs {
		enabled := "no"
		if cfg.Enabled {
			enabled = "yes"
		}
		online := "-"
		checked := "never"
		if cfg.LastChecked != 0 {
			if cfg.IsOnline {
				online = "yes"
			} else {
				online = "no"
			}
			checked = time.UnixMilli(cfg.LastChecked).Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-16s │ %-8s │ %-8s │ %-7s │ %s\n", cfg.Name, enabled, online, cfg.Quality, checked)
	}
	return nil
}

func setServerEnabled(name string, enabled bool) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	for _, cfg := range a.store.ServerConfigs() {
		if cfg.Name == name {
			cfg.Enabled = enabled
			a.store.UpdateServerConfig(cfg)
			state := "disabled"
			if enabled {
				state = "enabled"
			}
			fmt.Printf("%s %s\n", cfg.Name, state)
			return nil
		}
	}
	return fmt.Errorf("unknown provider %q", name)
}
