package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/cinecraze/catman/internal/autoembed"
	"github.com/cinecraze/catman/internal/bulk"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check enabled providers for availability",
	Long: `Check enabled providers for availability.

Requests a test page from every enabled provider and records the
verdict on the provider configuration. Results show up in
'catman servers list'.`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	prober := autoembed.NewProber(a.log,
		autoembed.WithProbeClient(&http.Client{Timeout: a.cfg.Probe.Timeout}),
		autoembed.WithProbeTTL(a.cfg.Probe.CacheTTL),
	)

	runner := bulk.NewRunner(a.store, a.log, bulk.WithWorkers(a.cfg.Bulk.Workers))
	report, err := runner.ProbeAll(cmd.Context(), prober)
	if err != nil {
		return err
	}
	fmt.Printf("%d providers online, %d offline\n", report.Online, report.Offline)
	return nil
}
