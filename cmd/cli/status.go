package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sevigo/botgate/internal/health"
)

var (
	statusAddr string
	outputJSON bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows the readiness of a running botgate instance",
	RunE: func(_ *cobra.Command, _ []string) error {
		client := &http.Client{Timeout: 5 * time.Second}
		resp, err := client.Get(statusAddr + "/health")
		if err != nil {
			return fmt.Errorf("failed to reach gateway at %s: %w", statusAddr, err)
		}
		defer resp.Body.Close()

		var report health.Report
		if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
			return fmt.Errorf("failed to decode readiness report: %w", err)
		}

		if outputJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(report)
		}

		if report.Status == "healthy" {
			color.Green("gateway is %s", report.Status)
		} else {
			color.Red("gateway is %s", report.Status)
		}

		names := make([]string, 0, len(report.Checks))
		for name := range report.Checks {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CHECK\tSTATE")
		for _, name := range names {
			state := color.GreenString("ok")
			if !report.Checks[name] {
				state = color.RedString("FAIL")
			}
			fmt.Fprintf(w, "%s\t%s\n", name, state)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("as of %s\n", report.Timestamp.Format(time.RFC822))
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	statusCmd.Flags().StringVar(&statusAddr, "addr", "http://localhost:8080", "Base URL of the running gateway")
	statusCmd.Flags().BoolVar(&outputJSON, "json", false, "Output the raw readiness report as JSON")
	rootCmd.AddCommand(statusCmd)
}
