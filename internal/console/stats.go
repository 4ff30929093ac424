package console

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dkeye/Handshake/internal/telemetry"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newStatsCmd(clientFor func() *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show device statistics reported by sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := clientFor().Telemetry(cmd.Context())
			if err != nil {
				return err
			}
			return writeStats(cmd.OutOrStdout(), snap, "table")
		},
	}

	var format, out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export device statistics as csv, json or markdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := clientFor().Telemetry(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			return writeStats(w, snap, format)
		},
	}
	export.Flags().StringVar(&format, "format", "csv", "csv, json or markdown")
	export.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	cmd.AddCommand(export)
	return cmd
}

func writeStats(w io.Writer, snap map[string][]telemetry.Record, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Session", "Time", "Battery %", "Thermal"})
	for _, sid := range slices.Sorted(maps.Keys(snap)) {
		for _, rec := range snap[sid] {
			t.AppendRow(table.Row{sid, formatTimestamp(rec.Timestamp), rec.Battery, formatThermal(rec.Thermal)})
		}
	}

	switch format {
	case "table":
		t.SetStyle(table.StyleLight)
		t.Render()
	case "csv":
		t.RenderCSV()
	case "markdown":
		t.RenderMarkdown()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

func formatTimestamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

func formatThermal(zones []telemetry.ThermalReading) string {
	parts := make([]string, 0, len(zones))
	for _, z := range zones {
		parts = append(parts, fmt.Sprintf("%s=%.1f", z.Name, z.Temperature))
	}
	return strings.Join(parts, " ")
}
