package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"cargo-tracker/internal/features/shipments/handler"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTable(cmd *cobra.Command, header table.Row, rows []table.Row) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.AppendHeader(header)
	tw.AppendRows(rows)
	tw.Render()
}

// progressBar renders the stage glyphs with pending stages dimmed to dots.
func progressBar(s handler.TrackingResponse) string {
	var b strings.Builder
	for i, stage := range s.Stages {
		if i > 0 {
			b.WriteString(" ")
		}
		if stage.Done {
			b.WriteString(stage.Glyph)
		} else {
			b.WriteString("·")
		}
	}
	return b.String()
}

func shipmentRows(shipments []handler.TrackingResponse) []table.Row {
	rows := make([]table.Row, 0, len(shipments))
	for _, s := range shipments {
		rows = append(rows, table.Row{
			s.ID,
			s.TrackingNumber,
			s.CustomerName,
			s.TransportMode,
			s.Status,
			progressBar(s),
			s.LastUpdated.Local().Format("2006-01-02 15:04"),
		})
	}
	return rows
}

var shipmentHeader = table.Row{"ID", "Tracking", "Customer", "Transport", "Status", "Progress", "Last Updated"}

func printShipment(cmd *cobra.Command, ctx *commandContext, s *handler.TrackingResponse) error {
	if ctx.json {
		return writeJSON(cmd, s)
	}
	renderTable(cmd, shipmentHeader, shipmentRows([]handler.TrackingResponse{*s}))
	return nil
}

func printStages(cmd *cobra.Command, s *handler.TrackingResponse) {
	out := cmd.OutOrStdout()
	for i, stage := range s.Stages {
		marker := "  "
		switch {
		case i == s.CurrentStageIndex:
			marker = "▶ "
		case stage.Done:
			marker = "✔ "
		}
		fmt.Fprintf(out, "%s%s %s\n", marker, stage.Glyph, stage.Name)
	}
}
