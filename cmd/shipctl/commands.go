package main

import (
	"fmt"
	"strings"

	"cargo-tracker/internal/features/shipments/handler"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newStagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "List the stage catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stages, err := ctx.client().Stages(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.json {
				return writeJSON(cmd, stages)
			}

			rows := make([]table.Row, 0, len(stages))
			for _, s := range stages {
				rows = append(rows, table.Row{s.Index, s.Glyph, s.Name})
			}
			renderTable(cmd, table.Row{"#", "", "Stage"}, rows)
			return nil
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all shipments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shipments, err := ctx.client().List(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.json {
				return writeJSON(cmd, shipments)
			}
			renderTable(cmd, shipmentHeader, shipmentRows(shipments))
			return nil
		},
	}
}

func newTrackCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "track <tracking-number>",
		Short: "Show a shipment's progress as the customer sees it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.client().Track(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if ctx.json {
				return writeJSON(cmd, s)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%s)\n", s.TrackingNumber, s.CustomerName, s.TransportMode)
			printStages(cmd, s)
			return nil
		},
	}
}

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var req handler.CreateShipmentRequest
	cmd := &cobra.Command{
		Use:   "create <tracking-number>",
		Short: "Create a shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.TrackingNumber = args[0]
			s, err := ctx.client().Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printShipment(cmd, ctx, s)
		},
	}
	cmd.Flags().StringVarP(&req.CustomerName, "name", "n", "", "Customer name")
	cmd.Flags().StringVarP(&req.TransportMode, "transport", "t", "Air", "Transport mode (Air or Sea)")
	cmd.Flags().StringVarP(&req.Status, "status", "s", "", "Initial stage (defaults to the first stage)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSetStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Move one shipment to a stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.client().UpdateStatus(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printShipment(cmd, ctx, s)
		},
	}
}

func newBulkUpdateCommand(ctx *commandContext) *cobra.Command {
	var (
		status string
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "bulk-update [id...]",
		Short: "Move several shipments to the same stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := ctx.client()
			ids := args

			if all {
				shipments, err := c.List(cmd.Context())
				if err != nil {
					return err
				}
				ids = make([]string, 0, len(shipments))
				for _, s := range shipments {
					ids = append(ids, s.ID)
				}
			}

			result, err := c.BulkUpdate(cmd.Context(), ids, status)
			if err != nil {
				return err
			}
			if ctx.json {
				return writeJSON(cmd, result)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "status %q: %d matched, %d modified\n", result.Status, result.Matched, result.Modified)
			if len(result.Missing) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "not found: %s\n", strings.Join(result.Missing, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "Target stage")
	cmd.Flags().BoolVar(&all, "all", false, "Select every shipment")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.client().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
