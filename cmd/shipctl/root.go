package main

import (
	"os"
	"time"

	"cargo-tracker/internal/client"
	"cargo-tracker/internal/core/logger"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080"

// commandContext carries flag values shared by every subcommand.
type commandContext struct {
	apiURL  string
	timeout time.Duration
	verbose bool
	json    bool
}

func (c *commandContext) client() *client.Client {
	return client.New(c.apiURL, c.timeout)
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "shipctl",
		Short:         "Operate shipments on a cargo-tracker API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "error"
			if ctx.verbose {
				level = "debug"
			}
			return logger.Init("development", level)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	apiURL := os.Getenv("SHIPCTL_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	rootCmd.PersistentFlags().StringVar(&ctx.apiURL, "api", apiURL, "Base URL of the cargo-tracker API (env SHIPCTL_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&ctx.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Log HTTP requests")
	rootCmd.PersistentFlags().BoolVar(&ctx.json, "json", false, "Print raw JSON instead of tables")

	rootCmd.AddCommand(newStagesCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newTrackCommand(ctx))
	rootCmd.AddCommand(newCreateCommand(ctx))
	rootCmd.AddCommand(newSetStatusCommand(ctx))
	rootCmd.AddCommand(newBulkUpdateCommand(ctx))
	rootCmd.AddCommand(newDeleteCommand(ctx))

	return rootCmd
}
