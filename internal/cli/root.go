package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dwizi/crontz/internal/app"
	"github.com/dwizi/crontz/internal/config"
	"github.com/dwizi/crontz/internal/crontz"
	"github.com/dwizi/crontz/internal/mcp"
)

func NewRoot(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "crontz",
		Short:         "crontz converts cron(...) schedules between timezones and UTC",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newToUTCCommand())
	root.AddCommand(newToTimezoneCommand())
	root.AddCommand(newNextCommand())
	root.AddCommand(newServeCommand(logger))
	root.AddCommand(newMCPCommand(logger))
	root.AddCommand(newVersionCommand())

	return root
}

func newServeCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and MCP endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			runtime, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			defer runtime.Close()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runtime.Run(ctx)
		},
	}
}

func newMCPCommand(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the cron tools over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			server := mcp.NewServer(mcp.ServerOptions{
				Name:            "crontz",
				Version:         app.Version,
				DefaultTimezone: cfg.DefaultTimezone,
				DefaultFormat:   cfg.DefaultFormat,
			}, crontz.NewResolver(crontz.WithScanLimit(cfg.NextScanLimit)), logger.With("component", "mcp"))

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return mcp.RunStdio(ctx, server)
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print CLI version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(app.Version)
		},
	}
}
