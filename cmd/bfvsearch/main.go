package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	_ "time/tzdata"

	fxmodules "bfv-tracker/internal/fx"
	"bfv-tracker/internal/logger"
	"bfv-tracker/internal/report"
	"bfv-tracker/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

type searcher interface {
	PlayerReport(ctx context.Context, name string) (*report.Report, error)
	BanHistory(ctx context.Context, name string) (*report.Report, error)
	ServerSearch(ctx context.Context, name string) (*report.Report, error)
}

// opener builds the search service and returns a function releasing it.
type opener func(ctx context.Context) (searcher, func(), error)

func main() {
	if err := newRootCmd(openService).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(open opener) *cobra.Command {
	var asJSON bool

	root := &cobra.Command{
		Use:   "bfvsearch",
		Short: "Look up Battlefield V players and servers",
		Long: `Query the community stats, ban and server APIs from the terminal.

Logs go to stderr; the report is printed to stdout as Markdown, or as JSON
with --json.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	query := func(use, short string, pick func(searcher) func(context.Context, string) (*report.Report, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, closeFn, err := open(cmd.Context())
				if err != nil {
					return err
				}
				defer closeFn()

				r, err := pick(svc)(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return errors.New(service.UserMessage(err))
				}
				return printReport(cmd, r, asJSON)
			},
		}
	}

	root.AddCommand(
		query("player <name>", "Show a player's stats, weapons, vehicles and ban status",
			func(s searcher) func(context.Context, string) (*report.Report, error) { return s.PlayerReport }),
		query("bans <name>", "Show a player's server ban history",
			func(s searcher) func(context.Context, string) (*report.Report, error) { return s.BanHistory }),
		query("servers <name>", "Search servers by name",
			func(s searcher) func(context.Context, string) (*report.Report, error) { return s.ServerSearch }),
	)
	return root
}

func printReport(cmd *cobra.Command, r *report.Report, asJSON bool) error {
	out := cmd.OutOrStdout()
	if !asJSON {
		_, err := fmt.Fprint(out, report.Markdown(r))
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func openService(ctx context.Context) (searcher, func(), error) {
	var svc *service.SearchService

	app := fx.New(
		fxmodules.Core,
		fx.Replace(logger.NewWithWriter(os.Stderr)),
		fx.NopLogger,
		fx.Populate(&svc),
	)
	if err := app.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("start: %w", err)
	}

	return svc, func() {
		if err := app.Stop(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "shutdown: %v\n", err)
		}
	}, nil
}
