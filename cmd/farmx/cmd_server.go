package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/farmxchain/farmx/config"
	"github.com/farmxchain/farmx/internal/kernel"
	"github.com/farmxchain/farmx/internal/server"
	fxhttp "github.com/farmxchain/farmx/pkg/http"
	"github.com/farmxchain/farmx/pkg/logger"
	"github.com/farmxchain/farmx/pkg/session"
)

// farmx serve: start the web portal.
func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web portal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			k, err := kernel.Boot(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := k.Close(); err != nil {
					logger.Warn("portal shutdown", "error", err)
				}
			}()
			if port == "" {
				port = config.AppPort()
			}
			logger.Info("portal starting", "port", port, "backend", config.APIBaseURL(), "sessions", config.SessionDriver())
			return server.Start(ctx, net.JoinHostPort("", port), k.Handler())
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default APP_PORT)")
	return cmd
}

// farmx route:list: print the portal's named routes.
func newRouteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "List the portal's named routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k := kernel.New(fxhttp.NewClient(config.APIBaseURL()), session.NewMemoryBackend(), nil)

			infos := k.Router.Routes()
			if len(infos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No named routes registered.")
				return nil
			}
			sort.Slice(infos, func(i, j int) bool {
				if infos[i].Path != infos[j].Path {
					return infos[i].Path < infos[j].Path
				}
				return infos[i].Method < infos[j].Method
			})

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATH\tNAME")
			fmt.Fprintln(w, "------\t----\t----")
			for _, ri := range infos {
				fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
			}
			return w.Flush()
		},
	}
}
