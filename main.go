package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"

	"github.com/oaiiae/huma-crm/cli/api"
	"github.com/oaiiae/huma-crm/cli/logger"
	"github.com/oaiiae/huma-crm/tui"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	title    = "huma-crm" //nolint: gochecknoglobals // build info
	version  = "dev"      //nolint: gochecknoglobals // build info
	revision = ""         //nolint: gochecknoglobals // build info
	created  = ""         //nolint: gochecknoglobals // build info
)

// Options for the CLI. Pass `--port` or set the `SERVICE_PORT` env var.
type Options struct {
	api.ServerOptions
	api.RouterOptions
	api.StoreOptions
	logger.Options
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		log := logger.New(&options.Options)
		store, err := api.NewStore(&options.StoreOptions)
		if err != nil {
			log.Error("could not create store", "err", err)
			os.Exit(1)
		}

		srv := api.NewServer(&options.ServerOptions,
			api.NewRouter(&options.RouterOptions, title, version, revision, created, store, log),
			log,
		)
		hooks.OnStart(func() {
			log.Info("listening", "addr", srv.Addr)
			err := srv.ListenAndServe()
			if err != http.ErrServerClosed {
				log.Error("failed to listen and serve", "err", err)
			} else {
				log.Info("server closed")
			}
		})
		hooks.OnStop(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			err := srv.Shutdown(ctx)
			if err != nil {
				log.Warn("could not shutdown the server", "err", err)
			}
		})
	})

	cli.Root().Use = title
	cli.Root().Version = version
	cli.Root().AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Manage contacts from the terminal",
		Run: humacli.WithOptions(func(cmd *cobra.Command, _ []string, options *Options) {
			log := logger.NewBackground(&options.Options)
			store, err := api.NewStore(&options.StoreOptions)
			if err != nil {
				slog.Error("could not create store", "err", err)
				os.Exit(1)
			}
			err = tui.Run(cmd.Context(), store, log)
			if err != nil {
				log.Error("terminal closed", "err", err)
				os.Exit(1)
			}
		}),
	})

	cli.Run()
}
