package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"github.com/xgillard/thumbnails/internal/app"
	"github.com/xgillard/thumbnails/internal/config"
)

const version = "v1"

func initSentry(cfg *config.SentryConfig, version string) error {
	return sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Release:     version,
	})
}

func newRootCommand() *cobra.Command {
	cfg := config.NewConfig()
	var configFile string

	cmd := &cobra.Command{
		Use:           "thumbnails <src> <dst>",
		Short:         "Create image thumbnails in bulk",
		Long:          "Create image thumbnails in bulk, overlapping disk io with the cpu bound resize work to maximize throughput.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The config file provides defaults; explicit flags win.
			if configFile != "" {
				saved := *cfg
				if err := cfg.Read(configFile); err != nil {
					return err
				}
				flags := cmd.Flags()
				if flags.Changed("width") {
					cfg.Width = saved.Width
				}
				if flags.Changed("height") {
					cfg.Height = saved.Height
				}
				if flags.Changed("filter") {
					cfg.Filter = saved.Filter
				}
				if flags.Changed("asynchronous") {
					cfg.Asynchronous = saved.Asynchronous
				}
				if flags.Changed("limit") {
					cfg.Limit = saved.Limit
				}
				if flags.Changed("extension") {
					cfg.Extension = saved.Extension
				}
				if flags.Changed("workers") {
					cfg.Workers = saved.Workers
				}
			}
			cfg.Src, cfg.Dst = args[0], args[1]

			if cfg.Sentry.SentryDSN != "" {
				if err := initSentry(&cfg.Sentry, version); err != nil {
					return err
				}
			}

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&cfg.Width, "width", "w", cfg.Width, "width of the generated thumbnails")
	flags.IntVarP(&cfg.Height, "height", "h", cfg.Height, "height of the generated thumbnails")
	flags.StringVarP(&cfg.Filter, "filter", "f", cfg.Filter, "resampling filter: nearest, triangle, gaussian, catmull-rom or lanczos3")
	flags.BoolVarP(&cfg.Asynchronous, "asynchronous", "a", false, "use the pipelined reader/workers/writer strategy")
	flags.IntVarP(&cfg.Limit, "limit", "l", cfg.Limit, "queue capacity in pipelined mode")
	flags.StringVarP(&cfg.Extension, "extension", "e", cfg.Extension, "only convert files with this extension")
	flags.IntVar(&cfg.Workers, "workers", 0, "number of resize workers (0 = one per core)")
	flags.StringVar(&configFile, "config", "", "path to a json config file")

	// -h is taken by --height, so the help flag is registered without a
	// shorthand before cobra gets a chance to claim it.
	flags.Bool("help", false, "help for thumbnails")

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		sentry.CaptureException(err)
		// Flush buffered events before the program terminates.
		sentry.Flush(2 * time.Second)
		log.Fatal(err)
	}
}
