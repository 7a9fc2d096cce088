// Package main provides the CLI entrypoint for the link guard service.
// It wires subcommands (serve, check, audit), loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"io"
	"linkguard/internal/config"
	"linkguard/internal/guard"
	"linkguard/pkg/logger"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// getGuard builds the navigation guard from the configured policy.
func getGuard(ctx context.Context, cfg *config.Config, mp metric.MeterProvider) guard.Guard {
	opts, err := guard.NewOptions(cfg, mp)
	if err != nil {
		logger.Fatal(ctx, "could not read guard options", zap.Error(err))
	}
	opts.TracerProvider = otel.GetTracerProvider()

	g, err := guard.New(opts)
	if err != nil {
		logger.Fatal(ctx, "could not create guard", zap.Error(err))
	}

	return g
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:          "linkguard",
		SilenceUsage: true,
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	configPath := flags.String("c", "config.yml", "The config file path")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	if err := logger.Setup(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatal("could not setup logger: ", err)
	}

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		checkCommand(cfg),
		auditCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
