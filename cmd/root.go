package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xketsu/weather-app/internal/config"
	"github.com/xketsu/weather-app/pkg/logger"
)

var (
	cfgPath string
	cfg     *config.Config
	log     *logger.Logger
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "weather",
		Short:         "Look up current weather by city name",
		Long:          `Queries a weather provider by city name and displays the temperature, a condition icon, and a description.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeServices()
		},
	}

	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to configuration file (default: ./config.yaml)")

	cmd.AddCommand(lookupCmd())
	cmd.AddCommand(serveCmd())

	return cmd
}

// Execute runs the CLI under a signal-cancelled context.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		if log != nil {
			log.Infow("received shutdown signal", "signal", sig.String())
		}
		cancel()
	}()

	return rootCmd().ExecuteContext(ctx)
}

func initializeServices() error {
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return err
	}

	log, err = logger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return err
	}
	return nil
}
