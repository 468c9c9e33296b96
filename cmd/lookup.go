package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xketsu/weather-app/internal/cache"
	"github.com/xketsu/weather-app/internal/config"
	"github.com/xketsu/weather-app/internal/display"
	"github.com/xketsu/weather-app/internal/service"
	"github.com/xketsu/weather-app/internal/weather"
)

var errLookupFailed = errors.New("lookup failed")

func lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup [city]",
		Short: "Fetch and display the current weather for a city",
		Long:  `Performs one lookup against the weather provider. With no argument the city name is read from standard input.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLookup,
	}
}

func runLookup(cmd *cobra.Command, args []string) error {
	city, err := cityFromArgsOrPrompt(cmd, args)
	if err != nil {
		return err
	}

	svc, closeFn, err := buildLookupService(cfg)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), display.ErrorMessage(err))
		return errLookupFailed
	}
	defer closeFn()

	result, err := svc.Lookup(cmd.Context(), city)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), display.ErrorMessage(err))
		return errLookupFailed
	}

	display.Render(cmd.OutOrStdout(), result)
	return nil
}

// cityFromArgsOrPrompt returns the city from argv, or prompts for one on
// stdin when none was given.
func cityFromArgsOrPrompt(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return strings.TrimSpace(args[0]), nil
	}
	fmt.Fprint(cmd.OutOrStdout(), "Enter city name: ")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", weather.ErrEmptyCity
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// buildLookupService wires the fetcher and, when enabled, the Redis cache
// into a lookup service. The returned close function releases the cache
// connection.
func buildLookupService(cfg *config.Config) (service.Lookuper, func(), error) {
	apiKey, err := config.APIKey()
	if err != nil {
		return nil, nil, err
	}

	client := weather.NewClient(cfg.Provider, apiKey, nil, log)

	var store service.ResultCache
	closeFn := func() {}
	if cfg.Cache.Enabled {
		redisStore := cache.New(cfg.Cache.Addr, cfg.Cache.TTL)
		store = redisStore
		closeFn = func() { _ = redisStore.Close() }
	}

	return service.NewLookupService(client, store, log), closeFn, nil
}
