// Command weatherctl runs the gateway in-process and prints JSON, for checking
// a key or a vendor without starting the server.
//
// Usage:
//
//	weatherctl [-config file] snapshot <city>
//	weatherctl [-config file] current <city>
//	weatherctl [-config file] status
//	weatherctl cities
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"tn-weather/config"
	"tn-weather/gateway"
	"tn-weather/observability"
	"tn-weather/providers"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	_ = godotenv.Load()

	configFile := flag.String("config", "config.json", "Path to optional JSON configuration file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config file] snapshot|current <city> | status | cities\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configFile, flag.Args(), os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "weatherctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile string, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing command")
	}

	if args[0] == "cities" {
		return printJSON(stdout, gateway.AvailableCities())
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logger := observability.NewLogger(stderr, cfg.LogLevel, "text")
	metrics := observability.NewMetricsForTesting()
	clock := clockwork.NewRealClock()

	vendor, service, err := providers.New(cfg, logger, metrics, clock)
	if err != nil {
		return err
	}
	gw := gateway.New(gateway.Config{
		APIKey:       cfg.APIKey,
		Service:      service,
		Timeout:      cfg.FetchTimeout,
		ProbeTimeout: cfg.ProbeTimeout,
	}, vendor, logger, metrics, clock)

	switch args[0] {
	case "snapshot", "current":
		if len(args) < 2 {
			return fmt.Errorf("%s requires a city", args[0])
		}
		city := args[1]
		if !gateway.IsSupported(city) {
			logger.Warn("city is not in the supported list", "city", city)
		}
		if args[0] == "current" {
			return printJSON(stdout, gw.FetchCurrent(ctx, city))
		}
		return printJSON(stdout, gw.Snapshot(ctx, city))
	case "status":
		status := gw.CheckStatus(ctx)
		return printJSON(stdout, map[string]any{
			"api":        status,
			"connection": gateway.ConnectionStatus(status),
		})
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
