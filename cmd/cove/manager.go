package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/covetools/cove/internal/config"
	"github.com/covetools/cove/internal/logging"
	httpclient "github.com/covetools/cove/pkg/adapters/http"
	"github.com/covetools/cove/pkg/adapters/local"
	"github.com/covetools/cove/pkg/adapters/memory"
	"github.com/covetools/cove/pkg/adapters/redis"
	"github.com/covetools/cove/pkg/monitor"
	"github.com/covetools/cove/pkg/ports"
)

// loadConfig merges cove.yaml with command-line flags; flags win.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("dir") {
		cfg.RootDir, _ = cmd.Flags().GetString("dir")
	}
	if cmd.Flags().Changed("remote") {
		cfg.Remote, _ = cmd.Flags().GetString("remote")
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.New(cfg.Level())
}

// newManager builds the workspace manager the command operates through:
// a remote client when a service address is configured, a local manager
// otherwise.
func newManager(cfg config.Config, logger *slog.Logger) (ports.Manager, error) {
	if cfg.Remote != "" {
		return httpclient.NewClient(cfg.Remote,
			httpclient.WithTimeout(cfg.Timeout.Std()),
			httpclient.WithLogger(logger),
		), nil
	}
	opts := []local.Option{local.WithLogger(logger)}
	switch cfg.Cache.Backend {
	case "memory":
		opts = append(opts, local.WithResultCache(memory.NewCache()))
	case "redis":
		cache := redis.New(cfg.Cache.Address, cfg.Cache.Password, cfg.Cache.DB,
			redis.WithTTL(cfg.Cache.TTL.Std()))
		opts = append(opts, local.WithResultCache(cache))
	}
	return local.New(cfg.RootDir, opts...)
}

// newMonitor picks progress reporting for the invocation: an in-place bar on
// a terminal, structured log lines otherwise.
func newMonitor(logger *slog.Logger) monitor.Monitor {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return monitor.NewConsole(os.Stderr)
	}
	return monitor.NewLog(logger)
}

func fail(err error) {
	_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
	os.Exit(1)
}
