// Package cmd holds the startup helpers shared by the zhouyi commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/koriyoshi2041/zhouyi/internal/platform/config"
	"github.com/koriyoshi2041/zhouyi/internal/platform/otel"
	"github.com/koriyoshi2041/zhouyi/internal/platform/timeouts"
)

// Service identifiers for command startup telemetry and CLI naming consistency.
const (
	ServiceCLI = "zhouyi"
	ServiceMCP = "zhouyi-mcp"
)

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// ParseConfigFromArgs loads defaults from env and then parses flags.
func ParseConfigFromArgs[T any](cfg *T, fs *flag.FlagSet, args []string) error {
	if err := ParseConfig(cfg); err != nil {
		return err
	}
	return ParseArgs(fs, args)
}

// RunWithTelemetry configures tracing and executes run. Errors from run
// and from flushing spans are both reported.
func RunWithTelemetry(ctx context.Context, service string, cfg otel.Config, run func(context.Context) error) (err error) {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := otel.Setup(ctx, service, cfg)
	if err != nil {
		return fmt.Errorf("%s otel setup: %w", service, err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if shutdownErr := shutdown(shutdownCtx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("%s otel shutdown: %w", service, shutdownErr))
		}
	}()
	return run(ctx)
}
