// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	entrypoint "github.com/koriyoshi2041/zhouyi/internal/platform/cmd"
	"github.com/koriyoshi2041/zhouyi/internal/platform/config"
	"github.com/koriyoshi2041/zhouyi/internal/platform/logging"
	platformotel "github.com/koriyoshi2041/zhouyi/internal/platform/otel"
	"github.com/koriyoshi2041/zhouyi/internal/services/divination/app"
	"github.com/koriyoshi2041/zhouyi/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Name         string   `env:"ZHOUYI_MCP_NAME"          envDefault:"zhouyi"`
	Transport    string   `env:"ZHOUYI_MCP_TRANSPORT"     envDefault:"stdio"`
	HTTPAddr     string   `env:"ZHOUYI_MCP_HTTP_ADDR"     envDefault:"localhost:8081"`
	AllowedHosts []string `env:"ZHOUYI_MCP_ALLOWED_HOSTS" envSeparator:","`
	TZ           string   `env:"ZHOUYI_TZ"`

	Logging logging.Config
	Otel    platformotel.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Name, "name", cfg.Name, "server name announced to clients")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.TZ, "tz", cfg.TZ, "IANA time zone for casting moments (default: host zone)")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "log level: debug, info, warn or error")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Transport = strings.ToLower(strings.TrimSpace(cfg.Transport))
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	loc, err := config.LoadLocation(cfg.TZ)
	if err != nil {
		return err
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, cfg.Otel, func(ctx context.Context) error {
		svc, err := app.New(
			app.WithLogger(logger.Named("divination")),
			app.WithTracer(otel.Tracer("zhouyi/divination")),
			app.WithLocation(loc),
		)
		if err != nil {
			return fmt.Errorf("build divination service: %w", err)
		}
		logger.Info("starting mcp server",
			zap.String("transport", cfg.Transport),
			zap.String("location", loc.String()),
		)
		return service.Run(ctx, svc, service.Config{
			Name:         cfg.Name,
			Transport:    service.TransportKind(cfg.Transport),
			HTTPAddr:     cfg.HTTPAddr,
			AllowedHosts: cfg.AllowedHosts,
		}, logger.Named("mcp"))
	})
}
