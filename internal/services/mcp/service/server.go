package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/koriyoshi2041/zhouyi/internal/services/mcp/domain"
)

const (
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
	// defaultServerName identifies this MCP server to clients.
	defaultServerName = "zhouyi"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Name      string
	Transport TransportKind
	// HTTPAddr is the listen address for TransportHTTP. Defaults to localhost:8081.
	HTTPAddr string
	// AllowedHosts extends the loopback hosts accepted by the HTTP transport.
	AllowedHosts []string
}

type registrationKind int

const (
	registrationKindTools registrationKind = iota
	registrationKindResources
)

type registrationModule struct {
	name     string
	kind     registrationKind
	register func(*mcp.Server)
}

func newRegistrationModules(svc domain.Divination) []registrationModule {
	return []registrationModule{
		{
			name: "divination-tools",
			kind: registrationKindTools,
			register: func(server *mcp.Server) {
				mcp.AddTool(server, domain.CastTool(), domain.CastHandler(svc))
				mcp.AddTool(server, domain.AnalyzeTool(), domain.AnalyzeHandler(svc))
				mcp.AddTool(server, domain.ProbabilityTool(), domain.ProbabilityHandler(svc))
			},
		},
		{
			name: "catalog-tools",
			kind: registrationKindTools,
			register: func(server *mcp.Server) {
				mcp.AddTool(server, domain.LookupTool(), domain.LookupHandler(svc))
			},
		},
		{
			name: "calendar-tools",
			kind: registrationKindTools,
			register: func(server *mcp.Server) {
				mcp.AddTool(server, domain.MomentTool(), domain.MomentHandler(svc))
			},
		},
		{
			name: "catalog-resources",
			kind: registrationKindResources,
			register: func(server *mcp.Server) {
				server.AddResourceTemplate(domain.HexagramResourceTemplate(), domain.HexagramResourceHandler(svc))
			},
		},
	}
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	logger    *zap.Logger
}

// New creates an MCP server with every divination tool and resource
// registered against svc.
func New(svc domain.Divination, cfg Config, logger *zap.Logger) (*Server, error) {
	if svc == nil {
		return nil, errors.New("divination service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = defaultServerName
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: name, Version: serverVersion}, &mcp.ServerOptions{
		CompletionHandler: completionHandler,
	})
	for _, module := range newRegistrationModules(svc) {
		module.register(mcpServer)
		logger.Debug("registered mcp module", zap.String("module", module.name), zap.Int("kind", int(module.kind)))
	}
	return &Server{mcpServer: mcpServer, logger: logger}, nil
}

// completionHandler answers completion/complete requests with no values.
func completionHandler(context.Context, *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values: []string{},
		},
	}, nil
}

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, svc domain.Divination, cfg Config, logger *zap.Logger) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	server, err := New(svc, cfg, logger)
	if err != nil {
		return err
	}

	switch cfg.Transport {
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return NewHTTPTransport(cfg.HTTPAddr, server.mcpServer, cfg.AllowedHosts, server.logger).Start(ctx)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// serveWithTransport runs the MCP server on transport until the session
// ends. Cancellation is a clean exit.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s.logger.Info("serving mcp")
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
