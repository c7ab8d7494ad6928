// Package zhouyi builds the zhouyi command line: casting, analysis, catalog
// lookup and the calendar, rendered as text or JSON.
package zhouyi

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	entrypoint "github.com/koriyoshi2041/zhouyi/internal/platform/cmd"
	"github.com/koriyoshi2041/zhouyi/internal/platform/config"
	platformerrors "github.com/koriyoshi2041/zhouyi/internal/platform/errors"
	"github.com/koriyoshi2041/zhouyi/internal/platform/logging"
	platformotel "github.com/koriyoshi2041/zhouyi/internal/platform/otel"
	"github.com/koriyoshi2041/zhouyi/internal/services/divination/app"
	"github.com/koriyoshi2041/zhouyi/internal/services/divination/render"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds command line defaults read from the environment.
type Config struct {
	Locale string `env:"ZHOUYI_LOCALE"`
	TZ     string `env:"ZHOUYI_TZ"`
	Method string `env:"ZHOUYI_METHOD" envDefault:"coin"`
	Output string `env:"ZHOUYI_OUTPUT" envDefault:"text"`

	Logging logging.Config
	Otel    platformotel.Config
}

// ParseConfig loads Config from the environment.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type rootFlags struct {
	json     bool
	plain    bool
	locale   string
	tz       string
	logLevel string
}

// CLI is one invocation of the command line. Flags override Config.
type CLI struct {
	cfg     Config
	stdout  io.Writer
	stderr  io.Writer
	appOpts []app.Option

	flags    rootFlags
	logger   *zap.Logger
	svc      *app.Service
	renderer *render.Renderer
}

// New returns a CLI writing to stdout and stderr. opts are applied to the
// divination service after the ones derived from flags.
func New(cfg Config, stdout, stderr io.Writer, opts ...app.Option) *CLI {
	return &CLI{cfg: cfg, stdout: stdout, stderr: stderr, appOpts: opts}
}

// Execute runs args under telemetry.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.Command()
	root.SetArgs(args)
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCLI, c.cfg.Otel, func(ctx context.Context) error {
		return root.ExecuteContext(ctx)
	})
}

// Locale returns the locale messages are written in.
func (c *CLI) Locale() string {
	if c.renderer != nil {
		return c.renderer.Locale()
	}
	return render.New(c.requestedLocale()).Locale()
}

// ErrorMessage returns the text shown to the user for err. Domain errors
// are localized; anything else is shown as is.
func (c *CLI) ErrorMessage(err error) string {
	if platformerrors.GetCode(err) == platformerrors.CodeUnknown {
		return err.Error()
	}
	return platformerrors.UserMessage(err, c.Locale())
}

// Command builds the root command.
func (c *CLI) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "zhouyi",
		Short: "Cast and annotate I Ching hexagrams",
		Long: "zhouyi casts hexagrams by coin, yarrow, number, time or manual tosses\n" +
			"and annotates every line with its stem, branch, element, role and guardian.",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              usageArgs(cobra.NoArgs),
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			logging.Sync(c.logger)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	f := root.PersistentFlags()
	f.BoolVar(&c.flags.json, "json", false, "write JSON instead of text")
	f.BoolVar(&c.flags.plain, "plain", false, "disable colors and borders")
	f.StringVar(&c.flags.locale, "locale", "", "message locale, e.g. en-US or zh-CN (env ZHOUYI_LOCALE)")
	f.StringVar(&c.flags.tz, "tz", "", "IANA time zone for casting moments (env ZHOUYI_TZ)")
	f.StringVar(&c.flags.logLevel, "log-level", "", "log level: debug, info, warn or error (env ZHOUYI_LOG_LEVEL)")

	root.AddCommand(c.castCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.lookupCommand())
	root.AddCommand(c.palaceCommand())
	root.AddCommand(c.calendarCommand())
	root.AddCommand(c.probabilityCommand())
	return root
}

func (c *CLI) setup(*cobra.Command, []string) error {
	output := strings.ToLower(strings.TrimSpace(c.cfg.Output))
	switch output {
	case "", OutputText, OutputJSON:
	default:
		return usageError(fmt.Errorf("unknown output format %q", c.cfg.Output))
	}
	if c.flags.json {
		output = OutputJSON
	}
	c.cfg.Output = output

	logCfg := c.cfg.Logging
	if c.flags.logLevel != "" {
		logCfg.Level = c.flags.logLevel
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return usageError(err)
	}
	c.logger = logger

	tz := c.cfg.TZ
	if c.flags.tz != "" {
		tz = c.flags.tz
	}
	loc, err := config.LoadLocation(tz)
	if err != nil {
		return usageError(err)
	}

	opts := []app.Option{
		app.WithLogger(logger.Named("divination")),
		app.WithTracer(otel.Tracer("zhouyi/divination")),
		app.WithLocation(loc),
	}
	svc, err := app.New(append(opts, c.appOpts...)...)
	if err != nil {
		return fmt.Errorf("build divination service: %w", err)
	}
	c.svc = svc

	var renderOpts []render.Option
	if c.flags.plain {
		renderOpts = append(renderOpts, render.WithStyles(render.PlainStyles()))
	}
	c.renderer = render.New(c.requestedLocale(), renderOpts...)
	return nil
}

func (c *CLI) requestedLocale() string {
	for _, candidate := range []string{c.flags.locale, c.cfg.Locale, os.Getenv("LC_ALL"), os.Getenv("LANG")} {
		if locale := normalizeLocale(candidate); locale != "" {
			return locale
		}
	}
	return ""
}

// normalizeLocale turns POSIX names such as zh_CN.UTF-8 into BCP 47 tags.
func normalizeLocale(raw string) string {
	locale := strings.TrimSpace(raw)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "C" || locale == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(locale, "_", "-")
}

func (c *CLI) jsonOutput() bool {
	return c.cfg.Output == OutputJSON
}

// usageError classifies a flag or argument problem as a caller mistake.
func usageError(err error) error {
	if err == nil || platformerrors.GetCode(err) != platformerrors.CodeUnknown {
		return err
	}
	return platformerrors.WrapWithMetadata(platformerrors.CodeUsage, err.Error(),
		map[string]string{"Detail": err.Error()}, err)
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(validate(cmd, args))
	}
}

// parseAt resolves the --at flag in the service location. Empty means now.
func (c *CLI) parseAt(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := app.ParseTime(raw, c.svc.Location())
	if err != nil {
		return nil, err
	}
	return &t, nil
}
