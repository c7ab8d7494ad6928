package zhouyi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/koriyoshi2041/zhouyi/internal/core/cast"
	"github.com/koriyoshi2041/zhouyi/internal/services/divination/app"
)

type questionFlags struct {
	text     string
	category string
	palace   string
	at       string
}

func (q *questionFlags) register(f *pflag.FlagSet) {
	f.StringVarP(&q.text, "question", "q", "", "question asked, recorded with the reading")
	f.StringVar(&q.category, "category", "", "question category: career, wealth, exam, marriage, health, travel, lawsuit or other")
	f.StringVar(&q.palace, "palace", "", "trigram overriding the catalog palace, e.g. kan or 坎")
	f.StringVar(&q.at, "at", "", "moment of the reading, RFC 3339 or \"2006-01-02 15:04\" (default now)")
}

func (c *CLI) question(q questionFlags) (app.Question, error) {
	category, err := app.ParseCategory(q.category)
	if err != nil {
		return app.Question{}, err
	}
	palace, err := app.ParsePalace(q.palace)
	if err != nil {
		return app.Question{}, err
	}
	at, err := c.parseAt(q.at)
	if err != nil {
		return app.Question{}, err
	}
	return app.Question{Text: q.text, Category: category, Palace: palace, At: at}, nil
}

type castFlags struct {
	questionFlags
	seed int64
}

func (c *CLI) castCommand() *cobra.Command {
	var flags castFlags
	castCmd := &cobra.Command{
		Use:   "cast",
		Short: "Cast a hexagram with the default method (env ZHOUYI_METHOD)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			method, err := app.ParseMethod(c.cfg.Method)
			if err != nil {
				return err
			}
			if method == cast.MethodNumber || method == cast.MethodManual {
				return usageError(fmt.Errorf("method %s takes arguments, run \"zhouyi cast %s\"", method, method))
			}
			return c.runCast(cmd, flags, app.CastRequest{Method: method})
		},
	}
	f := castCmd.PersistentFlags()
	flags.register(f)
	f.Int64Var(&flags.seed, "seed", 0, "replay a coin or yarrow cast")

	castCmd.AddCommand(
		&cobra.Command{
			Use:   "coin",
			Short: "Toss three coins six times",
			Args:  usageArgs(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.runCast(cmd, flags, app.CastRequest{Method: cast.MethodCoin})
			},
		},
		&cobra.Command{
			Use:   "yarrow",
			Short: "Divide forty-nine stalks three times per line",
			Args:  usageArgs(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.runCast(cmd, flags, app.CastRequest{Method: cast.MethodYarrow})
			},
		},
		&cobra.Command{
			Use:   "time",
			Short: "Derive a hexagram from the reading moment",
			Args:  usageArgs(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.runCast(cmd, flags, app.CastRequest{Method: cast.MethodTime})
			},
		},
		&cobra.Command{
			Use:     "number <first> <second>",
			Short:   "Derive a hexagram from two numbers",
			Example: "  zhouyi cast number 17 26",
			Args:    usageArgs(cobra.ExactArgs(2)),
			RunE: func(cmd *cobra.Command, args []string) error {
				numbers := make([]int, 0, len(args))
				for _, arg := range args {
					n, err := strconv.Atoi(strings.TrimSpace(arg))
					if err != nil {
						return usageError(err)
					}
					numbers = append(numbers, n)
				}
				return c.runCast(cmd, flags, app.CastRequest{Method: cast.MethodNumber, Numbers: numbers})
			},
		},
		&cobra.Command{
			Use:     "manual <tosses>...",
			Short:   "Record six tosses of three coins, bottom line first",
			Example: "  zhouyi cast manual hht tth hhh ttt htt hth",
			Args:    usageArgs(cobra.MinimumNArgs(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				tosses, err := app.ParseTosses(strings.Join(args, " "))
				if err != nil {
					return err
				}
				return c.runCast(cmd, flags, app.CastRequest{Method: cast.MethodManual, Tosses: tosses})
			},
		},
	)
	return castCmd
}

func (c *CLI) runCast(cmd *cobra.Command, flags castFlags, req app.CastRequest) error {
	question, err := c.question(flags.questionFlags)
	if err != nil {
		return err
	}
	req.Question = question
	if cmd.Flags().Changed("seed") {
		seed := flags.seed
		req.Seed = &seed
	}
	rd, err := c.svc.Cast(cmd.Context(), req)
	if err != nil {
		return err
	}
	return c.writeReading(cmd.OutOrStdout(), rd)
}

func (c *CLI) analyzeCommand() *cobra.Command {
	var flags questionFlags
	analyzeCmd := &cobra.Command{
		Use:     "analyze <values>...",
		Short:   "Annotate six line values cast elsewhere, bottom line first",
		Example: "  zhouyi analyze 789876\n  zhouyi analyze 7 8 9 8 7 6",
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := app.ParseValues(strings.Join(args, ","))
			if err != nil {
				return err
			}
			question, err := c.question(flags)
			if err != nil {
				return err
			}
			rd, err := c.svc.Analyze(cmd.Context(), app.AnalyzeRequest{Question: question, Values: values})
			if err != nil {
				return err
			}
			return c.writeReading(cmd.OutOrStdout(), rd)
		},
	}
	flags.register(analyzeCmd.Flags())
	return analyzeCmd
}

func (c *CLI) lookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "lookup <ref>",
		Short:   "Show a hexagram by number, name or line pattern",
		Example: "  zhouyi lookup 63\n  zhouyi lookup 既济\n  zhouyi lookup 101010",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := c.svc.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if c.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), h)
			}
			return c.renderer.Hexagram(cmd.OutOrStdout(), h)
		},
	}
}

func (c *CLI) palaceCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "palace <trigram>",
		Short:   "List the eight hexagrams of a palace in palace order",
		Example: "  zhouyi palace kan",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := c.svc.Palace(args[0])
			if err != nil {
				return err
			}
			if c.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), members)
			}
			return c.renderer.Palace(cmd.OutOrStdout(), members)
		},
	}
}

func (c *CLI) calendarCommand() *cobra.Command {
	var at string
	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the day pillar, month branch and hour of a moment",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := c.parseAt(at)
			if err != nil {
				return err
			}
			var when time.Time
			if t != nil {
				when = *t
			}
			moment := c.svc.Moment(when)
			if c.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), moment)
			}
			return c.renderer.Moment(cmd.OutOrStdout(), moment)
		},
	}
	calendarCmd.Flags().StringVar(&at, "at", "", "moment to describe (default now)")
	return calendarCmd
}

func (c *CLI) probabilityCommand() *cobra.Command {
	var (
		trials int
		seed   int64
	)
	probabilityCmd := &cobra.Command{
		Use:     "probability [method]",
		Short:   "Compare the exact line value distribution with a simulation",
		Example: "  zhouyi probability yarrow --trials 100000",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := c.cfg.Method
			if len(args) == 1 {
				raw = args[0]
			}
			method, err := app.ParseMethod(raw)
			if err != nil {
				return err
			}
			req := app.ProbabilityRequest{Method: method, Trials: trials}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}
			report, err := c.svc.Probability(cmd.Context(), req)
			if err != nil {
				return err
			}
			if c.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			return c.renderer.Probability(cmd.OutOrStdout(), report)
		},
	}
	f := probabilityCmd.Flags()
	f.IntVar(&trials, "trials", 0, "simulated casts (default 10000)")
	f.Int64Var(&seed, "seed", 0, "seed of the first worker")
	return probabilityCmd
}
