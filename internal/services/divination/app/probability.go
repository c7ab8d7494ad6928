package app

import (
	"context"
	"errors"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/koriyoshi2041/zhouyi/internal/core/cast"
	"github.com/koriyoshi2041/zhouyi/internal/core/hexagram"
	platformerrors "github.com/koriyoshi2041/zhouyi/internal/platform/errors"
	"github.com/koriyoshi2041/zhouyi/internal/random"
)

const (
	// DefaultTrials is the simulation size used when a request names none.
	DefaultTrials = 10000
	// MaxTrials bounds a single simulation.
	MaxTrials = 1_000_000
)

// ProbabilityRequest asks for the line value distribution of a method.
type ProbabilityRequest struct {
	Method cast.Method
	// Trials is the number of simulated casts, at most MaxTrials. Zero
	// means DefaultTrials.
	Trials int
	Seed   *int64
}

// ValueReport compares the exact and observed share of one line value.
type ValueReport struct {
	Value     int     `json:"value"`
	Label     string  `json:"label"`
	Exact     float64 `json:"exact"`
	Count     int     `json:"count"`
	Observed  float64 `json:"observed"`
	Deviation float64 `json:"deviation"`
}

// ProbabilityReport is the exact distribution next to a simulation.
type ProbabilityReport struct {
	Method  string        `json:"method"`
	Seed    random.Seed   `json:"seed"`
	Trials  int           `json:"trials"`
	Lines   int           `json:"lines"`
	Workers int           `json:"workers"`
	Values  []ValueReport `json:"values"`
}

// Probability computes the exact line value distribution for a randomized
// method and checks it against a simulation split across workers. Worker i
// draws from seed+i, so a report is reproducible for a fixed seed and
// worker count.
func (s *Service) Probability(ctx context.Context, req ProbabilityRequest) (ProbabilityReport, error) {
	ctx, span := s.tracer.Start(ctx, "divination.Probability", trace.WithAttributes(
		attribute.String("method", req.Method.String()),
	))
	defer span.End()

	exact, err := cast.Distribution(req.Method)
	if err != nil {
		if errors.Is(err, cast.ErrNotRandom) {
			err = withInput(platformerrors.CodeNotRandom, "Method", req.Method.String(), err)
		} else {
			err = withInput(platformerrors.CodeInvalidMethod, "Method", req.Method.String(), err)
		}
		return ProbabilityReport{}, s.fail(span, "probability", err)
	}
	trials := req.Trials
	if trials == 0 {
		trials = DefaultTrials
	}
	if trials < 0 || trials > MaxTrials {
		return ProbabilityReport{}, s.fail(span, "probability", invalidTrials(cast.ErrInvalidTrials))
	}
	seed, err := random.ResolveSeed(req.Seed, s.seeds)
	if err != nil {
		return ProbabilityReport{}, s.fail(span, "probability", err)
	}

	workers := s.workers
	if workers > trials {
		workers = trials
	}
	tallies := make([]cast.Tally, workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := range workers {
		share := trials / workers
		if i < trials%workers {
			share++
		}
		g.Go(func() error {
			tally, err := cast.Simulate(gctx, req.Method, cast.NewSource(seed.Value+int64(i)), share)
			if err != nil {
				return err
			}
			tallies[i] = tally
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ProbabilityReport{}, s.fail(span, "probability", err)
	}

	merged := cast.Tally{Method: req.Method}
	for _, tally := range tallies {
		merged.Merge(tally)
	}

	report := ProbabilityReport{
		Method:  req.Method.String(),
		Seed:    seed,
		Trials:  merged.Casts,
		Lines:   merged.Lines(),
		Workers: workers,
		Values:  make([]ValueReport, 0, len(hexagram.LineValues)),
	}
	for _, v := range hexagram.LineValues {
		observed := merged.Frequency(v)
		report.Values = append(report.Values, ValueReport{
			Value:     int(v),
			Label:     v.String(),
			Exact:     exact.Of(v),
			Count:     merged.Counts[v],
			Observed:  observed,
			Deviation: observed - exact.Of(v),
		})
	}
	s.logger.Info("probability",
		zap.String("method", report.Method),
		zap.Int("trials", report.Trials),
		zap.Int("workers", workers),
		zap.String("seed_source", string(seed.Source)),
	)
	return report, nil
}

func invalidTrials(err error) error {
	return withInput(platformerrors.CodeInvalidTrials, "Max", strconv.Itoa(MaxTrials), err)
}
