package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/koriyoshi2041/zhouyi/internal/core/calendar"
	"github.com/koriyoshi2041/zhouyi/internal/core/cast"
	"github.com/koriyoshi2041/zhouyi/internal/core/hexagram"
	"github.com/koriyoshi2041/zhouyi/internal/core/reading"
	"github.com/koriyoshi2041/zhouyi/internal/core/trigram"
	"github.com/koriyoshi2041/zhouyi/internal/platform/assets/catalog"
	platformerrors "github.com/koriyoshi2041/zhouyi/internal/platform/errors"
	"github.com/koriyoshi2041/zhouyi/internal/random"
)

// Question is the context shared by casts and analyses.
type Question struct {
	// Text is the question asked, recorded verbatim.
	Text     string
	Category reading.Category
	// Palace overrides the catalog palace when valid.
	Palace trigram.Trigram
	// At is the moment of the reading. Nil means now.
	At *time.Time
}

// CastRequest asks for a new cast.
type CastRequest struct {
	Question
	Method cast.Method
	// Seed replays a coin or yarrow cast. Nil draws a fresh seed.
	Seed *int64
	// Numbers holds the two numbers of the number method.
	Numbers []int
	// Tosses holds six groups of three coins for the manual method.
	Tosses [][]bool
}

// AnalyzeRequest annotates line values cast elsewhere.
type AnalyzeRequest struct {
	Question
	Values [6]hexagram.LineValue
}

// Cast runs the requested generator and annotates the result.
func (s *Service) Cast(ctx context.Context, req CastRequest) (Reading, error) {
	ctx, span := s.tracer.Start(ctx, "divination.Cast", trace.WithAttributes(
		attribute.String("method", req.Method.String()),
	))
	defer span.End()

	if err := checkContext(ctx); err != nil {
		return Reading{}, s.fail(span, "cast", err)
	}

	at := s.resolveTime(req.At)
	var (
		values [6]hexagram.LineValue
		seed   *random.Seed
		err    error
	)
	switch req.Method {
	case cast.MethodCoin, cast.MethodYarrow:
		resolved, seedErr := random.ResolveSeed(req.Seed, s.seeds)
		if seedErr != nil {
			return Reading{}, s.fail(span, "cast", seedErr)
		}
		seed = &resolved
		src := cast.NewSource(resolved.Value)
		if req.Method == cast.MethodCoin {
			values = cast.Coin(src)
		} else {
			values = cast.Yarrow(src)
		}
		span.SetAttributes(attribute.String("seed_source", string(resolved.Source)))
	case cast.MethodNumber:
		if len(req.Numbers) != 2 {
			err = platformerrors.WithMetadata(platformerrors.CodeInputShape,
				"number method needs two numbers, got "+strconv.Itoa(len(req.Numbers)),
				map[string]string{"Expected": "2", "Actual": strconv.Itoa(len(req.Numbers))})
			break
		}
		values = cast.Number(req.Numbers[0], req.Numbers[1])
	case cast.MethodTime:
		values, err = cast.Time(at.Year(), int(at.Month()), at.Day(), at.Hour())
	case cast.MethodManual:
		values, err = cast.Manual(req.Tosses)
	default:
		err = withInput(platformerrors.CodeInvalidMethod, "Method", req.Method.String(), cast.ErrUnknownMethod)
	}
	if err != nil {
		return Reading{}, s.fail(span, "cast", err)
	}

	result, err := s.build(ctx, span, values, req.Question, at)
	if err != nil {
		return Reading{}, s.fail(span, "cast", err)
	}
	result.Method = req.Method.String()
	result.Seed = seed

	fields := []zap.Field{
		zap.String("reading_id", result.ID),
		zap.String("method", result.Method),
		zap.String("pattern", result.Original.Key),
		zap.Ints("changing", result.Changing),
	}
	if seed != nil {
		fields = append(fields, zap.String("seed_source", string(seed.Source)), zap.Int64("seed", seed.Value))
	}
	s.logger.Info("cast", fields...)
	return result, nil
}

// Analyze annotates caller supplied line values.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (Reading, error) {
	ctx, span := s.tracer.Start(ctx, "divination.Analyze")
	defer span.End()

	if err := checkContext(ctx); err != nil {
		return Reading{}, s.fail(span, "analyze", err)
	}
	result, err := s.build(ctx, span, req.Values, req.Question, s.resolveTime(req.At))
	if err != nil {
		return Reading{}, s.fail(span, "analyze", err)
	}
	s.logger.Info("analyze",
		zap.String("reading_id", result.ID),
		zap.String("pattern", result.Original.Key),
		zap.Ints("changing", result.Changing),
	)
	return result, nil
}

func (s *Service) build(_ context.Context, span trace.Span, values [6]hexagram.LineValue, q Question, at time.Time) (Reading, error) {
	moment := calendar.Describe(at)
	analysis, err := reading.Analyze(values, reading.Context{
		Day:      moment.Day,
		Month:    moment.Month,
		Category: q.Category,
		Palace:   q.Palace,
	}, s.catalog.Structures())
	if err != nil {
		return Reading{}, err
	}

	original, err := s.entry(analysis.Original)
	if err != nil {
		return Reading{}, err
	}
	mirror, err := s.entry(analysis.Mirror)
	if err != nil {
		return Reading{}, err
	}
	var changed *catalog.Hexagram
	if analysis.Changed != nil {
		entry, err := s.entry(*analysis.Changed)
		if err != nil {
			return Reading{}, err
		}
		changed = &entry
	}

	span.SetAttributes(
		attribute.String("pattern", analysis.Original.String()),
		attribute.Int("changing", len(analysis.Changing)),
	)
	return s.view(analysis, moment, strings.TrimSpace(q.Text), original, changed, mirror), nil
}

// entry finds the catalog entry for a derived pattern. A miss means the
// catalog is incomplete.
func (s *Service) entry(p hexagram.Pattern) (catalog.Hexagram, error) {
	h, ok := s.catalog.ByPattern(p)
	if !ok {
		return catalog.Hexagram{}, fmt.Errorf("%w: catalog has no entry for %s", hexagram.ErrLookupMiss, p)
	}
	return h, nil
}

func (s *Service) view(r reading.Result, moment calendar.Moment, question string, original catalog.Hexagram, changed *catalog.Hexagram, mirror catalog.Hexagram) Reading {
	out := Reading{
		ID:       s.newID(),
		Question: question,
		Moment:   moment,
		Values:   make([]int, 0, 6),
		Original: hexagramView(original),
		Mirror:   hexagramView(mirror),
		Palace:   r.Palace.String(),
		Ruling:   r.Ruling,
		Response: r.Response,
		Void:     make([]string, 0, len(r.Void)),
		Changing: append([]int{}, r.Changing...),
		Rule:     r.Rule.Text,
		Consult:  make([]ReferenceView, 0, len(r.Consult)),
		Lines:    make([]LineView, 0, 6),
		Analysis: r,
	}
	for _, v := range r.Values {
		out.Values = append(out.Values, int(v))
	}
	if changed != nil {
		view := hexagramView(*changed)
		out.Changed = &view
	}
	for _, b := range r.Void {
		out.Void = append(out.Void, b.String())
	}
	for _, ref := range r.Consult {
		out.Consult = append(out.Consult, ReferenceView{
			Target: ref.Target.String(),
			Kind:   ref.Kind.String(),
			Line:   ref.Line,
			Label:  ref.Label,
			Text:   referenceText(ref, original, changed),
		})
	}
	for i, line := range r.Lines {
		out.Lines = append(out.Lines, LineView{
			Position:    line.Position,
			Value:       int(line.Value),
			Yang:        line.Polarity == hexagram.Yang,
			Changing:    line.Changing,
			Stem:        line.Stem.String(),
			Branch:      line.Branch.String(),
			Element:     line.Element.String(),
			ElementKey:  line.Element.Key(),
			Role:        line.Role.String(),
			RoleKey:     line.Role.Key(),
			Guardian:    line.Guardian.String(),
			GuardianKey: line.Guardian.Key(),
			Ruling:      line.Ruling,
			Mirror:      line.Mirror,
			Void:        line.Void,
			Label:       original.Lines[i].Label,
			Text:        original.Lines[i].Text,
		})
	}
	if r.Category != reading.CategoryUnspecified {
		out.Category = r.Category.String()
		out.UsefulLine = r.UsefulLine
	}
	for _, a := range r.Approximations {
		out.Approximations = append(out.Approximations, string(a))
	}
	return out
}
