package app

import (
	"context"
	"errors"
	"time"

	"github.com/koriyoshi2041/zhouyi/internal/core/calendar"
	"github.com/koriyoshi2041/zhouyi/internal/core/trigram"
	"github.com/koriyoshi2041/zhouyi/internal/platform/assets/catalog"
	platformerrors "github.com/koriyoshi2041/zhouyi/internal/platform/errors"
)

// Lookup resolves a hexagram by number, name, pattern key or line values.
func (s *Service) Lookup(ctx context.Context, ref string) (HexagramView, error) {
	_, span := s.tracer.Start(ctx, "divination.Lookup")
	defer span.End()

	h, err := s.catalog.Resolve(ref)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			err = withInput(platformerrors.CodeHexagramNotFound, "Ref", ref, err)
		}
		return HexagramView{}, s.fail(span, "lookup", err)
	}
	return hexagramView(h), nil
}

// Palace lists the eight hexagrams of a palace in palace order.
func (s *Service) Palace(raw string) ([]HexagramView, error) {
	t, err := ParsePalace(raw)
	if err != nil {
		return nil, err
	}
	if !t.Valid() {
		return nil, withInput(platformerrors.CodeInvalidTrigram, "Trigram", raw, trigram.ErrUnknownTrigram)
	}
	members := s.catalog.Palace(t)
	out := make([]HexagramView, 0, len(members))
	for _, h := range members {
		out = append(out, hexagramView(h))
	}
	return out, nil
}

// Moment describes t in the service time zone. The zero time means now.
func (s *Service) Moment(t time.Time) calendar.Moment {
	return calendar.Describe(s.resolveTime(&t))
}
