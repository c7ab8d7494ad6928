package app

import (
	"context"
	"errors"
	"strconv"

	"github.com/koriyoshi2041/zhouyi/internal/core/calendar"
	"github.com/koriyoshi2041/zhouyi/internal/core/cast"
	"github.com/koriyoshi2041/zhouyi/internal/core/hexagram"
	"github.com/koriyoshi2041/zhouyi/internal/core/reading"
	"github.com/koriyoshi2041/zhouyi/internal/core/trigram"
	"github.com/koriyoshi2041/zhouyi/internal/platform/assets/catalog"
	platformerrors "github.com/koriyoshi2041/zhouyi/internal/platform/errors"
)

// Classify converts a core error into a *platformerrors.Error carrying a
// stable code. Errors already classified pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var domainErr *platformerrors.Error
	if errors.As(err, &domainErr) {
		return err
	}

	var shapeErr *cast.InputShapeError
	if errors.As(err, &shapeErr) {
		return platformerrors.WrapWithMetadata(platformerrors.CodeInputShape, err.Error(), map[string]string{
			"Expected": strconv.Itoa(shapeErr.Expected),
			"Actual":   strconv.Itoa(shapeErr.Actual),
		}, err)
	}

	var hourErr *cast.HourError
	if errors.As(err, &hourErr) {
		return withInput(platformerrors.CodeInvalidHour, "Hour", strconv.Itoa(hourErr.Hour), err)
	}
	if errors.Is(err, cast.ErrInvalidTrials) {
		return invalidTrials(err)
	}

	code := platformerrors.CodeUnknown
	switch {
	case errors.Is(err, cast.ErrInputShape):
		code = platformerrors.CodeInputShape
	case errors.Is(err, hexagram.ErrInvalidLineValue):
		code = platformerrors.CodeInvalidLineValue
	case errors.Is(err, hexagram.ErrInvalidPattern):
		code = platformerrors.CodeInvalidPattern
	case errors.Is(err, calendar.ErrInvalidDate):
		code = platformerrors.CodeInvalidDate
	case errors.Is(err, cast.ErrInvalidHour):
		code = platformerrors.CodeInvalidHour
	case errors.Is(err, cast.ErrUnknownMethod):
		code = platformerrors.CodeInvalidMethod
	case errors.Is(err, reading.ErrUnknownCategory):
		code = platformerrors.CodeInvalidCategory
	case errors.Is(err, trigram.ErrUnknownTrigram):
		code = platformerrors.CodeInvalidTrigram
	case errors.Is(err, cast.ErrNotRandom):
		code = platformerrors.CodeNotRandom
	case errors.Is(err, catalog.ErrNotFound):
		code = platformerrors.CodeHexagramNotFound
	case errors.Is(err, hexagram.ErrLookupMiss):
		code = platformerrors.CodeLookupMiss
	case errors.Is(err, catalog.ErrInvalidCatalog):
		code = platformerrors.CodeCatalogInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		code = platformerrors.CodeCanceled
	}
	return platformerrors.Wrap(code, err.Error(), err)
}

func withInput(code platformerrors.Code, key, value string, err error) error {
	return platformerrors.WrapWithMetadata(code, err.Error(), map[string]string{key: value}, err)
}
