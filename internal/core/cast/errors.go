package cast

import (
	"errors"
	"fmt"
)

var (
	// ErrInputShape indicates manual tosses with the wrong number of groups
	// or coins.
	ErrInputShape = errors.New("manual tosses must be 6 groups of 3 coins")
	// ErrInvalidHour indicates an hour outside 0..23.
	ErrInvalidHour = errors.New("hour must be between 0 and 23")
	// ErrUnknownMethod indicates a method label that names no generator.
	ErrUnknownMethod = errors.New("unknown casting method")
	// ErrNotRandom indicates a distribution was requested for a method
	// whose result is fixed by its inputs.
	ErrNotRandom = errors.New("method is not randomized")
	// ErrInvalidTrials indicates a simulation size out of range.
	ErrInvalidTrials = errors.New("invalid number of trials")
)

// InputShapeError describes which part of a manual toss record has the
// wrong size. Group is -1 when the number of groups is wrong.
type InputShapeError struct {
	Group    int
	Expected int
	Actual   int
}

func (e *InputShapeError) Error() string {
	if e.Group < 0 {
		return fmt.Sprintf("manual tosses: got %d groups, want %d", e.Actual, e.Expected)
	}
	return fmt.Sprintf("manual tosses: group %d has %d coins, want %d", e.Group+1, e.Actual, e.Expected)
}

// Is matches ErrInputShape.
func (e *InputShapeError) Is(target error) bool {
	return target == ErrInputShape
}

// HourError reports the hour rejected by Time.
type HourError struct {
	Hour int
}

func (e *HourError) Error() string {
	return fmt.Sprintf("hour %d must be between 0 and 23", e.Hour)
}

// Is matches ErrInvalidHour.
func (e *HourError) Is(target error) bool {
	return target == ErrInvalidHour
}
