// Package random resolves the seeds that drive randomized casting.
//
// Generated seeds come from crypto/rand. A caller may supply its own seed
// to replay a cast exactly; the resolved seed records which of the two
// happened.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// SeedSource records where a seed came from.
type SeedSource string

const (
	// SeedSourceClient marks a seed supplied by the caller.
	SeedSourceClient SeedSource = "client"
	// SeedSourceGenerated marks a seed drawn from crypto/rand.
	SeedSourceGenerated SeedSource = "generated"
)

// Seed is a resolved seed and its provenance.
type Seed struct {
	Value  int64      `json:"value"`
	Source SeedSource `json:"source"`
}

// Generator produces fresh seeds.
type Generator func() (int64, error)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns the client seed when one is given, otherwise a seed
// from generate. A nil generator falls back to NewSeed.
func ResolveSeed(client *int64, generate Generator) (Seed, error) {
	if client != nil {
		return Seed{Value: *client, Source: SeedSourceClient}, nil
	}
	if generate == nil {
		generate = NewSeed
	}
	value, err := generate()
	if err != nil {
		return Seed{}, err
	}
	return Seed{Value: value, Source: SeedSourceGenerated}, nil
}
