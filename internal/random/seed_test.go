package random

import (
	"errors"
	"testing"
)

func TestNewSeedVaries(t *testing.T) {
	seen := map[int64]bool{}
	for i := 0; i < 8; i++ {
		seed, err := NewSeed()
		if err != nil {
			t.Fatalf("new seed: %v", err)
		}
		seen[seed] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected distinct seeds, got %v", seen)
	}
}

func TestResolveSeedPrefersClient(t *testing.T) {
	client := int64(42)
	seed, err := ResolveSeed(&client, func() (int64, error) {
		t.Fatal("generator must not run when the client supplies a seed")
		return 0, nil
	})
	if err != nil {
		t.Fatalf("resolve seed: %v", err)
	}
	if seed.Value != 42 || seed.Source != SeedSourceClient {
		t.Fatalf("seed = %+v, want client 42", seed)
	}
}

func TestResolveSeedGenerates(t *testing.T) {
	seed, err := ResolveSeed(nil, func() (int64, error) { return 7, nil })
	if err != nil {
		t.Fatalf("resolve seed: %v", err)
	}
	if seed.Value != 7 || seed.Source != SeedSourceGenerated {
		t.Fatalf("seed = %+v, want generated 7", seed)
	}
}

func TestResolveSeedDefaultGenerator(t *testing.T) {
	seed, err := ResolveSeed(nil, nil)
	if err != nil {
		t.Fatalf("resolve seed: %v", err)
	}
	if seed.Source != SeedSourceGenerated {
		t.Fatalf("source = %q, want generated", seed.Source)
	}
}

func TestResolveSeedPropagatesGeneratorError(t *testing.T) {
	boom := errors.New("entropy exhausted")
	if _, err := ResolveSeed(nil, func() (int64, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
