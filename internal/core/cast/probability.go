package cast

import (
	"context"

	"github.com/koriyoshi2041/zhouyi/internal/core/hexagram"
)

// ValueProbability is the chance of a single line taking Value.
type ValueProbability struct {
	Value       hexagram.LineValue `json:"value"`
	Probability float64            `json:"probability"`
}

// ProbabilityResult is the exact per-line distribution of a method.
type ProbabilityResult struct {
	Method Method             `json:"method"`
	Values []ValueProbability `json:"values"`
}

// Of returns the probability recorded for v.
func (r ProbabilityResult) Of(v hexagram.LineValue) float64 {
	for _, entry := range r.Values {
		if entry.Value == v {
			return entry.Probability
		}
	}
	return 0
}

// Distribution computes the exact probability of each line value for a
// randomized method by enumerating every equally likely draw.
//
// For coins that is the eight face combinations. For yarrow it is every
// split of every round, weighted by the uniform choice of the left heap.
func Distribution(method Method) (ProbabilityResult, error) {
	var weights map[int]float64
	switch method {
	case MethodCoin:
		weights = coinOutcomes()
	case MethodYarrow:
		finals := yarrowOutcomes(yarrowStalks, yarrowRounds, map[[2]int]map[int]float64{})
		weights = make(map[int]float64, len(finals))
		for pool, p := range finals {
			weights[pool/yarrowDivisor] += p
		}
	case MethodNumber, MethodTime, MethodManual:
		return ProbabilityResult{}, ErrNotRandom
	default:
		return ProbabilityResult{}, ErrUnknownMethod
	}

	values := make([]ValueProbability, 0, len(hexagram.LineValues))
	for _, v := range hexagram.LineValues {
		values = append(values, ValueProbability{Value: v, Probability: weights[int(v)]})
	}
	return ProbabilityResult{Method: method, Values: values}, nil
}

func coinOutcomes() map[int]float64 {
	const combinations = 1 << coinsPerLine
	out := make(map[int]float64)
	for mask := 0; mask < combinations; mask++ {
		sum := 0
		for coin := 0; coin < coinsPerLine; coin++ {
			if mask&(1<<coin) != 0 {
				sum += headFace
			} else {
				sum += tailFace
			}
		}
		out[sum] += 1.0 / combinations
	}
	return out
}

// yarrowOutcomes returns the distribution of the pool size after rounds
// more rounds starting from pool.
func yarrowOutcomes(pool, rounds int, memo map[[2]int]map[int]float64) map[int]float64 {
	if rounds == 0 {
		return map[int]float64{pool: 1}
	}
	key := [2]int{pool, rounds}
	if cached, ok := memo[key]; ok {
		return cached
	}
	out := make(map[int]float64)
	splits := pool - 1
	for left := 1; left <= splits; left++ {
		for final, p := range yarrowOutcomes(yarrowRound(pool, left), rounds-1, memo) {
			out[final] += p / float64(splits)
		}
	}
	memo[key] = out
	return out
}

// Tally counts line values observed over repeated casts.
type Tally struct {
	Method Method                     `json:"method"`
	Casts  int                        `json:"casts"`
	Counts map[hexagram.LineValue]int `json:"counts"`
}

// Lines returns the number of lines counted.
func (t Tally) Lines() int {
	total := 0
	for _, n := range t.Counts {
		total += n
	}
	return total
}

// Frequency returns the observed share of lines with value v.
func (t Tally) Frequency(v hexagram.LineValue) float64 {
	lines := t.Lines()
	if lines == 0 {
		return 0
	}
	return float64(t.Counts[v]) / float64(lines)
}

// Merge adds other's counts into t.
func (t *Tally) Merge(other Tally) {
	if t.Counts == nil {
		t.Counts = make(map[hexagram.LineValue]int, len(hexagram.LineValues))
	}
	t.Casts += other.Casts
	for v, n := range other.Counts {
		t.Counts[v] += n
	}
}

// cancelCheckEvery is how many casts run between context checks.
const cancelCheckEvery = 1024

// Simulate performs casts casts with method and counts every line value.
// It stops with ctx's error once ctx is done.
func Simulate(ctx context.Context, method Method, src Source, casts int) (Tally, error) {
	if casts <= 0 {
		return Tally{}, ErrInvalidTrials
	}
	var generate func(Source) [6]hexagram.LineValue
	switch method {
	case MethodCoin:
		generate = Coin
	case MethodYarrow:
		generate = Yarrow
	case MethodNumber, MethodTime, MethodManual:
		return Tally{}, ErrNotRandom
	default:
		return Tally{}, ErrUnknownMethod
	}

	tally := Tally{Method: method, Casts: casts, Counts: make(map[hexagram.LineValue]int, len(hexagram.LineValues))}
	for i := 0; i < casts; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Tally{}, err
			}
		}
		for _, v := range generate(src) {
			tally.Counts[v]++
		}
	}
	return tally, nil
}
