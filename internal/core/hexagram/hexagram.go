// Package hexagram identifies six-line figures and derives the changed and
// mirror hexagrams from a cast.
//
// Lines are always indexed bottom first: index 0 is the first line and
// index 5 the top line. The lower trigram is lines 0..2 and the upper
// trigram is lines 3..5.
package hexagram

import (
	"errors"
	"fmt"
	"strings"

	"github.com/koriyoshi2041/zhouyi/internal/core/trigram"
)

var (
	// ErrInvalidLineValue indicates a line value outside 6, 7, 8 and 9.
	ErrInvalidLineValue = errors.New("line value must be 6, 7, 8 or 9")
	// ErrInvalidPattern indicates a pattern key that is not six '0'/'1' characters.
	ErrInvalidPattern = errors.New("pattern must be six characters of 0 or 1")
	// ErrLookupMiss indicates a closed-domain table lookup failed. It signals
	// a defect in the tables, not bad input.
	ErrLookupMiss = errors.New("hexagram table lookup miss")
)

// LineValue is the numeric result of casting one line.
type LineValue int

const (
	// OldYin is a yin line that changes to yang.
	OldYin LineValue = 6
	// YoungYang is a stable yang line.
	YoungYang LineValue = 7
	// YoungYin is a stable yin line.
	YoungYin LineValue = 8
	// OldYang is a yang line that changes to yin.
	OldYang LineValue = 9
)

// LineValues lists the four line values in ascending order.
var LineValues = []LineValue{OldYin, YoungYang, YoungYin, OldYang}

// Valid reports whether v is one of the four line values.
func (v LineValue) Valid() bool {
	return v >= OldYin && v <= OldYang
}

// Polarity returns the polarity of the line as cast.
func (v LineValue) Polarity() Polarity { return Classify(v) }

// Changing reports whether the line is an old line.
func (v LineValue) Changing() bool { return IsChanging(v) }

func (v LineValue) String() string {
	switch v {
	case OldYin:
		return "old yin"
	case YoungYang:
		return "young yang"
	case YoungYin:
		return "young yin"
	case OldYang:
		return "old yang"
	default:
		return fmt.Sprintf("LineValue(%d)", int(v))
	}
}

// Polarity is yin or yang.
type Polarity int

const (
	Yin Polarity = iota
	Yang
)

func (p Polarity) String() string {
	if p == Yang {
		return "yang"
	}
	return "yin"
}

// Flip returns the opposite polarity.
func (p Polarity) Flip() Polarity {
	if p == Yang {
		return Yin
	}
	return Yang
}

// Classify returns the polarity of a line value: 7 and 9 are yang, 6 and 8
// are yin. Callers validate values first; anything else reads as yin.
func Classify(v LineValue) Polarity {
	if v == YoungYang || v == OldYang {
		return Yang
	}
	return Yin
}

// IsChanging reports whether v is an old line (6 or 9).
func IsChanging(v LineValue) bool {
	return v == OldYin || v == OldYang
}

// Validate checks that every value is one of the four line values.
func Validate(values [6]LineValue) error {
	for i, v := range values {
		if !v.Valid() {
			return fmt.Errorf("%w: line %d is %d", ErrInvalidLineValue, i+1, int(v))
		}
	}
	return nil
}

// ParseValues reads six line values from a string such as "789876" or
// "7,8,9,8,7,6", bottom line first.
func ParseValues(raw string) ([6]LineValue, error) {
	var values [6]LineValue
	cleaned := strings.NewReplacer(",", "", " ", "", "\t", "").Replace(strings.TrimSpace(raw))
	if len(cleaned) != 6 {
		return values, fmt.Errorf("%w: want 6 digits, got %q", ErrInvalidLineValue, raw)
	}
	for i := 0; i < 6; i++ {
		c := cleaned[i]
		if c < '0' || c > '9' {
			return values, fmt.Errorf("%w: %q is not a digit", ErrInvalidLineValue, c)
		}
		values[i] = LineValue(c - '0')
	}
	if err := Validate(values); err != nil {
		return values, err
	}
	return values, nil
}

// Pattern is a six-line figure, bottom line first.
type Pattern [6]Polarity

// Polarities maps each line value to its polarity.
func Polarities(values [6]LineValue) Pattern {
	var p Pattern
	for i, v := range values {
		p[i] = Classify(v)
	}
	return p
}

// String returns the canonical key: six '0'/'1' characters, bottom first.
func (p Pattern) String() string {
	var sb strings.Builder
	sb.Grow(6)
	for _, line := range p {
		if line == Yang {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParsePattern parses a canonical key.
func ParsePattern(key string) (Pattern, error) {
	var p Pattern
	if len(key) != 6 {
		return p, fmt.Errorf("%w: %q", ErrInvalidPattern, key)
	}
	for i := 0; i < 6; i++ {
		switch key[i] {
		case '0':
			p[i] = Yin
		case '1':
			p[i] = Yang
		default:
			return p, fmt.Errorf("%w: %q", ErrInvalidPattern, key)
		}
	}
	return p, nil
}

// FromTrigrams builds the pattern with lower occupying lines 1..3.
func FromTrigrams(lower, upper trigram.Trigram) Pattern {
	var p Pattern
	for i, yang := range lower.Lines() {
		if yang {
			p[i] = Yang
		}
	}
	for i, yang := range upper.Lines() {
		if yang {
			p[i+3] = Yang
		}
	}
	return p
}

func half(lines [3]Polarity) trigram.Trigram {
	return trigram.FromLines([3]bool{lines[0] == Yang, lines[1] == Yang, lines[2] == Yang})
}

// Lower returns the trigram formed by lines 1..3.
func (p Pattern) Lower() trigram.Trigram {
	return half([3]Polarity{p[0], p[1], p[2]})
}

// Upper returns the trigram formed by lines 4..6.
func (p Pattern) Upper() trigram.Trigram {
	return half([3]Polarity{p[3], p[4], p[5]})
}

// Identity names the two trigrams of a pattern.
type Identity struct {
	Pattern Pattern
	Lower   trigram.Trigram
	Upper   trigram.Trigram
}

// Identify splits p into its lower and upper trigrams. Every pattern
// resolves; ErrLookupMiss is returned only if the trigram table is broken.
func Identify(p Pattern) (Identity, error) {
	lower, upper := p.Lower(), p.Upper()
	if !lower.Valid() || !upper.Valid() {
		return Identity{}, fmt.Errorf("%w: %s", ErrLookupMiss, p)
	}
	return Identity{Pattern: p, Lower: lower, Upper: upper}, nil
}

// Changed returns the pattern after every old line has turned: 9 becomes
// yin, 6 becomes yang, 7 and 8 keep their polarity. The bool is false when
// no line changes, in which case there is no changed hexagram.
//
// # Idempotence
//
// Applying Changed to the stable values of the result (7 for yang, 8 for
// yin) yields no further change.
func Changed(values [6]LineValue) (Pattern, bool) {
	var p Pattern
	changed := false
	for i, v := range values {
		switch v {
		case OldYang:
			p[i] = Yin
			changed = true
		case OldYin:
			p[i] = Yang
			changed = true
		default:
			p[i] = Classify(v)
		}
	}
	return p, changed
}

// Stable returns the young line values that spell p.
func Stable(p Pattern) [6]LineValue {
	var out [6]LineValue
	for i, line := range p {
		if line == Yang {
			out[i] = YoungYang
		} else {
			out[i] = YoungYin
		}
	}
	return out
}

// Mirror returns the nuclear hexagram: lines 2..4 become the lower trigram
// and lines 3..5 the upper trigram.
func Mirror(p Pattern) Pattern {
	return Pattern{p[1], p[2], p[3], p[2], p[3], p[4]}
}

// ChangingLines returns the 1-based positions of the old lines, ascending.
func ChangingLines(values [6]LineValue) []int {
	positions := make([]int, 0, 6)
	for i, v := range values {
		if IsChanging(v) {
			positions = append(positions, i+1)
		}
	}
	return positions
}

// All returns the 64 patterns in key order from 000000 to 111111 read
// bottom line as the least significant bit.
func All() []Pattern {
	out := make([]Pattern, 0, 64)
	for n := 0; n < 64; n++ {
		var p Pattern
		for i := 0; i < 6; i++ {
			if n&(1<<i) != 0 {
				p[i] = Yang
			}
		}
		out = append(out, p)
	}
	return out
}
