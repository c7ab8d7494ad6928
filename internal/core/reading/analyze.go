package reading

import (
	"fmt"

	"github.com/koriyoshi2041/zhouyi/internal/core/element"
	"github.com/koriyoshi2041/zhouyi/internal/core/ganzhi"
	"github.com/koriyoshi2041/zhouyi/internal/core/hexagram"
	"github.com/koriyoshi2041/zhouyi/internal/core/trigram"
)

const (
	// DefaultRuling is the ruling line assumed when a pattern has no
	// recorded structure.
	DefaultRuling = 6
	// DefaultMirror is the mirror line assumed when a pattern has no
	// recorded structure.
	DefaultMirror = 3
)

// Approximation names a documented fallback applied during analysis.
type Approximation string

const (
	// ApproxPalaceFromUpper means the upper trigram stood in for the palace.
	ApproxPalaceFromUpper Approximation = "palace_from_upper_trigram"
	// ApproxDefaultRulingMirror means lines 6 and 3 stood in for the
	// recorded ruling and mirror lines.
	ApproxDefaultRulingMirror Approximation = "default_ruling_mirror"
)

// Structure is the structural record of a hexagram: its palace and the
// positions of its ruling and mirror lines.
type Structure struct {
	Palace trigram.Trigram
	Ruling int
	Mirror int
}

// Valid reports whether s names a palace and two positions in 1..6.
func (s Structure) Valid() bool {
	return s.Palace.Valid() && s.Ruling >= 1 && s.Ruling <= 6 && s.Mirror >= 1 && s.Mirror <= 6
}

// StructureLookup returns the recorded structure for a pattern key.
type StructureLookup interface {
	Structure(key string) (Structure, bool)
}

// StructureFunc adapts a function to StructureLookup.
type StructureFunc func(key string) (Structure, bool)

// Structure calls f.
func (f StructureFunc) Structure(key string) (Structure, bool) { return f(key) }

// Context carries the calendrical and question inputs of a reading.
type Context struct {
	Day      ganzhi.Pair
	Month    ganzhi.Branch
	Category Category
	// Palace overrides the palace trigram when valid.
	Palace trigram.Trigram
}

// Line is the annotation of one line.
type Line struct {
	Position int
	Value    hexagram.LineValue
	Polarity hexagram.Polarity
	Changing bool
	Stem     ganzhi.Stem
	Branch   ganzhi.Branch
	Element  element.Element
	Role     Role
	Guardian Guardian
	Ruling   bool
	Mirror   bool
	Void     bool
}

// Result is a fully annotated reading.
type Result struct {
	Values   [6]hexagram.LineValue
	Original hexagram.Pattern
	// Changed is nil when no line changes.
	Changed  *hexagram.Pattern
	Mirror   hexagram.Pattern
	Upper    trigram.Trigram
	Lower    trigram.Trigram
	Palace   trigram.Trigram
	Ruling   int
	Response int
	Day      ganzhi.Pair
	Month    ganzhi.Branch
	Void     []ganzhi.Branch
	Changing []int
	Rule     Rule
	Consult  []Reference
	Lines    [6]Line
	Category Category
	// UsefulLine is the 1-based position answering Category, or 0.
	UsefulLine     int
	Approximations []Approximation
}

// Approximated reports whether fallback a was applied.
func (r Result) Approximated(a Approximation) bool {
	for _, applied := range r.Approximations {
		if applied == a {
			return true
		}
	}
	return false
}

// Analyze annotates values under ctx. structures may be nil, in which case
// every structural field falls back and the fallback is recorded.
//
// # Palace
//
// The palace is ctx.Palace when valid, else the recorded palace, else the
// upper trigram.
//
// # Errors
//
// Values outside 6..9 fail with hexagram.ErrInvalidLineValue. A trigram
// table miss fails with hexagram.ErrLookupMiss and indicates a defect.
func Analyze(values [6]hexagram.LineValue, ctx Context, structures StructureLookup) (Result, error) {
	if err := hexagram.Validate(values); err != nil {
		return Result{}, err
	}
	original := hexagram.Polarities(values)
	id, err := hexagram.Identify(original)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Values:   values,
		Original: original,
		Mirror:   hexagram.Mirror(original),
		Upper:    id.Upper,
		Lower:    id.Lower,
		Day:      ctx.Day,
		Month:    ctx.Month,
		Void:     ganzhi.EmptyBranches(ctx.Day),
		Changing: hexagram.ChangingLines(values),
		Category: ctx.Category,
	}
	if changed, ok := hexagram.Changed(values); ok {
		result.Changed = &changed
	}

	structure, found := Structure{}, false
	if structures != nil {
		structure, found = structures.Structure(original.String())
		if found && !structure.Valid() {
			found = false
		}
	}
	switch {
	case ctx.Palace.Valid():
		result.Palace = ctx.Palace
	case found:
		result.Palace = structure.Palace
	default:
		result.Palace = id.Upper
		result.Approximations = append(result.Approximations, ApproxPalaceFromUpper)
	}
	if found {
		result.Ruling, result.Response = structure.Ruling, structure.Mirror
	} else {
		result.Ruling, result.Response = DefaultRuling, DefaultMirror
		result.Approximations = append(result.Approximations, ApproxDefaultRulingMirror)
	}

	guardians := Guardians(ctx.Day.Stem)
	palaceElement := result.Palace.Element()
	for i, v := range values {
		half, index := id.Lower, i
		if i >= 3 {
			half, index = id.Upper, i-3
		}
		planted, ok := half.Planting(index)
		if !ok {
			return Result{}, fmt.Errorf("%w: planting %s[%d]", hexagram.ErrLookupMiss, half, index)
		}
		lineElement := planted.Branch.Element()
		position := i + 1
		result.Lines[i] = Line{
			Position: position,
			Value:    v,
			Polarity: hexagram.Classify(v),
			Changing: hexagram.IsChanging(v),
			Stem:     planted.Stem,
			Branch:   planted.Branch,
			Element:  lineElement,
			Role:     Relate(palaceElement, lineElement),
			Guardian: guardians[i],
			Ruling:   position == result.Ruling,
			Mirror:   position == result.Response,
			Void:     ganzhi.IsVoid(ctx.Day, planted.Branch),
		}
	}

	result.Rule = RuleFor(len(result.Changing))
	result.Consult = Consult(result.Changing)
	if position, ok := UsefulLine(result.Lines[:], ctx.Category); ok {
		result.UsefulLine = position
	}
	return result, nil
}
