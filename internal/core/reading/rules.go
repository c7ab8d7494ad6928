package reading

import "fmt"

// Rule states which texts govern a reading with a given number of
// changing lines.
type Rule struct {
	Changing int
	Text     string
}

var ruleTexts = [7]string{
	"无变爻（静卦），以本卦卦辞断。",
	"一爻变，以本卦变爻之爻辞断。",
	"两爻变，以本卦两变爻爻辞断，上爻为主。",
	"三爻变，以本卦卦辞和之卦卦辞断，本卦为主。",
	"四爻变，以之卦两不变爻爻辞断，下爻为主。",
	"五爻变，以之卦不变爻之爻辞断。",
	"六爻全变。乾坤看用九/用六，其他看之卦卦辞。",
}

// RuleFor returns the rule for count changing lines. Counts outside 0..6
// yield a rule with empty text.
func RuleFor(count int) Rule {
	if count < 0 || count >= len(ruleTexts) {
		return Rule{Changing: count}
	}
	return Rule{Changing: count, Text: ruleTexts[count]}
}

// Target names which hexagram a reference points into.
type Target int

const (
	TargetNone Target = iota
	TargetOriginal
	TargetChanged
)

func (t Target) String() string {
	switch t {
	case TargetOriginal:
		return "original"
	case TargetChanged:
		return "changed"
	default:
		return "none"
	}
}

// ReferenceKind distinguishes what a reference asks the reader to consult.
type ReferenceKind int

const (
	ReferenceNote ReferenceKind = iota
	ReferenceJudgment
	ReferenceLine
	ReferenceAllChanging
)

func (k ReferenceKind) String() string {
	switch k {
	case ReferenceJudgment:
		return "judgment"
	case ReferenceLine:
		return "line"
	case ReferenceAllChanging:
		return "all_changing"
	default:
		return "note"
	}
}

// Reference is one entry of the consult list. Line is set only for line
// references.
type Reference struct {
	Target Target
	Kind   ReferenceKind
	Line   int
	Label  string
}

func judgment(target Target) Reference {
	label := "本卦卦辞"
	if target == TargetChanged {
		label = "之卦卦辞"
	}
	return Reference{Target: target, Kind: ReferenceJudgment, Label: label}
}

func lineText(target Target, position int) Reference {
	prefix := "本卦"
	if target == TargetChanged {
		prefix = "之卦"
	}
	return Reference{
		Target: target,
		Kind:   ReferenceLine,
		Line:   position,
		Label:  fmt.Sprintf("%s第%d爻爻辞", prefix, position),
	}
}

func note(label string) Reference {
	return Reference{Kind: ReferenceNote, Label: label}
}

// Consult lists the texts to read for a cast whose changing lines are at
// positions (1-based, ascending).
//
// # Selection
//
//   - 0: the original judgment.
//   - 1: the changing line of the original.
//   - 2: both changing lines of the original, the upper one primary.
//   - 3: both judgments, the original primary.
//   - 4: the two unchanged lines of the changed hexagram, the lower primary.
//   - 5: the single unchanged line of the changed hexagram.
//   - 6: the all-changing text for 乾 and 坤, the changed judgment otherwise.
func Consult(positions []int) []Reference {
	switch len(positions) {
	case 0:
		return []Reference{judgment(TargetOriginal)}
	case 1:
		return []Reference{lineText(TargetOriginal, positions[0])}
	case 2:
		return []Reference{
			lineText(TargetOriginal, positions[0]),
			lineText(TargetOriginal, positions[1]),
			note("(以上爻为主)"),
		}
	case 3:
		return []Reference{
			judgment(TargetOriginal),
			judgment(TargetChanged),
			note("(以本卦为主)"),
		}
	case 4:
		refs := make([]Reference, 0, 3)
		for _, p := range unchanged(positions) {
			refs = append(refs, lineText(TargetChanged, p))
		}
		return append(refs, note("(以下爻为主)"))
	case 5:
		rest := unchanged(positions)
		if len(rest) != 1 {
			return nil
		}
		return []Reference{lineText(TargetChanged, rest[0])}
	case 6:
		return []Reference{{Target: TargetChanged, Kind: ReferenceAllChanging, Label: "乾坤看用九/用六，其他卦看之卦卦辞"}}
	default:
		return nil
	}
}

// unchanged returns the positions 1..6 missing from changing, ascending.
func unchanged(changing []int) []int {
	var moving [7]bool
	for _, p := range changing {
		if p >= 1 && p <= 6 {
			moving[p] = true
		}
	}
	out := make([]int, 0, 6)
	for p := 1; p <= 6; p++ {
		if !moving[p] {
			out = append(out, p)
		}
	}
	return out
}
