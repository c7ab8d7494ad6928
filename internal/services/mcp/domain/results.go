package domain

import (
	"time"

	"github.com/koriyoshi2041/zhouyi/internal/core/calendar"
	"github.com/koriyoshi2041/zhouyi/internal/services/divination/app"
)

// HexagramLine is one line text of a hexagram.
type HexagramLine struct {
	Label       string `json:"label" jsonschema:"traditional line label such as 初九"`
	Text        string `json:"text" jsonschema:"classical line text"`
	Translation string `json:"translation,omitempty" jsonschema:"English rendering, when the catalog has one"`
}

// HexagramResult represents a catalog entry in MCP output.
type HexagramResult struct {
	Number              int            `json:"number" jsonschema:"King Wen sequence number, 1 to 64"`
	Name                string         `json:"name" jsonschema:"short Chinese name"`
	FullName            string         `json:"full_name" jsonschema:"full Chinese name including trigram images"`
	English             string         `json:"english" jsonschema:"English name"`
	Key                 string         `json:"key" jsonschema:"six binary digits, bottom line first, 1 for yang"`
	Symbol              string         `json:"symbol" jsonschema:"Unicode hexagram symbol"`
	Upper               string         `json:"upper" jsonschema:"upper trigram"`
	Lower               string         `json:"lower" jsonschema:"lower trigram"`
	Palace              string         `json:"palace" jsonschema:"palace trigram"`
	PalaceOrder         int            `json:"palace_order" jsonschema:"position within the palace, 1 to 8"`
	Ruling              int            `json:"ruling" jsonschema:"ruling line position"`
	Mirror              int            `json:"mirror" jsonschema:"response line position"`
	Judgment            string         `json:"judgment" jsonschema:"judgment text"`
	JudgmentTranslation string         `json:"judgment_translation,omitempty" jsonschema:"English judgment, when available"`
	Image               string         `json:"image" jsonschema:"image text"`
	Lines               []HexagramLine `json:"lines" jsonschema:"line texts, bottom first"`
	AllChanging         string         `json:"all_changing,omitempty" jsonschema:"text used when all six lines change"`
	Keywords            []string       `json:"keywords,omitempty" jsonschema:"keywords"`
}

// MomentResult represents the stem-branch labels of a moment.
type MomentResult struct {
	Time     string `json:"time" jsonschema:"RFC 3339 time in the server time zone"`
	Day      string `json:"day" jsonschema:"day pillar"`
	Month    string `json:"month" jsonschema:"month branch"`
	Hour     string `json:"hour" jsonschema:"double hour branch"`
	HourSpan string `json:"hour_span" jsonschema:"double hour label with its clock span"`
	Display  string `json:"display" jsonschema:"full display string"`
}

// ReadingLine represents one annotated line.
type ReadingLine struct {
	Position int    `json:"position" jsonschema:"line position, 1 at the bottom"`
	Value    int    `json:"value" jsonschema:"line value 6, 7, 8 or 9"`
	Yang     bool   `json:"yang" jsonschema:"whether the line is yang"`
	Changing bool   `json:"changing" jsonschema:"whether the line changes"`
	Stem     string `json:"stem" jsonschema:"planted heavenly stem"`
	Branch   string `json:"branch" jsonschema:"planted earthly branch"`
	Element  string `json:"element" jsonschema:"element key of the branch"`
	Role     string `json:"role" jsonschema:"six relations role key"`
	Guardian string `json:"guardian" jsonschema:"six spirits guardian key"`
	Ruling   bool   `json:"ruling,omitempty" jsonschema:"whether this is the ruling line"`
	Mirror   bool   `json:"mirror,omitempty" jsonschema:"whether this is the response line"`
	Void     bool   `json:"void,omitempty" jsonschema:"whether the branch is void for the day"`
	Label    string `json:"label" jsonschema:"traditional line label"`
	Text     string `json:"text" jsonschema:"line text of the original hexagram"`
}

// ConsultEntry represents one text the reading rule points at.
type ConsultEntry struct {
	Target string `json:"target,omitempty" jsonschema:"original or changed"`
	Kind   string `json:"kind" jsonschema:"judgment, line, all_changing or note"`
	Line   int    `json:"line,omitempty" jsonschema:"line position for line references"`
	Label  string `json:"label" jsonschema:"display label"`
	Text   string `json:"text,omitempty" jsonschema:"referenced text"`
}

// SeedResult records the seed of a randomized cast.
type SeedResult struct {
	Value  int64  `json:"value" jsonschema:"seed value; pass it back to replay the cast"`
	Source string `json:"source" jsonschema:"client or generated"`
}

// ReadingResult represents the MCP tool output for a cast or analysis.
type ReadingResult struct {
	ID             string          `json:"id" jsonschema:"reading identifier"`
	Question       string          `json:"question,omitempty" jsonschema:"question as asked"`
	Method         string          `json:"method,omitempty" jsonschema:"casting method"`
	Seed           *SeedResult     `json:"seed,omitempty" jsonschema:"seed for coin and yarrow casts"`
	Moment         MomentResult    `json:"moment" jsonschema:"moment of the reading"`
	Values         []int           `json:"values" jsonschema:"line values, bottom first"`
	Original       HexagramResult  `json:"original" jsonschema:"original hexagram"`
	Changed        *HexagramResult `json:"changed,omitempty" jsonschema:"changed hexagram when any line changes"`
	Mirror         HexagramResult  `json:"mirror" jsonschema:"nuclear hexagram"`
	Palace         string          `json:"palace" jsonschema:"palace trigram"`
	Ruling         int             `json:"ruling" jsonschema:"ruling line position"`
	Response       int             `json:"response" jsonschema:"response line position"`
	Void           []string        `json:"void" jsonschema:"void branches of the day"`
	Changing       []int           `json:"changing" jsonschema:"changing line positions"`
	Rule           string          `json:"rule" jsonschema:"interpretation rule for the changing line count"`
	Consult        []ConsultEntry  `json:"consult" jsonschema:"texts to consult, primary first"`
	Lines          []ReadingLine   `json:"lines" jsonschema:"annotated lines, bottom first"`
	Category       string          `json:"category,omitempty" jsonschema:"question category"`
	UsefulLine     int             `json:"useful_line,omitempty" jsonschema:"position of the useful line"`
	Approximations []string        `json:"approximations,omitempty" jsonschema:"fallbacks applied while annotating"`
}

// ProbabilityValue compares the exact and simulated share of a line value.
type ProbabilityValue struct {
	Value     int     `json:"value" jsonschema:"line value"`
	Label     string  `json:"label" jsonschema:"line value name"`
	Exact     float64 `json:"exact" jsonschema:"exact probability"`
	Count     int     `json:"count" jsonschema:"simulated occurrences"`
	Observed  float64 `json:"observed" jsonschema:"simulated share"`
	Deviation float64 `json:"deviation" jsonschema:"observed minus exact"`
}

// ProbabilityResult represents the MCP tool output for line probabilities.
type ProbabilityResult struct {
	Method  string             `json:"method" jsonschema:"casting method"`
	Seed    SeedResult         `json:"seed" jsonschema:"seed of the simulation"`
	Trials  int                `json:"trials" jsonschema:"simulated casts"`
	Lines   int                `json:"lines" jsonschema:"simulated lines"`
	Workers int                `json:"workers" jsonschema:"parallel workers used"`
	Values  []ProbabilityValue `json:"values" jsonschema:"per value comparison"`
}

func hexagramResult(h app.HexagramView) HexagramResult {
	lines := make([]HexagramLine, 0, len(h.Lines))
	for _, line := range h.Lines {
		lines = append(lines, HexagramLine{Label: line.Label, Text: line.Text, Translation: line.Translation})
	}
	return HexagramResult{
		Number:              h.Number,
		Name:                h.Name,
		FullName:            h.FullName,
		English:             h.English,
		Key:                 h.Key,
		Symbol:              h.Symbol,
		Upper:               h.Upper,
		Lower:               h.Lower,
		Palace:              h.Palace,
		PalaceOrder:         h.PalaceOrder,
		Ruling:              h.Ruling,
		Mirror:              h.Mirror,
		Judgment:            h.Judgment,
		JudgmentTranslation: h.JudgmentTranslation,
		Image:               h.Image,
		Lines:               lines,
		AllChanging:         h.AllChanging,
		Keywords:            h.Keywords,
	}
}

func momentResult(m calendar.Moment) MomentResult {
	return MomentResult{
		Time:     m.Time.Format(time.RFC3339),
		Day:      m.DayLabel,
		Month:    m.MonthLabel,
		Hour:     m.HourBranchLabel,
		HourSpan: m.HourLabel,
		Display:  m.Display,
	}
}

func readingResult(rd app.Reading) ReadingResult {
	out := ReadingResult{
		ID:             rd.ID,
		Question:       rd.Question,
		Method:         rd.Method,
		Moment:         momentResult(rd.Moment),
		Values:         rd.Values,
		Original:       hexagramResult(rd.Original),
		Mirror:         hexagramResult(rd.Mirror),
		Palace:         rd.Palace,
		Ruling:         rd.Ruling,
		Response:       rd.Response,
		Void:           rd.Void,
		Changing:       rd.Changing,
		Rule:           rd.Rule,
		Consult:        make([]ConsultEntry, 0, len(rd.Consult)),
		Lines:          make([]ReadingLine, 0, len(rd.Lines)),
		Category:       rd.Category,
		UsefulLine:     rd.UsefulLine,
		Approximations: rd.Approximations,
	}
	if rd.Seed != nil {
		out.Seed = &SeedResult{Value: rd.Seed.Value, Source: string(rd.Seed.Source)}
	}
	if rd.Changed != nil {
		changed := hexagramResult(*rd.Changed)
		out.Changed = &changed
	}
	for _, ref := range rd.Consult {
		entry := ConsultEntry{Kind: ref.Kind, Line: ref.Line, Label: ref.Label, Text: ref.Text}
		if ref.Kind != "note" {
			entry.Target = ref.Target
		}
		out.Consult = append(out.Consult, entry)
	}
	for _, line := range rd.Lines {
		out.Lines = append(out.Lines, ReadingLine{
			Position: line.Position,
			Value:    line.Value,
			Yang:     line.Yang,
			Changing: line.Changing,
			Stem:     line.Stem,
			Branch:   line.Branch,
			Element:  line.ElementKey,
			Role:     line.RoleKey,
			Guardian: line.GuardianKey,
			Ruling:   line.Ruling,
			Mirror:   line.Mirror,
			Void:     line.Void,
			Label:    line.Label,
			Text:     line.Text,
		})
	}
	return out
}

func probabilityResult(report app.ProbabilityReport) ProbabilityResult {
	out := ProbabilityResult{
		Method:  report.Method,
		Seed:    SeedResult{Value: report.Seed.Value, Source: string(report.Seed.Source)},
		Trials:  report.Trials,
		Lines:   report.Lines,
		Workers: report.Workers,
		Values:  make([]ProbabilityValue, 0, len(report.Values)),
	}
	for _, v := range report.Values {
		out.Values = append(out.Values, ProbabilityValue(v))
	}
	return out
}
