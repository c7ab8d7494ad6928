package app

import (
	"github.com/koriyoshi2041/zhouyi/internal/core/calendar"
	"github.com/koriyoshi2041/zhouyi/internal/core/reading"
	"github.com/koriyoshi2041/zhouyi/internal/platform/assets/catalog"
	"github.com/koriyoshi2041/zhouyi/internal/random"
)

// Reading is the serializable form of an annotated cast.
type Reading struct {
	ID             string          `json:"id"`
	Question       string          `json:"question,omitempty"`
	Method         string          `json:"method,omitempty"`
	Seed           *random.Seed    `json:"seed,omitempty"`
	Moment         calendar.Moment `json:"moment"`
	Values         []int           `json:"values"`
	Original       HexagramView    `json:"original"`
	Changed        *HexagramView   `json:"changed,omitempty"`
	Mirror         HexagramView    `json:"mirror"`
	Palace         string          `json:"palace"`
	Ruling         int             `json:"ruling"`
	Response       int             `json:"response"`
	Void           []string        `json:"void"`
	Changing       []int           `json:"changing"`
	Rule           string          `json:"rule"`
	Consult        []ReferenceView `json:"consult"`
	Lines          []LineView      `json:"lines"`
	Category       string          `json:"category,omitempty"`
	UsefulLine     int             `json:"useful_line,omitempty"`
	Approximations []string        `json:"approximations,omitempty"`

	// Analysis keeps the typed result for renderers.
	Analysis reading.Result `json:"-"`
}

// HexagramView is a catalog entry as presented in readings and lookups.
type HexagramView struct {
	Number              int            `json:"number"`
	Name                string         `json:"name"`
	FullName            string         `json:"full_name"`
	English             string         `json:"english"`
	Key                 string         `json:"key"`
	Symbol              string         `json:"symbol"`
	Upper               string         `json:"upper"`
	Lower               string         `json:"lower"`
	Palace              string         `json:"palace"`
	PalaceOrder         int            `json:"palace_order"`
	Ruling              int            `json:"ruling"`
	Mirror              int            `json:"mirror"`
	Judgment            string         `json:"judgment"`
	JudgmentTranslation string         `json:"judgment_translation,omitempty"`
	Image               string         `json:"image"`
	Lines               []catalog.Line `json:"lines"`
	AllChanging         string         `json:"all_changing,omitempty"`
	Keywords            []string       `json:"keywords,omitempty"`
}

// LineView is one annotated line, bottom line first.
type LineView struct {
	Position    int    `json:"position"`
	Value       int    `json:"value"`
	Yang        bool   `json:"yang"`
	Changing    bool   `json:"changing"`
	Stem        string `json:"stem"`
	Branch      string `json:"branch"`
	Element     string `json:"element"`
	ElementKey  string `json:"element_key"`
	Role        string `json:"role"`
	RoleKey     string `json:"role_key"`
	Guardian    string `json:"guardian"`
	GuardianKey string `json:"guardian_key"`
	Ruling      bool   `json:"ruling,omitempty"`
	Mirror      bool   `json:"mirror,omitempty"`
	Void        bool   `json:"void,omitempty"`
	Label       string `json:"label"`
	Text        string `json:"text"`
}

// ReferenceView is one consult entry with the text it points at.
type ReferenceView struct {
	Target string `json:"target"`
	Kind   string `json:"kind"`
	Line   int    `json:"line,omitempty"`
	Label  string `json:"label"`
	Text   string `json:"text,omitempty"`
}

func hexagramView(h catalog.Hexagram) HexagramView {
	return HexagramView{
		Number:              h.Number,
		Name:                h.Name,
		FullName:            h.FullName,
		English:             h.English,
		Key:                 h.Key(),
		Symbol:              h.Symbol(),
		Upper:               h.Upper.String(),
		Lower:               h.Lower.String(),
		Palace:              h.Palace.String(),
		PalaceOrder:         h.PalaceOrder,
		Ruling:              h.Ruling,
		Mirror:              h.Mirror,
		Judgment:            h.Judgment,
		JudgmentTranslation: h.JudgmentTranslation,
		Image:               h.Image,
		Lines:               append([]catalog.Line(nil), h.Lines[:]...),
		AllChanging:         h.AllChanging,
		Keywords:            h.Keywords,
	}
}

// referenceText resolves a consult entry against the original and changed
// entries. Notes carry no text.
func referenceText(ref reading.Reference, original catalog.Hexagram, changed *catalog.Hexagram) string {
	source := &original
	if ref.Target == reading.TargetChanged {
		source = changed
	}
	if source == nil {
		return ""
	}
	switch ref.Kind {
	case reading.ReferenceJudgment:
		return source.Judgment
	case reading.ReferenceLine:
		if ref.Line < 1 || ref.Line > 6 {
			return ""
		}
		return source.Lines[ref.Line-1].Text
	case reading.ReferenceAllChanging:
		if original.AllChanging != "" {
			return original.AllChanging
		}
		return source.Judgment
	default:
		return ""
	}
}
