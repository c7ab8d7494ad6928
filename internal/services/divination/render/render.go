// Package render draws readings, catalog entries, probability reports and
// calendar moments for a terminal, localized through the message catalog.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/message"

	"github.com/koriyoshi2041/zhouyi/internal/core/calendar"
	i18ncatalog "github.com/koriyoshi2041/zhouyi/internal/platform/i18n/catalog"
	"github.com/koriyoshi2041/zhouyi/internal/services/divination/app"
)

const (
	yangGlyph = "━━━━━━━"
	yinGlyph  = "━━━ ━━━"
)

// Renderer writes human readable output in one locale.
type Renderer struct {
	locale  string
	bundle  *i18ncatalog.Bundle
	printer *message.Printer
	styles  Styles
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyles replaces the default palette.
func WithStyles(styles Styles) Option {
	return func(r *Renderer) { r.styles = styles }
}

// WithBundle reads messages from bundle instead of the embedded catalogs.
func WithBundle(bundle *i18ncatalog.Bundle) Option {
	return func(r *Renderer) { r.bundle = bundle }
}

// New returns a Renderer for the catalog locale closest to requested.
func New(requested string, opts ...Option) *Renderer {
	r := &Renderer{styles: DefaultStyles()}
	for _, opt := range opts {
		opt(r)
	}
	if r.bundle == nil {
		r.bundle = i18ncatalog.Default()
	}
	r.locale = r.bundle.Match(requested)
	r.printer = r.bundle.Printer(r.locale)
	return r
}

// Locale returns the matched catalog locale.
func (r *Renderer) Locale() string {
	return r.locale
}

// T returns the localized message for key, or the key itself.
func (r *Renderer) T(key string) string {
	if value, ok := r.bundle.Message(r.locale, key); ok {
		return value
	}
	return key
}

// Reading writes a full annotated reading.
func (r *Renderer) Reading(w io.Writer, rd app.Reading) error {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(r.T("core.app.name")))
	if rd.Question != "" {
		b.WriteString("  " + rd.Question)
	}
	b.WriteString("\n")
	if rd.Method != "" {
		r.field(&b, "render.method", r.T("core.method."+rd.Method))
	}
	if rd.Seed != nil {
		r.field(&b, "render.seed", fmt.Sprintf("%d (%s)", rd.Seed.Value, rd.Seed.Source))
	}
	r.field(&b, "render.moment", rd.Moment.Display)
	r.field(&b, "render.palace", fmt.Sprintf("%s · %s %d / %s %d",
		rd.Palace, r.T("render.mark.ruling"), rd.Ruling, r.T("render.mark.mirror"), rd.Response))
	r.field(&b, "render.void", strings.Join(rd.Void, ""))
	if rd.Category != "" {
		useful := r.T("render.none")
		if rd.UsefulLine > 0 {
			useful = strconv.Itoa(rd.UsefulLine)
		}
		r.field(&b, "render.useful", r.T("core.category."+rd.Category)+" → "+useful)
	}
	b.WriteString("\n")

	changed := r.T("render.none")
	if rd.Changed != nil {
		changed = hexagramTitle(*rd.Changed)
	}
	r.field(&b, "render.original", hexagramTitle(rd.Original))
	r.field(&b, "render.changed", changed)
	r.field(&b, "render.mirror", hexagramTitle(rd.Mirror))
	b.WriteString("\n")

	b.WriteString(r.linesTable(rd))
	b.WriteString("\n\n")

	b.WriteString(r.styles.Heading.Render(r.T("render.rule")) + "\n")
	b.WriteString(rd.Rule + "\n")
	b.WriteString(r.styles.Heading.Render(r.T("render.consult")) + "\n")
	for _, ref := range rd.Consult {
		if ref.Text == "" {
			b.WriteString(r.styles.Muted.Render(ref.Label) + "\n")
			continue
		}
		b.WriteString(r.styles.Label.Render(ref.Label) + " " + ref.Text + "\n")
	}
	if len(rd.Approximations) > 0 {
		b.WriteString(r.styles.Muted.Render(r.T("render.approximations")+": "+strings.Join(rd.Approximations, ", ")) + "\n")
	}
	b.WriteString("\n" + r.styles.Muted.Render(r.T("render.disclaimer")) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// linesTable lists the lines top first, the way a hexagram is drawn.
func (r *Renderer) linesTable(rd app.Reading) string {
	rows := make([][]string, 0, len(rd.Lines))
	for i := len(rd.Lines) - 1; i >= 0; i-- {
		line := rd.Lines[i]
		glyph := yinGlyph
		if line.Yang {
			glyph = yangGlyph
		}
		if line.Changing {
			glyph = r.styles.Changing.Render(glyph + changeMark(line.Value))
		}
		rows = append(rows, []string{
			line.Label,
			glyph,
			strconv.Itoa(line.Value),
			line.Stem + line.Branch,
			r.T("core.element." + line.ElementKey),
			r.T("core.role." + line.RoleKey),
			r.T("core.guardian." + line.GuardianKey),
			r.marks(rd, line),
		})
	}
	return r.table([]string{
		r.T("render.col.position"),
		r.T("render.col.symbol"),
		r.T("render.col.value"),
		r.T("render.col.planting"),
		r.T("render.col.element"),
		r.T("render.col.role"),
		r.T("render.col.guardian"),
		r.T("render.col.marks"),
	}, rows)
}

func (r *Renderer) marks(rd app.Reading, line app.LineView) string {
	var marks []string
	if line.Ruling {
		marks = append(marks, r.T("render.mark.ruling"))
	}
	if line.Mirror {
		marks = append(marks, r.T("render.mark.mirror"))
	}
	if line.Changing {
		marks = append(marks, r.T("render.mark.changing"))
	}
	if line.Void {
		marks = append(marks, r.T("render.mark.void"))
	}
	if rd.UsefulLine == line.Position {
		marks = append(marks, r.T("render.mark.useful"))
	}
	return strings.Join(marks, " ")
}

// Hexagram writes one catalog entry with its texts.
func (r *Renderer) Hexagram(w io.Writer, h app.HexagramView) error {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(hexagramTitle(h)) + "\n")
	r.field(&b, "render.number", strconv.Itoa(h.Number))
	r.field(&b, "render.trigrams", h.Upper+" / "+h.Lower)
	r.field(&b, "render.palace", fmt.Sprintf("%s · %s %d / %s %d",
		h.Palace, r.T("render.mark.ruling"), h.Ruling, r.T("render.mark.mirror"), h.Mirror))
	if len(h.Keywords) > 0 {
		r.field(&b, "render.keywords", strings.Join(h.Keywords, ", "))
	}
	b.WriteString("\n")
	r.field(&b, "render.judgment", h.Judgment)
	if h.JudgmentTranslation != "" {
		b.WriteString(r.styles.Muted.Render(h.JudgmentTranslation) + "\n")
	}
	r.field(&b, "render.image", h.Image)
	b.WriteString("\n" + r.styles.Heading.Render(r.T("render.line_texts")) + "\n")
	for _, line := range h.Lines {
		b.WriteString(r.styles.Label.Render(line.Label) + " " + line.Text + "\n")
	}
	if h.AllChanging != "" {
		r.field(&b, "render.all_changing", h.AllChanging)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Palace writes the eight members of a palace in palace order.
func (r *Renderer) Palace(w io.Writer, members []app.HexagramView) error {
	rows := make([][]string, 0, len(members))
	for _, h := range members {
		rows = append(rows, []string{
			strconv.Itoa(h.PalaceOrder),
			h.Symbol,
			h.FullName,
			strconv.Itoa(h.Number),
			fmt.Sprintf("%d/%d", h.Ruling, h.Mirror),
		})
	}
	out := r.table([]string{
		"#",
		r.T("render.col.symbol"),
		r.T("render.original"),
		r.T("render.number"),
		r.T("render.mark.ruling") + "/" + r.T("render.mark.mirror"),
	}, rows)
	_, err := io.WriteString(w, out+"\n")
	return err
}

// Probability writes the exact and simulated line value shares.
func (r *Renderer) Probability(w io.Writer, report app.ProbabilityReport) error {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(r.T("render.probability")) + "\n")
	r.field(&b, "render.method", r.T("core.method."+report.Method))
	r.field(&b, "render.seed", fmt.Sprintf("%d (%s)", report.Seed.Value, report.Seed.Source))
	r.field(&b, "render.trials", r.printer.Sprintf("%d", report.Trials))
	b.WriteString("\n")

	rows := make([][]string, 0, len(report.Values))
	for _, v := range report.Values {
		rows = append(rows, []string{
			fmt.Sprintf("%d %s", v.Value, v.Label),
			r.printer.Sprintf("%.4f", v.Exact),
			r.printer.Sprintf("%.4f", v.Observed),
			r.printer.Sprintf("%+.4f", v.Deviation),
		})
	}
	b.WriteString(r.table([]string{
		r.T("render.col.line_value"),
		r.T("render.col.exact"),
		r.T("render.col.observed"),
		"Δ",
	}, rows))
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// Moment writes the stem-branch labels of a point in time.
func (r *Renderer) Moment(w io.Writer, m calendar.Moment) error {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(m.Display) + "\n")
	r.field(&b, "render.day", m.DayLabel)
	r.field(&b, "render.month", m.MonthLabel)
	r.field(&b, "render.hour", m.HourLabel)
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) field(b *strings.Builder, key, value string) {
	b.WriteString(r.styles.Label.Render(r.T(key)+":") + " " + value + "\n")
}

func (r *Renderer) table(headers []string, rows [][]string) string {
	styles := r.styles
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			return styles.Cell
		})
	return t.Render()
}

func hexagramTitle(h app.HexagramView) string {
	return fmt.Sprintf("%s %d %s (%s)", h.Symbol, h.Number, h.FullName, h.English)
}

// changeMark is the traditional annotation for a moving line: ○ for old
// yang, × for old yin.
func changeMark(value int) string {
	switch value {
	case 9:
		return " ○"
	case 6:
		return " ×"
	default:
		return ""
	}
}
