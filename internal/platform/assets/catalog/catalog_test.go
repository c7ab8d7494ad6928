package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/koriyoshi2041/zhouyi/internal/core/hexagram"
	"github.com/koriyoshi2041/zhouyi/internal/core/trigram"
)

func mustEmbedded(t *testing.T) *Catalog {
	t.Helper()
	c, err := Embedded()
	if err != nil {
		t.Fatalf("embedded catalog: %v", err)
	}
	return c
}

func TestEmbeddedCatalogValidates(t *testing.T) {
	if err := ValidateEmbedded(); err != nil {
		t.Fatalf("validate embedded catalog: %v", err)
	}
}

func TestEveryPatternRoundTrips(t *testing.T) {
	c := mustEmbedded(t)
	for _, p := range hexagram.All() {
		h, ok := c.ByPattern(p)
		if !ok {
			t.Fatalf("pattern %s missing", p)
		}
		id, err := hexagram.Identify(h.Pattern)
		if err != nil {
			t.Fatalf("identify %s: %v", h.Name, err)
		}
		if id.Upper != h.Upper || id.Lower != h.Lower {
			t.Fatalf("%s: identity %s over %s, catalog %s over %s", h.Name, id.Upper, id.Lower, h.Upper, h.Lower)
		}
		byNumber, ok := c.ByNumber(h.Number)
		if !ok || byNumber.Key() != p.String() {
			t.Fatalf("ByNumber(%d) = %s, want %s", h.Number, byNumber.Key(), p)
		}
		byName, ok := c.ByName(h.Name)
		if !ok || byName.Number != h.Number {
			t.Fatalf("ByName(%q) = %d, want %d", h.Name, byName.Number, h.Number)
		}
		if h.Ruling < 1 || h.Ruling > 6 || h.Mirror < 1 || h.Mirror > 6 {
			t.Fatalf("%s: ruling %d mirror %d out of range", h.Name, h.Ruling, h.Mirror)
		}
	}
}

func TestKnownEntries(t *testing.T) {
	c := mustEmbedded(t)
	tests := []struct {
		key         string
		number      int
		name        string
		palace      trigram.Trigram
		palaceOrder int
		ruling      int
		mirror      int
	}{
		{"111111", 1, "乾", trigram.Qian, 1, 6, 3},
		{"000000", 2, "坤", trigram.Kun, 1, 6, 3},
		{"101010", 63, "既济", trigram.Kan, 4, 3, 6},
		{"010101", 64, "未济", trigram.Li, 4, 3, 6},
		{"000111", 12, "否", trigram.Qian, 4, 3, 6},
		{"101111", 13, "同人", trigram.Li, 8, 3, 6},
	}
	for _, tt := range tests {
		h, ok := c.ByKey(tt.key)
		if !ok {
			t.Fatalf("key %s missing", tt.key)
		}
		if h.Number != tt.number || h.Name != tt.name {
			t.Fatalf("key %s = #%d %s, want #%d %s", tt.key, h.Number, h.Name, tt.number, tt.name)
		}
		if h.Palace != tt.palace || h.PalaceOrder != tt.palaceOrder {
			t.Fatalf("%s palace = %s/%d, want %s/%d", h.Name, h.Palace, h.PalaceOrder, tt.palace, tt.palaceOrder)
		}
		if h.Ruling != tt.ruling || h.Mirror != tt.mirror {
			t.Fatalf("%s ruling/mirror = %d/%d, want %d/%d", h.Name, h.Ruling, h.Mirror, tt.ruling, tt.mirror)
		}
	}
}

func TestAllChangingTextOnlyOnFirstTwo(t *testing.T) {
	c := mustEmbedded(t)
	for _, h := range c.All() {
		if (h.Number <= 2) != (h.AllChanging != "") {
			t.Fatalf("#%d all-changing text %q", h.Number, h.AllChanging)
		}
	}
}

func TestSymbol(t *testing.T) {
	c := mustEmbedded(t)
	first, _ := c.ByNumber(1)
	last, _ := c.ByNumber(64)
	if got := first.Symbol(); got != "䷀" {
		t.Fatalf("symbol #1 = %q, want ䷀", got)
	}
	if got := last.Symbol(); got != "䷿" {
		t.Fatalf("symbol #64 = %q, want ䷿", got)
	}
	if got := (Hexagram{}).Symbol(); got != "" {
		t.Fatalf("zero symbol = %q, want empty", got)
	}
}

func TestPalaceOrdering(t *testing.T) {
	c := mustEmbedded(t)
	total := 0
	for _, palace := range trigram.All() {
		members := c.Palace(palace)
		if len(members) != 8 {
			t.Fatalf("palace %s has %d members, want 8", palace, len(members))
		}
		for i, h := range members {
			if h.Palace != palace || h.PalaceOrder != i+1 {
				t.Fatalf("palace %s[%d] = %s (%s/%d)", palace, i, h.Name, h.Palace, h.PalaceOrder)
			}
			if want := PalaceMember(palace, i+1); h.Pattern != want {
				t.Fatalf("palace %s[%d] pattern %s, derived %s", palace, i, h.Pattern, want)
			}
		}
		total += len(members)
	}
	if total != Size {
		t.Fatalf("palaces cover %d hexagrams, want %d", total, Size)
	}

	var names []string
	for _, h := range c.Palace(trigram.Qian) {
		names = append(names, h.Name)
	}
	want := []string{"乾", "姤", "遁", "否", "观", "剥", "晋", "大有"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("qian palace mismatch (-want +got):\n%s", diff)
	}
}

func TestStructureLines(t *testing.T) {
	var got [][2]int
	for order := 1; order <= 8; order++ {
		r, m := StructureLines(order)
		got = append(got, [2]int{r, m})
	}
	want := [][2]int{{6, 3}, {1, 4}, {2, 5}, {3, 6}, {4, 1}, {5, 2}, {4, 1}, {3, 6}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("structure lines mismatch (-want +got):\n%s", diff)
	}
	if r, m := StructureLines(9); r != 0 || m != 0 {
		t.Fatalf("StructureLines(9) = %d/%d, want 0/0", r, m)
	}
}

func TestStructuresLookup(t *testing.T) {
	c := mustEmbedded(t)
	lookup := c.Structures()
	s, ok := lookup.Structure("010010")
	if !ok {
		t.Fatal("kan structure missing")
	}
	if s.Palace != trigram.Kan || s.Ruling != 6 || s.Mirror != 3 {
		t.Fatalf("kan structure = %+v", s)
	}
	if _, ok := lookup.Structure("01001"); ok {
		t.Fatal("expected miss for malformed key")
	}
}

func TestResolve(t *testing.T) {
	c := mustEmbedded(t)
	tests := []struct {
		ref  string
		want int
	}{
		{"1", 1},
		{"64", 64},
		{"111111", 1},
		{"000000", 2},
		{"989898", 63},
		{"9,8,9,8,9,8", 63},
		{"乾", 1},
		{"水火既济", 63},
		{"the creative", 1},
		{"  坤 ", 2},
	}
	for _, tt := range tests {
		h, err := c.Resolve(tt.ref)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tt.ref, err)
		}
		if h.Number != tt.want {
			t.Fatalf("Resolve(%q) = #%d, want #%d", tt.ref, h.Number, tt.want)
		}
	}

	for _, ref := range []string{"", "0", "65", "nope", "1111112"} {
		if _, err := c.Resolve(ref); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Resolve(%q) err = %v, want ErrNotFound", ref, err)
		}
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := mustEmbedded(t)
	h, _ := c.ByNumber(1)
	if len(h.Keywords) == 0 {
		t.Fatal("expected keywords on #1")
	}
	h.Keywords[0] = "mutated"
	h.Name = "mutated"

	again, _ := c.ByNumber(1)
	if again.Keywords[0] == "mutated" || again.Name == "mutated" {
		t.Fatal("catalog state mutated through returned copy")
	}
	all := c.All()
	all[0].Keywords[0] = "mutated"
	if first, _ := c.ByKey("111111"); first.Keywords[0] == "mutated" {
		t.Fatal("catalog state mutated through All")
	}
}

func TestParseRejectsInvalidData(t *testing.T) {
	valid := string(hexagramsYAML)
	tests := []struct {
		name string
		raw  string
	}{
		{"not yaml", "hexagrams: [\n"},
		{"empty", "version: 1\nhexagrams: []\n"},
		{"key disagrees with trigrams", strings.Replace(valid, `key: "111111"`, `key: "111110"`, 1)},
		{"ruling off palace order", strings.Replace(valid, "ruling: 6\n  mirror: 3\n  judgment: 乾。", "ruling: 5\n  mirror: 2\n  judgment: 乾。", 1)},
		{"duplicate number", strings.Replace(valid, "- number: 2\n", "- number: 1\n", 1)},
		{"line label polarity", strings.Replace(valid, "label: 初九, text: 潜龙勿用。", "label: 初六, text: 潜龙勿用。", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.raw == valid {
				t.Fatal("fixture replacement did not apply")
			}
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

func TestParseReportsInvalidCatalog(t *testing.T) {
	_, err := Parse([]byte("version: 1\nhexagrams: []\n"))
	if !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("err = %v, want ErrInvalidCatalog", err)
	}
}
