package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/koriyoshi2041/zhouyi/internal/core/hexagram"
	"github.com/koriyoshi2041/zhouyi/internal/core/trigram"
)

//go:embed data/hexagrams.yaml
var hexagramsYAML []byte

var (
	loadEmbeddedOnce sync.Once
	embeddedCatalog  *Catalog
	embeddedErr      error
)

type documentYAML struct {
	Version   int            `yaml:"version"`
	Hexagrams []hexagramYAML `yaml:"hexagrams"`
}

type hexagramYAML struct {
	Number              int        `yaml:"number"`
	Name                string     `yaml:"name"`
	FullName            string     `yaml:"full_name"`
	English             string     `yaml:"english"`
	Upper               string     `yaml:"upper"`
	Lower               string     `yaml:"lower"`
	Key                 string     `yaml:"key"`
	Palace              string     `yaml:"palace"`
	PalaceOrder         int        `yaml:"palace_order"`
	Ruling              int        `yaml:"ruling"`
	Mirror              int        `yaml:"mirror"`
	Judgment            string     `yaml:"judgment"`
	JudgmentTranslation string     `yaml:"judgment_translation"`
	Image               string     `yaml:"image"`
	Lines               []lineYAML `yaml:"lines"`
	AllChanging         string     `yaml:"all_changing"`
	Keywords            []string   `yaml:"keywords"`
}

type lineYAML struct {
	Label       string `yaml:"label"`
	Text        string `yaml:"text"`
	Translation string `yaml:"translation"`
}

// Embedded returns the catalog compiled into the binary.
//
// The embedded YAML is decoded and validated once; later calls share the
// read-only result. Accessors hand out copies, so callers cannot mutate
// cached state.
func Embedded() (*Catalog, error) {
	loadEmbeddedOnce.Do(func() {
		embeddedCatalog, embeddedErr = Parse(hexagramsYAML)
	})
	return embeddedCatalog, embeddedErr
}

// ValidateEmbedded returns any decode or validation error from the
// embedded data.
func ValidateEmbedded() error {
	_, err := Embedded()
	return err
}

// Parse decodes and validates a catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var doc documentYAML
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode hexagram catalog: %w", err)
	}
	if len(doc.Hexagrams) != Size {
		return nil, fmt.Errorf("%w: %d entries, want %d", ErrInvalidCatalog, len(doc.Hexagrams), Size)
	}

	c := &Catalog{
		entries:  make([]Hexagram, Size),
		byKey:    make(map[string]int, Size),
		byName:   make(map[string]int, Size*3),
		byPalace: make(map[trigram.Trigram][]int, trigram.Count),
	}
	seen := make(map[int]bool, Size)
	for _, rawEntry := range doc.Hexagrams {
		entry, err := decodeHexagram(rawEntry)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidCatalog, rawEntry.Number, err)
		}
		if seen[entry.Number] {
			return nil, fmt.Errorf("%w: duplicate number %d", ErrInvalidCatalog, entry.Number)
		}
		seen[entry.Number] = true
		index := entry.Number - 1

		key := entry.Key()
		if _, exists := c.byKey[key]; exists {
			return nil, fmt.Errorf("%w: duplicate key %s", ErrInvalidCatalog, key)
		}
		c.byKey[key] = index
		for _, name := range []string{entry.Name, entry.FullName, entry.English} {
			normalized := normalizeName(name)
			if normalized == "" {
				continue
			}
			if other, exists := c.byName[normalized]; exists && other != index {
				return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidCatalog, name)
			}
			c.byName[normalized] = index
		}
		c.entries[index] = entry
	}

	for _, palace := range trigram.All() {
		members := make([]int, 0, 8)
		for order := 1; order <= 8; order++ {
			key := PalaceMember(palace, order).String()
			index, ok := c.byKey[key]
			if !ok {
				return nil, fmt.Errorf("%w: palace %s order %d missing", ErrInvalidCatalog, palace, order)
			}
			entry := c.entries[index]
			if entry.Palace != palace || entry.PalaceOrder != order {
				return nil, fmt.Errorf("%w: %s recorded in palace %s order %d, derived %s order %d",
					ErrInvalidCatalog, entry.Name, entry.Palace, entry.PalaceOrder, palace, order)
			}
			members = append(members, index)
		}
		c.byPalace[palace] = members
	}
	return c, nil
}

func decodeHexagram(raw hexagramYAML) (Hexagram, error) {
	if raw.Number < 1 || raw.Number > Size {
		return Hexagram{}, fmt.Errorf("number %d out of range", raw.Number)
	}
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return Hexagram{}, fmt.Errorf("name is required")
	}
	pattern, err := hexagram.ParsePattern(strings.TrimSpace(raw.Key))
	if err != nil {
		return Hexagram{}, err
	}
	upper, err := trigram.Parse(raw.Upper)
	if err != nil {
		return Hexagram{}, fmt.Errorf("upper: %w", err)
	}
	lower, err := trigram.Parse(raw.Lower)
	if err != nil {
		return Hexagram{}, fmt.Errorf("lower: %w", err)
	}
	if pattern.Upper() != upper || pattern.Lower() != lower {
		return Hexagram{}, fmt.Errorf("key %s spells %s over %s, recorded %s over %s",
			raw.Key, pattern.Upper(), pattern.Lower(), upper, lower)
	}
	palace, err := trigram.Parse(raw.Palace)
	if err != nil {
		return Hexagram{}, fmt.Errorf("palace: %w", err)
	}
	if raw.PalaceOrder < 1 || raw.PalaceOrder > 8 {
		return Hexagram{}, fmt.Errorf("palace order %d out of range", raw.PalaceOrder)
	}
	ruling, mirror := StructureLines(raw.PalaceOrder)
	if raw.Ruling != ruling || raw.Mirror != mirror {
		return Hexagram{}, fmt.Errorf("ruling/mirror %d/%d, want %d/%d for palace order %d",
			raw.Ruling, raw.Mirror, ruling, mirror, raw.PalaceOrder)
	}
	if len(raw.Lines) != 6 {
		return Hexagram{}, fmt.Errorf("%d lines, want 6", len(raw.Lines))
	}

	var lines [6]Line
	for i, rawLine := range raw.Lines {
		label := strings.TrimSpace(rawLine.Label)
		yangLabel := strings.Contains(label, "九")
		if yangLabel != (pattern[i] == hexagram.Yang) {
			return Hexagram{}, fmt.Errorf("line %d label %q disagrees with key %s", i+1, label, raw.Key)
		}
		lines[i] = Line{
			Label:       label,
			Text:        strings.TrimSpace(rawLine.Text),
			Translation: strings.TrimSpace(rawLine.Translation),
		}
	}

	return Hexagram{
		Number:              raw.Number,
		Name:                name,
		FullName:            strings.TrimSpace(raw.FullName),
		English:             strings.TrimSpace(raw.English),
		Upper:               upper,
		Lower:               lower,
		Pattern:             pattern,
		Palace:              palace,
		PalaceOrder:         raw.PalaceOrder,
		Ruling:              raw.Ruling,
		Mirror:              raw.Mirror,
		Judgment:            strings.TrimSpace(raw.Judgment),
		JudgmentTranslation: strings.TrimSpace(raw.JudgmentTranslation),
		Image:               strings.TrimSpace(raw.Image),
		Lines:               lines,
		AllChanging:         strings.TrimSpace(raw.AllChanging),
		Keywords:            normalizeStringList(raw.Keywords),
	}, nil
}

func normalizeStringList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := strings.TrimSpace(value)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
