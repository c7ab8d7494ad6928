// Package catalog serves the embedded literature of the sixty-four
// hexagrams: names, judgments, images and line texts, along with the
// structural record (palace, ruling line, mirror line) that line
// annotation reads.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/koriyoshi2041/zhouyi/internal/core/hexagram"
	"github.com/koriyoshi2041/zhouyi/internal/core/reading"
	"github.com/koriyoshi2041/zhouyi/internal/core/trigram"
)

// Size is the number of hexagrams in a complete catalog.
const Size = 64

var (
	// ErrNotFound indicates a reference that matches no hexagram.
	ErrNotFound = errors.New("hexagram not found")
	// ErrInvalidCatalog indicates catalog data that fails validation.
	ErrInvalidCatalog = errors.New("invalid hexagram catalog")
)

// Line is the text attached to one line of a hexagram.
type Line struct {
	Label       string `json:"label"`
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`
}

// Hexagram is one catalog entry.
type Hexagram struct {
	Number              int
	Name                string
	FullName            string
	English             string
	Upper               trigram.Trigram
	Lower               trigram.Trigram
	Pattern             hexagram.Pattern
	Palace              trigram.Trigram
	PalaceOrder         int
	Ruling              int
	Mirror              int
	Judgment            string
	JudgmentTranslation string
	Image               string
	Lines               [6]Line
	// AllChanging is the text read when every line changes. Only the
	// first two hexagrams carry one.
	AllChanging string
	Keywords    []string
}

// Key returns the canonical pattern key.
func (h Hexagram) Key() string { return h.Pattern.String() }

// Symbol returns the Unicode hexagram character.
func (h Hexagram) Symbol() string {
	if h.Number < 1 || h.Number > Size {
		return ""
	}
	return string(rune(0x4DC0 + h.Number - 1))
}

// Structure returns the structural record used by line annotation.
func (h Hexagram) Structure() reading.Structure {
	return reading.Structure{Palace: h.Palace, Ruling: h.Ruling, Mirror: h.Mirror}
}

// Catalog is a validated, read-only set of hexagrams.
type Catalog struct {
	entries  []Hexagram // index = number - 1
	byKey    map[string]int
	byName   map[string]int
	byPalace map[trigram.Trigram][]int
}

// All returns every hexagram in sequence order.
func (c *Catalog) All() []Hexagram {
	out := make([]Hexagram, len(c.entries))
	for i, h := range c.entries {
		out[i] = copyHexagram(h)
	}
	return out
}

// ByNumber returns the hexagram at sequence number n (1..64).
func (c *Catalog) ByNumber(n int) (Hexagram, bool) {
	if n < 1 || n > len(c.entries) {
		return Hexagram{}, false
	}
	return copyHexagram(c.entries[n-1]), true
}

// ByKey returns the hexagram whose pattern key is key.
func (c *Catalog) ByKey(key string) (Hexagram, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Hexagram{}, false
	}
	return copyHexagram(c.entries[i]), true
}

// ByPattern returns the hexagram spelled by p. Every pattern is present in
// a valid catalog.
func (c *Catalog) ByPattern(p hexagram.Pattern) (Hexagram, bool) {
	return c.ByKey(p.String())
}

// ByName matches the short name, the full name or the English name,
// ignoring case for the latter.
func (c *Catalog) ByName(name string) (Hexagram, bool) {
	i, ok := c.byName[normalizeName(name)]
	if !ok {
		return Hexagram{}, false
	}
	return copyHexagram(c.entries[i]), true
}

// Palace returns the eight hexagrams of palace t in palace order.
func (c *Catalog) Palace(t trigram.Trigram) []Hexagram {
	indexes := c.byPalace[t]
	out := make([]Hexagram, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, copyHexagram(c.entries[i]))
	}
	return out
}

// Structures adapts the catalog for reading.Analyze.
func (c *Catalog) Structures() reading.StructureLookup { return c }

// Structure implements reading.StructureLookup.
func (c *Catalog) Structure(key string) (reading.Structure, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return reading.Structure{}, false
	}
	return c.entries[i].Structure(), true
}

// Resolve finds a hexagram by sequence number, pattern key, line values
// or name.
func (c *Catalog) Resolve(ref string) (Hexagram, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Hexagram{}, ErrNotFound
	}
	if h, ok := c.ByKey(ref); ok {
		return h, nil
	}
	if n, err := strconv.Atoi(ref); err == nil && len(ref) <= 2 {
		if h, ok := c.ByNumber(n); ok {
			return h, nil
		}
	}
	if values, err := hexagram.ParseValues(ref); err == nil {
		if h, ok := c.ByPattern(hexagram.Polarities(values)); ok {
			return h, nil
		}
	}
	if h, ok := c.ByName(ref); ok {
		return h, nil
	}
	return Hexagram{}, fmt.Errorf("%w: %q", ErrNotFound, ref)
}

func copyHexagram(h Hexagram) Hexagram {
	h.Keywords = append([]string(nil), h.Keywords...)
	return h
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
