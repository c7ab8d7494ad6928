// Package trigram defines the eight three-line figures, their bit patterns,
// their prior-heaven numbering and the stem-branch planting table that
// assigns a stem and branch to each line.
package trigram

import (
	"errors"
	"fmt"
	"strings"

	"github.com/koriyoshi2041/zhouyi/internal/core/element"
	"github.com/koriyoshi2041/zhouyi/internal/core/ganzhi"
)

// ErrUnknownTrigram indicates a trigram label or number outside the eight.
var ErrUnknownTrigram = errors.New("unknown trigram")

// Trigram is one of the eight trigrams. The zero value is unspecified.
type Trigram int

const (
	Unspecified Trigram = iota
	Qian
	Dui
	Li
	Zhen
	Xun
	Kan
	Gen
	Kun
)

// Count is the number of trigrams.
const Count = 8

// Bits is a three-line figure packed bottom line first: bit 0 is the bottom
// line, bit 2 the top line, and a set bit is yang.
type Bits uint8

// Attributes are the descriptive associations of a trigram. They are used
// for presentation only; no computation reads them.
type Attributes struct {
	Symbol  string
	Nature  string
	Virtue  string
	Family  string
	Body    string
	Animal  string
	English string
}

type entry struct {
	name     string
	pinyin   string
	lines    [3]bool
	element  element.Element
	planting [6]ganzhi.Pair
	attrs    Attributes
}

func plant(stems [6]ganzhi.Stem, branches [6]ganzhi.Branch) [6]ganzhi.Pair {
	var out [6]ganzhi.Pair
	for i := range out {
		out[i] = ganzhi.Pair{Stem: stems[i], Branch: branches[i]}
	}
	return out
}

func same(s ganzhi.Stem) [6]ganzhi.Stem {
	return [6]ganzhi.Stem{s, s, s, s, s, s}
}

const (
	jia  = ganzhi.StemJia
	yi   = ganzhi.StemYi
	bing = ganzhi.StemBing
	ding = ganzhi.StemDing
	wu   = ganzhi.StemWu
	ji   = ganzhi.StemJi
	geng = ganzhi.StemGeng
	xin  = ganzhi.StemXin
	ren  = ganzhi.StemRen
	gui  = ganzhi.StemGui
)

const (
	zi   = ganzhi.BranchZi
	chou = ganzhi.BranchChou
	yin  = ganzhi.BranchYin
	mao  = ganzhi.BranchMao
	chen = ganzhi.BranchChen
	si   = ganzhi.BranchSi
	wuB  = ganzhi.BranchWu
	wei  = ganzhi.BranchWei
	shen = ganzhi.BranchShen
	you  = ganzhi.BranchYou
	xu   = ganzhi.BranchXu
	hai  = ganzhi.BranchHai
)

// table is indexed by Trigram; the entry at Unspecified is never read.
var table = [Count + 1]entry{
	Qian: {
		name: "乾", pinyin: "qian", lines: [3]bool{true, true, true}, element: element.Metal,
		planting: plant([6]ganzhi.Stem{jia, jia, jia, ren, ren, ren}, [6]ganzhi.Branch{zi, yin, chen, wuB, shen, xu}),
		attrs:    Attributes{Symbol: "☰", Nature: "天", Virtue: "健", Family: "父", Body: "首", Animal: "马", English: "Heaven"},
	},
	Dui: {
		name: "兑", pinyin: "dui", lines: [3]bool{true, true, false}, element: element.Metal,
		planting: plant(same(ding), [6]ganzhi.Branch{si, mao, chou, hai, you, wei}),
		attrs:    Attributes{Symbol: "☱", Nature: "泽", Virtue: "悦", Family: "少女", Body: "口", Animal: "羊", English: "Lake"},
	},
	Li: {
		name: "离", pinyin: "li", lines: [3]bool{true, false, true}, element: element.Fire,
		planting: plant(same(ji), [6]ganzhi.Branch{mao, chou, hai, you, wei, si}),
		attrs:    Attributes{Symbol: "☲", Nature: "火", Virtue: "丽", Family: "中女", Body: "目", Animal: "雉", English: "Fire"},
	},
	Zhen: {
		name: "震", pinyin: "zhen", lines: [3]bool{true, false, false}, element: element.Wood,
		planting: plant(same(geng), [6]ganzhi.Branch{zi, yin, chen, wuB, shen, xu}),
		attrs:    Attributes{Symbol: "☳", Nature: "雷", Virtue: "动", Family: "长男", Body: "足", Animal: "龙", English: "Thunder"},
	},
	Xun: {
		name: "巽", pinyin: "xun", lines: [3]bool{false, true, true}, element: element.Wood,
		planting: plant(same(xin), [6]ganzhi.Branch{chou, hai, you, wei, si, mao}),
		attrs:    Attributes{Symbol: "☴", Nature: "风", Virtue: "入", Family: "长女", Body: "股", Animal: "鸡", English: "Wind"},
	},
	Kan: {
		name: "坎", pinyin: "kan", lines: [3]bool{false, true, false}, element: element.Water,
		planting: plant(same(wu), [6]ganzhi.Branch{yin, chen, wuB, shen, xu, zi}),
		attrs:    Attributes{Symbol: "☵", Nature: "水", Virtue: "陷", Family: "中男", Body: "耳", Animal: "豕", English: "Water"},
	},
	Gen: {
		name: "艮", pinyin: "gen", lines: [3]bool{false, false, true}, element: element.Earth,
		planting: plant(same(bing), [6]ganzhi.Branch{chen, wuB, shen, xu, zi, yin}),
		attrs:    Attributes{Symbol: "☶", Nature: "山", Virtue: "止", Family: "少男", Body: "手", Animal: "狗", English: "Mountain"},
	},
	Kun: {
		name: "坤", pinyin: "kun", lines: [3]bool{false, false, false}, element: element.Earth,
		planting: plant([6]ganzhi.Stem{yi, yi, yi, gui, gui, gui}, [6]ganzhi.Branch{wei, si, mao, chou, hai, you}),
		attrs:    Attributes{Symbol: "☷", Nature: "地", Virtue: "顺", Family: "母", Body: "腹", Animal: "牛", English: "Earth"},
	},
}

// All lists the eight trigrams in prior-heaven order.
func All() []Trigram {
	return []Trigram{Qian, Dui, Li, Zhen, Xun, Kan, Gen, Kun}
}

// Valid reports whether t is one of the eight trigrams.
func (t Trigram) Valid() bool { return t >= Qian && t <= Kun }

func (t Trigram) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Trigram(%d)", int(t))
	}
	return table[t].name
}

// Pinyin returns the romanized trigram name.
func (t Trigram) Pinyin() string {
	if !t.Valid() {
		return ""
	}
	return table[t].pinyin
}

// Lines returns the three lines bottom first; true is yang.
func (t Trigram) Lines() [3]bool {
	if !t.Valid() {
		return [3]bool{}
	}
	return table[t].lines
}

// Bits returns the packed line figure.
func (t Trigram) Bits() Bits {
	var b Bits
	for i, yang := range t.Lines() {
		if yang {
			b |= 1 << i
		}
	}
	return b
}

// Key returns the three-character '0'/'1' figure, bottom line first.
func (t Trigram) Key() string {
	lines := t.Lines()
	var sb strings.Builder
	for _, yang := range lines {
		if yang {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Element returns the element associated with the trigram.
func (t Trigram) Element() element.Element {
	if !t.Valid() {
		return element.Unspecified
	}
	return table[t].element
}

// PriorHeaven returns the trigram's number 1..8 in the prior-heaven order.
func (t Trigram) PriorHeaven() int {
	if !t.Valid() {
		return 0
	}
	return int(t)
}

// Planting returns the stem-branch pair planted on line index 0..5.
// Callers reading a hexagram use indices 0..2 of each trigram; the upper
// half of the table is kept for completeness.
func (t Trigram) Planting(index int) (ganzhi.Pair, bool) {
	if !t.Valid() || index < 0 || index >= 6 {
		return ganzhi.Pair{}, false
	}
	return table[t].planting[index], true
}

// Attributes returns the descriptive associations of the trigram.
func (t Trigram) Attributes() Attributes {
	if !t.Valid() {
		return Attributes{}
	}
	return table[t].attrs
}

// FromBits returns the trigram whose figure equals b. Only the low three
// bits are read, so every input maps to a trigram.
func FromBits(b Bits) Trigram {
	b &= 0b111
	for _, t := range All() {
		if t.Bits() == b {
			return t
		}
	}
	return Unspecified
}

// FromLines returns the trigram for three lines given bottom first.
func FromLines(lines [3]bool) Trigram {
	var b Bits
	for i, yang := range lines {
		if yang {
			b |= 1 << i
		}
	}
	return FromBits(b)
}

// PriorHeaven returns the trigram numbered n in the prior-heaven order.
func PriorHeaven(n int) (Trigram, error) {
	if n < 1 || n > Count {
		return Unspecified, fmt.Errorf("%w: prior-heaven number %d", ErrUnknownTrigram, n)
	}
	return Trigram(n), nil
}

// Parse accepts a Chinese name ("乾"), a pinyin name ("qian"), an English
// nature ("heaven") or a three-character figure ("111").
func Parse(raw string) (Trigram, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, t := range All() {
		e := table[t]
		if value == e.name || value == e.pinyin || value == strings.ToLower(e.attrs.English) || value == t.Key() {
			return t, nil
		}
	}
	return Unspecified, fmt.Errorf("%w: %q", ErrUnknownTrigram, raw)
}
