// Package ganzhi defines the ten heavenly stems, the twelve earthly
// branches, and the fixed tables that relate them to elements and to the
// void branches of each sixty-day decade.
package ganzhi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/koriyoshi2041/zhouyi/internal/core/element"
)

// ErrUnknownStem indicates a stem label that matches none of the ten stems.
var ErrUnknownStem = errors.New("unknown heavenly stem")

// ErrUnknownBranch indicates a branch label that matches none of the twelve branches.
var ErrUnknownBranch = errors.New("unknown earthly branch")

// Stem is a heavenly stem, indexed 0 (甲) through 9 (癸).
type Stem int

const (
	StemJia Stem = iota
	StemYi
	StemBing
	StemDing
	StemWu
	StemJi
	StemGeng
	StemXin
	StemRen
	StemGui
)

// StemCount is the number of heavenly stems.
const StemCount = 10

// Branch is an earthly branch, indexed 0 (子) through 11 (亥).
type Branch int

const (
	BranchZi Branch = iota
	BranchChou
	BranchYin
	BranchMao
	BranchChen
	BranchSi
	BranchWu
	BranchWei
	BranchShen
	BranchYou
	BranchXu
	BranchHai
)

// BranchCount is the number of earthly branches.
const BranchCount = 12

var stemLabels = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var stemPinyin = [StemCount]string{"jia", "yi", "bing", "ding", "wu", "ji", "geng", "xin", "ren", "gui"}

var stemElements = [StemCount]element.Element{
	element.Wood, element.Wood,
	element.Fire, element.Fire,
	element.Earth, element.Earth,
	element.Metal, element.Metal,
	element.Water, element.Water,
}

var branchLabels = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var branchPinyin = [BranchCount]string{"zi", "chou", "yin", "mao", "chen", "si", "wu", "wei", "shen", "you", "xu", "hai"}

var branchElements = [BranchCount]element.Element{
	element.Water, // 子
	element.Earth, // 丑
	element.Wood,  // 寅
	element.Wood,  // 卯
	element.Earth, // 辰
	element.Fire,  // 巳
	element.Fire,  // 午
	element.Earth, // 未
	element.Metal, // 申
	element.Metal, // 酉
	element.Earth, // 戌
	element.Water, // 亥
}

// Stems lists the ten stems in cycle order.
func Stems() []Stem {
	out := make([]Stem, StemCount)
	for i := range out {
		out[i] = Stem(i)
	}
	return out
}

// Branches lists the twelve branches in cycle order.
func Branches() []Branch {
	out := make([]Branch, BranchCount)
	for i := range out {
		out[i] = Branch(i)
	}
	return out
}

// StemAt returns the stem for any integer offset, wrapping modulo 10.
func StemAt(index int) Stem {
	return Stem(mod(index, StemCount))
}

// BranchAt returns the branch for any integer offset, wrapping modulo 12.
func BranchAt(index int) Branch {
	return Branch(mod(index, BranchCount))
}

// Valid reports whether s is one of the ten stems.
func (s Stem) Valid() bool { return s >= StemJia && s <= StemGui }

// Index returns the zero-based position of s in the stem cycle.
func (s Stem) Index() int { return int(s) }

func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemLabels[s]
}

// Pinyin returns the romanized stem name.
func (s Stem) Pinyin() string {
	if !s.Valid() {
		return ""
	}
	return stemPinyin[s]
}

// Element returns the element carried by the stem.
func (s Stem) Element() element.Element {
	if !s.Valid() {
		return element.Unspecified
	}
	return stemElements[s]
}

// Valid reports whether b is one of the twelve branches.
func (b Branch) Valid() bool { return b >= BranchZi && b <= BranchHai }

// Index returns the zero-based position of b in the branch cycle.
func (b Branch) Index() int { return int(b) }

func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchLabels[b]
}

// Pinyin returns the romanized branch name.
func (b Branch) Pinyin() string {
	if !b.Valid() {
		return ""
	}
	return branchPinyin[b]
}

// Element returns the element carried by the branch.
func (b Branch) Element() element.Element {
	if !b.Valid() {
		return element.Unspecified
	}
	return branchElements[b]
}

// ParseStem accepts a Chinese label ("甲") or a pinyin name ("jia").
func ParseStem(raw string) (Stem, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for i := 0; i < StemCount; i++ {
		if value == stemLabels[i] || value == stemPinyin[i] {
			return Stem(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStem, raw)
}

// ParseBranch accepts a Chinese label ("子") or a pinyin name ("zi").
func ParseBranch(raw string) (Branch, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for i := 0; i < BranchCount; i++ {
		if value == branchLabels[i] || value == branchPinyin[i] {
			return Branch(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBranch, raw)
}

// Pair is a stem-branch combination such as 甲子.
type Pair struct {
	Stem   Stem
	Branch Branch
}

func (p Pair) String() string {
	return p.Stem.String() + p.Branch.String()
}

// Cyclic reports whether the pair occurs in the sixty-pair cycle. Only
// stems and branches of matching parity are ever combined.
func (p Pair) Cyclic() bool {
	return p.Stem.Valid() && p.Branch.Valid() && p.Stem.Index()%2 == p.Branch.Index()%2
}

// ParsePair parses a two-character label such as "甲子".
func ParsePair(raw string) (Pair, error) {
	runes := []rune(strings.TrimSpace(raw))
	if len(runes) != 2 {
		return Pair{}, fmt.Errorf("stem-branch pair %q must be two characters", raw)
	}
	stem, err := ParseStem(string(runes[0]))
	if err != nil {
		return Pair{}, err
	}
	branch, err := ParseBranch(string(runes[1]))
	if err != nil {
		return Pair{}, err
	}
	return Pair{Stem: stem, Branch: branch}, nil
}

func mod(value, modulus int) int {
	return ((value % modulus) + modulus) % modulus
}
