package reading

import (
	"github.com/koriyoshi2041/zhouyi/internal/core/element"
	"github.com/koriyoshi2041/zhouyi/internal/core/ganzhi"
)

// Role is the relation of a line to its palace, read from their elements.
type Role int

const (
	RoleUnspecified Role = iota
	// RoleSibling shares the palace element.
	RoleSibling
	// RoleDescendant is generated by the palace.
	RoleDescendant
	// RoleWealth is dominated by the palace.
	RoleWealth
	// RoleOfficial dominates the palace.
	RoleOfficial
	// RoleParent generates the palace.
	RoleParent
)

// Roles lists the five roles.
var Roles = []Role{RoleSibling, RoleDescendant, RoleWealth, RoleOfficial, RoleParent}

func (r Role) String() string {
	switch r {
	case RoleSibling:
		return "兄弟"
	case RoleDescendant:
		return "子孙"
	case RoleWealth:
		return "妻财"
	case RoleOfficial:
		return "官鬼"
	case RoleParent:
		return "父母"
	default:
		return ""
	}
}

// Key returns the stable identifier used in JSON and locale catalogs.
func (r Role) Key() string {
	switch r {
	case RoleSibling:
		return "sibling"
	case RoleDescendant:
		return "descendant"
	case RoleWealth:
		return "wealth"
	case RoleOfficial:
		return "official"
	case RoleParent:
		return "parent"
	default:
		return "unspecified"
	}
}

// Relate derives the role of a line whose element is line within a palace
// whose element is palace. It is total over the five elements.
func Relate(palace, line element.Element) Role {
	switch element.Relate(palace, line) {
	case element.RelationSame:
		return RoleSibling
	case element.RelationGenerates:
		return RoleDescendant
	case element.RelationDominates:
		return RoleWealth
	case element.RelationDominatedBy:
		return RoleOfficial
	case element.RelationGeneratedBy:
		return RoleParent
	default:
		return RoleUnspecified
	}
}

// Guardian is one of the six guardian spirits assigned line by line from
// the day stem.
type Guardian int

const (
	GuardianUnspecified Guardian = iota
	GuardianAzureDragon
	GuardianVermilionBird
	GuardianHookArray
	GuardianSoaringSerpent
	GuardianWhiteTiger
	GuardianBlackTortoise
)

// guardianOrder is the fixed rotation.
var guardianOrder = [6]Guardian{
	GuardianAzureDragon,
	GuardianVermilionBird,
	GuardianHookArray,
	GuardianSoaringSerpent,
	GuardianWhiteTiger,
	GuardianBlackTortoise,
}

// guardianStart is the rotation offset for the first line, by day stem.
var guardianStart = [ganzhi.StemCount]int{
	0, 0, // 甲乙
	1, 1, // 丙丁
	2,    // 戊
	3,    // 己
	4, 4, // 庚辛
	5, 5, // 壬癸
}

func (g Guardian) String() string {
	switch g {
	case GuardianAzureDragon:
		return "青龙"
	case GuardianVermilionBird:
		return "朱雀"
	case GuardianHookArray:
		return "勾陈"
	case GuardianSoaringSerpent:
		return "螣蛇"
	case GuardianWhiteTiger:
		return "白虎"
	case GuardianBlackTortoise:
		return "玄武"
	default:
		return ""
	}
}

// Key returns the stable identifier used in JSON and locale catalogs.
func (g Guardian) Key() string {
	switch g {
	case GuardianAzureDragon:
		return "azure_dragon"
	case GuardianVermilionBird:
		return "vermilion_bird"
	case GuardianHookArray:
		return "hook_array"
	case GuardianSoaringSerpent:
		return "soaring_serpent"
	case GuardianWhiteTiger:
		return "white_tiger"
	case GuardianBlackTortoise:
		return "black_tortoise"
	default:
		return "unspecified"
	}
}

// Guardians returns the guardian of each line, bottom first, for a day
// with the given stem.
func Guardians(dayStem ganzhi.Stem) [6]Guardian {
	var out [6]Guardian
	if !dayStem.Valid() {
		return out
	}
	start := guardianStart[dayStem]
	for i := range out {
		out[i] = guardianOrder[(start+i)%len(guardianOrder)]
	}
	return out
}
