package reading

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory indicates a question category outside the fixed set.
var ErrUnknownCategory = errors.New("unknown question category")

// Category is the subject of the question being asked.
type Category int

const (
	CategoryUnspecified Category = iota
	CategoryCareer
	CategoryWealth
	CategoryExam
	CategoryMarriage
	CategoryHealth
	CategoryTravel
	CategoryLawsuit
	CategoryOther
)

// Categories lists every question category.
var Categories = []Category{
	CategoryCareer, CategoryWealth, CategoryExam, CategoryMarriage,
	CategoryHealth, CategoryTravel, CategoryLawsuit, CategoryOther,
}

var categoryLabels = map[Category][2]string{
	CategoryCareer:   {"career", "事业"},
	CategoryWealth:   {"wealth", "财运"},
	CategoryExam:     {"exam", "考试"},
	CategoryMarriage: {"marriage", "婚姻"},
	CategoryHealth:   {"health", "健康"},
	CategoryTravel:   {"travel", "出行"},
	CategoryLawsuit:  {"lawsuit", "诉讼"},
	CategoryOther:    {"other", "其他"},
}

// usefulRoles maps a category to the role that speaks for it. Categories
// without an entry have no useful line.
var usefulRoles = map[Category]Role{
	CategoryCareer:   RoleOfficial,
	CategoryWealth:   RoleWealth,
	CategoryExam:     RoleParent,
	CategoryMarriage: RoleWealth,
	CategoryHealth:   RoleOfficial,
	CategoryTravel:   RoleParent,
	CategoryLawsuit:  RoleOfficial,
}

func (c Category) String() string {
	if labels, ok := categoryLabels[c]; ok {
		return labels[0]
	}
	return "unspecified"
}

// Label returns the Chinese name of the category.
func (c Category) Label() string {
	return categoryLabels[c][1]
}

// Role returns the role that answers questions of category c.
func (c Category) Role() (Role, bool) {
	role, ok := usefulRoles[c]
	return role, ok
}

// ParseCategory accepts the English key or the Chinese name. An empty
// string yields CategoryUnspecified.
func ParseCategory(raw string) (Category, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return CategoryUnspecified, nil
	}
	for _, c := range Categories {
		labels := categoryLabels[c]
		if value == labels[0] || value == labels[1] {
			return c, nil
		}
	}
	return CategoryUnspecified, fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}

// UsefulLine returns the position of the first line, bottom up, whose role
// answers category. The bool is false when the category has no role or no
// line carries it.
func UsefulLine(lines []Line, category Category) (int, bool) {
	role, ok := category.Role()
	if !ok {
		return 0, false
	}
	for _, line := range lines {
		if line.Role == role {
			return line.Position, true
		}
	}
	return 0, false
}
