// Package element implements the five elements and their generation and
// domination cycles.
package element

// Element is one of the five elemental categories.
type Element int

const (
	Unspecified Element = iota
	Wood
	Fire
	Earth
	Metal
	Water
)

// All lists the five elements in generation order.
var All = []Element{Wood, Fire, Earth, Metal, Water}

func (e Element) String() string {
	switch e {
	case Wood:
		return "木"
	case Fire:
		return "火"
	case Earth:
		return "土"
	case Metal:
		return "金"
	case Water:
		return "水"
	default:
		return "?"
	}
}

// Key returns the stable lowercase identifier used in catalogs and JSON.
func (e Element) Key() string {
	switch e {
	case Wood:
		return "wood"
	case Fire:
		return "fire"
	case Earth:
		return "earth"
	case Metal:
		return "metal"
	case Water:
		return "water"
	default:
		return "unspecified"
	}
}

// Valid reports whether e is one of the five elements.
func (e Element) Valid() bool {
	return e >= Wood && e <= Water
}

// Generates returns the element that e gives rise to.
// Wood feeds fire, fire makes earth, earth bears metal, metal carries water,
// water nourishes wood.
func (e Element) Generates() Element {
	switch e {
	case Wood:
		return Fire
	case Fire:
		return Earth
	case Earth:
		return Metal
	case Metal:
		return Water
	case Water:
		return Wood
	default:
		return Unspecified
	}
}

// Dominates returns the element that e overcomes.
func (e Element) Dominates() Element {
	switch e {
	case Wood:
		return Earth
	case Earth:
		return Water
	case Water:
		return Fire
	case Fire:
		return Metal
	case Metal:
		return Wood
	default:
		return Unspecified
	}
}

// Relation describes how a subject element stands toward another.
type Relation int

const (
	RelationUnspecified Relation = iota
	// RelationSame holds when both elements are equal.
	RelationSame
	// RelationGenerates holds when the subject generates the other.
	RelationGenerates
	// RelationDominates holds when the subject dominates the other.
	RelationDominates
	// RelationDominatedBy holds when the other dominates the subject.
	RelationDominatedBy
	// RelationGeneratedBy holds when the other generates the subject.
	RelationGeneratedBy
)

func (r Relation) String() string {
	switch r {
	case RelationSame:
		return "same"
	case RelationGenerates:
		return "generates"
	case RelationDominates:
		return "dominates"
	case RelationDominatedBy:
		return "dominated-by"
	case RelationGeneratedBy:
		return "generated-by"
	default:
		return "unspecified"
	}
}

// Relate classifies subject against other. For any two valid elements
// exactly one relation holds.
func Relate(subject, other Element) Relation {
	if !subject.Valid() || !other.Valid() {
		return RelationUnspecified
	}
	switch {
	case subject == other:
		return RelationSame
	case subject.Generates() == other:
		return RelationGenerates
	case subject.Dominates() == other:
		return RelationDominates
	case other.Dominates() == subject:
		return RelationDominatedBy
	case other.Generates() == subject:
		return RelationGeneratedBy
	default:
		return RelationUnspecified
	}
}
