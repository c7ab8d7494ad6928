package element

import "testing"

func TestCyclesAreTotalPermutations(t *testing.T) {
	generated := map[Element]bool{}
	dominated := map[Element]bool{}
	for _, e := range All {
		g := e.Generates()
		d := e.Dominates()
		if !g.Valid() || !d.Valid() {
			t.Fatalf("%s: generates %v dominates %v, want valid elements", e, g, d)
		}
		if g == e || d == e {
			t.Fatalf("%s maps onto itself", e)
		}
		generated[g] = true
		dominated[d] = true
	}
	if len(generated) != 5 || len(dominated) != 5 {
		t.Fatalf("cycles are not permutations: generates %d targets, dominates %d targets", len(generated), len(dominated))
	}
}

func TestRelateIsTotalAndExclusive(t *testing.T) {
	counts := map[Relation]int{}
	for _, subject := range All {
		for _, other := range All {
			matches := 0
			if subject == other {
				matches++
			}
			if subject.Generates() == other {
				matches++
			}
			if subject.Dominates() == other {
				matches++
			}
			if other.Dominates() == subject {
				matches++
			}
			if other.Generates() == subject {
				matches++
			}
			if matches != 1 {
				t.Fatalf("Relate(%s, %s): %d relations hold, want exactly 1", subject, other, matches)
			}

			relation := Relate(subject, other)
			if relation == RelationUnspecified {
				t.Fatalf("Relate(%s, %s) = unspecified", subject, other)
			}
			counts[relation]++
		}
	}
	if counts[RelationSame] != 5 {
		t.Fatalf("same count = %d, want 5", counts[RelationSame])
	}
	for _, relation := range []Relation{RelationGenerates, RelationDominates, RelationDominatedBy, RelationGeneratedBy} {
		if counts[relation] != 5 {
			t.Fatalf("%s count = %d, want 5", relation, counts[relation])
		}
	}
}

func TestRelateKnownPairs(t *testing.T) {
	tests := []struct {
		subject Element
		other   Element
		want    Relation
	}{
		{Metal, Metal, RelationSame},
		{Metal, Water, RelationGenerates},
		{Metal, Wood, RelationDominates},
		{Metal, Fire, RelationDominatedBy},
		{Metal, Earth, RelationGeneratedBy},
		{Wood, Earth, RelationDominates},
		{Unspecified, Wood, RelationUnspecified},
	}
	for _, tt := range tests {
		if got := Relate(tt.subject, tt.other); got != tt.want {
			t.Errorf("Relate(%s, %s) = %s, want %s", tt.subject, tt.other, got, tt.want)
		}
	}
}
