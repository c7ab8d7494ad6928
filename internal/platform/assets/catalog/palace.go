package catalog

import (
	"github.com/koriyoshi2041/zhouyi/internal/core/hexagram"
	"github.com/koriyoshi2041/zhouyi/internal/core/trigram"
)

// rulingByOrder is the ruling line of each palace position 1..8.
var rulingByOrder = [8]int{6, 1, 2, 3, 4, 5, 4, 3}

// StructureLines returns the ruling and mirror lines for a palace order.
// The mirror line sits three positions from the ruling line.
func StructureLines(order int) (ruling, mirror int) {
	if order < 1 || order > 8 {
		return 0, 0
	}
	ruling = rulingByOrder[order-1]
	mirror = (ruling+2)%6 + 1
	return ruling, mirror
}

// PalaceMember derives the pattern at position order (1..8) of palace.
//
// The palace opens with its doubled trigram. Positions 2 through 6 flip
// lines from the bottom up, one more each step. Position 7 restores the
// fourth line of position 6, and position 8 restores the whole lower
// trigram of position 7 to the palace trigram.
func PalaceMember(palace trigram.Trigram, order int) hexagram.Pattern {
	p := hexagram.FromTrigrams(palace, palace)
	if order < 1 || order > 8 {
		return p
	}
	flips := order - 1
	if flips > 5 {
		flips = 5
	}
	for i := 0; i < flips; i++ {
		p[i] = p[i].Flip()
	}
	if order >= 7 {
		p[3] = p[3].Flip()
	}
	if order == 8 {
		pure := hexagram.FromTrigrams(palace, palace)
		copy(p[:3], pure[:3])
	}
	return p
}
