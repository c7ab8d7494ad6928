package cast

import (
	"github.com/koriyoshi2041/zhouyi/internal/core/hexagram"
	"github.com/koriyoshi2041/zhouyi/internal/core/trigram"
)

const (
	coinsPerLine  = 3
	linesPerCast  = 6
	yarrowStalks  = 49
	yarrowRounds  = 3
	tailFace      = 2
	headFace      = 3
	yarrowDivisor = 4
)

// Coin tosses three coins per line. Each coin shows 2 or 3 with equal
// chance and the line value is the sum.
//
// # Determinism
//
// Coin consumes exactly 18 draws of Intn(2) from src, bottom line first,
// so the same seeded source replays the same cast.
func Coin(src Source) [6]hexagram.LineValue {
	var values [6]hexagram.LineValue
	for i := range values {
		sum := 0
		for j := 0; j < coinsPerLine; j++ {
			sum += tossCoin(src)
		}
		values[i] = hexagram.LineValue(sum)
	}
	return values
}

func tossCoin(src Source) int {
	if src.Intn(2) == 1 {
		return headFace
	}
	return tailFace
}

// Yarrow runs the yarrow-stalk procedure once per line.
//
// Each line starts from 49 stalks and performs three rounds. A round splits
// the pool into two non-empty heaps, hangs one stalk aside from the right
// heap, and counts each heap off by fours. The remainders (0 read as 4)
// and the hung stalk are discarded. After three rounds the pool holds
// 24, 28, 32 or 36 stalks; divided by four it gives the line value.
func Yarrow(src Source) [6]hexagram.LineValue {
	var values [6]hexagram.LineValue
	for i := range values {
		pool := yarrowStalks
		for round := 0; round < yarrowRounds; round++ {
			left := src.Intn(pool-1) + 1
			pool = yarrowRound(pool, left)
		}
		values[i] = hexagram.LineValue(pool / yarrowDivisor)
	}
	return values
}

// yarrowRound returns the pool left after one round that splits pool with
// left stalks in the left heap.
func yarrowRound(pool, left int) int {
	right := pool - left - 1
	return pool - (1 + remainder(left) + remainder(right))
}

func remainder(heap int) int {
	r := heap % yarrowDivisor
	if r == 0 {
		return yarrowDivisor
	}
	return r
}

// Number casts from two integers. The first selects the upper trigram and
// the second the lower, each by prior-heaven number (remainder mod 8, 0
// read as 8). Their sum mod 6 (0 read as 6) selects the single moving
// line. Negative inputs are reduced with floored modulo.
func Number(n1, n2 int) [6]hexagram.LineValue {
	upper := priorHeaven(n1)
	lower := priorHeaven(n2)
	return withMovingLine(lower, upper, cycle(n1+n2, linesPerCast))
}

// Time casts from a year, month, day and hour.
//
// The year counts by its branch (year minus 4, mod 12, 0 read as 12). The
// sum of year, month and day selects the upper trigram. Adding the double
// hour number (23 and 0 count as 1, otherwise (hour+1)/2 + 1) selects the
// lower trigram and the moving line. Month and day are taken as given; no
// lunar conversion is applied.
func Time(year, month, day, hour int) ([6]hexagram.LineValue, error) {
	if hour < 0 || hour > 23 {
		return [6]hexagram.LineValue{}, &HourError{Hour: hour}
	}
	yearNumber := cycle(year-4, 12)
	sumDate := yearNumber + month + day
	sumAll := sumDate + hourNumber(hour)
	upper := priorHeaven(sumDate)
	lower := priorHeaven(sumAll)
	return withMovingLine(lower, upper, cycle(sumAll, linesPerCast)), nil
}

func hourNumber(hour int) int {
	if hour == 23 || hour == 0 {
		return 1
	}
	return (hour+1)/2 + 1
}

// Manual converts recorded tosses into line values. Each of the six groups
// holds three coins; true weighs 3 and false weighs 2.
func Manual(tosses [][]bool) ([6]hexagram.LineValue, error) {
	var values [6]hexagram.LineValue
	if len(tosses) != linesPerCast {
		return values, &InputShapeError{Group: -1, Expected: linesPerCast, Actual: len(tosses)}
	}
	for i, group := range tosses {
		if len(group) != coinsPerLine {
			return values, &InputShapeError{Group: i, Expected: coinsPerLine, Actual: len(group)}
		}
		sum := 0
		for _, heads := range group {
			if heads {
				sum += headFace
			} else {
				sum += tailFace
			}
		}
		values[i] = hexagram.LineValue(sum)
	}
	return values, nil
}

// withMovingLine spells lower then upper with young lines, turning the
// line at moving (1-based) into its old form.
func withMovingLine(lower, upper trigram.Trigram, moving int) [6]hexagram.LineValue {
	values := hexagram.Stable(hexagram.FromTrigrams(lower, upper))
	i := moving - 1
	if values[i] == hexagram.YoungYang {
		values[i] = hexagram.OldYang
	} else {
		values[i] = hexagram.OldYin
	}
	return values
}

// priorHeaven maps any integer onto the prior-heaven order.
func priorHeaven(n int) trigram.Trigram {
	return trigram.All()[cycle(n, trigram.Count)-1]
}

// cycle reduces n into 1..m, reading a zero remainder as m.
func cycle(n, m int) int {
	r := ((n % m) + m) % m
	if r == 0 {
		return m
	}
	return r
}
