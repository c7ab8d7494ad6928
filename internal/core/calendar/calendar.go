// Package calendar derives the stem-branch labels of a moment: the day
// pillar, the month branch and the double hour.
//
// All functions read the year, month, day and hour of the given time in
// that time's own location. Callers choose the location; nothing here
// consults the process clock or time zone.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/koriyoshi2041/zhouyi/internal/core/ganzhi"
)

// ErrInvalidDate indicates calendar fields that do not name a real moment.
var ErrInvalidDate = errors.New("invalid calendar date")

// epochJDN is the Julian day number of 1900-01-01, a 甲戌 day.
const epochJDN = 2415021

// epochBranch is the branch index of the epoch day.
const epochBranch = 10

// JulianDayNumber returns the Julian day number of a proleptic Gregorian
// date.
func JulianDayNumber(year, month, day int) int {
	a := floorDiv(14-month, 12)
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + floorDiv(153*m+2, 5) + 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045
}

// DayPillar returns the stem-branch pair of the civil day containing t.
func DayPillar(t time.Time) ganzhi.Pair {
	offset := JulianDayNumber(t.Year(), int(t.Month()), t.Day()) - epochJDN
	return ganzhi.Pair{
		Stem:   ganzhi.StemAt(offset),
		Branch: ganzhi.BranchAt(offset + epochBranch),
	}
}

type monthBoundary struct {
	month  time.Month
	day    int
	branch ganzhi.Branch
}

// monthBoundaries approximates the twelve solar terms that open each
// branch month. The real terms drift by a day or two from year to year.
var monthBoundaries = []monthBoundary{
	{time.January, 6, ganzhi.BranchChou},
	{time.February, 4, ganzhi.BranchYin},
	{time.March, 6, ganzhi.BranchMao},
	{time.April, 5, ganzhi.BranchChen},
	{time.May, 6, ganzhi.BranchSi},
	{time.June, 6, ganzhi.BranchWu},
	{time.July, 7, ganzhi.BranchWei},
	{time.August, 8, ganzhi.BranchShen},
	{time.September, 8, ganzhi.BranchYou},
	{time.October, 8, ganzhi.BranchXu},
	{time.November, 7, ganzhi.BranchHai},
	{time.December, 7, ganzhi.BranchZi},
}

// MonthBranch returns the branch of the solar month containing t. Days
// before the January boundary still belong to the previous 子 month.
func MonthBranch(t time.Time) ganzhi.Branch {
	month, day := t.Month(), t.Day()
	for i := len(monthBoundaries) - 1; i >= 0; i-- {
		b := monthBoundaries[i]
		if month > b.month || (month == b.month && day >= b.day) {
			return b.branch
		}
	}
	return ganzhi.BranchZi
}

var doubleHourLabels = [ganzhi.BranchCount]string{
	"子时(23-01)", "丑时(01-03)", "寅时(03-05)", "卯时(05-07)",
	"辰时(07-09)", "巳时(09-11)", "午时(11-13)", "未时(13-15)",
	"申时(15-17)", "酉时(17-19)", "戌时(19-21)", "亥时(21-23)",
}

// DoubleHour returns the branch of the two-hour period containing t and
// its display label. The 子 hour spans 23:00 to 01:00.
func DoubleHour(t time.Time) (ganzhi.Branch, string) {
	index := ((t.Hour() + 1) % 24) / 2
	return ganzhi.Branch(index), doubleHourLabels[index]
}

// Date builds a moment from caller-supplied fields in loc, rejecting
// fields that time.Date would silently normalize.
func Date(year, month, day, hour int, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if month < 1 || month > 12 || day < 1 || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d %02d:00", ErrInvalidDate, year, month, day, hour)
	}
	t := time.Date(year, time.Month(month), day, hour, 0, 0, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return t, nil
}

// Moment is the full stem-branch description of a point in time.
type Moment struct {
	Time            time.Time     `json:"time"`
	Day             ganzhi.Pair   `json:"-"`
	Month           ganzhi.Branch `json:"-"`
	Hour            ganzhi.Branch `json:"-"`
	HourLabel       string        `json:"hour_label"`
	DayLabel        string        `json:"day"`
	MonthLabel      string        `json:"month"`
	HourBranchLabel string        `json:"hour"`
	Display         string        `json:"display"`
}

// Describe computes every label for t.
func Describe(t time.Time) Moment {
	day := DayPillar(t)
	month := MonthBranch(t)
	hour, label := DoubleHour(t)
	return Moment{
		Time:            t,
		Day:             day,
		Month:           month,
		Hour:            hour,
		HourLabel:       label,
		DayLabel:        day.String(),
		MonthLabel:      month.String(),
		HourBranchLabel: hour.String(),
		Display: fmt.Sprintf("%d年%d月%d日 %s · %s日 %s月",
			t.Year(), int(t.Month()), t.Day(), label, day, month),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
