package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/koriyoshi2041/zhouyi/internal/core/calendar"
	"github.com/koriyoshi2041/zhouyi/internal/core/cast"
	"github.com/koriyoshi2041/zhouyi/internal/core/hexagram"
	"github.com/koriyoshi2041/zhouyi/internal/core/reading"
	"github.com/koriyoshi2041/zhouyi/internal/core/trigram"
	platformerrors "github.com/koriyoshi2041/zhouyi/internal/platform/errors"
)

// The parsers below accept the text forms used by the command line and the
// MCP tools, and fail with classified errors that carry the offending input.

// ParseMethod parses a casting method name.
func ParseMethod(raw string) (cast.Method, error) {
	method, err := cast.ParseMethod(raw)
	if err != nil {
		return cast.MethodUnspecified, withInput(platformerrors.CodeInvalidMethod, "Method", raw, err)
	}
	return method, nil
}

// ParseCategory parses a question category. Empty input means none.
func ParseCategory(raw string) (reading.Category, error) {
	category, err := reading.ParseCategory(raw)
	if err != nil {
		return reading.CategoryUnspecified, withInput(platformerrors.CodeInvalidCategory, "Category", raw, err)
	}
	return category, nil
}

// ParsePalace parses a palace override. Empty input means none.
func ParsePalace(raw string) (trigram.Trigram, error) {
	if strings.TrimSpace(raw) == "" {
		return trigram.Unspecified, nil
	}
	t, err := trigram.Parse(raw)
	if err != nil {
		return trigram.Unspecified, withInput(platformerrors.CodeInvalidTrigram, "Trigram", raw, err)
	}
	return t, nil
}

// ParseValues parses six line values, bottom first.
func ParseValues(raw string) ([6]hexagram.LineValue, error) {
	values, err := hexagram.ParseValues(raw)
	if err != nil {
		return values, Classify(err)
	}
	return values, nil
}

// ParseTosses parses manual coin tosses: six groups of three coins written
// as h/t (or 1/0), groups separated by spaces or commas, bottom line first.
// "hht tth ..." records heads, heads, tails for the first line.
func ParseTosses(raw string) ([][]bool, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' || r == '/' })
	groups := make([][]bool, 0, len(fields))
	for _, field := range fields {
		group := make([]bool, 0, len(field))
		for _, r := range strings.ToLower(field) {
			switch r {
			case 'h', '1', '正':
				group = append(group, true)
			case 't', '0', '反':
				group = append(group, false)
			default:
				return nil, platformerrors.WithMetadata(platformerrors.CodeInvalidToss,
					"toss "+strconv.Quote(field)+" must use h/t or 1/0",
					map[string]string{"Toss": field})
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// ParseTime parses an RFC 3339 timestamp or a local "2006-01-02 15:04"
// (or "2006-01-02T15") value in loc. Calendar fields that overflow (such
// as February 30) are rejected rather than normalized.
func ParseTime(raw string, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return t.In(loc), nil
	}
	t, err := parseLocalTime(trimmed, loc)
	if err != nil {
		return time.Time{}, platformerrors.WrapWithMetadata(platformerrors.CodeInvalidDate,
			"parse time "+strconv.Quote(raw), map[string]string{"Date": trimmed}, err)
	}
	return t, nil
}

// parseLocalTime reads "YYYY-MM-DD" with an optional " HH" or " HH:MM"
// suffix; "T" may replace the space.
func parseLocalTime(s string, loc *time.Location) (time.Time, error) {
	date, clock, hasClock := strings.Cut(s, " ")
	if !hasClock {
		date, clock, hasClock = strings.Cut(s, "T")
	}
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return time.Time{}, calendar.ErrInvalidDate
	}
	year, okYear := digits(parts[0], 4)
	month, okMonth := digits(parts[1], 2)
	day, okDay := digits(parts[2], 2)
	if !okYear || !okMonth || !okDay {
		return time.Time{}, calendar.ErrInvalidDate
	}

	hour, minute := 0, 0
	if hasClock {
		h, m, hasMinute := strings.Cut(clock, ":")
		var ok bool
		if hour, ok = digits(h, 2); !ok {
			return time.Time{}, calendar.ErrInvalidDate
		}
		if hasMinute {
			if minute, ok = digits(m, 2); !ok || minute > 59 {
				return time.Time{}, calendar.ErrInvalidDate
			}
		}
	}
	t, err := calendar.Date(year, month, day, hour, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(time.Duration(minute) * time.Minute), nil
}

// digits parses s as exactly width decimal digits.
func digits(s string, width int) (int, bool) {
	if len(s) != width {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
