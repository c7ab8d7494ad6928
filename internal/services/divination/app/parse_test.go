package app

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/koriyoshi2041/zhouyi/internal/core/calendar"
	"github.com/koriyoshi2041/zhouyi/internal/core/cast"
	"github.com/koriyoshi2041/zhouyi/internal/core/reading"
	"github.com/koriyoshi2041/zhouyi/internal/core/trigram"
	platformerrors "github.com/koriyoshi2041/zhouyi/internal/platform/errors"
)

func TestParseMethod(t *testing.T) {
	got, err := ParseMethod(" Yarrow ")
	if err != nil || got != cast.MethodYarrow {
		t.Fatalf("ParseMethod = %v, %v", got, err)
	}
	_, err = ParseMethod("tarot")
	requireCode(t, err, platformerrors.CodeInvalidMethod)
	if msg := platformerrors.UserMessage(err, "en-US"); msg == "" {
		t.Fatal("expected a localized message")
	}
}

func TestParseCategoryAndPalace(t *testing.T) {
	category, err := ParseCategory("")
	if err != nil || category != reading.CategoryUnspecified {
		t.Fatalf("empty category = %v, %v", category, err)
	}
	if category, err = ParseCategory("wealth"); err != nil || category != reading.CategoryWealth {
		t.Fatalf("wealth = %v, %v", category, err)
	}
	_, err = ParseCategory("weather")
	requireCode(t, err, platformerrors.CodeInvalidCategory)

	palace, err := ParsePalace("")
	if err != nil || palace != trigram.Unspecified {
		t.Fatalf("empty palace = %v, %v", palace, err)
	}
	if palace, err = ParsePalace("坎"); err != nil || palace != trigram.Kan {
		t.Fatalf("坎 = %v, %v", palace, err)
	}
	_, err = ParsePalace("sky")
	requireCode(t, err, platformerrors.CodeInvalidTrigram)
}

func TestParseValues(t *testing.T) {
	values, err := ParseValues("9,8,7,7,8,8")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if values[0] != 9 || values[5] != 8 {
		t.Fatalf("values = %v", values)
	}
	for _, raw := range []string{"98778", "987785", "98a788"} {
		_, err := ParseValues(raw)
		requireCode(t, err, platformerrors.CodeInvalidLineValue)
	}
}

func TestParseTosses(t *testing.T) {
	got, err := ParseTosses("hht,ttt 111/000 正反正 h")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := [][]bool{
		{true, true, false},
		{false, false, false},
		{true, true, true},
		{false, false, false},
		{true, false, true},
		{true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tosses mismatch (-want +got):\n%s", diff)
	}

	_, err = ParseTosses("hht hhx")
	requireCode(t, err, platformerrors.CodeInvalidToss)
	if msg := platformerrors.UserMessage(err, "en-US"); msg != "Toss hhx must use h/t, 1/0 or 正/反." {
		t.Fatalf("message = %q", msg)
	}
}

func TestParseTime(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2024-03-05 12:30", time.Date(2024, 3, 5, 12, 30, 0, 0, shanghai)},
		{"2024-03-05T07", time.Date(2024, 3, 5, 7, 0, 0, 0, shanghai)},
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, shanghai)},
		{"2024-02-29 23:59", time.Date(2024, 2, 29, 23, 59, 0, 0, shanghai)},
		{" 2024-03-05 07 ", time.Date(2024, 3, 5, 7, 0, 0, 0, shanghai)},
		{"2024-03-05T04:00:00Z", time.Date(2024, 3, 5, 12, 0, 0, 0, shanghai)},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.raw, shanghai)
		if err != nil {
			t.Fatalf("ParseTime(%q): %v", tt.raw, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("ParseTime(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	invalid := []string{
		"2024-02-30 10:00",
		"2023-02-29",
		"2024-13-01",
		"2024-03-05 24",
		"2024-03-05T07:60",
		"2024-3-5",
		"yesterday",
	}
	for _, raw := range invalid {
		_, err := ParseTime(raw, shanghai)
		requireCode(t, err, platformerrors.CodeInvalidDate)
		if !errors.Is(err, calendar.ErrInvalidDate) {
			t.Fatalf("ParseTime(%q) err = %v, want calendar.ErrInvalidDate", raw, err)
		}
	}
	_, err := ParseTime("2024-02-30 10:00", shanghai)
	if msg := platformerrors.UserMessage(err, "en-US"); msg != "2024-02-30 10:00 is not a valid date." {
		t.Fatalf("message = %q", msg)
	}
}
