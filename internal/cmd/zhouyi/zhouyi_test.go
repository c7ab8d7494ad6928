package zhouyi

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	platformerrors "github.com/koriyoshi2041/zhouyi/internal/platform/errors"
	"github.com/koriyoshi2041/zhouyi/internal/platform/logging"
	"github.com/koriyoshi2041/zhouyi/internal/random"
	"github.com/koriyoshi2041/zhouyi/internal/services/divination/app"
)

var yiMaoNoon = time.Date(2024, 4, 21, 12, 0, 0, 0, time.UTC)

type result struct {
	cli    *CLI
	stdout string
	stderr string
	err    error
}

func testConfig() Config {
	return Config{
		TZ:      "UTC",
		Method:  "coin",
		Output:  OutputText,
		Logging: logging.Config{Level: "error", Format: logging.FormatConsole},
	}
}

func run(t *testing.T, cfg Config, args ...string) result {
	t.Helper()
	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "")
	var stdout, stderr bytes.Buffer
	cli := New(cfg, &stdout, &stderr,
		app.WithClock(func() time.Time { return yiMaoNoon }),
		app.WithSeedGenerator(func() (int64, error) { return 99, nil }),
		app.WithIDGenerator(func() string { return "reading-1" }),
		app.WithWorkers(2),
	)
	err := cli.Execute(context.Background(), args)
	return result{cli: cli, stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func decode[T any](t *testing.T, raw string) T {
	t.Helper()
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return out
}

type readingJSON struct {
	ID       string       `json:"id"`
	Method   string       `json:"method"`
	Seed     *random.Seed `json:"seed"`
	Values   []int        `json:"values"`
	Changing []int        `json:"changing"`
	Category string       `json:"category"`
	Original struct {
		Number int    `json:"number"`
		Key    string `json:"key"`
	} `json:"original"`
	Changed *struct {
		Number int `json:"number"`
	} `json:"changed"`
}

func TestAnalyzeJSON(t *testing.T) {
	res := run(t, testConfig(), "analyze", "--json", "999999")
	if res.err != nil {
		t.Fatalf("analyze: %v", res.err)
	}
	got := decode[readingJSON](t, res.stdout)
	if got.ID != "reading-1" || got.Original.Number != 1 || got.Changed == nil || got.Changed.Number != 2 {
		t.Fatalf("reading = %+v", got)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6}, got.Changing); diff != "" {
		t.Fatalf("changing mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeAcceptsSeparateValues(t *testing.T) {
	cfg := testConfig()
	cfg.Output = OutputJSON
	res := run(t, cfg, "analyze", "7", "8", "9", "8", "7", "6", "--category", "wealth")
	if res.err != nil {
		t.Fatalf("analyze: %v", res.err)
	}
	got := decode[readingJSON](t, res.stdout)
	if diff := cmp.Diff([]int{7, 8, 9, 8, 7, 6}, got.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got.Category == "" {
		t.Fatalf("category missing: %+v", got)
	}
}

func TestCastSeedReplays(t *testing.T) {
	first := run(t, testConfig(), "cast", "coin", "--seed", "42", "--json")
	second := run(t, testConfig(), "cast", "--seed", "42", "--json")
	if first.err != nil || second.err != nil {
		t.Fatalf("cast: %v / %v", first.err, second.err)
	}
	a := decode[readingJSON](t, first.stdout)
	b := decode[readingJSON](t, second.stdout)
	if a.Seed == nil || a.Seed.Value != 42 || a.Seed.Source != random.SeedSourceClient {
		t.Fatalf("seed = %+v", a.Seed)
	}
	if diff := cmp.Diff(a.Values, b.Values); diff != "" {
		t.Fatalf("replay mismatch (-first +second):\n%s", diff)
	}
}

func TestCastYarrowGeneratesSeed(t *testing.T) {
	res := run(t, testConfig(), "cast", "yarrow", "--json", "-q", "Will it rain?")
	if res.err != nil {
		t.Fatalf("cast: %v", res.err)
	}
	got := decode[readingJSON](t, res.stdout)
	if got.Method != "yarrow" || got.Seed == nil || got.Seed.Value != 99 || got.Seed.Source != random.SeedSourceGenerated {
		t.Fatalf("reading = %+v", got)
	}
}

func TestCastNumber(t *testing.T) {
	res := run(t, testConfig(), "cast", "number", "17", "26", "--json")
	if res.err != nil {
		t.Fatalf("cast: %v", res.err)
	}
	got := decode[readingJSON](t, res.stdout)
	if diff := cmp.Diff([]int{9, 7, 8, 7, 7, 7}, got.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got.Seed != nil || got.Original.Number != 10 {
		t.Fatalf("reading = %+v", got)
	}
}

func TestCastTimeUsesAt(t *testing.T) {
	res := run(t, testConfig(), "cast", "time", "--at", "2024-03-05 12:00", "--json")
	if res.err != nil {
		t.Fatalf("cast: %v", res.err)
	}
	got := decode[readingJSON](t, res.stdout)
	if diff := cmp.Diff([]int{9, 8, 7, 7, 8, 8}, got.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestCastManual(t *testing.T) {
	res := run(t, testConfig(), "cast", "manual", "hhh", "ttt", "hht", "htt", "hht", "htt", "--json")
	if res.err != nil {
		t.Fatalf("cast: %v", res.err)
	}
	got := decode[readingJSON](t, res.stdout)
	if got.Method != "manual" || len(got.Values) != 6 || got.Seed != nil {
		t.Fatalf("reading = %+v", got)
	}
}

func TestCastDefaultMethodNeedingArguments(t *testing.T) {
	cfg := testConfig()
	cfg.Method = "number"
	res := run(t, cfg, "cast")
	if got := platformerrors.ExitCode(res.err); got != platformerrors.ExitUsage {
		t.Fatalf("exit = %d, want %d (err %v)", got, platformerrors.ExitUsage, res.err)
	}
}

func TestTextReading(t *testing.T) {
	res := run(t, testConfig(), "analyze", "--plain", "--locale", "zh-CN", "977777")
	if res.err != nil {
		t.Fatalf("analyze: %v", res.err)
	}
	if res.cli.Locale() != "zh-CN" {
		t.Fatalf("locale = %q", res.cli.Locale())
	}
	for _, want := range []string{"乾为天", "天风姤"} {
		if !strings.Contains(res.stdout, want) {
			t.Fatalf("output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestLookup(t *testing.T) {
	res := run(t, testConfig(), "lookup", "63", "--plain")
	if res.err != nil {
		t.Fatalf("lookup: %v", res.err)
	}
	if !strings.Contains(res.stdout, "水火既济") {
		t.Fatalf("output missing name:\n%s", res.stdout)
	}

	res = run(t, testConfig(), "lookup", "nope")
	if got := platformerrors.ExitCode(res.err); got != platformerrors.ExitNotFound {
		t.Fatalf("exit = %d, want %d (err %v)", got, platformerrors.ExitNotFound, res.err)
	}
	if msg := res.cli.ErrorMessage(res.err); !strings.Contains(msg, "nope") {
		t.Fatalf("message = %q", msg)
	}
}

func TestPalaceJSON(t *testing.T) {
	res := run(t, testConfig(), "palace", "kan", "--json")
	if res.err != nil {
		t.Fatalf("palace: %v", res.err)
	}
	members := decode[[]struct {
		Number int `json:"number"`
	}](t, res.stdout)
	var numbers []int
	for _, m := range members {
		numbers = append(numbers, m.Number)
	}
	if diff := cmp.Diff([]int{29, 60, 3, 63, 49, 55, 36, 7}, numbers); diff != "" {
		t.Fatalf("palace mismatch (-want +got):\n%s", diff)
	}
}

func TestCalendar(t *testing.T) {
	res := run(t, testConfig(), "calendar", "--at", "2024-03-05 12:00", "--json")
	if res.err != nil {
		t.Fatalf("calendar: %v", res.err)
	}
	got := decode[struct {
		Day     string `json:"day"`
		Display string `json:"display"`
	}](t, res.stdout)
	if got.Day != "戊辰" {
		t.Fatalf("moment = %+v", got)
	}

	res = run(t, testConfig(), "calendar", "--json")
	if res.err != nil {
		t.Fatalf("calendar: %v", res.err)
	}
	if got := decode[struct {
		Day string `json:"day"`
	}](t, res.stdout); got.Day != "乙卯" {
		t.Fatalf("day = %q, want clock day 乙卯", got.Day)
	}
}

func TestProbabilityJSON(t *testing.T) {
	res := run(t, testConfig(), "probability", "yarrow", "--trials", "400", "--seed", "7", "--json")
	if res.err != nil {
		t.Fatalf("probability: %v", res.err)
	}
	got := decode[app.ProbabilityReport](t, res.stdout)
	if got.Method != "yarrow" || got.Trials != 400 || got.Lines != 2400 || len(got.Values) != 4 {
		t.Fatalf("report = %+v", got)
	}
	if got.Seed.Value != 7 || got.Seed.Source != random.SeedSourceClient {
		t.Fatalf("seed = %+v", got.Seed)
	}

	res = run(t, testConfig(), "probability", "time")
	if platformerrors.GetCode(res.err) != platformerrors.CodeNotRandom {
		t.Fatalf("err = %v, want NOT_RANDOM", res.err)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(*Config)
		args []string
		code platformerrors.Code
	}{
		{name: "unknown flag", args: []string{"analyze", "--bogus", "789789"}, code: platformerrors.CodeUsage},
		{name: "unknown command", args: []string{"divine"}, code: platformerrors.CodeUsage},
		{name: "missing values", args: []string{"analyze"}, code: platformerrors.CodeUsage},
		{name: "bad number", args: []string{"cast", "number", "three", "4"}, code: platformerrors.CodeUsage},
		{name: "bad values", args: []string{"analyze", "78"}, code: platformerrors.CodeInvalidLineValue},
		{name: "bad method", cfg: func(c *Config) { c.Method = "tea-leaves" }, args: []string{"cast"}, code: platformerrors.CodeInvalidMethod},
		{name: "bad category", args: []string{"analyze", "789789", "--category", "luck"}, code: platformerrors.CodeInvalidCategory},
		{name: "bad date", args: []string{"cast", "time", "--at", "2024-02-30"}, code: platformerrors.CodeInvalidDate},
		{name: "bad output", cfg: func(c *Config) { c.Output = "yaml" }, args: []string{"lookup", "1"}, code: platformerrors.CodeUsage},
		{name: "bad zone", args: []string{"calendar", "--tz", "Nowhere/Atlantis"}, code: platformerrors.CodeUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			res := run(t, cfg, tt.args...)
			if got := platformerrors.GetCode(res.err); got != tt.code {
				t.Fatalf("code = %s, want %s (err %v)", got, tt.code, res.err)
			}
			if got := platformerrors.ExitCode(res.err); got != platformerrors.ExitUsage {
				t.Fatalf("exit = %d, want %d", got, platformerrors.ExitUsage)
			}
			if res.cli.ErrorMessage(res.err) == "" {
				t.Fatal("empty error message")
			}
		})
	}
}

func TestLocalizedErrorMessage(t *testing.T) {
	res := run(t, testConfig(), "--locale", "zh-CN", "cast", "number", "5")
	if platformerrors.GetCode(res.err) != platformerrors.CodeUsage {
		t.Fatalf("err = %v", res.err)
	}
	if msg := res.cli.ErrorMessage(res.err); !strings.HasPrefix(msg, "用法错误：") {
		t.Fatalf("message = %q", msg)
	}
}

func TestNormalizeLocale(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"C":           "",
		"zh_CN.UTF-8": "zh-CN",
		"en_US@euro":  "en-US",
		" zh-Hans ":   "zh-Hans",
	}
	for raw, want := range tests {
		if got := normalizeLocale(raw); got != want {
			t.Errorf("normalizeLocale(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestHelpWithoutArguments(t *testing.T) {
	res := run(t, testConfig())
	if res.err != nil {
		t.Fatalf("help: %v", res.err)
	}
	for _, want := range []string{"cast", "analyze", "probability"} {
		if !strings.Contains(res.stdout, want) {
			t.Fatalf("help missing %q:\n%s", want, res.stdout)
		}
	}
}
