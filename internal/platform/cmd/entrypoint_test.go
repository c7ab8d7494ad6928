package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"

	"github.com/koriyoshi2041/zhouyi/internal/platform/otel"
)

type testConfig struct {
	Locale string `env:"CMD_TEST_LOCALE" envDefault:"en-US"`
	Method string `env:"CMD_TEST_METHOD" envDefault:"coin"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_LOCALE", "zh-CN")
	t.Setenv("CMD_TEST_METHOD", "yarrow")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfgRef.Locale, "locale", cfgRef.Locale, "locale")
	fs.StringVar(&cfgRef.Method, "method", cfgRef.Method, "method")

	if err := ParseArgs(fs, []string{"-locale", "en-US"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.Locale != "en-US" {
		t.Fatalf("expected flag value for locale, got %q", cfgRef.Locale)
	}
	if cfgRef.Method != "yarrow" {
		t.Fatalf("expected env method, got %q", cfgRef.Method)
	}
}

func TestParseConfigFromArgsReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_LOCALE", "zh-CN")
	t.Setenv("CMD_TEST_METHOD", "number")

	cfgRef := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	fs.StringVar(&cfgRef.Locale, "locale", "", "locale")
	fs.StringVar(&cfgRef.Method, "method", "", "method")
	if err := ParseConfigFromArgs(&cfgRef, fs, []string{"-method", "time"}); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfgRef.Method != "time" {
		t.Fatalf("expected parsed flag method, got %q", cfgRef.Method)
	}
	if cfgRef.Locale != "zh-CN" {
		t.Fatalf("expected env locale, got %q", cfgRef.Locale)
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", otel.Config{}, func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceCLI, otel.Config{}, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	boom := errors.New("boom")
	called := false
	err := RunWithTelemetry(context.Background(), ServiceCLI, otel.Config{}, func(context.Context) error {
		called = true
		return boom
	})
	if !called {
		t.Fatal("run was not called")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
