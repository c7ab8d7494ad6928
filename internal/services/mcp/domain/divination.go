package domain

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/koriyoshi2041/zhouyi/internal/core/calendar"
	"github.com/koriyoshi2041/zhouyi/internal/platform/timeouts"
	"github.com/koriyoshi2041/zhouyi/internal/services/divination/app"
)

// Divination is the service surface the tools call.
type Divination interface {
	Cast(ctx context.Context, req app.CastRequest) (app.Reading, error)
	Analyze(ctx context.Context, req app.AnalyzeRequest) (app.Reading, error)
	Probability(ctx context.Context, req app.ProbabilityRequest) (app.ProbabilityReport, error)
	Lookup(ctx context.Context, ref string) (app.HexagramView, error)
	Moment(t time.Time) calendar.Moment
	Location() *time.Location
}

// QuestionInput carries the context shared by cast and analyze.
type QuestionInput struct {
	Question string `json:"question,omitempty" jsonschema:"the question asked, recorded verbatim"`
	Category string `json:"category,omitempty" jsonschema:"question category: career, wealth, exam, marriage, health, travel, lawsuit or other"`
	Palace   string `json:"palace,omitempty" jsonschema:"optional palace override trigram, such as qian or 乾"`
	At       string `json:"at,omitempty" jsonschema:"moment of the reading, RFC 3339 or 2006-01-02 15:04 in server time; empty means now"`
	Locale   string `json:"locale,omitempty" jsonschema:"locale for error messages, such as en-US or zh-CN"`
}

// CastInput represents the MCP tool input for a cast.
type CastInput struct {
	QuestionInput
	Method  string `json:"method" jsonschema:"casting method: coin, yarrow, number, time or manual"`
	Seed    *int64 `json:"seed,omitempty" jsonschema:"optional seed for coin and yarrow casts; reuse it to replay a cast"`
	Numbers []int  `json:"numbers,omitempty" jsonschema:"two numbers for the number method"`
	Tosses  string `json:"tosses,omitempty" jsonschema:"six groups of three coins for the manual method, e.g. hht ttt hth hhh tht htt"`
}

// AnalyzeInput represents the MCP tool input for analyzing known values.
type AnalyzeInput struct {
	QuestionInput
	Values string `json:"values" jsonschema:"six line values 6, 7, 8 or 9, bottom first, e.g. 987789"`
}

// LookupInput represents the MCP tool input for a catalog lookup.
type LookupInput struct {
	Ref    string `json:"ref" jsonschema:"number, Chinese or English name, binary key or six line values"`
	Locale string `json:"locale,omitempty" jsonschema:"locale for error messages"`
}

// MomentInput represents the MCP tool input for a calendar description.
type MomentInput struct {
	At     string `json:"at,omitempty" jsonschema:"moment to describe; empty means now"`
	Locale string `json:"locale,omitempty" jsonschema:"locale for error messages"`
}

// ProbabilityInput represents the MCP tool input for line probabilities.
type ProbabilityInput struct {
	Method string `json:"method" jsonschema:"coin or yarrow"`
	Trials int    `json:"trials,omitempty" jsonschema:"simulated casts; zero uses the default"`
	Seed   *int64 `json:"seed,omitempty" jsonschema:"optional simulation seed"`
	Locale string `json:"locale,omitempty" jsonschema:"locale for error messages"`
}

// CastTool defines the MCP tool schema for casting a hexagram.
func CastTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "hexagram_cast",
		Description: "Casts a hexagram with the chosen method and returns the annotated reading",
	}
}

// AnalyzeTool defines the MCP tool schema for annotating known line values.
func AnalyzeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "hexagram_analyze",
		Description: "Annotates six known line values without casting",
	}
}

// LookupTool defines the MCP tool schema for catalog lookups.
func LookupTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "hexagram_lookup",
		Description: "Returns a hexagram's texts by number, name, key or line values",
	}
}

// MomentTool defines the MCP tool schema for calendar descriptions.
func MomentTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "calendar_moment",
		Description: "Describes a moment as day pillar, month branch and double hour",
	}
}

// ProbabilityTool defines the MCP tool schema for line value probabilities.
func ProbabilityTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "line_probability",
		Description: "Compares exact line value probabilities of a method with a seeded simulation",
	}
}

// CastHandler executes a cast.
func CastHandler(svc Divination) mcp.ToolHandlerFor[CastInput, ReadingResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CastInput) (*mcp.CallToolResult, ReadingResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, timeouts.Tool)
		defer cancel()

		question, err := parseQuestion(svc, input.QuestionInput)
		if err != nil {
			return nil, ReadingResult{}, toolError("hexagram cast", err, input.Locale)
		}
		method, err := app.ParseMethod(input.Method)
		if err != nil {
			return nil, ReadingResult{}, toolError("hexagram cast", err, input.Locale)
		}
		req := app.CastRequest{Question: question, Method: method, Seed: input.Seed, Numbers: input.Numbers}
		if strings.TrimSpace(input.Tosses) != "" {
			req.Tosses, err = app.ParseTosses(input.Tosses)
			if err != nil {
				return nil, ReadingResult{}, toolError("hexagram cast", err, input.Locale)
			}
		}

		rd, err := svc.Cast(runCtx, req)
		if err != nil {
			return nil, ReadingResult{}, toolError("hexagram cast", err, input.Locale)
		}
		meta := ToolCallMetadata{InvocationID: NewInvocationID(), ReadingID: rd.ID}
		return CallToolResultWithMetadata(meta), readingResult(rd), nil
	}
}

// AnalyzeHandler annotates caller supplied line values.
func AnalyzeHandler(svc Divination) mcp.ToolHandlerFor[AnalyzeInput, ReadingResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, ReadingResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, timeouts.Tool)
		defer cancel()

		question, err := parseQuestion(svc, input.QuestionInput)
		if err != nil {
			return nil, ReadingResult{}, toolError("hexagram analyze", err, input.Locale)
		}
		values, err := app.ParseValues(input.Values)
		if err != nil {
			return nil, ReadingResult{}, toolError("hexagram analyze", err, input.Locale)
		}
		rd, err := svc.Analyze(runCtx, app.AnalyzeRequest{Question: question, Values: values})
		if err != nil {
			return nil, ReadingResult{}, toolError("hexagram analyze", err, input.Locale)
		}
		meta := ToolCallMetadata{InvocationID: NewInvocationID(), ReadingID: rd.ID}
		return CallToolResultWithMetadata(meta), readingResult(rd), nil
	}
}

// LookupHandler resolves a catalog entry.
func LookupHandler(svc Divination) mcp.ToolHandlerFor[LookupInput, HexagramResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LookupInput) (*mcp.CallToolResult, HexagramResult, error) {
		h, err := svc.Lookup(ctx, input.Ref)
		if err != nil {
			return nil, HexagramResult{}, toolError("hexagram lookup", err, input.Locale)
		}
		return CallToolResultWithMetadata(ToolCallMetadata{InvocationID: NewInvocationID()}), hexagramResult(h), nil
	}
}

// MomentHandler describes a moment.
func MomentHandler(svc Divination) mcp.ToolHandlerFor[MomentInput, MomentResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input MomentInput) (*mcp.CallToolResult, MomentResult, error) {
		var at time.Time
		if strings.TrimSpace(input.At) != "" {
			parsed, err := app.ParseTime(input.At, svc.Location())
			if err != nil {
				return nil, MomentResult{}, toolError("calendar moment", err, input.Locale)
			}
			at = parsed
		}
		return CallToolResultWithMetadata(ToolCallMetadata{InvocationID: NewInvocationID()}), momentResult(svc.Moment(at)), nil
	}
}

// ProbabilityHandler runs a line value simulation.
func ProbabilityHandler(svc Divination) mcp.ToolHandlerFor[ProbabilityInput, ProbabilityResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProbabilityInput) (*mcp.CallToolResult, ProbabilityResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, timeouts.Tool)
		defer cancel()

		method, err := app.ParseMethod(input.Method)
		if err != nil {
			return nil, ProbabilityResult{}, toolError("line probability", err, input.Locale)
		}
		report, err := svc.Probability(runCtx, app.ProbabilityRequest{Method: method, Trials: input.Trials, Seed: input.Seed})
		if err != nil {
			return nil, ProbabilityResult{}, toolError("line probability", err, input.Locale)
		}
		return CallToolResultWithMetadata(ToolCallMetadata{InvocationID: NewInvocationID()}), probabilityResult(report), nil
	}
}

func parseQuestion(svc Divination, input QuestionInput) (app.Question, error) {
	category, err := app.ParseCategory(input.Category)
	if err != nil {
		return app.Question{}, err
	}
	palace, err := app.ParsePalace(input.Palace)
	if err != nil {
		return app.Question{}, err
	}
	question := app.Question{Text: input.Question, Category: category, Palace: palace}
	if strings.TrimSpace(input.At) != "" {
		at, err := app.ParseTime(input.At, svc.Location())
		if err != nil {
			return app.Question{}, err
		}
		question.At = &at
	}
	return question, nil
}
