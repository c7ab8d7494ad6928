package reading

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/koriyoshi2041/zhouyi/internal/core/element"
	"github.com/koriyoshi2041/zhouyi/internal/core/ganzhi"
	"github.com/koriyoshi2041/zhouyi/internal/core/hexagram"
	"github.com/koriyoshi2041/zhouyi/internal/core/trigram"
)

func qianStructures() StructureLookup {
	return StructureFunc(func(key string) (Structure, bool) {
		if key == "111111" {
			return Structure{Palace: trigram.Qian, Ruling: 6, Mirror: 3}, true
		}
		return Structure{}, false
	})
}

func stableQian() [6]hexagram.LineValue {
	return [6]hexagram.LineValue{7, 7, 7, 7, 7, 7}
}

func TestRelateAllPairs(t *testing.T) {
	counts := map[Role]int{}
	for _, palace := range element.All {
		for _, line := range element.All {
			role := Relate(palace, line)
			if role == RoleUnspecified {
				t.Fatalf("Relate(%s, %s) unspecified", palace, line)
			}
			counts[role]++
		}
	}
	for _, role := range Roles {
		if counts[role] != 5 {
			t.Fatalf("%s assigned %d times, want 5", role.Key(), counts[role])
		}
	}
}

func TestRelateDirections(t *testing.T) {
	tests := []struct {
		palace, line element.Element
		want         Role
	}{
		{element.Metal, element.Metal, RoleSibling},
		{element.Metal, element.Water, RoleDescendant},
		{element.Metal, element.Wood, RoleWealth},
		{element.Metal, element.Fire, RoleOfficial},
		{element.Metal, element.Earth, RoleParent},
	}
	for _, tt := range tests {
		if got := Relate(tt.palace, tt.line); got != tt.want {
			t.Fatalf("Relate(%s, %s) = %s, want %s", tt.palace, tt.line, got, tt.want)
		}
	}
}

func TestGuardians(t *testing.T) {
	tests := []struct {
		stem  ganzhi.Stem
		first Guardian
	}{
		{ganzhi.StemJia, GuardianAzureDragon},
		{ganzhi.StemYi, GuardianAzureDragon},
		{ganzhi.StemDing, GuardianVermilionBird},
		{ganzhi.StemWu, GuardianHookArray},
		{ganzhi.StemJi, GuardianSoaringSerpent},
		{ganzhi.StemXin, GuardianWhiteTiger},
		{ganzhi.StemGui, GuardianBlackTortoise},
	}
	for _, tt := range tests {
		got := Guardians(tt.stem)
		if got[0] != tt.first {
			t.Fatalf("Guardians(%s)[0] = %s, want %s", tt.stem, got[0], tt.first)
		}
		seen := map[Guardian]bool{}
		for _, g := range got {
			seen[g] = true
		}
		if len(seen) != 6 {
			t.Fatalf("Guardians(%s) = %v, want all six", tt.stem, got)
		}
	}
	if got := Guardians(ganzhi.StemGui); got[1] != GuardianAzureDragon {
		t.Fatalf("rotation should wrap: %v", got)
	}
}

func TestRuleForCounts(t *testing.T) {
	for count := 0; count <= 6; count++ {
		if RuleFor(count).Text == "" {
			t.Fatalf("RuleFor(%d) empty", count)
		}
	}
	if got := RuleFor(0).Text; got != "无变爻（静卦），以本卦卦辞断。" {
		t.Fatalf("RuleFor(0) = %q", got)
	}
	if got := RuleFor(7).Text; got != "" {
		t.Fatalf("RuleFor(7) = %q, want empty", got)
	}
}

func labels(refs []Reference) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Label
	}
	return out
}

func TestConsult(t *testing.T) {
	tests := []struct {
		name      string
		positions []int
		want      []string
	}{
		{"static", nil, []string{"本卦卦辞"}},
		{"one", []int{3}, []string{"本卦第3爻爻辞"}},
		{"two", []int{2, 5}, []string{"本卦第2爻爻辞", "本卦第5爻爻辞", "(以上爻为主)"}},
		{"three", []int{1, 2, 3}, []string{"本卦卦辞", "之卦卦辞", "(以本卦为主)"}},
		{"four", []int{1, 2, 4, 6}, []string{"之卦第3爻爻辞", "之卦第5爻爻辞", "(以下爻为主)"}},
		{"five", []int{1, 2, 3, 4, 6}, []string{"之卦第5爻爻辞"}},
		{"six", []int{1, 2, 3, 4, 5, 6}, []string{"乾坤看用九/用六，其他卦看之卦卦辞"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, labels(Consult(tt.positions))); diff != "" {
				t.Fatalf("Consult(%v) mismatch (-want +got):\n%s", tt.positions, diff)
			}
		})
	}

	refs := Consult([]int{1, 2, 4, 6})
	if refs[0].Target != TargetChanged || refs[0].Kind != ReferenceLine || refs[0].Line != 3 {
		t.Fatalf("four-change reference = %+v", refs[0])
	}
}

func TestAnalyzeStableQian(t *testing.T) {
	ctx := Context{Day: ganzhi.Pair{Stem: ganzhi.StemYi, Branch: ganzhi.BranchMao}, Month: ganzhi.BranchYin, Category: CategoryWealth}
	result, err := Analyze(stableQian(), ctx, qianStructures())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Original.String() != "111111" || result.Mirror.String() != "111111" {
		t.Fatalf("patterns = %s / %s", result.Original, result.Mirror)
	}
	if result.Changed != nil {
		t.Fatalf("Changed = %s, want nil", result.Changed)
	}
	if len(result.Changing) != 0 || result.Rule.Changing != 0 {
		t.Fatalf("changing = %v", result.Changing)
	}
	if len(result.Approximations) != 0 {
		t.Fatalf("approximations = %v, want none", result.Approximations)
	}
	if result.Palace != trigram.Qian || result.Upper != trigram.Qian || result.Lower != trigram.Qian {
		t.Fatalf("trigrams = %s/%s palace %s", result.Upper, result.Lower, result.Palace)
	}

	// Both halves plant 甲子 甲寅 甲辰; the upper half reuses indices 0..2.
	wantBranches := []ganzhi.Branch{ganzhi.BranchZi, ganzhi.BranchYin, ganzhi.BranchChen, ganzhi.BranchZi, ganzhi.BranchYin, ganzhi.BranchChen}
	wantRoles := []Role{RoleDescendant, RoleWealth, RoleParent, RoleDescendant, RoleWealth, RoleParent}
	wantGuardians := []Guardian{GuardianAzureDragon, GuardianVermilionBird, GuardianHookArray, GuardianSoaringSerpent, GuardianWhiteTiger, GuardianBlackTortoise}
	for i, line := range result.Lines {
		if line.Position != i+1 {
			t.Fatalf("line %d position = %d", i, line.Position)
		}
		if line.Stem != ganzhi.StemJia {
			t.Fatalf("line %d stem = %s, want 甲", i+1, line.Stem)
		}
		if line.Branch != wantBranches[i] {
			t.Fatalf("line %d branch = %s, want %s", i+1, line.Branch, wantBranches[i])
		}
		if line.Element != line.Branch.Element() {
			t.Fatalf("line %d element = %s, want branch element", i+1, line.Element)
		}
		if line.Role != wantRoles[i] {
			t.Fatalf("line %d role = %s, want %s", i+1, line.Role, wantRoles[i])
		}
		if line.Guardian != wantGuardians[i] {
			t.Fatalf("line %d guardian = %s, want %s", i+1, line.Guardian, wantGuardians[i])
		}
		wantVoid := line.Branch == ganzhi.BranchZi
		if line.Void != wantVoid {
			t.Fatalf("line %d void = %v, want %v", i+1, line.Void, wantVoid)
		}
		if line.Ruling != (i+1 == 6) || line.Mirror != (i+1 == 3) {
			t.Fatalf("line %d ruling/mirror = %v/%v", i+1, line.Ruling, line.Mirror)
		}
	}
	if diff := cmp.Diff([]ganzhi.Branch{ganzhi.BranchZi, ganzhi.BranchChou}, result.Void); diff != "" {
		t.Fatalf("void mismatch (-want +got):\n%s", diff)
	}
	if result.UsefulLine != 2 {
		t.Fatalf("useful line = %d, want 2", result.UsefulLine)
	}
	if diff := cmp.Diff([]string{"本卦卦辞"}, labels(result.Consult)); diff != "" {
		t.Fatalf("consult mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeFallbacks(t *testing.T) {
	ctx := Context{Day: ganzhi.Pair{Stem: ganzhi.StemJia, Branch: ganzhi.BranchZi}}
	result, err := Analyze(stableQian(), ctx, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Ruling != DefaultRuling || result.Response != DefaultMirror {
		t.Fatalf("ruling/response = %d/%d", result.Ruling, result.Response)
	}
	if !result.Approximated(ApproxDefaultRulingMirror) || !result.Approximated(ApproxPalaceFromUpper) {
		t.Fatalf("approximations = %v", result.Approximations)
	}
	if result.Palace != trigram.Qian {
		t.Fatalf("palace = %s, want upper trigram", result.Palace)
	}
}

func TestAnalyzePalaceOverride(t *testing.T) {
	ctx := Context{Day: ganzhi.Pair{Stem: ganzhi.StemJia, Branch: ganzhi.BranchZi}, Palace: trigram.Kan}
	result, err := Analyze(stableQian(), ctx, qianStructures())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Palace != trigram.Kan {
		t.Fatalf("palace = %s, want 坎", result.Palace)
	}
	if result.Lines[0].Role != RoleSibling {
		t.Fatalf("line 1 role = %s, want sibling under a water palace", result.Lines[0].Role)
	}
	if result.Approximated(ApproxPalaceFromUpper) {
		t.Fatal("override should not record a palace approximation")
	}
}

func TestAnalyzeChangingLines(t *testing.T) {
	values := [6]hexagram.LineValue{7, 9, 7, 7, 7, 7}
	ctx := Context{Day: ganzhi.Pair{Stem: ganzhi.StemWu, Branch: ganzhi.BranchChen}, Category: CategoryCareer}
	result, err := Analyze(values, ctx, qianStructures())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Changed == nil || result.Changed.String() != "101111" {
		t.Fatalf("changed = %v, want 101111", result.Changed)
	}
	if diff := cmp.Diff([]int{2}, result.Changing); diff != "" {
		t.Fatalf("changing mismatch (-want +got):\n%s", diff)
	}
	if result.Rule.Text != "一爻变，以本卦变爻之爻辞断。" {
		t.Fatalf("rule = %q", result.Rule.Text)
	}
	if !result.Lines[1].Changing || result.Lines[1].Value != hexagram.OldYang {
		t.Fatalf("line 2 = %+v", result.Lines[1])
	}
	// No line of 乾 is fire, so a career question has no useful line.
	if result.UsefulLine != 0 {
		t.Fatalf("useful line = %d, want 0", result.UsefulLine)
	}
	if result.Lines[0].Guardian != GuardianHookArray {
		t.Fatalf("line 1 guardian = %s", result.Lines[0].Guardian)
	}
}

func TestAnalyzeRejectsInvalidValues(t *testing.T) {
	_, err := Analyze([6]hexagram.LineValue{7, 7, 7, 7, 7, 5}, Context{}, nil)
	if !errors.Is(err, hexagram.ErrInvalidLineValue) {
		t.Fatalf("err = %v, want ErrInvalidLineValue", err)
	}
}

func TestParseCategory(t *testing.T) {
	for raw, want := range map[string]Category{"": CategoryUnspecified, "Career": CategoryCareer, "婚姻": CategoryMarriage, "other": CategoryOther} {
		got, err := ParseCategory(raw)
		if err != nil || got != want {
			t.Fatalf("ParseCategory(%q) = %v, %v; want %v", raw, got, err, want)
		}
	}
	if _, err := ParseCategory("weather"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("ParseCategory(weather) err = %v", err)
	}
	if _, ok := CategoryOther.Role(); ok {
		t.Fatal("other should have no useful role")
	}
}
