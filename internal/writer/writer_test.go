package writer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/pdiddy/article-engine/pkg/types"
)

// mockBackend routes prompts by kind: section prompts get sectionFn, review
// prompts consume verdicts in order.
type mockBackend struct {
	sectionFn    func(prompt string) string
	verdicts     []string
	sectionCalls int
	reviewCalls  int
	err          error
}

func (m *mockBackend) Complete(_ context.Context, prompt string, _ int) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if strings.HasPrefix(prompt, "Review this article") {
		m.reviewCalls++
		if m.reviewCalls <= len(m.verdicts) {
			return m.verdicts[m.reviewCalls-1], nil
		}
		return "STATUS: PASS\n\nISSUES: None", nil
	}
	m.sectionCalls++
	if m.sectionFn != nil {
		return m.sectionFn(prompt), nil
	}
	return "generated content", nil
}

// sectionTitle pulls the requested title out of a section prompt.
func sectionTitle(prompt string) string {
	i := strings.Index(prompt, "SECTION TO WRITE:\n")
	if i < 0 {
		return ""
	}
	line := prompt[i+len("SECTION TO WRITE:\n"):]
	line = strings.SplitN(line, "\n", 2)[0]
	_, title, _ := strings.Cut(line, ": ")
	return title
}

// --- Assemble ---

func TestAssembleScenario(t *testing.T) {
	sections := []types.GeneratedSection{
		{Level: types.LevelH2, Title: "Intro", Content: "A."},
		{Level: types.LevelH3, Title: "Background", Content: "B."},
	}

	got := Assemble(sections)
	want := "\n## Intro\nA.\n\n### Background\nB."
	if got != want {
		t.Errorf("Assemble = %q, want %q", got, want)
	}
}

func TestAssembleEmpty(t *testing.T) {
	if got := Assemble(nil); got != "" {
		t.Errorf("Assemble(nil) = %q, want empty", got)
	}
}

// Re-splitting assembled output on heading prefixes reproduces the section
// order.
func TestAssembleIdentity(t *testing.T) {
	sections := []types.GeneratedSection{
		{Level: types.LevelH2, Title: "One", Content: "first body"},
		{Level: types.LevelH3, Title: "Two", Content: "second body"},
		{Level: types.LevelH3, Title: "Three", Content: "third body"},
		{Level: types.LevelH2, Title: "Four", Content: "fourth body"},
	}

	out := Assemble(sections)

	var got []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "### ") {
			got = append(got, "H3 "+strings.TrimPrefix(line, "### "))
		} else if strings.HasPrefix(line, "## ") {
			got = append(got, "H2 "+strings.TrimPrefix(line, "## "))
		}
	}

	want := []string{"H2 One", "H3 Two", "H3 Three", "H2 Four"}
	if len(got) != len(want) {
		t.Fatalf("got %d headings, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAssembleLegacyGroupsByParent(t *testing.T) {
	sections := []types.GeneratedSection{
		{Level: types.LevelH3, Title: "Install", Content: "install body", ParentTitle: "Setup"},
		{Level: types.LevelH3, Title: "Configure", Content: "configure body", ParentTitle: "Setup"},
		{Level: types.LevelH3, Title: "Tuning", Content: "tuning body", ParentTitle: "Advanced"},
	}

	out := AssembleLegacy(sections)

	// One group heading per distinct parent, in order.
	if strings.Count(out, "## Setup") != 1 || strings.Count(out, "## Advanced") != 1 {
		t.Errorf("group headings wrong:\n%s", out)
	}
	if strings.Index(out, "## Setup") > strings.Index(out, "### Install") {
		t.Errorf("group heading must precede its sections:\n%s", out)
	}
	for _, want := range []string{"### Install", "### Configure", "### Tuning", "install body", "tuning body"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

// --- ParseVerdict ---

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantStatus types.VerdictStatus
		wantIssues string
	}{
		{
			name:       "pass",
			response:   "STATUS: PASS\n\nISSUES: None",
			wantStatus: types.VerdictPass,
		},
		{
			name:       "fail with issues",
			response:   "STATUS: FAIL\n\nISSUES: Intro is too short. Background drifts off topic.",
			wantStatus: types.VerdictFail,
			wantIssues: "Intro is too short. Background drifts off topic.",
		},
		{
			name:       "fail without issues field",
			response:   "STATUS: FAIL",
			wantStatus: types.VerdictFail,
		},
		{
			name:       "dissatisfied prose without token is pass",
			response:   "The article fails to impress in several ways.",
			wantStatus: types.VerdictPass,
		},
		{
			name:       "token embedded mid-response still fails",
			response:   "Here is my review.\nSTATUS: FAIL\nISSUES: Conclusion",
			wantStatus: types.VerdictFail,
			wantIssues: "Conclusion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ParseVerdict(tt.response)
			if v.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", v.Status, tt.wantStatus)
			}
			if v.Issues != tt.wantIssues {
				t.Errorf("issues = %q, want %q", v.Issues, tt.wantIssues)
			}
		})
	}
}

func TestFlaggedSections(t *testing.T) {
	specs := []types.SectionSpec{
		{Level: types.LevelH2, Title: "Intro"},
		{Level: types.LevelH2, Title: "Pricing"},
		{Level: types.LevelH3, Title: "FAQ"},
	}

	flagged := FlaggedSections(specs, "The INTRO section is thin and the faq is missing detail.")
	if len(flagged) != 2 {
		t.Fatalf("got %d flagged, want 2: %+v", len(flagged), flagged)
	}
	if flagged[0].Title != "Intro" || flagged[1].Title != "FAQ" {
		t.Errorf("flagged = %+v", flagged)
	}

	if got := FlaggedSections(specs, "None"); len(got) != 0 {
		t.Errorf("expected no flagged sections, got %+v", got)
	}
}

// --- Precheck ---

func TestPrecheck(t *testing.T) {
	specs := []types.SectionSpec{
		{Level: types.LevelH2, Title: "Intro", TargetWordCount: 10},
	}

	within := []types.GeneratedSection{
		{Level: types.LevelH2, Title: "Intro", Content: strings.Repeat("word ", 9)},
	}
	if issues := Precheck(specs, within, true); len(issues) != 0 {
		t.Errorf("9 words against target 10 should pass, got %v", issues)
	}

	short := []types.GeneratedSection{
		{Level: types.LevelH2, Title: "Intro", Content: "just three words"},
	}
	issues := Precheck(specs, short, true)
	if len(issues) != 1 || !strings.Contains(issues[0], "Intro") {
		t.Errorf("3 words against target 10 should flag Intro, got %v", issues)
	}

	// Counts not enforced: only presence matters.
	if issues := Precheck(specs, short, false); len(issues) != 0 {
		t.Errorf("unenforced counts should pass, got %v", issues)
	}

	if issues := Precheck(specs, nil, false); len(issues) != 1 || !strings.Contains(issues[0], "missing") {
		t.Errorf("missing section should be flagged, got %v", issues)
	}

	// Two generated sections sharing one identity.
	duplicated := []types.GeneratedSection{
		{Level: types.LevelH2, Title: "Intro", Content: strings.Repeat("word ", 10)},
		{Level: types.LevelH2, Title: "Intro", Content: strings.Repeat("word ", 10)},
	}
	issues = Precheck(specs, duplicated, false)
	if len(issues) != 1 || !strings.Contains(issues[0], "duplicate section: Intro") {
		t.Errorf("duplicated Intro should be flagged once, got %v", issues)
	}
}

// --- WriteArticle ---

const testBrief = "## H2 Intro (5 words)\nWelcome section.\n### H3 Background (5)\nExplain history."

// fiveWords satisfies the 5-word targets in testBrief exactly.
func fiveWords(prompt string) string {
	return fmt.Sprintf("%s body with five words", sectionTitle(prompt))
}

func testConfig() types.WriterConfig {
	return types.WriterConfig{MaxReviewCycles: 2}
}

func TestWriteArticle_PassFirstReview(t *testing.T) {
	backend := &mockBackend{
		sectionFn: fiveWords,
		verdicts:  []string{"STATUS: PASS\n\nISSUES: None"},
	}

	res, err := WriteArticle(context.Background(), backend, types.Briefs{ArticleBrief: testBrief}, testConfig(), io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	if backend.sectionCalls != 2 {
		t.Errorf("section calls = %d, want 2", backend.sectionCalls)
	}
	if backend.reviewCalls != 1 {
		t.Errorf("review calls = %d, want 1", backend.reviewCalls)
	}
	for _, want := range []string{"## Intro", "### Background", "Intro body with five words"} {
		if !strings.Contains(res.Article, want) {
			t.Errorf("article missing %q:\n%s", want, res.Article)
		}
	}
	if !strings.Contains(res.Log, "REVIEW RESULTS:") {
		t.Errorf("log missing review results:\n%s", res.Log)
	}
}

func TestWriteArticle_RegeneratesFlaggedThenPasses(t *testing.T) {
	backend := &mockBackend{
		sectionFn: fiveWords,
		verdicts: []string{
			"STATUS: FAIL\n\nISSUES: Intro is off-brief.",
			"STATUS: PASS\n\nISSUES: None",
		},
	}

	res, err := WriteArticle(context.Background(), backend, types.Briefs{ArticleBrief: testBrief}, testConfig(), io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	// 2 initial + 1 regeneration of the flagged Intro.
	if backend.sectionCalls != 3 {
		t.Errorf("section calls = %d, want 3", backend.sectionCalls)
	}
	if backend.reviewCalls != 2 {
		t.Errorf("review calls = %d, want 2", backend.reviewCalls)
	}
	if !strings.Contains(res.Log, "REVISION CYCLE 1") {
		t.Errorf("log missing revision cycle:\n%s", res.Log)
	}
	if strings.Contains(res.Log, "manual review") {
		t.Errorf("passing run must not be flagged for manual review:\n%s", res.Log)
	}
}

func TestWriteArticle_TerminatesAtCycleCap(t *testing.T) {
	fail := "STATUS: FAIL\n\nISSUES: Intro still weak."
	backend := &mockBackend{
		sectionFn: fiveWords,
		verdicts:  []string{fail, fail, fail, fail, fail},
	}

	res, err := WriteArticle(context.Background(), backend, types.Briefs{ArticleBrief: testBrief}, testConfig(), io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	// Initial review + one re-review per revision cycle.
	if backend.reviewCalls != 3 {
		t.Errorf("review calls = %d, want 3 (initial + 2 cycles)", backend.reviewCalls)
	}
	// 2 initial generations + 1 flagged regeneration per cycle.
	if backend.sectionCalls != 4 {
		t.Errorf("section calls = %d, want 4", backend.sectionCalls)
	}
	if !strings.Contains(res.Log, "maximum revision cycles reached") {
		t.Errorf("capped run must be flagged for manual review:\n%s", res.Log)
	}
	if res.Article == "" {
		t.Error("capped run must still return the draft")
	}
}

func TestWriteArticle_DeterministicCheckCatchesShortSection(t *testing.T) {
	// First attempt at each section is one word; regenerations hit target.
	attempts := map[string]int{}
	backend := &mockBackend{
		verdicts: []string{"STATUS: PASS\n\nISSUES: None"},
	}
	backend.sectionFn = func(prompt string) string {
		title := sectionTitle(prompt)
		attempts[title]++
		if attempts[title] == 1 {
			return "short"
		}
		return fiveWords(prompt)
	}

	res, err := WriteArticle(context.Background(), backend, types.Briefs{ArticleBrief: testBrief}, testConfig(), io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	// The deterministic check fails the first cycle without consuming an LLM
	// review; both sections are flagged by title and regenerated.
	if backend.reviewCalls != 1 {
		t.Errorf("review calls = %d, want 1 (deterministic check replaces first)", backend.reviewCalls)
	}
	if backend.sectionCalls != 4 {
		t.Errorf("section calls = %d, want 4", backend.sectionCalls)
	}
	if !strings.Contains(res.Log, "deterministic check: FAIL") {
		t.Errorf("log missing deterministic check entry:\n%s", res.Log)
	}
}

func TestWriteArticle_EmptyBriefIsError(t *testing.T) {
	backend := &mockBackend{}
	_, err := WriteArticle(context.Background(), backend, types.Briefs{ArticleBrief: "no headings here"}, testConfig(), io.Discard)
	if err == nil {
		t.Fatal("expected error for brief with no recognized headings")
	}
	if backend.sectionCalls != 0 {
		t.Errorf("no generation should happen, got %d calls", backend.sectionCalls)
	}
}

func TestWriteArticle_LegacyBrief(t *testing.T) {
	backend := &mockBackend{
		sectionFn: func(prompt string) string { return "legacy section body" },
		verdicts:  []string{"STATUS: PASS\n\nISSUES: None"},
	}

	legacyBrief := "## Setup\n### Install\n### Configure"
	res, err := WriteArticle(context.Background(), backend, types.Briefs{ArticleBrief: legacyBrief}, testConfig(), io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	if backend.sectionCalls != 2 {
		t.Errorf("section calls = %d, want 2", backend.sectionCalls)
	}
	if strings.Count(res.Article, "## Setup") != 1 {
		t.Errorf("legacy article should carry one group heading:\n%s", res.Article)
	}
	if !strings.Contains(res.Log, "grammar: legacy") {
		t.Errorf("log missing grammar note:\n%s", res.Log)
	}
}

func TestRefine(t *testing.T) {
	backend := &mockBackend{}
	backend.sectionFn = func(prompt string) string {
		if !strings.Contains(prompt, "SELECTED TEXT TO REFINE:") {
			t.Errorf("unexpected prompt:\n%s", prompt)
		}
		return "  tightened text  "
	}

	got, err := Refine(context.Background(), backend, "loose text", "make this tighter", types.Briefs{})
	if err != nil {
		t.Fatal(err)
	}
	if got != "tightened text" {
		t.Errorf("Refine = %q", got)
	}
}
