// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/article-engine/internal/ai"
	"github.com/pdiddy/article-engine/pkg/types"
)

// wordCountTolerance is the accepted deviation from a section's target
// length, as a fraction of the target.
const wordCountTolerance = 0.20

// ParseVerdict turns a raw critique response into a tagged verdict. The
// decision is presence of the literal substring "STATUS: FAIL" anywhere in
// the response; a response that merely complains in prose without that
// token is classified PASS. The ambiguity is accepted and isolated here.
func ParseVerdict(response string) types.ReviewVerdict {
	if !strings.Contains(response, "STATUS: FAIL") {
		return types.ReviewVerdict{Status: types.VerdictPass}
	}

	issues := ""
	if i := strings.Index(response, "ISSUES:"); i >= 0 {
		issues = strings.TrimSpace(response[i+len("ISSUES:"):])
	}
	return types.ReviewVerdict{Status: types.VerdictFail, Issues: issues}
}

// FlaggedSections returns the specs whose title appears, case-insensitively,
// as a substring of the issues text. This heuristic can both under-select
// (the model rephrased a title) and over-select (short titles inside
// unrelated words); the review loop accepts that.
func FlaggedSections(specs []types.SectionSpec, issues string) []types.SectionSpec {
	lowered := strings.ToLower(issues)
	var flagged []types.SectionSpec
	for _, spec := range specs {
		if strings.Contains(lowered, strings.ToLower(spec.Title)) {
			flagged = append(flagged, spec)
		}
	}
	return flagged
}

// Precheck runs the deterministic portion of a review: every spec'd section
// present exactly once and, when enforceCounts is set, each section's
// whitespace word count within tolerance of its target. Returned issue
// strings contain the offending section titles so FlaggedSections can map
// them back to specs. An empty return means the draft is structurally sound
// and ready for the subjective LLM critique.
func Precheck(specs []types.SectionSpec, sections []types.GeneratedSection, enforceCounts bool) []string {
	byKey := make(map[string]int)
	for _, sec := range sections {
		byKey[sec.Key()]++
	}

	var issues []string
	for _, spec := range specs {
		switch n := byKey[spec.Key()]; {
		case n == 0:
			issues = append(issues, fmt.Sprintf("missing section: %s", spec.Title))
			continue
		case n > 1:
			issues = append(issues, fmt.Sprintf("duplicate section: %s", spec.Title))
		}

		if !enforceCounts {
			continue
		}
		for _, sec := range sections {
			if sec.Key() != spec.Key() {
				continue
			}
			got := sec.WordCount()
			target := spec.TargetWordCount
			if target <= 0 {
				continue
			}
			deviation := float64(got-target) / float64(target)
			if deviation < 0 {
				deviation = -deviation
			}
			if deviation > wordCountTolerance {
				issues = append(issues, fmt.Sprintf("%s: %d words, target %d", spec.Title, got, target))
			}
		}
	}
	return issues
}

// reviewDraft obtains one verdict for the assembled draft. The
// deterministic precheck runs first and, when it flags sections, stands in
// for the LLM critique that cycle; the subjective critique only runs on a
// deterministically sound draft.
func reviewDraft(ctx context.Context, backend ai.Completer, briefs types.Briefs, specs []types.SectionSpec, sections []types.GeneratedSection, draft string, revision int, enforceCounts bool, log *RunLog) (types.ReviewVerdict, error) {
	if issues := Precheck(specs, sections, enforceCounts); len(issues) > 0 {
		joined := strings.Join(issues, "; ")
		log.Appendf("deterministic check: FAIL (%s)", joined)
		return types.ReviewVerdict{Status: types.VerdictFail, Issues: joined}, nil
	}

	prompt, err := renderPrompt(reviewPromptTmpl, reviewPromptData{Briefs: briefs, Draft: draft, Revision: revision})
	if err != nil {
		return types.ReviewVerdict{}, err
	}

	response, err := backend.Complete(ctx, prompt, reviewMaxTokens)
	if err != nil {
		return types.ReviewVerdict{}, fmt.Errorf("reviewing draft: %w", err)
	}

	log.Appendf("REVIEW RESULTS:")
	log.Appendf("%s", strings.TrimSpace(response))

	return ParseVerdict(response), nil
}
