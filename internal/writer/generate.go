// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package writer drives section-by-section article generation: one LLM call
// per outline section, reassembly in outline order, and a bounded
// review-and-revise loop over the assembled draft.
package writer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/article-engine/internal/ai"
	"github.com/pdiddy/article-engine/pkg/types"
)

// Token ceilings per call kind. Section bodies are the longest outputs;
// critiques and refinements are shorter.
const (
	sectionMaxTokens = 3000
	reviewMaxTokens  = 2000
	refineMaxTokens  = 2000
)

// GenerateSection produces the prose body for one section spec via a single
// LLM invocation. The returned content excludes the heading line. No retry
// here beyond the backend's transport retry; content-quality retries belong
// to the review loop. One line per call is appended to the run log.
func GenerateSection(ctx context.Context, backend ai.Completer, spec types.SectionSpec, briefs types.Briefs, attempt int, log *RunLog) (types.GeneratedSection, error) {
	prompt, err := renderPrompt(sectionPromptTmpl, sectionPromptData{Briefs: briefs, Spec: spec})
	if err != nil {
		return types.GeneratedSection{}, err
	}

	text, err := backend.Complete(ctx, prompt, sectionMaxTokens)
	if err != nil {
		return types.GeneratedSection{}, fmt.Errorf("generating section %q: %w", spec.Title, err)
	}

	sec := types.GeneratedSection{
		Level:       spec.Level,
		Title:       spec.Title,
		Content:     strings.TrimSpace(text),
		ParentTitle: spec.ParentTitle,
	}

	log.Appendf("wrote %s (attempt %d, %d words, target %d)",
		spec.Key(), attempt, sec.WordCount(), spec.TargetWordCount)

	return sec, nil
}

// Refine applies a free-form editing instruction to a selected passage and
// returns only the refined text.
func Refine(ctx context.Context, backend ai.Completer, selected, instruction string, briefs types.Briefs) (string, error) {
	prompt, err := renderPrompt(refinePromptTmpl, refinePromptData{
		Briefs:      briefs,
		Selected:    selected,
		Instruction: instruction,
	})
	if err != nil {
		return "", err
	}

	text, err := backend.Complete(ctx, prompt, refineMaxTokens)
	if err != nil {
		return "", fmt.Errorf("refining text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// pause sleeps for d or until the context is cancelled. The fixed
// inter-call pause is the pipeline's only throttling; it is not an
// error-backoff mechanism.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
