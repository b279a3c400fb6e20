// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/article-engine/internal/ai"
	"github.com/pdiddy/article-engine/internal/brief"
	"github.com/pdiddy/article-engine/pkg/types"
)

// Result is the outcome of one article run: the final draft and the run log
// accumulated alongside it. A draft that still fails review after the cycle
// cap is returned here as a success, flagged for manual review in the log.
type Result struct {
	Article string
	Log     string
}

// WriteArticle runs the full pipeline for one article: parse the brief,
// generate every section in outline order, assemble, then review and revise
// until the verdict is PASS or the cycle cap is reached. Progress lines go
// to w; the returned log is the durable record. Execution is strictly
// sequential; the fixed RequestDelay pause after each generation call is the
// only throttling.
func WriteArticle(ctx context.Context, backend ai.Completer, briefs types.Briefs, cfg types.WriterConfig, w io.Writer) (Result, error) {
	specs, grammar := brief.ParseAuto(briefs.ArticleBrief)
	if len(specs) == 0 {
		return Result{}, fmt.Errorf("brief contains no recognized section headings")
	}

	log := NewRunLog()
	log.Appendf("grammar: %s", grammar)
	log.Appendf("total sections to write: %d", len(specs))
	log.Appendf("")

	fmt.Fprintf(w, "parsed %d sections from brief (%s grammar)\n", len(specs), grammar)

	legacy := grammar == "legacy"
	sections := make([]types.GeneratedSection, len(specs))

	for i, spec := range specs {
		fmt.Fprintf(w, "writing %s (%d/%d)\n", spec.Key(), i+1, len(specs))

		sec, err := GenerateSection(ctx, backend, spec, briefs, 1, log)
		if err != nil {
			return Result{}, err
		}
		sections[i] = sec

		if err := pause(ctx, cfg.RequestDelay); err != nil {
			return Result{}, err
		}
	}

	draft := assemble(sections, legacy)
	log.Appendf("")
	log.Appendf("draft article assembled")
	fmt.Fprintln(w, "draft article assembled, reviewing...")

	maxCycles := cfg.MaxReviewCycles
	if maxCycles <= 0 {
		maxCycles = 2
	}

	verdict, err := reviewDraft(ctx, backend, briefs, specs, sections, draft, 0, !legacy, log)
	if err != nil {
		return Result{}, err
	}

	for cycle := 1; verdict.Failed() && cycle <= maxCycles; cycle++ {
		log.Appendf("")
		log.Appendf("--- REVISION CYCLE %d ---", cycle)

		flagged := FlaggedSections(specs, verdict.Issues)
		fmt.Fprintf(w, "review failed, rewriting %d section(s) (cycle %d/%d)\n", len(flagged), cycle, maxCycles)

		for _, spec := range flagged {
			idx := indexOf(sections, spec.Key())
			if idx < 0 {
				continue
			}

			fmt.Fprintf(w, "rewriting %s\n", spec.Key())
			sec, err := GenerateSection(ctx, backend, spec, briefs, cycle+1, log)
			if err != nil {
				return Result{}, err
			}
			sections[idx] = sec

			if err := pause(ctx, cfg.RequestDelay); err != nil {
				return Result{}, err
			}
		}

		draft = assemble(sections, legacy)

		verdict, err = reviewDraft(ctx, backend, briefs, specs, sections, draft, cycle, !legacy, log)
		if err != nil {
			return Result{}, err
		}
	}

	if verdict.Failed() {
		log.Appendf("")
		log.Appendf("maximum revision cycles reached; saving for manual review")
		fmt.Fprintf(w, "article still has issues after %d revision cycles, saving for manual review\n", maxCycles)
	} else {
		fmt.Fprintln(w, "article passed review")
	}

	return Result{Article: draft, Log: log.String()}, nil
}

// assemble picks the assembler matching the brief grammar.
func assemble(sections []types.GeneratedSection, legacy bool) string {
	if legacy {
		return AssembleLegacy(sections)
	}
	return Assemble(sections)
}

// indexOf finds the position of the section with the given identity key.
func indexOf(sections []types.GeneratedSection, key string) int {
	for i, sec := range sections {
		if sec.Key() == key {
			return i
		}
	}
	return -1
}
