// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model shared across pipeline stages.
package types

import "strings"

// HeadingLevel is the outline rank of a section. H2 is a top-level section,
// H3 a subsection nested under the most recently seen H2.
type HeadingLevel string

const (
	LevelH2 HeadingLevel = "H2"
	LevelH3 HeadingLevel = "H3"
)

// Marker returns the markdown heading prefix for the level.
func (l HeadingLevel) Marker() string {
	if l == LevelH3 {
		return "###"
	}
	return "##"
}

// DefaultWordCount is the target length assumed when an outline heading
// carries no explicit count.
const DefaultWordCount = 200

// SectionSpec is one outline entry, produced by the brief parser and
// immutable thereafter.
type SectionSpec struct {
	// Level is the heading rank: H2 or H3.
	Level HeadingLevel `json:"level" yaml:"level"`

	// Title is the section heading text, stripped of level tag and word count.
	Title string `json:"title" yaml:"title"`

	// TargetWordCount is the desired section length (DefaultWordCount when
	// the outline omits it).
	TargetWordCount int `json:"target_word_count" yaml:"target_word_count"`

	// Guidance holds the free-text instructions that follow the heading in
	// the brief, up to the next heading. May be empty.
	Guidance string `json:"guidance,omitempty" yaml:"guidance,omitempty"`

	// ParentTitle is the enclosing H2's title. Set only by the legacy
	// grammar, where it drives re-assembly grouping.
	ParentTitle string `json:"parent_title,omitempty" yaml:"parent_title,omitempty"`
}

// Key returns the section identity used to match a spec to its generated
// content across revision cycles.
func (s SectionSpec) Key() string {
	return string(s.Level) + ": " + s.Title
}

// GeneratedSection is the prose produced for one SectionSpec. Content is
// replaced in place when a revision cycle regenerates the section; Level and
// Title are the stable identity.
type GeneratedSection struct {
	Level   HeadingLevel `json:"level" yaml:"level"`
	Title   string       `json:"title" yaml:"title"`
	Content string       `json:"content" yaml:"content"`

	// ParentTitle carries the legacy grammar's H2 grouping, copied from the
	// source spec.
	ParentTitle string `json:"parent_title,omitempty" yaml:"parent_title,omitempty"`
}

// Key returns the section identity, matching SectionSpec.Key.
func (g GeneratedSection) Key() string {
	return string(g.Level) + ": " + g.Title
}

// WordCount returns the number of whitespace-separated tokens in the
// section's content. Used for logging and the deterministic review check,
// never enforced at generation time.
func (g GeneratedSection) WordCount() int {
	return len(strings.Fields(g.Content))
}

// Briefs bundles the shared context every section generation receives.
type Briefs struct {
	// ArticleBrief is the raw outline document.
	ArticleBrief string `json:"article_brief" yaml:"article_brief"`

	// CompanyBrief describes the company the article is written for.
	CompanyBrief string `json:"company_brief" yaml:"company_brief"`

	// AudienceBrief describes the target audience (ICP personas).
	AudienceBrief string `json:"audience_brief" yaml:"audience_brief"`

	// Guidelines holds optional global tone and style instructions.
	Guidelines string `json:"guidelines,omitempty" yaml:"guidelines,omitempty"`
}

// VerdictStatus is the outcome of one review cycle.
type VerdictStatus string

const (
	VerdictPass VerdictStatus = "PASS"
	VerdictFail VerdictStatus = "FAIL"
)

// ReviewVerdict is the parsed result of one review cycle. A Pass verdict is
// the model's self-assessment, not a guarantee of correctness.
type ReviewVerdict struct {
	Status VerdictStatus `json:"status" yaml:"status"`

	// Issues is the free text following the ISSUES: field. Empty on PASS.
	Issues string `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Failed reports whether the verdict requires a revision cycle.
func (v ReviewVerdict) Failed() bool {
	return v.Status == VerdictFail
}
