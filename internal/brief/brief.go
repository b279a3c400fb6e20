// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package brief parses article outline documents into ordered section
// specifications.
//
// Two outline grammars are accepted. The canonical grammar tags every
// heading with its level and target length:
//
//	## H2 <title> (<word_count> words)
//	<guidance line(s)>
//
//	### H3 <title> (<word_count>)
//	<guidance line(s)>
//
// The legacy grammar marks groups with plain "## <title>" lines and only
// "### <title>" lines become generatable sections; it survives as a
// compatibility shim behind the same SectionSpec shape.
package brief

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/article-engine/pkg/types"
)

const (
	h2Prefix = "## H2 "
	h3Prefix = "### H3 "
)

// wordCountPattern matches a trailing parenthesized count, optionally
// followed by "word" or "words": (250 words), (250 word), (250).
var wordCountPattern = regexp.MustCompile(`\((\d+)(?:\s+words?)?\)\s*$`)

// Parse scans briefText left to right and returns one SectionSpec per
// canonical-grammar heading line, in document order. Non-empty lines
// between a heading and the next heading are joined with single spaces
// into that section's guidance. Lines that match no heading prefix are
// body text, never an error; a brief with zero recognized headings yields
// an empty list, which the caller must treat as a terminal failure.
func Parse(briefText string) []types.SectionSpec {
	var specs []types.SectionSpec
	var guidance []string
	currentH2 := ""

	flush := func() {
		if len(specs) > 0 {
			specs[len(specs)-1].Guidance = strings.Join(guidance, " ")
		}
		guidance = nil
	}

	for _, line := range strings.Split(briefText, "\n") {
		line = strings.TrimSpace(line)

		var level types.HeadingLevel
		var rest string
		switch {
		case strings.HasPrefix(line, h2Prefix):
			level, rest = types.LevelH2, strings.TrimPrefix(line, h2Prefix)
		case strings.HasPrefix(line, h3Prefix):
			level, rest = types.LevelH3, strings.TrimPrefix(line, h3Prefix)
		default:
			if line != "" {
				guidance = append(guidance, line)
			}
			continue
		}

		flush()

		title, count := splitHeading(rest)
		spec := types.SectionSpec{
			Level:           level,
			Title:           title,
			TargetWordCount: count,
		}
		if level == types.LevelH2 {
			currentH2 = title
		} else {
			spec.ParentTitle = currentH2
		}
		specs = append(specs, spec)
	}

	flush()
	return specs
}

// ParseLegacy scans briefText with the legacy grammar: "## <title>" lines
// set grouping context only, and each "### <title>" line becomes an H3
// SectionSpec carrying its enclosing H2 as ParentTitle. Bold markers are
// stripped before prefix matching. Legacy briefs carry no explicit word
// counts, so every section gets the default.
func ParseLegacy(briefText string) []types.SectionSpec {
	var specs []types.SectionSpec
	currentH2 := ""

	for _, line := range strings.Split(briefText, "\n") {
		line = strings.TrimSpace(line)
		line = strings.ReplaceAll(line, "**", "")

		switch {
		case strings.HasPrefix(line, "### "):
			specs = append(specs, types.SectionSpec{
				Level:           types.LevelH3,
				Title:           strings.TrimSpace(strings.TrimPrefix(line, "### ")),
				TargetWordCount: types.DefaultWordCount,
				ParentTitle:     currentH2,
			})
		case strings.HasPrefix(line, "## "):
			currentH2 = strings.TrimSpace(strings.TrimPrefix(line, "## "))
		}
	}

	return specs
}

// IsCanonical reports whether briefText contains at least one
// canonical-grammar heading. Briefs without any fall back to the legacy
// parser.
func IsCanonical(briefText string) bool {
	for _, line := range strings.Split(briefText, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, h2Prefix) || strings.HasPrefix(line, h3Prefix) {
			return true
		}
	}
	return false
}

// ParseAuto parses with the canonical grammar when the brief uses it, and
// the legacy grammar otherwise. The second return names the grammar used.
func ParseAuto(briefText string) ([]types.SectionSpec, string) {
	if IsCanonical(briefText) {
		return Parse(briefText), "canonical"
	}
	return ParseLegacy(briefText), "legacy"
}

// splitHeading separates a heading remainder into title and target word
// count. A missing or malformed count yields the default.
func splitHeading(rest string) (string, int) {
	m := wordCountPattern.FindStringSubmatchIndex(rest)
	if m == nil {
		return strings.TrimSpace(rest), types.DefaultWordCount
	}

	title := strings.TrimSpace(rest[:m[0]])
	count, err := strconv.Atoi(rest[m[2]:m[3]])
	if err != nil || count <= 0 {
		count = types.DefaultWordCount
	}
	return title, count
}
