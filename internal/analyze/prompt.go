// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"bytes"
	"fmt"
	"text/template"
)

var gapPromptTmpl = template.Must(template.New("gap").Parse(`Analyze this article structure against competitor articles to identify gaps.

YOUR ARTICLE STRUCTURE:
{{.ArticleStructure}}

COMPETITOR ARTICLE STRUCTURES:
{{.CompetitorStructures}}

Task:
1. Identify sections that competitors have but you don't (missing sections)
2. Identify sections you have that seem thinner/less comprehensive than competitors (thin sections)

Return your analysis as JSON:
{
  "missing_sections": [
    {"title": "Section Title", "frequency": "appears in X/5 competitors", "reason": "why it matters"}
  ],
  "thin_sections": [
    {"title": "Your Section Title", "issue": "what's missing compared to competitors"}
  ]
}

Return ONLY the JSON, no explanations.`))

var icpPromptTmpl = template.Must(template.New("icp").Parse(`Filter these content gaps based on ICP relevance.

GAP ANALYSIS:
{{.GapAnalysis}}

YOUR ARTICLE:
{{.Article}}

TARGET AUDIENCE (ICP):
{{.AudienceBrief}}

Task:
Determine which gaps and thin sections are HIGH PRIORITY for this ICP and which are LOW PRIORITY.

Return as JSON:
{
  "high_priority_missing": [
    {"title": "...", "why_important_for_icp": "..."}
  ],
  "high_priority_thin": [
    {"title": "...", "why_needs_enrichment": "..."}
  ],
  "low_priority": [
    {"title": "...", "why_not_relevant": "..."}
  ]
}

Return ONLY the JSON.`))

var recommendationsPromptTmpl = template.Must(template.New("recommendations").Parse(`Generate detailed content refresh recommendations with writing guidelines.

YOUR ARTICLE:
{{.Article}}

COMPETITOR STRUCTURES:
{{.CompetitorStructures}}

FILTERED GAPS (HIGH PRIORITY):
{{.FilteredGaps}}

ICP CONTEXT:
{{.AudienceBrief}}

PRIMARY KEYWORD: {{.Keyword}}

Task:
Generate specific, actionable recommendations in this EXACT format:

## H2 [New Section Title] ([word count] words)
[Detailed writing guidelines: what to cover, how to structure, specific points to include, tone, examples to add, ICP pain points to address]

### H3 [Section to Enrich] - ENRICH ([new word count] words)
[Current state, what's missing, specific additions needed, examples from competitors, ICP alignment needed]

Rules:
1. Use "## H2" prefix for new sections to add
2. Use "### H3" prefix with "- ENRICH" suffix for existing sections to expand
3. Word counts should be realistic (150-300 words typical)
4. Writing guidelines must be detailed and specific (not vague)
5. Reference competitor examples where relevant
6. Align with ICP needs explicitly
7. Only include HIGH PRIORITY items

Generate recommendations now:`))

type gapPromptData struct {
	ArticleStructure     string
	CompetitorStructures string
}

type icpPromptData struct {
	GapAnalysis   string
	Article       string
	AudienceBrief string
}

type recommendationsPromptData struct {
	Article              string
	CompetitorStructures string
	FilteredGaps         string
	AudienceBrief        string
	Keyword              string
}

func renderPrompt(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
