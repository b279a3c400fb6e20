// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/pdiddy/article-engine/pkg/types"
)

// sectionPromptTmpl instructs the model to produce the body of exactly one
// section. The full outline rides along for situational context; the heading
// line is excluded because the assembler re-inserts it.
var sectionPromptTmpl = template.Must(template.New("section").Parse(`You are writing ONE SECTION of an article. Write ONLY this section, nothing else.

ARTICLE BRIEF (for context):
{{.Briefs.ArticleBrief}}

COMPANY CONTEXT:
{{.Briefs.CompanyBrief}}

TARGET AUDIENCE:
{{.Briefs.AudienceBrief}}

{{if .Briefs.Guidelines}}WRITING GUIDELINES:
{{.Briefs.Guidelines}}

{{end}}SECTION TO WRITE:
{{.Spec.Level}}: {{.Spec.Title}}
{{if .Spec.ParentTitle}}(This is a subsection under: {{.Spec.ParentTitle}})
{{end}}Target length: {{.Spec.TargetWordCount}} words.
{{if .Spec.Guidance}}Section guidance: {{.Spec.Guidance}}
{{end}}
Instructions:
- Write ONLY the body content for this section
- The section header will be added automatically - do NOT include it
- Start directly with the paragraph content
- Do NOT write any other section from the brief
- Stay close to the target word count
- Match the tone and style specified in the guidelines
- Use markdown formatting for any sub-bullets or emphasis within the content
- Write in a professional, clear style appropriate for the target audience

Write the section content now:`))

// reviewPromptTmpl asks the model for a structural critique of the assembled
// draft. The response contract is the strict two-field STATUS/ISSUES format
// that ParseVerdict understands.
var reviewPromptTmpl = template.Must(template.New("review").Parse(`Review this article against the brief. Check for:

1. All specified sections are present
2. Word count targets reasonably met (within 20% is acceptable)
3. No duplicate sections
4. Content quality and accuracy

ARTICLE BRIEF:
{{.Briefs.ArticleBrief}}

{{if .Briefs.Guidelines}}WRITING GUIDELINES:
{{.Briefs.Guidelines}}

{{end}}ARTICLE TO REVIEW{{if .Revision}} (Revision {{.Revision}}){{end}}:
{{.Draft}}

Respond in this format:

STATUS: [PASS or FAIL]

ISSUES: [If FAIL, list specific sections that need revision and why. If PASS, write "None"]

Focus on major issues only.`))

// refinePromptTmpl applies a free-form editing instruction to a selected
// passage, returning only the refined text.
var refinePromptTmpl = template.Must(template.New("refine").Parse(`You are helping refine article content.

SELECTED TEXT TO REFINE:
{{.Selected}}

USER INSTRUCTION:
{{.Instruction}}

CONTEXT - Target Audience:
{{.Briefs.AudienceBrief}}

CONTEXT - Company:
{{.Briefs.CompanyBrief}}

Task: Apply the user's instruction to refine the selected text. Keep changes focused on what was requested. Return ONLY the refined text, no explanations.

Refined text:`))

// renderPrompt executes tmpl with data into a string.
func renderPrompt(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

type sectionPromptData struct {
	Briefs types.Briefs
	Spec   types.SectionSpec
}

type reviewPromptData struct {
	Briefs   types.Briefs
	Draft    string
	Revision int
}

type refinePromptData struct {
	Briefs      types.Briefs
	Selected    string
	Instruction string
}
