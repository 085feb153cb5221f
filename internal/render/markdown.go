package render

import (
	"bytes"
	"text/template"

	"github.com/gensec-labs/labgen/internal/model"
)

// Markdown renders the canonical answer template. The other formats
// derive their structure from the same layout: lab heading, per-section
// heading with a direct link, one block per question with an answer
// placeholder and reminders for screenshots and the OdinID.
type Markdown struct{}

func (Markdown) Extension() string { return ".md" }

var markdownTmpl = template.Must(template.New("lab").Funcs(template.FuncMap{
	"sectionURL": func(lab *model.Lab, s model.Section) string { return lab.SectionURL(s) },
}).Parse(`# Lab {{.Lab.Number}}: {{.Lab.Title}}

**Lab page:** <{{.Lab.URL}}>

**Name:**

**OdinID:**
{{range .Lab.Sections}}
## Section {{.Number}}: {{if .Title}}{{.Title}}{{else}}(untitled){{end}}

[Section link]({{sectionURL $.Lab .}})
{{if not .Questions}}
_{{$.NoDeliverables}}_
{{end}}{{range .Questions}}
- **{{.Text}}**

  {{$.Answer}}
{{- if .RequiresScreenshot}}

  _Screenshot:_
{{- end}}
{{- if .RequiresOdinID}}

  _Remember to include your OdinID._
{{- end}}
{{end}}{{end}}`))

func (Markdown) Render(lab *model.Lab) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Lab            *model.Lab
		NoDeliverables string
		Answer         string
	}{lab, noDeliverablesMarker, answerPlaceholder}
	if err := markdownTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
