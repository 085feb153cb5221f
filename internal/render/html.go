package render

import (
	"bytes"
	"html/template"

	"github.com/gensec-labs/labgen/internal/model"
)

// HTML renders a standalone page mirroring the Markdown layout. Question
// text passes through html/template so hostile markup scraped from the
// course site cannot script the generated document.
type HTML struct{}

func (HTML) Extension() string { return ".html" }

var htmlTmpl = template.Must(template.New("lab").Funcs(template.FuncMap{
	"sectionURL": func(lab *model.Lab, s model.Section) string { return lab.SectionURL(s) },
}).Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Lab {{.Lab.Number}}: {{.Lab.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 50rem; margin: 2rem auto; }
.answer { border: 1px solid #ccc; min-height: 4rem; padding: .5rem; margin: .5rem 0 1rem; }
.reminder { color: #555; font-style: italic; }
.empty { color: #777; font-style: italic; }
</style>
</head>
<body>
<h1>Lab {{.Lab.Number}}: {{.Lab.Title}}</h1>
<p><a href="{{.Lab.URL}}">Lab page</a></p>
<p><strong>Name:</strong> ____________ <strong>OdinID:</strong> ____________</p>
{{range .Lab.Sections}}
<h2>Section {{.Number}}: {{if .Title}}{{.Title}}{{else}}(untitled){{end}}</h2>
<p><a href="{{sectionURL $.Lab .}}">Section link</a></p>
{{if not .Questions}}<p class="empty">{{$.NoDeliverables}}</p>{{end}}
{{range .Questions}}
<p><strong>{{.Text}}</strong></p>
<div class="answer">{{$.Answer}}</div>
{{if .RequiresScreenshot}}<p class="reminder">Attach a screenshot.</p>{{end}}
{{if .RequiresOdinID}}<p class="reminder">Include your OdinID.</p>{{end}}
{{end}}
{{end}}
</body>
</html>
`))

func (HTML) Render(lab *model.Lab) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Lab            *model.Lab
		NoDeliverables string
		Answer         string
	}{lab, noDeliverablesMarker, answerPlaceholder}
	if err := htmlTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
