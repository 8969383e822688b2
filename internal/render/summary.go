// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	htmltemplate "html/template"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/pdiddy/study-engine/pkg/types"
)

// fact is one header line of a summary.
type fact struct {
	Label string
	Text  string
}

type item struct {
	N     int
	Label string
	Text  string
}

// section is one titled block of a summary.
type section struct {
	Heading string
	Intro   string
	Items   []item
	Ordered bool
	Outro   string
}

type summaryView struct {
	Title    string
	Sources  string
	Facts    []fact
	Sections []section
}

func items(texts []string) []item {
	out := make([]item, len(texts))
	for i, t := range texts {
		out[i] = item{N: i + 1, Text: t}
	}
	return out
}

// newSummaryView lays out r in display order. Empty blocks are left out,
// except the evaluation and recommendations which are always present.
func newSummaryView(r types.SummaryReport) summaryView {
	v := summaryView{
		Title:   "📚 " + r.Subject + " - Ders Özeti",
		Sources: strings.Join(r.Sources, ", "),
	}
	if v.Sources != "" {
		v.Facts = append(v.Facts, fact{"Dosya", v.Sources})
	}
	v.Facts = append(v.Facts, fact{"İçerik", strconv.Itoa(r.LineCount) + " satır, " + strconv.Itoa(r.WordCount) + " kelime"})
	if r.DetailLevel != "" {
		v.Facts = append(v.Facts, fact{"Detay Seviyesi", string(r.DetailLevel)})
	}

	if len(r.Headings) > 0 {
		v.Sections = append(v.Sections, section{Heading: "🎯 Ana Konular", Items: items(r.Headings)})
	}
	if len(r.KeyPoints) > 0 {
		v.Sections = append(v.Sections, section{Heading: "⭐ Önemli Noktalar", Items: items(r.KeyPoints)})
	}
	if len(r.Definitions) > 0 {
		defs := make([]item, len(r.Definitions))
		for i, d := range r.Definitions {
			defs[i] = item{N: i + 1, Label: d.Term, Text: d.Definition}
		}
		v.Sections = append(v.Sections, section{Heading: "📖 Temel Tanımlar", Items: defs})
	}
	if len(r.TermHighlights) > 0 {
		v.Sections = append(v.Sections, section{Heading: "🔬 Tespit Edilen Tıbbi Terimler", Intro: strings.Join(r.TermHighlights, ", ")})
	}
	if len(r.Topics) > 0 {
		v.Sections = append(v.Sections, section{Heading: "📋 Ana İçerik", Items: items(r.Topics), Ordered: true})
	}

	notes := make([]item, len(r.Evaluation.Notes))
	for i, n := range r.Evaluation.Notes {
		notes[i] = item{N: i + 1, Label: n.Term, Text: n.Note}
	}
	v.Sections = append(v.Sections,
		section{
			Heading: "🎓 " + r.Subject + " Özel Değerlendirme",
			Intro:   r.Evaluation.Intro,
			Items:   notes,
			Outro:   r.Evaluation.Advice,
		},
		section{Heading: "📝 Çalışma Önerileri", Items: items(r.Recommendations)},
	)
	return v
}

var summaryHTMLTmpl = htmltemplate.Must(htmltemplate.New("summary.html").Parse(`<!DOCTYPE html>
<html lang="tr">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Ders Özeti{{with .Sources}} - {{.}}{{end}}</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; margin: 40px; }
h3, h4 { color: #20B2AA; }
ul, ol { margin-bottom: 20px; }
li { margin-bottom: 5px; }
.summary-header { border-bottom: 2px solid #20B2AA; padding-bottom: 10px; margin-bottom: 20px; }
</style>
</head>
<body>
<div class="summary-header">
<h3>{{.Title}}</h3>
{{- range .Facts}}
<p><strong>{{.Label}}:</strong> {{.Text}}</p>
{{- end}}
</div>
{{- range .Sections}}
<h4>{{.Heading}}</h4>
{{- with .Intro}}
<p>{{.}}</p>
{{- end}}
{{- if .Items}}
{{if .Ordered}}<ol>{{else}}<ul>{{end}}
{{- range .Items}}
<li>{{with .Label}}<strong>{{.}}:</strong> {{end}}{{.Text}}</li>
{{- end}}
{{if .Ordered}}</ol>{{else}}</ul>{{end}}
{{- end}}
{{- with .Outro}}
<p><em>{{.}}</em></p>
{{- end}}
{{- end}}
</body>
</html>
`))

var summaryMarkdownTmpl = template.Must(template.New("summary.md").Parse(`# {{.Title}}
{{range .Facts}}
- **{{.Label}}:** {{.Text}}
{{- end}}
{{range .Sections}}{{$ordered := .Ordered}}
## {{.Heading}}
{{with .Intro}}
{{.}}
{{end}}
{{- if .Items}}
{{range .Items}}{{if $ordered}}{{.N}}.{{else}}-{{end}} {{with .Label}}**{{.}}:** {{end}}{{.Text}}
{{end}}
{{- end}}
{{- with .Outro}}
_{{.}}_
{{end}}
{{- end}}`))

var summaryTextTmpl = template.Must(template.New("summary.txt").Parse(`{{.Title}}
{{range .Facts}}{{.Label}}: {{.Text}}
{{end}}
{{- range .Sections}}{{$ordered := .Ordered}}
{{.Heading}}
{{with .Intro}}{{.}}
{{end}}
{{- range .Items}}{{if $ordered}}{{.N}}.{{else}}•{{end}} {{with .Label}}{{.}}: {{end}}{{.Text}}
{{end}}
{{- with .Outro}}{{.}}
{{end}}
{{- end}}`))

// SummaryHTML writes r as a standalone Turkish HTML document. All report
// text is escaped.
func SummaryHTML(w io.Writer, r types.SummaryReport) error {
	return summaryHTMLTmpl.Execute(w, newSummaryView(r))
}

// SummaryMarkdown writes r as a Markdown document.
func SummaryMarkdown(w io.Writer, r types.SummaryReport) error {
	return summaryMarkdownTmpl.Execute(w, newSummaryView(r))
}

// SummaryText writes r as plain text suitable for the clipboard.
func SummaryText(w io.Writer, r types.SummaryReport) error {
	return summaryTextTmpl.Execute(w, newSummaryView(r))
}
