package export

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(
	template.New("report.html.tmpl").
		Funcs(template.FuncMap{
			"shaded": func(i int) bool { return i%2 == 1 },
		}).
		ParseFS(templateFS, "templates/report.html.tmpl"),
)

// renderHTML gera o documento HTML autocontido (estilos inline, sem recursos externos).
func renderHTML(doc document) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
