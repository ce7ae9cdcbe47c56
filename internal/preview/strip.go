package preview

import (
	"fmt"
	"html/template"
	"io"
)

var stripTmpl = template.Must(template.New("strip").Parse(`<!doctype html>
<meta charset="utf-8">
<title>{{.Title}}</title>
<div class="strip">
{{- range .Entries}}
<img alt="{{.Step}}" title="{{.Step}}" width="{{.Preview.Width}}" height="{{.Preview.Height}}" src="{{.URI}}">
{{- end}}
</div>
<pre>{{.Art}}</pre>
`))

// WriteStrip writes a standalone HTML page with the progress strip
// followed by the art. Entries need data URIs; see KeepDataURIs.
func WriteStrip(w io.Writer, title string, entries []Entry, art string) error {
	uris := make([]struct {
		Step    string
		Preview struct{ Width, Height int }
		URI     template.URL
	}, len(entries))
	for i, e := range entries {
		if e.URI == "" {
			return fmt.Errorf("preview %s has no data URI", e.Step)
		}
		uris[i].Step = e.Step
		uris[i].Preview.Width = e.Preview.Width
		uris[i].Preview.Height = e.Preview.Height
		uris[i].URI = template.URL(e.URI)
	}
	return stripTmpl.Execute(w, map[string]any{
		"Title":   title,
		"Entries": uris,
		"Art":     art,
	})
}
