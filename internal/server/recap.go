package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/piwi3910/PlateQuote/internal/export"
	"github.com/piwi3910/PlateQuote/internal/model"
)

var notesPolicy = newNotesPolicy()

func newNotesPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// renderNotes converts markdown notes to sanitized HTML.
func renderNotes(markdown string) (template.HTML, error) {
	if markdown == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render notes: %w", err)
	}
	return template.HTML(notesPolicy.SanitizeBytes(buf.Bytes())), nil
}

var recapTemplate = template.Must(template.New("recap").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Quote.StudyNumber}} - {{.Quote.ProductName}}</title>
</head>
<body>
<h1>{{.Quote.StudyNumber}}{{if .Quote.ProductName}} - {{.Quote.ProductName}}{{end}}</h1>
<p>{{.Quote.Quantity}} pcs, flat size {{.Quote.FlatWidth}} x {{.Quote.FlatHeight}} mm on {{.Quote.PlateName}}</p>
{{if .Quote.Infeasible}}<p><strong>The item does not fit on this plate.</strong></p>
{{else}}<p>{{.Quote.Imposition.ItemsPerPlate}} per plate ({{.Quote.Imposition.Orientation}}), {{.Quote.Cost.Material.PlatesNeeded}} plate(s)</p>
{{end}}<table class="costs">
<tr><th>Line</th><th>Details</th><th>Amount</th></tr>
{{range .Lines}}<tr class="line"><td>{{.Label}}</td><td>{{.Details}}</td><td>{{money .Amount}}</td></tr>
{{end}}<tr class="total"><th colspan="2">Total</th><th>{{money .Quote.TotalCost}}</th></tr>
<tr><td colspan="2">Unit cost</td><td>{{money .Quote.UnitCost}}</td></tr>
</table>
{{if .Elements}}<h2>Elements</h2>
<ul>
{{range .Elements}}<li>{{.Quantity}} x {{.Name}}</li>
{{end}}</ul>
{{end}}{{if .Notes}}<h2>Notes</h2>
<div class="notes">{{.Notes}}</div>
{{end}}</body>
</html>
`))

type recapView struct {
	Quote    model.Quote
	Lines    []export.CostLine
	Elements []model.Element
	Notes    template.HTML
}

func (s *Server) handleQuoteRecap(w http.ResponseWriter, r *http.Request) {
	q, ok := s.quote(w, r)
	if !ok {
		return
	}

	notes, err := renderNotes(q.Notes)
	if err != nil {
		s.internalError(w, r, "failed to render notes", err)
		return
	}

	var buf bytes.Buffer
	view := recapView{Quote: q, Lines: export.CostLines(q), Elements: q.Elements, Notes: notes}
	if err := recapTemplate.Execute(&buf, view); err != nil {
		s.logger.Error("failed to render recap", zap.String("quote_id", q.ID), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal", "failed to render recap")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
