package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"funenglish/internal/catalog"
	"funenglish/internal/progress"
)

// NoAttempts is shown for a category that has never been submitted
const NoAttempts = "No attempts yet"

// Row is one line of the teacher view
type Row struct {
	Category  string     `json:"category"`
	Preview   string     `json:"preview"`
	Attempted bool       `json:"attempted"`
	Score     int        `json:"score"`
	Total     int        `json:"total"`
	Percent   float64    `json:"percent"`
	Date      *time.Time `json:"date,omitempty"`
}

// Status renders the row's result the way the teacher view shows it
func (r Row) Status() string {
	if !r.Attempted {
		return NoAttempts
	}
	return fmt.Sprintf("%d/%d", r.Score, r.Total)
}

// Rows lists every catalog category in display order with its latest result
func Rows(cat *catalog.Catalog, store progress.Store) []Row {
	categories := cat.Categories()
	rows := make([]Row, 0, len(categories))

	for _, c := range categories {
		row := Row{Category: c.Name, Preview: c.Preview}
		if rec, ok := store.Get(c.Name); ok {
			row.Attempted = true
			row.Score = rec.Score
			row.Total = rec.Total
			date := rec.Date
			row.Date = &date
			if rec.Total > 0 {
				row.Percent = float64(rec.Score) / float64(rec.Total) * 100
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Text renders a plain text summary, used for the email text part
func Text(rows []Row, generated time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fun English progress report (%s)\n\n", generated.Format("2006-01-02 15:04 MST"))
	for _, row := range rows {
		if row.Attempted && row.Date != nil {
			fmt.Fprintf(&b, "%-10s %s (%.0f%%) on %s\n", row.Category, row.Status(), row.Percent, row.Date.Format("2006-01-02"))
		} else {
			fmt.Fprintf(&b, "%-10s %s\n", row.Category, row.Status())
		}
	}
	return b.String()
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"date": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; color: #333; }
		table { border-collapse: collapse; }
		th, td { padding: 6px 12px; border-bottom: 1px solid #ddd; text-align: left; }
	</style>
</head>
<body>
	<h2>Fun English progress report</h2>
	<p>Generated {{.Generated.Format "2006-01-02 15:04 MST"}}</p>
	<table>
		<tr><th>Category</th><th>Result</th><th>Date</th></tr>
		{{range .Rows}}<tr><td>{{.Preview}} {{.Category}}</td><td>{{.Status}}</td><td>{{date .Date}}</td></tr>
		{{end}}
	</table>
</body>
</html>
`))

// HTML renders the summary as an HTML document, used for the email HTML part
func HTML(rows []Row, generated time.Time) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Rows      []Row
		Generated time.Time
	}{Rows: rows, Generated: generated}

	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}
