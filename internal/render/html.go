package render

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/username/calendarweek/internal/calendar"
)

var pageTemplate = template.Must(template.New("year").Funcs(template.FuncMap{
	"cellClass": cellClass,
	"week":      func(n int) string { return fmt.Sprintf("%02d", n) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Year}} Calendar</title>
<style>
body { background: #ffffff; color: #37352f; font-family: "Segoe UI", "Helvetica Neue", "DejaVu Sans", sans-serif; margin: 0 15px 10px; }
h1 { font-size: 16px; font-weight: 600; }
section { margin-top: 15px; }
h2 { font-size: 14px; font-weight: 600; margin: 0; padding-bottom: 5px; border-bottom: 1px solid #e9e9e7; }
table { border-collapse: collapse; margin-top: 8px; }
th { color: #9b9a97; font-size: 12px; font-weight: normal; width: 28px; }
td { font-size: 13px; text-align: center; width: 28px; height: 20px; }
td.cw { color: #9b9a97; font-size: 12px; }
td.weekend { color: #9b9a97; }
td.holiday { color: #eb5757; }
td.shortened { text-decoration: underline; }
td.today { background: #ffef3d; color: #37352f; border-radius: 3px; }
</style>
</head>
<body>
<h1>{{.Year}}</h1>
{{range .Months}}<section id="month-{{printf "%d" .Month}}">
<h2>{{.Month}}</h2>
<table>
<tr><th>W</th>{{range $.DayNames}}<th>{{.}}</th>{{end}}</tr>
{{range .Weeks}}<tr><td class="cw">{{week .Number}}</td>{{range .Days}}{{if .Blank}}<td></td>{{else}}<td class="{{cellClass .}}"{{if .Note}} title="{{.Note}}"{{end}}>{{.Day}}</td>{{end}}{{end}}</tr>
{{end}}</table>
</section>
{{end}}{{if .ScrollTo}}<script>
document.getElementById("month-{{.ScrollTo}}").scrollIntoView({block: "center"});
</script>
{{end}}</body>
</html>
`))

type page struct {
	*calendar.Grid
	DayNames [7]string
	ScrollTo int
}

func cellClass(c calendar.Cell) string {
	class := c.Type.String()
	if c.Today {
		class += " today"
	}
	return class
}

// WriteHTML writes the year grid as a standalone HTML page that scrolls to
// the month containing today
func WriteHTML(w io.Writer, g *calendar.Grid) error {
	p := page{Grid: g, DayNames: DayNames}
	for _, m := range g.Months {
		if m.HasToday {
			p.ScrollTo = int(m.Month)
		}
	}
	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("failed to render calendar page: %w", err)
	}
	return nil
}

// WriteHTMLFile renders the grid into dir and returns the file path
func WriteHTMLFile(dir string, g *calendar.Grid) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("calendarweek-%d.html", g.Year))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create calendar page: %w", err)
	}
	defer f.Close()

	if err := WriteHTML(f, g); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write calendar page: %w", err)
	}
	return path, nil
}
