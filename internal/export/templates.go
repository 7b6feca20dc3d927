package export

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var reportTemplate *template.Template

func init() {
	funcMap := template.FuncMap{
		"lower": strings.ToLower,
		"formatDate": func(t time.Time, layout string) string {
			return t.Format(layout)
		},
	}

	templateContent, err := templateFS.ReadFile("templates/report.html")
	if err != nil {
		// Fallback to built-in template if file not found
		reportTemplate = template.Must(template.New("report").Funcs(funcMap).Parse(fallbackTemplate))
		return
	}

	reportTemplate = template.Must(template.New("report").Funcs(funcMap).Parse(string(templateContent)))
}

// ReportData holds data for report template rendering
type ReportData struct {
	Title       string
	GeneratedAt time.Time
	Total       int
	Completed   int
	Issues      int
	AvgProgress int
	Summary     string
	Tasks       []ReportTask
}

// ReportTask holds per-task data for the report table
type ReportTask struct {
	Title    string
	Assignee string
	Status   string
	Progress int
	Deadline string
	Issue    string
}

// RenderReportHTML renders the report template with provided data
func RenderReportHTML(data ReportData) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// fallbackTemplate is used if the embedded template fails to load
const fallbackTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; max-width: 800px; margin: 2rem auto; }
    h1 { border-bottom: 2px solid #333; padding-bottom: 0.5rem; }
    .meta { color: #666; font-size: 0.9em; margin-bottom: 2rem; }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="meta">Generated {{formatDate .GeneratedAt "Jan 2, 2006 15:04"}}</div>
  <ul>
    <li>Total tasks: {{.Total}}</li>
    <li>Completed: {{.Completed}}</li>
    <li>Open issues: {{.Issues}}</li>
    <li>Average progress: {{.AvgProgress}}%</li>
  </ul>
  {{if .Summary}}<p>{{.Summary}}</p>{{end}}
  <table>
    <tr><th>Title</th><th>Assignee</th><th>Status</th><th>Progress</th><th>Deadline</th><th>Issue</th></tr>
    {{range .Tasks}}<tr><td>{{.Title}}</td><td>{{.Assignee}}</td><td>{{.Status}}</td><td>{{.Progress}}%</td><td>{{.Deadline}}</td><td>{{.Issue}}</td></tr>{{end}}
  </table>
</body>
</html>`
