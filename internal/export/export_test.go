package export

import (
	"strings"
	"testing"
	"time"

	"teamflow/api/internal/store"
)

func TestTasksCSV(t *testing.T) {
	tasks := []store.Task{
		{ID: "t1", Title: "Ship login", Assignee: "Jordan", Role: "frontend", Status: "in-progress", Progress: 60, Deadline: "2024-07-01", Issue: "flaky e2e"},
		{ID: "t2", Title: "Fix build", Assignee: "Ada", Role: "infra", Status: "todo", Progress: 0, Deadline: "2024-07-10"},
	}

	result, err := TasksCSV(tasks)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}

	content := string(result.Data)
	if !strings.HasPrefix(content, "\ufeff") {
		t.Error("expected UTF-8 BOM prefix")
	}
	if !strings.Contains(content, "ID,Title,Assignee,Role,Status,Progress,Deadline,Issue") {
		t.Error("missing header row")
	}
	if !strings.Contains(content, "60%") {
		t.Error("expected percent-formatted progress")
	}
	if !strings.Contains(content, "none") {
		t.Error("expected empty issue rendered as none")
	}
	if result.MimeType != "text/csv; charset=utf-8" {
		t.Errorf("unexpected mime type %q", result.MimeType)
	}
	if !strings.HasSuffix(result.Filename, ".csv") {
		t.Errorf("unexpected filename %q", result.Filename)
	}
}

func TestRenderReportHTML(t *testing.T) {
	html, err := RenderReportHTML(ReportData{
		Title:       "Project Report",
		GeneratedAt: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
		Total:       3,
		Completed:   1,
		Issues:      2,
		AvgProgress: 48,
		Summary:     "Mostly on track.",
		Tasks: []ReportTask{
			{Title: "Ship login", Assignee: "Jordan", Status: "done", Progress: 100, Deadline: "2024-07-01"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Project Report", "48%", "Mostly on track.", "Ship login", "Jun 15, 2024"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected rendered report to contain %q", want)
		}
	}
}

func TestRenderReportHTML_EscapesContent(t *testing.T) {
	html, err := RenderReportHTML(ReportData{
		Title: "Report",
		Tasks: []ReportTask{{Title: "<script>alert(1)</script>"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("expected task title to be escaped")
	}
}

func TestShortcutHTML(t *testing.T) {
	result, err := ShortcutHTML("http://localhost:5173")
	if err != nil {
		t.Fatalf("shortcut: %v", err)
	}
	content := string(result.Data)
	if !strings.Contains(content, "http://localhost:5173") {
		t.Error("expected app URL in shortcut page")
	}
	if !strings.Contains(content, "http-equiv=\"refresh\"") {
		t.Error("expected meta refresh redirect")
	}
	if result.MimeType != "text/html; charset=utf-8" {
		t.Errorf("unexpected mime type %q", result.MimeType)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Project Report 2024", "Project-Report-2024"},
		{"???", "report"},
		{"a b/c", "a-bc"},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPercentEncodeForDataURL(t *testing.T) {
	encoded := percentEncodeForDataURL("<h1>hi there</h1>")
	if strings.Contains(encoded, " ") {
		t.Error("expected spaces encoded")
	}
	if strings.Contains(encoded, "+") {
		t.Error("data URLs must not use + for spaces")
	}
	if !strings.Contains(encoded, "%20") {
		t.Error("expected %20 for space")
	}
	if !strings.Contains(encoded, "%3C") {
		t.Error("expected angle brackets encoded")
	}
}

func TestPercentEncodeForDataURL_MultibyteUTF8(t *testing.T) {
	// Each byte of the UTF-8 sequence gets its own escape.
	if got := percentEncodeForDataURL("café"); got != "caf%C3%A9" {
		t.Errorf("expected caf%%C3%%A9, got %q", got)
	}
}
