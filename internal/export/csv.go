package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"teamflow/api/internal/store"
)

// TasksCSV renders the task list as a CSV download. The output starts with a
// UTF-8 BOM so spreadsheet applications detect the encoding.
func TasksCSV(tasks []store.Task) (*Result, error) {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"ID", "Title", "Assignee", "Role", "Status", "Progress", "Deadline", "Issue"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, t := range tasks {
		issue := t.Issue
		if issue == "" {
			issue = "none"
		}
		row := []string{
			t.ID,
			t.Title,
			t.Assignee,
			t.Role,
			t.Status,
			fmt.Sprintf("%d%%", t.Progress),
			t.Deadline,
			issue,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return &Result{
		Data:     buf.Bytes(),
		Filename: fmt.Sprintf("tasks-%s.csv", time.Now().Format("2006-01-02")),
		MimeType: "text/csv; charset=utf-8",
	}, nil
}
