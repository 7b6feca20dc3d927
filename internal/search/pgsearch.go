package search

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PgSearch implements Searcher using PostgreSQL ILIKE matching as a fallback.
// It trades ranking quality for zero extra infrastructure.
type PgSearch struct {
	db *sql.DB
}

// NewPgSearch creates a PostgreSQL-backed searcher.
func NewPgSearch(db *sql.DB) *PgSearch {
	return &PgSearch{db: db}
}

// Healthy always returns true — if Postgres is down, the whole app is down.
func (p *PgSearch) Healthy() bool {
	return true
}

// Search executes a UNION ALL query across tasks, requirements and meetings,
// matching the query text case-insensitively against titles and bodies.
// Results come back newest-first.
func (p *PgSearch) Search(q Query) ([]Result, int, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, 0, nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	pattern := "%" + q.Text + "%"
	args := []any{pattern}

	var subQueries []string

	if q.FilterType == "" || q.FilterType == ResultTask {
		subQueries = append(subQueries, `
			SELECT 'task'::text AS type, t.id, t.title,
				left(t.description, 160) AS snippet,
				t.created_at
			FROM tasks t
			WHERE t.title ILIKE $1 OR t.description ILIKE $1 OR t.issue ILIKE $1 OR t.assignee ILIKE $1`)
	}

	if q.FilterType == "" || q.FilterType == ResultRequirement {
		subQueries = append(subQueries, `
			SELECT 'requirement'::text AS type, r.id, r.title,
				left(r.content, 160) AS snippet,
				r.created_at
			FROM requirements r
			WHERE r.title ILIKE $1 OR r.content ILIKE $1`)
	}

	if q.FilterType == "" || q.FilterType == ResultMeeting {
		subQueries = append(subQueries, `
			SELECT 'meeting'::text AS type, m.id, m.title,
				left(m.content, 160) AS snippet,
				m.created_at
			FROM meetings m
			WHERE m.title ILIKE $1 OR m.content ILIKE $1 OR m.attendees ILIKE $1`)
	}

	if len(subQueries) == 0 {
		return nil, 0, nil
	}

	countSQL := fmt.Sprintf("SELECT count(*) FROM (%s) sub",
		strings.Join(subQueries, " UNION ALL "))

	dataSQL := fmt.Sprintf(`SELECT type, id, title, snippet
		FROM (%s) sub
		ORDER BY created_at DESC
		LIMIT %d OFFSET %d`,
		strings.Join(subQueries, " UNION ALL "),
		limit, offset)

	ctx := context.Background()

	var total int
	if err := p.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgsearch count: %w", err)
	}

	rows, err := p.db.QueryContext(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgsearch query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var typ string
		if err := rows.Scan(&typ, &r.ID, &r.Title, &r.Snippet); err != nil {
			return nil, 0, fmt.Errorf("pgsearch scan: %w", err)
		}
		r.Type = ResultType(typ)
		results = append(results, r)
	}

	return results, total, rows.Err()
}

// LoadAllRecords returns all searchable records for full reindexing.
func (p *PgSearch) LoadAllRecords(ctx context.Context) ([]TaskRecord, []RequirementRecord, []MeetingRecord, error) {
	taskRows, err := p.db.QueryContext(ctx, `
		SELECT id, title, description, assignee, status, issue
		FROM tasks
	`)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load tasks: %w", err)
	}
	defer taskRows.Close()

	tasks := make([]TaskRecord, 0)
	for taskRows.Next() {
		var t TaskRecord
		if err := taskRows.Scan(&t.ID, &t.Title, &t.Description, &t.Assignee, &t.Status, &t.Issue); err != nil {
			return nil, nil, nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := taskRows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("iterate tasks: %w", err)
	}

	reqRows, err := p.db.QueryContext(ctx, `
		SELECT id, title, content, category
		FROM requirements
	`)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load requirements: %w", err)
	}
	defer reqRows.Close()

	requirements := make([]RequirementRecord, 0)
	for reqRows.Next() {
		var r RequirementRecord
		if err := reqRows.Scan(&r.ID, &r.Title, &r.Content, &r.Category); err != nil {
			return nil, nil, nil, fmt.Errorf("scan requirement: %w", err)
		}
		requirements = append(requirements, r)
	}
	if err := reqRows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("iterate requirements: %w", err)
	}

	meetingRows, err := p.db.QueryContext(ctx, `
		SELECT id, title, content, attendees, meeting_date
		FROM meetings
	`)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load meetings: %w", err)
	}
	defer meetingRows.Close()

	meetings := make([]MeetingRecord, 0)
	for meetingRows.Next() {
		var m MeetingRecord
		if err := meetingRows.Scan(&m.ID, &m.Title, &m.Content, &m.Attendees, &m.Date); err != nil {
			return nil, nil, nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, m)
	}
	if err := meetingRows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("iterate meetings: %w", err)
	}

	return tasks, requirements, meetings, nil
}
