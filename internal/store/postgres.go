package store

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore is a thin passthrough over the four record collections.
// Every call hits durable remote state directly; there is no caching layer
// and no retry logic.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

// FetchAll loads all four collections. Tasks, requirements and meetings are
// ordered newest-first by creation time; members carry no ordering.
func (s *PostgresStore) FetchAll(ctx context.Context) (Snapshot, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	requirements, err := s.ListRequirements(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	meetings, err := s.ListMeetings(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	members, err := s.ListMembers(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Tasks: tasks, Requirements: requirements, Meetings: meetings, Members: members}, nil
}

func (s *PostgresStore) ListTasks(ctx context.Context) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, assignee, role, description, status, priority, deadline, progress, issue,
			COALESCE(attachment_name, ''), COALESCE(attachment_type, ''), COALESCE(attachment_data, ''), created_at
		FROM tasks
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	items := make([]Task, 0)
	for rows.Next() {
		var item Task
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Assignee,
			&item.Role,
			&item.Description,
			&item.Status,
			&item.Priority,
			&item.Deadline,
			&item.Progress,
			&item.Issue,
			&item.Attachment.Name,
			&item.Attachment.Type,
			&item.Attachment.Data,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return items, nil
}

// UpsertTask inserts or fully replaces the row keyed by id. Calling it twice
// with an identical record leaves the same stored state as calling it once.
func (s *PostgresStore) UpsertTask(ctx context.Context, item Task) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, assignee, role, description, status, priority, deadline, progress, issue,
			attachment_name, attachment_type, attachment_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''), $14)
		ON CONFLICT (id) DO UPDATE SET
			title=EXCLUDED.title, assignee=EXCLUDED.assignee, role=EXCLUDED.role,
			description=EXCLUDED.description, status=EXCLUDED.status, priority=EXCLUDED.priority,
			deadline=EXCLUDED.deadline, progress=EXCLUDED.progress, issue=EXCLUDED.issue,
			attachment_name=EXCLUDED.attachment_name, attachment_type=EXCLUDED.attachment_type,
			attachment_data=EXCLUDED.attachment_data
	`, item.ID, item.Title, item.Assignee, item.Role, item.Description, item.Status, item.Priority,
		item.Deadline, item.Progress, item.Issue,
		item.Attachment.Name, item.Attachment.Type, item.Attachment.Data, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert task: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRequirements(ctx context.Context) ([]Requirement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, category, content, link,
			COALESCE(attachment_name, ''), COALESCE(attachment_type, ''), COALESCE(attachment_data, ''), created_at
		FROM requirements
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	defer rows.Close()

	items := make([]Requirement, 0)
	for rows.Next() {
		var item Requirement
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Category,
			&item.Content,
			&item.Link,
			&item.Attachment.Name,
			&item.Attachment.Type,
			&item.Attachment.Data,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan requirement: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requirements: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) UpsertRequirement(ctx context.Context, item Requirement) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO requirements (id, title, category, content, link, attachment_name, attachment_type, attachment_data, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9)
		ON CONFLICT (id) DO UPDATE SET
			title=EXCLUDED.title, category=EXCLUDED.category, content=EXCLUDED.content, link=EXCLUDED.link,
			attachment_name=EXCLUDED.attachment_name, attachment_type=EXCLUDED.attachment_type,
			attachment_data=EXCLUDED.attachment_data
	`, item.ID, item.Title, item.Category, item.Content, item.Link,
		item.Attachment.Name, item.Attachment.Type, item.Attachment.Data, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert requirement: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteRequirement(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM requirements WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete requirement: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListMeetings(ctx context.Context) ([]MeetingLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, meeting_date, attendees, content,
			COALESCE(attachment_name, ''), COALESCE(attachment_type, ''), COALESCE(attachment_data, ''), created_at
		FROM meetings
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	items := make([]MeetingLog, 0)
	for rows.Next() {
		var item MeetingLog
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Date,
			&item.Attendees,
			&item.Content,
			&item.Attachment.Name,
			&item.Attachment.Type,
			&item.Attachment.Data,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meetings: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) UpsertMeeting(ctx context.Context, item MeetingLog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meetings (id, title, meeting_date, attendees, content, attachment_name, attachment_type, attachment_data, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9)
		ON CONFLICT (id) DO UPDATE SET
			title=EXCLUDED.title, meeting_date=EXCLUDED.meeting_date, attendees=EXCLUDED.attendees,
			content=EXCLUDED.content, attachment_name=EXCLUDED.attachment_name,
			attachment_type=EXCLUDED.attachment_type, attachment_data=EXCLUDED.attachment_data
	`, item.ID, item.Title, item.Date, item.Attendees, item.Content,
		item.Attachment.Name, item.Attachment.Type, item.Attachment.Data, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert meeting: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteMeeting(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM meetings WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListMembers(ctx context.Context) ([]TeamMember, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, role FROM team_members`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	items := make([]TeamMember, 0)
	for rows.Next() {
		var item TeamMember
		if err := rows.Scan(&item.ID, &item.Name, &item.Role); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) UpsertMember(ctx context.Context, item TeamMember) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO team_members (id, name, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, role=EXCLUDED.role
	`, item.ID, item.Name, item.Role)
	if err != nil {
		return fmt.Errorf("upsert member: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteMember(ctx context.Context, id string) error {
	// Tasks referencing the member by name keep their assignee string as-is;
	// the reference is a denormalized copy, not a foreign key.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM team_members WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}

// Ping verifies the database connection is alive
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
