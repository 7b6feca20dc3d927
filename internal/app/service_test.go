package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"teamflow/api/internal/ai"
	"teamflow/api/internal/config"
	"teamflow/api/internal/store"
)

// fakeStore keeps everything in memory and can be told to fail writes.
type fakeStore struct {
	snapshot  store.Snapshot
	fetchErr  error
	writeErr  error
	deleteErr error

	upserts []string
	deletes []string
}

func (f *fakeStore) FetchAll(ctx context.Context) (store.Snapshot, error) {
	if f.fetchErr != nil {
		return store.Snapshot{}, f.fetchErr
	}
	return f.snapshot, nil
}

func (f *fakeStore) UpsertTask(ctx context.Context, item store.Task) error {
	f.upserts = append(f.upserts, "task:"+item.ID)
	return f.writeErr
}

func (f *fakeStore) DeleteTask(ctx context.Context, id string) error {
	f.deletes = append(f.deletes, "task:"+id)
	return f.deleteErr
}

func (f *fakeStore) UpsertRequirement(ctx context.Context, item store.Requirement) error {
	f.upserts = append(f.upserts, "requirement:"+item.ID)
	return f.writeErr
}

func (f *fakeStore) DeleteRequirement(ctx context.Context, id string) error {
	f.deletes = append(f.deletes, "requirement:"+id)
	return f.deleteErr
}

func (f *fakeStore) UpsertMeeting(ctx context.Context, item store.MeetingLog) error {
	f.upserts = append(f.upserts, "meeting:"+item.ID)
	return f.writeErr
}

func (f *fakeStore) DeleteMeeting(ctx context.Context, id string) error {
	f.deletes = append(f.deletes, "meeting:"+id)
	return f.deleteErr
}

func (f *fakeStore) UpsertMember(ctx context.Context, item store.TeamMember) error {
	f.upserts = append(f.upserts, "member:"+item.ID)
	return f.writeErr
}

func (f *fakeStore) DeleteMember(ctx context.Context, id string) error {
	f.deletes = append(f.deletes, "member:"+id)
	return f.deleteErr
}

func (f *fakeStore) Ping(ctx context.Context) error { return nil }

// fakeAssist returns canned AI responses.
type fakeAssist struct {
	result  ai.ProgressResult
	err     error
	summary string
}

func (f *fakeAssist) EstimateProgress(ctx context.Context, title, deadline, description, requirementContext string) (ai.ProgressResult, error) {
	if f.err != nil {
		return ai.ProgressResult{}, f.err
	}
	return f.result, nil
}

func (f *fakeAssist) SummarizeProject(ctx context.Context, snapshotJSON string) string {
	if f.summary == "" {
		return ai.FallbackSummary
	}
	return f.summary
}

func newTestService(fs *fakeStore, fa *fakeAssist) *Service {
	svc := New(config.Config{}, fs, fa, nil, nil)
	svc.Load(context.Background())
	return svc
}

func TestSaveTask_CreateAppearsFirst(t *testing.T) {
	fs := &fakeStore{snapshot: store.Snapshot{Tasks: []store.Task{{ID: "existing", Title: "Old"}}}}
	svc := newTestService(fs, &fakeAssist{})

	task, err := svc.SaveTask(context.Background(), TaskForm{
		Title:    "Ship login page",
		Assignee: "Jordan",
		Role:     "frontend",
		Deadline: "2024-07-01",
	})
	if err != nil {
		t.Fatalf("save task: %v", err)
	}
	if task.ID == "" {
		t.Error("expected generated id")
	}
	if task.Status != store.StatusTodo || task.Priority != store.PriorityMedium || task.Progress != 0 {
		t.Errorf("unexpected defaults: %+v", task)
	}

	snapshot := svc.Snapshot()
	if len(snapshot.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(snapshot.Tasks))
	}
	if snapshot.Tasks[0].ID != task.ID {
		t.Errorf("expected new task first, got %s", snapshot.Tasks[0].ID)
	}
}

func TestSaveTask_ValidationRejectsBadDeadline(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeAssist{})

	_, err := svc.SaveTask(context.Background(), TaskForm{Title: "x", Deadline: "July 1st"})
	var domainErr *DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION" {
		t.Fatalf("expected VALIDATION error, got %v", err)
	}
}

func TestSaveTask_PersistFailureLeavesMirrorUntouched(t *testing.T) {
	fs := &fakeStore{writeErr: errors.New("db down")}
	svc := newTestService(fs, &fakeAssist{})

	_, err := svc.SaveTask(context.Background(), TaskForm{Title: "x", Deadline: "2024-07-01"})
	var domainErr *DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "SYNC_FAILED" {
		t.Fatalf("expected SYNC_FAILED, got %v", err)
	}
	if len(svc.Snapshot().Tasks) != 0 {
		t.Error("expected mirror to stay empty after failed persist")
	}
}

func TestSaveTask_EditPreservesWorkflowFields(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	fs := &fakeStore{snapshot: store.Snapshot{Tasks: []store.Task{{
		ID:        "t1",
		Title:     "Original",
		Status:    store.StatusReview,
		Priority:  store.PriorityHigh,
		Progress:  60,
		Issue:     "flaky tests",
		Deadline:  "2024-06-01",
		CreatedAt: created,
	}}}}
	svc := newTestService(fs, &fakeAssist{})

	task, err := svc.SaveTask(context.Background(), TaskForm{
		ID:       "t1",
		Title:    "Renamed",
		Deadline: "2024-06-15",
	})
	if err != nil {
		t.Fatalf("edit task: %v", err)
	}
	if task.Title != "Renamed" || task.Deadline != "2024-06-15" {
		t.Errorf("form fields not applied: %+v", task)
	}
	if task.Status != store.StatusReview || task.Priority != store.PriorityHigh || task.Progress != 60 || task.Issue != "flaky tests" {
		t.Errorf("workflow fields not preserved: %+v", task)
	}
	if !task.CreatedAt.Equal(created) {
		t.Errorf("createdAt changed: %v", task.CreatedAt)
	}
}

func TestSaveTask_EditMissingReturnsNotFound(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeAssist{})
	_, err := svc.SaveTask(context.Background(), TaskForm{ID: "nope", Title: "x", Deadline: "2024-07-01"})
	var domainErr *DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestSaveMember_AppendsToEnd(t *testing.T) {
	fs := &fakeStore{snapshot: store.Snapshot{Members: []store.TeamMember{{ID: "m1", Name: "Ada", Role: "backend"}}}}
	svc := newTestService(fs, &fakeAssist{})

	member, err := svc.SaveMember(context.Background(), MemberForm{Name: "Grace", Role: "infra"})
	if err != nil {
		t.Fatalf("save member: %v", err)
	}

	members := svc.Snapshot().Members
	if len(members) != 2 || members[1].ID != member.ID {
		t.Errorf("expected new member appended at end, got %+v", members)
	}
}

func TestUpdateTaskField_Validation(t *testing.T) {
	fs := &fakeStore{snapshot: store.Snapshot{Tasks: []store.Task{{ID: "t1", Status: store.StatusTodo}}}}
	svc := newTestService(fs, &fakeAssist{})

	cases := []struct {
		name  string
		field string
		value string
	}{
		{"progress over 100", "progress", "150"},
		{"progress negative", "progress", "-1"},
		{"unknown status", "status", `"paused"`},
		{"unpatchable field", "title", `"x"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateTaskField(context.Background(), "t1", tc.field, json.RawMessage(tc.value))
			var domainErr *DomainError
			if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION" {
				t.Fatalf("expected VALIDATION, got %v", err)
			}
		})
	}
}

func TestDeleteFlow_ConfirmRemovesRecord(t *testing.T) {
	fs := &fakeStore{snapshot: store.Snapshot{Tasks: []store.Task{{ID: "t1", Title: "Doomed"}}}}
	svc := newTestService(fs, &fakeAssist{})

	target, err := svc.RequestDelete("task", "t1")
	if err != nil {
		t.Fatalf("request delete: %v", err)
	}
	if target.Title != "Doomed" {
		t.Errorf("expected captured title, got %q", target.Title)
	}
	if pending := svc.PendingDelete(); pending == nil || pending.ID != "t1" {
		t.Fatalf("expected pending delete, got %v", pending)
	}

	deleted, err := svc.ConfirmDelete(context.Background())
	if err != nil {
		t.Fatalf("confirm delete: %v", err)
	}
	if deleted.ID != "t1" {
		t.Errorf("unexpected deleted target: %+v", deleted)
	}
	if svc.PendingDelete() != nil {
		t.Error("expected pending delete cleared")
	}
	if len(svc.Snapshot().Tasks) != 0 {
		t.Error("expected task removed from mirror")
	}
}

func TestDeleteFlow_FailureClearsPendingKeepsRecord(t *testing.T) {
	fs := &fakeStore{
		snapshot:  store.Snapshot{Tasks: []store.Task{{ID: "t1", Title: "Survivor"}}},
		deleteErr: errors.New("db down"),
	}
	svc := newTestService(fs, &fakeAssist{})

	if _, err := svc.RequestDelete("task", "t1"); err != nil {
		t.Fatalf("request delete: %v", err)
	}
	_, err := svc.ConfirmDelete(context.Background())
	var domainErr *DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "SYNC_FAILED" {
		t.Fatalf("expected SYNC_FAILED, got %v", err)
	}
	if svc.PendingDelete() != nil {
		t.Error("expected pending cleared even on failure")
	}
	if len(svc.Snapshot().Tasks) != 1 {
		t.Error("expected record kept in mirror after failed delete")
	}
}

func TestDeleteFlow_CancelKeepsRecord(t *testing.T) {
	fs := &fakeStore{snapshot: store.Snapshot{Meetings: []store.MeetingLog{{ID: "m1", Title: "Standup"}}}}
	svc := newTestService(fs, &fakeAssist{})

	if _, err := svc.RequestDelete("meeting", "m1"); err != nil {
		t.Fatalf("request delete: %v", err)
	}
	svc.CancelDelete()
	if svc.PendingDelete() != nil {
		t.Error("expected pending cleared after cancel")
	}
	if _, err := svc.ConfirmDelete(context.Background()); err == nil {
		t.Error("expected confirm without pending to fail")
	}
	if len(svc.Snapshot().Meetings) != 1 {
		t.Error("expected meeting kept")
	}
}

func TestDeleteMember_LeavesAssigneeDangling(t *testing.T) {
	fs := &fakeStore{snapshot: store.Snapshot{
		Tasks:   []store.Task{{ID: "t1", Title: "x", Assignee: "Grace"}},
		Members: []store.TeamMember{{ID: "m1", Name: "Grace", Role: "infra"}},
	}}
	svc := newTestService(fs, &fakeAssist{})

	if _, err := svc.RequestDelete("member", "m1"); err != nil {
		t.Fatalf("request delete: %v", err)
	}
	if _, err := svc.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("confirm delete: %v", err)
	}

	snapshot := svc.Snapshot()
	if len(snapshot.Members) != 0 {
		t.Error("expected member removed")
	}
	if snapshot.Tasks[0].Assignee != "Grace" {
		t.Errorf("expected assignee untouched, got %q", snapshot.Tasks[0].Assignee)
	}
}

func TestLoad_FailureStartsEmpty(t *testing.T) {
	fs := &fakeStore{fetchErr: errors.New("network")}
	svc := New(config.Config{}, fs, &fakeAssist{}, nil, nil)
	svc.Load(context.Background())

	snapshot := svc.Snapshot()
	if len(snapshot.Tasks) != 0 || len(snapshot.Requirements) != 0 || len(snapshot.Meetings) != 0 || len(snapshot.Members) != 0 {
		t.Errorf("expected empty mirror, got %+v", snapshot)
	}
}

func TestEstimateTaskProgress_FailureMapsToDomainError(t *testing.T) {
	fs := &fakeStore{snapshot: store.Snapshot{Tasks: []store.Task{{ID: "t1", Title: "x"}}}}
	fa := &fakeAssist{err: &ai.EvaluationError{Reason: "completion request failed"}}
	svc := newTestService(fs, fa)

	_, err := svc.EstimateTaskProgress(context.Background(), "t1")
	var domainErr *DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "AI_EVALUATION_FAILED" {
		t.Fatalf("expected AI_EVALUATION_FAILED, got %v", err)
	}
}

func TestApplyAIProgress_DerivesStatus(t *testing.T) {
	cases := []struct {
		percentage int
		want       string
	}{
		{100, store.StatusDone},
		{0, store.StatusTodo},
		{45, store.StatusInProgress},
	}
	for _, tc := range cases {
		fs := &fakeStore{snapshot: store.Snapshot{Tasks: []store.Task{{
			ID: "t1", Title: "x", Status: store.StatusReview, Description: "old",
		}}}}
		svc := newTestService(fs, &fakeAssist{})

		task, err := svc.ApplyAIProgress(context.Background(), "t1", tc.percentage, "refined notes")
		if err != nil {
			t.Fatalf("apply %d: %v", tc.percentage, err)
		}
		if task.Progress != tc.percentage {
			t.Errorf("apply %d: progress %d", tc.percentage, task.Progress)
		}
		if task.Status != tc.want {
			t.Errorf("apply %d: expected status %s, got %s", tc.percentage, tc.want, task.Status)
		}
		if task.Description != "refined notes" {
			t.Errorf("apply %d: description not overwritten: %q", tc.percentage, task.Description)
		}
		// Three sequential persists: progress, description, status.
		if len(fs.upserts) != 3 {
			t.Errorf("apply %d: expected 3 upserts, got %d", tc.percentage, len(fs.upserts))
		}
	}
}

func TestGenerateReport_UsesAssistSummary(t *testing.T) {
	fs := &fakeStore{snapshot: store.Snapshot{Tasks: []store.Task{{ID: "t1", Title: "x", Progress: 50}}}}
	svc := newTestService(fs, &fakeAssist{summary: "All on track."})

	report, err := svc.GenerateReport(context.Background())
	if err != nil {
		t.Fatalf("generate report: %v", err)
	}
	if report.Content != "All on track." {
		t.Errorf("unexpected report content: %q", report.Content)
	}
	if report.ID == "" || report.CreatedAt.IsZero() {
		t.Errorf("expected populated report metadata: %+v", report)
	}
}

func TestGenerateReport_FallbackWhenAssistBroken(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeAssist{})

	report, err := svc.GenerateReport(context.Background())
	if err != nil {
		t.Fatalf("generate report: %v", err)
	}
	if report.Content != ai.FallbackSummary {
		t.Errorf("expected fallback summary, got %q", report.Content)
	}
}
