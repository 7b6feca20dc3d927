// Package app holds the project-tracking service and its HTTP surface.
//
// The service keeps an in-memory mirror of the four collections and treats
// the database as the source of truth: every mutation persists first and
// only updates the mirror when the write succeeds. A single mutex serializes
// mutations, so each one observes the full effect of the previous one.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"teamflow/api/internal/ai"
	"teamflow/api/internal/config"
	"teamflow/api/internal/reports"
	"teamflow/api/internal/search"
	"teamflow/api/internal/store"
	"teamflow/api/internal/util"
	"teamflow/api/internal/view"
)

const dateLayout = "2006-01-02"

type dataStore interface {
	FetchAll(ctx context.Context) (store.Snapshot, error)
	UpsertTask(ctx context.Context, item store.Task) error
	DeleteTask(ctx context.Context, id string) error
	UpsertRequirement(ctx context.Context, item store.Requirement) error
	DeleteRequirement(ctx context.Context, id string) error
	UpsertMeeting(ctx context.Context, item store.MeetingLog) error
	DeleteMeeting(ctx context.Context, id string) error
	UpsertMember(ctx context.Context, item store.TeamMember) error
	DeleteMember(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

type assistClient interface {
	EstimateProgress(ctx context.Context, title, deadline, description, requirementContext string) (ai.ProgressResult, error)
	SummarizeProject(ctx context.Context, snapshotJSON string) string
}

type reportStore interface {
	Save(ctx context.Context, report reports.Report) error
	Latest(ctx context.Context) (reports.Report, error)
}

// DeleteTarget identifies the record a pending delete would remove. Title is
// captured so the confirmation step can display it even if the record
// changes in the meantime.
type DeleteTarget struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"` // task, requirement, meeting, member
	Title string `json:"title"`
}

type Service struct {
	cfg     config.Config
	store   dataStore
	assist  assistClient
	search  *search.Service // may be nil
	reports reportStore     // may be nil

	mu            sync.Mutex
	tasks         []store.Task
	requirements  []store.Requirement
	meetings      []store.MeetingLog
	members       []store.TeamMember
	pendingDelete *DeleteTarget
}

func New(cfg config.Config, st dataStore, assist assistClient, searchSvc *search.Service, reportSt reportStore) *Service {
	return &Service{
		cfg:          cfg,
		store:        st,
		assist:       assist,
		search:       searchSvc,
		reports:      reportSt,
		tasks:        []store.Task{},
		requirements: []store.Requirement{},
		meetings:     []store.MeetingLog{},
		members:      []store.TeamMember{},
	}
}

// Load populates the in-memory mirror from the database. A load failure is
// logged and leaves the mirror empty; the service still starts so the API
// stays reachable and later mutations can repopulate state.
func (s *Service) Load(ctx context.Context) {
	snapshot, err := s.store.FetchAll(ctx)
	if err != nil {
		log.Printf("app: initial load failed, starting empty: %v", err)
		return
	}

	if snapshot.Tasks == nil {
		snapshot.Tasks = []store.Task{}
	}
	if snapshot.Requirements == nil {
		snapshot.Requirements = []store.Requirement{}
	}
	if snapshot.Meetings == nil {
		snapshot.Meetings = []store.MeetingLog{}
	}
	if snapshot.Members == nil {
		snapshot.Members = []store.TeamMember{}
	}

	s.mu.Lock()
	s.tasks = snapshot.Tasks
	s.requirements = snapshot.Requirements
	s.meetings = snapshot.Meetings
	s.members = snapshot.Members
	s.mu.Unlock()

	if s.search != nil {
		taskRecords := make([]search.TaskRecord, 0, len(snapshot.Tasks))
		for _, t := range snapshot.Tasks {
			taskRecords = append(taskRecords, taskRecord(t))
		}
		reqRecords := make([]search.RequirementRecord, 0, len(snapshot.Requirements))
		for _, r := range snapshot.Requirements {
			reqRecords = append(reqRecords, requirementRecord(r))
		}
		meetingRecords := make([]search.MeetingRecord, 0, len(snapshot.Meetings))
		for _, m := range snapshot.Meetings {
			meetingRecords = append(meetingRecords, meetingRecord(m))
		}
		s.search.ReindexAll(taskRecords, reqRecords, meetingRecords)
	}
}

// Snapshot returns a copy of all four collections.
func (s *Service) Snapshot() store.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := store.Snapshot{
		Tasks:        make([]store.Task, len(s.tasks)),
		Requirements: make([]store.Requirement, len(s.requirements)),
		Meetings:     make([]store.MeetingLog, len(s.meetings)),
		Members:      make([]store.TeamMember, len(s.members)),
	}
	copy(snapshot.Tasks, s.tasks)
	copy(snapshot.Requirements, s.requirements)
	copy(snapshot.Meetings, s.meetings)
	copy(snapshot.Members, s.members)
	return snapshot
}

func (s *Service) Stats() view.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.ComputeStats(s.tasks)
}

func (s *Service) Timeline(now time.Time) view.Timeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.ComputeTimeline(s.tasks, now)
}

// TaskForm carries the user-editable fields of a task. Status, priority,
// progress and issue are not part of the form: they keep their defaults on
// create and their current values on edit.
type TaskForm struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Assignee    string           `json:"assignee"`
	Role        string           `json:"role"`
	Description string           `json:"description"`
	Deadline    string           `json:"deadline"`
	Attachment  store.Attachment `json:"attachment"`
}

// SaveTask creates or edits a task. New tasks go to the front of the list;
// edits replace in place. The write goes to the database first and the
// mirror only changes if it succeeds.
func (s *Service) SaveTask(ctx context.Context, form TaskForm) (store.Task, error) {
	if strings.TrimSpace(form.Title) == "" {
		return store.Task{}, domainError(http.StatusBadRequest, "VALIDATION", "Title is required", nil)
	}
	if _, err := time.Parse(dateLayout, form.Deadline); err != nil {
		return store.Task{}, domainError(http.StatusBadRequest, "VALIDATION", "Deadline must be a date in YYYY-MM-DD format", nil)
	}
	if !form.Attachment.Complete() {
		return store.Task{}, domainError(http.StatusBadRequest, "VALIDATION", "Attachment requires name, type and data together", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if form.ID == "" {
		task := store.Task{
			ID:          util.NewID(),
			Title:       form.Title,
			Assignee:    form.Assignee,
			Role:        form.Role,
			Description: form.Description,
			Status:      store.StatusTodo,
			Priority:    store.PriorityMedium,
			Deadline:    form.Deadline,
			Progress:    0,
			Attachment:  form.Attachment,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.store.UpsertTask(ctx, task); err != nil {
			log.Printf("app: save task: %v", err)
			return store.Task{}, domainError(http.StatusBadGateway, "SYNC_FAILED", "Failed to persist task", nil)
		}
		s.tasks = append([]store.Task{task}, s.tasks...)
		s.indexTask(task)
		return task, nil
	}

	idx := s.taskIndex(form.ID)
	if idx < 0 {
		return store.Task{}, domainError(http.StatusNotFound, "NOT_FOUND", "Task not found", nil)
	}

	task := s.tasks[idx]
	task.Title = form.Title
	task.Assignee = form.Assignee
	task.Role = form.Role
	task.Description = form.Description
	task.Deadline = form.Deadline
	if !form.Attachment.Empty() {
		task.Attachment = form.Attachment
	}

	if err := s.store.UpsertTask(ctx, task); err != nil {
		log.Printf("app: save task: %v", err)
		return store.Task{}, domainError(http.StatusBadGateway, "SYNC_FAILED", "Failed to persist task", nil)
	}
	s.tasks[idx] = task
	s.indexTask(task)
	return task, nil
}

// RequirementForm carries the user-editable fields of a requirement.
type RequirementForm struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Category   string           `json:"category"`
	Content    string           `json:"content"`
	Link       string           `json:"link"`
	Attachment store.Attachment `json:"attachment"`
}

func (s *Service) SaveRequirement(ctx context.Context, form RequirementForm) (store.Requirement, error) {
	if strings.TrimSpace(form.Title) == "" {
		return store.Requirement{}, domainError(http.StatusBadRequest, "VALIDATION", "Title is required", nil)
	}
	if form.Category == "" {
		form.Category = store.CategoryRequirement
	}
	switch form.Category {
	case store.CategoryRequirement, store.CategoryGuideline, store.CategoryReference:
	default:
		return store.Requirement{}, domainError(http.StatusBadRequest, "VALIDATION", "Unknown category", nil)
	}
	if !form.Attachment.Complete() {
		return store.Requirement{}, domainError(http.StatusBadRequest, "VALIDATION", "Attachment requires name, type and data together", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if form.ID == "" {
		req := store.Requirement{
			ID:         util.NewID(),
			Title:      form.Title,
			Category:   form.Category,
			Content:    form.Content,
			Link:       form.Link,
			Attachment: form.Attachment,
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.store.UpsertRequirement(ctx, req); err != nil {
			log.Printf("app: save requirement: %v", err)
			return store.Requirement{}, domainError(http.StatusBadGateway, "SYNC_FAILED", "Failed to persist requirement", nil)
		}
		s.requirements = append([]store.Requirement{req}, s.requirements...)
		s.indexRequirement(req)
		return req, nil
	}

	idx := s.requirementIndex(form.ID)
	if idx < 0 {
		return store.Requirement{}, domainError(http.StatusNotFound, "NOT_FOUND", "Requirement not found", nil)
	}

	req := s.requirements[idx]
	req.Title = form.Title
	req.Category = form.Category
	req.Content = form.Content
	req.Link = form.Link
	if !form.Attachment.Empty() {
		req.Attachment = form.Attachment
	}

	if err := s.store.UpsertRequirement(ctx, req); err != nil {
		log.Printf("app: save requirement: %v", err)
		return store.Requirement{}, domainError(http.StatusBadGateway, "SYNC_FAILED", "Failed to persist requirement", nil)
	}
	s.requirements[idx] = req
	s.indexRequirement(req)
	return req, nil
}

// MeetingForm carries the user-editable fields of a meeting log.
type MeetingForm struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Date       string           `json:"date"`
	Attendees  string           `json:"attendees"`
	Content    string           `json:"content"`
	Attachment store.Attachment `json:"attachment"`
}

func (s *Service) SaveMeeting(ctx context.Context, form MeetingForm) (store.MeetingLog, error) {
	if strings.TrimSpace(form.Title) == "" {
		return store.MeetingLog{}, domainError(http.StatusBadRequest, "VALIDATION", "Title is required", nil)
	}
	if _, err := time.Parse(dateLayout, form.Date); err != nil {
		return store.MeetingLog{}, domainError(http.StatusBadRequest, "VALIDATION", "Date must be in YYYY-MM-DD format", nil)
	}
	if !form.Attachment.Complete() {
		return store.MeetingLog{}, domainError(http.StatusBadRequest, "VALIDATION", "Attachment requires name, type and data together", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if form.ID == "" {
		meeting := store.MeetingLog{
			ID:         util.NewID(),
			Title:      form.Title,
			Date:       form.Date,
			Attendees:  form.Attendees,
			Content:    form.Content,
			Attachment: form.Attachment,
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.store.UpsertMeeting(ctx, meeting); err != nil {
			log.Printf("app: save meeting: %v", err)
			return store.MeetingLog{}, domainError(http.StatusBadGateway, "SYNC_FAILED", "Failed to persist meeting", nil)
		}
		s.meetings = append([]store.MeetingLog{meeting}, s.meetings...)
		s.indexMeeting(meeting)
		return meeting, nil
	}

	idx := s.meetingIndex(form.ID)
	if idx < 0 {
		return store.MeetingLog{}, domainError(http.StatusNotFound, "NOT_FOUND", "Meeting not found", nil)
	}

	meeting := s.meetings[idx]
	meeting.Title = form.Title
	meeting.Date = form.Date
	meeting.Attendees = form.Attendees
	meeting.Content = form.Content
	if !form.Attachment.Empty() {
		meeting.Attachment = form.Attachment
	}

	if err := s.store.UpsertMeeting(ctx, meeting); err != nil {
		log.Printf("app: save meeting: %v", err)
		return store.MeetingLog{}, domainError(http.StatusBadGateway, "SYNC_FAILED", "Failed to persist meeting", nil)
	}
	s.meetings[idx] = meeting
	s.indexMeeting(meeting)
	return meeting, nil
}

// MemberForm carries the fields of a new roster entry. Members are
// create-and-delete only; there is no edit.
type MemberForm struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// SaveMember appends a member to the end of the roster.
func (s *Service) SaveMember(ctx context.Context, form MemberForm) (store.TeamMember, error) {
	if strings.TrimSpace(form.Name) == "" || strings.TrimSpace(form.Role) == "" {
		return store.TeamMember{}, domainError(http.StatusBadRequest, "VALIDATION", "Name and role are required", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	member := store.TeamMember{ID: util.NewID(), Name: form.Name, Role: form.Role}
	if err := s.store.UpsertMember(ctx, member); err != nil {
		log.Printf("app: save member: %v", err)
		return store.TeamMember{}, domainError(http.StatusBadGateway, "SYNC_FAILED", "Failed to persist member", nil)
	}
	s.members = append(s.members, member)
	return member, nil
}

// UpdateTaskField changes one mutable field of a task. Only progress,
// status, issue and description can be patched this way.
func (s *Service) UpdateTaskField(ctx context.Context, id, field string, value json.RawMessage) (store.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateTaskFieldLocked(ctx, id, field, value)
}

func (s *Service) updateTaskFieldLocked(ctx context.Context, id, field string, value json.RawMessage) (store.Task, error) {
	idx := s.taskIndex(id)
	if idx < 0 {
		return store.Task{}, domainError(http.StatusNotFound, "NOT_FOUND", "Task not found", nil)
	}

	task := s.tasks[idx]
	switch field {
	case "progress":
		var progress int
		if err := json.Unmarshal(value, &progress); err != nil || progress < 0 || progress > 100 {
			return store.Task{}, domainError(http.StatusBadRequest, "VALIDATION", "Progress must be an integer from 0 to 100", nil)
		}
		task.Progress = progress
	case "status":
		var status string
		if err := json.Unmarshal(value, &status); err != nil {
			return store.Task{}, domainError(http.StatusBadRequest, "VALIDATION", "Status must be a string", nil)
		}
		switch status {
		case store.StatusTodo, store.StatusInProgress, store.StatusReview, store.StatusDone:
			task.Status = status
		default:
			return store.Task{}, domainError(http.StatusBadRequest, "VALIDATION", "Unknown status", nil)
		}
	case "issue":
		var issue string
		if err := json.Unmarshal(value, &issue); err != nil {
			return store.Task{}, domainError(http.StatusBadRequest, "VALIDATION", "Issue must be a string", nil)
		}
		task.Issue = issue
	case "description":
		var description string
		if err := json.Unmarshal(value, &description); err != nil {
			return store.Task{}, domainError(http.StatusBadRequest, "VALIDATION", "Description must be a string", nil)
		}
		task.Description = description
	default:
		return store.Task{}, domainError(http.StatusBadRequest, "VALIDATION", "Field is not patchable", map[string]any{"field": field})
	}

	if err := s.store.UpsertTask(ctx, task); err != nil {
		log.Printf("app: update task field %s: %v", field, err)
		return store.Task{}, domainError(http.StatusBadGateway, "SYNC_FAILED", "Failed to persist task", nil)
	}
	s.tasks[idx] = task
	s.indexTask(task)
	return task, nil
}

// RequestDelete stages a deletion. The target's title is captured now so the
// confirmation can present it.
func (s *Service) RequestDelete(kind, id string) (DeleteTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var title string
	switch kind {
	case "task":
		if idx := s.taskIndex(id); idx >= 0 {
			title = s.tasks[idx].Title
		}
	case "requirement":
		if idx := s.requirementIndex(id); idx >= 0 {
			title = s.requirements[idx].Title
		}
	case "meeting":
		if idx := s.meetingIndex(id); idx >= 0 {
			title = s.meetings[idx].Title
		}
	case "member":
		if idx := s.memberIndex(id); idx >= 0 {
			title = s.members[idx].Name
		}
	default:
		return DeleteTarget{}, domainError(http.StatusBadRequest, "VALIDATION", "Unknown kind", map[string]any{"kind": kind})
	}
	if title == "" {
		return DeleteTarget{}, domainError(http.StatusNotFound, "NOT_FOUND", "Record not found", nil)
	}

	target := DeleteTarget{ID: id, Kind: kind, Title: title}
	s.pendingDelete = &target
	return target, nil
}

// PendingDelete returns the staged deletion, if any.
func (s *Service) PendingDelete() *DeleteTarget {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingDelete == nil {
		return nil
	}
	target := *s.pendingDelete
	return &target
}

// CancelDelete discards the staged deletion.
func (s *Service) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = nil
}

// ConfirmDelete executes the staged deletion. The staging is cleared whether
// or not the database write succeeds; only a successful write removes the
// record from the mirror.
func (s *Service) ConfirmDelete(ctx context.Context) (DeleteTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingDelete == nil {
		return DeleteTarget{}, domainError(http.StatusConflict, "NO_PENDING_DELETE", "No deletion is staged", nil)
	}
	target := *s.pendingDelete
	s.pendingDelete = nil

	var err error
	switch target.Kind {
	case "task":
		if err = s.store.DeleteTask(ctx, target.ID); err == nil {
			s.tasks = removeTask(s.tasks, target.ID)
			if s.search != nil {
				s.search.DeleteTask(target.ID)
			}
		}
	case "requirement":
		if err = s.store.DeleteRequirement(ctx, target.ID); err == nil {
			s.requirements = removeRequirement(s.requirements, target.ID)
			if s.search != nil {
				s.search.DeleteRequirement(target.ID)
			}
		}
	case "meeting":
		if err = s.store.DeleteMeeting(ctx, target.ID); err == nil {
			s.meetings = removeMeeting(s.meetings, target.ID)
			if s.search != nil {
				s.search.DeleteMeeting(target.ID)
			}
		}
	case "member":
		// Deleting a member leaves tasks assigned to them untouched; the
		// assignee is stored by name, not by reference.
		if err = s.store.DeleteMember(ctx, target.ID); err == nil {
			s.members = removeMember(s.members, target.ID)
		}
	}
	if err != nil {
		log.Printf("app: delete %s %s: %v", target.Kind, target.ID, err)
		return DeleteTarget{}, domainError(http.StatusBadGateway, "SYNC_FAILED", "Failed to delete record", nil)
	}
	return target, nil
}

// EstimateTaskProgress asks the assistant how complete a task looks, using
// the requirement titles as project context. Failures surface to the caller.
func (s *Service) EstimateTaskProgress(ctx context.Context, taskID string) (ai.ProgressResult, error) {
	s.mu.Lock()
	idx := s.taskIndex(taskID)
	if idx < 0 {
		s.mu.Unlock()
		return ai.ProgressResult{}, domainError(http.StatusNotFound, "NOT_FOUND", "Task not found", nil)
	}
	task := s.tasks[idx]
	titles := make([]string, 0, len(s.requirements))
	for _, r := range s.requirements {
		titles = append(titles, r.Title)
	}
	s.mu.Unlock()

	result, err := s.assist.EstimateProgress(ctx, task.Title, task.Deadline, task.Description, strings.Join(titles, ", "))
	if err != nil {
		var evalErr *ai.EvaluationError
		if errors.As(err, &evalErr) {
			log.Printf("app: estimate progress for %s: %v", taskID, err)
			return ai.ProgressResult{}, domainError(http.StatusBadGateway, "AI_EVALUATION_FAILED", "AI evaluation failed", nil)
		}
		return ai.ProgressResult{}, err
	}
	return result, nil
}

// ApplyAIProgress writes an accepted estimate back onto the task as three
// sequential field updates: progress, description, then a status derived
// from the percentage. An update that fails leaves the earlier ones applied.
func (s *Service) ApplyAIProgress(ctx context.Context, taskID string, percentage int, description string) (store.Task, error) {
	if percentage < 0 || percentage > 100 {
		return store.Task{}, domainError(http.StatusBadRequest, "VALIDATION", "Progress must be an integer from 0 to 100", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	progressJSON, _ := json.Marshal(percentage)
	if _, err := s.updateTaskFieldLocked(ctx, taskID, "progress", progressJSON); err != nil {
		return store.Task{}, err
	}
	descriptionJSON, _ := json.Marshal(description)
	if _, err := s.updateTaskFieldLocked(ctx, taskID, "description", descriptionJSON); err != nil {
		return store.Task{}, err
	}

	status := store.StatusInProgress
	switch percentage {
	case 100:
		status = store.StatusDone
	case 0:
		status = store.StatusTodo
	}
	statusJSON, _ := json.Marshal(status)
	return s.updateTaskFieldLocked(ctx, taskID, "status", statusJSON)
}

// GenerateReport produces an AI summary of the project and stores it if a
// report store is configured. Summary generation never fails; a broken
// assistant yields the fallback text.
func (s *Service) GenerateReport(ctx context.Context) (reports.Report, error) {
	s.mu.Lock()
	type taskLine struct {
		Title    string `json:"title"`
		Progress int    `json:"progress"`
		Status   string `json:"status"`
		Issue    string `json:"issue"`
	}
	lines := make([]taskLine, 0, len(s.tasks))
	for _, t := range s.tasks {
		lines = append(lines, taskLine{Title: t.Title, Progress: t.Progress, Status: t.Status, Issue: t.Issue})
	}
	stats := view.ComputeStats(s.tasks)
	s.mu.Unlock()

	snapshotJSON, err := json.Marshal(map[string]any{"tasks": lines, "stats": stats})
	if err != nil {
		return reports.Report{}, err
	}

	summary := s.assist.SummarizeProject(ctx, string(snapshotJSON))
	report := reports.Report{
		ID:        util.NewID(),
		Content:   summary,
		CreatedAt: time.Now().UTC(),
	}

	if s.reports != nil {
		if err := s.reports.Save(ctx, report); err != nil {
			log.Printf("app: save report: %v", err)
		}
	}
	return report, nil
}

// LatestReport returns the most recently generated summary.
func (s *Service) LatestReport(ctx context.Context) (reports.Report, error) {
	if s.reports == nil {
		return reports.Report{}, domainError(http.StatusNotFound, "REPORT_NOT_FOUND", "No report available", nil)
	}
	report, err := s.reports.Latest(ctx)
	if errors.Is(err, reports.ErrNoReport) {
		return reports.Report{}, domainError(http.StatusNotFound, "REPORT_NOT_FOUND", "No report available", nil)
	}
	return report, err
}

// Search runs a query across tasks, requirements and meetings.
func (s *Service) Search(q search.Query) search.Response {
	if s.search == nil {
		return search.Response{Results: []search.Result{}, Query: q.Text}
	}
	return s.search.Search(q)
}

// Ping verifies database connectivity.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) requirementIndex(id string) int {
	for i := range s.requirements {
		if s.requirements[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) meetingIndex(id string) int {
	for i := range s.meetings {
		if s.meetings[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) memberIndex(id string) int {
	for i := range s.members {
		if s.members[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) indexTask(t store.Task) {
	if s.search != nil {
		s.search.IndexTask(taskRecord(t))
	}
}

func (s *Service) indexRequirement(r store.Requirement) {
	if s.search != nil {
		s.search.IndexRequirement(requirementRecord(r))
	}
}

func (s *Service) indexMeeting(m store.MeetingLog) {
	if s.search != nil {
		s.search.IndexMeeting(meetingRecord(m))
	}
}

func taskRecord(t store.Task) search.TaskRecord {
	return search.TaskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Assignee:    t.Assignee,
		Status:      t.Status,
		Issue:       t.Issue,
	}
}

func requirementRecord(r store.Requirement) search.RequirementRecord {
	return search.RequirementRecord{
		ID:       r.ID,
		Title:    r.Title,
		Content:  r.Content,
		Category: r.Category,
	}
}

func meetingRecord(m store.MeetingLog) search.MeetingRecord {
	return search.MeetingRecord{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Attendees: m.Attendees,
		Date:      m.Date,
	}
}

func removeTask(items []store.Task, id string) []store.Task {
	out := items[:0]
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

func removeRequirement(items []store.Requirement, id string) []store.Requirement {
	out := items[:0]
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

func removeMeeting(items []store.MeetingLog, id string) []store.MeetingLog {
	out := items[:0]
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

func removeMember(items []store.TeamMember, id string) []store.TeamMember {
	out := items[:0]
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}
