package app

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"teamflow/api/internal/export"
	"teamflow/api/internal/search"
	"teamflow/api/internal/view"
)

type HTTPServer struct {
	service    *Service
	corsOrigin string
}

func NewHTTPServer(service *Service, corsOrigin string) *HTTPServer {
	return &HTTPServer{service: service, corsOrigin: corsOrigin}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.withMiddleware(http.HandlerFunc(s.handle))
}

func (s *HTTPServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeJSON(w, http.StatusNoContent, map[string]any{})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/health" {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/api/ready" {
		// Check database connectivity
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := "ready"
		statusCode := http.StatusOK
		checks := map[string]any{
			"database": map[string]any{"status": "ok"},
		}

		if err := s.service.Ping(ctx); err != nil {
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
			checks["database"] = map[string]any{
				"status": "error",
				"error":  err.Error(),
			}
		}

		writeJSON(w, statusCode, map[string]any{
			"ok":     status == "ready",
			"status": status,
			"checks": checks,
		})
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/data" {
		s.handleGetData(w, r)
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/tasks" {
		s.handleSaveTask(w, r)
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/requirements" {
		s.handleSaveRequirement(w, r)
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/meetings" {
		s.handleSaveMeeting(w, r)
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/members" {
		s.handleSaveMember(w, r)
		return
	}

	if r.URL.Path == "/api/deletion" {
		switch r.Method {
		case http.MethodPost:
			s.handleRequestDelete(w, r)
			return
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]any{"pending": s.service.PendingDelete()})
			return
		case http.MethodDelete:
			s.service.CancelDelete()
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
			return
		}
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/deletion/confirm" {
		s.handleConfirmDelete(w, r)
		return
	}

	if r.Method == http.MethodPost && r.URL.Path == "/api/report" {
		s.handleGenerateReport(w, r)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/reports/latest" {
		s.handleLatestReport(w, r)
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/api/search" {
		s.handleSearch(w, r)
		return
	}

	if r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/export/") {
		s.handleExport(w, r)
		return
	}

	// Parameterized task routes
	parts := splitPath(r.URL.Path)
	if len(parts) >= 3 && parts[0] == "api" && parts[1] == "tasks" {
		taskID := parts[2]

		if len(parts) == 3 && r.Method == http.MethodPatch {
			s.handlePatchTask(w, r, taskID)
			return
		}
		if len(parts) == 4 && parts[3] == "estimate" && r.Method == http.MethodPost {
			s.handleEstimate(w, r, taskID)
			return
		}
		if len(parts) == 5 && parts[3] == "estimate" && parts[4] == "apply" && r.Method == http.MethodPost {
			s.handleApplyEstimate(w, r, taskID)
			return
		}
	}

	writeError(w, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
}

func (s *HTTPServer) handleGetData(w http.ResponseWriter, r *http.Request) {
	snapshot := s.service.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"tasks":        snapshot.Tasks,
		"requirements": snapshot.Requirements,
		"meetings":     snapshot.Meetings,
		"members":      snapshot.Members,
		"stats":        s.service.Stats(),
		"timeline":     s.service.Timeline(time.Now().UTC()),
	})
}

func (s *HTTPServer) handleSaveTask(w http.ResponseWriter, r *http.Request) {
	var form TaskForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	task, err := s.service.SaveTask(r.Context(), form)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *HTTPServer) handleSaveRequirement(w http.ResponseWriter, r *http.Request) {
	var form RequirementForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	req, err := s.service.SaveRequirement(r.Context(), form)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *HTTPServer) handleSaveMeeting(w http.ResponseWriter, r *http.Request) {
	var form MeetingForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	meeting, err := s.service.SaveMeeting(r.Context(), form)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, meeting)
}

func (s *HTTPServer) handleSaveMember(w http.ResponseWriter, r *http.Request) {
	var form MemberForm
	if err := decodeBody(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	member, err := s.service.SaveMember(r.Context(), form)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (s *HTTPServer) handlePatchTask(w http.ResponseWriter, r *http.Request, taskID string) {
	var body struct {
		Field string          `json:"field"`
		Value json.RawMessage `json:"value"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	task, err := s.service.UpdateTaskField(r.Context(), taskID, body.Field, body.Value)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *HTTPServer) handleRequestDelete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Kind string `json:"kind"`
		ID   string `json:"id"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	target, err := s.service.RequestDelete(body.Kind, body.ID)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, target)
}

func (s *HTTPServer) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	target, err := s.service.ConfirmDelete(r.Context())
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": target})
}

func (s *HTTPServer) handleEstimate(w http.ResponseWriter, r *http.Request, taskID string) {
	// The estimate keeps running even if the browser disconnects, matching
	// the behavior of an in-flight call that cannot be cancelled.
	result, err := s.service.EstimateTaskProgress(context.Background(), taskID)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleApplyEstimate(w http.ResponseWriter, r *http.Request, taskID string) {
	var body struct {
		Percentage  int    `json:"percentage"`
		Description string `json:"description"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	task, err := s.service.ApplyAIProgress(r.Context(), taskID, body.Percentage, body.Description)
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *HTTPServer) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.GenerateReport(context.Background())
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *HTTPServer) handleLatestReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.LatestReport(r.Context())
	if err != nil {
		status, code, message, details := mapError(err)
		writeError(w, status, code, message, details)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *HTTPServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))
	response := s.service.Search(search.Query{
		Text:       query.Get("q"),
		FilterType: search.ResultType(query.Get("type")),
		Limit:      limit,
		Offset:     offset,
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	var (
		result *export.Result
		err    error
	)

	switch strings.TrimPrefix(r.URL.Path, "/api/export/") {
	case "tasks.csv":
		result, err = export.TasksCSV(s.service.Snapshot().Tasks)
	case "report.html":
		html, renderErr := s.renderReport()
		if renderErr != nil {
			err = renderErr
			break
		}
		result = &export.Result{
			Data:     []byte(html),
			Filename: fmt.Sprintf("report-%s.html", time.Now().Format("2006-01-02")),
			MimeType: "text/html; charset=utf-8",
		}
	case "report.pdf":
		html, renderErr := s.renderReport()
		if renderErr != nil {
			err = renderErr
			break
		}
		result, err = export.ReportPDF(html, "Project Report "+time.Now().Format("2006-01-02"))
	case "shortcut.html":
		result, err = export.ShortcutHTML(s.service.cfg.AppURL)
	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Unknown export format", nil)
		return
	}

	if err != nil {
		if errors.Is(err, export.ErrPDFDependencyMissing) {
			writeError(w, http.StatusServiceUnavailable, "EXPORT_UNAVAILABLE", "PDF export is not available on this server", nil)
			return
		}
		log.Printf("export: %v", err)
		writeError(w, http.StatusInternalServerError, "EXPORT_FAILED", "Export failed", nil)
		return
	}

	w.Header().Set("Content-Type", result.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}

func (s *HTTPServer) renderReport() (string, error) {
	snapshot := s.service.Snapshot()
	stats := view.ComputeStats(snapshot.Tasks)

	reportTasks := make([]export.ReportTask, 0, len(snapshot.Tasks))
	for _, t := range snapshot.Tasks {
		reportTasks = append(reportTasks, export.ReportTask{
			Title:    t.Title,
			Assignee: t.Assignee,
			Status:   t.Status,
			Progress: t.Progress,
			Deadline: t.Deadline,
			Issue:    t.Issue,
		})
	}

	summary := ""
	if report, err := s.service.LatestReport(context.Background()); err == nil {
		summary = report.Content
	}

	return export.RenderReportHTML(export.ReportData{
		Title:       "Project Report",
		GeneratedAt: time.Now().UTC(),
		Total:       stats.Total,
		Completed:   stats.Completed,
		Issues:      stats.Issues,
		AvgProgress: stats.AvgProgress,
		Summary:     summary,
		Tasks:       reportTasks,
	})
}

func (s *HTTPServer) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = randomRequestID()
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		started := time.Now()
		writer := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		setCORSHeaders(writer.Header(), s.corsOrigin)
		writer.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(writer, r)

		log.Printf(`{"request_id":"%s","method":"%s","path":"%s","status":%d,"duration_ms":%d}`,
			requestID,
			r.Method,
			r.URL.Path,
			writer.status,
			time.Since(started).Milliseconds(),
		)
	})
}

type requestIDKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func randomRequestID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func setCORSHeaders(header http.Header, corsOrigin string) {
	header.Set("Access-Control-Allow-Origin", corsOrigin)
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
	header.Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
	header.Set("Cache-Control", "no-store")
	header.Set("Content-Type", "application/json")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	response := map[string]any{
		"code":  code,
		"error": message,
	}
	if details != nil {
		response["details"] = details
	}
	writeJSON(w, status, response)
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, http.ErrBodyReadAfterClose) {
			return nil
		}
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func mapError(err error) (status int, code, message string, details any) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Status, domainErr.Code, domainErr.Message, domainErr.Details
	}
	if errors.Is(err, sql.ErrNoRows) {
		return http.StatusNotFound, "NOT_FOUND", "Not found", nil
	}
	return http.StatusInternalServerError, "SERVER_ERROR", "Server error", nil
}
