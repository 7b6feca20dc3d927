package search

import (
	"context"
	"log"
)

// Service is the facade that tries Meilisearch first and falls back to
// Postgres matching.
type Service struct {
	meili *Meili
	pg    *PgSearch
}

// NewService creates a search service. meili may be nil if Meilisearch is not configured.
func NewService(meili *Meili, pg *PgSearch) *Service {
	return &Service{meili: meili, pg: pg}
}

// Search tries Meilisearch if healthy, otherwise falls back to Postgres.
func (s *Service) Search(q Query) Response {
	if s.meili != nil && s.meili.Healthy() {
		results, total, err := s.meili.Search(q)
		if err == nil {
			return Response{Results: nonNil(results), Total: total, Query: q.Text}
		}
		log.Printf("search: meilisearch error, falling back to postgres: %v", err)
	}

	results, total, err := s.pg.Search(q)
	if err != nil {
		log.Printf("search: postgres fallback error: %v", err)
		return Response{Results: []Result{}, Total: 0, Query: q.Text}
	}
	return Response{Results: nonNil(results), Total: total, Query: q.Text}
}

// IndexTask indexes a task (fire-and-forget to Meilisearch).
func (s *Service) IndexTask(t TaskRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexTask(t); err != nil {
			log.Printf("search: index task %s: %v", t.ID, err)
		}
	}()
}

// IndexRequirement indexes a requirement (fire-and-forget to Meilisearch).
func (s *Service) IndexRequirement(r RequirementRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexRequirement(r); err != nil {
			log.Printf("search: index requirement %s: %v", r.ID, err)
		}
	}()
}

// IndexMeeting indexes a meeting log (fire-and-forget to Meilisearch).
func (s *Service) IndexMeeting(m MeetingRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexMeeting(m); err != nil {
			log.Printf("search: index meeting %s: %v", m.ID, err)
		}
	}()
}

// DeleteTask removes a task from the search index (fire-and-forget).
func (s *Service) DeleteTask(id string) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.DeleteTask(id); err != nil {
			log.Printf("search: delete task %s: %v", id, err)
		}
	}()
}

// DeleteRequirement removes a requirement from the search index (fire-and-forget).
func (s *Service) DeleteRequirement(id string) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.DeleteRequirement(id); err != nil {
			log.Printf("search: delete requirement %s: %v", id, err)
		}
	}()
}

// DeleteMeeting removes a meeting log from the search index (fire-and-forget).
func (s *Service) DeleteMeeting(id string) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.DeleteMeeting(id); err != nil {
			log.Printf("search: delete meeting %s: %v", id, err)
		}
	}()
}

// ReindexAll pushes full collections into Meilisearch. Called at startup so
// the index reflects whatever the database already holds.
func (s *Service) ReindexAll(tasks []TaskRecord, requirements []RequirementRecord, meetings []MeetingRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}

	if len(tasks) > 0 {
		if err := s.meili.IndexTasks(tasks); err != nil {
			log.Printf("search: reindex tasks: %v", err)
		}
	}
	if len(requirements) > 0 {
		if err := s.meili.IndexRequirements(requirements); err != nil {
			log.Printf("search: reindex requirements: %v", err)
		}
	}
	if len(meetings) > 0 {
		if err := s.meili.IndexMeetings(meetings); err != nil {
			log.Printf("search: reindex meetings: %v", err)
		}
	}
}

// ReindexAllFromPG reindexes all searchable entities from PostgreSQL into Meilisearch.
func (s *Service) ReindexAllFromPG(ctx context.Context) {
	if s.meili == nil || !s.meili.Healthy() || s.pg == nil {
		return
	}
	tasks, requirements, meetings, err := s.pg.LoadAllRecords(ctx)
	if err != nil {
		log.Printf("search: reindex load failed: %v", err)
		return
	}
	s.ReindexAll(tasks, requirements, meetings)
}

func nonNil(r []Result) []Result {
	if r == nil {
		return []Result{}
	}
	return r
}
