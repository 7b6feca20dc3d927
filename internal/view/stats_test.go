package view

import (
	"testing"

	"teamflow/api/internal/store"
)

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.Total != 0 || stats.Completed != 0 || stats.Issues != 0 || stats.AvgProgress != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestComputeStats_AverageIsRoundedMean(t *testing.T) {
	tasks := []store.Task{
		{Progress: 10},
		{Progress: 20},
		{Progress: 25},
	}
	stats := ComputeStats(tasks)
	// (10+20+25)/3 = 18.33 rounds to 18
	if stats.AvgProgress != 18 {
		t.Errorf("expected avg 18, got %d", stats.AvgProgress)
	}

	tasks = append(tasks, store.Task{Progress: 15})
	stats = ComputeStats(tasks)
	// (10+20+25+15)/4 = 17.5 rounds to 18
	if stats.AvgProgress != 18 {
		t.Errorf("expected avg 18, got %d", stats.AvgProgress)
	}
}

func TestComputeStats_CompletedCountsStatusNotProgress(t *testing.T) {
	tasks := []store.Task{
		{Status: store.StatusDone, Progress: 40},
		{Status: store.StatusInProgress, Progress: 100},
		{Status: store.StatusTodo, Progress: 0},
	}
	stats := ComputeStats(tasks)
	if stats.Completed != 1 {
		t.Errorf("expected 1 completed, got %d", stats.Completed)
	}
	if stats.Total != 3 {
		t.Errorf("expected 3 total, got %d", stats.Total)
	}
}

func TestComputeStats_IssuesCountNonEmpty(t *testing.T) {
	tasks := []store.Task{
		{Issue: "blocked on review"},
		{Issue: ""},
		{Issue: "waiting for design"},
	}
	stats := ComputeStats(tasks)
	if stats.Issues != 2 {
		t.Errorf("expected 2 issues, got %d", stats.Issues)
	}
}
