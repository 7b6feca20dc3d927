package view

import (
	"testing"
	"time"

	"teamflow/api/internal/store"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return parsed
}

func TestComputeTimeline_EmptyUsesDefaultWindow(t *testing.T) {
	now := mustDate(t, "2024-06-01")
	timeline := ComputeTimeline(nil, now)
	if !timeline.Start.Equal(now) {
		t.Errorf("expected start %v, got %v", now, timeline.Start)
	}
	if timeline.Days != emptyWindowDays {
		t.Errorf("expected %d days, got %d", emptyWindowDays, timeline.Days)
	}
	if len(timeline.Bars) != 0 {
		t.Errorf("expected no bars, got %d", len(timeline.Bars))
	}
}

func TestComputeTimeline_WindowSpansLeadAndTail(t *testing.T) {
	tasks := []store.Task{
		{ID: "a", CreatedAt: mustDate(t, "2024-06-10"), Deadline: "2024-06-20"},
	}
	timeline := ComputeTimeline(tasks, mustDate(t, "2024-06-15"))

	wantStart := mustDate(t, "2024-06-07")
	if !timeline.Start.Equal(wantStart) {
		t.Errorf("expected start %v, got %v", wantStart, timeline.Start)
	}
	// 2024-06-07 through 2024-06-27 is 20 days.
	if timeline.Days != 20 {
		t.Errorf("expected 20 days, got %d", timeline.Days)
	}
}

func TestComputeTimeline_BarsOrderedByCreation(t *testing.T) {
	tasks := []store.Task{
		{ID: "newer", CreatedAt: mustDate(t, "2024-06-12"), Deadline: "2024-06-20"},
		{ID: "older", CreatedAt: mustDate(t, "2024-06-01"), Deadline: "2024-06-10"},
	}
	timeline := ComputeTimeline(tasks, mustDate(t, "2024-06-15"))
	if len(timeline.Bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(timeline.Bars))
	}
	if timeline.Bars[0].Task.ID != "older" || timeline.Bars[1].Task.ID != "newer" {
		t.Errorf("expected oldest first, got %s then %s", timeline.Bars[0].Task.ID, timeline.Bars[1].Task.ID)
	}
}

func TestComputeTimeline_MinimumBarWidth(t *testing.T) {
	// Same-day deadline gives a zero-length bar that should be floored.
	tasks := []store.Task{
		{ID: "a", CreatedAt: mustDate(t, "2024-06-10"), Deadline: "2024-06-10"},
		{ID: "b", CreatedAt: mustDate(t, "2024-01-01"), Deadline: "2024-12-31"},
	}
	timeline := ComputeTimeline(tasks, mustDate(t, "2024-06-15"))
	for _, bar := range timeline.Bars {
		if bar.Task.ID == "a" && bar.WidthPct != minBarPct {
			t.Errorf("expected floored width %.1f, got %.2f", minBarPct, bar.WidthPct)
		}
	}
}

func TestComputeTimeline_MalformedDeadlineClampsToCreation(t *testing.T) {
	tasks := []store.Task{
		{ID: "a", CreatedAt: mustDate(t, "2024-06-10"), Deadline: "not-a-date"},
	}
	timeline := ComputeTimeline(tasks, mustDate(t, "2024-06-15"))
	if len(timeline.Bars) != 1 {
		t.Fatalf("expected 1 bar, got %d", len(timeline.Bars))
	}
	if timeline.Bars[0].WidthPct != minBarPct {
		t.Errorf("expected minimum width for clamped bar, got %.2f", timeline.Bars[0].WidthPct)
	}
	// Window is creation-3d to creation+7d: 10 days.
	if timeline.Days != 10 {
		t.Errorf("expected 10 days, got %d", timeline.Days)
	}
}

func TestComputeTimeline_DeadlineBeforeCreationClamps(t *testing.T) {
	tasks := []store.Task{
		{ID: "a", CreatedAt: mustDate(t, "2024-06-10"), Deadline: "2024-06-01"},
	}
	timeline := ComputeTimeline(tasks, mustDate(t, "2024-06-15"))
	if timeline.Bars[0].WidthPct != minBarPct {
		t.Errorf("expected minimum width, got %.2f", timeline.Bars[0].WidthPct)
	}
	// The early deadline still pulls the window back: 2024-06-01 minus the
	// lead margin, through creation plus the tail margin.
	wantStart := mustDate(t, "2024-05-29")
	if !timeline.Start.Equal(wantStart) {
		t.Errorf("expected start %v, got %v", wantStart, timeline.Start)
	}
	if timeline.Days != 19 {
		t.Errorf("expected 19 days, got %d", timeline.Days)
	}
}

func TestComputeTimeline_LeftPositionWithinWindow(t *testing.T) {
	tasks := []store.Task{
		{ID: "a", CreatedAt: mustDate(t, "2024-06-01"), Deadline: "2024-06-10"},
		{ID: "b", CreatedAt: mustDate(t, "2024-06-05"), Deadline: "2024-06-15"},
	}
	timeline := ComputeTimeline(tasks, mustDate(t, "2024-06-20"))
	for _, bar := range timeline.Bars {
		if bar.LeftPct < 0 || bar.LeftPct > 100 {
			t.Errorf("bar %s left out of range: %.2f", bar.Task.ID, bar.LeftPct)
		}
		if bar.LeftPct+bar.WidthPct > 100+minBarPct {
			t.Errorf("bar %s extends past window: left %.2f width %.2f", bar.Task.ID, bar.LeftPct, bar.WidthPct)
		}
	}
	if timeline.Bars[0].LeftPct >= timeline.Bars[1].LeftPct {
		t.Errorf("expected earlier task further left: %.2f vs %.2f", timeline.Bars[0].LeftPct, timeline.Bars[1].LeftPct)
	}
}
