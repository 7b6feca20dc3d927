package view

import (
	"math"
	"sort"
	"time"

	"teamflow/api/internal/store"
)

const (
	leadDays        = 3
	tailDays        = 7
	minBarPct       = 2.0
	emptyWindowDays = 30
)

// Bar positions a single task inside the timeline window. Percentages are
// relative to the window width, left edge at the task's creation time and
// right edge at its deadline.
type Bar struct {
	Task     store.Task `json:"task"`
	LeftPct  float64    `json:"leftPct"`
	WidthPct float64    `json:"widthPct"`
}

type Timeline struct {
	Start time.Time `json:"start"`
	Days  int       `json:"days"`
	Bars  []Bar     `json:"bars"`
}

// ComputeTimeline lays out all tasks on a shared window spanning from the
// earliest creation or deadline minus a lead margin to the latest plus a
// tail margin. Bars are ordered oldest creation first. A task whose deadline
// does not parse, or falls before its creation, renders as a minimum-width
// bar anchored at its creation point; a parseable deadline still widens the
// window even when it precedes the creation.
func ComputeTimeline(tasks []store.Task, now time.Time) Timeline {
	if len(tasks) == 0 {
		return Timeline{Start: now, Days: emptyWindowDays, Bars: []Bar{}}
	}

	ends := make([]time.Time, len(tasks))
	minStart := tasks[0].CreatedAt
	maxEnd := tasks[0].CreatedAt
	for i, t := range tasks {
		if t.CreatedAt.Before(minStart) {
			minStart = t.CreatedAt
		}
		if t.CreatedAt.After(maxEnd) {
			maxEnd = t.CreatedAt
		}
		deadline, err := time.Parse("2006-01-02", t.Deadline)
		if err == nil {
			if deadline.Before(minStart) {
				minStart = deadline
			}
			if deadline.After(maxEnd) {
				maxEnd = deadline
			}
		}
		// Bar geometry clamps inverted or malformed deadlines to creation.
		if err != nil || deadline.Before(t.CreatedAt) {
			deadline = t.CreatedAt
		}
		ends[i] = deadline
	}

	start := minStart.AddDate(0, 0, -leadDays)
	end := maxEnd.AddDate(0, 0, tailDays)
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	window := float64(days) * 24 * float64(time.Hour)

	ordered := make([]int, len(tasks))
	for i := range ordered {
		ordered[i] = i
	}
	sort.SliceStable(ordered, func(a, b int) bool {
		return tasks[ordered[a]].CreatedAt.Before(tasks[ordered[b]].CreatedAt)
	})

	bars := make([]Bar, 0, len(tasks))
	for _, i := range ordered {
		t := tasks[i]
		left := float64(t.CreatedAt.Sub(start)) / window * 100
		width := float64(ends[i].Sub(t.CreatedAt)) / window * 100
		if width < minBarPct {
			width = minBarPct
		}
		bars = append(bars, Bar{Task: t, LeftPct: left, WidthPct: width})
	}

	return Timeline{Start: start, Days: days, Bars: bars}
}
