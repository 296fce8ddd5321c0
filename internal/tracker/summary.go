package tracker

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Unbounded is a window that includes every task.
const Unbounded = time.Duration(math.MaxInt64)

// Named period lengths accepted by [ParsePeriod].
const (
	Day   = 24 * time.Hour
	Week  = 7 * Day
	Month = 30 * Day
)

// ParsePeriod maps "day", "week" and "month" (any case) or a positive
// number of days to a window. Anything else is one day. The empty string
// is [Unbounded].
func ParsePeriod(period string) time.Duration {
	switch strings.ToLower(strings.TrimSpace(period)) {
	case "":
		return Unbounded
	case "day":
		return Day
	case "week":
		return Week
	case "month":
		return Month
	}

	days, err := strconv.Atoi(strings.TrimSpace(period))
	if err != nil || days <= 0 || time.Duration(days) > Unbounded/Day {
		return Day
	}

	return time.Duration(days) * Day
}

// DescribeWindow returns a phrase such as "the last 7 days" or "all time".
func DescribeWindow(window time.Duration) string {
	switch {
	case window == Unbounded:
		return "all time"
	case window == Day:
		return "the last day"
	case window == Week:
		return "the last week"
	case window == Month:
		return "the last month"
	case window%Day == 0:
		return "the last " + strconv.FormatInt(int64(window/Day), 10) + " days"
	default:
		return "the last " + window.String()
	}
}

// SummaryOptions selects which tasks a summary covers.
type SummaryOptions struct {
	// Window keeps tasks whose last chunk started at most Window before now.
	// Zero means [Unbounded].
	Window time.Duration

	// Category restricts the report to one exact category name when non-empty.
	Category string
}

// TaskSummary is one task's contribution to a [CategorySummary].
type TaskSummary struct {
	Name     string
	Status   Status
	Duration time.Duration
}

// CategorySummary aggregates the tasks of one category.
type CategorySummary struct {
	Category string
	Total    time.Duration
	Running  int
	Paused   int
	Stopped  int
	Tasks    []TaskSummary
}

// Count returns the number of tasks included in the summary.
func (c CategorySummary) Count() int {
	return c.Running + c.Paused + c.Stopped
}

// Report is the result of [Summarize].
type Report struct {
	Window     time.Duration
	Categories []CategorySummary
}

// Total returns the sum of every category's total.
func (r Report) Total() time.Duration {
	var total time.Duration
	for _, c := range r.Categories {
		total += c.Total
	}

	return total
}

// Summarize aggregates store per category as of now.
//
// A task is included iff now minus the start of its last chunk is at most
// the window. This is a recency filter on the last chunk, not on the time
// worked inside the window. Included tasks contribute [Task.Accrue].
// Categories with no included task are omitted, so a Category filter that
// matches nothing yields an empty report. Categories are in lexical order.
func Summarize(store *Store, now time.Time, opts SummaryOptions) Report {
	window := opts.Window
	if window <= 0 {
		window = Unbounded
	}

	report := Report{Window: window}

	for _, category := range store.CategoryNames() {
		if opts.Category != "" && category != opts.Category {
			continue
		}

		summary := CategorySummary{Category: category}

		for _, task := range store.Categories[category] {
			if task == nil || len(task.TimeChunks) == 0 {
				continue
			}

			if now.Sub(task.LastActive()) > window {
				continue
			}

			switch task.Status {
			case StatusRunning:
				summary.Running++
			case StatusPaused:
				summary.Paused++
			case StatusStopped:
				summary.Stopped++
			default:
				continue
			}

			duration := task.Accrue(now)
			summary.Total += duration
			summary.Tasks = append(summary.Tasks, TaskSummary{
				Name:     task.Name,
				Status:   task.Status,
				Duration: duration,
			})
		}

		if summary.Count() > 0 {
			report.Categories = append(report.Categories, summary)
		}
	}

	return report
}
