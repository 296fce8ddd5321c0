package cli

import (
	"context"
	"time"

	"github.com/calvinalkan/timetrack/internal/tracker"

	flag "github.com/spf13/pflag"
)

const listTimeLayout = "2006-01-02 15:04:05"

// ListCmd returns the list command.
func ListCmd(a *app) *Command {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.StringP("category", "k", "", "Only list this category (exact match, e.g. #work)")

	return &Command{
		Flags: fs,
		Usage: "list [flags]",
		Short: "List all tasks by category",
		Long: `List every category and its tasks in the order they were created.

Each task shows its status, first start, last end (N/A while running),
accrued time and time spent paused.`,
		Exec: func(_ context.Context, io *IO, _ []string) error {
			category, _ := fs.GetString("category")

			return execList(io, a, category)
		},
	}
}

func execList(io *IO, a *app, only string) error {
	s, err := a.load(io)
	if err != nil {
		return err
	}

	st := newStyles(io.out)
	now := a.now()
	printed := 0

	for _, category := range s.CategoryNames() {
		if only != "" && category != only {
			continue
		}

		tasks := s.Categories[category]
		if len(tasks) == 0 {
			continue
		}

		if printed > 0 {
			io.Println()
		}

		io.Println(st.title.Render("Category: " + category))

		for _, task := range tasks {
			io.Printf("  %s %s\n", st.status(task.Status), st.label.Render(task.Name))
			io.Printf("    started %s  last end %s  total %s  paused %s\n",
				formatTime(task.FirstStart(), now.Location()),
				lastEnd(task, now.Location()),
				tracker.FormatClock(task.Accrue(now)),
				tracker.FormatClock(task.PausedDuration),
			)
		}

		printed++
	}

	if printed == 0 {
		io.Println("No tasks recorded.")
	}

	return nil
}

func lastEnd(task *tracker.Task, loc *time.Location) string {
	last, ok := task.LastChunk()
	if !ok || last.End == nil {
		return "N/A"
	}

	return formatTime(*last.End, loc)
}

// formatTime renders t in loc, the location of the app clock.
func formatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(listTimeLayout)
}
