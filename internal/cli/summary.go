package cli

import (
	"context"
	"errors"

	"github.com/calvinalkan/timetrack/internal/tracker"

	flag "github.com/spf13/pflag"
)

var errTooManyPeriods = errors.New("summary takes at most one period")

// SummaryCmd returns the summary command.
func SummaryCmd(a *app) *Command {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	fs.StringP("category", "k", "", "Only summarize this category (exact match, e.g. #work)")
	fs.BoolP("tasks", "t", false, "List each included task")

	return &Command{
		Flags: fs,
		Usage: "summary [period] [flags]",
		Short: "Summarize time per category",
		Long: `Summarize time per category: total duration and how many tasks are
Running, Paused and Stopped.

[period] is day, week, month or a number of days. A task is included when its
most recent time chunk started within the period. Without a period every task
is included. An unrecognized period means one day.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			category, _ := fs.GetString("category")
			withTasks, _ := fs.GetBool("tasks")

			return execSummary(io, a, args, category, withTasks)
		},
	}
}

func execSummary(io *IO, a *app, args []string, category string, withTasks bool) error {
	if len(args) > 1 {
		return errTooManyPeriods
	}

	period := ""
	if len(args) == 1 {
		period = args[0]
	}

	s, err := a.load(io)
	if err != nil {
		return err
	}

	report := tracker.Summarize(s, a.now(), tracker.SummaryOptions{
		Window:   tracker.ParsePeriod(period),
		Category: category,
	})

	st := newStyles(io.out)

	io.Println(st.title.Render("Time spent in " + tracker.DescribeWindow(report.Window) + ":"))

	if len(report.Categories) == 0 {
		io.Println("No tasks found.")

		return nil
	}

	for _, cat := range report.Categories {
		io.Println()
		io.Println("Category:", st.label.Render(cat.Category))
		io.Println("  Total duration:", tracker.FormatHMS(cat.Total))
		io.Println("  Running tasks:", cat.Running)
		io.Println("  Paused tasks:", cat.Paused)
		io.Println("  Stopped tasks:", cat.Stopped)

		if withTasks {
			for _, task := range cat.Tasks {
				io.Printf("    %s %s %s\n", st.status(task.Status), tracker.FormatHMS(task.Duration), task.Name)
			}
		}
	}

	io.Println()
	io.Println("Total:", tracker.FormatHMS(report.Total()))

	return nil
}
