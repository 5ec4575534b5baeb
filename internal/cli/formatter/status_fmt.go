package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/mindmirror/mindmirror/internal/domain"
)

const alignmentBarWidth = 20

// RootStatusView is one main goal's line in the status dashboard.
type RootStatusView struct {
	Name           string
	TrackedSeconds int64
	TargetSeconds  int64
	Internal       int
	Task           *domain.Task
}

// RunningView is one active timer in the status dashboard.
type RunningView struct {
	Name           string
	ElapsedSeconds int64
}

// StatusData carries everything the status dashboard renders.
type StatusData struct {
	Overall      int
	TotalTracked int64
	Eligible     bool
	Achievements domain.Achievements
	Roots        []RootStatusView
	Running      []RunningView
	Now          time.Time
}

// FormatStatus renders the alignment dashboard.
func FormatStatus(d StatusData) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Alignment  %s  %s\n", AlignmentBar(d.Overall, alignmentBarWidth), Stars(d.Overall)))
	b.WriteString(fmt.Sprintf("Tracked    %s total\n", Clock(d.TotalTracked)))
	b.WriteString(fmt.Sprintf("Crowns     %s\n", CrownBadge(d.Achievements)))
	if !d.Eligible {
		b.WriteString(Dim("Feedback starts after 5 minutes of tracked time.") + "\n")
	}

	if len(d.Roots) > 0 {
		b.WriteString("\n")
		headers := []string{"GOAL", "TRACKED", "TARGET", "INTERNAL", "LAST WORKED"}
		rows := make([][]string, 0, len(d.Roots))
		for _, r := range d.Roots {
			rows = append(rows, []string{
				Bold(r.Name),
				Clock(r.TrackedSeconds),
				Dim(domain.FormatClock(r.TargetSeconds)),
				Percent(r.Internal),
				LastWorked(r.Task, d.Now),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	if len(d.Running) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Running timers") + "\n")
		for _, r := range d.Running {
			b.WriteString(fmt.Sprintf("%s %s  %s\n",
				StyleYellowBold.Render("▶"), Bold(r.Name), Clock(r.ElapsedSeconds)))
		}
	}

	return RenderBox("Status", strings.TrimRight(b.String(), "\n"))
}

// FormatGoalList renders the flat goal table.
func FormatGoalList(rows []GoalRow) string {
	if len(rows) == 0 {
		return Dim("No goals yet. Create one with `goal add`.")
	}

	headers := []string{"NAME", "ID", "PARENT", "TRACKED", "TIMER"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		parent := Dim("--")
		if r.ParentName != "" {
			parent = StyleFg.Render(r.ParentName)
		}
		out = append(out, []string{
			Bold(r.Name),
			TruncID(r.ID),
			parent,
			Clock(r.TrackedSeconds),
			RunningPill(r.Running),
		})
	}
	return RenderTable(headers, out)
}

// GoalRow is one line of the goal list.
type GoalRow struct {
	Name           string
	ID             string
	ParentName     string
	TrackedSeconds int64
	Running        bool
}

// FormatEvents renders recent activity events, newest last.
func FormatEvents(events []domain.Event) string {
	if len(events) == 0 {
		return Dim("No activity recorded.")
	}

	var b strings.Builder
	for _, e := range events {
		stamp := time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04:05")
		b.WriteString(fmt.Sprintf("%s  %s", Dim(stamp), StylePurple.Render(string(e.Type))))
		if name, ok := e.Data["name"].(string); ok && name != "" {
			b.WriteString("  " + StyleFg.Render(name))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
