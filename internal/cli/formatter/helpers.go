package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindmirror/mindmirror/internal/alignment"
	"github.com/mindmirror/mindmirror/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// Stars renders the five-star bucket for an alignment score, filled stars
// colored by the score.
func Stars(score int) string {
	n := alignment.StarRating(score)
	filled := strings.Repeat("★", n)
	empty := strings.Repeat("☆", 5-n)
	return AlignmentStyle(score).Render(filled) + StyleDim.Render(empty)
}

// Clock renders whole seconds as h:mm:ss in the foreground style.
func Clock(seconds int64) string {
	return StyleFg.Render(domain.FormatClock(seconds))
}

// LastWorked renders when a task was last worked on relative to now.
// A running task shows as active; a never-worked task as "--".
func LastWorked(task *domain.Task, now time.Time) string {
	if task.IsRunning {
		return StyleYellowBold.Render("now")
	}
	if task.LastWorkedOn == 0 {
		return StyleDim.Render("--")
	}
	ago := domain.FormatAgo((now.UnixMilli() - task.LastWorkedOn) / 1000)
	if ago == "" {
		return StyleFg.Render("just now")
	}
	return StyleFg.Render(ago + " ago")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Percent renders "NN%" colored by the alignment scale.
func Percent(score int) string {
	return AlignmentStyle(score).Render(fmt.Sprintf("%d%%", score))
}
