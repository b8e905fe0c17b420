package ui

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/TaskGraph/internal/task"
)

// RenderTaskTable formats tasks as an aligned list for terminal output.
func RenderTaskTable(tasks []task.Task) string {
	if len(tasks) == 0 {
		return StyleSubtle.Render("No tasks found.")
	}

	var b strings.Builder
	b.WriteString(StyleHeader.Render(fmt.Sprintf("%-14s %-12s %-6s %s", "ID", "STATUS", "DEPS", "TITLE")))
	b.WriteString("\n")

	for _, t := range tasks {
		deps := "-"
		if n := len(t.Prerequisites); n > 0 {
			deps = fmt.Sprintf("%d", n)
		}
		b.WriteString(fmt.Sprintf(" %-14s %-23s %-6s %s\n",
			t.ID,
			// The badge carries ANSI codes, so pad past the display width.
			StatusBadge(t.Status),
			deps,
			StyleTitle.Render(t.Title)))
	}
	return b.String()
}

// RenderReadiness formats a readiness report.
func RenderReadiness(r *task.Readiness) string {
	if r.Ready {
		return StyleSuccess.Render("✔ ready") + StyleSubtle.Render(" — all prerequisites completed")
	}

	var b strings.Builder
	b.WriteString(StyleError.Render("✘ blocked") + StyleSubtle.Render(" — waiting on:"))
	b.WriteString("\n")
	for _, ref := range r.Blocking {
		b.WriteString(fmt.Sprintf("  %s  %s (%s)\n", ref.ID, ref.Title, StatusBadge(ref.Status)))
	}
	return b.String()
}
