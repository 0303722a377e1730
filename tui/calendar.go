package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"focusdo/model"
)

const calendarCellWidth = 10

// renderCalendar draws a month grid with due-task counts per day.
// Completed tasks are not counted; the grid shows what still needs
// doing, matching the list view's default lens.
func (m *Model) renderCalendar(width int) string {
	p := m.palette
	month := m.calMonth
	today := time.Now().Format(model.DateLayout)

	counts := make(map[string]int)
	for _, t := range m.tasks.Tasks() {
		if t.DueDate == "" || t.Status == model.StatusCompleted {
			continue
		}
		counts[t.DueDate]++
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(p.Primary).
		Render(month.Format("January 2006"))

	headStyle := lipgloss.NewStyle().Foreground(p.Dim).Width(calendarCellWidth)
	var head strings.Builder
	for _, d := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		head.WriteString(headStyle.Render(d))
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)
	// Monday-first offset of the 1st within its week.
	offset := (int(first.Weekday()) + 6) % 7
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var rows []string
	var row strings.Builder
	cell := 0
	for i := 0; i < offset; i++ {
		row.WriteString(strings.Repeat(" ", calendarCellWidth))
		cell++
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.Local).Format(model.DateLayout)
		label := fmt.Sprintf("%2d", day)
		if n := counts[date]; n > 0 {
			label += fmt.Sprintf(" •%d", n)
		}

		style := lipgloss.NewStyle().Width(calendarCellWidth).Foreground(p.Foreground)
		if date == today {
			style = style.Bold(true).Foreground(p.Primary)
		} else if counts[date] > 0 {
			style = style.Foreground(p.Warning)
		}
		row.WriteString(style.Render(label))

		cell++
		if cell == 7 {
			rows = append(rows, row.String())
			row.Reset()
			cell = 0
		}
	}
	if cell > 0 {
		rows = append(rows, row.String())
	}

	hint := lipgloss.NewStyle().Foreground(p.Dim).
		Render("[ prev month • ] next month • v list view")

	body := strings.Join([]string{title, "", head.String(), strings.Join(rows, "\n"), "", hint}, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1).
		Width(width).
		Render(body)
}
