package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fintrack/internal/client/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	editStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

var columnWidths = map[table.Column]int{
	table.ColDescription:   28,
	table.ColAmount:        10,
	table.ColCategory:      14,
	table.ColPaymentMethod: 14,
	table.ColDate:          10,
}

func (a *App) View() string {
	if a.state == viewAuth {
		return a.renderAuth()
	}
	body := a.renderTable()
	if a.adding {
		body += "\n\n" + a.renderAddForm()
	}
	return body
}

func (a *App) onlineLabel() string {
	if a.online {
		return "online"
	}
	return "offline"
}

func (a *App) renderAuth() string {
	title := titleStyle.Render("Fintrack " + string(a.authMode) + " [" + a.onlineLabel() + "]")

	userMarker, passMarker := " ", " "
	if a.field == fieldUsername {
		userMarker = "▶"
	} else {
		passMarker = "▶"
	}

	out := title + "\n\n"
	out += fmt.Sprintf("%s Username: %s\n", userMarker, a.username)
	out += fmt.Sprintf("%s Password: %s\n", passMarker, strings.Repeat("*", len(a.password)))
	out += "\n" + faintStyle.Render("[tab] Switch field  [enter] Submit  [ctrl+r] Toggle sign in/register  [ctrl+c] Quit")
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderTable() string {
	title := titleStyle.Render("Financial Records " + a.identity.Current() + " [" + a.onlineLabel() + "]")
	recs := a.store.Records()
	editRow, editCol, editing := a.controller.Editing()

	var header strings.Builder
	for _, col := range table.Columns {
		header.WriteString(pad(col.Title(), columnWidths[col]))
		header.WriteString("  ")
	}

	out := title + "\n" + headerStyle.Render(header.String()) + "\n"
	for i, r := range recs {
		var line strings.Builder
		for ci, col := range table.Columns {
			value := table.CellValue(r, col)
			cell := pad(value, columnWidths[col])
			switch {
			case editing && i == editRow && col == editCol:
				cell = editStyle.Render(pad(a.controller.Buffer()+"▏", columnWidths[col]))
			case !editing && i == a.cursorRow && ci == a.cursorCol:
				cell = cursorStyle.Render(cell)
			}
			line.WriteString(cell)
			line.WriteString("  ")
		}
		out += line.String() + "\n"
	}
	if len(recs) == 0 {
		out += faintStyle.Render("(no records yet, press 'a' to add one)") + "\n"
	}

	out += fmt.Sprintf("\nTotal: %.2f\n", a.controller.Total())
	if editing {
		out += faintStyle.Render("[enter/esc] Save cell  [backspace] Delete char")
	} else {
		out += faintStyle.Render("[arrows] Move  [enter] Edit cell  [a] Add  [x] Delete row  [r] Reload  [ctrl+l] Sign out  [q] Quit")
	}
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderAddForm() string {
	labels := [addFieldCount]string{"Description", "Amount", "Category", "Payment Method"}

	out := titleStyle.Render("New record") + "\n"
	for f := addDescription; f < addFieldCount; f++ {
		marker := " "
		if f == a.addFocus {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-15s %s\n", marker, labels[f]+":", a.addInputs[f])
	}
	out += faintStyle.Render("[tab] Next field  [enter] Save  [esc] Cancel")
	return out
}

// pad counts runes, not bytes, so multibyte text keeps the columns aligned.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
