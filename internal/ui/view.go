package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todoboard/internal/utils"
)

const (
	barWidth          = 30
	descriptionLength = 72
)

type styles struct {
	title     lipgloss.Style
	subtle    lipgloss.Style
	selected  lipgloss.Style
	completed lipgloss.Style
	barFull   lipgloss.Style
	barEmpty  lipgloss.Style
	label     lipgloss.Style
	focused   lipgloss.Style
	notice    lipgloss.Style
	errPanel  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		subtle:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		selected:  lipgloss.NewStyle().Bold(true),
		completed: lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8")),
		barFull:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		barEmpty:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		label:     lipgloss.NewStyle().Width(13),
		focused:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		notice: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("11")).
			Padding(0, 1),
		errPanel: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (m *Model) View() string {
	var b strings.Builder
	m.writeTitle(&b)

	if m.notice != "" {
		b.WriteString(m.styles.notice.Render(utils.StripControl(m.notice)))
		b.WriteString("\n")
		b.WriteString(m.styles.subtle.Render("Press any key to continue"))
		b.WriteString("\n")
		return b.String()
	}

	switch {
	case m.mode == modeForm:
		m.writeForm(&b)
	case m.showHelp:
		writeHelp(&b)
	default:
		m.writeList(&b)
	}
	m.writeFooter(&b)
	return b.String()
}

func (m *Model) writeTitle(b *strings.Builder) {
	title := "Todo Board"
	b.WriteString(m.styles.title.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")
	if m.source != "" {
		b.WriteString(m.styles.subtle.Render(m.source) + "\n")
	}
	b.WriteString("\n")
}

func (m *Model) writeList(b *strings.Builder) {
	if m.state.LoadErr != nil {
		b.WriteString(m.styles.errPanel.Render("Error loading todos:") + "\n")
		b.WriteString("  " + utils.StripControl(m.state.LoadErr.Error()) + "\n\n")
	}
	if !m.state.Loaded {
		if m.state.LoadErr == nil {
			b.WriteString("Loading...\n\n")
		}
		return
	}

	items := m.state.Items(m.loc)
	if len(items) == 0 {
		b.WriteString("  No todos yet. Press n to add one.\n\n")
		return
	}
	for i, item := range items {
		b.WriteString(m.renderItem(item, i == m.state.Cursor))
		b.WriteString("\n")
	}

	if m.mode == modeConfirmDelete && m.pendingDelete != nil {
		prompt := fmt.Sprintf("Delete %q? %s", utils.StripControl(m.pendingDelete.Title), ConfirmDeletePrompt)
		b.WriteString(m.styles.errPanel.Render(prompt) + "\n\n")
	}
}

func (m *Model) renderItem(item Item, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	title := item.Title
	switch {
	case item.Completed:
		title = m.styles.completed.Render(title)
	case selected:
		title = m.styles.selected.Render(title)
	}

	var b strings.Builder
	b.WriteString(cursor + title + "\n")
	if item.Description != "" {
		b.WriteString("    " + m.styles.subtle.Render(utils.Truncate(item.Description, descriptionLength)) + "\n")
	}
	b.WriteString(fmt.Sprintf("    Start: %s  End: %s\n", item.Start, item.End))
	b.WriteString(fmt.Sprintf("    %s %s\n", m.progressBar(item.Progress), item.ProgressText))
	return b.String()
}

func (m *Model) progressBar(pct float64) string {
	filled := barFill(pct, barWidth)
	return m.styles.barFull.Render(strings.Repeat("█", filled)) +
		m.styles.barEmpty.Render(strings.Repeat("░", barWidth-filled))
}

// barFill returns how many of width cells represent pct.
func barFill(pct float64, width int) int {
	if math.IsNaN(pct) || pct <= 0 {
		return 0
	}
	if pct >= 100 {
		return width
	}
	return int(math.Round(pct / 100 * float64(width)))
}

func (m *Model) writeForm(b *strings.Builder) {
	if m.form.Editing() {
		b.WriteString(m.styles.selected.Render(fmt.Sprintf("Edit todo %s", m.form.ID)) + "\n\n")
	} else {
		b.WriteString(m.styles.selected.Render("New todo") + "\n\n")
	}

	for f := Field(0); f < fieldCount; f++ {
		label := m.styles.label.Render(f.String() + ":")
		var value string
		if f == FieldCompleted {
			value = "[ ]"
			if m.form.Completed {
				value = "[x]"
			}
		} else {
			form := m.form
			form.Focus = f
			value = utils.StripControl(*form.value())
		}

		marker := "  "
		if f == m.form.Focus {
			marker = "> "
			label = m.styles.focused.Render(f.String() + ":")
			label = m.styles.label.Render(label)
			if f != FieldCompleted {
				value += "▏"
			}
		}
		b.WriteString(marker + label + value + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.subtle.Render("Times use YYYY-MM-DDTHH:MM. Leave progress empty to derive it from the time window.") + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up/k, down/j  Move selection\n")
	b.WriteString("  n             New todo\n")
	b.WriteString("  e, enter      Edit selected todo\n")
	b.WriteString("  d, x          Delete selected todo\n")
	b.WriteString("  r, F5         Reload from server\n")
	b.WriteString("  h, ?          Toggle this help screen\n")
	b.WriteString("  q, ctrl+c     Quit\n\n")
	b.WriteString("In the form\n\n")
	b.WriteString("  tab/shift+tab Move between fields\n")
	b.WriteString("  space         Toggle completed (on the Completed field)\n")
	b.WriteString("  ctrl+u        Clear field\n")
	b.WriteString("  enter, ctrl+s Save\n")
	b.WriteString("  esc           Cancel\n\n")
}

func (m *Model) writeFooter(b *strings.Builder) {
	var parts []string
	switch m.mode {
	case modeForm:
		parts = append(parts, "enter save")
		if m.form.Editing() {
			parts = append(parts, "esc cancel edit")
		} else {
			parts = append(parts, "esc close")
		}
	case modeConfirmDelete:
		parts = append(parts, "y confirm", "n cancel")
	default:
		parts = append(parts, "h help", "n new", "q quit")
	}
	if m.inFlight > 0 {
		parts = append(parts, "working...")
	}
	parts = append(parts, fmt.Sprintf("updating every %s", m.tickInterval))
	b.WriteString(m.styles.subtle.Render(strings.Join(parts, " | ")) + "\n")
}
