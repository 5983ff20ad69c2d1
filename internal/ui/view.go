package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/facetdev/facet/internal/api"
	"github.com/facetdev/facet/internal/controller"
)

func (m model) View() string {
	sections := []string{m.viewHeader()}

	if banner := m.viewBanner(); banner != "" {
		sections = append(sections, banner)
	}

	switch m.mode {
	case modeEdit:
		sections = append(sections, m.editor.view(m.styles, m.snap.State == controller.StateSubmitting))
	case modeSwitch:
		sections = append(sections, m.viewSwitcher())
	default:
		sections = append(sections, m.viewCard())
	}

	sections = append(sections, m.viewFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m model) viewHeader() string {
	parts := []string{m.styles.Logo.Render("facet")}

	if m.snap.BoundID != "" {
		parts = append(parts, m.styles.MutedText.Render("· "+m.snap.BoundID))
	}
	if m.snap.Loading {
		parts = append(parts, m.spin.View())
	}
	if m.snap.IsOffline() {
		parts = append(parts, m.styles.WarningText.Render("offline"))
	}

	return m.styles.Header.Render(strings.Join(parts, " "))
}

func (m model) viewBanner() string {
	if m.snap.Err == "" {
		return ""
	}
	return m.styles.ErrorBanner.Render(m.snap.Err + m.styles.MutedText.Render("  (d to dismiss)"))
}

func (m model) viewCard() string {
	p := m.snap.Profile
	if p == nil {
		return m.styles.Card.Render(m.viewEmpty())
	}

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.styles.Title.Render(p.DisplayName()),
			"  ",
			m.styles.RoleBadge(string(p.Role)).Render(roleLabel(p.Role)),
		),
		"",
		m.row("Email", p.Email),
		m.row("Bio", valueOrDash(p.Bio)),
		m.row("Avatar", valueOrDash(p.Avatar)),
		"",
		m.row("Updated", formatTimestamp(p.ParsedUpdatedAt(), p.UpdatedAt)),
	}

	style := m.styles.Card
	if m.snap.State == controller.StateFailed {
		// Stale data after a failed refresh gets a warning border.
		style = m.styles.Card.BorderForeground(lipgloss.Color(m.theme.Warning))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m model) viewEmpty() string {
	switch m.snap.State {
	case controller.StateLoading:
		return m.styles.MutedText.Render("loading profile...")
	case controller.StateFailed:
		return m.styles.MutedText.Render("no profile loaded")
	}
	return m.styles.MutedText.Render("no profile bound · press u to pick a user")
}

func (m model) viewSwitcher() string {
	rows := []string{
		m.styles.Title.Render("Switch user"),
		"",
		m.switcher.View(),
		"",
		m.styles.MutedText.Render("enter bind · esc cancel"),
	}
	return m.styles.CardFocus.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m model) viewFooter() string {
	keys := keyHints(m.snap, m.mode)
	return m.styles.Footer.Render(strings.Join(keys, " · "))
}

func (m model) row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Label.Render(label),
		m.styles.Value.Render(value),
	)
}

// keyHints returns the footer hints appropriate for the current state.
func keyHints(snap controller.Snapshot, md mode) []string {
	switch md {
	case modeEdit:
		return []string{"enter save", "esc cancel", "tab field"}
	case modeSwitch:
		return []string{"enter bind", "esc cancel"}
	}

	hints := []string{"u user", "r refresh"}
	if snap.State == controller.StateReady {
		hints = append([]string{"e edit"}, hints...)
	}
	if snap.Err != "" {
		hints = append(hints, "d dismiss")
	}
	return append(hints, "t theme", "q quit")
}

// formatTimestamp renders a parsed timestamp, falling back to the raw
// service string when it doesn't parse.
func formatTimestamp(t time.Time, raw string) string {
	if t.IsZero() {
		return valueOrDash(raw)
	}
	return t.Local().Format("2006-01-02 15:04")
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "—"
	}
	return v
}

// roleLabel is kept separate from the badge so plain-text contexts (logs,
// tests) can reuse it.
func roleLabel(r api.Role) string {
	if !r.Valid() {
		return "unknown"
	}
	return string(r)
}
