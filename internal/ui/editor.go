package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/facetdev/facet/internal/api"
)

// Field indexes into editor.inputs.
const (
	fieldFirstName = iota
	fieldLastName
	fieldBio
	fieldAvatar
	fieldCount
)

// editor owns the edit draft. Draft values never reach the controller
// until the user submits a finished patch; cancelling throws them away
// here, not there.
type editor struct {
	inputs []textinput.Model
	labels []string
	focus  int
	base   api.Profile
}

func newEditor(base api.Profile) editor {
	mk := func(placeholder, value string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Prompt = ""
		in.SetValue(value)
		return in
	}

	e := editor{
		labels: []string{"First name", "Last name", "Bio", "Avatar"},
		inputs: []textinput.Model{
			fieldFirstName: mk("first name", base.FirstName, 64),
			fieldLastName:  mk("last name", base.LastName, 64),
			fieldBio:       mk("a short bio", base.Bio, 280),
			fieldAvatar:    mk("avatar url", base.Avatar, 256),
		},
		base: base,
	}
	e.inputs[fieldFirstName].Focus()
	return e
}

func (e editor) update(msg tea.Msg) (editor, tea.Cmd) {
	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	return e, cmd
}

func (e editor) focusNext() editor {
	return e.setFocus((e.focus + 1) % fieldCount)
}

func (e editor) focusPrev() editor {
	return e.setFocus((e.focus + fieldCount - 1) % fieldCount)
}

func (e editor) setFocus(idx int) editor {
	e.inputs[e.focus].Blur()
	e.focus = idx
	e.inputs[e.focus].Focus()
	return e
}

// patch returns only the fields the user actually changed, so untouched
// fields stay out of the request body entirely.
func (e editor) patch() api.Patch {
	var p api.Patch
	if v := e.inputs[fieldFirstName].Value(); v != e.base.FirstName {
		p.FirstName = &v
	}
	if v := e.inputs[fieldLastName].Value(); v != e.base.LastName {
		p.LastName = &v
	}
	if v := e.inputs[fieldBio].Value(); v != e.base.Bio {
		p.Bio = &v
	}
	if v := e.inputs[fieldAvatar].Value(); v != e.base.Avatar {
		p.Avatar = &v
	}
	return p
}

func (e editor) view(styles Styles, submitting bool) string {
	rows := make([]string, 0, fieldCount+2)
	rows = append(rows, styles.Title.Render("Edit profile"), "")
	for i, in := range e.inputs {
		label := styles.Label.Render(e.labels[i])
		if i == e.focus {
			label = styles.AccentText.Width(10).Render(e.labels[i])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, in.View()))
	}
	if submitting {
		rows = append(rows, "", styles.WarningText.Render("saving..."))
	} else {
		rows = append(rows, "", styles.MutedText.Render("enter save · esc cancel · tab next field"))
	}
	return styles.CardFocus.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
