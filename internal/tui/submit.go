package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/scriptorium/scriptorium/internal/model"
)

// Form field order: title, author, content, then the AIGC toggle.
const (
	fieldTitle = iota
	fieldAuthor
	fieldContent
	fieldAIGC
	fieldCount
)

// submitForm collects a new manuscript submission.
type submitForm struct {
	inputs   []textinput.Model
	aigc     bool
	focusIdx int
}

func newSubmitForm() submitForm {
	title := textinput.New()
	title.Placeholder = "Manuscript title"
	title.Prompt = "❯ "
	title.PromptStyle = InputPromptStyle
	title.CharLimit = 120
	title.Width = 50
	title.Focus()

	author := textinput.New()
	author.Placeholder = "Author name"
	author.Prompt = "❯ "
	author.PromptStyle = InputPromptStyle
	author.CharLimit = 80
	author.Width = 50

	content := textinput.New()
	content.Placeholder = "Abstract or opening paragraph"
	content.Prompt = "❯ "
	content.PromptStyle = InputPromptStyle
	content.CharLimit = 0
	content.Width = 50

	return submitForm{
		inputs: []textinput.Model{title, author, content},
	}
}

func (f *submitForm) focusNext() {
	f.setFocus((f.focusIdx + 1) % fieldCount)
}

func (f *submitForm) focusPrev() {
	f.setFocus((f.focusIdx + fieldCount - 1) % fieldCount)
}

func (f *submitForm) setFocus(idx int) {
	f.focusIdx = idx
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// onTextField reports whether keystrokes should flow into a text input.
func (f *submitForm) onTextField() bool {
	return f.focusIdx < len(f.inputs)
}

func (f *submitForm) toggleAIGC() {
	f.aigc = !f.aigc
}

// valid reports whether the form can be submitted.
func (f *submitForm) valid() bool {
	return strings.TrimSpace(f.inputs[fieldTitle].Value()) != "" &&
		strings.TrimSpace(f.inputs[fieldContent].Value()) != ""
}

func (f *submitForm) submission() model.Submission {
	return model.Submission{
		Content: f.inputs[fieldContent].Value(),
		Metadata: model.SubmissionMetadata{
			Title:        strings.TrimSpace(f.inputs[fieldTitle].Value()),
			Author:       strings.TrimSpace(f.inputs[fieldAuthor].Value()),
			AIGCDeclared: f.aigc,
		},
	}
}

func (f *submitForm) view(width int) string {
	labels := []string{"Title", "Author", "Content"}

	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("New Manuscript"))
	b.WriteString("\n\n")
	for i, input := range f.inputs {
		label := FormLabelStyle
		if f.focusIdx == i {
			label = FormFocusedLabelStyle
		}
		b.WriteString(label.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	check := "[ ]"
	if f.aigc {
		check = "[x]"
	}
	aigcLabel := FormLabelStyle
	if f.focusIdx == fieldAIGC {
		aigcLabel = FormFocusedLabelStyle
	}
	b.WriteString(aigcLabel.Render(check + " AI-generated content declared"))
	b.WriteString("\n\n")
	b.WriteString(DimStyle.Render("tab: next field · space: toggle · enter: submit · esc: cancel"))

	form := FormStyle.Render(b.String())
	if width > lipgloss.Width(form) {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, form)
	}
	return form
}
