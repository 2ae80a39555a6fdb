package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	panelInputCharLimit = 9
	panelInputWidth     = 16
	panelWidth          = 60

	msgInvalidCount = "Please enter a valid positive number"
)

// SelectionPanel collects the row count for a "select first N" request.
type SelectionPanel struct {
	input textinput.Model
	err   string
}

// NewSelectionPanel creates a closed panel.
func NewSelectionPanel() *SelectionPanel {
	ti := textinput.New()
	ti.Placeholder = "Enter number"
	ti.CharLimit = panelInputCharLimit
	ti.Width = panelInputWidth
	ti.Prompt = "> "
	return &SelectionPanel{input: ti}
}

// Open clears the previous input and focuses the field.
func (p *SelectionPanel) Open() tea.Cmd {
	p.input.SetValue("")
	p.err = ""
	p.input.Focus()
	return textinput.Blink
}

// Close blurs the field.
func (p *SelectionPanel) Close() {
	p.input.Blur()
	p.err = ""
}

// Update forwards input events to the text field. Editing clears the error.
func (p *SelectionPanel) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok {
		p.err = ""
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// SetValue replaces the field content.
func (p *SelectionPanel) SetValue(v string) {
	p.input.SetValue(v)
}

// SetError shows msg under the field.
func (p *SelectionPanel) SetError(msg string) {
	p.err = msg
}

// Err returns the current validation message, if any.
func (p *SelectionPanel) Err() string {
	return p.err
}

// Parse validates the field against total. On failure it records the
// validation message and returns false.
func (p *SelectionPanel) Parse(total int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(p.input.Value()))
	if err != nil || n <= 0 {
		p.err = msgInvalidCount
		return 0, false
	}
	if n > total {
		p.err = fmt.Sprintf("Cannot select more than %d rows", total)
		return 0, false
	}
	p.err = ""
	return n, true
}

// View renders the panel. selected is the current effective count and
// onPage the number of records loaded.
func (p *SelectionPanel) View(total, selected, onPage, width int) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Custom Row Selection"))
	b.WriteString("\n\n")

	if selected >= total {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("Maximum selection (%d) reached", total)))
		b.WriteString("\n\n")
		b.WriteString(SubtleStyle.Render("[esc] Close"))
		return BoxStyle.Width(min(width, panelWidth)).Render(b.String())
	}

	b.WriteString(LabelStyle.Render("Number of rows to select:"))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n")
	if p.err != "" {
		b.WriteString(CriticalStyle.Render(p.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d\n", LabelStyle.Render("• Total records:"), total)
	fmt.Fprintf(&b, "%s %d\n", LabelStyle.Render("• Currently selected:"), selected)
	fmt.Fprintf(&b, "%s %d\n", LabelStyle.Render("• Available on this page:"), onPage)
	b.WriteString(WarningStyle.Render("Note: Can only select from current page. Navigate to select from other pages."))
	b.WriteString("\n\n")
	b.WriteString(SubtleStyle.Render("[enter] Apply  [esc] Cancel"))

	return BoxStyle.Width(min(width, panelWidth)).Render(b.String())
}
