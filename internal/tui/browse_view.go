package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/artgrid/internal/catalog"
	"github.com/rshade/artgrid/internal/cli/pagination"
)

// View renders the current view.
func (m *BrowseModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		if m.fetchErr != nil {
			return fmt.Sprintf("\n %s\n\n %s\n",
				CriticalStyle.Render("Error: "+m.fetchErr.Error()),
				SubtleStyle.Render("[r] Retry  [q] Quit"))
		}
		return RenderLoading(m.loading)
	case ViewStateDetail:
		a, ok := m.highlighted()
		if !ok {
			return ""
		}
		return RenderArtworkDetail(a, m.ledger.IsSelected(a.ID), m.width)
	case ViewStateList, ViewStatePanel:
		return m.renderBrowse()
	default:
		return ""
	}
}

func (m *BrowseModel) renderBrowse() string {
	sections := []string{
		m.renderStatusBar(),
		m.grid.View(),
		m.renderFooter(),
	}
	if line := m.renderMessageLine(); line != "" {
		sections = append(sections, line)
	}
	if m.state == ViewStatePanel && m.page != nil {
		sections = append(sections, m.panel.View(
			m.page.Total, m.ledger.EffectiveCount(), len(m.records), m.width-borderPadding))
	}
	sections = append(sections, SubtleStyle.Render(helpText))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *BrowseModel) renderStatusBar() string {
	count := m.ledger.EffectiveCount()
	rows := "rows"
	if count == 1 {
		rows = "row"
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("ARTWORKS"))
	b.WriteString("  ")
	selected := m.printer.Sprintf("Selected: %d %s", count, rows)
	if count > 0 {
		b.WriteString(ValueStyle.Render(selected))
	} else {
		b.WriteString(LabelStyle.Render(selected))
	}
	b.WriteString("  ")
	b.WriteString(OKStyle.Render("✓ Selections persist across pages"))
	return b.String()
}

func (m *BrowseModel) renderFooter() string {
	if m.page == nil {
		return ""
	}
	meta := pagination.NewMeta(
		pagination.Params{Page: m.page.Number, PageSize: m.page.Limit},
		m.page.Total,
		len(m.page.Records),
	)
	footer := m.printer.Sprintf("Showing %d to %d of %d records · Page %d of %d",
		meta.FirstRow, meta.LastRow, meta.TotalItems, meta.CurrentPage, meta.TotalPages)
	if m.sortField != pagination.DefaultSortField {
		footer += " · sorted by " + m.sortField
	}
	return LabelStyle.Render(footer)
}

func (m *BrowseModel) renderMessageLine() string {
	switch {
	case m.fetchErr != nil:
		return CriticalStyle.Render(fmt.Sprintf("Error: %v", m.fetchErr)) + " " +
			SubtleStyle.Render("(press r to retry)")
	case m.fetching:
		return m.loading.View()
	case m.info != "":
		return InfoStyle.Render(m.info)
	default:
		return ""
	}
}

// RenderLoading returns the string to display for a loading screen.
func RenderLoading(loading *LoadingState) string {
	if loading == nil {
		return "Loading..."
	}
	return fmt.Sprintf("\n %s\n\n", loading.View())
}

const minDetailWidth = 40

// RenderArtworkDetail renders one record with its selection state.
func RenderArtworkDetail(a catalog.Artwork, selected bool, width int) string {
	var content strings.Builder
	line := func(label, value string) {
		content.WriteString(LabelStyle.Render(fmt.Sprintf("%-17s", label)))
		content.WriteString(ValueStyle.Render(value))
		content.WriteString("\n")
	}

	content.WriteString(HeaderStyle.Render("ARTWORK DETAIL"))
	content.WriteString("\n\n")
	line("ID:", strconv.Itoa(a.ID))
	line("Title:", orDash(a.Title))
	line("Place of Origin:", orDash(a.PlaceOfOrigin))
	line("Dates:", formatDates(a))
	line("Selected:", checkbox(selected))

	content.WriteString("\n")
	content.WriteString(HeaderStyle.Render("ARTIST"))
	content.WriteString("\n")
	content.WriteString(orDash(a.ArtistDisplay))
	content.WriteString("\n\n")
	content.WriteString(HeaderStyle.Render("INSCRIPTIONS"))
	content.WriteString("\n")
	content.WriteString(orDash(a.Inscriptions))
	content.WriteString("\n\n")
	content.WriteString(SubtleStyle.Render("[space] Toggle  [esc] Back to list  [q] Quit"))

	return BoxStyle.Width(max(width-borderPadding, minDetailWidth)).Render(content.String())
}
