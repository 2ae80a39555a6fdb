package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/artgrid/internal/catalog"
	"github.com/rshade/artgrid/internal/cli/pagination"
	"github.com/rshade/artgrid/internal/selection"
)

const (
	// Table column widths.
	colWidthCheck        = 5
	colWidthID           = 8
	colWidthTitle        = 32
	colWidthOrigin       = 16
	colWidthArtist       = 30
	colWidthInscriptions = 20
	colWidthDates        = 11

	// browseChromeHeight is the number of lines drawn around the grid.
	browseChromeHeight = 10

	emptyCell = "—"
)

// pageLoadedMsg carries a fetch result back to the update loop.
type pageLoadedMsg struct {
	ticket catalog.Ticket
	page   *catalog.Page
	err    error
}

// BrowseOption configures a BrowseModel.
type BrowseOption func(*BrowseModel)

// WithStartPage sets the first page to load.
func WithStartPage(page int) BrowseOption {
	return func(m *BrowseModel) {
		if page > 0 {
			m.startPage = page
		}
	}
}

// WithLedger reuses an existing ledger instead of starting empty.
func WithLedger(l *selection.Ledger) BrowseOption {
	return func(m *BrowseModel) {
		m.ledger = l
	}
}

// WithBrowseLogger sets the logger for navigation events.
func WithBrowseLogger(logger zerolog.Logger) BrowseOption {
	return func(m *BrowseModel) {
		m.logger = logger
	}
}

// WithOnExit registers fn to receive the effective selection when the user quits.
func WithOnExit(fn func(ids []int)) BrowseOption {
	return func(m *BrowseModel) {
		m.onExit = fn
	}
}

// BrowseModel is the Bubble Tea model for the paginated artwork grid with
// cross-page selection.
type BrowseModel struct {
	ctx    context.Context
	src    catalog.Source
	nav    *catalog.Navigator
	ledger *selection.Ledger
	logger zerolog.Logger
	onExit func([]int)

	// View state
	state     ViewState
	page      *catalog.Page
	records   []catalog.Artwork // page records in display order
	startPage int
	fetching  bool
	fetchErr  error
	info      string

	// Interactive components
	grid    table.Model
	panel   *SelectionPanel
	loading *LoadingState

	sorter    *pagination.ArtworkSorter
	sortField string
	sortOrder string

	width   int
	height  int
	printer *message.Printer
}

// NewBrowseModel creates a browser over src. Call Init (or run it in a
// tea.Program) to load the first page.
func NewBrowseModel(ctx context.Context, src catalog.Source, opts ...BrowseOption) *BrowseModel {
	m := &BrowseModel{
		ctx:       ctx,
		src:       src,
		nav:       &catalog.Navigator{},
		logger:    zerolog.Nop(),
		state:     ViewStateLoading,
		startPage: pagination.DefaultPage,
		panel:     NewSelectionPanel(),
		loading:   NewLoadingState(),
		sorter:    pagination.NewArtworkSorter(),
		sortOrder: pagination.SortOrderAsc,
		width:     defaultWidth,
		height:    defaultHeight,
		printer:   message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.ledger == nil {
		m.ledger = selection.NewLedger(selection.WithLogger(m.logger))
	}
	m.logger = m.logger.With().Str("component", "tui").Logger()
	m.grid = newArtworkTable(m.gridHeight())
	m.refreshRows()
	return m
}

func newArtworkTable(height int) table.Model {
	t := table.New(
		table.WithColumns(artworkColumns(selection.HeaderNone)),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

func artworkColumns(h selection.HeaderState) []table.Column {
	return []table.Column{
		{Title: headerCheckbox(h), Width: colWidthCheck},
		{Title: "ID", Width: colWidthID},
		{Title: "Title", Width: colWidthTitle},
		{Title: "Place of Origin", Width: colWidthOrigin},
		{Title: "Artist", Width: colWidthArtist},
		{Title: "Inscriptions", Width: colWidthInscriptions},
		{Title: "Dates", Width: colWidthDates},
	}
}

// Init loads the start page.
func (m *BrowseModel) Init() tea.Cmd {
	return m.requestPage(m.startPage, false)
}

// Update handles messages and updates the model state.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.grid.SetHeight(m.gridHeight())
		return m, nil
	case pageLoadedMsg:
		m.handlePageLoaded(msg)
		return m, nil
	case spinner.TickMsg:
		if m.fetching {
			return m, m.loading.Update(msg)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == ViewStatePanel {
		return m, m.panel.Update(msg)
	}
	return m, nil
}

func (m *BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		return m.quit()
	}

	switch m.state {
	case ViewStatePanel:
		return m.handlePanelKey(msg)
	case ViewStateDetail:
		return m.handleDetailKey(msg)
	case ViewStateLoading:
		return m.handleLoadingKey(msg)
	case ViewStateList:
		return m.handleListKey(msg)
	default:
		return m, nil
	}
}

func (m *BrowseModel) handleLoadingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		return m.quit()
	case keyR:
		if m.fetchErr != nil {
			return m, m.requestPage(m.targetPage(), true)
		}
	}
	return m, nil
}

func (m *BrowseModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		return m.quit()
	case keySpace:
		if a, ok := m.highlighted(); ok {
			m.ledger.ToggleRow(a.ID)
			m.info = ""
			m.refreshRows()
		}
		return m, nil
	case keyA:
		m.ledger.ToggleAllOnPage(m.visibleIDs())
		m.info = ""
		m.refreshRows()
		return m, nil
	case keyRight, keyL, keyN:
		return m, m.goTo(m.navBase() + 1)
	case keyLeft, keyH, keyP:
		return m, m.goTo(m.navBase() - 1)
	case keyG:
		return m, m.goTo(1)
	case keyShiftG:
		if m.page != nil {
			return m, m.goTo(m.page.TotalPages)
		}
		return m, nil
	case keyC:
		if m.page == nil {
			return m, nil
		}
		m.state = ViewStatePanel
		return m, m.panel.Open()
	case keyR:
		return m, m.requestPage(m.targetPage(), true)
	case keyX:
		m.ledger.ResetSelections()
		m.info = "Selection cleared"
		m.refreshRows()
		return m, nil
	case keyS:
		m.cycleSort()
		return m, nil
	case keyEnter:
		if _, ok := m.highlighted(); ok {
			m.state = ViewStateDetail
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

func (m *BrowseModel) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		m.panel.Close()
		m.state = ViewStateList
		return m, nil
	case keyEnter:
		m.applyCustomSelection()
		return m, nil
	}
	return m, m.panel.Update(msg)
}

func (m *BrowseModel) applyCustomSelection() {
	total := m.page.Total
	if m.ledger.EffectiveCount() >= total {
		return
	}
	n, ok := m.panel.Parse(total)
	if !ok {
		return
	}

	res, err := m.ledger.SelectFirstN(n, m.visibleIDs(), total)
	if err != nil {
		m.panel.SetError(err.Error())
		return
	}

	m.info = res.String()
	m.panel.Close()
	m.state = ViewStateList
	m.refreshRows()
}

func (m *BrowseModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		return m.quit()
	case keyEsc, keyEnter:
		m.state = ViewStateList
	case keySpace:
		if a, ok := m.highlighted(); ok {
			m.ledger.ToggleRow(a.ID)
			m.refreshRows()
		}
	}
	return m, nil
}

func (m *BrowseModel) quit() (tea.Model, tea.Cmd) {
	m.state = ViewStateQuitting
	if m.onExit != nil {
		m.onExit(m.ledger.EffectiveIDs())
	}
	return m, tea.Quit
}

// targetPage is the most recently requested page, which may still be in flight.
func (m *BrowseModel) targetPage() int {
	if latest := m.nav.Latest(); latest.Page > 0 {
		return latest.Page
	}
	return m.startPage
}

// navBase is the page next and previous count from. After a failed fetch it
// is the page on screen, not the one that failed.
func (m *BrowseModel) navBase() int {
	if m.fetchErr != nil && m.page != nil {
		return m.page.Number
	}
	return m.targetPage()
}

func (m *BrowseModel) goTo(page int) tea.Cmd {
	if page < 1 || (page == m.targetPage() && m.fetchErr == nil) {
		return nil
	}
	if m.page != nil && m.page.TotalPages > 0 && page > m.page.TotalPages {
		return nil
	}
	return m.requestPage(page, false)
}

// requestPage issues a ticket and returns the command that fetches page.
func (m *BrowseModel) requestPage(page int, refresh bool) tea.Cmd {
	ticket := m.nav.Request(page)
	m.fetchErr = nil

	var tick tea.Cmd
	if !m.fetching {
		tick = m.loading.Init()
	}
	m.fetching = true
	m.loading.SetMessage(fmt.Sprintf("Loading page %d...", page))

	ctx, src := m.ctx, m.src
	fetch := func() tea.Msg {
		var p *catalog.Page
		var err error
		if refresh {
			p, err = catalog.Refresh(ctx, src, page)
		} else {
			p, err = src.FetchPage(ctx, page)
		}
		return pageLoadedMsg{ticket: ticket, page: p, err: err}
	}
	return tea.Batch(tick, fetch)
}

func (m *BrowseModel) handlePageLoaded(msg pageLoadedMsg) {
	if !m.nav.Current(msg.ticket) {
		m.logger.Debug().
			Int("page", msg.ticket.Page).
			Uint64("seq", msg.ticket.Seq).
			Msg("discarding stale page response")
		return
	}

	m.fetching = false
	if msg.err != nil {
		m.fetchErr = msg.err
		m.logger.Warn().Err(msg.err).Int("page", msg.ticket.Page).Msg("page fetch failed")
		return
	}

	m.page = msg.page
	m.records = m.sorter.Sort(msg.page.Records, m.sortField, m.sortOrder)
	m.grid.SetCursor(0)
	m.refreshRows()
	if m.state == ViewStateLoading {
		m.state = ViewStateList
	}
}

func (m *BrowseModel) cycleSort() {
	m.sortField = m.sorter.NextField(m.sortField)
	if m.page != nil {
		m.records = m.sorter.Sort(m.page.Records, m.sortField, m.sortOrder)
		m.refreshRows()
	}
	if m.sortField == pagination.DefaultSortField {
		m.info = "Page order"
		return
	}
	m.info = "Sorted by " + m.sortField
}

// refreshRows re-reads the ledger for every visible row and the header.
func (m *BrowseModel) refreshRows() {
	ids := m.visibleIDs()
	rows := make([]table.Row, len(m.records))
	for i, a := range m.records {
		rows[i] = artworkRow(a, m.ledger.IsSelected(a.ID))
	}
	m.grid.SetColumns(artworkColumns(m.ledger.HeaderState(ids)))
	m.grid.SetRows(rows)
}

func (m *BrowseModel) visibleIDs() []int {
	ids := make([]int, len(m.records))
	for i, a := range m.records {
		ids[i] = a.ID
	}
	return ids
}

func (m *BrowseModel) highlighted() (catalog.Artwork, bool) {
	i := m.grid.Cursor()
	if i < 0 || i >= len(m.records) {
		return catalog.Artwork{}, false
	}
	return m.records[i], true
}

func (m *BrowseModel) gridHeight() int {
	return max(m.height-browseChromeHeight, minHeight)
}

// State returns the current view state.
func (m *BrowseModel) State() ViewState {
	return m.state
}

// Page returns the page currently displayed, or nil before the first load.
func (m *BrowseModel) Page() *catalog.Page {
	return m.page
}

// Err returns the last fetch error for the current request, if any.
func (m *BrowseModel) Err() error {
	return m.fetchErr
}

// Ledger returns the selection ledger.
func (m *BrowseModel) Ledger() *selection.Ledger {
	return m.ledger
}

// Selection returns the effective selection in first-selected order.
func (m *BrowseModel) Selection() []int {
	return m.ledger.EffectiveIDs()
}

func artworkRow(a catalog.Artwork, selected bool) table.Row {
	return table.Row{
		checkbox(selected),
		strconv.Itoa(a.ID),
		oneLine(a.Title),
		oneLine(a.PlaceOfOrigin),
		oneLine(a.ArtistDisplay),
		orDash(oneLine(a.Inscriptions)),
		formatDates(a),
	}
}

func checkbox(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}

func headerCheckbox(h selection.HeaderState) string {
	switch h {
	case selection.HeaderAll:
		return "[x]"
	case selection.HeaderSome:
		return "[-]"
	default:
		return "[ ]"
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func orDash(s string) string {
	if s == "" {
		return emptyCell
	}
	return s
}

func formatDates(a catalog.Artwork) string {
	if a.DateStart == 0 && a.DateEnd == 0 {
		return emptyCell
	}
	return fmt.Sprintf("%d - %d", a.DateStart, a.DateEnd)
}
