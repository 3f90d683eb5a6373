package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/waymark-dev/waymark/internal/roadmap"
	"github.com/waymark-dev/waymark/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// SearchChangedMsg is sent on every keystroke in the search field. The
// value is a draft; the app debounces it before refetching.
type SearchChangedMsg struct {
	Value string
}

// OpenItemMsg is sent when the user opens a roadmap item's detail screen.
type OpenItemMsg struct {
	ID int64
}

// UpvoteItemMsg is sent when the user toggles an upvote from the list.
type UpvoteItemMsg struct {
	ID int64
}

// CycleStatusMsg is sent when the user advances the status filter.
type CycleStatusMsg struct{}

// CycleCategoryMsg is sent when the user advances the category filter.
type CycleCategoryMsg struct{}

// CycleOrderingMsg is sent when the user advances the sort order.
type CycleOrderingMsg struct{}

// LogoutRequestMsg is sent when the user asks to end the session.
type LogoutRequestMsg struct{}

// ============================================================================
// BrowseModel
// ============================================================================

// BrowseModel is the view model for the roadmap list screen.
type BrowseModel struct {
	searchInput textinput.Model
	searching   bool
	cursor      int

	items    []roadmap.Item
	filter   roadmap.Filter
	loading  bool
	pageSize int

	// Username of the signed-in user, empty for guests.
	Username string

	// Notice is a transient hint line, e.g. "log in to vote".
	Notice string

	// Err holds the last fetch failure, shown inline with the stale list.
	Err error

	width  int
	height int
}

// NewBrowseModel creates a new BrowseModel.
func NewBrowseModel(width, height int) BrowseModel {
	si := textinput.New()
	si.Placeholder = "search roadmap..."
	si.CharLimit = 200
	si.Width = 40

	return BrowseModel{
		searchInput: si,
		loading:     true,
		pageSize:    20,
		width:       width,
		height:      height,
	}
}

// SetPageSize bounds the number of rows rendered at once.
func (m *BrowseModel) SetPageSize(n int) {
	if n > 0 {
		m.pageSize = n
	}
}

// Init returns the initial command for the browse view.
func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// SetItems replaces the displayed list and clamps the cursor.
func (m *BrowseModel) SetItems(items []roadmap.Item) {
	m.items = items
	m.loading = false
	if m.cursor >= len(items) {
		m.cursor = 0
	}
}

// SetFilter updates the filter summary shown above the list.
func (m *BrowseModel) SetFilter(filter roadmap.Filter) {
	m.filter = filter
}

// SetLoading marks the list as waiting on a fetch.
func (m *BrowseModel) SetLoading(loading bool) {
	m.loading = loading
}

// Update handles messages for the browse view.
func (m BrowseModel) Update(msg tea.Msg) (BrowseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearching(msg)
		}
		return m.updateBrowsing(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// updateSearching handles keys while the search field has focus.
func (m BrowseModel) updateSearching(msg tea.KeyMsg) (BrowseModel, tea.Cmd) {
	switch msg.String() {
	case tui.KeyEsc, tui.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	after := m.searchInput.Value()
	if after == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, func() tea.Msg {
		return SearchChangedMsg{Value: after}
	})
}

// updateBrowsing handles keys while the list has focus.
func (m BrowseModel) updateBrowsing(msg tea.KeyMsg) (BrowseModel, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.searching = true
		m.Notice = ""
		return m, m.searchInput.Focus()

	case tui.KeyUp, "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case tui.KeyDown, "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case tui.KeyEnter:
		if item, ok := m.selected(); ok {
			return m, func() tea.Msg { return OpenItemMsg{ID: item.ID} }
		}

	case "u":
		if item, ok := m.selected(); ok {
			m.Notice = ""
			return m, func() tea.Msg { return UpvoteItemMsg{ID: item.ID} }
		}

	case "s":
		return m, func() tea.Msg { return CycleStatusMsg{} }

	case "c":
		return m, func() tea.Msg { return CycleCategoryMsg{} }

	case "o":
		return m, func() tea.Msg { return CycleOrderingMsg{} }

	case "L":
		if m.Username != "" {
			return m, func() tea.Msg { return LogoutRequestMsg{} }
		}
	}

	return m, nil
}

func (m BrowseModel) selected() (roadmap.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return roadmap.Item{}, false
	}
	return m.items[m.cursor], true
}

// View renders the browse view.
func (m BrowseModel) View() string {
	var b strings.Builder

	// Header line with identity
	header := tui.TitleStyle.Render("Waymark Roadmap")
	if m.Username != "" {
		header += tui.DimStyle.Render("  @" + m.Username)
	} else {
		header += tui.DimStyle.Render("  guest")
	}
	b.WriteString(header)
	b.WriteString("\n")

	// Filter bar
	b.WriteString(tui.FilterBarStyle.Render(m.filterSummary()))
	b.WriteString("\n")

	// Search field
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(tui.DimStyle.Render("Loading roadmap..."))
		b.WriteString("\n")
	case len(m.items) == 0:
		b.WriteString(tui.DimStyle.Render("No roadmap items match the current filters."))
		b.WriteString("\n")
	default:
		start, end := m.window()
		if start > 0 {
			b.WriteString(tui.DimStyle.Render(fmt.Sprintf("  ... %d above", start)))
			b.WriteString("\n")
		}
		for i := start; i < end; i++ {
			b.WriteString(m.renderRow(m.items[i], i == m.cursor))
			b.WriteString("\n")
		}
		if end < len(m.items) {
			b.WriteString(tui.DimStyle.Render(fmt.Sprintf("  ... %d below", len(m.items)-end)))
			b.WriteString("\n")
		}
	}

	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(tui.ErrorStyle.Render("Fetch failed: " + m.Err.Error()))
		b.WriteString("\n")
	}
	if m.Notice != "" {
		b.WriteString("\n")
		b.WriteString(tui.WarningStyle.Render(m.Notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render(m.footer()))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// window returns the half-open row range to render, keeping the cursor
// visible within at most pageSize rows.
func (m BrowseModel) window() (int, int) {
	if len(m.items) <= m.pageSize {
		return 0, len(m.items)
	}
	start := m.cursor - m.pageSize/2
	if start < 0 {
		start = 0
	}
	end := start + m.pageSize
	if end > len(m.items) {
		end = len(m.items)
		start = end - m.pageSize
	}
	return start, end
}

func (m BrowseModel) filterSummary() string {
	parts := []string{"Sort: " + roadmap.OrderingLabel(m.filter.Ordering)}
	if m.filter.Status != "" {
		parts = append(parts, "Status: "+roadmap.FormatLabel(string(m.filter.Status)))
	} else {
		parts = append(parts, "Status: Any")
	}
	if m.filter.Category != "" {
		parts = append(parts, "Category: "+roadmap.FormatLabel(string(m.filter.Category)))
	} else {
		parts = append(parts, "Category: Any")
	}
	if m.filter.Search != "" {
		parts = append(parts, fmt.Sprintf("Search: %q", m.filter.Search))
	}
	return strings.Join(parts, "   ")
}

func (m BrowseModel) renderRow(item roadmap.Item, selected bool) string {
	vote := fmt.Sprintf("%3d▲", item.UpvoteCount)
	if item.UserUpvoted {
		vote = tui.UpvotedStyle.Render(vote)
	} else {
		vote = tui.DimStyle.Render(vote)
	}

	title := item.Title
	if selected {
		title = tui.SelectedStyle.Render("> " + title)
	} else {
		title = "  " + title
	}

	meta := fmt.Sprintf("%s  %s  %s",
		tui.StatusBadge(item.Status),
		tui.CategoryBadge(item.Category),
		tui.DimStyle.Render(fmt.Sprintf("%d comments", item.CommentsCount)),
	)

	return fmt.Sprintf("%s %s  %s", vote, title, meta)
}

func (m BrowseModel) footer() string {
	hints := "/: Search   s/c/o: Filters   u: Vote   Enter: Open"
	if m.Username != "" {
		hints += "   L: Log out"
	}
	return hints + "   Ctrl+C: Exit"
}
