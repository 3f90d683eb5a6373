package views

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/waymark-dev/waymark/internal/roadmap"
	"github.com/waymark-dev/waymark/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// SubmitCommentMsg is sent when the user submits a new comment or reply.
type SubmitCommentMsg struct {
	Content  string
	ParentID *int64
}

// EditCommentMsg is sent when the user submits an edit to their comment.
type EditCommentMsg struct {
	ID      int64
	Content string
}

// DeleteCommentMsg is sent when the user deletes their comment.
type DeleteCommentMsg struct {
	ID int64
}

// UpvoteDetailMsg is sent when the user toggles the item's upvote.
type UpvoteDetailMsg struct{}

// BackMsg is sent when the user leaves the detail screen.
type BackMsg struct{}

// ============================================================================
// DetailModel
// ============================================================================

type detailMode int

const (
	modeViewing detailMode = iota
	modeComposing
	modeEditing
)

// commentRow is one line of the flattened comment tree.
type commentRow struct {
	comment roadmap.Comment
	depth   int
}

// DetailModel is the view model for a single roadmap item and its
// comment thread.
type DetailModel struct {
	item   *roadmap.Item
	rows   []commentRow
	cursor int

	mode     detailMode
	composer textarea.Model
	replyTo  *int64 // parent comment id while composing a reply
	editID   int64  // comment id while editing

	busy bool

	// Username of the signed-in user, empty for guests.
	Username string

	// Notice is a blocking message, e.g. a failed mutation. Any key
	// dismisses it before normal handling resumes.
	Notice string

	// Err holds the last fetch failure, shown inline.
	Err error

	width  int
	height int
}

// NewDetailModel creates a new DetailModel for an item that is still
// loading.
func NewDetailModel(width, height int) DetailModel {
	ta := textarea.New()
	ta.Placeholder = "Write a comment..."
	ta.CharLimit = roadmap.MaxCommentLength
	ta.SetWidth(60)
	ta.SetHeight(4)

	return DetailModel{
		composer: ta,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m DetailModel) Init() tea.Cmd {
	return nil
}

// SetItem replaces the displayed item.
func (m *DetailModel) SetItem(item roadmap.Item) {
	m.item = &item
}

// SetForest replaces the comment tree and re-flattens it for display.
func (m *DetailModel) SetForest(forest []*roadmap.CommentNode) {
	m.rows = m.rows[:0]
	for _, node := range forest {
		m.flatten(node, 0)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = 0
	}
	m.busy = false
}

func (m *DetailModel) flatten(node *roadmap.CommentNode, depth int) {
	m.rows = append(m.rows, commentRow{comment: node.Comment, depth: depth})
	for _, child := range node.Children {
		m.flatten(child, depth+1)
	}
}

// Update handles messages for the detail view.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Notice != "" {
			m.Notice = ""
			return m, nil
		}
		if m.busy {
			return m, nil
		}
		if m.mode != modeViewing {
			return m.updateComposing(msg)
		}
		return m.updateViewing(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// updateViewing handles keys while reading the thread.
func (m DetailModel) updateViewing(msg tea.KeyMsg) (DetailModel, tea.Cmd) {
	switch msg.String() {
	case tui.KeyEsc:
		return m, func() tea.Msg { return BackMsg{} }

	case tui.KeyUp, "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case tui.KeyDown, "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "u":
		return m, func() tea.Msg { return UpvoteDetailMsg{} }

	case "n":
		if m.Username == "" {
			m.Notice = "Log in to join the discussion."
			return m, nil
		}
		return m.startCompose(nil, ""), nil

	case "r":
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		if m.Username == "" {
			m.Notice = "Log in to join the discussion."
			return m, nil
		}
		if !row.comment.CanReply {
			m.Notice = "This thread is too deep to reply to."
			return m, nil
		}
		id := row.comment.ID
		return m.startCompose(&id, ""), nil

	case "e":
		row, ok := m.selectedRow()
		if !ok || !row.comment.CanEdit {
			return m, nil
		}
		edited := m.startCompose(nil, row.comment.Content)
		edited.mode = modeEditing
		edited.editID = row.comment.ID
		return edited, nil

	case "d":
		row, ok := m.selectedRow()
		if !ok || !row.comment.CanEdit {
			return m, nil
		}
		m.busy = true
		id := row.comment.ID
		return m, func() tea.Msg { return DeleteCommentMsg{ID: id} }
	}

	return m, nil
}

// startCompose opens the composer with optional initial content.
func (m DetailModel) startCompose(parentID *int64, content string) DetailModel {
	m.mode = modeComposing
	m.replyTo = parentID
	m.editID = 0
	m.composer.SetValue(content)
	m.composer.Focus()
	return m
}

// updateComposing handles keys while the composer is open.
func (m DetailModel) updateComposing(msg tea.KeyMsg) (DetailModel, tea.Cmd) {
	switch msg.String() {
	case tui.KeyEsc:
		m.mode = modeViewing
		m.replyTo = nil
		m.editID = 0
		m.composer.Reset()
		m.composer.Blur()
		return m, nil

	case "ctrl+s":
		content := strings.TrimSpace(m.composer.Value())
		if err := roadmap.ValidateContent(content); err != nil {
			m.Notice = err.Error()
			return m, nil
		}
		m.busy = true
		if m.mode == modeEditing {
			id := m.editID
			return m, func() tea.Msg { return EditCommentMsg{ID: id, Content: content} }
		}
		parentID := m.replyTo
		return m, func() tea.Msg { return SubmitCommentMsg{Content: content, ParentID: parentID} }
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

// CloseComposer resets the composer after a successful mutation.
func (m *DetailModel) CloseComposer() {
	m.mode = modeViewing
	m.replyTo = nil
	m.editID = 0
	m.composer.Reset()
	m.composer.Blur()
	m.busy = false
}

// Unblock clears the busy flag after a failed mutation so input resumes.
func (m *DetailModel) Unblock() {
	m.busy = false
}

func (m DetailModel) selectedRow() (commentRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return commentRow{}, false
	}
	return m.rows[m.cursor], true
}

// View renders the detail view.
func (m DetailModel) View() string {
	var b strings.Builder

	if m.item == nil {
		if m.Err != nil {
			b.WriteString(tui.ErrorStyle.Render("Load failed: " + m.Err.Error()))
		} else {
			b.WriteString(tui.DimStyle.Render("Loading item..."))
		}
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("Esc: Back"))
		return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	}

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.item.Description != "" {
		b.WriteString(m.item.Description)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(tui.TitleStyle.Render(fmt.Sprintf("Comments (%d)", len(m.rows))))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(tui.DimStyle.Render("No comments yet."))
		b.WriteString("\n")
	}
	for i, row := range m.rows {
		b.WriteString(m.renderComment(row, i == m.cursor))
	}

	if m.mode != modeViewing {
		b.WriteString("\n")
		b.WriteString(m.renderComposer())
	}

	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(tui.ErrorStyle.Render("Fetch failed: " + m.Err.Error()))
		b.WriteString("\n")
	}
	if m.Notice != "" {
		b.WriteString("\n")
		b.WriteString(tui.WarningStyle.Render(m.Notice + " (press any key)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render(m.footer()))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m DetailModel) renderHeader() string {
	vote := fmt.Sprintf("%d▲", m.item.UpvoteCount)
	if m.item.UserUpvoted {
		vote = tui.UpvotedStyle.Render(vote)
	} else {
		vote = tui.DimStyle.Render(vote)
	}

	return fmt.Sprintf("%s  %s  %s %s",
		tui.TitleStyle.Render(m.item.Title),
		vote,
		tui.StatusBadge(m.item.Status),
		tui.CategoryBadge(m.item.Category),
	)
}

func (m DetailModel) renderComment(row commentRow, selected bool) string {
	indent := strings.Repeat("  ", row.depth)

	marker := "  "
	if selected {
		marker = tui.SelectedStyle.Render("> ")
	}

	author := row.comment.User.Username
	meta := tui.DimStyle.Render("@" + author)
	if row.comment.Edited() {
		meta += tui.DimStyle.Render(" (edited)")
	}
	if row.comment.CanEdit {
		meta += tui.DimStyle.Render(" [e]dit [d]elete")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s%s%s\n", indent, marker, meta))
	for _, line := range strings.Split(row.comment.Content, "\n") {
		b.WriteString(indent + "  " + line + "\n")
	}
	return b.String()
}

func (m DetailModel) renderComposer() string {
	var b strings.Builder

	switch {
	case m.mode == modeEditing:
		b.WriteString(tui.TitleStyle.Render("Edit comment"))
	case m.replyTo != nil:
		b.WriteString(tui.TitleStyle.Render("Reply"))
	default:
		b.WriteString(tui.TitleStyle.Render("New comment"))
	}
	b.WriteString("\n")
	b.WriteString(m.composer.View())
	b.WriteString("\n")

	count := utf8.RuneCountInString(m.composer.Value())
	counter := fmt.Sprintf("%d/%d", count, roadmap.MaxCommentLength)
	if count > roadmap.MaxCommentLength {
		counter = tui.ErrorStyle.Render(counter)
	} else {
		counter = tui.DimStyle.Render(counter)
	}
	b.WriteString(counter)
	b.WriteString(tui.DimStyle.Render("   Ctrl+S: Submit   Esc: Cancel"))

	return b.String()
}

func (m DetailModel) footer() string {
	if m.busy {
		return "Working..."
	}
	hints := "u: Vote   n: Comment   r: Reply"
	if m.Username != "" {
		hints += "   e: Edit   d: Delete"
	}
	return hints + "   Esc: Back   Ctrl+C: Exit"
}
