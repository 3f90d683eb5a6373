// Package app provides the main TUI application that wires all views together.
package app

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/waymark-dev/waymark/internal/api"
	"github.com/waymark-dev/waymark/internal/auth"
	"github.com/waymark-dev/waymark/internal/log"
	"github.com/waymark-dev/waymark/internal/thread"
	"github.com/waymark-dev/waymark/internal/tui"
	"github.com/waymark-dev/waymark/internal/tui/commands"
	"github.com/waymark-dev/waymark/internal/tui/views"
)

// App is the main TUI application that wires all views together.
type App struct {
	model *tui.Model

	// View models
	landingView  views.LandingModel
	loginView    views.LoginModel
	registerView views.RegisterModel
	browseView   views.BrowseModel
	detailView   views.DetailModel
}

// New creates a new App around the given model.
func New(model *tui.Model) *App {
	browse := views.NewBrowseModel(model.Width, model.Height)
	browse.SetPageSize(model.Cfg.UI.PageSize)

	return &App{
		model:       model,
		landingView: views.NewLandingModel(model.Width, model.Height),
		browseView:  browse,
	}
}

// Init starts session hydration and the session watch loop.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.model.Spinner.Tick,
		commands.HydrateSessionCmd(a.model.Session),
		commands.WatchSessionCmd(a.model.SessionCh),
	)
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		// Only propagate to the currently active view
		var cmd tea.Cmd
		switch a.model.State {
		case tui.StateLanding:
			a.landingView, cmd = a.landingView.Update(msg)
		case tui.StateLogin:
			a.loginView, cmd = a.loginView.Update(msg)
		case tui.StateRegister:
			a.registerView, cmd = a.registerView.Update(msg)
		case tui.StateBrowse:
			a.browseView, cmd = a.browseView.Update(msg)
		case tui.StateDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		}
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			return a, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.model.Spinner, cmd = a.model.Spinner.Update(msg)
		return a, cmd

	case tui.SessionResolvedMsg:
		return a.handleSessionResolved(msg)

	case tui.SessionChangedMsg:
		return a.handleSessionChanged(msg)
	}

	// Route messages based on current state
	switch a.model.State {
	case tui.StateLanding:
		return a.updateLanding(msg)

	case tui.StateLogin:
		return a.updateLogin(msg)

	case tui.StateRegister:
		return a.updateRegister(msg)

	case tui.StateBrowse:
		return a.updateBrowse(msg)

	case tui.StateDetail:
		return a.updateDetail(msg)
	}

	return a, nil
}

// View renders the current application state.
func (a *App) View() string {
	switch a.model.State {
	case tui.StateResolving:
		return a.model.Spinner.View() + " Restoring session..."

	case tui.StateLanding:
		return a.landingView.View()

	case tui.StateLogin:
		return a.loginView.View()

	case tui.StateRegister:
		return a.registerView.View()

	case tui.StateBrowse:
		return a.browseView.View()

	case tui.StateDetail:
		return a.detailView.View()

	default:
		return "Unknown state"
	}
}

// ============================================================================
// Session Handling
// ============================================================================

// handleSessionResolved settles the startup Unresolved state: straight to
// the board for a restored session, to the landing screen otherwise.
func (a *App) handleSessionResolved(msg tui.SessionResolvedMsg) (tea.Model, tea.Cmd) {
	a.model.LogEvent(log.LogEvent{
		Event:    log.EventSessionResolved,
		State:    msg.State.String(),
		Username: a.username(),
	})

	if msg.State == auth.StateAuthenticated {
		return a, a.enterBrowse()
	}
	a.model.State = tui.StateLanding
	return a, a.landingView.Init()
}

// handleSessionChanged reacts to transitions raised outside the update
// loop, primarily the global 401 hook. The watch command is always
// re-armed so later transitions keep arriving.
func (a *App) handleSessionChanged(msg tui.SessionChangedMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{commands.WatchSessionCmd(a.model.SessionCh)}

	if msg.Reason == auth.ReasonUnauthorized {
		a.model.Thread = nil
		a.loginView = views.NewLoginModel(a.model.Width, a.model.Height)
		a.loginView.Notice = "Session expired. Please log in again."
		a.model.State = tui.StateLogin
		cmds = append(cmds, a.loginView.Init())
	}

	return a, tea.Batch(cmds...)
}

// ============================================================================
// State Update Handlers
// ============================================================================

func (a *App) updateLanding(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.landingView, cmd = a.landingView.Update(msg)

	switch msg.(type) {
	case views.ChooseLoginMsg:
		a.loginView = views.NewLoginModel(a.model.Width, a.model.Height)
		a.model.State = tui.StateLogin
		return a, a.loginView.Init()

	case views.ChooseRegisterMsg:
		a.registerView = views.NewRegisterModel(a.model.Width, a.model.Height)
		a.model.State = tui.StateRegister
		return a, a.registerView.Init()

	case views.ChooseBrowseMsg:
		return a, a.enterBrowse()
	}

	return a, cmd
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.loginView, cmd = a.loginView.Update(msg)

	switch msg := msg.(type) {
	case views.SubmitLoginMsg:
		return a, commands.LoginCmd(a.model.Session, msg.Username, msg.Password)

	case views.CancelAuthMsg:
		a.model.State = tui.StateLanding
		return a, a.landingView.Init()

	case tui.LoginResultMsg:
		if msg.Err != nil {
			a.loginView.Err = msg.Err
			a.loginView.SetBusy(false)
			return a, nil
		}
		a.model.LogEvent(log.LogEvent{Event: log.EventLogin, Username: a.username()})
		return a, a.enterBrowse()
	}

	return a, cmd
}

func (a *App) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.registerView, cmd = a.registerView.Update(msg)

	switch msg := msg.(type) {
	case views.SubmitRegisterMsg:
		return a, commands.RegisterCmd(a.model.Session, msg.Registration)

	case views.CancelAuthMsg:
		a.model.State = tui.StateLanding
		return a, a.landingView.Init()

	case tui.RegisterResultMsg:
		if msg.Err != nil {
			a.registerView.Err = msg.Err
			a.registerView.SetBusy(false)
			return a, nil
		}
		a.model.LogEvent(log.LogEvent{Event: log.EventLogin, Username: a.username()})
		return a, a.enterBrowse()
	}

	return a, cmd
}

func (a *App) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.browseView, cmd = a.browseView.Update(msg)

	switch msg := msg.(type) {
	case views.SearchChangedMsg:
		seq := a.model.Board.SetSearchInput(msg.Value)
		return a, tea.Batch(cmd, commands.DebounceSearchCmd(seq))

	case tui.SearchDebounceMsg:
		if a.model.Board.DebounceElapsed(msg.Seq) {
			return a, a.refetchBoard()
		}
		return a, nil

	case views.CycleStatusMsg:
		a.model.Board.CycleStatus()
		return a, a.refetchBoard()

	case views.CycleCategoryMsg:
		a.model.Board.CycleCategory()
		return a, a.refetchBoard()

	case views.CycleOrderingMsg:
		a.model.Board.CycleOrdering()
		return a, a.refetchBoard()

	case views.UpvoteItemMsg:
		if err := a.model.Board.BeginUpvote(msg.ID); err != nil {
			a.browseView.Notice = "Log in to vote on roadmap items."
			return a, nil
		}
		a.browseView.SetItems(a.model.Board.Items())
		return a, commands.ToggleUpvoteCmd(a.model.Client, msg.ID)

	case views.OpenItemMsg:
		return a, a.enterDetail(msg.ID)

	case views.LogoutRequestMsg:
		return a, commands.LogoutCmd(a.model.Session)

	case tui.LogoutDoneMsg:
		a.model.LogEvent(log.LogEvent{Event: log.EventLogout})
		a.browseView.Username = ""
		a.model.State = tui.StateLanding
		return a, a.landingView.Init()

	case tui.ItemsLoadedMsg:
		if msg.Err != nil {
			a.browseView.SetLoading(false)
			a.browseView.Err = msg.Err
			a.logFailure(msg.Err)
			return a, nil
		}
		a.model.Board.Apply(msg.Items)
		a.browseView.Err = nil
		a.browseView.SetItems(a.model.Board.Items())
		a.model.LogEvent(log.LogEvent{
			Event:    log.EventItemsFetched,
			Items:    len(msg.Items),
			Ordering: a.model.Board.Filter().Ordering,
			Search:   a.model.Board.Filter().Search,
		})
		return a, nil

	case tui.UpvoteResultMsg:
		if msg.Err != nil {
			// The optimistic flip stays until the next refetch.
			a.browseView.Notice = "Vote could not be saved."
			a.logFailure(msg.Err)
			return a, nil
		}
		a.model.Board.FinishUpvote(msg.ItemID, msg.Result)
		a.browseView.SetItems(a.model.Board.Items())
		a.model.LogEvent(log.LogEvent{
			Event:   log.EventUpvoteToggled,
			ItemID:  msg.ItemID,
			Upvoted: msg.Result.Upvoted,
		})
		return a, nil
	}

	return a, cmd
}

func (a *App) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.detailView, cmd = a.detailView.Update(msg)

	switch msg := msg.(type) {
	case views.BackMsg:
		a.model.Thread = nil
		// Refetch the list so upvotes and comment counts stay current.
		return a, a.enterBrowse()

	case views.UpvoteDetailMsg:
		if err := a.model.Thread.BeginUpvote(); err != nil {
			a.detailView.Notice = "Log in to vote on roadmap items."
			return a, nil
		}
		if item := a.model.Thread.Item(); item != nil {
			a.detailView.SetItem(*item)
		}
		return a, commands.ToggleUpvoteCmd(a.model.Client, a.model.Thread.ItemID())

	case views.SubmitCommentMsg:
		return a, commands.SubmitCommentCmd(a.model.Thread, msg.Content, msg.ParentID)

	case views.EditCommentMsg:
		return a, commands.EditCommentCmd(a.model.Thread, msg.ID, msg.Content)

	case views.DeleteCommentMsg:
		return a, commands.RemoveCommentCmd(a.model.Thread, msg.ID)

	case tui.ItemLoadedMsg:
		if msg.Err != nil {
			a.detailView.Err = msg.Err
			a.logFailure(msg.Err)
			return a, nil
		}
		a.model.Thread.ApplyItem(msg.Item)
		a.detailView.Err = nil
		a.detailView.SetItem(msg.Item)
		return a, nil

	case tui.CommentsLoadedMsg:
		if msg.Err != nil {
			a.detailView.Err = msg.Err
			a.logFailure(msg.Err)
			return a, nil
		}
		a.model.Thread.ApplyComments(msg.Comments)
		a.detailView.SetForest(a.model.Thread.Forest())
		return a, nil

	case tui.UpvoteResultMsg:
		if msg.ItemID != a.model.Thread.ItemID() {
			// A list-screen toggle resolving after this thread was opened.
			return a, nil
		}
		if msg.Err != nil {
			a.detailView.Notice = "Vote could not be saved."
			a.detailView.Unblock()
			a.logFailure(msg.Err)
			return a, nil
		}
		a.model.Thread.FinishUpvote(msg.ItemID, msg.Result)
		if item := a.model.Thread.Item(); item != nil {
			a.detailView.SetItem(*item)
		}
		a.model.LogEvent(log.LogEvent{
			Event:   log.EventUpvoteToggled,
			ItemID:  msg.ItemID,
			Upvoted: msg.Result.Upvoted,
		})
		return a, nil

	case tui.CommentMutationMsg:
		if msg.Err != nil {
			a.detailView.Notice = api.UserMessage(msg.Err)
			a.detailView.Unblock()
			a.logFailure(msg.Err)
			return a, nil
		}
		a.model.Thread.ApplyComments(msg.Comments)
		a.detailView.CloseComposer()
		a.detailView.SetForest(a.model.Thread.Forest())
		a.model.LogEvent(log.LogEvent{
			Event:  msg.Event,
			ItemID: a.model.Thread.ItemID(),
		})
		return a, nil
	}

	return a, cmd
}

// ============================================================================
// State Transitions
// ============================================================================

// enterBrowse switches to the board screen and starts a fetch.
func (a *App) enterBrowse() tea.Cmd {
	a.model.State = tui.StateBrowse
	a.browseView.Username = a.username()
	a.browseView.SetFilter(a.model.Board.Filter())
	a.browseView.SetLoading(true)
	return tea.Batch(a.browseView.Init(), commands.FetchItemsCmd(a.model.Client, a.model.Board.Filter()))
}

// enterDetail opens a detail screen for the given item. Comments are only
// fetched for authenticated viewers; the thread itself is public.
func (a *App) enterDetail(id int64) tea.Cmd {
	a.model.Thread = thread.New(a.model.Client, a.model.Session.RequireAuth, id)
	a.model.State = tui.StateDetail
	a.detailView = views.NewDetailModel(a.model.Width, a.model.Height)
	a.detailView.Username = a.username()

	cmds := []tea.Cmd{a.detailView.Init(), commands.FetchItemCmd(a.model.Thread)}
	if a.model.Session.State() == auth.StateAuthenticated {
		cmds = append(cmds, commands.FetchCommentsCmd(a.model.Thread))
	}
	return tea.Batch(cmds...)
}

// refetchBoard syncs the filter bar and issues a new list fetch.
func (a *App) refetchBoard() tea.Cmd {
	a.browseView.SetFilter(a.model.Board.Filter())
	a.browseView.SetLoading(true)
	return commands.FetchItemsCmd(a.model.Client, a.model.Board.Filter())
}

// ============================================================================
// Helper Methods
// ============================================================================

func (a *App) username() string {
	if u := a.model.Session.User(); u != nil {
		return u.Username
	}
	return ""
}

func (a *App) logFailure(err error) {
	ev := log.LogEvent{Event: log.EventRequestFailed, Error: err.Error()}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		ev.StatusCode = apiErr.Status
	}
	a.model.LogEvent(ev)
}
