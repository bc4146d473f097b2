// Package app holds the root Bubble Tea model: view routing, global
// keybindings, and the glue between UI intents and the task repository.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tbui/taskbox/internal/keys"
	"github.com/tbui/taskbox/internal/stats"
	"github.com/tbui/taskbox/internal/store"
	"github.com/tbui/taskbox/internal/tasks"
	"github.com/tbui/taskbox/internal/theme"
	"github.com/tbui/taskbox/internal/ui"
	"github.com/tbui/taskbox/internal/ui/confirm"
	helpview "github.com/tbui/taskbox/internal/ui/help"
	"github.com/tbui/taskbox/internal/ui/statsview"
	"github.com/tbui/taskbox/internal/ui/taskform"
	"github.com/tbui/taskbox/internal/ui/tasklist"
	"github.com/tbui/taskbox/internal/ui/themepicker"
	"github.com/tbui/taskbox/internal/ui/userpicker"
	"github.com/tbui/taskbox/internal/users"
)

// Confirmation action tokens routed through the confirm dialog.
const (
	actionDeleteTask = "delete-task"
	actionClearAll   = "clear-all"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewForm
	ViewStats
	ViewUsers
	ViewThemes
	ViewConfirm
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the repository and user registry.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout

	adapter  *store.Adapter
	registry *users.Registry
	repo     *tasks.Repository
	keys     *keys.KeyMap
	styles   *theme.Styles
	themeName string

	taskList    tasklist.Model
	formView    taskform.Model
	statsView   statsview.Model
	userView    userpicker.Model
	themeView   themepicker.Model
	confirmView confirm.Model
	helpView    helpview.Model

	// changes receives a signal after every repository mutation; the
	// waitForChange command turns it into a stateChangedMsg.
	changes chan struct{}

	ready     bool
	statusMsg string
}

// New creates the root application model. The repository must already
// be bound to the current user's scope.
func New(adapter *store.Adapter, registry *users.Registry, repo *tasks.Repository, themeName string) *Model {
	k := keys.DefaultKeyMap()
	if !theme.Valid(themeName) {
		themeName = theme.DefaultName
	}
	styles := theme.NewStyles(themeName)

	m := &Model{
		currentView: ViewList,
		adapter:     adapter,
		registry:    registry,
		repo:        repo,
		keys:        k,
		styles:      &styles,
		themeName:    themeName,
		changes:     make(chan struct{}, 1),
	}

	m.taskList = tasklist.New(m.styles, 80, 24)
	m.formView = taskform.New(m.styles, 80, 24)
	m.statsView = statsview.New(m.styles, 80, 24)
	m.userView = userpicker.New(registry, k, m.styles, 80, 24)
	m.themeView = themepicker.New(k, m.styles, themeName, 80, 24)
	m.confirmView = confirm.New(80, 24)
	m.helpView = helpview.New(k, m.styles, 80, 24)

	m.subscribe(repo)
	return m
}

// subscribe wires the repository's change notification into the
// message loop.
func (m *Model) subscribe(repo *tasks.Repository) {
	repo.Subscribe(func() {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
}

// Init pushes the initial task list into the views and starts waiting
// for change notifications.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.refreshViews(),
		m.waitForChange(),
	)
}

// waitForChange blocks until the repository reports a mutation.
func (m *Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		<-ch
		return stateChangedMsg{}
	}
}

// refreshViews pushes the current task list and derived statistics into
// the list and stats views.
func (m *Model) refreshViews() tea.Cmd {
	taskSlice := m.repo.Tasks()
	m.statsView.SetSummary(stats.Summarize(taskSlice, timeNow()))
	return m.taskList.SetTasks(taskSlice)
}

// Update handles messages and dispatches to the active view.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		m.statsView.SetSize(contentWidth, contentHeight)
		m.userView.SetSize(contentWidth, contentHeight)
		m.themeView.SetSize(contentWidth, contentHeight)
		m.confirmView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case stateChangedMsg:
		return m, tea.Batch(m.refreshViews(), m.waitForChange())

	case mutationDoneMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.statusMsg = msg.status
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.statusMsg = "Exported to " + msg.path
		}
		return m, nil

	case taskform.TaskCreatedMsg:
		m.currentView = ViewList
		return m, m.addTask(msg.Input)

	case taskform.TaskEditedMsg:
		m.currentView = ViewList
		return m, m.editTask(msg.ID, msg.Patch)

	case taskform.FormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case confirm.ResultMsg:
		m.currentView = m.previousView
		if !msg.Granted {
			return m, nil
		}
		switch msg.Action {
		case actionDeleteTask:
			return m, m.deleteTask(msg.TaskID)
		case actionClearAll:
			return m, m.clearAll()
		}
		return m, nil

	case userpicker.CloseMsg:
		m.currentView = ViewList
		return m, nil

	case userpicker.UsersChangedMsg:
		// The registry may have dropped the current user; rebind.
		if err := m.rebindCurrentUser(); err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
		}
		return m, m.refreshViews()

	case userpicker.UserSwitchedMsg:
		if err := m.rebindCurrentUser(); err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
			return m, nil
		}
		m.currentView = ViewList
		m.statusMsg = ""
		return m, m.refreshViews()

	case themepicker.CloseMsg:
		m.currentView = ViewList
		return m, nil

	case themepicker.ThemeChosenMsg:
		m.currentView = ViewList
		return m, m.changeTheme(msg.Name)

	case tea.KeyMsg:
		if handled, cmd := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that apply outside of form input.
// Forms and dialogs receive all keys untouched except ctrl+c.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, tea.Quit
	}

	inFormView := m.currentView == ViewForm ||
		m.currentView == ViewConfirm ||
		m.currentView == ViewUsers
	if inFormView {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.currentView == ViewList {
			return true, tea.Quit
		}
		return false, nil

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, nil

	case key.Matches(msg, m.keys.Back):
		if m.currentView != ViewList {
			m.currentView = ViewList
			return true, nil
		}
		if m.taskList.FilterSummary() != "" {
			return true, m.taskList.ClearFilters()
		}
		return false, nil

	case key.Matches(msg, m.keys.Snapshot):
		if m.currentView == ViewList || m.currentView == ViewStats {
			return true, m.writeSnapshot()
		}
		return false, nil
	}

	if m.currentView != ViewList {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.keys.Add):
		m.previousView = m.currentView
		m.currentView = ViewForm
		return true, m.formView.StartCreate()

	case key.Matches(msg, m.keys.Edit):
		t, ok := m.taskList.SelectedTask()
		if !ok {
			return true, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewForm
		return true, m.formView.StartEdit(t)

	case key.Matches(msg, m.keys.Toggle):
		t, ok := m.taskList.SelectedTask()
		if !ok {
			return true, nil
		}
		return true, m.toggleTask(t.ID)

	case key.Matches(msg, m.keys.Delete):
		t, ok := m.taskList.SelectedTask()
		if !ok {
			return true, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewConfirm
		return true, m.confirmView.Start(
			actionDeleteTask, t.ID,
			fmt.Sprintf("Delete task %q?", t.Title),
			"This action cannot be undone.",
		)

	case key.Matches(msg, m.keys.Clear):
		m.previousView = m.currentView
		m.currentView = ViewConfirm
		return true, m.confirmView.Start(
			actionClearAll, "",
			"Clear all tasks?",
			"This will remove every task for the current user.",
		)

	case key.Matches(msg, m.keys.CycleStatus):
		return true, m.taskList.CycleStatusFilter()

	case key.Matches(msg, m.keys.CycleCategory):
		return true, m.taskList.CycleCategoryFilter()

	case key.Matches(msg, m.keys.CycleSort):
		return true, m.taskList.CycleSort()

	case key.Matches(msg, m.keys.Stats):
		m.previousView = m.currentView
		m.currentView = ViewStats
		return true, m.refreshViews()

	case key.Matches(msg, m.keys.Users):
		m.previousView = m.currentView
		m.currentView = ViewUsers
		return true, nil

	case key.Matches(msg, m.keys.Themes):
		m.previousView = m.currentView
		m.currentView = ViewThemes
		m.themeView = themepicker.New(m.keys, m.styles, m.themeName, m.layout.ContentWidth(), m.layout.ContentHeight())
		return true, nil

	case key.Matches(msg, m.keys.Export):
		return true, m.exportJSON()
	}

	return false, nil
}

// rebindCurrentUser swaps the repository over to the registry's current
// user, creating a default user if none is left.
func (m *Model) rebindCurrentUser() error {
	ctx := context.Background()
	current, err := m.registry.EnsureDefault(ctx)
	if err != nil {
		return err
	}
	if m.repo.Scope() == current.ID {
		return nil
	}

	repo, err := tasks.NewRepository(ctx, m.adapter, current.ID)
	if err != nil {
		return err
	}
	m.repo = repo
	m.subscribe(repo)
	return nil
}

// updateActiveView dispatches the message to the currently active view.
func (m *Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewStats:
		// Stats panel is static; esc and s are handled globally.
	case ViewUsers:
		m.userView, cmd = m.userView.Update(msg)
	case ViewThemes:
		m.themeView, cmd = m.themeView.Update(msg)
	case ViewConfirm:
		m.confirmView, cmd = m.confirmView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(*m.styles, "Taskbox", m.headerContext())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(*m.styles, m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// headerContext describes the current user for the header's right side.
func (m *Model) headerContext() string {
	u := m.registry.Current()
	if u == nil {
		return ""
	}
	return u.Avatar + " " + u.Name
}

// renderContent returns the rendered string for the current active view.
func (m *Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.taskList.View()
	case ViewForm:
		return m.formView.View()
	case ViewStats:
		return m.statsView.View()
	case ViewUsers:
		return m.userView.View()
	case ViewThemes:
		return m.themeView.View()
	case ViewConfirm:
		return m.confirmView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m *Model) keyHints() string {
	if m.statusMsg != "" && m.currentView == ViewList {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewForm:
		return "enter submit | esc cancel"
	case ViewStats:
		return "S snapshot | esc back"
	case ViewUsers:
		return "enter switch | n new | d remove | esc back"
	case ViewThemes:
		return "enter apply | esc back"
	case ViewConfirm:
		return "enter confirm | esc cancel"
	default:
		filterSummary := m.taskList.FilterSummary()
		if filterSummary != "" {
			return filterSummary + " | f/g/tab cycle | esc clear"
		}
		return "q quit | ? help | n new | x done | f filter | tab sort"
	}
}
