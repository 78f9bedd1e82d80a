package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"nexventory/internal/access"
	"nexventory/internal/command"
	"nexventory/internal/config"
	"nexventory/internal/directory"
	"nexventory/internal/dualselect"
	"nexventory/internal/eventbus"
	"nexventory/internal/session"
	"nexventory/internal/ui/handlers"
	"nexventory/internal/ui/input"
	inputtypes "nexventory/internal/ui/input/types"
	"nexventory/internal/ui/logic"
	"nexventory/internal/ui/state"
	"nexventory/internal/ui/views"
)

const statusTimeout = 5 * time.Second

// Options are the collaborators the UI needs
type Options struct {
	Store    directory.Store
	Assigner *access.Assigner
	Bus      eventbus.EventBus
	Session  *session.Session
	Config   *config.Config
	Logger   *log.Logger
}

// Model represents the UI state
type Model struct {
	bus      eventbus.EventBus
	store    directory.Store
	assigner *access.Assigner
	session  *session.Session
	config   *config.Config
	logger   *log.Logger
	state    *state.AppState // centralized state

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	keys        keyMap
	inPagerMode bool // tracks if we're currently in pager mode
	showHelp    bool // in-app help popup, used when the pager is unavailable
	statusSeq   int  // bumps whenever a status is scheduled to clear

	// Handlers
	navigator    *logic.Navigator
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	inputHandler *input.Handler
	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	m := &Model{
		bus:          opts.Bus,
		store:        opts.Store,
		assigner:     opts.Assigner,
		session:      opts.Session,
		config:       cfg,
		logger:       logger.WithPrefix("ui"),
		state:        state.NewAppState(),
		help:         help.New(),
		keys:         newKeyMap(),
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		helpRenderer: NewHelpRenderer(),
	}
	m.eventHandler = handlers.NewEventHandler(m.state, m.reloadUsers)
	m.reloadUsers()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// State exposes the application state
func (m *Model) State() *state.AppState {
	return m.state
}

// Mode returns the active input mode
func (m *Model) Mode() inputtypes.Mode {
	return m.inputHandler.CurrentMode()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()

	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "esc", "?", "q":
				m.showHelp = false
			case "ctrl+c":
				return m, m.quit()
			}
			return m, nil
		}

		ctx := m.context()
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}

	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	mode := m.inputHandler.CurrentMode()
	vs := views.ViewState{
		Width:           m.width,
		Height:          m.height,
		Users:           m.state.VisibleUsers,
		TotalUsers:      len(m.state.Users),
		SelectedIndex:   m.state.SelectedIndex,
		ViewportOffset:  m.state.ViewportOffset,
		ViewportHeight:  m.state.ViewportHeight,
		StatusMessage:   m.state.StatusMessage,
		StatusIsError:   m.state.StatusIsError,
		FilterQuery:     m.state.FilterQuery,
		SortKey:         m.state.Sort.Key(),
		SortOptionIndex: m.state.SortOptionIndex,
		ConfirmTarget:   m.config.DataFile,
		HelpModel:       m.help,
		HelpKeys:        m.keys.ShortHelp(mode),
	}
	if mode != inputtypes.ModeNormal && mode != inputtypes.ModeSelector {
		vs.InputMode = m.inputHandler.ModeName()
		vs.InputPrompt = m.inputHandler.Prompt()
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.TextInput = ti.View()
	}
	if m.session != nil {
		vs.Operator = m.session.Operator
		vs.SessionID = m.session.ShortID()
	}
	if sv := m.selectorView(); sv != nil {
		vs.Selector = sv
	}

	out := m.renderer.Render(vs)
	if m.showHelp {
		panel := m.renderer.Styles().Panel.Render(m.helpRenderer.RenderHelpContent())
		return views.NewPopupRenderer(m.renderer.Styles()).RenderPopupOverlay(out, panel, m.height, m.width)
	}
	return out
}

func (m *Model) context() *input.ModelContext {
	return &input.ModelContext{State: m.state}
}

// reloadUsers pulls a fresh copy of the directory from the store
func (m *Model) reloadUsers() {
	if m.store == nil {
		return
	}
	m.state.SetUsers(m.store.Users())
	m.ensureSelectedVisible()
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.logger.Debug("processAction", "action", action.Type())
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.QuitAction:
		return m.quit()

	case inputtypes.ToggleHelpAction:
		if m.program == nil {
			m.showHelp = true
			return nil
		}
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())

	case inputtypes.ClearFilterAction:
		m.setFilter("")
		return m.status("Filter cleared")

	case inputtypes.UpdateTextAction:
		if a.Mode == inputtypes.ModeFilter {
			m.setFilter(a.Text)
		}

	case inputtypes.SubmitTextAction:
		switch a.Mode {
		case inputtypes.ModeFilter:
			m.setFilter(strings.TrimSpace(a.Text))
			if m.state.FilterQuery == "" {
				return m.status("Filter cleared")
			}
			return m.status(fmt.Sprintf("Filter: %s (%d users)", m.state.FilterQuery, len(m.state.VisibleUsers)))
		case inputtypes.ModeCommand:
			return m.runCommand(a.Text)
		}

	case inputtypes.CancelTextAction:
		if a.Mode == inputtypes.ModeFilter {
			m.setFilter("")
		}

	case inputtypes.SortByAction:
		if mode, ok := logic.ParseSortMode(a.Criteria); ok {
			m.state.Sort = mode
			m.state.SetUsers(m.state.Users)
			m.ensureSelectedVisible()
		}

	case inputtypes.UpdateSortIndexAction:
		m.state.SortOptionIndex = a.Index

	case inputtypes.OpenSelectorAction:
		return m.openSelector(a)

	case inputtypes.FocusColumnAction:
		m.focusColumn(a.Column)

	case inputtypes.SelectorNavigateAction:
		m.navigateSelector(a.Direction)

	case inputtypes.ToggleMarkAction:
		m.toggleMark()

	case inputtypes.CommitAddAction:
		if sel := m.currentSelector(); sel != nil {
			sel.CommitAdd()
			m.clampSelectorCursors()
		}

	case inputtypes.CommitRemoveAction:
		if sel := m.currentSelector(); sel != nil {
			sel.CommitRemove()
			m.clampSelectorCursors()
		}

	case inputtypes.SaveSelectorAction:
		return m.saveSelector()

	case inputtypes.CancelSelectorAction:
		if s := m.state.Selector; s != nil {
			m.assigner.Cancel(s.Kind)
			m.state.Selector = nil
			return m.status("Changes discarded")
		}

	case inputtypes.ExportAction:
		return m.exportDirectory()
	}

	return nil
}

// handleNonKeyboardMsg processes messages that are not key presses
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Warn("help pager failed, showing popup", "err", msg.err)
			m.showHelp = true
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.state.ClearStatus()
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.logger.Error("export failed", "path", msg.path, "err", msg.err)
			m.state.SetError(fmt.Sprintf("Export failed: %v", msg.err))
			return m, nil
		}
		m.logger.Info("directory exported", "path", msg.path)
		return m, m.status(fmt.Sprintf("Directory written to %s", msg.path))
	}
	return m, nil
}

func (m *Model) quit() tea.Cmd {
	if m.session != nil {
		m.session.End()
	}
	return tea.Quit
}

// status shows msg and schedules it to clear
func (m *Model) status(msg string) tea.Cmd {
	m.state.SetStatus(msg)
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Model) setFilter(query string) {
	m.state.FilterQuery = query
	m.state.SetUsers(m.state.Users)
	m.ensureSelectedVisible()
}

func (m *Model) navigate(direction string) {
	m.syncNavigator()
	switch direction {
	case "up":
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(-1)
	case "down":
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(1)
	case "pageup":
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(-m.navigator.PageSize())
	case "pagedown":
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(m.navigator.PageSize())
	case "home":
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(0)
	case "end":
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(m.navigator.GetMaxIndex())
	}
}

// syncNavigator updates the navigator with current model state
func (m *Model) syncNavigator() {
	m.navigator.UpdateState(m.state.SelectedIndex, m.state.ViewportOffset, m.state.ViewportHeight, len(m.state.VisibleUsers))
}

// ensureSelectedVisible ensures the selected user is visible in the viewport
func (m *Model) ensureSelectedVisible() {
	m.syncNavigator()
	m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(m.state.SelectedIndex)
}

// updateViewportHeight sizes the table to the terminal
func (m *Model) updateViewportHeight() {
	// title(2) + input(2) + header(1) + scroll hints(2) + footer(2) + padding(2)
	h := m.height - 11
	if h < 3 {
		h = 3
	}
	m.state.ViewportHeight = h
	m.ensureSelectedVisible()
}

func (m *Model) runCommand(text string) tea.Cmd {
	tx, err := command.Parse(text)
	if err != nil {
		m.logger.Debug("rejected command", "input", text, "err", err)
		m.state.SetError(fmt.Sprintf("Unknown command: %s", strings.TrimSpace(text)))
		return nil
	}
	m.state.LastCommand = &tx
	m.logger.Info("command parsed", "input", text, "transaction", tx.String())
	if m.bus != nil {
		m.bus.Publish(eventbus.CommandParsedEvent{Input: text, Summary: tx.String()})
	}
	return m.status("Drafted: " + tx.String())
}

func (m *Model) exportDirectory() tea.Cmd {
	path := m.config.DataFile
	store := m.store
	return func() tea.Msg {
		return exportedMsg{path: path, err: directory.Export(store, path)}
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(helpContent)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// selector plumbing

func (m *Model) openSelector(a inputtypes.OpenSelectorAction) tea.Cmd {
	if err := m.assigner.Open(a.Kind, a.UserID); err != nil {
		m.logger.Error("failed to open selector", "kind", a.Kind, "user", a.UserID, "err", err)
		m.state.SetError(fmt.Sprintf("Cannot edit %s: %v", a.Kind, err))
		return nil
	}

	subject := a.UserID
	if u, ok := m.store.User(a.UserID); ok {
		subject = fmt.Sprintf("%s (%s)", u.Username, u.FullName())
	}
	m.state.Selector = &state.SelectorState{
		Kind:    a.Kind,
		UserID:  a.UserID,
		Subject: subject,
		Focus:   dualselect.Available,
	}
	m.state.ClearStatus()

	var cmds []tea.Cmd
	for _, action := range m.inputHandler.ChangeMode(inputtypes.ModeSelector, "", m.context()) {
		cmds = append(cmds, m.processAction(action))
	}
	return tea.Batch(cmds...)
}

func (m *Model) saveSelector() tea.Cmd {
	s := m.state.Selector
	if s == nil {
		return nil
	}
	m.state.Selector = nil

	res, err := m.assigner.Save(s.Kind)
	if err != nil {
		m.state.SetError(fmt.Sprintf("Failed to save %s: %v", s.Kind, err))
		return nil
	}
	m.reloadUsers()
	if !res.Changed() {
		return m.status(fmt.Sprintf("No changes to %s for %s", s.Kind, s.Subject))
	}
	return m.status(fmt.Sprintf("Saved %s for %s: +%d -%d", s.Kind, s.Subject, len(res.Added), len(res.Removed)))
}

// currentSelector returns the open selector, nil when none is open
func (m *Model) currentSelector() *dualselect.Selector {
	if m.state.Selector == nil || m.assigner == nil {
		return nil
	}
	sel := m.assigner.Selector(m.state.Selector.Kind)
	if sel == nil || !sel.IsOpen() {
		return nil
	}
	return sel
}

func (m *Model) focusColumn(column string) {
	s := m.state.Selector
	if s == nil {
		return
	}
	switch column {
	case "available":
		s.Focus = dualselect.Available
	case "selected":
		s.Focus = dualselect.Selected
	case "next":
		s.Focus = s.Focus.Other()
	}
	m.clampSelectorCursors()
}

// selectorRows is how many items each column shows at once
func (m *Model) selectorRows() int {
	rows := m.config.UI.PageSize
	if rows <= 0 {
		rows = 10
	}
	if m.height > 0 {
		if limit := m.height - 14; limit < rows {
			rows = limit
		}
	}
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (m *Model) navigateSelector(direction string) {
	s := m.state.Selector
	sel := m.currentSelector()
	if s == nil || sel == nil {
		return
	}
	col := s.Focus
	nav := logic.NewNavigator()
	nav.UpdateState(s.Cursor[col], s.Offset[col], m.selectorRows(), len(sel.Items(col)))
	switch direction {
	case "up":
		s.Cursor[col], s.Offset[col] = nav.Move(-1)
	case "down":
		s.Cursor[col], s.Offset[col] = nav.Move(1)
	case "home":
		s.Cursor[col], s.Offset[col] = nav.SetSelectedIndex(0)
	case "end":
		s.Cursor[col], s.Offset[col] = nav.SetSelectedIndex(nav.GetMaxIndex())
	}
}

// clampSelectorCursors keeps both cursors inside their shrinking or growing lists
func (m *Model) clampSelectorCursors() {
	s := m.state.Selector
	sel := m.currentSelector()
	if s == nil || sel == nil {
		return
	}
	for _, col := range []dualselect.List{dualselect.Available, dualselect.Selected} {
		nav := logic.NewNavigator()
		nav.UpdateState(s.Cursor[col], s.Offset[col], m.selectorRows(), len(sel.Items(col)))
		s.Cursor[col], s.Offset[col] = nav.SetSelectedIndex(s.Cursor[col])
	}
}

func (m *Model) toggleMark() {
	s := m.state.Selector
	sel := m.currentSelector()
	if s == nil || sel == nil {
		return
	}
	items := sel.Items(s.Focus)
	cursor := s.Cursor[s.Focus]
	if cursor < 0 || cursor >= len(items) {
		return
	}
	sel.ToggleMark(items[cursor].ID, s.Focus)
}

func (m *Model) selectorView() *views.SelectorViewState {
	s := m.state.Selector
	sel := m.currentSelector()
	if s == nil || sel == nil {
		return nil
	}
	return &views.SelectorViewState{
		Title:     s.Kind.Title(),
		Subject:   s.Subject,
		Available: sel.Available(),
		Selected:  sel.Selected(),
		Focus:     s.Focus,
		Cursor:    s.Cursor,
		Offset:    s.Offset,
		Height:    m.selectorRows(),
		IsMarked:  sel.IsMarked,
		CanAdd:    sel.CanCommitAdd(),
		CanRemove: sel.CanCommitRemove(),
	}
}
