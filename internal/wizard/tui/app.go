package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/loyerbxl/rentwizard/internal/difficulty"
	"github.com/loyerbxl/rentwizard/internal/session"
	"github.com/loyerbxl/rentwizard/internal/steps"
	"github.com/loyerbxl/rentwizard/internal/wizard"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenRestore Screen = "restore" // Offer to resume a persisted session
	ScreenForm    Screen = "form"    // The step-by-step property form
	ScreenResults Screen = "results" // Reference rent band and verdict
)

// virtualLocation is the TUI's stand-in for an address bar. The step
// navigator drives it exactly like a browser location: Push adds a
// history entry, Replace rewrites the current one. The current path is
// shown in the footer so the wizard URL contract stays visible.
type virtualLocation struct {
	path    string
	history []string
}

func (l *virtualLocation) Replace(path string) {
	l.path = path
}

func (l *virtualLocation) Push(path string) {
	l.history = append(l.history, l.path)
	l.path = path
}

// AppModel is the top-level coordinator model that manages screen
// transitions and owns the authoritative form state.
type AppModel struct {
	CurrentScreen Screen

	// Authoritative session state; every edit goes through dispatch.
	State   wizard.State
	Manager *session.Manager
	Lookup  difficulty.Service
	Locale  string

	// Navigation
	Loc *virtualLocation
	Nav *steps.Navigator

	// Screen models
	Form    FormModel
	Results ResultsModel

	// Pending restore offer
	Snapshot      wizard.State
	RestoreCursor int

	// Hold-to-repeat driver for numeric fields
	Repeat *stepRepeater

	// UI state
	Width  int
	Height int
	Help   help.Model
}

// NewAppModel creates the wizard. startKey is an optional deep-link
// step key (empty for the default); the URL wins over the restored
// state when both disagree.
func NewAppModel(manager *session.Manager, lookup difficulty.Service, locale, startKey string) AppModel {
	now := time.Now()
	state := wizard.NewState(now)

	loc := &virtualLocation{}
	if startKey == "" {
		startKey = steps.First()
	}
	loc.Replace(steps.PathFor(locale, startKey))

	nav := steps.NewNavigator(locale, loc)

	m := AppModel{
		CurrentScreen: ScreenForm,
		State:         state,
		Manager:       manager,
		Lookup:        lookup,
		Locale:        locale,
		Loc:           loc,
		Nav:           nav,
		Form:          NewFormModel(),
		Results:       NewResultsModel(),
		Repeat:        newStepRepeater(),
		Help:          help.New(),
	}

	// Offer to resume if a fresh-enough snapshot exists. Checked before
	// anything else so no save can race the unanswered prompt.
	if snapshot, ok := manager.Restore(now, ""); ok {
		m.Snapshot = snapshot
		m.CurrentScreen = ScreenRestore
	}

	// The URL is authoritative for the starting step. Applied without
	// arming a save: a blank deep-linked state must not overwrite the
	// snapshot while the prompt is still open.
	if action, ok := nav.Sync(startKey, m.State.CurrentStep); ok {
		m.applyLocal(action)
	}
	if action, ok := m.stepEntryAction(); ok {
		m.applyLocal(action)
	}

	return m
}

// dispatch runs one action through the reducer and schedules a
// debounced snapshot save. All state changes in the TUI go through
// here.
func (m *AppModel) dispatch(a wizard.Action) {
	m.State = wizard.Apply(m.State, a, time.Now())
	m.Manager.Schedule(m.State)
}

// applyLocal runs one action through the reducer without arming a
// snapshot save. Only construction uses it, while the restore prompt
// may still be unanswered.
func (m *AppModel) applyLocal(a wizard.Action) {
	m.State = wizard.Apply(m.State, a, time.Now())
}

// stepEntryAction returns the side effect of landing on the current
// step: entering the details step seeds a zero surface to 1 so the
// stepper starts on a valid value.
func (m *AppModel) stepEntryAction() (wizard.Action, bool) {
	if key, ok := steps.ToKey(m.State.CurrentStep); ok && key == steps.KeyPropertyDetails {
		return wizard.BootstrapSize{}, true
	}
	return nil, false
}

// beginCalcMsg kicks off the final-step calculation from Init when the
// wizard was deep-linked straight to the results step.
type beginCalcMsg struct{}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	// The repeat listener lives for the whole program; each received
	// tick re-arms it in Update.
	cmds := []tea.Cmd{m.Repeat.listen()}

	// A deep link to the results step starts its calculation instead of
	// presenting a form with nothing to edit.
	if m.CurrentScreen == ScreenForm && m.State.CurrentStep == steps.Count() {
		cmds = append(cmds, func() tea.Msg { return beginCalcMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Form.Width = msg.Width
		m.Form.Height = msg.Height
		m.Results.Width = msg.Width
		m.Results.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}

	case stepRepeatMsg:
		// One hold-repeat tick: apply the active delta and re-arm the
		// listener.
		if m.CurrentScreen == ScreenForm {
			if action, ok := m.Form.repeatAction(m.State, m.Repeat.delta); ok {
				m.dispatch(action)
			}
		}
		return m, m.Repeat.listen()

	case beginCalcMsg:
		if m.CurrentScreen == ScreenForm {
			return m.startCalculation()
		}
		return m, nil

	case calcDoneMsg:
		return m.finishCalculation(msg)
	}

	switch m.CurrentScreen {
	case ScreenRestore:
		return m.updateRestoreScreen(msg)
	case ScreenForm:
		return m.updateFormScreen(msg)
	case ScreenResults:
		return m.updateResultsScreen(msg)
	}
	return m, nil
}

// quit flushes the pending snapshot before leaving.
func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.Repeat.release()
	m.Manager.Close()
	return m, tea.Quit
}

// updateRestoreScreen handles the resume-or-start-over prompt.
func (m AppModel) updateRestoreScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k", "down", "j", "tab":
		m.RestoreCursor = 1 - m.RestoreCursor

	case "q", "esc":
		return m.quit()

	case "enter", " ":
		if m.RestoreCursor == 0 {
			return m.resumeSnapshot()
		}
		// Start over: the stale snapshot is gone for good.
		m.Manager.Clear()
		m.Manager.Schedule(m.State)
		if m.State.CurrentStep == steps.Count() {
			return m.startCalculation()
		}
		m.CurrentScreen = ScreenForm
	}

	return m, nil
}

// resumeSnapshot restores the persisted state wholesale and lands on
// the step it was saved at.
func (m AppModel) resumeSnapshot() (tea.Model, tea.Cmd) {
	m.dispatch(wizard.RestoreState{State: m.Snapshot})
	if action, ok := m.stepEntryAction(); ok {
		m.dispatch(action)
	}

	if key, ok := steps.ToKey(m.State.CurrentStep); ok {
		m.Loc.Replace(steps.PathFor(m.Locale, key))
	}

	if m.State.CurrentStep == steps.Count() {
		return m.startCalculation()
	}
	m.CurrentScreen = ScreenForm
	return m, nil
}

// gotoStep moves the wizard to another step ordinal, keeping the
// virtual URL in step with the state.
func (m AppModel) gotoStep(ordinal int) (tea.Model, tea.Cmd) {
	if ordinal < 1 || ordinal > steps.Count() {
		return m, nil
	}

	m.Repeat.release()
	m.dispatch(wizard.SetCurrentStep{Step: ordinal})
	if action, ok := m.stepEntryAction(); ok {
		m.dispatch(action)
	}
	m.Nav.Navigate(ordinal)
	m.Form.Cursor = 0

	if ordinal == steps.Count() {
		return m.startCalculation()
	}
	m.CurrentScreen = ScreenForm
	return m, nil
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenRestore:
		return m.renderRestoreScreen()
	case ScreenForm:
		return m.Form.View(m.State, m.Loc.path)
	case ScreenResults:
		return m.Results.View(m.State, m.Loc.path)
	default:
		return "Unknown screen"
	}
}

// renderRestoreScreen renders the resume prompt.
func (m AppModel) renderRestoreScreen() string {
	content := RenderTitle("Welcome back") + "\n\n"

	age := time.Since(time.UnixMilli(m.Snapshot.LastUpdated)).Round(time.Minute)
	content += RenderInfo("An unfinished calculation from "+formatAge(age)+" ago was found.") + "\n\n"
	content += RenderMenuItem("Resume where I left off", m.RestoreCursor == 0) + "\n"
	content += RenderMenuItem("Start a new calculation", m.RestoreCursor == 1) + "\n"

	return RenderApplicationContainer(content, "↑/↓ choose • enter confirm • q quit", m.Width, m.Height)
}

// formatAge renders a duration for the restore prompt.
func formatAge(d time.Duration) string {
	if d < time.Minute {
		return "moments"
	}
	if d < time.Hour {
		return d.Round(time.Minute).String()
	}
	return d.Round(time.Hour).String()
}
