// Package tui implements the terminal user interface for the Brussels
// rent reference wizard.
//
// This package provides an interactive, full-screen questionnaire that
// walks a tenant through describing their rental and produces the
// indicative reference rent for their address. Built using the Bubble
// Tea framework, it follows the Elm architecture with immutable state
// updates and a clean Model-Update-View pattern.
//
// # Architecture
//
// The TUI is organized into three screens:
//   - Restore: Offer to resume a persisted session found on disk
//   - Form: The step-by-step property questionnaire
//   - Results: The calculated rent band and comparison verdict
//
// All screens use a unified container pattern
// (RenderApplicationContainer) for consistent layout with header,
// content area and context-sensitive footer. The footer also shows the
// wizard's virtual step URL, which is kept in sync with the current
// step by the shared step navigator: the URL is authoritative, exactly
// as in the web rendition of the flow.
//
// # State model
//
// The AppModel owns a single wizard.State; every edit is an action run
// through the wizard reducer via dispatch, which also schedules a
// debounced snapshot save. Screens never mutate state directly; they
// emit actions.
//
// Numeric fields support press-and-hold stepping: holding a mouse
// button repeats the increment at an accelerating rate driven by the
// holdrepeat package, with ticks marshalled onto the UI goroutine
// through a channel so the timer callback never touches the model.
//
// # Framework Components
//
//   - bubbles/spinner: Lookup progress indicator
//   - bubbles/textinput: Address and rent entry
//   - bubbles/help, bubbles/key: Context-aware key bindings
//   - lipgloss: Styling and layout
//
// # Usage Example
//
//	app := tui.NewAppModel(manager, lookupClient, "fr", "")
//	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
//	if _, err := program.Run(); err != nil {
//	    log.Fatal(err)
//	}
package tui
