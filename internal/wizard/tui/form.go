package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/loyerbxl/rentwizard/internal/steps"
	"github.com/loyerbxl/rentwizard/internal/wizard"
)

// fieldKind determines how a form field is rendered and edited.
type fieldKind int

const (
	fieldChoice fieldKind = iota // cycle through a fixed option list
	fieldTri                     // yes / no / unanswered
	fieldNumber                  // numeric with hold-to-repeat stepping
	fieldText                    // free text via textinput
)

// formField is one editable line of a wizard step.
type formField struct {
	label string
	kind  fieldKind

	// value renders the current display value.
	value func(s wizard.State) string

	// cycle produces the action for a left/right move on choice and
	// tri-state fields.
	cycle func(s wizard.State, dir int) wizard.Action

	// adjust produces the action for a numeric delta. The bool is false
	// when the delta would push the value out of range.
	adjust func(s wizard.State, delta float64) (wizard.Action, bool)

	// commit produces the action for submitted text.
	commit func(text string) (wizard.Action, bool)

	// step is the per-repeat increment for numeric fields.
	step float64
}

// formKeyMap defines key bindings for the form screen
type formKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Next  key.Binding
	Prev  key.Binding
	Edit  key.Binding
	Quit  key.Binding
}

// FormModel renders one wizard step as a navigable field list. The
// authoritative state lives in AppModel; the form only owns cursor and
// editing state and emits actions.
type FormModel struct {
	Cursor  int
	Editing bool
	Input   textinput.Model

	Width  int
	Height int

	Keys formKeyMap
}

// NewFormModel creates the form screen model.
func NewFormModel() FormModel {
	input := textinput.New()
	input.CharLimit = 80
	input.Width = 40

	return FormModel{
		Input: input,
		Keys: formKeyMap{
			Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
			Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
			Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "change")),
			Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("", "")),
			Next:  key.NewBinding(key.WithKeys("pgdown", "ctrl+n"), key.WithHelp("pgdn", "next step")),
			Prev:  key.NewBinding(key.WithKeys("pgup", "ctrl+p"), key.WithHelp("pgup", "previous step")),
			Edit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
			Quit:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		},
	}
}

// ptr is a pointer-literal helper for patch construction.
func ptr[T any](v T) *T {
	return &v
}

// cycleTri walks Yes → No → Unanswered → Yes (and backwards).
func cycleTri(current wizard.TriState, dir int) wizard.TriState {
	order := []wizard.TriState{wizard.Yes, wizard.No, wizard.Unset}
	for i, v := range order {
		if v == current {
			return order[((i+dir)%3+3)%3]
		}
	}
	return wizard.Yes
}

func triLabel(v wizard.TriState) string {
	switch v {
	case wizard.Yes:
		return "Yes"
	case wizard.No:
		return "No"
	default:
		return "Not answered"
	}
}

// triField builds a tri-state amenity field over one PropertyInfo
// member.
func triField(label string, get func(p wizard.PropertyInfo) wizard.TriState, patch func(v wizard.TriState) wizard.PropertyInfoPatch) formField {
	return formField{
		label: label,
		kind:  fieldTri,
		value: func(s wizard.State) string { return triLabel(get(s.PropertyInfo)) },
		cycle: func(s wizard.State, dir int) wizard.Action {
			return wizard.UpdatePropertyInfo{Patch: patch(cycleTri(get(s.PropertyInfo), dir))}
		},
	}
}

// intField builds a stepping integer field over one PropertyInfo
// member.
func intField(label string, min int, get func(p wizard.PropertyInfo) int, patch func(v int) wizard.PropertyInfoPatch) formField {
	return formField{
		label: label,
		kind:  fieldNumber,
		step:  1,
		value: func(s wizard.State) string { return strconv.Itoa(get(s.PropertyInfo)) },
		adjust: func(s wizard.State, delta float64) (wizard.Action, bool) {
			next := get(s.PropertyInfo) + int(delta)
			if next < min {
				return nil, false
			}
			return wizard.UpdatePropertyInfo{Patch: patch(next)}, true
		},
	}
}

// stepFields returns the editable fields for a step key.
func stepFields(stepKey string) []formField {
	switch stepKey {
	case steps.KeyPropertyType:
		return []formField{
			{
				label: "Property type",
				kind:  fieldChoice,
				value: func(s wizard.State) string {
					if s.PropertyInfo.PropertyType == "" {
						return "Not answered"
					}
					return string(s.PropertyInfo.PropertyType)
				},
				cycle: func(s wizard.State, dir int) wizard.Action {
					order := []wizard.PropertyType{wizard.PropertyTypeStudio, wizard.PropertyTypeApartment, wizard.PropertyTypeHouse}
					idx := 0
					for i, v := range order {
						if v == s.PropertyInfo.PropertyType {
							idx = ((i+dir)%3 + 3) % 3
						}
					}
					return wizard.UpdatePropertyInfo{Patch: wizard.PropertyInfoPatch{PropertyType: &order[idx]}}
				},
			},
			triField("Rented furnished", func(p wizard.PropertyInfo) wizard.TriState { return p.Furnished },
				func(v wizard.TriState) wizard.PropertyInfoPatch { return wizard.PropertyInfoPatch{Furnished: &v} }),
		}

	case steps.KeyPropertyDetails:
		return []formField{
			{
				label: "Living surface (m²)",
				kind:  fieldNumber,
				step:  1,
				value: func(s wizard.State) string { return strconv.FormatFloat(s.PropertyInfo.Size, 'f', -1, 64) },
				adjust: func(s wizard.State, delta float64) (wizard.Action, bool) {
					next := s.PropertyInfo.Size + delta
					if next < 1 {
						return nil, false
					}
					return wizard.UpdatePropertyInfo{Patch: wizard.PropertyInfoPatch{Size: &next}}, true
				},
			},
			intField("Bedrooms", 0, func(p wizard.PropertyInfo) int { return p.Bedrooms },
				func(v int) wizard.PropertyInfoPatch { return wizard.PropertyInfoPatch{Bedrooms: &v} }),
			intField("Bathrooms", 0, func(p wizard.PropertyInfo) int { return p.Bathrooms },
				func(v int) wizard.PropertyInfoPatch { return wizard.PropertyInfoPatch{Bathrooms: &v} }),
			intField("Garages or parking spots", 0, func(p wizard.PropertyInfo) int { return p.NumberOfGarages },
				func(v int) wizard.PropertyInfoPatch { return wizard.PropertyInfoPatch{NumberOfGarages: &v} }),
			triField("Built before 2000", func(p wizard.PropertyInfo) wizard.TriState { return p.ConstructedBefore2000 },
				func(v wizard.TriState) wizard.PropertyInfoPatch {
					return wizard.PropertyInfoPatch{ConstructedBefore2000: &v}
				}),
			{
				label: "Overall condition",
				kind:  fieldChoice,
				value: func(s wizard.State) string {
					if s.PropertyInfo.PropertyState == "" {
						return "Not answered"
					}
					return string(s.PropertyInfo.PropertyState)
				},
				cycle: func(s wizard.State, dir int) wizard.Action {
					order := []wizard.Condition{wizard.ConditionPoor, wizard.ConditionGood, wizard.ConditionExcellent}
					idx := 0
					for i, v := range order {
						if v == s.PropertyInfo.PropertyState {
							idx = ((i+dir)%3 + 3) % 3
						}
					}
					return wizard.UpdatePropertyInfo{Patch: wizard.PropertyInfoPatch{PropertyState: &order[idx]}}
				},
			},
		}

	case steps.KeyFeatures:
		return []formField{
			triField("Central heating", func(p wizard.PropertyInfo) wizard.TriState { return p.CentralHeating },
				func(v wizard.TriState) wizard.PropertyInfoPatch { return wizard.PropertyInfoPatch{CentralHeating: &v} }),
			triField("Thermostat or thermostatic valves", func(p wizard.PropertyInfo) wizard.TriState { return p.ThermalRegulation },
				func(v wizard.TriState) wizard.PropertyInfoPatch { return wizard.PropertyInfoPatch{ThermalRegulation: &v} }),
			triField("Second bathroom", func(p wizard.PropertyInfo) wizard.TriState { return p.SecondBathroom },
				func(v wizard.TriState) wizard.PropertyInfoPatch { return wizard.PropertyInfoPatch{SecondBathroom: &v} }),
			triField("Balcony, terrace or garden", func(p wizard.PropertyInfo) wizard.TriState { return p.RecreationalSpaces },
				func(v wizard.TriState) wizard.PropertyInfoPatch { return wizard.PropertyInfoPatch{RecreationalSpaces: &v} }),
			triField("Cellar, attic or storage room", func(p wizard.PropertyInfo) wizard.TriState { return p.StorageSpaces },
				func(v wizard.TriState) wizard.PropertyInfoPatch { return wizard.PropertyInfoPatch{StorageSpaces: &v} }),
		}

	case steps.KeyEnergy:
		return []formField{
			{
				label: "Energy certificate (PEB) class",
				kind:  fieldChoice,
				value: func(s wizard.State) string {
					if s.PropertyInfo.EnergyClass == "" {
						return "No certificate"
					}
					return string(s.PropertyInfo.EnergyClass)
				},
				cycle: func(s wizard.State, dir int) wizard.Action {
					order := []wizard.EnergyClass{
						wizard.EnergyClassUnset, wizard.EnergyClassA, wizard.EnergyClassB,
						wizard.EnergyClassC, wizard.EnergyClassD, wizard.EnergyClassE,
						wizard.EnergyClassF, wizard.EnergyClassG,
					}
					idx := 0
					for i, v := range order {
						if v == s.PropertyInfo.EnergyClass {
							idx = ((i+dir)%len(order) + len(order)) % len(order)
						}
					}
					return wizard.UpdatePropertyInfo{Patch: wizard.PropertyInfoPatch{EnergyClass: &order[idx]}}
				},
			},
		}

	case steps.KeyAddress:
		return []formField{
			{
				label: "Postal code",
				kind:  fieldText,
				value: func(s wizard.State) string {
					if s.PropertyInfo.PostalCode == 0 {
						return ""
					}
					return strconv.Itoa(s.PropertyInfo.PostalCode)
				},
				commit: func(text string) (wizard.Action, bool) {
					code, err := strconv.Atoi(strings.TrimSpace(text))
					if err != nil || code <= 0 {
						return nil, false
					}
					return wizard.UpdatePropertyInfo{Patch: wizard.PropertyInfoPatch{PostalCode: &code}}, true
				},
			},
			{
				label: "Street name",
				kind:  fieldText,
				value: func(s wizard.State) string { return s.PropertyInfo.StreetName },
				commit: func(text string) (wizard.Action, bool) {
					return wizard.UpdatePropertyInfo{Patch: wizard.PropertyInfoPatch{StreetName: ptr(strings.TrimSpace(text))}}, true
				},
			},
			{
				label: "Street number",
				kind:  fieldText,
				value: func(s wizard.State) string { return s.PropertyInfo.StreetNumber },
				commit: func(text string) (wizard.Action, bool) {
					return wizard.UpdatePropertyInfo{Patch: wizard.PropertyInfoPatch{StreetNumber: ptr(strings.TrimSpace(text))}}, true
				},
			},
			{
				label: "Your current rent (€/month, optional)",
				kind:  fieldText,
				value: func(s wizard.State) string { return s.RentalInfo.ActualRent },
				commit: func(text string) (wizard.Action, bool) {
					return wizard.UpdateRentalInfo{Patch: wizard.RentalInfoPatch{ActualRent: ptr(strings.TrimSpace(text))}}, true
				},
			},
		}
	}
	return nil
}

// repeatAction resolves one hold-repeat tick against the focused field.
func (f FormModel) repeatAction(s wizard.State, delta float64) (wizard.Action, bool) {
	fields := stepFields(currentStepKey(s))
	if f.Cursor < 0 || f.Cursor >= len(fields) {
		return nil, false
	}
	field := fields[f.Cursor]
	if field.kind != fieldNumber {
		return nil, false
	}
	return field.adjust(s, delta*field.step)
}

func currentStepKey(s wizard.State) string {
	key, ok := steps.ToKey(s.CurrentStep)
	if !ok {
		return steps.First()
	}
	return key
}

// updateFormScreen handles input while the form is visible. It lives on
// AppModel because edits mutate the authoritative state.
func (m AppModel) updateFormScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	fields := stepFields(currentStepKey(m.State))
	if len(fields) == 0 {
		// The results step has no editable fields; anything routed here
		// belongs to the calculation it shows.
		return m.startCalculation()
	}
	if m.Form.Cursor >= len(fields) {
		m.Form.Cursor = 0
	}

	if m.Form.Editing {
		return m.updateTextEditing(msg, fields)
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.handleFormMouse(msg, fields)

	case tea.KeyMsg:
		switch {
		case msg.String() == "q", msg.String() == "esc":
			return m.quit()

		case key.Matches(msg, m.Form.Keys.Up):
			m.Form.Cursor--
			if m.Form.Cursor < 0 {
				m.Form.Cursor = len(fields) - 1
			}

		case key.Matches(msg, m.Form.Keys.Down):
			m.Form.Cursor = (m.Form.Cursor + 1) % len(fields)

		case key.Matches(msg, m.Form.Keys.Prev):
			return m.gotoStep(m.State.CurrentStep - 1)

		case key.Matches(msg, m.Form.Keys.Next):
			return m.gotoStep(m.State.CurrentStep + 1)

		case key.Matches(msg, m.Form.Keys.Left):
			m.adjustFocused(fields, -1)

		case key.Matches(msg, m.Form.Keys.Right):
			m.adjustFocused(fields, +1)

		case msg.String() == "+" || msg.String() == "=":
			m.adjustFocused(fields, +1)

		case msg.String() == "-":
			m.adjustFocused(fields, -1)

		case key.Matches(msg, m.Form.Keys.Edit):
			field := fields[m.Form.Cursor]
			if field.kind == fieldText {
				m.Form.Editing = true
				m.Form.Input.SetValue(field.value(m.State))
				m.Form.Input.CursorEnd()
				return m, m.Form.Input.Focus()
			}
			// Enter on the last field of the step advances.
			if m.Form.Cursor == len(fields)-1 {
				return m.gotoStep(m.State.CurrentStep + 1)
			}
			m.Form.Cursor++
		}
	}

	return m, nil
}

// adjustFocused applies one unit of change to the focused field,
// whatever its kind.
func (m *AppModel) adjustFocused(fields []formField, dir int) {
	field := fields[m.Form.Cursor]
	switch field.kind {
	case fieldChoice, fieldTri:
		m.dispatch(field.cycle(m.State, dir))
	case fieldNumber:
		if action, ok := field.adjust(m.State, float64(dir)*field.step); ok {
			m.dispatch(action)
		}
	}
}

// handleFormMouse maps press-and-hold to the repeat accelerator: a held
// left button increments the focused numeric field, a held right button
// decrements it, and the rate accelerates the longer the hold lasts.
func (m AppModel) handleFormMouse(msg tea.MouseMsg, fields []formField) (tea.Model, tea.Cmd) {
	if m.Form.Cursor >= len(fields) || fields[m.Form.Cursor].kind != fieldNumber {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.Repeat.press(+1)
		case tea.MouseButtonRight:
			m.Repeat.press(-1)
		}
	case tea.MouseActionRelease:
		m.Repeat.release()
	}

	return m, nil
}

// updateTextEditing routes input into the active textinput.
func (m AppModel) updateTextEditing(msg tea.Msg, fields []formField) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.Form.Editing = false
			m.Form.Input.Blur()
			return m, nil

		case "enter":
			field := fields[m.Form.Cursor]
			if action, valid := field.commit(m.Form.Input.Value()); valid {
				m.dispatch(action)
				m.Form.Editing = false
				m.Form.Input.Blur()
			}
			// An invalid value keeps the editor open.
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.Form.Input, cmd = m.Form.Input.Update(msg)
	return m, cmd
}

// stepTitle maps a step key to its on-screen heading.
func stepTitle(stepKey string) string {
	switch stepKey {
	case steps.KeyPropertyType:
		return "What are you renting?"
	case steps.KeyPropertyDetails:
		return "Tell us about the property"
	case steps.KeyFeatures:
		return "Comfort and amenities"
	case steps.KeyEnergy:
		return "Energy performance"
	case steps.KeyAddress:
		return "Where is the property?"
	default:
		return "Your reference rent"
	}
}

// View renders the current step.
func (f FormModel) View(s wizard.State, path string) string {
	stepKey := currentStepKey(s)
	fields := stepFields(stepKey)

	var b strings.Builder
	b.WriteString(RenderStepIndicator(s.CurrentStep, steps.Count(), stepKey))
	b.WriteString("\n")
	b.WriteString(RenderTitle(stepTitle(stepKey)))
	b.WriteString("\n")

	for i, field := range fields {
		focused := i == f.Cursor

		value := field.value(s)
		if value == "" || value == "Not answered" || value == "No certificate" {
			value = UnsetValueStyle.Render(displayOrDash(value))
		} else {
			value = FieldValueStyle.Render(value)
		}

		if focused && f.Editing {
			b.WriteString(FocusedFieldLabelStyle.Render("→ " + field.label + ": "))
			b.WriteString(f.Input.View())
		} else if focused {
			b.WriteString(FocusedFieldLabelStyle.Render("→ " + field.label + ": "))
			b.WriteString(value)
			b.WriteString(fieldHint(field.kind))
		} else {
			b.WriteString(FieldLabelStyle.Render(field.label + ": "))
			b.WriteString(value)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderSubtitle(path))

	help := "↑/↓ field • ←/→ change • enter edit • pgup/pgdn step • q quit"
	if f.Editing {
		help = "enter confirm • esc cancel"
	}

	return RenderApplicationContainer(b.String(), help, f.Width, f.Height)
}

// fieldHint appends the focused field's interaction hint.
func fieldHint(kind fieldKind) string {
	switch kind {
	case fieldNumber:
		return SubtitleStyle.Render("  (±, or hold mouse button to repeat)")
	case fieldChoice, fieldTri:
		return SubtitleStyle.Render("  (←/→)")
	case fieldText:
		return SubtitleStyle.Render("  (enter to edit)")
	}
	return ""
}

func displayOrDash(value string) string {
	if value == "" {
		return "—"
	}
	return value
}
