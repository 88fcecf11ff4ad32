package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/loyerbxl/rentwizard/internal/difficulty"
	"github.com/loyerbxl/rentwizard/internal/grid"
	"github.com/loyerbxl/rentwizard/internal/urls"
	"github.com/loyerbxl/rentwizard/internal/wizard"
)

// calcDoneMsg carries the lookup outcome back to the UI goroutine.
type calcDoneMsg struct {
	env *difficulty.Envelope
	err error
}

// ResultsModel renders the reference rent band once the calculation
// has run, or the lookup failure when it has not.
type ResultsModel struct {
	Spinner spinner.Model

	Width  int
	Height int
}

// NewResultsModel creates the results screen model.
func NewResultsModel() ResultsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return ResultsModel{Spinner: s}
}

// startCalculation flags the state as loading and kicks off the
// difficulty-index lookup in the background.
func (m AppModel) startCalculation() (tea.Model, tea.Cmd) {
	m.CurrentScreen = ScreenResults

	loading := true
	m.dispatch(wizard.UpdateCalculationResults{Patch: wizard.CalculationResultsPatch{
		IsLoading:  &loading,
		ClearError: true,
	}})

	p := m.State.PropertyInfo
	lookup := m.Lookup

	return m, tea.Batch(
		m.Results.Spinner.Tick,
		func() tea.Msg {
			env, err := lookup.Lookup(context.Background(), p.PostalCode, p.StreetName, p.StreetNumber)
			return calcDoneMsg{env: env, err: err}
		},
	)
}

// finishCalculation folds the lookup outcome into the state. A failed
// lookup stores the error pair and no rent; a successful one stores the
// index and the calculated band.
func (m AppModel) finishCalculation(msg calcDoneMsg) (tea.Model, tea.Cmd) {
	done := false

	if msg.err != nil {
		m.dispatch(wizard.UpdateCalculationResults{Patch: wizard.CalculationResultsPatch{
			IsLoading: &done,
			Error:     ptr("lookup service unreachable"),
			ErrorCode: ptr(string(difficulty.CodeSystemError)),
		}})
		return m, nil
	}
	if !msg.env.Success || msg.env.Data == nil {
		errText := "difficulty index unavailable"
		if msg.env.Error != nil {
			errText = *msg.env.Error
		}
		m.dispatch(wizard.UpdateCalculationResults{Patch: wizard.CalculationResultsPatch{
			IsLoading: &done,
			Error:     &errText,
			ErrorCode: ptr(string(msg.env.Code)),
		}})
		return m, nil
	}

	m.dispatch(wizard.UpdateCalculationResults{Patch: wizard.CalculationResultsPatch{
		DifficultyIndex: msg.env.Data,
	}})

	result := grid.Calculate(grid.InputFromState(m.State))
	m.dispatch(wizard.UpdateCalculationResults{Patch: wizard.CalculationResultsPatch{
		MedianRent: &result.MedianRent,
		MinRent:    &result.MinRent,
		MaxRent:    &result.MaxRent,
		IsLoading:  &done,
		ClearError: true,
	}})
	m.dispatch(wizard.SetCurrentPage{Page: wizard.PageResults})

	return m, nil
}

// updateResultsScreen handles input on the results screen.
func (m AppModel) updateResultsScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.State.CalculationResults.IsLoading {
			var cmd tea.Cmd
			m.Results.Spinner, cmd = m.Results.Spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m.quit()

		case "r":
			// Retry the lookup after a failure.
			if !m.State.CalculationResults.IsLoading {
				return m.startCalculation()
			}

		case "e", "esc", "pgup":
			// Back to the address step to correct the input.
			m.dispatch(wizard.SetCurrentPage{Page: wizard.PageCalculator})
			return m.gotoStep(m.State.CurrentStep - 1)
		}
	}

	return m, nil
}

// View renders the results screen.
func (r ResultsModel) View(s wizard.State, path string) string {
	var b strings.Builder
	b.WriteString(RenderTitle("Your reference rent"))
	b.WriteString("\n")

	results := s.CalculationResults

	switch {
	case results.IsLoading:
		b.WriteString(r.Spinner.View())
		b.WriteString(" Looking up your street in the Brussels rent grid...\n")

	case results.Error != nil:
		b.WriteString(renderCalculationError(results))

	case results.MedianRent != nil:
		b.WriteString(renderRentBand(s))

	default:
		b.WriteString(RenderSubtitle("No calculation yet."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderSubtitle(path))

	help := "r recalculate • e edit answers • q quit"
	if results.IsLoading {
		help = "q quit"
	}
	return RenderApplicationContainer(b.String(), help, r.Width, r.Height)
}

// renderRentBand renders the band plus the comparison verdict.
func renderRentBand(s wizard.State) string {
	results := s.CalculationResults

	band := fmt.Sprintf("Reference rent:  %.2f €/month\n", *results.MedianRent)
	band += fmt.Sprintf("Expected range:  %.2f € – %.2f €", *results.MinRent, *results.MaxRent)

	out := RentBandStyle.Render(band) + "\n"

	if results.DifficultyIndex != nil {
		out += RenderSubtitle(fmt.Sprintf("Neighbourhood difficulty index: %.4f", *results.DifficultyIndex)) + "\n"
	}

	if verdict := rentVerdict(s.RentalInfo.ActualRent, results); verdict != "" {
		out += "\n" + verdict + "\n"
	}

	out += "\n" + RenderSubtitle("Methodology: "+urls.GridMethodology) + "\n"
	return out
}

// rentVerdict compares the tenant's declared rent against the band.
// An unparseable or absent rent yields no verdict.
func rentVerdict(actualRent string, results wizard.CalculationResults) string {
	actual, err := strconv.ParseFloat(strings.TrimSpace(actualRent), 64)
	if err != nil || actual <= 0 {
		return ""
	}

	switch {
	case actual > *results.MaxRent:
		return WarningBoxStyle.Render(fmt.Sprintf(
			"Your rent of %.2f € is above the expected range.\nMediation may help: %s", actual, urls.MediationService))
	case actual < *results.MinRent:
		return RenderInfo(fmt.Sprintf("Your rent of %.2f € is below the expected range.", actual))
	default:
		return RenderSuccess(fmt.Sprintf("Your rent of %.2f € is within the expected range.", actual))
	}
}

// renderCalculationError maps lookup failure codes to guidance.
func renderCalculationError(results wizard.CalculationResults) string {
	msg := "The calculation failed."
	if results.Error != nil {
		msg = *results.Error
	}

	out := ErrorBoxStyle.Render("✗ "+msg) + "\n\n"

	if results.ErrorCode != nil {
		switch difficulty.Code(*results.ErrorCode) {
		case difficulty.CodeNotFound:
			out += "The address was not found in the reference database.\n"
			out += "  • Check the postal code and street spelling\n"
			out += "  • The street must be in the Brussels-Capital Region\n"
		case difficulty.CodeInsufficientQuery:
			out += "The address is incomplete.\n"
			out += "  • Postal code, street name and number are all required\n"
		case difficulty.CodeMultipleResults:
			out += "The address matched several streets; add more detail.\n"
		default:
			out += "The lookup service had a problem; try again in a moment.\n"
		}
	}

	return out
}
