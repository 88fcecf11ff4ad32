package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/loyerbxl/rentwizard/internal/config"
	"github.com/loyerbxl/rentwizard/internal/console"
	"github.com/loyerbxl/rentwizard/internal/difficulty"
	"github.com/loyerbxl/rentwizard/internal/grid"
	"github.com/loyerbxl/rentwizard/internal/logging"
	"github.com/loyerbxl/rentwizard/internal/session"
	"github.com/loyerbxl/rentwizard/internal/wizard"
	"github.com/loyerbxl/rentwizard/internal/wizard/tui"
)

// Shared command flags
var (
	locale    string
	startStep string
	lookupURL string
)

// calc command flags
var (
	calcPostalCode int
	calcStreet     string
	calcNumber     string
	calcType       string
	calcSize       float64
	calcBedrooms   int
	calcCondition  string
	calcEnergy     string
	calcGarages    int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "Locale for step URLs (fr, nl, en; default from config)")
	rootCmd.PersistentFlags().StringVar(&lookupURL, "lookup-url", "", "Difficulty-index lookup service URL (default from config)")
	rootCmd.Flags().StringVar(&startStep, "step", "", "Step key to open the wizard at (deep link)")

	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(resetCmd)
}

// wizardCmd launches the interactive wizard explicitly.
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch the interactive wizard",
	Long: `Launch the interactive full-screen wizard.

This is the default command: running 'rentwizard' without arguments
does the same thing.`,
	RunE: runWizard,
}

func init() {
	wizardCmd.Flags().StringVar(&startStep, "step", "", "Step key to open the wizard at (deep link)")
}

// buildSessionManager wires the snapshot store and manager from the
// user configuration.
func buildSessionManager(settings *config.Settings) (*session.Manager, error) {
	dir, err := settings.SessionDir()
	if err != nil {
		return nil, fmt.Errorf("cannot resolve session directory: %w", err)
	}

	opts := session.Options{}
	if settings.Session != nil {
		opts.Debounce = time.Duration(settings.Session.DebounceMs) * time.Millisecond
		opts.MaxAge = time.Duration(settings.Session.MaxAgeHours) * time.Hour
	}

	return session.NewManager(session.NewFileStore(dir), opts), nil
}

// buildLookupClient wires the difficulty-index client from flags and
// configuration.
func buildLookupClient(settings *config.Settings) *difficulty.Client {
	base := lookupURL
	if base == "" && settings.Lookup != nil {
		base = settings.Lookup.BaseURL
	}

	client := difficulty.NewClient(base)
	if settings.Lookup != nil && settings.Lookup.TimeoutSeconds > 0 {
		client.SetTimeout(time.Duration(settings.Lookup.TimeoutSeconds) * time.Second)
	}
	return client
}

func resolveLocale(settings *config.Settings) string {
	if locale != "" {
		return locale
	}
	if settings.Preferences != nil && settings.Preferences.Locale != "" {
		return settings.Preferences.Locale
	}
	return "fr"
}

func runWizard(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	if !console.IsInteractive() {
		return fmt.Errorf("the wizard needs an interactive terminal; use 'rentwizard calc' for scripted use")
	}

	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	manager, err := buildSessionManager(settings)
	if err != nil {
		return err
	}
	defer manager.Close()

	app := tui.NewAppModel(manager, buildLookupClient(settings), resolveLocale(settings), startStep)

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}

// calcCmd runs one calculation non-interactively.
var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate a reference rent without the wizard",
	Long: `Calculate the reference rent for a property in one shot.

The address is resolved against the difficulty-index lookup service,
then the rent band is computed from the regional grid. All property
flags default to the grid's neutral assumptions.`,
	Example: `  # One-bedroom 85 m² apartment in good condition
  rentwizard calc --postal-code 1000 --street "Rue Haute" --number 5 \
      --type apartment --size 85 --bedrooms 1

  # House with an energy certificate
  rentwizard calc --postal-code 1030 --street "Avenue Rogier" --number 12 \
      --type house --size 140 --bedrooms 3 --energy C`,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().IntVar(&calcPostalCode, "postal-code", 0, "Postal code (required)")
	calcCmd.Flags().StringVar(&calcStreet, "street", "", "Street name (required)")
	calcCmd.Flags().StringVar(&calcNumber, "number", "", "Street number (required)")
	calcCmd.Flags().StringVar(&calcType, "type", "apartment", "Property type (studio, apartment, house)")
	calcCmd.Flags().Float64Var(&calcSize, "size", 0, "Living surface in m² (required)")
	calcCmd.Flags().IntVar(&calcBedrooms, "bedrooms", 0, "Number of bedrooms")
	calcCmd.Flags().StringVar(&calcCondition, "condition", "good", "Property condition (poor, good, excellent)")
	calcCmd.Flags().StringVar(&calcEnergy, "energy", "", "PEB energy class (A-G, empty for none)")
	calcCmd.Flags().IntVar(&calcGarages, "garages", 0, "Number of garages or parking spots")

	_ = calcCmd.MarkFlagRequired("postal-code")
	_ = calcCmd.MarkFlagRequired("street")
	_ = calcCmd.MarkFlagRequired("number")
	_ = calcCmd.MarkFlagRequired("size")
}

func runCalc(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	printer := console.NewPrinter(nil)
	printer.PrintHeader("Reference rent", "rentwizard calc", map[string]string{
		"Address": fmt.Sprintf("%d %s %s", calcPostalCode, calcStreet, calcNumber),
		"Type":    fmt.Sprintf("%s, %.0f m², %d bedroom(s)", calcType, calcSize, calcBedrooms),
	})

	client := buildLookupClient(settings)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	env, err := client.Lookup(ctx, calcPostalCode, calcStreet, calcNumber)
	if err != nil {
		printer.PrintError("Address lookup", err, []string{
			"Check your network connection",
			"Verify the lookup service URL in the configuration",
		})
		return fmt.Errorf("lookup failed: %w", err)
	}
	if !env.Success || env.Data == nil {
		msg := "difficulty index unavailable"
		if env.Error != nil {
			msg = *env.Error
		}
		printer.PrintError("Address lookup", fmt.Errorf("%s (%s)", msg, env.Code), []string{
			"Check the postal code and street spelling",
			"The street must be in the Brussels-Capital Region",
		})
		return fmt.Errorf("lookup failed: %s", env.Code)
	}

	result := grid.Calculate(grid.Input{
		PropertyType:    wizard.PropertyType(calcType),
		Size:            calcSize,
		Bedrooms:        calcBedrooms,
		PropertyState:   wizard.Condition(calcCondition),
		EnergyClass:     wizard.EnergyClass(calcEnergy),
		DifficultyIndex: *env.Data,
		Garages:         calcGarages,
	})

	printer.PrintSuccess("Reference rent", []console.Detail{
		{Key: "Median rent", Value: fmt.Sprintf("%.2f €/month", result.MedianRent)},
		{Key: "Expected range", Value: fmt.Sprintf("%.2f € – %.2f €", result.MinRent, result.MaxRent)},
		{Key: "Difficulty index", Value: fmt.Sprintf("%.6f", *env.Data)},
	})

	return nil
}

// resetCmd discards the persisted wizard session.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved wizard session",
	Long: `Discard the persisted wizard session snapshot.

The next wizard launch starts from a blank questionnaire instead of
offering to resume.`,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	manager, err := buildSessionManager(settings)
	if err != nil {
		return err
	}
	manager.Clear()
	manager.Close()

	console.NewPrinter(nil).PrintSuccess("Session cleared", []console.Detail{
		{Key: "Next launch", Value: "starts a fresh questionnaire"},
	})
	return nil
}
