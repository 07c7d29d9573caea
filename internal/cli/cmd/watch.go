package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/grammeal/prefsync/internal/cli/model"
	"github.com/grammeal/prefsync/internal/domain/entity"
	"github.com/grammeal/prefsync/internal/infrastructure/config"
	"github.com/grammeal/prefsync/internal/infrastructure/telegram"
)

var watchScenario string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch preference resolution live",
	Long: `Run the engines and display resolved preferences as change events
arrive. System signal changes and config file edits trigger debounced
re-resolution.

With --scenario, a JavaScript file drives a scripted host bridge:
setColorScheme, setLanguage, setThemeParam, setInsets, emit, sleep,
and log are available to simulate a host application's event stream.

Examples:
  prefsync watch
  prefsync watch --scenario dev/theme-flip.js`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchScenario, "scenario", "", "JavaScript file driving a scripted host bridge")
}

func runWatch(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	var bridge *telegram.Bridge
	if watchScenario != "" {
		bridge = telegram.NewHarnessBridge()
	} else {
		bridge = app.Bridge()
	}

	sh, err := app.NewShell(bridge)
	if err != nil {
		return err
	}
	defer sh.Dispose()

	if err := sh.Initialize(); err != nil {
		return err
	}

	// Config edits re-resolve every kind.
	app.Manager.OnConfigChange(func(*config.Config) { sh.TriggerAll() })
	app.Manager.Watch()

	m := model.NewWatch(app.Theme, app.Surface, app.Errors.All, resolutionRows(sh))
	p := tea.NewProgram(m)

	offTheme := sh.Theme.Subscribe(func(res entity.Resolved[entity.Theme]) {
		p.Send(model.PreferenceMsg{Row: themeRow(res)})
	})
	defer offTheme()
	offLanguage := sh.Language.Subscribe(func(res entity.Resolved[string]) {
		p.Send(model.PreferenceMsg{Row: languageRow(res)})
	})
	defer offLanguage()
	offInsets := sh.Insets.Subscribe(func(res entity.Resolved[entity.Insets]) {
		p.Send(model.PreferenceMsg{Row: insetsRow(res)})
	})
	defer offInsets()

	if watchScenario != "" {
		go func() {
			err := telegram.RunScenario(watchScenario, bridge, app.Logger)
			p.Send(model.ScenarioDoneMsg{Err: err})
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
