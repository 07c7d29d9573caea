package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grammeal/prefsync/internal/app/shell"
	"github.com/grammeal/prefsync/internal/cli/styles"
	"github.com/grammeal/prefsync/internal/domain/entity"
)

var resolveJSON bool

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Detect and resolve all preferences once",
	Long: `Run one detection pass over every configured source, resolve the
theme, language, and insets preferences, and print the results along
with the environment projection.

Host application signals are read from the PREFSYNC_LAUNCH_PARAMS
environment variable, which carries the launch fragment a real host
would pass.`,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "emit machine-readable JSON")
}

func runResolve(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	sh, err := app.NewShell(app.Bridge())
	if err != nil {
		return err
	}
	defer sh.Dispose()

	if err := sh.Initialize(); err != nil {
		return err
	}

	if resolveJSON {
		return printResolveJSON(sh)
	}

	renderer := styles.NewResolutionRenderer(app.Theme)
	fmt.Println(styles.Join(
		renderer.RenderTitle("prefsync resolve"),
		renderer.RenderRows(resolutionRows(sh)),
		renderer.RenderSurface(app.Surface.Attributes(), app.Surface.CSSProperties()),
		renderer.RenderErrors(app.Errors.All()),
	))
	return nil
}

func printResolveJSON(sh *shell.Shell) error {
	type resolution struct {
		Value      any    `json:"value"`
		Source     string `json:"source"`
		Confidence string `json:"confidence"`
	}
	theme, language, insets := sh.Theme.State(), sh.Language.State(), sh.Insets.State()
	out, err := json.MarshalIndent(map[string]resolution{
		"theme":    {Value: string(theme.Value), Source: string(theme.Source), Confidence: theme.Confidence.String()},
		"language": {Value: language.Value, Source: string(language.Source), Confidence: language.Confidence.String()},
		"insets":   {Value: insets.Value, Source: string(insets.Source), Confidence: insets.Confidence.String()},
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// resolutionRows formats the three engines' states for display.
func resolutionRows(sh *shell.Shell) []styles.ResolutionRow {
	return []styles.ResolutionRow{
		themeRow(sh.Theme.State()),
		languageRow(sh.Language.State()),
		insetsRow(sh.Insets.State()),
	}
}

func themeRow(res entity.Resolved[entity.Theme]) styles.ResolutionRow {
	return styles.ResolutionRow{
		Kind:       string(entity.KindTheme),
		Value:      string(res.Value),
		Source:     string(res.Source),
		Confidence: res.Confidence.String(),
	}
}

func languageRow(res entity.Resolved[string]) styles.ResolutionRow {
	return styles.ResolutionRow{
		Kind:       string(entity.KindLanguage),
		Value:      res.Value,
		Source:     string(res.Source),
		Confidence: res.Confidence.String(),
	}
}

func insetsRow(res entity.Resolved[entity.Insets]) styles.ResolutionRow {
	v := res.Value
	return styles.ResolutionRow{
		Kind:       string(entity.KindInsets),
		Value:      fmt.Sprintf("top=%g bottom=%g left=%g right=%g", v.Top, v.Bottom, v.Left, v.Right),
		Source:     string(res.Source),
		Confidence: res.Confidence.String(),
	}
}
