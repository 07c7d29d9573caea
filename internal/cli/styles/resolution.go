package styles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grammeal/prefsync/internal/application/port"
)

// ResolutionRow is one preference kind's resolved state, pre-formatted
// by the command layer.
type ResolutionRow struct {
	Kind       string
	Value      string
	Source     string
	Confidence string
}

// ResolutionRenderer renders resolved preferences and surface
// projections.
type ResolutionRenderer struct {
	theme *Theme
}

// NewResolutionRenderer creates a renderer bound to a theme.
func NewResolutionRenderer(theme *Theme) *ResolutionRenderer {
	return &ResolutionRenderer{theme: theme}
}

// RenderRows renders the resolution table.
func (r *ResolutionRenderer) RenderRows(rows []ResolutionRow) string {
	kindW, valueW, sourceW := len("KIND"), len("VALUE"), len("SOURCE")
	for _, row := range rows {
		kindW = max(kindW, len(row.Kind))
		valueW = max(valueW, len(row.Value))
		sourceW = max(sourceW, len(row.Source))
	}

	var b strings.Builder
	header := fmt.Sprintf("%-*s  %-*s  %-*s  %s", kindW, "KIND", valueW, "VALUE", sourceW, "SOURCE", "CONFIDENCE")
	b.WriteString(r.theme.Subtle.Render(header))
	b.WriteString("\n")
	for _, row := range rows {
		line := fmt.Sprintf("%-*s  %-*s  %-*s  %s",
			kindW, row.Kind,
			valueW, row.Value,
			sourceW, row.Source,
			row.Confidence,
		)
		b.WriteString(r.theme.Normal.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderSurface renders the projected attributes and CSS properties.
func (r *ResolutionRenderer) RenderSurface(attrs, css map[string]string) string {
	var b strings.Builder
	b.WriteString(r.theme.BoxHeader.Render("Surface"))
	b.WriteString("\n")
	for _, k := range sortedKeys(attrs) {
		b.WriteString(r.theme.Subtle.Render("  attr ") + r.theme.Normal.Render(k+"="+attrs[k]))
		b.WriteString("\n")
	}
	for _, k := range sortedKeys(css) {
		b.WriteString(r.theme.Subtle.Render("  css  ") + r.theme.Normal.Render(k+": "+css[k]))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderErrors renders the collected engine errors.
func (r *ResolutionRenderer) RenderErrors(errs []port.EngineError) string {
	if len(errs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.theme.WarningStyle.Render(fmt.Sprintf("%d issue(s) during detection:", len(errs))))
	b.WriteString("\n")
	for _, e := range errs {
		b.WriteString(r.theme.Subtle.Render("  " + e.Error()))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderError renders a fatal error.
func (r *ResolutionRenderer) RenderError(err error) string {
	return r.theme.ErrorStyle.Render("Error: " + err.Error())
}

// RenderTitle renders a section title.
func (r *ResolutionRenderer) RenderTitle(text string) string {
	return r.theme.Title.Render(text)
}

// RenderBox wraps content in the bordered box style.
func (r *ResolutionRenderer) RenderBox(content string) string {
	return r.theme.Box.Render(content)
}

// Join stacks rendered blocks with blank lines between non-empty ones.
func Join(blocks ...string) string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b != "" {
			out = append(out, b)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
