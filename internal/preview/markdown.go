package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/vovakirdan/courier-levels/internal/level"
)

// Markdown describes cfg as a markdown document.
func Markdown(cfg level.Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", cfg.Name)
	if cfg.Description != "" {
		fmt.Fprintf(&b, "_%s_\n\n", cfg.Description)
	}

	b.WriteString("| Stat | Value |\n|---|---|\n")
	for _, s := range Stats(cfg) {
		fmt.Fprintf(&b, "| %s | %s |\n", s.Label, s.Value)
	}
	fmt.Fprintf(&b, "| Theme | %s |\n\n", cfg.Theme)

	b.WriteString("## Houses\n\n")
	for i, h := range cfg.Houses {
		fmt.Fprintf(&b, "%d. x=%.0f `%s`\n", i+1, h.X, h.Color)
	}

	b.WriteString("\n## Platforms\n\n")
	b.WriteString("| # | x | height | width | motion |\n|---|---|---|---|---|\n")
	for i, p := range cfg.Platforms {
		motion := "static"
		if p.Moving {
			motion = fmt.Sprintf("moving %.1fx", p.Speed)
		}
		fmt.Fprintf(&b, "| %d | %.0f | %.0f | %.0f | %s |\n", i+1, p.X, p.HeightAboveGround, p.Width, motion)
	}

	b.WriteString("\n## Minimap\n\n```\n")
	b.WriteString(Minimap(cfg, 60))
	b.WriteString("\n```\n")
	return b.String()
}

// RenderMarkdown renders the markdown report for a terminal of the given
// width.
func RenderMarkdown(cfg level.Config, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("preview: cannot create renderer: %w", err)
	}
	out, err := r.Render(Markdown(cfg))
	if err != nil {
		return "", fmt.Errorf("preview: cannot render markdown: %w", err)
	}
	return out, nil
}
