// Package preview renders levels for terminals: a styled summary card, an
// ASCII minimap and a markdown report.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/courier-levels/internal/level"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	descStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("250"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	thiefOnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("203")).
			Padding(0, 1)

	thiefOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("114")).
			Padding(0, 1)
)

// Stat is one labelled value of a level summary.
type Stat struct {
	Label string
	Value string
}

// Stats lists the headline numbers of a level in display order.
func Stats(cfg level.Config) []Stat {
	thief := "off"
	if cfg.ThiefEnabled {
		thief = fmt.Sprintf("on (speed %.1f)", cfg.ThiefSpeed)
	}
	moving := 0
	for _, p := range cfg.Platforms {
		if p.Moving {
			moving++
		}
	}

	return []Stat{
		{"Houses", fmt.Sprint(len(cfg.Houses))},
		{"Ice", fmt.Sprintf("%d blocks at %.1fx", cfg.IceCount, cfg.IceSpeed)},
		{"Deliveries", fmt.Sprint(cfg.DeliveriesNeeded)},
		{"Platforms", fmt.Sprintf("%d (%d moving)", len(cfg.Platforms), moving)},
		{"World", fmt.Sprintf("%d wide", cfg.WorldWidth)},
		{"Power-ups", fmt.Sprintf("%.0f%%", cfg.PowerUpChance*100)},
		{"Thief", thief},
	}
}

// Summary renders a bordered card with the level's name, description and
// headline stats.
func Summary(cfg level.Config) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(cfg.Name))
	b.WriteString("\n")
	if cfg.Description != "" {
		b.WriteString(descStyle.Render(cfg.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, s := range Stats(cfg) {
		if s.Label == "Thief" {
			continue
		}
		b.WriteString(labelStyle.Render(s.Label))
		b.WriteString(valueStyle.Render(s.Value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if cfg.ThiefEnabled {
		b.WriteString(thiefOnStyle.Render("THIEF ACTIVE"))
	} else {
		b.WriteString(thiefOffStyle.Render("NO THIEF"))
	}

	return cardStyle.Render(b.String())
}

// Card combines the summary and a minimap of the given width.
func Card(cfg level.Config, width int) string {
	return lipgloss.JoinVertical(lipgloss.Left, Summary(cfg), Minimap(cfg, width))
}
