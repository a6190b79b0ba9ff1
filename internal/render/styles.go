package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pranjul332/TrustLens/internal/model"
)

// Styles holds the terminal style set
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Risk     map[model.RiskLevel]lipgloss.Style
	RiskFall lipgloss.Style
	Tier     map[model.DisplayTier]lipgloss.Style
}

// DefaultStyles returns the default style set
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			PaddingTop(1),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#737373")),

		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#737373")).
			Italic(true),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555")),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")),

		Risk: map[model.RiskLevel]lipgloss.Style{
			model.RiskLow:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575")),
			model.RiskMedium:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700")),
			model.RiskHigh:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF8C00")),
			model.RiskCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5555")),
		},
		RiskFall: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#737373")),

		Tier: map[model.DisplayTier]lipgloss.Style{
			model.TierInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
			model.TierWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
			model.TierAlert:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")),
		},
	}
}

// riskStyle picks the style for a risk level, falling back for unknown values
func (s Styles) riskStyle(level model.RiskLevel) lipgloss.Style {
	if style, ok := s.Risk[level]; ok {
		return style
	}
	return s.RiskFall
}
