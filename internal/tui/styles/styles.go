package styles

import "github.com/charmbracelet/lipgloss"

type Style struct {
	Color     Color
	Doc       lipgloss.Style
	TitleBar  lipgloss.Style
	StatusBar lipgloss.Style
	Winner    lipgloss.Style
	Stopped   lipgloss.Style
	Racing    lipgloss.Style
	Table     lipgloss.Style
	Subtle    lipgloss.Style
}

type Color struct {
	Sky               lipgloss.Color
	Sand              lipgloss.Color
	Dune              lipgloss.Color
	Gold              lipgloss.Color
	Red               lipgloss.Color
	Green             lipgloss.Color
	Light             lipgloss.Color
	Dark              lipgloss.Color
	Subtle            lipgloss.AdaptiveColor
	PrimaryForeground lipgloss.AdaptiveColor
}

func Default() *Style {
	sky := lipgloss.Color("#87CEEB")
	sand := lipgloss.Color("#F4A460")
	dune := lipgloss.Color("#D2691E")
	gold := lipgloss.Color("#FFD700")
	red := lipgloss.Color("#CF040E")
	green := lipgloss.Color("#17C81D")
	light := lipgloss.Color("#D1D4DD")
	dark := lipgloss.Color("#383838")
	subtle := lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	primaryForeground := lipgloss.AdaptiveColor{Light: "#383838", Dark: "#D9DCCF"}

	return &Style{
		Color: Color{
			// Desert colors
			Sky:  sky,
			Sand: sand,
			Dune: dune,
			Gold: gold,
			// Thematic colors
			Red:               red,
			Green:             green,
			Light:             light,
			Dark:              dark,
			Subtle:            subtle,
			PrimaryForeground: primaryForeground,
		},
		Doc: lipgloss.NewStyle().Margin(1, 1),
		// header styles
		TitleBar: lipgloss.NewStyle().
			Align(lipgloss.Center).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(sand).
			Foreground(primaryForeground),
		StatusBar: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(primaryForeground),
		Winner:  lipgloss.NewStyle().Bold(true).Foreground(gold),
		Stopped: lipgloss.NewStyle().Foreground(red),
		Racing:  lipgloss.NewStyle().Foreground(green),
		Table:   lipgloss.NewStyle().AlignHorizontal(lipgloss.Center),
		Subtle:  lipgloss.NewStyle().Foreground(subtle),
	}
}
