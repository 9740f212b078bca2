package ui

import lipgloss "charm.land/lipgloss/v2"

// Theme maps the countdown style-tag vocabulary onto terminal styles. Tags on
// the container pick the clock and message styles; the stress tag on the text
// sink switches the message to the Stress style.
type Theme struct {
	Header       lipgloss.Style
	Status       lipgloss.Style
	Muted        lipgloss.Style
	ClockFrame   lipgloss.Style
	ClockCalm    lipgloss.Style
	ClockWarn    lipgloss.Style
	ClockHurry   lipgloss.Style
	ClockOver    lipgloss.Style
	MessageCalm  lipgloss.Style
	MessageWarn  lipgloss.Style
	MessageHurry lipgloss.Style
	MessageOver  lipgloss.Style
	Stress       lipgloss.Style
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
}

func DefaultTheme() Theme {
	return ThemeForVariant("boardroom")
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "retro_terminal":
		return retroTerminalTheme()
	default:
		return boardroomTheme()
	}
}

// clockStyleForTags picks the most severe container tag present. Absence of
// any known tag means the calm presentation.
func (t Theme) clockStyleForTags(tags []string) lipgloss.Style {
	switch highestTag(tags) {
	case "all-ends":
		return t.ClockOver
	case "hurry-up":
		return t.ClockHurry
	case "warn-ya":
		return t.ClockWarn
	}
	return t.ClockCalm
}

func (t Theme) messageStyleForTags(tags []string) lipgloss.Style {
	switch highestTag(tags) {
	case "all-ends":
		return t.MessageOver
	case "hurry-up":
		return t.MessageHurry
	case "warn-ya":
		return t.MessageWarn
	}
	return t.MessageCalm
}

func highestTag(tags []string) string {
	rank := map[string]int{"warn-ya": 1, "hurry-up": 2, "all-ends": 3}
	best := ""
	bestRank := 0
	for _, tag := range tags {
		if r := rank[tag]; r > bestRank {
			best = tag
			bestRank = r
		}
	}
	return best
}

func boardroomTheme() Theme {
	ink := lipgloss.Color("#101726")
	slate := lipgloss.Color("#1D293F")
	powder := lipgloss.Color("#E8F0FF")
	mint := lipgloss.Color("#6FE8A9")
	amber := lipgloss.Color("#FFC857")
	brick := lipgloss.Color("#FF6F6F")
	violet := lipgloss.Color("#C792EA")
	border := lipgloss.Color("#46598C")

	return Theme{
		Header: lipgloss.NewStyle().
			Background(ink).
			Foreground(powder).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Background(slate).
			Foreground(powder).
			Padding(0, 1),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#93A1C4")),
		ClockFrame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 4),
		ClockCalm:    lipgloss.NewStyle().Foreground(mint).Bold(true),
		ClockWarn:    lipgloss.NewStyle().Foreground(amber).Bold(true),
		ClockHurry:   lipgloss.NewStyle().Foreground(brick).Bold(true),
		ClockOver:    lipgloss.NewStyle().Foreground(ink).Background(brick).Bold(true),
		MessageCalm:  lipgloss.NewStyle().Foreground(mint),
		MessageWarn:  lipgloss.NewStyle().Foreground(amber).Bold(true),
		MessageHurry: lipgloss.NewStyle().Foreground(brick).Bold(true),
		MessageOver:  lipgloss.NewStyle().Foreground(brick).Bold(true),
		Stress: lipgloss.NewStyle().
			Foreground(powder).
			Background(brick).
			Bold(true).
			Blink(true),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(violet).
			Background(ink).
			Foreground(powder).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(violet).Bold(true),
	}
}

func retroTerminalTheme() Theme {
	deep := lipgloss.Color("#07150A")
	forest := lipgloss.Color("#12301A")
	glow := lipgloss.Color("#C5F7C4")
	lime := lipgloss.Color("#9CF5A2")
	amber := lipgloss.Color("#E5D47A")
	red := lipgloss.Color("#FF6B6B")

	return Theme{
		Header:       lipgloss.NewStyle().Background(deep).Foreground(glow).Padding(0, 1),
		Status:       lipgloss.NewStyle().Background(forest).Foreground(glow).Padding(0, 1),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("#73A17A")),
		ClockFrame:   lipgloss.NewStyle().BorderStyle(lipgloss.DoubleBorder()).BorderForeground(forest).Padding(1, 4),
		ClockCalm:    lipgloss.NewStyle().Foreground(lime).Bold(true),
		ClockWarn:    lipgloss.NewStyle().Foreground(amber).Bold(true),
		ClockHurry:   lipgloss.NewStyle().Foreground(red).Bold(true),
		ClockOver:    lipgloss.NewStyle().Foreground(deep).Background(red).Bold(true),
		MessageCalm:  lipgloss.NewStyle().Foreground(lime),
		MessageWarn:  lipgloss.NewStyle().Foreground(amber).Bold(true),
		MessageHurry: lipgloss.NewStyle().Foreground(red).Bold(true),
		MessageOver:  lipgloss.NewStyle().Foreground(red).Bold(true),
		Stress: lipgloss.NewStyle().
			Foreground(glow).
			Background(red).
			Bold(true).
			Blink(true),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(amber).
			Background(deep).
			Foreground(glow).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(amber).Bold(true),
	}
}
