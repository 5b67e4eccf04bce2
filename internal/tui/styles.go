package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	GameLogStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	HandInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ActiveHandStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FFD700")).
			Padding(0, 1)

	IdleHandStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1)

	ActionsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	RedCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	BlackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

func renderCard(c deck.Card) string {
	if c.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

// stateStyle colours a hand's state by outcome
func stateStyle(s hand.State) lipgloss.Style {
	switch s {
	case hand.BlackJack:
		return SuccessStyle
	case hand.Busted:
		return ErrorStyle
	case hand.Closed:
		return InfoStyle
	default:
		return WarningStyle
	}
}
