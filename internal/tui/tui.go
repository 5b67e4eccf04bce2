// Package tui is the interactive table for playing blackjack hands by hand.
// The player acts on one hand at a time; split hands queue up behind the
// active one and are played in order.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/shoe"
	"github.com/lox/blackjack/internal/statistics"
)

const logHeight = 8

// TUIModel represents the Bubble Tea model for a blackjack table
type TUIModel struct {
	shoe    *shoe.Shoe
	advisor bot.Bot
	logger  *log.Logger

	keys        keyMap
	help        help.Model
	logViewport viewport.Model

	// hands in play for the current deal; queue[0] is the active hand
	queue []hand.Hand
	done  []hand.Hand

	gameLog    []string
	stats      statistics.Statistics
	reshuffles int
	status     string
	quitting   bool

	width  int
	height int
}

// NewTUIModel creates a table dealing from sh. advisor may be nil; when set
// its suggestion for the active hand is shown alongside the hand.
func NewTUIModel(sh *shoe.Shoe, advisor bot.Bot, logger *log.Logger) *TUIModel {
	vp := viewport.New(60, logHeight)
	vp.SetContent("")

	m := &TUIModel{
		shoe:        sh,
		advisor:     advisor,
		logger:      logger.WithPrefix("tui"),
		keys:        defaultKeyMap(),
		help:        help.New(),
		logViewport: vp,
		reshuffles:  sh.ReshuffleCount(),
	}
	m.deal()
	return m
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return nil
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logViewport.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Hit):
			m.act(hand.Hit)
		case key.Matches(msg, m.keys.Stand):
			m.act(hand.Stand)
		case key.Matches(msg, m.keys.Double):
			m.act(hand.Double)
		case key.Matches(msg, m.keys.Split):
			m.act(hand.Split)
		case key.Matches(msg, m.keys.Deal):
			m.deal()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *TUIModel) draw() deck.Card {
	c := m.shoe.Draw()
	m.stats.CardsDealt++

	if n := m.shoe.ReshuffleCount(); n != m.reshuffles {
		m.reshuffles = n
		m.stats.Sessions++
		m.addLogEntry(InfoStyle.Render(fmt.Sprintf("Shoe reshuffled (%d)", n)))
	}
	return c
}

// deal starts a new two-card hand once the previous deal is finished
func (m *TUIModel) deal() {
	if len(m.queue) > 0 {
		m.status = "Finish the hand in play first"
		return
	}

	m.done = nil
	m.status = ""
	m.stats.Deals++
	h := hand.Deal(m.draw(), m.draw())
	m.queue = []hand.Hand{h}
	m.addLogEntry(fmt.Sprintf("Deal #%d: %s", m.stats.Deals, formatCards(h.Cards())))
	m.settle()
}

// act applies a to the active hand
func (m *TUIModel) act(a hand.Action) {
	if len(m.queue) == 0 {
		m.status = "No hand in play, press n to deal"
		return
	}

	active := m.queue[0]
	if !active.Can(a) {
		m.status = fmt.Sprintf("Cannot %s a %s hand", a, active.State())
		return
	}

	next, err := active.Apply(a, m.draw)
	if err != nil {
		m.status = err.Error()
		m.logger.Error("Action failed", "action", a, "hand", active, "error", err)
		return
	}

	m.status = ""
	m.logger.Debug("Applied action", "action", a, "from", active, "to", next)
	m.addLogEntry(fmt.Sprintf("%s → %s", a, formatHands(next)))
	m.queue = append(next, m.queue[1:]...)
	m.settle()
}

// settle retires finished hands from the front of the queue
func (m *TUIModel) settle() {
	for len(m.queue) > 0 && m.queue[0].IsTerminal() {
		h := m.queue[0]
		m.queue = m.queue[1:]
		m.done = append(m.done, h)
		m.stats.Add(statistics.ResultOf(h))
	}

	if len(m.queue) == 0 {
		m.addLogEntry(SuccessStyle.Render("Deal over: ") + formatHands(m.done))
	}
}

func (m *TUIModel) addLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.GotoBottom()
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Blackjack"))
	b.WriteString("  ")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Shoe: %d decks, %d remaining, %d reshuffles",
		m.shoe.Decks(), m.shoe.Remaining(), m.reshuffles)))
	b.WriteString("\n\n")

	var boxes []string
	for _, h := range m.done {
		boxes = append(boxes, IdleHandStyle.Render(renderHand(h)))
	}
	for i, h := range m.queue {
		style := IdleHandStyle
		if i == 0 {
			style = ActiveHandStyle
		}
		boxes = append(boxes, style.Render(renderHand(h)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n")

	if len(m.queue) > 0 {
		active := m.queue[0]
		b.WriteString(ActionsStyle.Render("Actions: " + formatActions(active.Actions())))
		if m.advisor != nil {
			d := m.advisor.Decide(active)
			b.WriteString(InfoStyle.Render(fmt.Sprintf("  (strategy: %s, %s)", d.Action, d.Reasoning)))
		}
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(ErrorStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(GameLogStyle.Render(m.logViewport.View()))
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Hands: %d  Blackjacks: %d  Busts: %d  Bust rate: %.1f%%",
		m.stats.Hands, m.stats.BlackJacks, m.stats.Busts, m.stats.BustRate()*100)))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// Stats returns the running totals for hands finished at this table
func (m *TUIModel) Stats() statistics.Statistics {
	return m.stats
}

// Hands returns the hands of the current deal: finished ones first, then
// those still in play with the active hand leading.
func (m *TUIModel) Hands() []hand.Hand {
	return append(append([]hand.Hand(nil), m.done...), m.queue...)
}

// Active returns the hand awaiting an action, if any
func (m *TUIModel) Active() (hand.Hand, bool) {
	if len(m.queue) == 0 {
		return hand.Hand{}, false
	}
	return m.queue[0], true
}

// Status returns the last message shown to the player
func (m *TUIModel) Status() string {
	return m.status
}

// GetCapturedLog returns the log entries shown so far
func (m *TUIModel) GetCapturedLog() []string {
	return m.gameLog
}

func renderHand(h hand.Hand) string {
	cards := make([]string, h.Len())
	for i, c := range h.Cards() {
		cards[i] = renderCard(c)
	}
	label := stateStyle(h.State()).Render(h.State().String())
	if h.Doubled() {
		label += InfoStyle.Render(" x2")
	}
	return fmt.Sprintf("%s\n%s\n%s", strings.Join(cards, " "),
		HandInfoStyle.Render(fmt.Sprintf("%d", h.Value())), label)
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = renderCard(c)
	}
	return strings.Join(parts, " ")
}

func formatHands(hands []hand.Hand) string {
	parts := make([]string, len(hands))
	for i, h := range hands {
		parts[i] = fmt.Sprintf("[%s] %s %d", formatCards(h.Cards()), h.State(), h.Value())
	}
	return strings.Join(parts, ", ")
}

func formatActions(actions []hand.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}
