// Package tui is the local SMS simulator: a terminal view over the
// conversation read model that can reply as a staff member. Replies go
// through the same reconciliation contract as the live webhook.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vigilant-ai/vigilant/internal/conversation"
	"github.com/vigilant-ai/vigilant/internal/domain"
	"github.com/vigilant-ai/vigilant/internal/reconcile"
	"github.com/vigilant-ai/vigilant/internal/store"
)

// appState represents which screen the simulator is on.
type appState int

const (
	stateBoard   appState = iota // conversation board
	stateCompose                 // typing a reply as a staff member
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	awaitingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	fixedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	outboundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	inboundStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

type refreshMsg struct {
	convs []domain.Conversation
	err   error
}

type replySentMsg struct {
	res reconcile.Result
	err error
}

// App is the simulator model. State is re-read from the store on every
// refresh; the TUI holds no authority over persisted data.
type App struct {
	repo store.Repository
	rec  *reconcile.Reconciler

	state  appState
	convs  []domain.Conversation
	cursor int
	input  textinput.Model
	status string
	err    error
	width  int
}

// NewApp creates the simulator over the given store and reconciler.
func NewApp(repo store.Repository, rec *reconcile.Reconciler) *App {
	ti := textinput.New()
	ti.Placeholder = "Type the corrected note..."
	ti.CharLimit = 480
	return &App{repo: repo, rec: rec, input: ti}
}

// Init kicks off the first board refresh.
func (a *App) Init() tea.Cmd {
	return a.refresh()
}

func (a *App) refresh() tea.Cmd {
	return func() tea.Msg {
		convs, err := conversation.Load(context.Background(), a.repo)
		return refreshMsg{convs: convs, err: err}
	}
}

func (a *App) sendReply(address, body string) tea.Cmd {
	return func() tea.Msg {
		res, err := a.rec.Receive(context.Background(), address, body)
		return replySentMsg{res: res, err: err}
	}
}

// Update handles messages and key presses.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case refreshMsg:
		a.err = msg.err
		if msg.err == nil {
			a.convs = msg.convs
			if a.cursor >= len(a.convs) {
				a.cursor = len(a.convs) - 1
			}
			if a.cursor < 0 {
				a.cursor = 0
			}
		}
		return a, nil

	case replySentMsg:
		a.state = stateBoard
		if msg.err != nil {
			a.err = msg.err
			return a, a.refresh()
		}
		switch msg.res.Outcome {
		case reconcile.OutcomeResolved:
			a.status = fmt.Sprintf("Fix received from %s — state updated.", msg.res.StaffName)
		default:
			a.status = "No pending audit found for that number."
		}
		return a, a.refresh()

	case tea.KeyMsg:
		if a.state == stateCompose {
			return a.updateCompose(msg)
		}
		return a.updateBoard(msg)
	}

	return a, nil
}

func (a *App) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.convs)-1 {
			a.cursor++
		}
	case "g":
		a.status = ""
		return a, a.refresh()
	case "enter", "r":
		if a.cursor < len(a.convs) && a.convs[a.cursor].Awaiting() {
			a.state = stateCompose
			a.status = ""
			a.input.Reset()
			return a, a.input.Focus()
		}
		a.status = "Selected conversation is not awaiting a reply."
	}
	return a, nil
}

func (a *App) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		a.state = stateBoard
		a.input.Blur()
		return a, nil
	case "enter":
		body := strings.TrimSpace(a.input.Value())
		if body == "" {
			return a, nil
		}
		a.input.Blur()
		return a, a.sendReply(a.convs[a.cursor].Address, body)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View renders the current screen.
func (a *App) View() string {
	if a.state == stateCompose {
		return a.viewCompose()
	}
	return a.viewBoard()
}

func (a *App) viewBoard() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("VIGILANT AI — SMS Simulator"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(a.headerCounts()))
	b.WriteString("\n\n")

	if a.err != nil {
		b.WriteString(awaitingStyle.Render(fmt.Sprintf("error: %v", a.err)))
		b.WriteString("\n\n")
	}

	if len(a.convs) == 0 {
		b.WriteString(dimStyle.Render("No messages yet. Run a notify pass first."))
		b.WriteString("\n")
	}

	for i := range a.convs {
		a.renderConversation(&b, i)
	}

	if a.status != "" {
		b.WriteString(statusStyle.Render(a.status))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("\n[enter/r] reply  [j/k] move  [g] refresh  [q] quit\n"))

	return b.String()
}

func (a *App) renderConversation(b *strings.Builder, i int) {
	conv := &a.convs[i]

	marker := "  "
	if i == a.cursor {
		marker = cursorStyle.Render("> ")
	}

	badge := dimStyle.Render("—")
	switch conv.Status() {
	case domain.StatusAwaitingReply:
		badge = awaitingStyle.Render("AWAITING REPLY")
	case domain.StatusFixReceived:
		badge = fixedStyle.Render("FIX RECEIVED")
	}

	fmt.Fprintf(b, "%s%s  %s  %s\n", marker, titleStyle.Render(conv.StaffName), dimStyle.Render(conv.Address), badge)

	if rec := conv.Record; rec != nil {
		detail := fmt.Sprintf("    Shift: %s | Client: %s | Score: %s | Risk: %s",
			rec.ShiftID, rec.ClientLabel, rec.AuditScore, rec.RiskLevel)
		b.WriteString(dimStyle.Render(detail))
		b.WriteString("\n")
	}

	for _, msg := range conv.Messages {
		label := outboundStyle.Render("Vigilant")
		if msg.Direction == domain.DirectionInbound {
			label = inboundStyle.Render(conv.StaffName)
		}
		ts := dimStyle.Render(msg.Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(b, "    %s %s\n", label, ts)
		for _, line := range strings.Split(msg.Body, "\n") {
			fmt.Fprintf(b, "      %s\n", line)
		}
	}
	b.WriteString("\n")
}

func (a *App) viewCompose() string {
	conv := &a.convs[a.cursor]

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Replying as %s", conv.StaffName)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s — Shift %s", conv.Address, shiftOf(conv))))
	b.WriteString("\n\n")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("[enter] send  [esc] cancel"))
	b.WriteString("\n")
	return b.String()
}

func shiftOf(conv *domain.Conversation) string {
	if conv.Record == nil {
		return "N/A"
	}
	return conv.Record.ShiftID
}

func (a *App) headerCounts() string {
	var out, in, pending int
	for _, conv := range a.convs {
		if conv.Awaiting() {
			pending++
		}
		for _, msg := range conv.Messages {
			if msg.Direction == domain.DirectionOutbound {
				out++
			} else {
				in++
			}
		}
	}
	return fmt.Sprintf("%d sent | %d replies | %d awaiting", out, in, pending)
}
