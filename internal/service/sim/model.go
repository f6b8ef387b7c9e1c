package sim

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cahamo/gate-alarm/internal/clock"
	"github.com/cahamo/gate-alarm/internal/config"
	"github.com/cahamo/gate-alarm/internal/controller"
	"github.com/cahamo/gate-alarm/internal/display"
	"github.com/cahamo/gate-alarm/internal/domain/gate"
	"github.com/cahamo/gate-alarm/internal/keypad"
)

// tickMsg drives one poll cycle of the core.
type tickMsg time.Time

var (
	lcdLitStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("148"))

	lcdDarkStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Foreground(lipgloss.Color("242")).
			Background(lipgloss.Color("235"))

	ledOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	ledOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// model is the bubbletea model wrapping one gate alarm core.
type model struct {
	ctx  context.Context
	cfg  *config.Config
	clk  clock.Clock
	ctrl *controller.Controller
	out  controller.Outputs
}

func newModel(ctx context.Context, cfg *config.Config, clk clock.Clock, ctrl *controller.Controller) model {
	return model{
		ctx:  ctx,
		cfg:  cfg,
		clk:  clk,
		ctrl: ctrl,
	}
}

// Init schedules the first poll tick.
func (m model) Init() tea.Cmd {
	return tick(m.cfg.PollInterval)
}

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update feeds keyboard input into the core and polls it on every tick.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch s := msg.String(); s {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "o", "g":
			m.ctrl.Enqueue(gate.Event{Kind: gate.EventGateOpened})
		default:
			if len(s) == 1 {
				if key := keypad.Parse(rune(s[0])); key.Kind != keypad.KindInvalid {
					m.ctrl.Enqueue(gate.Event{Kind: gate.EventKey, Key: key})
				}
			}
		}
	case tickMsg:
		m.out = m.ctrl.Poll(m.ctx, m.clk.Now())

		return m, tick(m.cfg.PollInterval)
	}

	return m, nil
}

// View draws the LCD, the three indicators and the key legend.
func (m model) View() string {
	lcd := lcdDarkStyle
	if m.out.Backlight {
		lcd = lcdLitStyle
	}

	screen := lcd.Render(
		centerLine(m.out.Frame.Line1) + "\n" + centerLine(m.out.Frame.Line2),
	)

	indicators := strings.Join([]string{
		led("BUZZER", m.out.Buzzer),
		led("ALARM", m.out.AlarmLED),
		led("HEARTBEAT", m.out.HeartbeatLED),
	}, "   ")

	status := labelStyle.Render(
		"gate: " + m.ctrl.Gate().String() +
			"   alarm: " + m.ctrl.Alarm().String() +
			"   suspension: " + m.ctrl.Suspension().String(),
	)

	help := helpStyle.Render(
		"o open gate · 0-9 enter minutes · # commit (# alone: suspend indefinitely)\n" +
			"0# cancel suspension · * reset after closing the gate · q quit",
	)

	return lipgloss.JoinVertical(lipgloss.Left, screen, indicators, status, help) + "\n"
}

// led renders one indicator lamp with its label.
func led(label string, on bool) string {
	dot := ledOffStyle.Render("○")
	if on {
		dot = ledOnStyle.Render("●")
	}

	return dot + " " + labelStyle.Render(label)
}

// centerLine pads a frame line to the display width, mirroring how the
// reference build centers text on its character LCD.
func centerLine(s string) string {
	if len(s) >= display.Width {
		return s[:display.Width]
	}

	left := (display.Width - len(s)) / 2

	return strings.Repeat(" ", left) + s + strings.Repeat(" ", display.Width-left-len(s))
}
