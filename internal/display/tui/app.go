// ABOUTME: Bubble Tea model for the interactive frame viewer
// ABOUTME: Frames arrive as messages; footer shows geometry, fps, quit hint

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/termlens/internal/ascii"
	"github.com/mauromedda/termlens/internal/frame"
	"github.com/mauromedda/termlens/internal/telemetry"
)

// Deps provides the viewer's external dependencies.
type Deps struct {
	AppName  string
	Geometry frame.Geometry
	RampName string
	Tracker  *telemetry.Tracker

	// Cancel stops the whole capture pipeline; invoked on quit keys.
	Cancel context.CancelFunc
}

// frameMsg carries one converted frame into the program. The ack
// channel is closed once the model has accepted the frame, which is
// the sink's commit point.
type frameMsg struct {
	grid frame.Grid
	ack  chan struct{}
}

// tickMsg refreshes the footer's throughput numbers between frames.
type tickMsg time.Time

const footerRefresh = 500 * time.Millisecond

// colorStyles maps each 3-bit color class to its ANSI foreground style.
var colorStyles = func() [8]lipgloss.Style {
	var styles [8]lipgloss.Style
	for i := range styles {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("%d", i)))
	}
	return styles
}()

var footerStyle = lipgloss.NewStyle().Reverse(true)

// Model is the Bubble Tea model for the viewer.
type Model struct {
	deps Deps
	grid frame.Grid
}

// NewModel returns the initial viewer model.
func NewModel(deps Deps) Model {
	return Model{deps: deps}
}

// Init schedules the first footer refresh.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(footerRefresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles frames, footer ticks, and quit keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.grid = msg.grid
		close(msg.ack)
		return m, nil

	case tickMsg:
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.deps.Cancel != nil {
				m.deps.Cancel()
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the current frame plus a one-line status footer.
func (m Model) View() string {
	var b strings.Builder

	for _, row := range m.grid {
		renderRow(&b, row)
		b.WriteByte('\n')
	}

	b.WriteString(m.footer())
	return b.String()
}

// renderRow styles runs of same-colored cells together so each run
// costs one escape pair rather than one per cell.
func renderRow(b *strings.Builder, row []ascii.Cell) {
	var run strings.Builder
	last := ascii.ColorClass(0)
	started := false

	flush := func() {
		if run.Len() > 0 {
			b.WriteString(colorStyles[last].Render(run.String()))
			run.Reset()
		}
	}

	for _, c := range row {
		if started && c.Color != last {
			flush()
		}
		run.WriteString(c.Glyph)
		last = c.Color
		started = true
	}
	flush()
}

func (m Model) footer() string {
	stats := telemetry.Stats{}
	if m.deps.Tracker != nil {
		stats = m.deps.Tracker.Snapshot()
	}
	line := fmt.Sprintf(" termlens  %s  %s  %.1f fps  %d frames  ramp:%s  q quit ",
		m.deps.AppName, m.deps.Geometry, stats.FPS, stats.Frames, m.deps.RampName)
	return footerStyle.Render(line)
}
