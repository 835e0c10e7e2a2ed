package dashboard

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tOgg1/pricedisplay/internal/config"
	"github.com/tOgg1/pricedisplay/internal/display"
	"github.com/tOgg1/pricedisplay/internal/logging"
	"github.com/tOgg1/pricedisplay/internal/prices"
	"github.com/tOgg1/pricedisplay/internal/screen"
)

// Tomorrow's prices are published in the early afternoon; data checks only
// fetch after this hour.
const publishHour = 13

// Fetcher retrieves the three-day price window.
type Fetcher interface {
	Fetch(ctx context.Context) (prices.Daily, error)
}

type (
	hourTickMsg  struct{}
	midnightMsg  struct{}
	dataCheckMsg struct{}

	fetchedMsg struct {
		daily  prices.Daily
		err    error
		forced bool
	}
)

// ModelConfig holds what the dashboard model is built from.
type ModelConfig struct {
	Options config.Options
	Fetcher Fetcher
	Theme   screen.Theme
	Daily   prices.Daily
	Height  int
	Width   int
	Now     func() time.Time
}

// Model is the dashboard program. It owns the canvas the price display draws
// on and redraws it when the scheduler or a fetch says so.
type Model struct {
	ctx     context.Context
	options config.Options
	fetcher Fetcher
	theme   screen.Theme
	now     func() time.Time
	logger  zerolog.Logger

	daily    prices.Daily
	fetching bool

	height    int
	width     int
	canvas    *screen.Canvas
	display   *display.PriceDisplay
	layoutErr error
}

// NewModel lays out the display for the given terminal size and draws the
// initial prices. A terminal too small for any layout is an error.
func NewModel(ctx context.Context, cfg ModelConfig) (*Model, error) {
	if cfg.Fetcher == nil {
		return nil, errors.New("dashboard needs a price fetcher")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	m := &Model{
		ctx:     ctx,
		options: cfg.Options,
		fetcher: cfg.Fetcher,
		theme:   cfg.Theme,
		now:     now,
		logger:  logging.Component(logging.ComponentDashboard),
		daily:   cfg.Daily,
	}
	if err := m.layout(cfg.Height, cfg.Width); err != nil {
		return nil, err
	}
	return m, nil
}

// Layout returns the layout in use.
func (m *Model) Layout() display.Layout {
	return m.display.Layout()
}

func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("pricedisplay")
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(typed.Height, typed.Width)
	case tea.KeyMsg:
		switch typed.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.fetch(true)
		}
	case hourTickMsg:
		m.redraw()
	case midnightMsg:
		m.daily = m.daily.Rollover()
		m.logger.Info().Msg("day rolled over")
		m.redraw()
	case dataCheckMsg:
		if m.needsTomorrow() {
			return m, m.fetch(false)
		}
	case fetchedMsg:
		m.applyFetch(typed)
	}
	return m, nil
}

func (m *Model) View() string {
	if m.layoutErr != nil {
		return m.layoutErr.Error()
	}
	return m.canvas.Render(m.theme)
}

// layout rebuilds the canvas and the display for a new terminal size.
func (m *Model) layout(height, width int) error {
	canvas := screen.NewCanvas(height, width)
	d, err := display.NewPriceDisplay(display.Point{}, display.Env{
		Options: m.options,
		Surface: canvas,
		Now:     m.now,
	})
	if err != nil {
		return err
	}
	m.height, m.width = height, width
	m.canvas, m.display = canvas, d
	m.redraw()
	return nil
}

func (m *Model) resize(height, width int) {
	if m.layoutErr == nil && height == m.height && width == m.width {
		return
	}
	if err := m.layout(height, width); err != nil {
		m.logger.Warn().Err(err).Int("height", height).Int("width", width).Msg("terminal resized below the display size")
		m.layoutErr = err
		return
	}
	m.layoutErr = nil
}

func (m *Model) redraw() {
	m.display.Update(m.daily)
}

func (m *Model) needsTomorrow() bool {
	return m.now().Hour() > publishHour && !m.daily.Tomorrow.Stats().HasData && !m.fetching
}

func (m *Model) fetch(forced bool) tea.Cmd {
	if m.fetching {
		return nil
	}
	m.fetching = true
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		daily, err := fetcher.Fetch(ctx)
		return fetchedMsg{daily: daily, err: err, forced: forced}
	}
}

// applyFetch stores fetched prices. A scheduled check only redraws once
// tomorrow's prices are in; a failed fetch keeps the previous frame.
func (m *Model) applyFetch(msg fetchedMsg) {
	m.fetching = false
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Msg("price update failed")
		return
	}
	m.daily = msg.daily
	tomorrow := m.daily.Tomorrow.Stats().HasData
	m.logger.Info().Bool("tomorrow", tomorrow).Bool("forced", msg.forced).Msg("prices updated")
	if msg.forced || tomorrow {
		m.redraw()
	}
}
