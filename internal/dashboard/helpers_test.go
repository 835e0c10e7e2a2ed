package dashboard

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/pricedisplay/internal/config"
	"github.com/tOgg1/pricedisplay/internal/prices"
	"github.com/tOgg1/pricedisplay/internal/screen"
)

// isolate points config lookup at an empty home and clears PRICEDISPLAY_*
// variables for the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, config.EnvPrefix+"_") {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
	return dir
}

func testOptions(t *testing.T) config.Options {
	t.Helper()
	isolate(t)
	loader := config.NewLoader()
	loader.Set("data.source", "prices.json")
	_, err := loader.Load()
	require.NoError(t, err)
	return loader.Options()
}

type fakeFetcher struct {
	daily prices.Daily
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(context.Context) (prices.Daily, error) {
	f.calls++
	return f.daily, f.err
}

func flat(cents int64) prices.Series {
	s := prices.Nulls(prices.HoursInDay)
	for i := range s {
		s[i] = prices.Price(decimal.NewFromInt(cents))
	}
	return s
}

func daily(today, tomorrow prices.Series) prices.Daily {
	d := prices.EmptyDaily()
	d.Today = today
	if tomorrow != nil {
		d.Tomorrow = tomorrow
	}
	return d
}

func clock(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 10, hour, 30, 0, 0, time.UTC)
	}
}

func newTestModel(t *testing.T, hour int, d prices.Daily, fetcher Fetcher) *Model {
	t.Helper()
	m, err := NewModel(context.Background(), ModelConfig{
		Options: testOptions(t),
		Fetcher: fetcher,
		Theme:   screen.DefaultTheme,
		Daily:   d,
		Height:  24,
		Width:   80,
		Now:     clock(hour),
	})
	require.NoError(t, err)
	return m
}

func screenText(m *Model) string {
	return strings.Join(m.canvas.Lines(), "\n")
}

func applyUpdate(t *testing.T, m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(*Model)
	require.True(t, ok)
	return updated, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
