package dashboard

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func TestSchedulerJobs(t *testing.T) {
	sender := &recordingSender{}
	s := NewScheduler(sender, time.UTC)
	require.NoError(t, s.Register(5))

	entries := s.cron.Entries()
	require.Len(t, entries, 3)

	for _, e := range entries {
		e.Job.Run()
	}
	require.Equal(t, []tea.Msg{hourTickMsg{}, midnightMsg{}, dataCheckMsg{}}, sender.msgs)

	lateEvening := time.Date(2026, 6, 10, 23, 30, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 6, 11, 1, 0, 0, 0, time.UTC), entries[0].Schedule.Next(lateEvening))
	require.Equal(t, time.Date(2026, 6, 11, 0, 0, 0, 0, time.UTC), entries[1].Schedule.Next(lateEvening))
	require.Equal(t, lateEvening.Add(5*time.Minute), entries[2].Schedule.Next(lateEvening))

	noon := time.Date(2026, 6, 10, 12, 10, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 6, 10, 13, 0, 0, 0, time.UTC), entries[0].Schedule.Next(noon))
}

func TestSchedulerRejectsBadFrequency(t *testing.T) {
	s := NewScheduler(&recordingSender{}, nil)
	require.Error(t, s.Register(0))
	require.Empty(t, s.cron.Entries())
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewScheduler(&recordingSender{}, time.UTC)
	require.NoError(t, s.Register(1))
	s.Start()
	s.Stop()
}
