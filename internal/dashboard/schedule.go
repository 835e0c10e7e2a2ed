package dashboard

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tOgg1/pricedisplay/internal/logging"
)

// Redraws happen on the hour. Midnight has its own job so the rollover
// always lands before the first redraw of the new day.
const (
	hourlySpec   = "0 1-23 * * *"
	midnightSpec = "0 0 * * *"
)

// Sender delivers messages to the running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Scheduler fires the redraw, rollover and data check messages.
type Scheduler struct {
	cron   *cron.Cron
	sender Sender
	logger zerolog.Logger
}

// NewScheduler creates a Scheduler running in loc.
func NewScheduler(sender Sender, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	logger := logging.Component(logging.ComponentScheduler)
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc), cron.WithLogger(cronLogger{logger: logger})),
		sender: sender,
		logger: logger,
	}
}

// Register adds the hourly redraw, the midnight rollover and the data check
// every updateFrequency minutes.
func (s *Scheduler) Register(updateFrequency int) error {
	if updateFrequency < 1 {
		return fmt.Errorf("update frequency must be at least one minute, got %d", updateFrequency)
	}

	jobs := []struct {
		name string
		spec string
		msg  tea.Msg
	}{
		{name: "hourly redraw", spec: hourlySpec, msg: hourTickMsg{}},
		{name: "midnight rollover", spec: midnightSpec, msg: midnightMsg{}},
		{name: "data check", spec: fmt.Sprintf("@every %dm", updateFrequency), msg: dataCheckMsg{}},
	}
	for _, job := range jobs {
		msg := job.msg
		if _, err := s.cron.AddFunc(job.spec, func() { s.sender.Send(msg) }); err != nil {
			return fmt.Errorf("register %s: %w", job.name, err)
		}
	}
	return nil
}

// Start runs the jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
}

// cronLogger routes cron's own logging to zerolog.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
