// Package reminders scans the medication schedule and pushes a
// notification shortly before each dose is due.
package reminders

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/gmsas95/healthmate/internal/meds"
	"github.com/gmsas95/healthmate/internal/metrics"
	"github.com/gmsas95/healthmate/internal/schedule"
)

// Notifier delivers a reminder message to the user.
type Notifier interface {
	Notify(message string) error
}

// Runner checks once a minute for doses coming due within the lead
// window and notifies each at most once per day.
type Runner struct {
	store       *meds.Store
	notifier    Notifier
	clock       schedule.Clock
	leadMinutes int
	logger      *zap.Logger
	metrics     *metrics.Metrics

	cron *cron.Cron

	mu       sync.Mutex
	notified map[string]bool
	day      string
}

func NewRunner(store *meds.Store, notifier Notifier, clock schedule.Clock, leadMinutes int, logger *zap.Logger, m *metrics.Metrics) *Runner {
	if clock == nil {
		clock = schedule.SystemClock()
	}
	if m == nil {
		m = metrics.Default()
	}
	return &Runner{
		store:       store,
		notifier:    notifier,
		clock:       clock,
		leadMinutes: leadMinutes,
		logger:      logger,
		metrics:     m,
		notified:    make(map[string]bool),
	}
}

// Start schedules the minute scan. Stop must be called on shutdown.
func (r *Runner) Start() error {
	r.cron = cron.New()
	if _, err := r.cron.AddFunc("* * * * *", r.Scan); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("Reminder runner started", zap.Int("lead_minutes", r.leadMinutes))
	return nil
}

func (r *Runner) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}

// Scan runs one pass: find unset doses due within the lead window and
// notify any not already reminded today. Delivery failures are logged
// and dropped; the dose stays eligible for the next pass.
func (r *Runner) Scan() {
	now := r.clock.Now()
	day := schedule.WeekdayOf(now).String()
	from := meds.MinuteOfDay(now)
	to := from + r.leadMinutes

	doses, err := r.store.UpcomingForDay(day, from, to)
	if err != nil {
		r.logger.Error("Reminder scan failed", zap.Error(err))
		return
	}

	r.mu.Lock()
	if r.day != day {
		r.day = day
		r.notified = make(map[string]bool)
	}
	var due []meds.DoseRecord
	for _, d := range doses {
		key := fmt.Sprintf("%d", d.ID)
		if !r.notified[key] {
			due = append(due, d)
		}
	}
	r.mu.Unlock()

	for _, d := range due {
		msg := fmt.Sprintf("Medication reminder: %s %s %s at %s", d.Name, d.Strength, d.Unit, d.Time)
		if err := r.notifier.Notify(msg); err != nil {
			r.logger.Warn("Reminder delivery failed",
				zap.Int64("dose_id", d.ID),
				zap.String("medication", d.Name),
				zap.Error(err),
			)
			r.metrics.RecordReminder(false)
			continue
		}

		r.mu.Lock()
		r.notified[fmt.Sprintf("%d", d.ID)] = true
		r.mu.Unlock()

		r.metrics.RecordReminder(true)
		r.logger.Info("Reminder sent",
			zap.Int64("dose_id", d.ID),
			zap.String("medication", d.Name),
			zap.String("time", d.Time),
		)
	}
}
