// Package scheduler drives time-based sends: per-minute workout
// reminders matched against profile reminder times, and a weekly
// progress summary prompt. All sends are best effort; a failure for
// one recipient never affects the rest.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/m3rciful/coachbot/core/logger"
	"github.com/m3rciful/coachbot/internal/observability"
	"github.com/m3rciful/coachbot/internal/service"
)

const (
	reminderText = "Time to train! Open /workouts for ideas."
	weeklyText   = "How was your week? Log your weight with /weight and check /history."
)

// Scheduler owns the cron runner and its jobs.
type Scheduler struct {
	users     *service.Users
	profiles  *service.Profiles
	transport service.Transport
	metrics   *observability.Metrics
	loc       *time.Location

	cron *cron.Cron
}

// New builds a scheduler in the given timezone.
func New(users *service.Users, profiles *service.Profiles, transport service.Transport, metrics *observability.Metrics, tz string) (*Scheduler, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("scheduler: load timezone %q: %w", tz, err)
	}
	return &Scheduler{
		users:     users,
		profiles:  profiles,
		transport: transport,
		metrics:   metrics,
		loc:       loc,
	}, nil
}

// Start registers the jobs and begins ticking.
func (s *Scheduler) Start() error {
	c := cron.New(cron.WithLocation(s.loc))
	if _, err := c.AddFunc("* * * * *", s.reminderTick); err != nil {
		return fmt.Errorf("scheduler: register reminder job: %w", err)
	}
	if _, err := c.AddFunc("0 9 * * 1", s.weeklyTick); err != nil {
		return fmt.Errorf("scheduler: register weekly job: %w", err)
	}
	s.cron = c
	c.Start()
	logger.LogEvent(context.Background(), logger.Sched, slog.LevelInfo, "scheduler.started",
		slog.String("tz", s.loc.String()),
	)
	return nil
}

// Stop halts ticking and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// reminderTick fires once a minute and sends a reminder to every user
// whose active profile lists the current wall-clock minute.
func (s *Scheduler) reminderTick() {
	ctx := context.Background()
	now := time.Now().In(s.loc).Format("15:04")

	users, err := s.users.List(ctx)
	if err != nil {
		logger.LogEvent(ctx, logger.Sched, slog.LevelError, "reminders.list_failed",
			slog.String("err", err.Error()),
		)
		return
	}

	sent := 0
	for _, u := range users {
		p, err := s.profiles.Active(ctx, u.ID)
		if err != nil {
			continue
		}
		if !containsClock(p.ReminderTimes, now) {
			continue
		}
		if err := s.transport.SendText(ctx, u.ID, reminderText); err != nil {
			logger.LogEvent(ctx, logger.Sched, slog.LevelWarn, "reminder.send_failed",
				slog.Int64("user_id", u.ID),
				slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			)
			continue
		}
		s.metrics.ObserveReminder()
		sent++
	}
	if sent > 0 {
		logger.LogEvent(ctx, logger.Sched, slog.LevelInfo, "reminders.sent",
			slog.Int("sent", sent),
		)
	}
}

// weeklyTick prompts every user for a progress check-in.
func (s *Scheduler) weeklyTick() {
	ctx := context.Background()
	users, err := s.users.List(ctx)
	if err != nil {
		logger.LogEvent(ctx, logger.Sched, slog.LevelError, "weekly.list_failed",
			slog.String("err", err.Error()),
		)
		return
	}
	sent := 0
	for _, u := range users {
		if err := s.transport.SendText(ctx, u.ID, weeklyText); err != nil {
			continue
		}
		sent++
	}
	logger.LogEvent(ctx, logger.Sched, slog.LevelInfo, "weekly.sent",
		slog.Int("sent", sent),
	)
}

func containsClock(times []string, clock string) bool {
	for _, t := range times {
		if t == clock {
			return true
		}
	}
	return false
}
