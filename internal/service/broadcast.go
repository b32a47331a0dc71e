package service

import (
	"context"
	"sync/atomic"

	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/m3rciful/coachbot/core/logger"
	"github.com/m3rciful/coachbot/internal/storage"
)

// Transport delivers outbound messages to a user handle. A failed send
// for one recipient must not affect sends to others.
type Transport interface {
	SendText(ctx context.Context, userID int64, text string) error
}

// Report summarizes one fan-out batch.
type Report struct {
	Sent   int
	Failed int
}

const defaultBroadcastWorkers = 8

// Broadcast fans a message out to every registered user with bounded
// concurrency. Per-recipient failures are isolated and counted; the
// batch itself never fails because one recipient did.
type Broadcast struct {
	users     storage.Users
	transport Transport
	workers   int

	// OnReport, when set, receives the counts of every finished batch.
	OnReport func(Report)
}

// NewBroadcast constructs the broadcast service. workers <= 0 selects
// the default bound.
func NewBroadcast(users storage.Users, transport Transport, workers int) *Broadcast {
	if workers <= 0 {
		workers = defaultBroadcastWorkers
	}
	return &Broadcast{users: users, transport: transport, workers: workers}
}

// SendAll delivers text to all users except the optional sender. It
// returns the per-recipient counts; an error is returned only when the
// recipient list itself cannot be loaded.
func (s *Broadcast) SendAll(ctx context.Context, text string, exclude int64) (Report, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return Report{}, err
	}

	var sent, failed atomic.Int64
	g := &errgroup.Group{}
	g.SetLimit(s.workers)

	for _, u := range users {
		if u.ID == exclude {
			continue
		}
		userID := u.ID
		g.Go(func() error {
			if err := s.transport.SendText(ctx, userID, text); err != nil {
				failed.Add(1)
				logger.LogEvent(ctx, logger.SVCBroadcast, slog.LevelWarn, "broadcast.send_failed",
					slog.Int64("user_id", userID),
					slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
				)
				return nil
			}
			sent.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{Sent: int(sent.Load()), Failed: int(failed.Load())}
	if s.OnReport != nil {
		s.OnReport(report)
	}
	logger.LogEvent(ctx, logger.SVCBroadcast, slog.LevelInfo, "broadcast.done",
		slog.Int("sent", report.Sent),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}
