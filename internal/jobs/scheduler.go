package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/eusluer/bosphorus-fellas-api/internal/service"
)

type Scheduler struct {
	cron   *cron.Cron
	events *service.EventService
	log    zerolog.Logger
}

func NewScheduler(events *service.EventService, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:   c,
		events: events,
		log:    log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 */1 * * *", s.closeExpiredEvents); err != nil { // hourly sweep
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() context.CancelFunc {
	_, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go func() {
		s.cron.Stop()
		cancel()
	}()
	return cancel
}

func (s *Scheduler) closeExpiredEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	closed, err := s.events.CloseExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("close expired events failed")
		return
	}
	if closed > 0 {
		s.log.Info().Int64("closed", closed).Msg("expired events deactivated")
	}
}
