package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ecell/portal-api/internal/config"
)

const jobTimeout = time.Minute

type EventCompleter interface {
	CompletePastEvents(ctx context.Context) (int64, error)
}

// Scheduler runs the periodic maintenance jobs of the portal in UTC.
type Scheduler struct {
	cron   *cron.Cron
	events EventCompleter
}

func NewScheduler(conf *config.SchedulerConfig, events EventCompleter) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	s := &Scheduler{
		cron:   c,
		events: events,
	}

	if _, err := s.cron.AddFunc(conf.CompletePastEvents, s.CompletePastEvents); err != nil {
		return nil, fmt.Errorf("s.cron.AddFunc(%q) -> %w", conf.CompletePastEvents, err)
	}

	return s, nil
}

// CompletePastEvents is the job body, exported so it can be run on demand.
func (s *Scheduler) CompletePastEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.events.CompletePastEvents(ctx)
	if err != nil {
		zap.L().Error("failed to complete past events", zap.Error(err))
		return
	}

	if n > 0 {
		zap.L().Info("marked past events as completed", zap.Int64("count", n))
	}
}

func (s *Scheduler) Start() {
	zap.L().Info("starting scheduler", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	zap.L().Info("scheduler stopped")
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
