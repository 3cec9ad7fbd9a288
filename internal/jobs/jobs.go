package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Skotchmaster/freshcart/internal/logging"
)

const PurgeTokensSpec = "@hourly"

// Recorder receives the outcome of every run.
type Recorder interface {
	RecordJob(job string, d time.Duration, success bool)
}

type TokenPurger interface {
	PurgeTokens(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron     *cron.Cron
	log      *slog.Logger
	recorder Recorder
	timeout  time.Duration
}

func NewScheduler(log *slog.Logger, rec Recorder) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		log:      log,
		recorder: rec,
		timeout:  time.Minute,
	}
}

// Add registers fn under spec. fn gets a context bounded by the job timeout
// that carries the scheduler's logger.
func (s *Scheduler) Add(spec, name string, fn func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() { s.Run(name, fn) })
	return err
}

func (s *Scheduler) Run(name string, fn func(ctx context.Context) error) {
	l := s.log.With("job", name)
	ctx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), l), s.timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	if s.recorder != nil {
		s.recorder.RecordJob(name, time.Since(start), err == nil)
	}
	if err != nil {
		l.Error("job_error", "error", err)
		return
	}
	l.Debug("job_success", "took", time.Since(start))
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// PurgeTokens removes unusable refresh tokens.
func PurgeTokens(p TokenPurger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		n, err := p.PurgeTokens(ctx)
		if err != nil {
			return err
		}
		logging.FromContext(ctx).Info("purge_refresh_tokens_success", "deleted", n)
		return nil
	}
}
