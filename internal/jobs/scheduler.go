package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Tanupriya0912/Job-portal/internal/fetchpool"
	"github.com/Tanupriya0912/Job-portal/internal/workspace"
)

const sweepSpec = "@every 1m"

// Scheduler drives background refetching for every live workspace and
// drops workspaces that went idle.
type Scheduler struct {
	cron        *cron.Cron
	registry    *workspace.Registry
	tick        time.Duration
	idle        time.Duration
	concurrency int
	log         zerolog.Logger
}

func NewScheduler(registry *workspace.Registry, tick, idle time.Duration, concurrency int, log zerolog.Logger) *Scheduler {
	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{log: log})),
	)
	return &Scheduler{
		cron:        c,
		registry:    registry,
		tick:        tick,
		idle:        idle,
		concurrency: concurrency,
		log:         log,
	}
}

func (s *Scheduler) Start() error {
	if s.tick > 0 {
		if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.tick), s.pollQueries); err != nil {
			return err
		}
	}
	if s.idle > 0 {
		if _, err := s.cron.AddFunc(sweepSpec, s.sweepWorkspaces); err != nil {
			return err
		}
	}

	s.cron.Start()
	return nil
}

// Stop halts the schedule; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) pollQueries() {
	ctx, cancel := context.WithTimeout(context.Background(), s.tick*10)
	defer cancel()
	s.Poll(ctx, time.Now())
}

// Poll runs one query tick over every workspace and returns how many keys
// were refetched.
func (s *Scheduler) Poll(ctx context.Context, now time.Time) int {
	var list []*workspace.Workspace
	s.registry.Each(func(ws *workspace.Workspace) { list = append(list, ws) })

	results := fetchpool.Map(ctx, s.concurrency, list, func(ctx context.Context, ws *workspace.Workspace) (int, error) {
		return ws.Query.Tick(ctx, now), nil
	})
	total := 0
	for _, r := range results {
		total += r.Value
	}
	if total > 0 {
		s.log.Debug().Int("refetched", total).Int("workspaces", len(list)).Msg("query tick")
	}
	return total
}

func (s *Scheduler) sweepWorkspaces() {
	if n := s.registry.Sweep(s.idle); n > 0 {
		s.log.Info().Int("removed", n).Int("live", s.registry.Len()).Msg("idle workspaces swept")
	}
}

type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
