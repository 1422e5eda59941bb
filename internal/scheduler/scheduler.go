// Package scheduler runs the journal's background jobs on cron schedules.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job represents a scheduled job
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs
type Scheduler struct {
	cron *cron.Cron
	log  *zap.SugaredLogger
}

// New creates a new scheduler. Schedules use the standard five-field cron
// syntax plus descriptors such as "@daily" and "@every 15m". A job still
// running when its next slot arrives is skipped, and a panicking job is
// recovered and logged.
func New(log *zap.SugaredLogger) *Scheduler {
	log = log.With("component", "scheduler")
	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		log:  log,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

// AddJob registers a job on a cron schedule. An empty schedule leaves the job
// unscheduled.
func (s *Scheduler) AddJob(schedule string, job Job) error {
	if schedule == "" {
		s.log.Infow("job disabled", "job", job.Name())
		return nil
	}

	_, err := s.cron.AddFunc(schedule, func() {
		s.log.Debugw("running job", "job", job.Name())

		if err := job.Run(); err != nil {
			s.log.Errorw("job failed", "job", job.Name(), "error", err)
		} else {
			s.log.Debugw("job completed", "job", job.Name())
		}
	})
	if err != nil {
		return err
	}

	s.log.Infow("job registered", "schedule", schedule, "job", job.Name())
	return nil
}

// Entries returns the number of scheduled jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// RunNow executes a job immediately (outside schedule)
func (s *Scheduler) RunNow(job Job) error {
	s.log.Infow("running job immediately", "job", job.Name())
	return job.Run()
}

// cronLogger adapts zap to the logger cron's job wrappers expect.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
