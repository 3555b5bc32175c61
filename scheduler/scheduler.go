package scheduler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/govindrajkumar/easy-lease-sub000/app/config"
	"github.com/govindrajkumar/easy-lease-sub000/app/reminder"
)

// Scheduler runs the rent reminder sweep on its cron schedule
type Scheduler struct {
	cron     *cron.Cron
	reminder reminder.Service
	ctx      context.Context
	now      func() time.Time
}

// New create a scheduler for the sweep using the configured schedule and timezone
func New(ctx context.Context, conf *config.ReminderConfig, svc reminder.Service) (*Scheduler, error) {
	loc := time.UTC
	if conf.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(conf.Timezone)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid reminder timezone %q", conf.Timezone)
		}
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc), cron.WithLogger(cronLogger{})),
		reminder: svc,
		ctx:      ctx,
		now:      time.Now,
	}
	if _, err := s.cron.AddFunc(conf.Schedule, s.runSweep); err != nil {
		return nil, errors.Wrapf(err, "invalid reminder schedule %q", conf.Schedule)
	}
	return s, nil
}

func (s *Scheduler) runSweep() {
	res, err := s.reminder.Sweep(s.ctx, s.now())
	if err != nil {
		logrus.WithError(err).Error("scheduled rent reminder sweep failed")
		return
	}
	logrus.WithField("created", res.Created).Info("scheduled rent reminder sweep done")
}

// Start the cron loop in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop the scheduler and wait for a running sweep to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Next returns the next time the sweep will run
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logrus.WithFields(fields(keysAndValues)).Debug(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logrus.WithError(err).WithFields(fields(keysAndValues)).Error(msg)
}

func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if k, ok := keysAndValues[i].(string); ok {
			f[k] = keysAndValues[i+1]
		}
	}
	return f
}
