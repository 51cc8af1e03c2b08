// Package scheduler runs unattended classification sweeps on a cron spec.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/complysort/complysort/internal/logger"
	"github.com/complysort/complysort/internal/services"
)

// Scheduler owns the cron instance driving periodic classification runs.
type Scheduler struct {
	cron *cron.Cron
	runs *services.RunService
}

// New creates a scheduler around the run service.
func New(runs *services.RunService) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		runs: runs,
	}
}

// Start registers the classification job under spec and starts the cron
// loop. An empty spec disables scheduling.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		return nil
	}

	log := logger.WithComponent("scheduler")
	_, err := s.cron.AddFunc(spec, func() {
		run, err := s.runs.Classify(context.Background())
		if err != nil {
			log.WithError(err).Error("scheduled classification failed")
			return
		}
		log.WithField("run", run.UUID).Info("scheduled classification completed")
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.WithField("spec", spec).Info("classification schedule active")
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
