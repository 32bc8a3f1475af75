package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Job is work the scheduler triggers.
type Job interface {
	Run(ctx context.Context)
}

type Scheduler struct {
	cron *cron.Cron
	job  Job
	spec string
	name string
}

func New(name, spec string, job Job) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		job:  job,
		spec: spec,
		name: name,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		log.Printf("[scheduler] %s triggered", s.name)
		s.job.Run(context.Background())
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
