package queue

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/shared"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, password string, db int) *Scheduler {
	return &Scheduler{
		scheduler: asynq.NewScheduler(
			asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db},
			&asynq.SchedulerOpts{Location: time.UTC, LogLevel: asynq.InfoLevel},
		),
	}
}

// RegisterJobs registers every periodic task.
func (s *Scheduler) RegisterJobs(expireCartsSpec string) error {
	payload, err := json.Marshal(shared.ExpireCartsPayload{})
	if err != nil {
		return err
	}

	id, err := s.scheduler.Register(
		expireCartsSpec,
		asynq.NewTask(shared.TypeExpireCarts, payload),
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("register %s: %w", shared.TypeExpireCarts, err)
	}

	log.Info().Str("entry_id", id).Str("spec", expireCartsSpec).Msg("registered cart expiry job")
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
