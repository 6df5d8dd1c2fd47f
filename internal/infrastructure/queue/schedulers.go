package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"library-catalog/internal/shared"
	"library-catalog/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, password string, db int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)
	return &Scheduler{scheduler: scheduler}
}

// RegisterCoverSweep đăng ký job dọn cover mồ côi theo cronspec (vd: "0 3 * * *")
func (s *Scheduler) RegisterCoverSweep(cronspec string, grace time.Duration) error {
	payload, err := json.Marshal(shared.SweepPayload{GraceFor: grace})
	if err != nil {
		return fmt.Errorf("marshal sweep payload: %w", err)
	}

	entryID, err := s.scheduler.Register(cronspec,
		asynq.NewTask(shared.TypeSweepOrphanCover, payload),
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
	)
	if err != nil {
		return fmt.Errorf("register cover sweep: %w", err)
	}

	logger.Info("scheduled job registered", map[string]interface{}{
		"task":     shared.TypeSweepOrphanCover,
		"cron":     cronspec,
		"entry_id": entryID,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
