package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"tripflux/internal/repository"
)

// Scheduler corre tareas periódicas de mantenimiento.
type Scheduler struct {
	cron   *cron.Cron
	users  repository.UserRepository
	logger *zap.Logger
}

func NewScheduler(users repository.UserRepository, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		users:  users,
		logger: logger,
	}
}

// Start registra y arranca los trabajos. La limpieza de tokens de reset es
// solo higiene: la expiración ya se valida al consumir.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@daily", s.purgeExpiredResets); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) purgeExpiredResets() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purged, err := s.users.PurgeExpiredResets(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("purge expired resets failed", zap.Error(err))
		return
	}
	if purged > 0 {
		s.logger.Info("purged expired reset tokens", zap.Int64("count", purged))
	}
}
