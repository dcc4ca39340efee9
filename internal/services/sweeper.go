package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/plantcare/backend/repository"
	"github.com/plantcare/backend/usecase/care"
)

// SweeperConfig controls the periodic generation sweep.
type SweeperConfig struct {
	Interval time.Duration
	PageSize int
}

// Sweeper pages through all plants on a cron schedule and runs the task
// generator on each. Request-driven generation already keeps a plant
// current whenever its owner looks at it; the sweep covers plants nobody
// has opened recently so their overdue tasks exist before the next
// visit. Generation is idempotent, so overlapping with request-driven
// runs is harmless.
type Sweeper struct {
	plants repository.PlantRepository
	engine *care.UseCase
	logger *zap.Logger
	cron   *cron.Cron
	cfg    SweeperConfig
}

func NewSweeper(plants repository.PlantRepository, engine *care.UseCase, logger *zap.Logger, cfg SweeperConfig) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Sweeper{
		plants: plants,
		engine: engine,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := s.Sweep(ctx); err != nil {
			s.logger.Error("generation sweep failed", zap.Error(err))
		}
	})

	return s
}

func (s *Sweeper) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("generation sweeper started", zap.Duration("interval", s.cfg.Interval))
}

func (s *Sweeper) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("generation sweeper stopped")
}

// Sweep runs one full generation pass over every plant.
func (s *Sweeper) Sweep(ctx context.Context) error {
	offset := 0
	swept := 0
	for {
		page, err := s.plants.List(ctx, repository.PlantFilter{Limit: s.cfg.PageSize, Offset: offset})
		if err != nil {
			return err
		}
		if len(page) == 0 {
			break
		}

		for _, plant := range page {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if _, err := s.engine.EnsureTasks(ctx, plant.ID); err != nil {
				// One plant failing must not stall the rest of the sweep.
				s.logger.Warn("sweep skipped plant", zap.String("plant_id", plant.ID), zap.Error(err))
			}
			swept++
		}

		if len(page) < s.cfg.PageSize {
			break
		}
		offset += s.cfg.PageSize
	}

	s.logger.Debug("generation sweep finished", zap.Int("plants", swept))
	return nil
}
