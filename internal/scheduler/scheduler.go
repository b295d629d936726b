// Package scheduler запускает фоновую ежедневную зачистку истёкших подписок.
//
// Зачистка идёт по cron-расписанию в 23:59 UTC. Она идемпотентна, поэтому
// при нескольких экземплярах сервиса дублирующиеся запуски безопасны —
// распределённой координации здесь нет намеренно.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/novasports/nova-backend/internal/lib/sl"
)

// sweepSchedule — ежедневный запуск в 23:59 UTC.
const sweepSchedule = "59 23 * * *"

// sweepTimeout ограничивает время одного прохода зачистки.
const sweepTimeout = time.Minute

// Sweeper выполняет один проход зачистки истёкших подписок.
type Sweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler управляет cron-заданием зачистки.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	log     *slog.Logger
}

// New создает планировщик с расписанием в UTC и восстановлением после паники.
func New(sweeper Sweeper, log *slog.Logger) (*Scheduler, error) {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(log.Handler(), slog.LevelInfo))
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(cronLogger)),
	)

	s := &Scheduler{
		cron:    c,
		sweeper: sweeper,
		log:     log,
	}
	if _, err := c.AddFunc(sweepSchedule, s.runSweep); err != nil {
		return nil, err
	}
	return s, nil
}

// Start запускает планировщик.
func (s *Scheduler) Start() {
	s.log.Info("starting subscription sweep scheduler", slog.String("schedule", sweepSchedule))
	s.cron.Start()
}

// Stop останавливает планировщик и дожидается завершения идущего прохода.
// Ошибка внутри прохода не прерывает остановку: проход либо завершается,
// либо его повторит следующий запуск.
func (s *Scheduler) Stop() {
	s.log.Info("stopping subscription sweep scheduler")
	<-s.cron.Stop().Done()
}

// runSweep выполняет один проход зачистки. Ошибки логируются и не роняют
// процесс: следующий запуск по расписанию повторит работу.
func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.sweeper.SweepExpired(ctx, time.Now().UTC()); err != nil {
		s.log.Error("subscription sweep failed", sl.Err(err))
	}
}
