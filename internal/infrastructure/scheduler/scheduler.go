// Package scheduler ejecuta tareas periódicas con expresiones cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job tarea programable. El error solo se registra.
type Job func(ctx context.Context) error

// Scheduler envoltorio de robfig/cron con logs en zerolog.
// Una ejecución que sigue corriendo cuando llega el siguiente disparo hace que este se omita.
type Scheduler struct {
	c       *cron.Cron
	log     zerolog.Logger
	timeout time.Duration
}

// New crea el scheduler. timeout limita cada ejecución (0 = sin límite).
func New(log zerolog.Logger, timeout time.Duration) *Scheduler {
	cl := cronLogger{log: log}
	return &Scheduler{
		c: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log:     log,
		timeout: timeout,
	}
}

// Add registra job con una expresión de 5 campos o descriptores como "@hourly".
func (s *Scheduler) Add(name, spec string, job Job) error {
	if _, err := s.c.AddFunc(spec, s.wrap(name, job)); err != nil {
		return fmt.Errorf("scheduler: %s: expresión %q: %w", name, spec, err)
	}
	s.log.Info().Str("job", name).Str("spec", spec).Msg("tarea programada")
	return nil
}

func (s *Scheduler) Start() { s.c.Start() }

// Stop detiene el scheduler y espera a que terminen las ejecuciones en curso o a que ctx expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.c.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len cantidad de tareas registradas.
func (s *Scheduler) Len() int { return len(s.c.Entries()) }

func (s *Scheduler) wrap(name string, job Job) func() {
	return func() {
		ctx := context.Background()
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		start := time.Now()
		if err := job(ctx); err != nil {
			s.log.Error().Err(err).Str("job", name).Dur("took", time.Since(start)).Msg("tarea fallida")
			return
		}
		s.log.Debug().Str("job", name).Dur("took", time.Since(start)).Msg("tarea completada")
	}
}

// cronLogger adapta zerolog a cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
