package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"MarketAdvisor/internal/model"
	"MarketAdvisor/internal/notifier"
	"MarketAdvisor/internal/recorder"
)

// sweepLimit bounds concurrent Explain calls during a sweep.
const sweepLimit = 4

// Advisor is the part of the advisor service the jobs use.
type Advisor interface {
	Stocks() []string
	Explain(ctx context.Context, symbol string) (*model.CompositeResult, error)
}

// Ingester pulls fresh ticks into the store.
type Ingester interface {
	Collect(ctx context.Context, symbols []string) (int, error)
}

// Sender delivers formatted messages.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Ingester Ingester
	Advisor  Advisor
	Notifier Sender
	History  recorder.Recorder
	Ctx      context.Context

	log zerolog.Logger
	now func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, ing Ingester, adv Advisor, sender Sender, history recorder.Recorder, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Ingester: ing,
		Advisor:  adv,
		Notifier: sender,
		History:  history,
		Ctx:      ctx,
		log:      log,
		now:      time.Now,
	}
}

// RegisterAll registers the ingest and advisory sweep jobs.
func (s *Scheduler) RegisterAll(ingestCron, adviceCron string) error {
	if _, err := s.Cron.AddFunc(ingestCron, s.ingestTask); err != nil {
		return fmt.Errorf("register ingest task: %w", err)
	}
	if _, err := s.Cron.AddFunc(adviceCron, s.adviceTask); err != nil {
		return fmt.Errorf("register advice task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunIngestNow executes the ingest task immediately.
func (s *Scheduler) RunIngestNow() {
	s.ingestTask()
}

// RunSweepNow executes the advisory sweep immediately and returns its results.
func (s *Scheduler) RunSweepNow() ([]*model.CompositeResult, error) {
	return s.sweep(s.Ctx)
}

func (s *Scheduler) ingestTask() {
	s.log.Info().Msg("running ingest task")
	n, err := s.Ingester.Collect(s.Ctx, s.Advisor.Stocks())
	if err != nil {
		s.log.Error().Err(err).Int("saved", n).Msg("ingest finished with errors")
		s.trySend(notifier.FormatError("Tick ingest failed", err))
		return
	}
	s.log.Info().Int("saved", n).Msg("ingest finished")
}

func (s *Scheduler) adviceTask() {
	s.log.Info().Msg("running advisory sweep")
	results, err := s.sweep(s.Ctx)
	if err != nil {
		s.log.Error().Err(err).Int("ok", len(results)).Msg("sweep finished with errors")
	}
	s.trySend(notifier.FormatDigest(results, s.now()))
}

// sweep evaluates every tradable symbol concurrently. Results keep symbol order;
// symbols that failed are left out and their errors joined.
func (s *Scheduler) sweep(ctx context.Context) ([]*model.CompositeResult, error) {
	symbols := s.Advisor.Stocks()
	results := make([]*model.CompositeResult, len(symbols))
	errs := make([]error, len(symbols))

	var g errgroup.Group
	g.SetLimit(sweepLimit)
	for i, sym := range symbols {
		g.Go(func() error {
			res, err := s.Advisor.Explain(ctx, sym)
			if err != nil {
				errs[i] = fmt.Errorf("explain %s: %w", sym, err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	g.Wait()

	out := make([]*model.CompositeResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, errors.Join(errs...)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}

	switch fields[0] {
	case "/stocks":
		return notifier.FormatStocks(s.Advisor.Stocks())
	case "/advice":
		if len(fields) < 2 {
			return "Usage: /advice SYMBOL"
		}
		res, err := s.Advisor.Explain(s.Ctx, strings.ToUpper(fields[1]))
		if err != nil {
			return notifier.FormatError("advice "+fields[1], err)
		}
		return notifier.FormatAdvice(res, s.now())
	case "/history":
		if len(fields) < 2 {
			return "Usage: /history SYMBOL"
		}
		records, err := s.History.Recent(strings.ToUpper(fields[1]), 5)
		if err != nil {
			return notifier.FormatError("history "+fields[1], err)
		}
		return notifier.FormatHistory(strings.ToUpper(fields[1]), records)
	case "/digest":
		results, err := s.sweep(s.Ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("digest sweep incomplete")
		}
		return notifier.FormatDigest(results, s.now())
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.log.Error().Err(err).Msg("send notification")
	}
}
