// Package responder implements the immediate-response side channel: a capped
// pool of workers that acknowledge callback queries and emit typing signals
// while the real work waits in the job queue. Everything here is best-effort
// UX polish; failures are logged and swallowed, and the hosting environment
// may terminate an in-flight sequence at any time.
package responder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sevigo/botgate/internal/config"
	"github.com/sevigo/botgate/internal/core"
)

// BotAPI is the slice of the Telegram client the responder needs.
type BotAPI interface {
	AnswerCallbackQuery(ctx context.Context, token, callbackID string) error
	SendChatAction(ctx context.Context, token string, chatID int64, action string) error
}

// task bundles the side-channel actions for one update.
type task struct {
	decision core.Decision
	token    string
}

// Pool implements core.Responder on a fixed set of worker goroutines. The
// worker count is the hard cap on concurrent detached sequences: when every
// worker is busy, Dispatch drops the task instead of queueing unboundedly.
type Pool struct {
	api         BotAPI
	tasks       chan task
	wg          sync.WaitGroup
	logger      *slog.Logger
	interval    time.Duration
	duration    time.Duration
	callTimeout time.Duration
}

// NewPool starts the responder workers. If cfg.MaxWorkers is 0 or negative,
// it defaults to 1.
func NewPool(api BotAPI, cfg config.ResponderConfig, logger *slog.Logger) *Pool {
	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	p := &Pool{
		api:         api,
		tasks:       make(chan task, maxWorkers),
		logger:      logger,
		interval:    cfg.TypingInterval,
		duration:    cfg.TypingDuration,
		callTimeout: cfg.CallTimeout,
	}
	p.startWorkers(maxWorkers)
	return p
}

func (p *Pool) startWorkers(n int) {
	for i := range n {
		p.wg.Add(1)
		go p.startWorker(i)
	}
}

func (p *Pool) startWorker(workerID int) {
	defer p.wg.Done()

	for t := range p.tasks {
		p.respond(workerID, t)
	}
}

// Dispatch hands an update's side-channel actions to the pool without
// blocking. It never reports failure: the caller's response must not depend
// on anything that happens here.
func (p *Pool) Dispatch(decision core.Decision, token string) {
	if decision.CallbackID == "" && decision.ChatID == 0 {
		return
	}

	select {
	case p.tasks <- task{decision: decision, token: token}:
	default:
		p.logger.Warn("responder pool saturated, skipping immediate response",
			"job_type", decision.JobType(),
			"chat_id", decision.ChatID,
		)
	}
}

// Stop closes the pool and waits for in-flight sequences to finish. Each
// sequence is bounded by the typing duration, so this returns promptly.
func (p *Pool) Stop() {
	close(p.tasks)
	p.wg.Wait()
}

func (p *Pool) respond(workerID int, t task) {
	if t.decision.CallbackID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), p.callTimeout)
		err := p.api.AnswerCallbackQuery(ctx, t.token, t.decision.CallbackID)
		cancel()
		if err != nil {
			p.logger.Warn("callback acknowledgment failed",
				"worker_id", workerID,
				"callback_id", t.decision.CallbackID,
				"error", err,
			)
		}
	}

	if t.decision.ChatID != 0 {
		p.sendTyping(workerID, t.token, t.decision.ChatID)
	}
}

// sendTyping emits "typing" at a fixed interval until the configured
// duration elapses. Attempts are independent; the first failure ends the
// sequence early instead of retrying.
func (p *Pool) sendTyping(workerID int, token string, chatID int64) {
	deadline := time.Now().Add(p.duration)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), p.callTimeout)
		err := p.api.SendChatAction(ctx, token, chatID, "typing")
		cancel()
		if err != nil {
			p.logger.Warn("typing signal failed, stopping sequence",
				"worker_id", workerID,
				"chat_id", chatID,
				"error", err,
			)
			return
		}

		if !time.Now().Add(p.interval).Before(deadline) {
			return
		}
		time.Sleep(p.interval)
	}
}
