package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"fleetrent-backend/internal/logger"
)

var (
	ErrEmailQueueFull   = errors.New("email queue is full")
	ErrEmailQueueClosed = errors.New("email queue is closed")
)

type mailJob struct {
	to       string
	toName   string
	subject  string
	body     string
	attempts int
}

// EmailQueue delivers mail on background workers, retrying failed sends with
// quadratic backoff. It implements mailSender so emailService can use it in
// place of a direct sender.
type EmailQueue struct {
	sender     mailSender
	jobs       chan mailJob
	workers    int
	maxRetries int
	backoff    func(attempt int) time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewEmailQueue(sender mailSender, workers, queueSize, maxRetries int) *EmailQueue {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &EmailQueue{
		sender:     sender,
		jobs:       make(chan mailJob, queueSize),
		workers:    workers,
		maxRetries: maxRetries,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt*attempt) * time.Second
		},
	}
}

// Start begins processing emails asynchronously
func (q *EmailQueue) Start() {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
}

// Send enqueues a message without blocking
func (q *EmailQueue) Send(ctx context.Context, to, toName, subject, body string) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrEmailQueueClosed
	}
	select {
	case q.jobs <- mailJob{to: to, toName: toName, subject: subject, body: body}:
		return nil
	default:
		logger.Warn("Email queue is full, dropping message", "to", to, "subject", subject)
		return ErrEmailQueueFull
	}
}

// Stop rejects new messages and waits for queued ones to finish
func (q *EmailQueue) Stop() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()
	q.wg.Wait()
}

func (q *EmailQueue) worker(id int) {
	defer q.wg.Done()
	logger.Debug("Email worker started", "worker", id)
	for job := range q.jobs {
		q.process(job)
	}
	logger.Debug("Email worker stopped", "worker", id)
}

func (q *EmailQueue) process(job mailJob) {
	for {
		err := q.sender.Send(context.Background(), job.to, job.toName, job.subject, job.body)
		if err == nil {
			return
		}
		if job.attempts >= q.maxRetries {
			logger.Error("Email failed after retries", "to", job.to, "subject", job.subject,
				"attempts", job.attempts+1, "error", err)
			return
		}
		job.attempts++
		wait := q.backoff(job.attempts)
		logger.Warn("Retrying email", "to", job.to, "subject", job.subject,
			"attempt", job.attempts, "maxRetries", q.maxRetries, "backoff", wait, "error", err)
		time.Sleep(wait)
	}
}
