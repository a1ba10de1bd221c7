package mail

import (
	"context"
	"sync"

	"github.com/forwardtrading/authsvc/internal/logging"
)

type taskKind int

const (
	taskVerification taskKind = iota
	taskPasswordReset
)

type task struct {
	kind  taskKind
	to    string
	login string
	token string
}

// Dispatcher is the fire-and-forget mail contract used by the service
// layer: enqueue never blocks and delivery failures never propagate to the
// triggering request.
type Dispatcher interface {
	EnqueueVerification(to, login, token string)
	EnqueuePasswordReset(to, token string)
}

// QueueDispatcher hands tasks to a single background worker over a buffered
// channel. Each task gets at most one delivery attempt; failures are logged
// and dropped. A full queue also drops the task (with a log line) rather
// than stalling a request.
type QueueDispatcher struct {
	mailer Mailer
	logger logging.Logger
	tasks  chan task

	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewQueueDispatcher(mailer Mailer, logger logging.Logger, queueSize int) *QueueDispatcher {
	d := &QueueDispatcher{
		mailer: mailer,
		logger: logger.With("module", "mail_dispatcher"),
		tasks:  make(chan task, queueSize),
	}
	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *QueueDispatcher) EnqueueVerification(to, login, token string) {
	d.enqueue(task{kind: taskVerification, to: to, login: login, token: token})
}

func (d *QueueDispatcher) EnqueuePasswordReset(to, token string) {
	d.enqueue(task{kind: taskPasswordReset, to: to, token: token})
}

func (d *QueueDispatcher) enqueue(t task) {
	select {
	case d.tasks <- t:
	default:
		d.logger.Warn(context.Background(), "mail queue full, dropping task", "to", t.to)
	}
}

func (d *QueueDispatcher) worker() {
	defer d.wg.Done()
	ctx := context.Background()
	for t := range d.tasks {
		var err error
		switch t.kind {
		case taskVerification:
			err = d.mailer.SendVerification(t.to, t.login, t.token)
		case taskPasswordReset:
			err = d.mailer.SendPasswordReset(t.to, t.token)
		}
		if err != nil {
			d.logger.Error(ctx, "mail delivery failed", "to", t.to, "error", err)
			continue
		}
		d.logger.Info(ctx, "mail sent", "to", t.to)
	}
}

// Close stops accepting tasks and waits for the worker to drain the queue.
func (d *QueueDispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.tasks)
	})
	d.wg.Wait()
}
