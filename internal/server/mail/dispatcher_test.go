package mail

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/forwardtrading/authsvc/internal/logging"
)

type fakeMailer struct {
	mu      sync.Mutex
	sent    []task
	sendErr error
}

func (f *fakeMailer) SendVerification(to, login, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, task{kind: taskVerification, to: to, login: login, token: token})
	return nil
}

func (f *fakeMailer) SendPasswordReset(to, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, task{kind: taskPasswordReset, to: to, token: token})
	return nil
}

func newTestDispatcher(m Mailer, buf *bytes.Buffer) *QueueDispatcher {
	logger := logging.NewZerologLogger(zerolog.New(buf))
	return NewQueueDispatcher(m, logger, 8)
}

func TestDispatcher_DeliversEnqueuedTasks(t *testing.T) {
	fm := &fakeMailer{}
	var buf bytes.Buffer
	d := newTestDispatcher(fm, &buf)

	d.EnqueueVerification("a@b.com", "alice", "tok-1")
	d.EnqueuePasswordReset("b@c.com", "tok-2")
	d.Close()

	if len(fm.sent) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(fm.sent))
	}
	if fm.sent[0].kind != taskVerification || fm.sent[0].to != "a@b.com" || fm.sent[0].login != "alice" {
		t.Fatalf("unexpected first task: %+v", fm.sent[0])
	}
	if fm.sent[1].kind != taskPasswordReset || fm.sent[1].token != "tok-2" {
		t.Fatalf("unexpected second task: %+v", fm.sent[1])
	}
}

func TestDispatcher_DeliveryFailureIsLoggedNotPropagated(t *testing.T) {
	fm := &fakeMailer{sendErr: errors.New("smtp down")}
	var buf bytes.Buffer
	d := newTestDispatcher(fm, &buf)

	d.EnqueueVerification("a@b.com", "alice", "tok")
	d.Close()

	if !strings.Contains(buf.String(), "mail delivery failed") {
		t.Fatalf("expected failure log, got:\n%s", buf.String())
	}
}

func TestDispatcher_FullQueueDropsTask(t *testing.T) {
	// Block the worker so the (size 1) buffer fills up and the third
	// enqueue has to drop.
	blocked := make(chan struct{})
	fm := &slowMailer{release: blocked}
	var buf bytes.Buffer
	logger := logging.NewZerologLogger(zerolog.New(&buf))
	d := NewQueueDispatcher(fm, logger, 1)

	d.EnqueueVerification("1@b.com", "u1", "t1") // picked up by worker, blocks
	d.EnqueueVerification("2@b.com", "u2", "t2") // fills the buffer
	d.EnqueueVerification("3@b.com", "u3", "t3") // dropped

	close(blocked)
	d.Close()

	if !strings.Contains(buf.String(), "mail queue full") {
		t.Fatalf("expected drop log, got:\n%s", buf.String())
	}
}

type slowMailer struct {
	release chan struct{}
}

func (s *slowMailer) SendVerification(to, login, token string) error {
	<-s.release
	return nil
}

func (s *slowMailer) SendPasswordReset(to, token string) error {
	<-s.release
	return nil
}
