package session

import (
	"context"
	"sync/atomic"
	"time"
)

// Status is the lifecycle state of an interactive session. Pending is the
// only non-terminal status; exactly one terminal status is ever reached.
type Status int32

const (
	StatusPending Status = iota
	StatusResolved
	StatusTimedOut
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusResolved:
		return "resolved"
	case StatusTimedOut:
		return "timed_out"
	case StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

func (s Status) Terminal() bool {
	return s != StatusPending
}

// DefaultTimeout bounds confirm and browser sessions.
const DefaultTimeout = 60 * time.Second

// Session is a timeout-bound interactive exchange tied to one user and one
// channel. The transition to a terminal status is a single compare-and-swap;
// the deadline timer is stopped on any earlier transition so a stale timeout
// can never fire after resolution.
type Session struct {
	owner   string
	channel string
	timeout time.Duration
	status  atomic.Int32
	done    chan struct{}
	timer   *time.Timer
}

func newSession(owner, channel string, timeout time.Duration) *Session {
	s := &Session{
		owner:   owner,
		channel: channel,
		timeout: timeout,
		done:    make(chan struct{}),
	}
	s.timer = time.AfterFunc(timeout, func() {
		s.transition(StatusTimedOut, nil)
	})
	return s
}

func (s *Session) Owner() string   { return s.owner }
func (s *Session) Channel() string { return s.channel }

func (s *Session) Status() Status {
	return Status(s.status.Load())
}

// Done closes once the session reaches a terminal status.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// transition moves the session from Pending to a terminal status exactly
// once. commit runs between the winning CAS and the close of done, so any
// payload it sets is visible to everyone unblocked by Await.
func (s *Session) transition(to Status, commit func()) bool {
	if !s.status.CompareAndSwap(int32(StatusPending), int32(to)) {
		return false
	}
	if commit != nil {
		commit()
	}
	s.timer.Stop()
	close(s.done)
	return true
}

// Stop forces the session into Stopped if it is still Pending.
func (s *Session) Stop() {
	s.transition(StatusStopped, nil)
}

// Await blocks until the session reaches a terminal status. A cancelled
// context stops the session on behalf of the aborted owning task.
func (s *Session) Await(ctx context.Context) Status {
	select {
	case <-s.done:
	case <-ctx.Done():
		s.transition(StatusStopped, nil)
	}
	return s.Status()
}

// Accepts reports whether an inbound event belongs to this session: same
// actor and same origin channel. Everything else is silently dropped.
func (s *Session) Accepts(actorID, channelID string) bool {
	return actorID == s.owner && channelID == s.channel
}
