package session

import (
	"sync"

	"github.com/starfieldlab/cosmobot/internal/gateway"
)

// ButtonSession receives button presses for the prompt message it owns.
type ButtonSession interface {
	HandleButton(gateway.ButtonPressEvent)
	Done() <-chan struct{}
}

// MessageSession consumes free-text messages from one user in one channel.
type MessageSession interface {
	HandleMessage(gateway.MessageEvent)
	Done() <-chan struct{}
}

type feedKey struct {
	channelID string
	ownerID   string
}

// Registry routes inbound gateway events to live sessions: button presses by
// the message carrying the controls, chat messages by (channel, owner).
// Bindings are released automatically once a session turns terminal.
type Registry struct {
	mu        sync.Mutex
	byMessage map[string]ButtonSession
	byFeed    map[feedKey]MessageSession
}

func NewRegistry() *Registry {
	return &Registry{
		byMessage: make(map[string]ButtonSession),
		byFeed:    make(map[feedKey]MessageSession),
	}
}

// BindButtons routes presses on messageID to s until s is done.
func (r *Registry) BindButtons(messageID string, s ButtonSession) {
	r.mu.Lock()
	r.byMessage[messageID] = s
	r.mu.Unlock()
	go func() {
		<-s.Done()
		r.mu.Lock()
		if r.byMessage[messageID] == s {
			delete(r.byMessage, messageID)
		}
		r.mu.Unlock()
	}()
}

// BindMessages routes chat messages from ownerID in channelID to s until s
// is done. It reports false when the slot is already taken by a live
// session, so one user cannot run two quizzes in the same channel.
func (r *Registry) BindMessages(channelID, ownerID string, s MessageSession) bool {
	key := feedKey{channelID: channelID, ownerID: ownerID}
	r.mu.Lock()
	if _, taken := r.byFeed[key]; taken {
		r.mu.Unlock()
		return false
	}
	r.byFeed[key] = s
	r.mu.Unlock()
	go func() {
		<-s.Done()
		r.mu.Lock()
		if r.byFeed[key] == s {
			delete(r.byFeed, key)
		}
		r.mu.Unlock()
	}()
	return true
}

// DispatchButton hands the press to the bound session, if any.
func (r *Registry) DispatchButton(ev gateway.ButtonPressEvent) bool {
	r.mu.Lock()
	s, ok := r.byMessage[ev.MessageID]
	r.mu.Unlock()
	if !ok {
		return false
	}
	s.HandleButton(ev)
	return true
}

// DispatchMessage hands the message to the session listening on its
// (channel, author) feed. It reports whether a session consumed the message
// so the command layer can skip it.
func (r *Registry) DispatchMessage(ev gateway.MessageEvent) bool {
	r.mu.Lock()
	s, ok := r.byFeed[feedKey{channelID: ev.ChannelID, ownerID: ev.ActorID}]
	r.mu.Unlock()
	if !ok {
		return false
	}
	s.HandleMessage(ev)
	return true
}
