package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/starfieldlab/cosmobot/internal/gateway"
)

const (
	ControlFirst = "first"
	ControlPrev  = "prev"
	ControlStop  = "stop"
	ControlNext  = "next"
	ControlLast  = "last"
)

var ErrNoPages = errors.New("browser needs at least one page")

// Browser pages through an ordered, immutable sequence of rendered pages.
// The cursor always stays in [0, len(pages)-1]; First/Prev are disabled iff
// the cursor is on the first page, Next/Last iff it is on the last.
type Browser struct {
	*Session
	gw     gateway.Client
	handle gateway.MessageHandle
	pages  []string

	mu     sync.Mutex
	cursor int
}

// NewBrowser sends the first page with pager buttons and returns the pending
// browser. Timeout is fixed at DefaultTimeout.
func NewBrowser(gw gateway.Client, owner, channelID string, pages []string) (*Browser, error) {
	return newBrowser(gw, owner, channelID, pages, DefaultTimeout)
}

func newBrowser(gw gateway.Client, owner, channelID string, pages []string, timeout time.Duration) (*Browser, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	b := &Browser{
		Session: newSession(owner, channelID, timeout),
		gw:      gw,
		pages:   pages,
	}
	handle, err := gw.SendMessage(channelID, pages[0], b.controls(0, false))
	if err != nil {
		b.Stop()
		return nil, err
	}
	b.handle = handle
	return b, nil
}

// controls renders the five pager buttons with the edge buttons disabled for
// the given cursor position.
func (b *Browser) controls(cursor int, allDisabled bool) []gateway.Control {
	atFirst := cursor == 0
	atLast := cursor == len(b.pages)-1
	return []gateway.Control{
		{ID: ControlFirst, Emoji: "⏮", Disabled: allDisabled || atFirst},
		{ID: ControlPrev, Emoji: "⬅", Disabled: allDisabled || atFirst},
		{ID: ControlStop, Emoji: "⏹", Disabled: allDisabled},
		{ID: ControlNext, Emoji: "➡", Disabled: allDisabled || atLast},
		{ID: ControlLast, Emoji: "⏭", Disabled: allDisabled || atLast},
	}
}

// Handle addresses the message carrying the pager.
func (b *Browser) Handle() gateway.MessageHandle {
	return b.handle
}

func (b *Browser) Cursor() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

// HandleButton processes a pager press after gating it to the owning user
// and channel.
func (b *Browser) HandleButton(ev gateway.ButtonPressEvent) {
	if !b.Accepts(ev.ActorID, ev.ChannelID) {
		return
	}
	b.HandleControl(ev.ControlID)
}

// HandleControl applies one pager action. Edge-hitting moves are idempotent
// no-ops without a re-render: the edge buttons are already disabled, but a
// late or replayed press must not move the cursor either. Presses after a
// terminal status are ignored.
func (b *Browser) HandleControl(controlID string) {
	if controlID == ControlStop {
		b.stopAndRender()
		return
	}

	b.mu.Lock()
	if b.Status() != StatusPending {
		b.mu.Unlock()
		return
	}
	next := b.cursor
	last := len(b.pages) - 1
	switch controlID {
	case ControlFirst:
		next = 0
	case ControlPrev:
		if b.cursor > 0 {
			next = b.cursor - 1
		}
	case ControlNext:
		if b.cursor < last {
			next = b.cursor + 1
		}
	case ControlLast:
		next = last
	default:
		b.mu.Unlock()
		return
	}
	if next == b.cursor {
		b.mu.Unlock()
		return
	}
	b.cursor = next
	b.mu.Unlock()

	if err := b.gw.EditMessage(b.handle, b.pages[next], b.controls(next, false)); err != nil {
		slog.Warn("failed to render browser page", "error", err, "message_id", b.handle.MessageID, "cursor", next)
	}
}

// stopAndRender disables every control, renders the current page one last
// time, and transitions to Stopped.
func (b *Browser) stopAndRender() {
	if !b.transition(StatusStopped, nil) {
		return
	}
	b.mu.Lock()
	cursor := b.cursor
	b.mu.Unlock()
	if err := b.gw.EditMessage(b.handle, b.pages[cursor], b.controls(cursor, true)); err != nil {
		slog.Warn("failed to render stopped browser", "error", err, "message_id", b.handle.MessageID)
	}
}
