package session

import (
	"log/slog"
	"time"

	"github.com/starfieldlab/cosmobot/internal/gateway"
)

const (
	ControlConfirm = "confirm"
	ControlCancel  = "cancel"
)

// ConfirmFlow is a two-button confirm/cancel session. The decision is set
// exactly once, before the status becomes Resolved; a timed-out or stopped
// flow has no decision.
type ConfirmFlow struct {
	*Session
	gw        gateway.Client
	prompt    gateway.MessageHandle
	confirmed bool
}

// NewConfirmFlow sends the prompt with Confirm/Cancel buttons and returns the
// pending flow. Timeout is fixed at DefaultTimeout.
func NewConfirmFlow(gw gateway.Client, owner, channelID, content string) (*ConfirmFlow, error) {
	return newConfirmFlow(gw, owner, channelID, content, DefaultTimeout)
}

func newConfirmFlow(gw gateway.Client, owner, channelID, content string, timeout time.Duration) (*ConfirmFlow, error) {
	f := &ConfirmFlow{
		Session: newSession(owner, channelID, timeout),
		gw:      gw,
	}
	handle, err := gw.SendMessage(channelID, content, confirmControls())
	if err != nil {
		f.Stop()
		return nil, err
	}
	f.prompt = handle
	return f, nil
}

func confirmControls() []gateway.Control {
	return []gateway.Control{
		{ID: ControlConfirm, Label: "Confirm", Style: gateway.ControlStyleSuccess},
		{ID: ControlCancel, Label: "Cancel", Style: gateway.ControlStyleDanger},
	}
}

// Handle addresses the prompt message carrying the buttons.
func (f *ConfirmFlow) Handle() gateway.MessageHandle {
	return f.prompt
}

// HandleButton processes a button press. Presses from other users or
// channels, unknown controls, and presses after resolution are all no-ops.
func (f *ConfirmFlow) HandleButton(ev gateway.ButtonPressEvent) {
	if !f.Accepts(ev.ActorID, ev.ChannelID) {
		return
	}
	switch ev.ControlID {
	case ControlConfirm:
		f.resolve(true)
	case ControlCancel:
		f.resolve(false)
	}
}

func (f *ConfirmFlow) resolve(confirmed bool) {
	if !f.transition(StatusResolved, func() { f.confirmed = confirmed }) {
		return
	}
	if err := f.gw.DeleteMessage(f.prompt); err != nil {
		slog.Warn("failed to delete confirm prompt", "error", err, "channel_id", f.prompt.ChannelID, "message_id", f.prompt.MessageID)
	}
}

// Outcome returns the decision. ok is false unless the flow resolved via a
// button press.
func (f *ConfirmFlow) Outcome() (confirmed, ok bool) {
	if f.Status() != StatusResolved {
		return false, false
	}
	return f.confirmed, true
}
