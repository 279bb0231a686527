package session

import (
	"testing"
	"time"

	"github.com/starfieldlab/cosmobot/internal/gateway"
)

func TestRegistry_RoutesButtonsByMessageID(t *testing.T) {
	gw := &mockGateway{}
	r := NewRegistry()
	f := newTestConfirmFlow(t, gw, time.Hour)
	r.BindButtons(f.Handle().MessageID, f)

	if r.DispatchButton(gateway.ButtonPressEvent{MessageID: "unknown", ActorID: "user-1", ChannelID: "chan-1", ControlID: ControlConfirm}) {
		t.Fatal("expected unknown message id to be unrouted")
	}
	if !r.DispatchButton(gateway.ButtonPressEvent{MessageID: f.Handle().MessageID, ActorID: "user-1", ChannelID: "chan-1", ControlID: ControlConfirm}) {
		t.Fatal("expected bound message to be routed")
	}
	if f.Status() != StatusResolved {
		t.Fatalf("expected dispatched press to resolve the flow, got %v", f.Status())
	}
}

func TestRegistry_UnbindsButtonsOnceTerminal(t *testing.T) {
	gw := &mockGateway{}
	r := NewRegistry()
	f := newTestConfirmFlow(t, gw, time.Hour)
	r.BindButtons(f.Handle().MessageID, f)

	f.Stop()
	waitUntil(t, time.Second, func() bool {
		return !r.DispatchButton(gateway.ButtonPressEvent{MessageID: f.Handle().MessageID, ActorID: "user-1", ChannelID: "chan-1", ControlID: ControlConfirm})
	}, "expected binding to be released after stop")
}

func TestRegistry_MessageFeedPerChannelAndOwner(t *testing.T) {
	r := NewRegistry()
	q := NewQuiz("user-1", "chan-1", "Mars", []string{"mars"}, time.Hour)
	defer q.Stop()
	if !r.BindMessages("chan-1", "user-1", q) {
		t.Fatal("expected first bind to succeed")
	}

	if r.DispatchMessage(gateway.MessageEvent{ActorID: "user-2", ChannelID: "chan-1", Content: "mars"}) {
		t.Fatal("expected non-owner message to pass through")
	}
	if r.DispatchMessage(gateway.MessageEvent{ActorID: "user-1", ChannelID: "chan-2", Content: "mars"}) {
		t.Fatal("expected foreign-channel message to pass through")
	}
	if !r.DispatchMessage(gateway.MessageEvent{ActorID: "user-1", ChannelID: "chan-1", Content: "mars"}) {
		t.Fatal("expected owner message to be consumed")
	}
}

func TestRegistry_RejectsSecondFeedForSameSlot(t *testing.T) {
	r := NewRegistry()
	first := NewQuiz("user-1", "chan-1", "Mars", []string{"mars"}, time.Hour)
	second := NewQuiz("user-1", "chan-1", "Venus", []string{"venus"}, time.Hour)
	defer first.Stop()
	defer second.Stop()

	if !r.BindMessages("chan-1", "user-1", first) {
		t.Fatal("expected first bind to succeed")
	}
	if r.BindMessages("chan-1", "user-1", second) {
		t.Fatal("expected second bind on a live slot to be rejected")
	}
}

func TestRegistry_FreesFeedSlotOnceTerminal(t *testing.T) {
	r := NewRegistry()
	first := NewQuiz("user-1", "chan-1", "Mars", []string{"mars"}, time.Hour)
	if !r.BindMessages("chan-1", "user-1", first) {
		t.Fatal("expected first bind to succeed")
	}
	first.Stop()

	second := NewQuiz("user-1", "chan-1", "Venus", []string{"venus"}, time.Hour)
	defer second.Stop()
	waitUntil(t, time.Second, func() bool {
		return r.BindMessages("chan-1", "user-1", second)
	}, "expected slot to free up after the first quiz ended")
}
