package session

import (
	"errors"
	"testing"
	"time"

	"github.com/starfieldlab/cosmobot/internal/gateway"
)

func newTestBrowser(t *testing.T, gw *mockGateway, pages []string, timeout time.Duration) *Browser {
	t.Helper()
	b, err := newBrowser(gw, "user-1", "chan-1", pages, timeout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func controlByID(t *testing.T, controls []gateway.Control, id string) gateway.Control {
	t.Helper()
	for _, c := range controls {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("control %q not found in %+v", id, controls)
	return gateway.Control{}
}

func assertEdgeState(t *testing.T, controls []gateway.Control, firstPrevDisabled, nextLastDisabled bool) {
	t.Helper()
	if got := controlByID(t, controls, ControlFirst).Disabled; got != firstPrevDisabled {
		t.Fatalf("first disabled = %v, want %v", got, firstPrevDisabled)
	}
	if got := controlByID(t, controls, ControlPrev).Disabled; got != firstPrevDisabled {
		t.Fatalf("prev disabled = %v, want %v", got, firstPrevDisabled)
	}
	if got := controlByID(t, controls, ControlNext).Disabled; got != nextLastDisabled {
		t.Fatalf("next disabled = %v, want %v", got, nextLastDisabled)
	}
	if got := controlByID(t, controls, ControlLast).Disabled; got != nextLastDisabled {
		t.Fatalf("last disabled = %v, want %v", got, nextLastDisabled)
	}
}

func TestNewBrowser_RejectsEmptyPages(t *testing.T) {
	if _, err := NewBrowser(&mockGateway{}, "user-1", "chan-1", nil); !errors.Is(err, ErrNoPages) {
		t.Fatalf("expected ErrNoPages, got %v", err)
	}
}

func TestNewBrowser_StartsOnFirstPageWithLeftSideDisabled(t *testing.T) {
	gw := &mockGateway{}
	b := newTestBrowser(t, gw, []string{"p0", "p1", "p2"}, time.Hour)
	defer b.Stop()

	if b.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", b.Cursor())
	}
	if gw.sent[0].content != "p0" {
		t.Fatalf("expected first page rendered, got %q", gw.sent[0].content)
	}
	assertEdgeState(t, gw.sent[0].controls, true, false)
}

func TestBrowser_EndToEndPagerSequence(t *testing.T) {
	gw := &mockGateway{}
	b := newTestBrowser(t, gw, []string{"p0", "p1", "p2"}, time.Hour)
	defer b.Stop()

	b.HandleControl(ControlNext)
	b.HandleControl(ControlNext)
	if b.Cursor() != 2 {
		t.Fatalf("expected cursor 2 after two next presses, got %d", b.Cursor())
	}
	edit := gw.lastEdit(t)
	if edit.content != "p2" {
		t.Fatalf("expected page p2 rendered, got %q", edit.content)
	}
	assertEdgeState(t, edit.controls, false, true)

	// Last at the last page is an idempotent no-op: no render.
	edits := gw.editCount()
	b.HandleControl(ControlLast)
	if b.Cursor() != 2 || gw.editCount() != edits {
		t.Fatalf("expected no-op at edge, cursor=%d edits=%d", b.Cursor(), gw.editCount())
	}

	b.HandleControl(ControlFirst)
	if b.Cursor() != 0 {
		t.Fatalf("expected cursor back to 0, got %d", b.Cursor())
	}
	assertEdgeState(t, gw.lastEdit(t).controls, true, false)
}

func TestBrowser_CursorStaysInRangeUnderAnySequence(t *testing.T) {
	gw := &mockGateway{}
	pages := []string{"p0", "p1", "p2", "p3"}
	b := newTestBrowser(t, gw, pages, time.Hour)
	defer b.Stop()

	sequence := []string{
		ControlPrev, ControlPrev, ControlNext, ControlLast, ControlNext,
		ControlNext, ControlFirst, ControlPrev, ControlLast, ControlPrev,
		ControlPrev, ControlPrev, ControlPrev, ControlNext, ControlFirst,
	}
	for _, controlID := range sequence {
		b.HandleControl(controlID)
		if c := b.Cursor(); c < 0 || c >= len(pages) {
			t.Fatalf("cursor %d escaped [0,%d] after %s", c, len(pages)-1, controlID)
		}
	}
}

func TestBrowser_PrevAtZeroIsIdempotent(t *testing.T) {
	gw := &mockGateway{}
	b := newTestBrowser(t, gw, []string{"p0", "p1"}, time.Hour)
	defer b.Stop()

	b.HandleControl(ControlPrev)
	b.HandleControl(ControlFirst)
	if b.Cursor() != 0 {
		t.Fatalf("expected cursor pinned at 0, got %d", b.Cursor())
	}
	if gw.editCount() != 0 {
		t.Fatalf("expected no renders for edge no-ops, got %d", gw.editCount())
	}
}

func TestBrowser_StopDisablesAllAndRendersOnce(t *testing.T) {
	gw := &mockGateway{}
	b := newTestBrowser(t, gw, []string{"p0", "p1"}, time.Hour)

	b.HandleControl(ControlNext)
	b.HandleControl(ControlStop)

	if b.Status() != StatusStopped {
		t.Fatalf("expected stopped, got %v", b.Status())
	}
	edit := gw.lastEdit(t)
	if edit.content != "p1" {
		t.Fatalf("expected current page rendered on stop, got %q", edit.content)
	}
	for _, c := range edit.controls {
		if !c.Disabled {
			t.Fatalf("expected all controls disabled after stop, got %+v", c)
		}
	}
}

func TestBrowser_ControlsInertAfterTimeout(t *testing.T) {
	gw := &mockGateway{}
	b := newTestBrowser(t, gw, []string{"p0", "p1"}, 10*time.Millisecond)

	waitUntil(t, time.Second, func() bool { return b.Status() == StatusTimedOut }, "expected browser to time out")
	edits := gw.editCount()
	b.HandleControl(ControlNext)
	if b.Cursor() != 0 || gw.editCount() != edits {
		t.Fatal("expected controls to be inert after timeout")
	}
}

func TestBrowser_DropsEventsFromForeignActors(t *testing.T) {
	gw := &mockGateway{}
	b := newTestBrowser(t, gw, []string{"p0", "p1"}, time.Hour)
	defer b.Stop()

	b.HandleButton(gateway.ButtonPressEvent{ActorID: "user-2", ChannelID: "chan-1", ControlID: ControlNext})
	if b.Cursor() != 0 || b.Status() != StatusPending {
		t.Fatal("expected foreign press to be dropped without state change")
	}
}
