package gateway

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	gatewaypkg "github.com/starfieldlab/cosmobot/internal/gateway"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestSession(t *testing.T, rt roundTripFunc) *discordgo.Session {
	t.Helper()
	s, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if rt != nil {
		s.Client = &http.Client{Transport: rt}
	}
	return s
}

func TestControlsToComponents_MapsButtons(t *testing.T) {
	components := controlsToComponents([]gatewaypkg.Control{
		{ID: "confirm", Label: "Confirm", Style: gatewaypkg.ControlStyleSuccess},
		{ID: "prev", Emoji: "⬅", Disabled: true},
	})

	if len(components) != 1 {
		t.Fatalf("expected a single action row, got %d", len(components))
	}
	row, ok := components[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("expected an ActionsRow, got %T", components[0])
	}
	if len(row.Components) != 2 {
		t.Fatalf("expected two buttons, got %d", len(row.Components))
	}

	confirm, ok := row.Components[0].(discordgo.Button)
	if !ok {
		t.Fatalf("expected a Button, got %T", row.Components[0])
	}
	if confirm.CustomID != "confirm" || confirm.Label != "Confirm" || confirm.Style != discordgo.SuccessButton {
		t.Fatalf("unexpected confirm button: %+v", confirm)
	}

	prev, ok := row.Components[1].(discordgo.Button)
	if !ok {
		t.Fatalf("expected a Button, got %T", row.Components[1])
	}
	if !prev.Disabled || prev.Emoji == nil || prev.Emoji.Name != "⬅" || prev.Style != discordgo.PrimaryButton {
		t.Fatalf("unexpected prev button: %+v", prev)
	}
}

func TestControlsToComponents_EmptyControlsMeansNoComponents(t *testing.T) {
	if components := controlsToComponents(nil); components != nil {
		t.Fatalf("expected nil components, got %+v", components)
	}
}

func TestSendMessage_ReturnsHandleFromResponse(t *testing.T) {
	s := newTestSession(t, func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || !strings.Contains(req.URL.Path, "/channels/chan-1/messages") {
			t.Fatalf("unexpected request: %s %s", req.Method, req.URL.Path)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Body:       io.NopCloser(strings.NewReader(`{"id":"msg-9","channel_id":"chan-1"}`)),
			Header:     make(http.Header),
		}, nil
	})

	c := &Client{session: s}
	handle, err := c.SendMessage("chan-1", "hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handle.ChannelID != "chan-1" || handle.MessageID != "msg-9" {
		t.Fatalf("unexpected handle: %+v", handle)
	}
}

func TestDeleteMessage_CallsChannelMessageDelete(t *testing.T) {
	var deleted bool
	s := newTestSession(t, func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodDelete || !strings.HasSuffix(req.URL.Path, "/channels/chan-1/messages/msg-9") {
			t.Fatalf("unexpected request: %s %s", req.Method, req.URL.Path)
		}
		deleted = true
		return &http.Response{
			StatusCode: http.StatusNoContent,
			Status:     "204 No Content",
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     make(http.Header),
		}, nil
	})

	c := &Client{session: s}
	if err := c.DeleteMessage(gatewaypkg.MessageHandle{ChannelID: "chan-1", MessageID: "msg-9"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected a delete request")
	}
}

func TestGetBotUserID_UsesStateCacheFirst(t *testing.T) {
	s := newTestSession(t, func(req *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected REST call: %s %s", req.Method, req.URL.String())
		return nil, nil
	})
	s.State.User = &discordgo.User{ID: "bot-self"}

	c := &Client{session: s}
	id, err := c.GetBotUserID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "bot-self" {
		t.Fatalf("expected bot-self, got %q", id)
	}
}
