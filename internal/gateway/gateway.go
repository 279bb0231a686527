package gateway

import "context"

type ControlStyle int

const (
	ControlStylePrimary ControlStyle = iota
	ControlStyleSuccess
	ControlStyleDanger
)

// Control is a button attached to a message, identified by a stable id.
type Control struct {
	ID       string
	Label    string
	Emoji    string
	Style    ControlStyle
	Disabled bool
}

// MessageHandle addresses a message the bot has sent, for later edit or delete.
type MessageHandle struct {
	ChannelID string
	MessageID string
}

type ButtonPressEvent struct {
	ActorID   string
	ChannelID string
	MessageID string
	ControlID string
}

type MessageEvent struct {
	ActorID     string
	ChannelID   string
	MessageID   string
	Content     string
	AuthorIsBot bool
}

type Client interface {
	Connect(ctx context.Context) error
	Close() error
	SendMessage(channelID, content string, controls []Control) (MessageHandle, error)
	EditMessage(handle MessageHandle, content string, controls []Control) error
	DeleteMessage(handle MessageHandle) error
	RegisterMessageHandler(handler func(MessageEvent))
	RegisterButtonHandler(handler func(ButtonPressEvent))
	SetWatchingStatus(name string) error
	GetBotUserID() (string, error)
	Run() error
}
