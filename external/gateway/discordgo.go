package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	gatewaypkg "github.com/starfieldlab/cosmobot/internal/gateway"
)

type Client struct {
	session   *discordgo.Session
	token     string
	botUserID string
}

func NewClient(token string) gatewaypkg.Client {
	return &Client{
		token: token,
	}
}

func (c *Client) Connect(ctx context.Context) error {
	_ = ctx
	s, err := discordgo.New("Bot " + c.token)
	if err != nil {
		return err
	}
	c.session = s
	s.Identify.Intents = discordgo.MakeIntent(
		discordgo.IntentsGuilds |
			discordgo.IntentsGuildMessages |
			discordgo.IntentsDirectMessages |
			discordgo.IntentMessageContent,
	)
	if err := s.Open(); err != nil {
		return err
	}
	userID, err := c.GetBotUserID()
	if err != nil {
		return err
	}
	c.botUserID = userID
	return nil
}

func (c *Client) Close() error {
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

func (c *Client) SendMessage(channelID, content string, controls []gatewaypkg.Control) (gatewaypkg.MessageHandle, error) {
	msg, err := c.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    content,
		Components: controlsToComponents(controls),
	})
	if err != nil {
		return gatewaypkg.MessageHandle{}, err
	}
	return gatewaypkg.MessageHandle{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

func (c *Client) EditMessage(handle gatewaypkg.MessageHandle, content string, controls []gatewaypkg.Control) error {
	edit := &discordgo.MessageEdit{
		Channel: handle.ChannelID,
		ID:      handle.MessageID,
	}
	if content != "" {
		edit.Content = &content
	}
	components := controlsToComponents(controls)
	edit.Components = &components
	_, err := c.session.ChannelMessageEditComplex(edit)
	return err
}

func (c *Client) DeleteMessage(handle gatewaypkg.MessageHandle) error {
	return c.session.ChannelMessageDelete(handle.ChannelID, handle.MessageID)
}

func (c *Client) RegisterMessageHandler(handler func(gatewaypkg.MessageEvent)) {
	c.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m == nil || m.Message == nil || m.Author == nil {
			return
		}
		handler(gatewaypkg.MessageEvent{
			ActorID:     m.Author.ID,
			ChannelID:   m.ChannelID,
			MessageID:   m.ID,
			Content:     m.Content,
			AuthorIsBot: m.Author.Bot,
		})
	})
}

func (c *Client) RegisterButtonHandler(handler func(gatewaypkg.ButtonPressEvent)) {
	c.session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic == nil || ic.Type != discordgo.InteractionMessageComponent {
			return
		}
		data := ic.MessageComponentData()
		if data.CustomID == "" || ic.Message == nil {
			return
		}
		userID := interactionUserID(ic)
		if userID == "" {
			return
		}
		// Acknowledge before dispatching; any visible update happens via a
		// regular message edit afterwards.
		if err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		}); err != nil {
			slog.Warn("failed to acknowledge component interaction", "error", err, "custom_id", data.CustomID)
		}
		handler(gatewaypkg.ButtonPressEvent{
			ActorID:   userID,
			ChannelID: ic.ChannelID,
			MessageID: ic.Message.ID,
			ControlID: data.CustomID,
		})
	})
}

func interactionUserID(ic *discordgo.InteractionCreate) string {
	if ic.Member != nil && ic.Member.User != nil {
		return ic.Member.User.ID
	}
	if ic.User != nil {
		return ic.User.ID
	}
	return ""
}

func (c *Client) SetWatchingStatus(name string) error {
	return c.session.UpdateWatchStatus(0, name)
}

func (c *Client) GetBotUserID() (string, error) {
	if c.botUserID != "" {
		return c.botUserID, nil
	}
	if c.session == nil {
		return "", fmt.Errorf("discord session is not initialized")
	}
	if c.session.State != nil && c.session.State.User != nil && c.session.State.User.ID != "" {
		c.botUserID = c.session.State.User.ID
		return c.botUserID, nil
	}
	u, err := c.session.User("@me")
	if err != nil {
		return "", err
	}
	c.botUserID = u.ID
	return c.botUserID, nil
}

func (c *Client) Run() error {
	select {}
}

func controlsToComponents(controls []gatewaypkg.Control) []discordgo.MessageComponent {
	if len(controls) == 0 {
		return nil
	}
	buttons := make([]discordgo.MessageComponent, 0, len(controls))
	for _, ctrl := range controls {
		b := discordgo.Button{
			Label:    ctrl.Label,
			Style:    buttonStyle(ctrl.Style),
			CustomID: ctrl.ID,
			Disabled: ctrl.Disabled,
		}
		if ctrl.Emoji != "" {
			b.Emoji = &discordgo.ComponentEmoji{Name: ctrl.Emoji}
		}
		buttons = append(buttons, b)
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}

func buttonStyle(style gatewaypkg.ControlStyle) discordgo.ButtonStyle {
	switch style {
	case gatewaypkg.ControlStyleSuccess:
		return discordgo.SuccessButton
	case gatewaypkg.ControlStyleDanger:
		return discordgo.DangerButton
	default:
		return discordgo.PrimaryButton
	}
}
