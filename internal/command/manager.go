package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/starfieldlab/cosmobot/internal/config"
	"github.com/starfieldlab/cosmobot/internal/content"
	"github.com/starfieldlab/cosmobot/internal/gateway"
	"github.com/starfieldlab/cosmobot/internal/scraper"
	"github.com/starfieldlab/cosmobot/internal/session"
	"github.com/starfieldlab/cosmobot/internal/verify"
)

const transientNoticeTTL = 5 * time.Second

var presenceLines = []string{
	"Space is almost endless.",
	"10⁷ K?",
	"No stars? No moons? No planets? Damn that's sad.",
}

type commandSpec struct {
	name    string
	aliases []string
	brief   string
	run     func(ctx context.Context, ev gateway.MessageEvent) error
}

type commandGroup struct {
	name     string
	commands []*commandSpec
}

// Manager turns inbound gateway events into command invocations. Every
// invocation runs in its own goroutine, so sessions for different users and
// channels stay pending concurrently without blocking each other.
type Manager struct {
	cfg       *config.Config
	gw        gateway.Client
	gate      *verify.Gate
	fetcher   scraper.Fetcher
	library   *content.Library
	registry  *session.Registry
	botUserID string
	commands  map[string]*commandSpec
	groups    []commandGroup
}

func NewManager(cfg *config.Config, gw gateway.Client, gate *verify.Gate, fetcher scraper.Fetcher, library *content.Library, registry *session.Registry) *Manager {
	m := &Manager{
		cfg:      cfg,
		gw:       gw,
		gate:     gate,
		fetcher:  fetcher,
		library:  library,
		registry: registry,
	}
	m.registerCommands()
	return m
}

func (m *Manager) SetBotUserID(id string) {
	m.botUserID = id
}

func (m *Manager) registerCommands() {
	m.groups = []commandGroup{
		{name: "Fun", commands: []*commandSpec{
			{name: "spacefacts", aliases: []string{"spacefact"}, brief: "Get random facts about space!", run: m.handleSpaceFacts},
			{name: "guesstheuniverse", aliases: []string{"gtu"}, brief: "Guess the universe with the given information", run: m.handleGuess},
		}},
		{name: "Story", commands: []*commandSpec{
			{name: "begin", brief: "Start the story mode of the bot", run: m.handleBegin},
			{name: "mission", brief: "Get the current mission", run: m.handleMission},
		}},
	}
	help := &commandSpec{name: "help", brief: "Browse the command list", run: m.handleHelp}

	m.commands = make(map[string]*commandSpec)
	for _, g := range m.groups {
		for _, spec := range g.commands {
			m.commands[spec.name] = spec
			for _, alias := range spec.aliases {
				m.commands[alias] = spec
			}
		}
	}
	m.commands[help.name] = help
}

// HandleMessage routes one inbound chat message: first to any live session
// listening on the (channel, author) feed, then to command dispatch.
func (m *Manager) HandleMessage(ev gateway.MessageEvent) {
	if ev.AuthorIsBot {
		return
	}
	if m.registry.DispatchMessage(ev) {
		return
	}
	name, ok := m.parseInvocation(ev.Content)
	if !ok {
		return
	}
	go m.dispatch(name, ev)
}

// HandleButton routes a button press to the session bound to its message.
// Presses on unknown messages are dropped.
func (m *Manager) HandleButton(ev gateway.ButtonPressEvent) {
	m.registry.DispatchButton(ev)
}

// parseInvocation strips the command prefix (or a bot mention) and returns
// the lowercased command name.
func (m *Manager) parseInvocation(content string) (string, bool) {
	trimmed := strings.TrimSpace(content)
	var rest string
	switch {
	case strings.HasPrefix(trimmed, m.cfg.CommandPrefix):
		rest = trimmed[len(m.cfg.CommandPrefix):]
	case m.botUserID != "" && strings.HasPrefix(trimmed, "<@"+m.botUserID+">"):
		rest = trimmed[len("<@"+m.botUserID+">"):]
	case m.botUserID != "" && strings.HasPrefix(trimmed, "<@!"+m.botUserID+">"):
		rest = trimmed[len("<@!"+m.botUserID+">"):]
	default:
		return "", false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", false
	}
	return strings.ToLower(fields[0]), true
}

func (m *Manager) dispatch(name string, ev gateway.MessageEvent) {
	spec, ok := m.commands[name]
	if !ok {
		return
	}
	ctx := context.Background()
	slog.Info("command invoked", "command", spec.name, "user_id", ev.ActorID, "channel_id", ev.ChannelID)

	if err := m.gate.Check(ctx, ev.ActorID); err != nil {
		var notVerified *verify.NotVerifiedError
		if errors.As(err, &notVerified) {
			m.runVerificationRitual(ctx, ev)
			return
		}
		m.reportFailure(ev, spec.name, err)
		return
	}
	if err := spec.run(ctx, ev); err != nil {
		m.reportFailure(ev, spec.name, err)
	}
}

// reportFailure logs the full context and tells the user only that the
// command failed.
func (m *Manager) reportFailure(ev gateway.MessageEvent, commandName string, err error) {
	slog.Error("command failed", "error", err, "command", commandName, "user_id", ev.ActorID, "channel_id", ev.ChannelID)
	m.send(ev.ChannelID, messageGenericFailure)
}

func (m *Manager) send(channelID, content string) {
	if _, err := m.gw.SendMessage(channelID, content, nil); err != nil {
		slog.Error("failed to send message", "error", err, "channel_id", channelID)
	}
}

// sendTransient sends a notice that deletes itself shortly after.
func (m *Manager) sendTransient(channelID, content string) {
	handle, err := m.gw.SendMessage(channelID, content, nil)
	if err != nil {
		slog.Warn("failed to send transient notice", "error", err, "channel_id", channelID)
		return
	}
	time.AfterFunc(transientNoticeTTL, func() {
		if err := m.gw.DeleteMessage(handle); err != nil {
			slog.Warn("failed to delete transient notice", "error", err, "channel_id", channelID, "message_id", handle.MessageID)
		}
	})
}

// runVerificationRitual recovers a NotVerified check failure: consent prompt
// via ConfirmFlow, write-through verification on confirm, nothing on timeout.
func (m *Manager) runVerificationRitual(ctx context.Context, ev gateway.MessageEvent) {
	flow, err := session.NewConfirmFlow(m.gw, ev.ActorID, ev.ChannelID, messageVerifyConsent)
	if err != nil {
		slog.Error("failed to start verification ritual", "error", err, "user_id", ev.ActorID)
		return
	}
	m.registry.BindButtons(flow.Handle().MessageID, flow)
	flow.Await(ctx)

	confirmed, ok := flow.Outcome()
	switch {
	case ok && confirmed:
		if err := m.gate.VerifyUser(ctx, ev.ActorID); err != nil {
			m.reportFailure(ev, "verify", err)
			return
		}
		slog.Info("user verified", "user_id", ev.ActorID)
		m.send(ev.ChannelID, messageVerified)
	case ok:
		m.send(ev.ChannelID, messageVerifyCancelled)
	}
}

func (m *Manager) handleSpaceFacts(ctx context.Context, ev gateway.MessageEvent) error {
	fact, err := m.fetcher.FetchFact(ctx)
	if err != nil {
		if errors.Is(err, scraper.ErrFetchFailed) {
			slog.Warn("fact fetch failed", "error", err, "user_id", ev.ActorID)
			m.send(ev.ChannelID, messageFactUnavailable)
			return nil
		}
		return err
	}
	m.send(ev.ChannelID, fact)
	return nil
}

func (m *Manager) handleGuess(ctx context.Context, ev gateway.MessageEvent) error {
	key, entry := m.library.RandomTrivia()
	basisName, basisValue := randomBasis(entry)

	quiz := session.NewQuiz(ev.ActorID, ev.ChannelID, key, entry.Answers, m.cfg.QuizTimeout())
	if !m.registry.BindMessages(ev.ChannelID, ev.ActorID, quiz) {
		quiz.Stop()
		m.send(ev.ChannelID, messageQuizAlreadyRunning)
		return nil
	}
	prompt := fmt.Sprintf(messageQuizPromptFormat, basisName, basisValue, entry.Image)
	if _, err := m.gw.SendMessage(ev.ChannelID, prompt, nil); err != nil {
		quiz.Stop()
		return err
	}

	outcome, status := quiz.Run(ctx, func(string) {
		m.sendTransient(ev.ChannelID, messageWrongGuess)
	})
	switch {
	case outcome == session.QuizOutcomeCorrect:
		m.send(ev.ChannelID, fmt.Sprintf(messageQuizCorrectFormat, quiz.AnswerKey()))
	case outcome == session.QuizOutcomeQuit:
		m.send(ev.ChannelID, fmt.Sprintf(messageQuizQuitFormat, quiz.AnswerKey(), strings.Join(quiz.AcceptedAnswers(), ", ")))
	case status == session.StatusTimedOut:
		m.send(ev.ChannelID, messageQuizTimeout)
	}
	return nil
}

func randomBasis(entry content.TriviaEntry) (string, string) {
	if rand.IntN(2) == 0 {
		return "description", entry.Description
	}
	return "constellation", entry.Constellation
}

func (m *Manager) handleBegin(ctx context.Context, ev gateway.MessageEvent) error {
	flow, err := session.NewConfirmFlow(m.gw, ev.ActorID, ev.ChannelID, messageStoryConsent)
	if err != nil {
		return err
	}
	m.registry.BindButtons(flow.Handle().MessageID, flow)
	status := flow.Await(ctx)

	confirmed, ok := flow.Outcome()
	switch {
	case ok && confirmed:
		if err := m.gate.EnableStory(ctx, ev.ActorID); err != nil {
			return err
		}
		m.send(ev.ChannelID, messageStoryActivated)
	case ok:
		m.send(ev.ChannelID, messageStoryCancelled)
	case status == session.StatusTimedOut:
		m.send(ev.ChannelID, messageTookTooLong)
	}
	return nil
}

func (m *Manager) handleMission(ctx context.Context, ev gateway.MessageEvent) error {
	progression, err := m.gate.Progression(ctx, ev.ActorID)
	if err != nil {
		return err
	}
	if progression == 0 {
		m.send(ev.ChannelID, fmt.Sprintf(messageStoryNotStartedFormat, m.cfg.CommandPrefix))
		return nil
	}
	mission, ok := m.library.Mission(progression)
	if !ok {
		return fmt.Errorf("no mission at progression %d", progression)
	}
	m.send(ev.ChannelID, fmt.Sprintf(messageMissionFormat, mission.Name, mission.Description, progression, m.library.MissionCount()))
	return nil
}

func (m *Manager) handleHelp(ctx context.Context, ev gateway.MessageEvent) error {
	browser, err := session.NewBrowser(m.gw, ev.ActorID, ev.ChannelID, m.helpPages())
	if err != nil {
		return err
	}
	m.registry.BindButtons(browser.Handle().MessageID, browser)
	browser.Await(ctx)
	return nil
}

// helpPages renders one page per command group.
func (m *Manager) helpPages() []string {
	pages := make([]string, 0, len(m.groups))
	for _, g := range m.groups {
		var b strings.Builder
		fmt.Fprintf(&b, "**%s commands**\n", g.name)
		for _, spec := range g.commands {
			fmt.Fprintf(&b, "• %s%s — %s\n", m.cfg.CommandPrefix, spec.name, spec.brief)
		}
		pages = append(pages, strings.TrimRight(b.String(), "\n"))
	}
	return pages
}

// StartPresenceRotation cycles the watching status until ctx is cancelled.
func (m *Manager) StartPresenceRotation(ctx context.Context) {
	go func() {
		idx := 0
		m.rotatePresence(&idx)
		ticker := time.NewTicker(m.cfg.PresenceRotationInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.rotatePresence(&idx)
			}
		}
	}()
}

func (m *Manager) rotatePresence(idx *int) {
	line := presenceLines[*idx%len(presenceLines)]
	*idx++
	if err := m.gw.SetWatchingStatus(line); err != nil {
		slog.Warn("failed to update presence", "error", err)
	}
}
