package session

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/starfieldlab/cosmobot/internal/gateway"
)

// QuizOutcome is the way a quiz resolved. OutcomeNone means the quiz timed
// out or was stopped before a qualifying answer arrived.
type QuizOutcome int

const (
	QuizOutcomeNone QuizOutcome = iota
	QuizOutcomeCorrect
	QuizOutcomeQuit
)

// DefaultQuitWords end a quiz without a correct answer.
var DefaultQuitWords = []string{"quit", "exit"}

// Quiz repeatedly reads chat messages from the owning user until one matches
// an accepted answer or a quit word, or the single overall deadline expires.
// The deadline covers the entire loop and is never re-armed per message.
type Quiz struct {
	*Session
	answerKey string
	accepted  map[string]struct{}
	quitWords map[string]struct{}
	msgCh     chan string
	outcome   QuizOutcome
}

func NewQuiz(owner, channelID, answerKey string, acceptedAnswers []string, timeout time.Duration) *Quiz {
	q := &Quiz{
		Session:   newSession(owner, channelID, timeout),
		answerKey: answerKey,
		accepted:  make(map[string]struct{}, len(acceptedAnswers)),
		quitWords: make(map[string]struct{}, len(DefaultQuitWords)),
		msgCh:     make(chan string, 8),
	}
	for _, a := range acceptedAnswers {
		q.accepted[strings.ToLower(a)] = struct{}{}
	}
	for _, w := range DefaultQuitWords {
		q.quitWords[w] = struct{}{}
	}
	return q
}

func (q *Quiz) AnswerKey() string {
	return q.answerKey
}

// AcceptedAnswers lists the accepted strings in stable order, for the reveal
// notice on quit.
func (q *Quiz) AcceptedAnswers() []string {
	answers := make([]string, 0, len(q.accepted))
	for a := range q.accepted {
		answers = append(answers, a)
	}
	sort.Strings(answers)
	return answers
}

// HandleMessage feeds one gate-matched chat message into the loop. Messages
// from other users or channels and messages after resolution are dropped.
func (q *Quiz) HandleMessage(ev gateway.MessageEvent) {
	if !q.Accepts(ev.ActorID, ev.ChannelID) {
		return
	}
	if q.Status() != StatusPending {
		return
	}
	select {
	case q.msgCh <- ev.Content:
	default:
		// never block the gateway dispatcher on a slow loop
	}
}

// Run consumes answers until a correct guess, a quit word, the deadline, or
// context cancellation. onWrong fires once per non-qualifying guess while
// the loop keeps going.
func (q *Quiz) Run(ctx context.Context, onWrong func(guess string)) (QuizOutcome, Status) {
	for {
		select {
		case <-q.Done():
			return q.outcome, q.Status()
		case <-ctx.Done():
			q.Stop()
			return q.outcome, q.Status()
		case content := <-q.msgCh:
			guess := strings.ToLower(strings.TrimSpace(content))
			if _, ok := q.accepted[guess]; ok {
				q.transition(StatusResolved, func() { q.outcome = QuizOutcomeCorrect })
				return q.outcome, q.Status()
			}
			if _, ok := q.quitWords[guess]; ok {
				q.transition(StatusResolved, func() { q.outcome = QuizOutcomeQuit })
				return q.outcome, q.Status()
			}
			if onWrong != nil {
				onWrong(content)
			}
		}
	}
}

// Outcome is only meaningful once the quiz is terminal.
func (q *Quiz) Outcome() QuizOutcome {
	return q.outcome
}
