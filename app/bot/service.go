// Package bot maps the command surface and button presses onto the dialogue
// and report services. It is transport neutral; telebot.go adapts it to
// Telegram.
package bot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m3rciful/txbot/app/access"
	"github.com/m3rciful/txbot/app/dialogue"
	"github.com/m3rciful/txbot/app/ledger"
	"github.com/m3rciful/txbot/app/report"
	"github.com/m3rciful/txbot/core/logger"
)

// Responder delivers a reply to the chat an event came from.
type Responder interface {
	Respond(ctx context.Context, r dialogue.Reply) error
}

// Event is one inbound message or button press.
type Event struct {
	ActorID   int64
	ChatID    int64
	Text      string
	Args      []string
	Responder Responder
}

// HandlerFunc handles an Event.
type HandlerFunc func(ctx context.Context, ev Event) error

// Command is one entry of the command table.
type Command struct {
	Name        string
	Description string
	Handler     HandlerFunc
}

// Options configures a Service.
type Options struct {
	Gate     *access.Gate
	Dialogue *dialogue.Machine
	Report   *report.Service
	Currency string
}

// Service holds the bot's event handlers.
type Service struct {
	gate     *access.Gate
	dialogue *dialogue.Machine
	report   *report.Service
	currency string
}

// New returns a Service.
func New(opts Options) *Service {
	s := &Service{
		gate:     opts.Gate,
		dialogue: opts.Dialogue,
		report:   opts.Report,
		currency: opts.Currency,
	}
	if s.currency == "" {
		s.currency = dialogue.DefaultCurrency
	}
	return s
}

// Commands returns the command table.
func (s *Service) Commands() []Command {
	return []Command{
		{Name: "/start", Description: "Show welcome message", Handler: s.Start},
		{Name: "/help", Description: "Show available commands", Handler: s.Help},
		{Name: "/invest", Description: "Log a new investment", Handler: s.Invest},
		{Name: "/return", Description: "Log a return", Handler: s.Return},
		{Name: "/summary", Description: "Show totals", Handler: s.Summary},
		{Name: "/history", Description: "Show recent transactions", Handler: s.History},
		{Name: "/cancel", Description: "Cancel the transaction in progress", Handler: s.Cancel},
	}
}

// Callbacks maps confirmation button tokens to their handlers.
func (s *Service) Callbacks() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		dialogue.TokenConfirm: s.ConfirmChoice,
		dialogue.TokenCancel:  s.CancelChoice,
	}
}

// InProgress reports whether actorID has an open dialogue.
func (s *Service) InProgress(actorID int64) bool {
	return s.dialogue.InProgress(actorID)
}

// Start sends the welcome message.
func (s *Service) Start(ctx context.Context, ev Event) error {
	if !s.authorized(ctx, ev) {
		return nil
	}
	return ev.Responder.Respond(ctx, dialogue.Reply{Text: welcomeText})
}

// Help lists the commands.
func (s *Service) Help(ctx context.Context, ev Event) error {
	if !s.authorized(ctx, ev) {
		return nil
	}
	return ev.Responder.Respond(ctx, dialogue.Reply{Text: helpText, Markdown: true})
}

// Invest starts an Invest dialogue, or logs directly when an amount is given.
func (s *Service) Invest(ctx context.Context, ev Event) error {
	return s.begin(ctx, ev, ledger.Invest)
}

// Return starts a Return dialogue, or logs directly when an amount is given.
func (s *Service) Return(ctx context.Context, ev Event) error {
	return s.begin(ctx, ev, ledger.Return)
}

func (s *Service) begin(ctx context.Context, ev Event, t ledger.Type) error {
	if !s.authorized(ctx, ev) {
		return nil
	}
	if arg := strings.TrimSpace(strings.Join(ev.Args, " ")); arg != "" {
		return ev.Responder.Respond(ctx, s.dialogue.Quick(ctx, t, arg))
	}
	return ev.Responder.Respond(ctx, s.dialogue.Start(ctx, ev.ActorID, ev.ChatID, t))
}

// Cancel aborts the dialogue in progress at any step.
func (s *Service) Cancel(ctx context.Context, ev Event) error {
	if !s.authorized(ctx, ev) {
		return nil
	}
	return ev.Responder.Respond(ctx, s.dialogue.Abort(ctx, ev.ActorID))
}

// Summary replies with invested, returned and net totals.
func (s *Service) Summary(ctx context.Context, ev Event) error {
	if !s.authorized(ctx, ev) {
		return nil
	}
	sum, err := s.report.Summary(ctx)
	if err != nil {
		return ev.Responder.Respond(ctx, dialogue.Reply{Text: summaryFailedText})
	}
	return ev.Responder.Respond(ctx, dialogue.Reply{Text: summaryText(sum, s.currency), Markdown: true})
}

// History replies with the most recent transactions.
func (s *Service) History(ctx context.Context, ev Event) error {
	if !s.authorized(ctx, ev) {
		return nil
	}
	records, err := s.report.History(ctx)
	if err != nil {
		return ev.Responder.Respond(ctx, dialogue.Reply{Text: historyFailedText})
	}
	if len(records) == 0 {
		return ev.Responder.Respond(ctx, dialogue.Reply{Text: noTransactionsText})
	}
	return ev.Responder.Respond(ctx, dialogue.Reply{Text: historyText(records, s.currency), Markdown: true})
}

// Text feeds a free-text message into the sender's dialogue. Messages outside
// a dialogue are ignored.
func (s *Service) Text(ctx context.Context, ev Event) error {
	if !s.authorized(ctx, ev) {
		return nil
	}
	reply, ok := s.dialogue.Reply(ctx, ev.ActorID, ev.Text)
	if !ok {
		return nil
	}
	return ev.Responder.Respond(ctx, reply)
}

// ConfirmChoice handles the Yes button.
func (s *Service) ConfirmChoice(ctx context.Context, ev Event) error {
	if !s.authorized(ctx, ev) {
		return nil
	}
	reply, ok := s.dialogue.Confirm(ctx, ev.ActorID)
	if !ok {
		return nil
	}
	return ev.Responder.Respond(ctx, reply)
}

// CancelChoice handles the No button.
func (s *Service) CancelChoice(ctx context.Context, ev Event) error {
	if !s.authorized(ctx, ev) {
		return nil
	}
	reply, ok := s.dialogue.Cancel(ctx, ev.ActorID)
	if !ok {
		return nil
	}
	return ev.Responder.Respond(ctx, reply)
}

func (s *Service) authorized(ctx context.Context, ev Event) bool {
	if s.gate.Allowed(ev.ActorID) {
		return true
	}
	logger.Debug(ctx, "access", "access.denied",
		slog.String("status", "skip"),
		slog.Int64("actor_id", ev.ActorID),
	)
	return false
}
