package dialogue

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/m3rciful/txbot/app/ledger"
	"github.com/m3rciful/txbot/core/logger"
	"github.com/m3rciful/txbot/core/telegram/state"
)

// DefaultCurrency prefixes amounts in user-facing texts.
const DefaultCurrency = "₹"

var errIgnored = errors.New("dialogue: message ignored at this step")

// Options configures a Machine.
type Options struct {
	Store    ledger.Store
	Sessions *state.Manager[Session]
	Currency string
	Now      func() time.Time
}

// Machine drives dialogue sessions. It is safe for concurrent use; events for
// the same actor are serialized by the session manager.
type Machine struct {
	store    ledger.Store
	sessions *state.Manager[Session]
	currency string
	now      func() time.Time
}

// New returns a Machine. A nil Sessions gets a manager without expiry.
func New(opts Options) *Machine {
	m := &Machine{
		store:    opts.Store,
		sessions: opts.Sessions,
		currency: opts.Currency,
		now:      opts.Now,
	}
	if m.sessions == nil {
		m.sessions = state.NewManager[Session](state.Options{})
	}
	if m.currency == "" {
		m.currency = DefaultCurrency
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Sessions exposes the underlying session manager.
func (m *Machine) Sessions() *state.Manager[Session] { return m.sessions }

// InProgress reports whether actorID has an open session.
func (m *Machine) InProgress(actorID int64) bool {
	return m.sessions.InProgress(actorID)
}

// Start opens a session at AwaitingAmount, replacing any existing one.
func (m *Machine) Start(ctx context.Context, actorID, chatID int64, t ledger.Type) Reply {
	m.sessions.Begin(actorID, Session{
		ActorID: actorID,
		ChatID:  chatID,
		Type:    t,
		Step:    AwaitingAmount,
	})
	logger.Debug(ctx, "dialogue", "session.start",
		slog.String("tx_type", string(t)),
		slog.String("step", string(AwaitingAmount)),
	)
	return Reply{Text: amountPrompt(t)}
}

// Reply feeds free text into the actor's session. The bool is false when the
// text produces no message: no session, a command, or a step that takes no text.
func (m *Machine) Reply(ctx context.Context, actorID int64, text string) (Reply, bool) {
	if strings.HasPrefix(text, "/") {
		return Reply{}, false
	}

	var (
		out  Reply
		step Step
	)
	err := m.sessions.Advance(actorID, func(s *Session) error {
		switch s.Step {
		case AwaitingAmount:
			amount, err := ledger.ValidateAmount(text)
			if err != nil {
				return err
			}
			next, err := fire(ctx, s.Step, evAmount)
			if err != nil {
				return err
			}
			s.Amount, s.Step = amount, next
			out = Reply{Text: msgNotePrompt}
		case AwaitingNote:
			note := strings.TrimSpace(text)
			if strings.EqualFold(note, "skip") {
				note = ""
			}
			next, err := fire(ctx, s.Step, evNote)
			if err != nil {
				return err
			}
			s.Note, s.Step = note, next
			out = m.confirmation(*s)
		default:
			return errIgnored
		}
		step = s.Step
		return nil
	})

	switch {
	case err == nil:
		logger.Debug(ctx, "dialogue", "session.advance", slog.String("step", string(step)))
		return out, true
	case errors.Is(err, ledger.ErrInvalidAmount):
		logger.Debug(ctx, "dialogue", "session.invalid_amount", slog.String("status", "skip"))
		return Reply{Text: msgInvalidAmount}, true
	case errors.Is(err, state.ErrNoSession), errors.Is(err, errIgnored):
		return Reply{}, false
	default:
		logger.Error(ctx, "dialogue", "session.advance_failed", slog.String("err", err.Error()))
		return Reply{}, false
	}
}

// Confirm closes a session awaiting confirmation and appends its record. The
// session is removed before the write, so a repeated confirm finds nothing and
// produces no message.
func (m *Machine) Confirm(ctx context.Context, actorID int64) (Reply, bool) {
	s, ok := m.sessions.Take(actorID, func(s Session) bool { return can(s.Step, evConfirm) })
	if !ok {
		logger.Debug(ctx, "dialogue", "confirm.no_session", slog.String("status", "skip"))
		return Reply{}, false
	}
	return m.appendRecord(ctx, "confirm", s.Type, s.Amount, s.Note), true
}

// Cancel discards a session awaiting confirmation. Sessions at other steps
// are left alone.
func (m *Machine) Cancel(ctx context.Context, actorID int64) (Reply, bool) {
	_, ok := m.sessions.Take(actorID, func(s Session) bool {
		return s.Step == AwaitingConfirmation && can(s.Step, evCancel)
	})
	if !ok {
		return Reply{}, false
	}
	logger.Debug(ctx, "dialogue", "session.cancel", slog.String("status", "ok"))
	return Reply{Text: msgCancelled}, true
}

// Abort discards the actor's session at any step.
func (m *Machine) Abort(ctx context.Context, actorID int64) Reply {
	if _, ok := m.sessions.Take(actorID, func(s Session) bool { return can(s.Step, evCancel) }); !ok {
		return Reply{Text: msgNothing}
	}
	logger.Debug(ctx, "dialogue", "session.abort", slog.String("status", "ok"))
	return Reply{Text: msgCancelled}
}

// Quick logs a transaction directly from a command argument, without note or
// confirmation. It does not touch an open session.
func (m *Machine) Quick(ctx context.Context, t ledger.Type, arg string) Reply {
	amount, err := ledger.ValidateAmount(arg)
	if err != nil {
		return Reply{Text: msgInvalidAmount}
	}
	return m.appendRecord(ctx, "quick", t, amount, "")
}

func (m *Machine) appendRecord(ctx context.Context, via string, t ledger.Type, amount, note string) Reply {
	rec := ledger.NewRecord(m.now(), t, amount, note)
	start := time.Now()
	if err := m.store.Append(ctx, rec); err != nil {
		logger.Error(ctx, "dialogue", via+".append_failed",
			slog.String("status", "fail"),
			slog.String("tx_type", string(t)),
			slog.String("amount", amount),
			slog.Any("err", err),
			slog.Duration("duration", logger.Took(start)),
		)
		return logFailed(t)
	}
	logger.Info(ctx, "dialogue", via+".appended",
		slog.String("status", "ok"),
		slog.String("tx_type", string(t)),
		slog.String("amount", amount),
		slog.Duration("duration", logger.Took(start)),
	)
	return m.logged(t, amount)
}
