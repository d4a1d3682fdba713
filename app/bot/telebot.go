package bot

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/txbot/app/dialogue"
	tg "github.com/m3rciful/txbot/core/telegram"
	"github.com/m3rciful/txbot/core/telegram/commands"
	"github.com/m3rciful/txbot/core/telegram/helpers"
	"github.com/m3rciful/txbot/core/telegram/keyboard"
)

// Adapter exposes a Service to telebot. It satisfies router.Conversation.
type Adapter struct {
	svc *Service
}

// NewAdapter returns an Adapter for svc.
func NewAdapter(svc *Service) *Adapter {
	return &Adapter{svc: svc}
}

// Register adds the command table and the confirmation callbacks to reg.
func (a *Adapter) Register(reg *tg.Registry) error {
	for _, cmd := range a.svc.Commands() {
		if err := reg.RegisterCommand(cmd.Name, commands.Command{
			Handler:     a.command(cmd.Handler),
			Description: cmd.Description,
		}); err != nil {
			return fmt.Errorf("bot: register %s: %w", cmd.Name, err)
		}
	}
	for token, h := range a.svc.Callbacks() {
		if err := reg.RegisterCallback(token, a.callback(h)); err != nil {
			return fmt.Errorf("bot: register callback %s: %w", token, err)
		}
	}
	return nil
}

// InProgress reports whether userID has an open dialogue.
func (a *Adapter) InProgress(userID int64) bool {
	return a.svc.InProgress(userID)
}

// Handle routes a free-text message into the sender's dialogue.
func (a *Adapter) Handle(c tele.Context) error {
	return a.command(a.svc.Text)(c)
}

func (a *Adapter) command(h HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ev, ok := eventFrom(c, &responder{c: c})
		if !ok {
			return nil
		}
		return h(helpers.BuildContext(c), ev)
	}
}

// callback removes the confirmation keyboard once a press produced a reply,
// so a stale keyboard cannot be pressed again.
func (a *Adapter) callback(h HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		r := &responder{c: c}
		ev, ok := eventFrom(c, r)
		if !ok {
			return nil
		}
		if err := h(helpers.BuildContext(c), ev); err != nil {
			return err
		}
		if r.sent {
			return helpers.DropKeyboard(c)
		}
		return nil
	}
}

func eventFrom(c tele.Context, r Responder) (Event, bool) {
	sender := c.Sender()
	if sender == nil {
		return Event{}, false
	}
	ev := Event{
		ActorID:   sender.ID,
		ChatID:    sender.ID,
		Text:      c.Text(),
		Args:      c.Args(),
		Responder: r,
	}
	if chat := c.Chat(); chat != nil {
		ev.ChatID = chat.ID
	}
	return ev, true
}

type responder struct {
	c    tele.Context
	sent bool
}

func (r *responder) Respond(_ context.Context, reply dialogue.Reply) error {
	var markup []*tele.ReplyMarkup
	if len(reply.Choices) > 0 {
		btns := make([]keyboard.InlineBtn, 0, len(reply.Choices))
		for _, ch := range reply.Choices {
			btns = append(btns, keyboard.InlineBtn{Text: ch.Text, Unique: ch.Token})
		}
		markup = append(markup, keyboard.InlineRow(btns...))
	}
	r.sent = true
	if reply.Markdown {
		return helpers.SendMD(r.c, reply.Text, markup...)
	}
	return helpers.SendText(r.c, reply.Text, markup...)
}
