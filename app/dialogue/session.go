package dialogue

import (
	"github.com/m3rciful/txbot/app/ledger"
)

// Session is one actor's in-flight transaction. Fields are filled in step
// order: Amount once the amount is accepted, Note once the note is given.
type Session struct {
	ActorID int64
	ChatID  int64
	Type    ledger.Type
	Step    Step
	Amount  string
	Note    string
}

// Choice tokens carried by the confirmation buttons.
const (
	TokenConfirm = "confirm_yes"
	TokenCancel  = "confirm_no"
)

// Choice is a button offered with a reply.
type Choice struct {
	Text  string
	Token string
}

// Reply is a transport-neutral outbound message.
type Reply struct {
	Text     string
	Markdown bool
	Choices  []Choice
}
