package dialogue

import (
	"fmt"
	"strings"

	"github.com/m3rciful/txbot/app/ledger"
)

const (
	msgInvalidAmount = "Please enter a valid number for the amount."
	msgNotePrompt    = `Please enter a note for this transaction, or type "skip" to leave it blank.`
	msgCancelled     = "Transaction cancelled."
	msgNothing       = "Nothing to cancel."
)

func amountPrompt(t ledger.Type) string {
	return fmt.Sprintf("How much would you like to %s?", t.Lower())
}

func (m *Machine) confirmation(s Session) Reply {
	note := s.Note
	if note == "" {
		note = "(none)"
	}
	var b strings.Builder
	b.WriteString("You are about to log:\n")
	fmt.Fprintf(&b, "Type: %s\n", s.Type)
	fmt.Fprintf(&b, "Amount: %s%s\n", m.currency, s.Amount)
	fmt.Fprintf(&b, "Note: %s\n\nConfirm?", note)
	return Reply{
		Text: b.String(),
		Choices: []Choice{
			{Text: "Yes", Token: TokenConfirm},
			{Text: "No", Token: TokenCancel},
		},
	}
}

func (m *Machine) logged(t ledger.Type, amount string) Reply {
	return Reply{Text: fmt.Sprintf("✅ %s of %s%s logged.", t, m.currency, amount)}
}

func logFailed(t ledger.Type) Reply {
	return Reply{Text: fmt.Sprintf("❌ Failed to log %s. Please try again later.", t.Lower())}
}
