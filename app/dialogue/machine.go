// Package dialogue runs the per-user conversation that turns separate
// messages and button presses into one confirmed ledger record.
package dialogue

import (
	"context"

	"github.com/looplab/fsm"
)

// Step is the position of a session in the conversation.
type Step string

const (
	AwaitingAmount       Step = "awaiting_amount"
	AwaitingNote         Step = "awaiting_note"
	AwaitingConfirmation Step = "awaiting_confirmation"
	// Closed is never stored; a closed session is removed.
	Closed Step = "closed"
)

const (
	evAmount  = "amount"
	evNote    = "note"
	evConfirm = "confirm"
	evCancel  = "cancel"
)

var transitions = fsm.Events{
	{Name: evAmount, Src: []string{string(AwaitingAmount)}, Dst: string(AwaitingNote)},
	{Name: evNote, Src: []string{string(AwaitingNote)}, Dst: string(AwaitingConfirmation)},
	{Name: evConfirm, Src: []string{string(AwaitingConfirmation)}, Dst: string(Closed)},
	{Name: evCancel, Src: []string{string(AwaitingAmount), string(AwaitingNote), string(AwaitingConfirmation)}, Dst: string(Closed)},
}

func machineAt(step Step) *fsm.FSM {
	return fsm.NewFSM(string(step), transitions, fsm.Callbacks{})
}

// can reports whether ev is a legal transition from step.
func can(step Step, ev string) bool {
	return machineAt(step).Can(ev)
}

// fire applies ev to step and returns the destination step.
func fire(ctx context.Context, step Step, ev string) (Step, error) {
	f := machineAt(step)
	if err := f.Event(ctx, ev); err != nil {
		return step, err
	}
	return Step(f.Current()), nil
}
