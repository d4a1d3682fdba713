package keyboard

import "testing"

func TestInlineRow(t *testing.T) {
	rm := InlineRow(
		InlineBtn{Text: "Yes", Unique: "confirm_yes"},
		InlineBtn{Text: "No", Unique: "confirm_no"},
	)
	if len(rm.InlineKeyboard) != 1 {
		t.Fatalf("rows = %d, want 1", len(rm.InlineKeyboard))
	}
	row := rm.InlineKeyboard[0]
	if len(row) != 2 {
		t.Fatalf("buttons = %d, want 2", len(row))
	}
	if row[0].Text != "Yes" || row[0].Unique != "confirm_yes" {
		t.Fatalf("first button = %+v", row[0])
	}
	if row[1].Text != "No" || row[1].Unique != "confirm_no" {
		t.Fatalf("second button = %+v", row[1])
	}
}

func TestInlineButtonsRows(t *testing.T) {
	rm := InlineButtonsRows(
		[]InlineBtn{{Text: "a", Unique: "a"}},
		[]InlineBtn{{Text: "b", Unique: "b", Data: "1"}, {Text: "c", Unique: "c"}},
	)
	if len(rm.InlineKeyboard) != 2 || len(rm.InlineKeyboard[1]) != 2 {
		t.Fatalf("unexpected layout: %+v", rm.InlineKeyboard)
	}
	if rm.InlineKeyboard[1][0].Data != "1" {
		t.Fatalf("payload = %q", rm.InlineKeyboard[1][0].Data)
	}
}
