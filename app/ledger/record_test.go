package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"500", "500", true},
		{"  42 ", "42", true},
		{"0", "0", true},
		{"", "", false},
		{"abc", "", false},
		{"-5", "", false},
		{"1.5", "", false},
		{"1,000", "", false},
		{"1 000", "", false},
		{"٣", "", false},
	}
	for _, tc := range cases {
		got, err := ValidateAmount(tc.in)
		if tc.ok {
			require.NoError(t, err, "in=%q", tc.in)
			require.Equal(t, tc.want, got)
			continue
		}
		require.ErrorIs(t, err, ErrInvalidAmount, "in=%q", tc.in)
	}
}

func TestNewRecord(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, 5, 2, 1, 15, 30, 123456789, loc)

	rec := NewRecord(now, Invest, "500", "")
	require.Equal(t, "2024-05-01", rec.Date)
	require.Equal(t, "2024-05-01T19:45:30.123Z", rec.Timestamp)
	require.Equal(t, Invest, rec.Type)
	require.Equal(t, "500", rec.Amount)
	require.Equal(t, "", rec.ReturnAmount)
	require.Equal(t, StatusPending, rec.Status)
	require.Equal(t, "", rec.Notes)
}

func TestType(t *testing.T) {
	require.True(t, Invest.Valid())
	require.True(t, Return.Valid())
	require.False(t, Type("Dividend").Valid())
	require.Equal(t, "return", Return.Lower())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(Record{Type: Invest, Amount: "1"})
	require.NoError(t, s.Append(ctx, Record{Type: Return, Amount: "2"}))

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "2", got[1].Amount)

	got[0].Amount = "mutated"
	again, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "1", again[0].Amount)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = s.Append(cancelled, Record{})
	var se *StoreError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "append", se.Op)
	require.Equal(t, "ledger: append: context canceled", err.Error())
	require.ErrorIs(t, err, context.Canceled)
}
