package report

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/txbot/app/ledger"
)

type countingStore struct {
	records []ledger.Record
	err     error
	lists   int
}

func (s *countingStore) Append(context.Context, ledger.Record) error { return nil }

func (s *countingStore) List(context.Context) ([]ledger.Record, error) {
	s.lists++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarize(t *testing.T) {
	got := Summarize([]ledger.Record{
		{Type: ledger.Invest, Amount: "300"},
		{Type: ledger.Return, Amount: "100"},
		{Type: ledger.Invest, Amount: "200"},
	})
	require.True(t, got.Invested.Equal(dec("500")), got.Invested.String())
	require.True(t, got.Returned.Equal(dec("100")), got.Returned.String())
	require.True(t, got.Net.Equal(dec("400")), got.Net.String())
	require.Zero(t, got.Skipped)
}

func TestSummarizeEdgeCases(t *testing.T) {
	empty := Summarize(nil)
	require.True(t, empty.Invested.IsZero())
	require.True(t, empty.Returned.IsZero())
	require.True(t, empty.Net.IsZero())

	got := Summarize([]ledger.Record{
		{Type: ledger.Invest, Amount: ""},
		{Type: ledger.Invest, Amount: " 10.5 "},
		{Type: "Dividend", Amount: "999"},
		{Type: ledger.Return, Amount: "oops"},
		{Type: ledger.Return, Amount: "40"},
	})
	require.True(t, got.Invested.Equal(dec("10.5")))
	require.True(t, got.Returned.Equal(dec("40")))
	require.True(t, got.Net.Equal(dec("-29.5")))
	require.Equal(t, 1, got.Skipped)
}

func makeRecords(n int) []ledger.Record {
	out := make([]ledger.Record, n)
	for i := range out {
		out[i] = ledger.Record{Type: ledger.Invest, Amount: fmt.Sprint(i + 1)}
	}
	return out
}

func TestRecent(t *testing.T) {
	records := makeRecords(12)
	got := Recent(records, 10)
	require.Len(t, got, 10)
	require.Equal(t, "12", got[0].Amount)
	require.Equal(t, "3", got[9].Amount)
	require.Equal(t, "1", records[0].Amount, "input untouched")

	short := Recent(makeRecords(3), 10)
	require.Len(t, short, 3)
	require.Equal(t, "3", short[0].Amount)

	require.Empty(t, Recent(nil, 10))
	require.Empty(t, Recent(records, 0))
}

func TestServiceSingleListPerCall(t *testing.T) {
	store := &countingStore{records: makeRecords(12)}
	svc := NewService(store, 0)
	ctx := context.Background()

	first, err := svc.History(ctx)
	require.NoError(t, err)
	second, err := svc.History(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Len(t, first, DefaultHistorySize)
	require.Equal(t, 2, store.lists)

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.True(t, sum.Invested.Equal(decimal.NewFromInt(78)))
	require.Equal(t, 3, store.lists)
}

func TestServiceHistorySize(t *testing.T) {
	svc := NewService(&countingStore{records: makeRecords(5)}, 2)
	got, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "5", got[0].Amount)
}

func TestServiceErrors(t *testing.T) {
	boom := &ledger.StoreError{Op: "list", Err: errors.New("timeout")}
	svc := NewService(&countingStore{err: boom}, 10)

	_, err := svc.Summary(context.Background())
	require.ErrorIs(t, err, boom)
	_, err = svc.History(context.Background())
	require.ErrorIs(t, err, boom)
}
