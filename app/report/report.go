// Package report aggregates ledger records into summary totals and recent
// history.
package report

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m3rciful/txbot/app/ledger"
	"github.com/m3rciful/txbot/core/logger"
)

// DefaultHistorySize is the number of records shown by History.
const DefaultHistorySize = 10

// Summary holds per-type totals. Net is Invested minus Returned.
type Summary struct {
	Invested decimal.Decimal
	Returned decimal.Decimal
	Net      decimal.Decimal
	// Skipped counts records of a known type whose amount could not be parsed.
	Skipped int
}

// Summarize sums amounts by type. Records of unknown type are excluded and a
// blank amount counts as zero.
func Summarize(records []ledger.Record) Summary {
	sum := Summary{Invested: decimal.Zero, Returned: decimal.Zero}
	for _, r := range records {
		if !r.Type.Valid() {
			continue
		}
		amount := decimal.Zero
		if raw := strings.TrimSpace(r.Amount); raw != "" {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				sum.Skipped++
				continue
			}
			amount = d
		}
		switch r.Type {
		case ledger.Invest:
			sum.Invested = sum.Invested.Add(amount)
		case ledger.Return:
			sum.Returned = sum.Returned.Add(amount)
		}
	}
	sum.Net = sum.Invested.Sub(sum.Returned)
	return sum
}

// Recent returns up to the last n records, most recent first. records is not
// modified.
func Recent(records []ledger.Record, n int) []ledger.Record {
	if n <= 0 || len(records) == 0 {
		return nil
	}
	if n > len(records) {
		n = len(records)
	}
	tail := records[len(records)-n:]
	out := make([]ledger.Record, 0, n)
	for i := len(tail) - 1; i >= 0; i-- {
		out = append(out, tail[i])
	}
	return out
}

// Service reads the ledger for the summary and history views. Each call
// issues exactly one List.
type Service struct {
	store       ledger.Store
	historySize int
}

// NewService returns a Service. historySize <= 0 selects DefaultHistorySize.
func NewService(store ledger.Store, historySize int) *Service {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	return &Service{store: store, historySize: historySize}
}

// Summary lists the ledger and totals it.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	records, err := s.list(ctx, "summary")
	if err != nil {
		return Summary{}, err
	}
	sum := Summarize(records)
	if sum.Skipped > 0 {
		logger.Warn(ctx, "report", "summary.skipped_rows",
			slog.Int("count", sum.Skipped),
		)
	}
	return sum, nil
}

// History returns the most recent records, newest first.
func (s *Service) History(ctx context.Context) ([]ledger.Record, error) {
	records, err := s.list(ctx, "history")
	if err != nil {
		return nil, err
	}
	return Recent(records, s.historySize), nil
}

func (s *Service) list(ctx context.Context, view string) ([]ledger.Record, error) {
	start := time.Now()
	records, err := s.store.List(ctx)
	if err != nil {
		logger.Error(ctx, "report", view+".list_failed",
			slog.String("status", "fail"),
			slog.Any("err", err),
			slog.Duration("duration", logger.Took(start)),
		)
		return nil, err
	}
	logger.Debug(ctx, "report", view+".listed",
		slog.String("status", "ok"),
		slog.Int("count", len(records)),
		slog.Duration("duration", logger.Took(start)),
	)
	return records, nil
}
