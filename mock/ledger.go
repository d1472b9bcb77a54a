package mock

import (
	"context"

	"github.com/fwojciec/heroscrape"
)

var _ heroscrape.Ledger = (*Ledger)(nil)

// Ledger is a mock implementation of heroscrape.Ledger.
type Ledger struct {
	CreateRunFn    func(ctx context.Context, run *heroscrape.Run) error
	RecordItemFn   func(ctx context.Context, runID string, res *heroscrape.ItemResult) error
	FinishRunFn    func(ctx context.Context, run *heroscrape.Run) error
	FindRunsFn     func(ctx context.Context, filter heroscrape.RunFilter) ([]*heroscrape.Run, error)
	FindRunItemsFn func(ctx context.Context, runID string) ([]*heroscrape.RunItem, error)
}

func (l *Ledger) CreateRun(ctx context.Context, run *heroscrape.Run) error {
	return l.CreateRunFn(ctx, run)
}

func (l *Ledger) RecordItem(ctx context.Context, runID string, res *heroscrape.ItemResult) error {
	return l.RecordItemFn(ctx, runID, res)
}

func (l *Ledger) FinishRun(ctx context.Context, run *heroscrape.Run) error {
	return l.FinishRunFn(ctx, run)
}

func (l *Ledger) FindRuns(ctx context.Context, filter heroscrape.RunFilter) ([]*heroscrape.Run, error) {
	return l.FindRunsFn(ctx, filter)
}

func (l *Ledger) FindRunItems(ctx context.Context, runID string) ([]*heroscrape.RunItem, error) {
	return l.FindRunItemsFn(ctx, runID)
}
