package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/unikron/swapd/src/logger"
	"github.com/unikron/swapd/src/swap/domain"
)

// historyCap bounds the in-memory most-recent-first history view.
const historyCap = 20

// Tracker holds the single current in-flight transaction plus a bounded
// history for display. Only the swap executor writes it; the history is not
// required for execution correctness. An optional repository mirrors records
// for the external history view; persistence failures are logged, never
// propagated.
type Tracker struct {
	mu      sync.Mutex
	current *domain.Transaction
	history []domain.Transaction
	repo    domain.TransactionRepository
	logger  *logger.Logger
}

func NewTracker(repo domain.TransactionRepository, logg *logger.Logger) *Tracker {
	return &Tracker{repo: repo, logger: logg}
}

// Record installs tx as the current record. It refuses to displace a record
// that has not reached a terminal status: that would mean two interleaved
// executions, which the executor's re-entrancy rule forbids.
func (t *Tracker) Record(ctx context.Context, tx domain.Transaction) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil && !t.current.Status.Terminal() {
		return fmt.Errorf("transaction %s still %s", t.current.ID, t.current.Status)
	}

	t.current = &tx
	t.history = append([]domain.Transaction{tx}, t.history...)
	if len(t.history) > historyCap {
		t.history = t.history[:historyCap]
	}

	if t.repo != nil {
		if err := t.repo.Save(ctx, &tx); err != nil {
			t.logger.Errorf("tracker: persist transaction %s: %v", tx.ID, err)
		}
	}
	return nil
}

// SetHash attaches the on-chain hash once the wallet has broadcast.
func (t *Tracker) SetHash(ctx context.Context, id, hash string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil || t.current.ID != id {
		return
	}
	t.current.Hash = hash
	t.syncHistoryLocked()
	t.persistLocked(ctx)
}

// Update moves the current record to status, optionally attaching the
// confirmed output amount or a failure reason.
func (t *Tracker) Update(ctx context.Context, id string, status domain.TxStatus, outputAmount, failReason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil || t.current.ID != id {
		return
	}
	t.current.Status = status
	if outputAmount != "" {
		t.current.OutputAmount = outputAmount
	}
	if failReason != "" {
		t.current.FailReason = failReason
	}
	t.syncHistoryLocked()
	t.persistLocked(ctx)
}

// Current returns a copy of the tracked record, or nil when none exists.
func (t *Tracker) Current() *domain.Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return nil
	}
	cp := *t.current
	return &cp
}

// History returns the bounded most-recent-first view.
func (t *Tracker) History() []domain.Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]domain.Transaction, len(t.history))
	copy(out, t.history)
	return out
}

// Reset clears the current slot, e.g. when the wallet state is invalidated.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = nil
}

func (t *Tracker) syncHistoryLocked() {
	for i := range t.history {
		if t.history[i].ID == t.current.ID {
			t.history[i] = *t.current
			return
		}
	}
}

func (t *Tracker) persistLocked(ctx context.Context) {
	if t.repo == nil {
		return
	}
	if err := t.repo.Update(ctx, t.current); err != nil {
		t.logger.Errorf("tracker: update transaction %s: %v", t.current.ID, err)
	}
}
