package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hucha/internal/domain"
)

// BalanceApplier translates balance-affecting domain events into account
// mutations inside the transaction of the command that raised them, so the
// triggering write and its side effect commit atomically.
type BalanceApplier struct {
	accounts AccountRepository
}

// NewBalanceApplier creates a BalanceApplier.
func NewBalanceApplier(accounts AccountRepository) *BalanceApplier {
	return &BalanceApplier{accounts: accounts}
}

// Register wires the applier into a dispatcher.
func (b *BalanceApplier) Register(d *Dispatcher) {
	d.Register(domain.EventTypeTransferRegistered, b.applyTransfer)
	d.Register(domain.EventTypeTransferDeleted, b.applyTransferDeleted)
	d.Register(domain.EventTypeExpenseRegistered, b.applyExpenseRegistered)
	d.Register(domain.EventTypeExpenseDeleted, b.applyExpenseDeleted)
	d.Register(domain.EventTypeIncomeRegistered, b.applyIncomeRegistered)
	d.Register(domain.EventTypeIncomeDeleted, b.applyIncomeDeleted)
}

func (b *BalanceApplier) applyTransfer(ctx context.Context, tx Transaction, event domain.Event) error {
	ev, ok := event.(domain.TransferRegistered)
	if !ok {
		return NewUnexpectedf("unexpected payload for %s", event.EventType())
	}

	return b.move(ctx, tx, ev.FromAccountID, ev.ToAccountID, ev.Amount, ev.TransferID)
}

func (b *BalanceApplier) applyTransferDeleted(ctx context.Context, tx Transaction, event domain.Event) error {
	ev, ok := event.(domain.TransferDeleted)
	if !ok {
		return NewUnexpectedf("unexpected payload for %s", event.EventType())
	}

	// Reversal: money flows back from the destination to the source.
	return b.move(ctx, tx, ev.ToAccountID, ev.FromAccountID, ev.Amount, ev.TransferID)
}

// move debits fromID and credits toID. Accounts are locked in id order
// (deadlock prevention) and the withdrawal is attempted before the deposit,
// so an insufficient balance aborts the transaction with no partial effect.
func (b *BalanceApplier) move(ctx context.Context, tx Transaction, fromID, toID string, amount decimal.Decimal, transferID string) error {
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}

	locked := make(map[string]*domain.Account, 2)

	for _, id := range []string{first, second} {
		account, err := b.accounts.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return classify(err)
		}

		if account == nil {
			// Referential checks at transfer creation make this branch
			// unreachable; if it fires anyway the failure must not be lost.
			return NewUnexpectedf("account %s missing while applying transfer %s", id, transferID)
		}

		locked[id] = account
	}

	now := time.Now().UTC()

	from := locked[fromID]
	to := locked[toID]

	if err := from.Withdraw(amount, now); err != nil {
		return NewValidation(fmt.Errorf("%w: account %s", err, from.ID))
	}

	to.Deposit(amount, now)

	if err := b.accounts.UpdateBalance(ctx, tx, from); err != nil {
		return classify(err)
	}

	if err := b.accounts.UpdateBalance(ctx, tx, to); err != nil {
		return classify(err)
	}

	return nil
}

func (b *BalanceApplier) applyExpenseRegistered(ctx context.Context, tx Transaction, event domain.Event) error {
	ev, ok := event.(domain.ExpenseRegistered)
	if !ok {
		return NewUnexpectedf("unexpected payload for %s", event.EventType())
	}

	return b.withdraw(ctx, tx, ev.AccountID, ev.Amount)
}

func (b *BalanceApplier) applyExpenseDeleted(ctx context.Context, tx Transaction, event domain.Event) error {
	ev, ok := event.(domain.ExpenseDeleted)
	if !ok {
		return NewUnexpectedf("unexpected payload for %s", event.EventType())
	}

	return b.deposit(ctx, tx, ev.AccountID, ev.Amount)
}

func (b *BalanceApplier) applyIncomeRegistered(ctx context.Context, tx Transaction, event domain.Event) error {
	ev, ok := event.(domain.IncomeRegistered)
	if !ok {
		return NewUnexpectedf("unexpected payload for %s", event.EventType())
	}

	return b.deposit(ctx, tx, ev.AccountID, ev.Amount)
}

func (b *BalanceApplier) applyIncomeDeleted(ctx context.Context, tx Transaction, event domain.Event) error {
	ev, ok := event.(domain.IncomeDeleted)
	if !ok {
		return NewUnexpectedf("unexpected payload for %s", event.EventType())
	}

	return b.withdraw(ctx, tx, ev.AccountID, ev.Amount)
}

func (b *BalanceApplier) withdraw(ctx context.Context, tx Transaction, accountID string, amount decimal.Decimal) error {
	account, err := b.lock(ctx, tx, accountID)
	if err != nil {
		return err
	}

	if err := account.Withdraw(amount, time.Now().UTC()); err != nil {
		return NewValidation(fmt.Errorf("%w: account %s", err, accountID))
	}

	return classifyNil(b.accounts.UpdateBalance(ctx, tx, account))
}

func (b *BalanceApplier) deposit(ctx context.Context, tx Transaction, accountID string, amount decimal.Decimal) error {
	account, err := b.lock(ctx, tx, accountID)
	if err != nil {
		return err
	}

	account.Deposit(amount, time.Now().UTC())

	return classifyNil(b.accounts.UpdateBalance(ctx, tx, account))
}

func (b *BalanceApplier) lock(ctx context.Context, tx Transaction, accountID string) (*domain.Account, error) {
	account, err := b.accounts.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, classify(err)
	}

	if account == nil {
		return nil, NewUnexpectedf("account %s missing while applying balance event", accountID)
	}

	return account, nil
}

func classifyNil(err error) error {
	if err == nil {
		return nil
	}

	return classify(err)
}
