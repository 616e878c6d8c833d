package database

import (
	"context"
	"fmt"
	"kasjer/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"
)

const (
	referenceAlphabet    = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	referenceLength      = 10
	maxReferenceAttempts = 5
)

var newReference = mustReferenceGenerator()

func mustReferenceGenerator() func() string {
	gen, err := nanoid.CustomASCII(referenceAlphabet, referenceLength)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize nanoid generator: %v", err))
	}
	return gen
}

type CreateDepositParams struct {
	UserID      string
	Username    string
	Game        string
	Amount      decimal.Decimal
	CashappTag  string
	RequestedAt time.Time
}

type CreateWithdrawalParams struct {
	UserID      string
	Username    string
	Amount      decimal.Decimal
	Cashtag     string
	Notes       string
	RequestedAt time.Time
}

const depositColumns = `id::text, reference, user_id, username, game, amount::text, cashapp_tag, requested_at, status`

func scanDeposit(row pgx.Row) (*models.Deposit, error) {
	var d models.Deposit
	var amount string
	if err := row.Scan(&d.ID, &d.Reference, &d.UserID, &d.Username, &d.Game, &amount, &d.CashappTag, &d.Timestamp, &d.Status); err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("stored deposit amount %q: %w", amount, err)
	}
	d.Amount = value
	return &d, nil
}

const withdrawalColumns = `id::text, reference, user_id, username, amount::text, cashtag, notes, requested_at, status`

func scanWithdrawal(row pgx.Row) (*models.Withdrawal, error) {
	var w models.Withdrawal
	var amount string
	if err := row.Scan(&w.ID, &w.Reference, &w.UserID, &w.Username, &amount, &w.Cashtag, &w.Notes, &w.Timestamp, &w.Status); err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("stored withdrawal amount %q: %w", amount, err)
	}
	w.Amount = value
	return &w, nil
}

// insertWithReference runs insert with fresh references until one is not
// taken. Only a collision on referenceKey is retried: nothing was written in
// that case, so the retry cannot duplicate a request.
func insertWithReference[T any](referenceKey string, insert func(reference string) (T, error)) (T, error) {
	var zero T
	for i := 0; i < maxReferenceAttempts; i++ {
		record, err := insert(newReference())
		if err == nil {
			return record, nil
		}
		if name, ok := uniqueConstraint(err); ok && name == referenceKey {
			continue
		}
		return zero, classify(err)
	}
	return zero, fmt.Errorf("failed to generate a unique reference after %d attempts", maxReferenceAttempts)
}

func (q *Queries) CreateDeposit(ctx context.Context, arg CreateDepositParams) (*models.Deposit, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO deposits (id, reference, user_id, username, game, amount, cashapp_tag, requested_at, status)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9)
		RETURNING ` + depositColumns

	return insertWithReference("deposits_reference_key", func(reference string) (*models.Deposit, error) {
		return scanDeposit(q.db.QueryRow(ctx, query,
			uuid.New(), reference, arg.UserID, arg.Username, arg.Game,
			arg.Amount.String(), arg.CashappTag, arg.RequestedAt, models.StatusPending,
		))
	})
}

func (q *Queries) ListDeposits(ctx context.Context) ([]models.Deposit, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}

	rows, err := q.db.Query(ctx, `SELECT `+depositColumns+` FROM deposits ORDER BY requested_at DESC`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	deposits := []models.Deposit{}
	for rows.Next() {
		d, err := scanDeposit(rows)
		if err != nil {
			return nil, classify(err)
		}
		deposits = append(deposits, *d)
	}

	if err = rows.Err(); err != nil {
		return nil, classify(err)
	}

	return deposits, nil
}

func (q *Queries) CreateWithdrawal(ctx context.Context, arg CreateWithdrawalParams) (*models.Withdrawal, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO withdrawals (id, reference, user_id, username, amount, cashtag, notes, requested_at, status)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9)
		RETURNING ` + withdrawalColumns

	return insertWithReference("withdrawals_reference_key", func(reference string) (*models.Withdrawal, error) {
		return scanWithdrawal(q.db.QueryRow(ctx, query,
			uuid.New(), reference, arg.UserID, arg.Username,
			arg.Amount.String(), arg.Cashtag, arg.Notes, arg.RequestedAt, models.StatusPending,
		))
	})
}

func (q *Queries) ListWithdrawals(ctx context.Context) ([]models.Withdrawal, error) {
	if err := q.ready(); err != nil {
		return nil, err
	}

	rows, err := q.db.Query(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals ORDER BY requested_at DESC`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	withdrawals := []models.Withdrawal{}
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, classify(err)
		}
		withdrawals = append(withdrawals, *w)
	}

	if err = rows.Err(); err != nil {
		return nil, classify(err)
	}

	return withdrawals, nil
}
