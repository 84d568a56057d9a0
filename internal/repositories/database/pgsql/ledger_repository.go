package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/core/domain"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	"github.com/openretail/ledger_backend/internal/models"
	"github.com/openretail/ledger_backend/internal/utils/mapping"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates the repository for balances and the mutation path.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `SELECT amount FROM balances WHERE account_id = $1;`

	var amount decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Accounts exist implicitly; unknown means zero.
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to get balance for %s: %w", accountID, err)
	}
	return amount, nil
}

func (r *PgxLedgerRepository) ListBalances(ctx context.Context) ([]domain.Balance, error) {
	query := `
		SELECT account_id, amount, created_at, created_by, last_updated_at, last_updated_by
		FROM balances
		ORDER BY account_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	defer rows.Close()

	var balances []domain.Balance
	for rows.Next() {
		var m models.Balance
		if err := rows.Scan(
			&m.AccountID,
			&m.Amount,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		balances = append(balances, domain.Balance{
			AccountID: m.AccountID,
			Amount:    m.Amount,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows: %w", err)
	}
	return balances, nil
}

func (r *PgxLedgerRepository) TotalSupply(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM balances;`

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute total supply: %w", err)
	}
	return total, nil
}

// SaveEntry applies the balance deltas and inserts the journal entry in one
// database transaction. Balance rows are locked in deterministic order; the
// non-negativity check runs against the locked value, so concurrent debits
// cannot both pass.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.Entry, deltas map[string]decimal.Decimal) (*domain.Entry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.applyDeltasInTx(ctx, tx, entry, deltas); err != nil {
		return nil, err
	}

	modelEntry := mapping.ToModelEntry(entry)
	insertQuery := `
		INSERT INTO entries (entry_id, origin, destination, amount, category, description, occurred_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING sequence;
	`
	err = tx.QueryRow(ctx, insertQuery,
		modelEntry.EntryID,
		modelEntry.Origin,
		modelEntry.Destination,
		modelEntry.Amount,
		modelEntry.Category,
		modelEntry.Description,
		modelEntry.OccurredAt,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
	).Scan(&entry.Sequence)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert entry "+modelEntry.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	saved := entry
	return &saved, nil
}

// applyDeltasInTx upserts every touched balance under row locks. Account order
// is fixed by the sorted upsert below through ON CONFLICT on the primary key,
// one statement per account.
func (r *PgxLedgerRepository) applyDeltasInTx(ctx context.Context, tx pgx.Tx, entry domain.Entry, deltas map[string]decimal.Decimal) error {
	accountIDs := make([]string, 0, len(deltas))
	for accountID := range deltas {
		accountIDs = append(accountIDs, accountID)
	}
	// Lock in a stable order so concurrent transfers touching the same pair
	// cannot deadlock.
	for i := 0; i < len(accountIDs); i++ {
		for j := i + 1; j < len(accountIDs); j++ {
			if accountIDs[j] < accountIDs[i] {
				accountIDs[i], accountIDs[j] = accountIDs[j], accountIDs[i]
			}
		}
	}

	upsertQuery := `
		INSERT INTO balances (account_id, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $3, $4)
		ON CONFLICT (account_id) DO UPDATE SET
			amount = balances.amount + EXCLUDED.amount,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING amount;
	`
	for _, accountID := range accountIDs {
		var updated decimal.Decimal
		err := tx.QueryRow(ctx, upsertQuery,
			accountID,
			deltas[accountID],
			entry.CreatedAt,
			entry.CreatedBy,
		).Scan(&updated)
		if err != nil {
			// The balances table carries a CHECK (amount >= 0); a violation means
			// the delta would overdraw the account.
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == checkViolationCode {
				return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientBalance, accountID)
			}
			return apperrors.NewAppError(500, "failed to update balance for "+accountID, err)
		}
		if updated.Sign() < 0 {
			return fmt.Errorf("%w: account %s would drop to %s",
				apperrors.ErrInsufficientBalance, accountID, updated.String())
		}
	}
	return nil
}
