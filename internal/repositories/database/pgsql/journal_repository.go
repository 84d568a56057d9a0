package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/core/domain"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	"github.com/openretail/ledger_backend/internal/models"
	"github.com/openretail/ledger_backend/internal/utils/mapping"
	"github.com/openretail/ledger_backend/internal/utils/pagination"
)

const entryColumns = "entry_id, sequence, origin, destination, amount, category, description, occurred_at, created_at, created_by"

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates the read-side repository over the entries table.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

func scanEntryRow(row pgx.Row) (models.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.EntryID,
		&m.Sequence,
		&m.Origin,
		&m.Destination,
		&m.Amount,
		&m.Category,
		&m.Description,
		&m.OccurredAt,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM entries WHERE entry_id = $1;`, entryColumns)

	m, err := scanEntryRow(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	entry := mapping.ToDomainEntry(m)
	return &entry, nil
}

// filterClauses builds the WHERE fragment for an entry filter. Arguments are
// appended to args and referenced positionally.
func filterClauses(filter domain.EntryFilter, args *[]any) []string {
	var clauses []string
	add := func(clause string, value any) {
		*args = append(*args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(*args)))
	}

	if filter.Account != nil {
		add("(origin = $%d OR destination = $%[1]d)", *filter.Account)
	}
	if filter.Category != nil {
		add("category = $%d", string(*filter.Category))
	}
	if filter.From != nil {
		add("occurred_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("occurred_at <= $%d", *filter.To)
	}
	return clauses
}

func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	var args []any
	clauses := filterClauses(filter, &args)

	if nextToken != nil && *nextToken != "" {
		afterSeq, err := pagination.DecodeSequenceToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, afterSeq)
		clauses = append(clauses, fmt.Sprintf("sequence > $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM entries`, entryColumns)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY sequence ASC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var modelEntries []models.Entry
	for rows.Next() {
		m, serr := scanEntryRow(rows)
		if serr != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", serr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var token *string
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		t := pagination.EncodeSequenceToken(modelEntries[len(modelEntries)-1].Sequence)
		token = &t
	}
	return mapping.ToDomainEntrySlice(modelEntries), token, nil
}

func (r *PgxJournalRepository) ScanEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
	var args []any
	clauses := filterClauses(filter, &args)

	query := fmt.Sprintf(`SELECT %s FROM entries`, entryColumns)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY sequence ASC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan entries: %w", err)
	}
	defer rows.Close()

	var modelEntries []models.Entry
	for rows.Next() {
		m, serr := scanEntryRow(rows)
		if serr != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", serr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return mapping.ToDomainEntrySlice(modelEntries), nil
}
