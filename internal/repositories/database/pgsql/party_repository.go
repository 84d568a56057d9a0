package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/core/domain"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	"github.com/openretail/ledger_backend/internal/models"
	"github.com/openretail/ledger_backend/internal/utils/mapping"
	"github.com/openretail/ledger_backend/internal/utils/pagination"
)

const partyColumns = "party_id, name, email, phone, role, status, tier, loyalty_points, password_hash, joined_at, created_at, created_by, last_updated_at, last_updated_by"

// PostgreSQL error codes for constraint violations.
const (
	uniqueViolationCode = "23505"
	checkViolationCode  = "23514"
)

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates the repository for party rows.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepository {
	return &PgxPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PartyRepository = (*PgxPartyRepository)(nil)

func scanPartyRow(row pgx.Row) (models.Party, error) {
	var m models.Party
	err := row.Scan(
		&m.PartyID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Role,
		&m.Status,
		&m.Tier,
		&m.LoyaltyPoints,
		&m.PasswordHash,
		&m.JoinedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)
	query := `
		INSERT INTO parties (party_id, name, email, phone, role, status, tier, loyalty_points, password_hash, joined_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PartyID,
		m.Name,
		m.Email,
		m.Phone,
		m.Role,
		m.Status,
		m.Tier,
		m.LoyaltyPoints,
		m.PasswordHash,
		m.JoinedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: party %s", apperrors.ErrDuplicate, m.PartyID)
		}
		return fmt.Errorf("failed to save party: %w", err)
	}
	return nil
}

func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := fmt.Sprintf(`SELECT %s FROM parties WHERE party_id = $1;`, partyColumns)

	m, err := scanPartyRow(r.Pool.QueryRow(ctx, query, partyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: party %s", apperrors.ErrNotFound, partyID)
		}
		return nil, fmt.Errorf("failed to find party %s: %w", partyID, err)
	}
	party := mapping.ToDomainParty(m)
	return &party, nil
}

func (r *PgxPartyRepository) FindPartyByEmail(ctx context.Context, email string) (*domain.Party, error) {
	query := fmt.Sprintf(`SELECT %s FROM parties WHERE lower(email) = lower($1);`, partyColumns)

	m, err := scanPartyRow(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: email %s", apperrors.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to find party by email: %w", err)
	}
	party := mapping.ToDomainParty(m)
	return &party, nil
}

func (r *PgxPartyRepository) ListParties(ctx context.Context, limit int, nextToken *string) ([]domain.Party, *string, error) {
	var args []any
	query := fmt.Sprintf(`SELECT %s FROM parties`, partyColumns)

	if nextToken != nil && *nextToken != "" {
		after, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, after)
		query += fmt.Sprintf(" WHERE joined_at > $%d", len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY joined_at ASC, party_id ASC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	var modelParties []models.Party
	for rows.Next() {
		m, serr := scanPartyRow(rows)
		if serr != nil {
			return nil, nil, fmt.Errorf("failed to scan party row: %w", serr)
		}
		modelParties = append(modelParties, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating party rows: %w", err)
	}

	var token *string
	if len(modelParties) > limit {
		modelParties = modelParties[:limit]
		t := pagination.EncodeDateBasedToken(modelParties[len(modelParties)-1].JoinedAt)
		token = &t
	}
	return mapping.ToDomainPartySlice(modelParties), token, nil
}

func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	m := mapping.ToModelParty(party)
	query := `
		UPDATE parties SET
			name = $2,
			email = $3,
			phone = $4,
			role = $5,
			status = $6,
			tier = $7,
			loyalty_points = $8,
			password_hash = $9,
			last_updated_at = $10,
			last_updated_by = $11
		WHERE party_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PartyID,
		m.Name,
		m.Email,
		m.Phone,
		m.Role,
		m.Status,
		m.Tier,
		m.LoyaltyPoints,
		m.PasswordHash,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to update party %s: %w", m.PartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: party %s", apperrors.ErrNotFound, m.PartyID)
	}
	return nil
}
