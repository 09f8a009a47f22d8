package postgres

import (
	"context"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepository implements domain.AccountRepository using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, name, kind, color, icon, sort_order, linked_account_id, created_at, updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Name, &a.Kind, &a.Color, &a.Icon, &a.SortOrder, &a.LinkedAccountID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create creates a new account
func (r *AccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (id, name, kind, color, icon, sort_order, linked_account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+accountColumns,
		uuid.NewString(), account.Name, account.Kind, account.Color, account.Icon, account.SortOrder, account.LinkedAccountID,
	)
	return scanAccount(row)
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(id string) (*domain.Account, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	account, err := scanAccount(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetAll retrieves all accounts ordered by sort order then name
func (r *AccountRepository) GetAll() ([]*domain.Account, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, account)
	}
	return result, rows.Err()
}

// Update updates an existing account
func (r *AccountRepository) Update(id string, account *domain.Account) (*domain.Account, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE accounts
		SET name = $2, kind = $3, color = $4, icon = $5, sort_order = $6, linked_account_id = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+accountColumns,
		id, account.Name, account.Kind, account.Color, account.Icon, account.SortOrder, account.LinkedAccountID,
	)
	updated, err := scanAccount(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete permanently removes an account. Referencing transactions make the
// delete fail with a foreign key violation, which surfaces to the caller.
func (r *AccountRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
