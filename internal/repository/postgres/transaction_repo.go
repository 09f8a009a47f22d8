package postgres

import (
	"context"
	"fmt"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, label, amount, date, month, year, status, note,
	account_id, destination_account_id, category_id, sub_category_id, bucket_id,
	is_amex, recurring, sort_order, created_at, updated_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var amount pgtype.Numeric
	err := row.Scan(
		&t.ID, &t.Label, &amount, &t.Date, &t.Month, &t.Year, &t.Status, &t.Note,
		&t.AccountID, &t.DestinationAccountID, &t.CategoryID, &t.SubCategoryID, &t.BucketID,
		&t.IsAmex, &t.Recurring, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Amount = pgNumericToDecimal(amount)
	return &t, nil
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, sql string, args ...any) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

const insertTransactionSQL = `
	INSERT INTO transactions (id, label, amount, date, month, year, status, note,
		account_id, destination_account_id, category_id, sub_category_id, bucket_id,
		is_amex, recurring, sort_order)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	RETURNING ` + transactionColumns

// Create creates a new transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, insertTransactionSQL,
		uuid.NewString(), transaction.Label, amount, transaction.Date,
		transaction.Month, transaction.Year, transaction.Status, transaction.Note,
		transaction.AccountID, transaction.DestinationAccountID, transaction.CategoryID,
		transaction.SubCategoryID, transaction.BucketID,
		transaction.IsAmex, transaction.Recurring, transaction.SortOrder,
	)
	return scanTransaction(row)
}

// CreateBatch inserts several transactions in a single round trip
func (r *TransactionRepository) CreateBatch(transactions []*domain.Transaction) error {
	ctx := context.Background()
	batch := &pgx.Batch{}
	for _, t := range transactions {
		amount, err := decimalToPgNumeric(t.Amount)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		batch.Queue(insertTransactionSQL,
			uuid.NewString(), t.Label, amount, t.Date,
			t.Month, t.Year, t.Status, t.Note,
			t.AccountID, t.DestinationAccountID, t.CategoryID, t.SubCategoryID, t.BucketID,
			t.IsAmex, t.Recurring, t.SortOrder,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range transactions {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(id string) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	transaction, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// Update updates an existing transaction
func (r *TransactionRepository) Update(id string, transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE transactions
		SET label = $2, amount = $3, date = $4, month = $5, year = $6, status = $7, note = $8,
			account_id = $9, destination_account_id = $10, category_id = $11,
			sub_category_id = $12, bucket_id = $13, is_amex = $14, recurring = $15,
			sort_order = $16, updated_at = now()
		WHERE id = $1
		RETURNING `+transactionColumns,
		id, transaction.Label, amount, transaction.Date,
		transaction.Month, transaction.Year, transaction.Status, transaction.Note,
		transaction.AccountID, transaction.DestinationAccountID, transaction.CategoryID,
		transaction.SubCategoryID, transaction.BucketID,
		transaction.IsAmex, transaction.Recurring, transaction.SortOrder,
	)
	updated, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete permanently removes a transaction
func (r *TransactionRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// ListByPeriod returns every row budgeted into the period, all statuses
func (r *TransactionRepository) ListByPeriod(period domain.Period) ([]*domain.Transaction, error) {
	return r.queryTransactions(context.Background(), `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE year = $1 AND month = $2
		ORDER BY sort_order, date NULLS LAST, created_at`,
		period.Year, period.Month,
	)
}

// ListByAccount returns rows where the account is source or destination,
// restricted to the given statuses
func (r *TransactionRepository) ListByAccount(accountID string, statuses []domain.TransactionStatus) ([]*domain.Transaction, error) {
	return r.queryTransactions(context.Background(), `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE (account_id = $1 OR destination_account_id = $1)
			AND status = ANY($2)
		ORDER BY year, month, created_at`,
		accountID, statusStrings(statuses),
	)
}

// ListByBucket returns rows assigned to the bucket, restricted to the given
// statuses
func (r *TransactionRepository) ListByBucket(bucketID string, statuses []domain.TransactionStatus) ([]*domain.Transaction, error) {
	return r.queryTransactions(context.Background(), `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE bucket_id = $1 AND status = ANY($2)
		ORDER BY year, month, created_at`,
		bucketID, statusStrings(statuses),
	)
}

// ListRecurring returns the recurring rows of a period
func (r *TransactionRepository) ListRecurring(period domain.Period) ([]*domain.Transaction, error) {
	return r.queryTransactions(context.Background(), `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE recurring AND year = $1 AND month = $2
		ORDER BY sort_order, created_at`,
		period.Year, period.Month,
	)
}

// DeleteRecurring removes the recurring rows of a period
func (r *TransactionRepository) DeleteRecurring(period domain.Period) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE recurring AND year = $1 AND month = $2`, period.Year, period.Month)
	return err
}

// CompleteAmex marks every pending deferred-debit row of the period completed
// in a single statement and returns the affected count
func (r *TransactionRepository) CompleteAmex(period domain.Period) (int64, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		UPDATE transactions
		SET status = $3, updated_at = now()
		WHERE is_amex AND status = $4 AND year = $1 AND month = $2`,
		period.Year, period.Month, domain.StatusCompleted, domain.StatusPending,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DistinctPeriods returns every (year, month) present in the ledger, ascending
func (r *TransactionRepository) DistinctPeriods() ([]domain.Period, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT year, month FROM transactions ORDER BY year, month`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Period
	for rows.Next() {
		var p domain.Period
		if err := rows.Scan(&p.Year, &p.Month); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func statusStrings(statuses []domain.TransactionStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
