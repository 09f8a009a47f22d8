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

// BucketRepository implements domain.BucketRepository using PostgreSQL
type BucketRepository struct {
	pool *pgxpool.Pool
}

// NewBucketRepository creates a new BucketRepository
func NewBucketRepository(pool *pgxpool.Pool) *BucketRepository {
	return &BucketRepository{pool: pool}
}

const bucketColumns = `id, name, account_id, color, goal, base_amount, sort_order, created_at, updated_at`

func scanBucket(row pgx.Row) (*domain.Bucket, error) {
	var b domain.Bucket
	var goal, baseAmount pgtype.Numeric
	err := row.Scan(&b.ID, &b.Name, &b.AccountID, &b.Color, &goal, &baseAmount, &b.SortOrder, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Goal = pgNumericToDecimalPtr(goal)
	b.BaseAmount = pgNumericToDecimal(baseAmount)
	return &b, nil
}

// Create creates a new bucket
func (r *BucketRepository) Create(bucket *domain.Bucket) (*domain.Bucket, error) {
	ctx := context.Background()
	goal, err := decimalPtrToPgNumeric(bucket.Goal)
	if err != nil {
		return nil, fmt.Errorf("invalid goal: %w", err)
	}
	baseAmount, err := decimalToPgNumeric(bucket.BaseAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid base amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO buckets (id, name, account_id, color, goal, base_amount, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+bucketColumns,
		uuid.NewString(), bucket.Name, bucket.AccountID, bucket.Color, goal, baseAmount, bucket.SortOrder,
	)
	return scanBucket(row)
}

// GetByID retrieves a bucket by its ID
func (r *BucketRepository) GetByID(id string) (*domain.Bucket, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+bucketColumns+` FROM buckets WHERE id = $1`, id)
	bucket, err := scanBucket(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBucketNotFound
		}
		return nil, err
	}
	return bucket, nil
}

// GetByAccount retrieves the buckets of an account ordered by sort order
func (r *BucketRepository) GetByAccount(accountID string) ([]*domain.Bucket, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+bucketColumns+` FROM buckets WHERE account_id = $1 ORDER BY sort_order, name`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Bucket
	for rows.Next() {
		bucket, err := scanBucket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, bucket)
	}
	return result, rows.Err()
}

// Update updates an existing bucket
func (r *BucketRepository) Update(id string, bucket *domain.Bucket) (*domain.Bucket, error) {
	ctx := context.Background()
	goal, err := decimalPtrToPgNumeric(bucket.Goal)
	if err != nil {
		return nil, fmt.Errorf("invalid goal: %w", err)
	}
	baseAmount, err := decimalToPgNumeric(bucket.BaseAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid base amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE buckets
		SET name = $2, account_id = $3, color = $4, goal = $5, base_amount = $6, sort_order = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+bucketColumns,
		id, bucket.Name, bucket.AccountID, bucket.Color, goal, baseAmount, bucket.SortOrder,
	)
	updated, err := scanBucket(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBucketNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a bucket. Transactions referencing it keep their rows; the
// schema clears the reference on delete.
func (r *BucketRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM buckets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBucketNotFound
	}
	return nil
}
