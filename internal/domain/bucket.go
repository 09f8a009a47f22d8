package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bucket is a named sub-allocation inside a savings or investment account.
// Its balance is always computed from the ledger; only BaseAmount is stored.
type Bucket struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	AccountID  string           `json:"accountId"`
	Color      *string          `json:"color,omitempty"`
	Goal       *decimal.Decimal `json:"goal,omitempty"`
	BaseAmount decimal.Decimal  `json:"baseAmount"`
	SortOrder  int              `json:"sortOrder"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

type BucketRepository interface {
	Create(bucket *Bucket) (*Bucket, error)
	GetByID(id string) (*Bucket, error)
	GetByAccount(accountID string) ([]*Bucket, error)
	Update(id string, bucket *Bucket) (*Bucket, error)
	Delete(id string) error
}
