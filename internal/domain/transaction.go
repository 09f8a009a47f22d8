package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// ValidStatus reports whether s is one of the three supported statuses.
func ValidStatus(s TransactionStatus) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Period identifies a budgeting month. It is independent of a transaction's
// calendar date: a row dated in one month can be budgeted into another.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Valid reports whether the period is a plausible budgeting month.
func (p Period) Valid() bool {
	return p.Month >= 1 && p.Month <= 12 && p.Year >= MinYear && p.Year <= MaxYear
}

// Before reports whether p precedes other in lexicographic (year, month) order.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// Previous returns the period immediately before p.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Year: p.Year - 1, Month: 12}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Transaction is the single-ledger entry. Amount is always signed from the
// perspective of AccountID (the source): negative means money leaves the
// source, positive means money enters it. When DestinationAccountID is set the
// same row also credits the destination with the negated amount; SignedEffect
// is the only place that interprets this.
type Transaction struct {
	ID                   string            `json:"id"`
	Label                string            `json:"label"`
	Amount               decimal.Decimal   `json:"amount"`
	Date                 *time.Time        `json:"date,omitempty"`
	Month                int               `json:"month"`
	Year                 int               `json:"year"`
	Status               TransactionStatus `json:"status"`
	Note                 *string           `json:"note,omitempty"`
	AccountID            string            `json:"accountId"`
	DestinationAccountID *string           `json:"destinationAccountId,omitempty"`
	CategoryID           *string           `json:"categoryId,omitempty"`
	SubCategoryID        *string           `json:"subCategoryId,omitempty"`
	BucketID             *string           `json:"bucketId,omitempty"`
	IsAmex               bool              `json:"isAmex"`
	Recurring            bool              `json:"recurring"`
	SortOrder            int               `json:"sortOrder"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}

// Period returns the transaction's budgeting period.
func (t *Transaction) Period() Period {
	return Period{Year: t.Year, Month: t.Month}
}

// IsTransfer reports whether the row encodes both a debit on the source and a
// credit on the destination.
func (t *Transaction) IsTransfer() bool {
	return t.DestinationAccountID != nil
}

// SignedEffect returns the effect of the transaction on the given account:
// the amount itself when the account is the source, its negation when the
// account is the destination of a transfer. The second return value is false
// when the row does not touch the account at all. Every balance computation
// must go through this function; a row affects a given account through at most
// one of the two columns, so summing SignedEffect never double-counts.
func (t *Transaction) SignedEffect(accountID string) (decimal.Decimal, bool) {
	if t.AccountID == accountID {
		return t.Amount, true
	}
	if t.DestinationAccountID != nil && *t.DestinationAccountID == accountID {
		return t.Amount.Neg(), true
	}
	return decimal.Decimal{}, false
}

type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	CreateBatch(transactions []*Transaction) error
	GetByID(id string) (*Transaction, error)
	Update(id string, transaction *Transaction) (*Transaction, error)
	Delete(id string) error

	// ListByPeriod returns every row budgeted into the period, all statuses.
	ListByPeriod(period Period) ([]*Transaction, error)
	// ListByAccount returns rows where the account is source or destination,
	// restricted to the given statuses.
	ListByAccount(accountID string, statuses []TransactionStatus) ([]*Transaction, error)
	// ListByBucket returns rows assigned to the bucket, restricted to the
	// given statuses.
	ListByBucket(bucketID string, statuses []TransactionStatus) ([]*Transaction, error)
	// ListRecurring returns the recurring rows of a period.
	ListRecurring(period Period) ([]*Transaction, error)
	// DeleteRecurring removes the recurring rows of a period.
	DeleteRecurring(period Period) error
	// CompleteAmex marks every pending deferred-debit row of the period
	// completed in a single statement and returns the affected count.
	CompleteAmex(period Period) (int64, error)
	// DistinctPeriods returns every (year, month) present in the ledger,
	// ascending.
	DistinctPeriods() ([]Period, error)
}
