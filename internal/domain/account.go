package domain

import "time"

type AccountKind string

const (
	AccountChecking   AccountKind = "CHECKING"
	AccountCreditCard AccountKind = "CREDIT_CARD"
	AccountSavings    AccountKind = "SAVINGS"
	AccountInvestment AccountKind = "INVESTMENT"
)

// ValidAccountKind reports whether k is one of the four supported kinds.
func ValidAccountKind(k AccountKind) bool {
	switch k {
	case AccountChecking, AccountCreditCard, AccountSavings, AccountInvestment:
		return true
	}
	return false
}

// IsBucketed reports whether the kind supports savings buckets.
func (k AccountKind) IsBucketed() bool {
	return k == AccountSavings || k == AccountInvestment
}

type Account struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Kind            AccountKind `json:"kind"`
	Color           *string     `json:"color,omitempty"`
	Icon            *string     `json:"icon,omitempty"`
	SortOrder       int         `json:"sortOrder"`
	LinkedAccountID *string     `json:"linkedAccountId,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type AccountRepository interface {
	Create(account *Account) (*Account, error)
	GetByID(id string) (*Account, error)
	GetAll() ([]*Account, error)
	Update(id string, account *Account) (*Account, error)
	Delete(id string) error
}
