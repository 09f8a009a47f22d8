package service

import (
	"testing"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountFixture() (*AccountService, *testutil.MockAccountRepository, *testutil.MockBucketRepository) {
	accountRepo := testutil.NewMockAccountRepository()
	bucketRepo := testutil.NewMockBucketRepository()
	return NewAccountService(accountRepo, bucketRepo), accountRepo, bucketRepo
}

func TestCreateAccount(t *testing.T) {
	svc, _, _ := newAccountFixture()

	account, err := svc.CreateAccount(AccountInput{Name: "  Compte courant ", Kind: domain.AccountChecking})

	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.Equal(t, "Compte courant", account.Name)
	assert.Equal(t, domain.AccountChecking, account.Kind)
}

func TestCreateAccount_NameRequired(t *testing.T) {
	svc, _, _ := newAccountFixture()

	_, err := svc.CreateAccount(AccountInput{Name: "   ", Kind: domain.AccountChecking})

	assert.ErrorIs(t, err, domain.ErrNameRequired)
}

func TestCreateAccount_InvalidKind(t *testing.T) {
	svc, _, _ := newAccountFixture()

	_, err := svc.CreateAccount(AccountInput{Name: "Compte", Kind: "WALLET"})

	assert.ErrorIs(t, err, domain.ErrInvalidAccountKind)
}

func TestCreateAccount_LinkedAccountMustExist(t *testing.T) {
	svc, accountRepo, _ := newAccountFixture()

	missing := "acc-missing"
	_, err := svc.CreateAccount(AccountInput{Name: "Amex", Kind: domain.AccountCreditCard, LinkedAccountID: &missing})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	accountRepo.AddAccount(&domain.Account{ID: "acc-checking", Name: "Checking", Kind: domain.AccountChecking})
	checking := "acc-checking"
	account, err := svc.CreateAccount(AccountInput{Name: "Amex", Kind: domain.AccountCreditCard, LinkedAccountID: &checking})
	require.NoError(t, err)
	require.NotNil(t, account.LinkedAccountID)
	assert.Equal(t, "acc-checking", *account.LinkedAccountID)
}

func TestUpdateAccount_NotFound(t *testing.T) {
	svc, _, _ := newAccountFixture()

	_, err := svc.UpdateAccount("missing", AccountInput{Name: "X", Kind: domain.AccountChecking})

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestDeleteAccount(t *testing.T) {
	svc, accountRepo, _ := newAccountFixture()

	accountRepo.AddAccount(&domain.Account{ID: "acc-1", Name: "Old", Kind: domain.AccountChecking})

	require.NoError(t, svc.DeleteAccount("acc-1"))
	assert.ErrorIs(t, svc.DeleteAccount("acc-1"), domain.ErrAccountNotFound)
}

func TestCreateBucket(t *testing.T) {
	svc, accountRepo, _ := newAccountFixture()

	accountRepo.AddAccount(&domain.Account{ID: "acc-savings", Name: "Livret", Kind: domain.AccountSavings})

	goal := decimal.NewFromInt(3000)
	bucket, err := svc.CreateBucket(BucketInput{
		Name:       "Travel",
		AccountID:  "acc-savings",
		Goal:       &goal,
		BaseAmount: decimal.NewFromInt(500),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, bucket.ID)
	assert.Equal(t, "500.00", bucket.BaseAmount.StringFixed(2))
}

func TestCreateBucket_RejectsNonBucketedAccount(t *testing.T) {
	svc, accountRepo, _ := newAccountFixture()

	accountRepo.AddAccount(&domain.Account{ID: "acc-checking", Name: "Checking", Kind: domain.AccountChecking})

	_, err := svc.CreateBucket(BucketInput{Name: "Travel", AccountID: "acc-checking"})

	assert.ErrorIs(t, err, domain.ErrBucketAccountKind)
}

func TestCreateBucket_RejectsNegativeGoal(t *testing.T) {
	svc, accountRepo, _ := newAccountFixture()

	accountRepo.AddAccount(&domain.Account{ID: "acc-savings", Name: "Livret", Kind: domain.AccountSavings})

	goal := decimal.NewFromInt(-1)
	_, err := svc.CreateBucket(BucketInput{Name: "Travel", AccountID: "acc-savings", Goal: &goal})

	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestGetBuckets_AccountMustExist(t *testing.T) {
	svc, _, _ := newAccountFixture()

	_, err := svc.GetBuckets("missing")

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
