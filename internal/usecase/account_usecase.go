package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peerpay/peerledger/internal/domain"
)

// AccountUseCase is the account-provisioning path used by the external
// registration collaborator. The engine never creates accounts.
type AccountUseCase struct {
	accountRepo AccountRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	UserID         string
	InitialBalance decimal.Decimal
}

// OpenAccount creates the account row for a newly registered user. The
// seeding policy for the initial balance is owned by the caller.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	if input.InitialBalance.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()

	account := &domain.Account{
		UserID:    input.UserID,
		Balance:   input.InitialBalance,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}
