package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/peerpay/peerledger/internal/domain"
)

// TransferUseCase is the atomic transfer engine. It validates a request,
// mutates both balances and appends the linked ledger pair as a single
// all-or-nothing unit, retrying transient storage failures with backoff.
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
	refGen      ReferenceGenerator
	retrier     Retrier
	risk        RiskEvaluator
	logger      zerolog.Logger
}

// NewTransferUseCase creates a new TransferUseCase. risk may be nil to
// disable the advisory hook.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	ledgerRepo LedgerRepository,
	refGen ReferenceGenerator,
	retrier Retrier,
	risk RiskEvaluator,
	logger zerolog.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		refGen:      refGen,
		retrier:     retrier,
		risk:        risk,
		logger:      logger,
	}
}

// Execute moves amount from the actor to the recipient.
//
// Preconditions are checked in a fixed order, short-circuiting on the
// first failure: amount, self-transfer, sender exists, sufficient funds,
// recipient exists. Once they pass, the debit, the credit and the two
// ledger rows commit together or not at all. Conflicting transfers on
// the same account are serialized by locking account rows in sorted ID
// order; a reference collision or a serialization failure aborts the
// attempt and a fresh attempt (with a fresh reference) is retried a
// bounded number of times.
func (uc *TransferUseCase) Execute(ctx context.Context, req domain.TransferRequest) (*domain.TransferResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	req.Description = domain.NormalizeDescription(req.Description)

	uc.assessRisk(ctx, req)

	var result *domain.TransferResult

	err := uc.retrier.Retry(ctx, func() error {
		res, err := uc.attempt(ctx, req)
		if err != nil {
			return err
		}

		result = res

		return nil
	})
	if err != nil {
		return nil, uc.mapFailure(err)
	}

	uc.logger.Info().
		Str("reference", result.Reference).
		Str("sender", req.ActorID).
		Str("recipient", req.RecipientID).
		Str("amount", req.Amount.String()).
		Msg("transfer committed")

	return result, nil
}

// attempt runs one atomic unit. The deferred rollback is a no-op after
// a successful commit.
func (uc *TransferUseCase) attempt(ctx context.Context, req domain.TransferRequest) (*domain.TransferResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := []string{req.ActorID, req.RecipientID}
	sort.Strings(ids)

	accounts, err := uc.accountRepo.GetForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	var sender, recipient *domain.Account
	for _, a := range accounts {
		switch a.UserID {
		case req.ActorID:
			sender = a
		case req.RecipientID:
			recipient = a
		}
	}

	if sender == nil {
		return nil, domain.ErrSenderNotFound
	}

	if err := sender.ValidateDebit(req.Amount); err != nil {
		return nil, err
	}

	if recipient == nil {
		return nil, domain.ErrRecipientNotFound
	}

	now := time.Now().UTC()

	senderBalance, err := uc.accountRepo.ApplyDelta(ctx, tx, req.ActorID, req.Amount.Neg(), now)
	if err != nil {
		return nil, err
	}

	receiverBalance, err := uc.accountRepo.ApplyDelta(ctx, tx, req.RecipientID, req.Amount, now)
	if err != nil {
		return nil, err
	}

	reference := uc.refGen.NewReference()

	debit := &domain.LedgerEntry{
		ID:                   uc.refGen.NewID(),
		Reference:            reference,
		AccountID:            req.ActorID,
		Direction:            domain.DirectionDebit,
		SenderID:             req.ActorID,
		ReceiverID:           req.RecipientID,
		Amount:               req.Amount,
		Status:               domain.StatusCompleted,
		Description:          req.Description,
		SenderBalanceAfter:   senderBalance,
		ReceiverBalanceAfter: receiverBalance,
		CreatedAt:            now,
	}

	if err := uc.ledgerRepo.Append(ctx, tx, debit); err != nil {
		return nil, err
	}

	credit := &domain.LedgerEntry{
		ID:                   uc.refGen.NewID(),
		Reference:            reference,
		AccountID:            req.RecipientID,
		Direction:            domain.DirectionCredit,
		SenderID:             req.ActorID,
		ReceiverID:           req.RecipientID,
		Amount:               req.Amount,
		Status:               domain.StatusCompleted,
		Description:          req.Description,
		SenderBalanceAfter:   senderBalance,
		ReceiverBalanceAfter: receiverBalance,
		CreatedAt:            now,
	}

	if err := uc.ledgerRepo.Append(ctx, tx, credit); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.TransferResult{
		Reference:     reference,
		Amount:        req.Amount,
		SenderBalance: senderBalance,
	}, nil
}

// assessRisk runs the advisory hook before the atomic unit. It reads the
// sender balance without locking; the assessment is logged, never acted
// on, so a stale read is acceptable.
func (uc *TransferUseCase) assessRisk(ctx context.Context, req domain.TransferRequest) {
	if uc.risk == nil {
		return
	}

	input := RiskInput{
		ActorID:     req.ActorID,
		RecipientID: req.RecipientID,
		Amount:      req.Amount,
	}

	if account, err := uc.accountRepo.GetByUserID(ctx, req.ActorID); err == nil {
		input.SenderBalance = account.Balance
	}

	assessment := uc.risk.Evaluate(ctx, input)
	if assessment.Flagged() {
		uc.logger.Warn().
			Str("sender", req.ActorID).
			Str("recipient", req.RecipientID).
			Str("amount", req.Amount.String()).
			Int("risk_score", assessment.Score).
			Strs("risk_flags", assessment.Flags).
			Msg("suspicious transfer flagged")
	}
}

// mapFailure classifies an exhausted or aborted attempt. Validation
// failures are terminal and pass through; anything else is reported as a
// storage failure so callers never retry blindly without the reference.
func (uc *TransferUseCase) mapFailure(err error) error {
	for _, terminal := range []error{
		domain.ErrInvalidAmount,
		domain.ErrSelfTransfer,
		domain.ErrSenderNotFound,
		domain.ErrRecipientNotFound,
		domain.ErrInsufficientFunds,
	} {
		if errors.Is(err, terminal) {
			return err
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
}
