package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrSenderNotFound    = errors.New("sender account not found")
	ErrRecipientNotFound = errors.New("recipient account not found")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrAccountExists     = errors.New("account already exists")

	// Transfer errors
	ErrSelfTransfer       = errors.New("cannot transfer to yourself")
	ErrInvalidAmount      = errors.New("invalid transfer amount")
	ErrDuplicateReference = errors.New("duplicate transfer reference")
	ErrStorageFailure     = errors.New("transfer failed, please try again")

	// Ledger errors
	ErrEntryNotFound = errors.New("transaction not found")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
