package services

import (
	stderrors "errors"
	"fmt"

	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/support/errors"
)

// Errors caused by caller input
var (
	ErrInvalidSecretKey = errors.New("invalid sender secret key")
	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrInvalidAmount    = errors.New("invalid amount: must be a positive number")
	ErrNoRecipients     = errors.New("at least one recipient is required")
	ErrConflictingMemos = errors.New("only one memo can be attached to a transaction")
)

// Errors caused by the ledger or the faucet
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrFundingFailed   = errors.New("funding error")
	ErrTransferFailed  = errors.New("transfer failed")
)

// IsInputError reports whether err was caused by an invalid request
func IsInputError(err error) bool {
	for _, target := range []error{
		ErrInvalidSecretKey,
		ErrInvalidPublicKey,
		ErrInvalidAmount,
		ErrNoRecipients,
		ErrConflictingMemos,
	} {
		if stderrors.Is(err, target) {
			return true
		}
	}
	return false
}

// FundingError is returned when Friendbot answers with a non-success status.
type FundingError struct {
	StatusCode int
	Body       string
}

func (e *FundingError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", ErrFundingFailed, e.StatusCode, e.Body)
}

func (e *FundingError) Unwrap() error {
	return ErrFundingFailed
}

// TransferError is returned when a payment could not be built, signed or
// submitted. Detail is what callers get to see: the Horizon problem document
// when there is one, the error text otherwise.
type TransferError struct {
	Detail interface{}
	cause  error
}

func newTransferError(cause error) *TransferError {
	te := &TransferError{Detail: cause.Error(), cause: cause}
	var herr *horizonclient.Error
	if stderrors.As(cause, &herr) {
		te.Detail = herr.Problem
	}
	return te
}

func (e *TransferError) Error() string {
	return ErrTransferFailed.Error() + ": " + e.cause.Error()
}

func (e *TransferError) Unwrap() []error {
	return []error{ErrTransferFailed, e.cause}
}
