package services

import (
	"fmt"
	"time"

	"github.com/saif727/stellar-testnet-gateway/config"
	"github.com/saif727/stellar-testnet-gateway/models"
	"github.com/stellar/go/txnbuild"
)

// buildPaymentTx builds an unsigned transaction with one native payment
// operation per entry of payments, in order. The base fee is a flat constant
// whatever the number of operations.
func (s *WalletService) buildPaymentTx(source txnbuild.Account, payments []models.Payment, memo string) (*txnbuild.Transaction, error) {
	ops := make([]txnbuild.Operation, 0, len(payments))
	for _, p := range payments {
		ops = append(ops, &txnbuild.Payment{
			Destination: p.RecipientPublicKey,
			Amount:      p.Amount.String(),
			Asset:       txnbuild.NativeAsset{},
		})
	}

	params := txnbuild.TransactionParams{
		SourceAccount:        source,
		IncrementSequenceNum: true,
		Operations:           ops,
		BaseFee:              s.cfg.BaseFee,
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewTimeout(int64(s.cfg.TxTimeout / time.Second))},
	}
	if memo != "" {
		params.Memo = txnbuild.MemoText(memo)
	}

	return txnbuild.NewTransaction(params)
}

// resolveMemo picks the memo for a multi-recipient transaction. Under the
// last_wins policy the last non-empty memo is used and the others are
// reported back as warnings.
func resolveMemo(payments []models.Payment, policy string) (string, []string, error) {
	var memos []int
	for i, p := range payments {
		if p.Memo != "" {
			memos = append(memos, i)
		}
	}
	if len(memos) == 0 {
		return "", nil, nil
	}
	if len(memos) > 1 && policy == config.MemoPolicyReject {
		return "", nil, fmt.Errorf("%w: %d recipients supplied a memo", ErrConflictingMemos, len(memos))
	}

	last := memos[len(memos)-1]
	var warnings []string
	for _, i := range memos[:len(memos)-1] {
		warnings = append(warnings, fmt.Sprintf("memo %q for recipient %s was dropped in favour of %q",
			payments[i].Memo, payments[i].RecipientPublicKey, payments[last].Memo))
	}
	return payments[last].Memo, warnings, nil
}
