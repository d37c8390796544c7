package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/saif727/stellar-testnet-gateway/config"
	"github.com/saif727/stellar-testnet-gateway/metrics"
	"github.com/saif727/stellar-testnet-gateway/models"
	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/keypair"
	hProtocol "github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/support/errors"
	"go.uber.org/zap"
)

const nativeAssetType = "native"

// WalletService provides methods for wallet operations
type WalletService struct {
	horizon       horizonclient.ClientInterface
	faucet        Faucet
	cfg           config.Stellar
	memoPolicy    string
	exposeSecrets bool
	logger        *zap.Logger
}

// NewWalletService creates a new WalletService instance
func NewWalletService(horizon horizonclient.ClientInterface, faucet Faucet, cfg config.Config, logger *zap.Logger) *WalletService {
	return &WalletService{
		horizon:       horizon,
		faucet:        faucet,
		cfg:           cfg.Stellar,
		memoPolicy:    cfg.Wallet.MemoPolicy,
		exposeSecrets: cfg.Log.ExposeSecrets,
		logger:        logger.Named("wallet"),
	}
}

// CreateWallet generates a new random keypair. Nothing is stored.
func (s *WalletService) CreateWallet() (*models.Keypair, error) {
	kp, err := keypair.Random()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate keypair")
	}

	s.logger.Info("New wallet", zap.String("public_key", kp.Address()))
	if s.exposeSecrets {
		s.logger.Debug("New wallet secret", zap.String("public_key", kp.Address()), zap.String("secret_key", kp.Seed()))
	}

	return &models.Keypair{PublicKey: kp.Address(), SecretKey: kp.Seed()}, nil
}

// FundWallet asks the faucet to credit publicKey
func (s *WalletService) FundWallet(ctx context.Context, publicKey string) error {
	if err := s.faucet.Fund(ctx, publicKey); err != nil {
		var ferr *FundingError
		if stderrors.As(err, &ferr) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrFundingFailed, err)
	}
	return nil
}

// AccountSnapshot fetches the current ledger state of publicKey
func (s *WalletService) AccountSnapshot(publicKey string) models.Result[models.AccountSnapshot] {
	account, err := s.accountDetail(publicKey)
	if err != nil {
		return models.Err[models.AccountSnapshot](err)
	}

	balances := make([]models.BalanceEntry, 0, len(account.Balances))
	for _, balance := range account.Balances {
		balances = append(balances, models.BalanceEntry{
			AssetType:          balance.Type,
			AssetCode:          balance.Code,
			AssetIssuer:        balance.Issuer,
			Balance:            balance.Balance,
			BuyingLiabilities:  balance.BuyingLiabilities,
			SellingLiabilities: balance.SellingLiabilities,
		})
	}

	return models.Ok(models.AccountSnapshot{
		AccountID: account.AccountID,
		Sequence:  account.Sequence,
		Balances:  balances,
	})
}

// GetBalance returns the native balance of publicKey, or "0" when the
// account holds no native balance entry.
func (s *WalletService) GetBalance(publicKey string) models.Result[string] {
	snapshot, err := s.AccountSnapshot(publicKey).Unwrap()
	if err != nil {
		return models.Err[string](errors.Wrap(err, "account information could not be retrieved"))
	}

	for _, b := range snapshot.Balances {
		if b.AssetType == nativeAssetType {
			s.logger.Debug("XLM balance", zap.String("public_key", publicKey), zap.String("balance", b.Balance))
			return models.Ok(b.Balance)
		}
	}
	s.logger.Debug("Balance not found", zap.String("public_key", publicKey))
	return models.Ok("0")
}

// TransactionHistory lists one page of transactions involving the account
func (s *WalletService) TransactionHistory(q models.HistoryQuery) models.Result[[]models.TransactionRecord] {
	if _, err := keypair.ParseAddress(q.PublicKey); err != nil {
		return models.Err[[]models.TransactionRecord](ErrInvalidPublicKey)
	}

	start := time.Now()
	page, err := s.horizon.Transactions(horizonclient.TransactionRequest{
		ForAccount: q.PublicKey,
		Cursor:     q.Cursor,
		Limit:      q.Limit,
		Order:      horizonclient.Order(q.Order),
	})
	metrics.Observe(metrics.Horizon, "transactions", start, err)
	if err != nil {
		return models.Err[[]models.TransactionRecord](errors.Wrap(err, "failed to fetch transaction history"))
	}

	records := make([]models.TransactionRecord, 0, len(page.Embedded.Records))
	for _, tx := range page.Embedded.Records {
		records = append(records, models.TransactionRecord{
			ID:            tx.ID,
			PagingToken:   tx.PT,
			CreatedAt:     tx.LedgerCloseTime,
			SourceAccount: tx.Account,
		})
	}
	return models.Ok(records)
}

// SendPayment transfers a native amount from the holder of senderSecret to a
// single recipient.
func (s *WalletService) SendPayment(senderSecret string, payment models.Payment) (*hProtocol.Transaction, error) {
	if err := validatePayment(payment); err != nil {
		return nil, err
	}
	return s.submitPayments(senderSecret, []models.Payment{payment}, payment.Memo)
}

// SendPaymentToMany transfers native amounts from the holder of senderSecret
// to every recipient in one transaction. The returned warnings name memos
// that could not be attached.
func (s *WalletService) SendPaymentToMany(senderSecret string, payments []models.Payment) (*hProtocol.Transaction, []string, error) {
	if len(payments) == 0 {
		return nil, nil, ErrNoRecipients
	}
	for _, p := range payments {
		if err := validatePayment(p); err != nil {
			return nil, nil, err
		}
	}

	memo, warnings, err := resolveMemo(payments, s.memoPolicy)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range warnings {
		s.logger.Warn("Memo dropped", zap.String("detail", w))
	}

	resp, err := s.submitPayments(senderSecret, payments, memo)
	if err != nil {
		return nil, nil, err
	}
	return resp, warnings, nil
}

func (s *WalletService) submitPayments(senderSecret string, payments []models.Payment, memo string) (*hProtocol.Transaction, error) {
	senderKP, err := keypair.ParseFull(senderSecret)
	if err != nil {
		return nil, ErrInvalidSecretKey
	}

	sourceAccount, err := s.accountDetail(senderKP.Address())
	if err != nil {
		return nil, s.transferFailed(errors.Wrap(err, "failed to fetch sender account details"))
	}

	tx, err := s.buildPaymentTx(&sourceAccount, payments, memo)
	if err != nil {
		return nil, s.transferFailed(errors.Wrap(err, "failed to build transaction"))
	}

	tx, err = tx.Sign(s.cfg.NetworkPassphrase, senderKP)
	if err != nil {
		return nil, s.transferFailed(errors.Wrap(err, "failed to sign transaction"))
	}

	txeB64, err := tx.Base64()
	if err != nil {
		return nil, s.transferFailed(errors.Wrap(err, "failed to encode transaction"))
	}

	start := time.Now()
	resp, err := s.horizon.SubmitTransactionXDR(txeB64)
	metrics.Observe(metrics.Horizon, "submit_transaction", start, err)
	if err != nil {
		return nil, s.transferFailed(err)
	}

	s.logger.Info("Transaction submitted",
		zap.String("source", senderKP.Address()),
		zap.String("hash", resp.Hash),
		zap.Int("operations", len(payments)))
	return &resp, nil
}

func (s *WalletService) accountDetail(publicKey string) (hProtocol.Account, error) {
	if _, err := keypair.ParseAddress(publicKey); err != nil {
		return hProtocol.Account{}, ErrInvalidPublicKey
	}

	start := time.Now()
	account, err := s.horizon.AccountDetail(horizonclient.AccountRequest{AccountID: publicKey})
	metrics.Observe(metrics.Horizon, "account_detail", start, err)
	if err != nil {
		var herr *horizonclient.Error
		if stderrors.As(err, &herr) && herr.Response != nil && herr.Response.StatusCode == http.StatusNotFound {
			return hProtocol.Account{}, ErrAccountNotFound
		}
		return hProtocol.Account{}, errors.Wrap(err, "failed to fetch account details")
	}
	return account, nil
}

func (s *WalletService) transferFailed(err error) error {
	te := newTransferError(err)
	s.logger.Error("Transfer failed", zap.Error(err), zap.Any("detail", te.Detail))
	return te
}

func validatePayment(p models.Payment) error {
	if _, err := keypair.ParseAddress(p.RecipientPublicKey); err != nil {
		return errors.Wrap(ErrInvalidPublicKey, "recipient "+p.RecipientPublicKey)
	}
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
