package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Keypair is a freshly generated Stellar keypair
type Keypair struct {
	PublicKey string `json:"publicKey"`
	SecretKey string `json:"secretKey"`
}

// BalanceEntry is one balance line of an account
type BalanceEntry struct {
	AssetType          string `json:"asset_type"`
	AssetCode          string `json:"asset_code,omitempty"`
	AssetIssuer        string `json:"asset_issuer,omitempty"`
	Balance            string `json:"balance"`
	BuyingLiabilities  string `json:"buying_liabilities"`
	SellingLiabilities string `json:"selling_liabilities"`
}

// AccountSnapshot is the ledger state of an account at lookup time
type AccountSnapshot struct {
	AccountID string         `json:"account_id"`
	Sequence  int64          `json:"sequence"`
	Balances  []BalanceEntry `json:"balances"`
}

// Payment is a single native asset transfer to one recipient
type Payment struct {
	RecipientPublicKey string          `json:"recipientPublicKey" binding:"required,stellar_address"`
	Amount             decimal.Decimal `json:"amount"`
	Memo               string          `json:"message,omitempty"`
}

// TransactionRecord is a transaction as listed by the account history endpoint
type TransactionRecord struct {
	ID            string    `json:"id"`
	PagingToken   string    `json:"paging_token"`
	CreatedAt     time.Time `json:"created_at"`
	SourceAccount string    `json:"source_account"`
}

// HistoryQuery selects a page of account transactions
type HistoryQuery struct {
	PublicKey string `json:"publicKey" form:"publicKey"`
	Cursor    string `json:"cursor,omitempty" form:"cursor"`
	Limit     uint   `json:"limit,omitempty" form:"limit" binding:"omitempty,max=200"`
	Order     string `json:"order,omitempty" form:"order" binding:"omitempty,oneof=asc desc"`
}
