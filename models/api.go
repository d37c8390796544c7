package models

// PublicKeyRequest is the body of the endpoints that take a single address
type PublicKeyRequest struct {
	PublicKey string `json:"publicKey" form:"publicKey"`
}

// FundRequest is the body of POST /fundWallet
type FundRequest struct {
	PublicKey string `json:"publicKey" binding:"required,stellar_address"`
}

// SendRequest is the body of POST /sendXLM
type SendRequest struct {
	SenderSecretKey string `json:"senderSecretKey" binding:"required,stellar_seed"`
	Payment
}

// MultiSendRequest is the body of POST /sendXLMToMultipleRecipients
type MultiSendRequest struct {
	SenderSecretKey string    `json:"senderSecretKey" binding:"required,stellar_seed"`
	Recipients      []Payment `json:"recipients" binding:"required,min=1,dive"`
}

// MessageResponse carries a human readable outcome
type MessageResponse struct {
	Message string `json:"message"`
}

// BalanceResponse is returned by GET /getBalance
type BalanceResponse struct {
	Message string `json:"message"`
	Balance string `json:"balance"`
}

// TransferResponse is returned by the payment endpoints on success
type TransferResponse struct {
	Message  string      `json:"message"`
	Response interface{} `json:"response"`
	Warnings []string    `json:"warnings,omitempty"`
}

// TransferErrorResponse is returned by the payment endpoints on failure
type TransferErrorResponse struct {
	Message string      `json:"message"`
	Error   interface{} `json:"error"`
}

// HistoryResponse is returned by GET /transactionHistory
type HistoryResponse struct {
	Transactions []TransactionRecord `json:"transactions"`
}

// AccountResponse is returned by GET /account
type AccountResponse struct {
	Account AccountSnapshot `json:"account"`
}
