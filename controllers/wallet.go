package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/saif727/stellar-testnet-gateway/metrics"
	"github.com/saif727/stellar-testnet-gateway/middleware"
	"github.com/saif727/stellar-testnet-gateway/models"
	"github.com/saif727/stellar-testnet-gateway/services"
	hProtocol "github.com/stellar/go/protocols/horizon"
	"go.uber.org/zap"
)

// WalletService is the ledger facing side of the gateway
type WalletService interface {
	CreateWallet() (*models.Keypair, error)
	FundWallet(ctx context.Context, publicKey string) error
	GetBalance(publicKey string) models.Result[string]
	AccountSnapshot(publicKey string) models.Result[models.AccountSnapshot]
	TransactionHistory(q models.HistoryQuery) models.Result[[]models.TransactionRecord]
	SendPayment(senderSecret string, payment models.Payment) (*hProtocol.Transaction, error)
	SendPaymentToMany(senderSecret string, payments []models.Payment) (*hProtocol.Transaction, []string, error)
}

// WalletController handles wallet-related HTTP requests
type WalletController struct {
	Service WalletService
	// StrictReads turns balance and history lookup failures into 500s
	// instead of a zero balance or an empty history.
	StrictReads bool
	logger      *zap.Logger
}

// NewWalletController creates a new WalletController instance
func NewWalletController(service WalletService, strictReads bool, logger *zap.Logger) *WalletController {
	return &WalletController{Service: service, StrictReads: strictReads, logger: logger.Named("http")}
}

// HealthCheck handles GET /healthCheck
func (ctrl *WalletController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: "API is healthy!"})
}

// CreateWallet handles POST /createWallet
func (ctrl *WalletController) CreateWallet(c *gin.Context) {
	kp, err := ctrl.Service.CreateWallet()
	if err != nil {
		ctrl.log(c).Error("An error occurred while creating the wallet", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.MessageResponse{Message: "An error occurred while creating the wallet."})
		return
	}
	c.JSON(http.StatusOK, kp)
}

// FundWallet handles POST /fundWallet
func (ctrl *WalletController) FundWallet(c *gin.Context) {
	var req models.FundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: "Invalid request body: " + err.Error()})
		return
	}

	if err := ctrl.Service.FundWallet(c.Request.Context(), req.PublicKey); err != nil {
		ctrl.log(c).Error("An error occurred while funding the wallet", zap.String("public_key", req.PublicKey), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.MessageResponse{Message: "An error occurred while funding the wallet."})
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Wallet funded."})
}

// GetBalance handles GET /getBalance
func (ctrl *WalletController) GetBalance(c *gin.Context) {
	publicKey := bindPublicKey(c)

	res := ctrl.Service.GetBalance(publicKey)
	if err := res.Error(); err != nil {
		if ctrl.StrictReads {
			ctrl.log(c).Error("An error occurred while checking the balance", zap.String("public_key", publicKey), zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.MessageResponse{Message: "An error occurred while checking the balance"})
			return
		}
		ctrl.suppressed(c, "get_balance", publicKey, err)
	}

	c.JSON(http.StatusOK, models.BalanceResponse{
		Message: "Your balance has been checked.",
		Balance: res.OrElse("0"),
	})
}

// GetAccount handles GET /account
func (ctrl *WalletController) GetAccount(c *gin.Context) {
	publicKey := bindPublicKey(c)

	snapshot, err := ctrl.Service.AccountSnapshot(publicKey).Unwrap()
	switch {
	case err == nil:
		c.JSON(http.StatusOK, models.AccountResponse{Account: snapshot})
	case errors.Is(err, services.ErrInvalidPublicKey):
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: "Invalid public key format"})
	case errors.Is(err, services.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, models.MessageResponse{Message: "Account not found. Fund it first."})
	default:
		ctrl.log(c).Error("An error occurred while fetching the account", zap.String("public_key", publicKey), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.MessageResponse{Message: "An error occurred while fetching the account."})
	}
}

// SendXLM handles POST /sendXLM
func (ctrl *WalletController) SendXLM(c *gin.Context) {
	var req models.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := ctrl.Service.SendPayment(req.SenderSecretKey, req.Payment)
	if err != nil {
		ctrl.transferFailed(c, "An error occurred while sending XLM.", err)
		return
	}
	c.JSON(http.StatusOK, models.TransferResponse{Message: "XLM sent successfully.", Response: resp})
}

// SendXLMToMultipleRecipients handles POST /sendXLMToMultipleRecipients
func (ctrl *WalletController) SendXLMToMultipleRecipients(c *gin.Context) {
	var req models.MultiSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: "Invalid request body: " + err.Error()})
		return
	}

	resp, warnings, err := ctrl.Service.SendPaymentToMany(req.SenderSecretKey, req.Recipients)
	if err != nil {
		ctrl.transferFailed(c, "An error occurred while sending XLM to multiple recipients.", err)
		return
	}
	c.JSON(http.StatusOK, models.TransferResponse{
		Message:  "XLM sent to all recipients.",
		Response: resp,
		Warnings: warnings,
	})
}

// TransactionHistory handles GET /transactionHistory
func (ctrl *WalletController) TransactionHistory(c *gin.Context) {
	var q models.HistoryQuery
	var err error
	if c.Request.ContentLength != 0 {
		err = c.ShouldBindJSON(&q)
	} else {
		err = c.ShouldBindQuery(&q)
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: "Invalid request: " + verrs.Error()})
		return
	}
	if q.PublicKey == "" {
		q.PublicKey = c.Query("publicKey")
	}

	res := ctrl.Service.TransactionHistory(q)
	if err := res.Error(); err != nil {
		if ctrl.StrictReads {
			ctrl.log(c).Error("An error occurred while fetching the transaction history", zap.String("public_key", q.PublicKey), zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.MessageResponse{Message: "An error occurred while fetching the transaction history."})
			return
		}
		ctrl.suppressed(c, "transaction_history", q.PublicKey, err)
	}

	c.JSON(http.StatusOK, models.HistoryResponse{Transactions: res.OrElse([]models.TransactionRecord{})})
}

func (ctrl *WalletController) transferFailed(c *gin.Context, message string, err error) {
	if services.IsInputError(err) {
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: err.Error()})
		return
	}

	var detail interface{} = err.Error()
	var te *services.TransferError
	if errors.As(err, &te) {
		detail = te.Detail
	}
	ctrl.log(c).Error(message, zap.Error(err))
	c.JSON(http.StatusInternalServerError, models.TransferErrorResponse{Message: message, Error: detail})
}

func (ctrl *WalletController) suppressed(c *gin.Context, operation, publicKey string, err error) {
	metrics.SuppressedErrors.WithLabelValues(operation).Inc()
	ctrl.log(c).Warn("Lookup failed, answering with default",
		zap.String("operation", operation),
		zap.String("public_key", publicKey),
		zap.Error(err))
}

func (ctrl *WalletController) log(c *gin.Context) *zap.Logger {
	return ctrl.logger.With(zap.String("request_id", middleware.GetRequestID(c)))
}

// bindPublicKey reads publicKey from the JSON body, falling back to the query
// string. Malformed bodies yield an empty key.
func bindPublicKey(c *gin.Context) string {
	var req models.PublicKeyRequest
	if c.Request.ContentLength != 0 {
		_ = c.ShouldBindJSON(&req)
	}
	if req.PublicKey == "" {
		req.PublicKey = c.Query("publicKey")
	}
	return req.PublicKey
}
