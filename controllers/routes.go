package controllers

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saif727/stellar-testnet-gateway/middleware"
	"go.uber.org/zap"
)

// NewRouter wires the gateway endpoints onto a gin engine
func NewRouter(ctrl *WalletController, logger *zap.Logger) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(cors.Default())

	router.GET("/healthCheck", ctrl.HealthCheck)
	router.POST("/createWallet", ctrl.CreateWallet)
	router.POST("/fundWallet", ctrl.FundWallet)
	router.GET("/getBalance", ctrl.GetBalance)
	router.GET("/account", ctrl.GetAccount)
	router.POST("/sendXLM", ctrl.SendXLM)
	router.POST("/sendXLMToMultipleRecipients", ctrl.SendXLMToMultipleRecipients)
	router.GET("/transactionHistory", ctrl.TransactionHistory)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router, nil
}
