package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/malwarebo/balancegate/config"
	"github.com/malwarebo/balancegate/middleware"
	"github.com/malwarebo/balancegate/utils"
)

func NewRouter(balanceHandler *BalanceHandler, rateLimit config.RateLimitConfig, logger *utils.Logger) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.CorrelationIDMiddleware)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.HandleFunc("/health", HealthCheckHandler).Methods(http.MethodGet)

	stripeRouter := router.PathPrefix("/stripe").Subrouter()
	if rateLimit.Enabled {
		stripeRouter.Use(middleware.RateLimitMiddleware(rateLimit.RPS, rateLimit.Burst))
	}

	stripeRouter.Handle("/balance",
		middleware.Handle(logger, middleware.TranslateProviderErrors(balanceHandler.HandleGetBalance)),
	).Methods(http.MethodGet)
	stripeRouter.Handle("/balance-transactions",
		middleware.Handle(logger, middleware.TranslateProviderErrors(balanceHandler.HandleListBalanceTransactions)),
	).Methods(http.MethodGet)

	return router
}
