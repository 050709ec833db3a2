package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/malwarebo/balancegate/models"
	"github.com/malwarebo/balancegate/services"
	"github.com/malwarebo/balancegate/utils"
)

type BalanceHandler struct {
	balanceService *services.BalanceService
}

func CreateBalanceHandler(balanceService *services.BalanceService) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// HandleGetBalance serves GET /stripe/balance.
func (h *BalanceHandler) HandleGetBalance(w http.ResponseWriter, r *http.Request) error {
	balance, err := h.balanceService.GetBalance(r.Context())
	if err != nil {
		return err
	}

	utils.WriteJSON(w, http.StatusOK, balance)
	return nil
}

// HandleListBalanceTransactions serves GET /stripe/balance-transactions.
// limit is only checked for being an integer; its value is forwarded as is.
func (h *BalanceHandler) HandleListBalanceTransactions(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	opts := models.NewListOptions()

	if raw := queryValue(query, "limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "limit must be an integer")
			return nil
		}
		opts.Limit = limit
	}

	if cursor := queryValue(query, "startingAfter"); cursor != "" {
		opts.StartingAfter = &cursor
	}

	transactions, err := h.balanceService.ListBalanceTransactions(r.Context(), opts)
	if err != nil {
		return err
	}

	utils.WriteJSON(w, http.StatusOK, transactions)
	return nil
}

// queryValue looks key up ignoring case; an exact match wins.
func queryValue(query url.Values, key string) string {
	if _, ok := query[key]; ok {
		return query.Get(key)
	}
	for k, values := range query {
		if strings.EqualFold(k, key) && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
