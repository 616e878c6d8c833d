package api

import (
	"fmt"
	"net/http"
	"strings"

	"kasjer/internal/database"
	"kasjer/internal/queue"
	"kasjer/internal/validation"
)

type DepositRequest struct {
	UserID     string     `json:"userId" example:"0b6f6c1e-8a57-4d0c-9c55-2f1c2a3b4d5e"`
	Username   string     `json:"username" example:"MUC12345"`
	Game       string     `json:"game" example:"VBLink"`
	Amount     flexAmount `json:"amount" swaggertype:"number" example:"25"`
	CashappTag string     `json:"cashappTag" example:"$player"`
	Timestamp  string     `json:"timestamp,omitempty"`
}

type WithdrawRequest struct {
	UserID    string     `json:"userId" example:"0b6f6c1e-8a57-4d0c-9c55-2f1c2a3b4d5e"`
	Username  string     `json:"username" example:"MUC12345"`
	Amount    flexAmount `json:"amount" swaggertype:"number" example:"40"`
	Cashtag   string     `json:"cashtag" example:"$player"`
	Notes     string     `json:"notes" example:"Fire Kirin"`
	Timestamp string     `json:"timestamp,omitempty"`
}

type CashierResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Deposit request submitted for VBLink - $25"`
	Data    any    `json:"data"`
}

// requireFields records "Required" for every blank value and reports whether
// anything was missing.
func requireFields(fields validation.Errors, values map[string]string) bool {
	missing := false
	for name, value := range values {
		if strings.TrimSpace(value) == "" {
			fields[name] = "Required"
			missing = true
		}
	}
	return missing
}

func failureMessage(missing bool) string {
	if missing {
		return "Missing required fields"
	}
	return "Invalid input"
}

// @Summary      Submits a deposit request
// @Description  Stores a pending deposit of at least 10 for manual reconciliation.
// @Tags         cashier
// @Accept       json
// @Produce      json
// @Param        depositRequest  body      DepositRequest  true  "Deposit"
// @Success      200             {object}  CashierResponse
// @Failure      400             {object}  ErrorResponse
// @Failure      500             {object}  ErrorResponse
// @Router       /deposit [post]
func (s *Server) DepositHandler(w http.ResponseWriter, r *http.Request) {
	var req DepositRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Invalid request body")
		return
	}

	fields := validation.Errors{}
	missing := requireFields(fields, map[string]string{
		"userId":     req.UserID,
		"username":   req.Username,
		"game":       req.Game,
		"amount":     string(req.Amount),
		"cashappTag": req.CashappTag,
	})
	amount, res := validation.Amount(string(req.Amount), validation.DepositMinimum)
	if _, blank := fields["amount"]; !blank && !res.Valid() {
		fields["amount"] = res.Message
	}
	if len(fields) > 0 {
		writeValidation(w, failureMessage(missing), fields)
		return
	}

	deposit, err := s.store.CreateDeposit(r.Context(), database.CreateDepositParams{
		UserID:      strings.TrimSpace(req.UserID),
		Username:    strings.TrimSpace(req.Username),
		Game:        strings.TrimSpace(req.Game),
		Amount:      amount,
		CashappTag:  strings.TrimSpace(req.CashappTag),
		RequestedAt: s.requestTime(req.Timestamp),
	})
	if err != nil {
		writeStoreError(w, "create deposit", err)
		return
	}

	cashierRequestsTotal.WithLabelValues("deposit").Inc()
	s.publish(r.Context(), queue.EventDepositRequested, deposit)

	writeJSON(w, http.StatusOK, CashierResponse{
		Success: true,
		Message: fmt.Sprintf("Deposit request submitted for %s - $%s", deposit.Game, deposit.Amount.String()),
		Data:    deposit,
	})
}

// @Summary      Submits a withdrawal request
// @Description  Stores a pending withdrawal of at least 20. Notes must name the source game.
// @Tags         cashier
// @Accept       json
// @Produce      json
// @Param        withdrawRequest  body      WithdrawRequest  true  "Withdrawal"
// @Success      200              {object}  CashierResponse
// @Failure      400              {object}  ErrorResponse
// @Failure      500              {object}  ErrorResponse
// @Router       /withdraw [post]
func (s *Server) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	var req WithdrawRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "Invalid request body")
		return
	}

	fields := validation.Errors{}
	missing := requireFields(fields, map[string]string{
		"userId":   req.UserID,
		"username": req.Username,
		"amount":   string(req.Amount),
		"cashtag":  req.Cashtag,
		"notes":    req.Notes,
	})
	amount, res := validation.Amount(string(req.Amount), validation.WithdrawalMinimum)
	if _, blank := fields["amount"]; !blank && !res.Valid() {
		fields["amount"] = res.Message
	}
	if len(fields) > 0 {
		writeValidation(w, failureMessage(missing), fields)
		return
	}

	withdrawal, err := s.store.CreateWithdrawal(r.Context(), database.CreateWithdrawalParams{
		UserID:      strings.TrimSpace(req.UserID),
		Username:    strings.TrimSpace(req.Username),
		Amount:      amount,
		Cashtag:     strings.TrimSpace(req.Cashtag),
		Notes:       strings.TrimSpace(req.Notes),
		RequestedAt: s.requestTime(req.Timestamp),
	})
	if err != nil {
		writeStoreError(w, "create withdrawal", err)
		return
	}

	cashierRequestsTotal.WithLabelValues("withdrawal").Inc()
	s.publish(r.Context(), queue.EventWithdrawalRequested, withdrawal)

	writeJSON(w, http.StatusOK, CashierResponse{
		Success: true,
		Message: fmt.Sprintf("Withdrawal request submitted for $%s to %s", withdrawal.Amount.String(), withdrawal.Cashtag),
		Data:    withdrawal,
	})
}
