package api

import (
	"net/http"

	"kasjer/internal/models"
)

type AdminDataResponse struct {
	Users       []models.User       `json:"users"`
	Deposits    []models.Deposit    `json:"deposits"`
	Withdrawals []models.Withdrawal `json:"withdrawals"`
}

// @Summary      Lists every user, deposit and withdrawal
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  AdminDataResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/data [get]
func (s *Server) AdminDataHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		writeStoreError(w, "admin list users", err)
		return
	}
	deposits, err := s.store.ListDeposits(r.Context())
	if err != nil {
		writeStoreError(w, "admin list deposits", err)
		return
	}
	withdrawals, err := s.store.ListWithdrawals(r.Context())
	if err != nil {
		writeStoreError(w, "admin list withdrawals", err)
		return
	}

	writeJSON(w, http.StatusOK, AdminDataResponse{
		Users:       users,
		Deposits:    deposits,
		Withdrawals: withdrawals,
	})
}
