package server

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/contasweb/contas-backend/internal/models"
	"gitlab.com/contasweb/contas-backend/internal/service"
)

type financeDTO struct {
	FinanceID      string          `json:"financeId"`
	UserID         string          `json:"userId"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}

func toFinanceDTO(f models.Finance) financeDTO {
	return financeDTO{
		FinanceID:      f.UserID,
		UserID:         f.UserID,
		CurrentBalance: f.CurrentBalance,
		TotalIncome:    f.TotalIncome,
		TotalExpenses:  f.TotalExpenses,
		LastUpdated:    f.LastUpdated,
	}
}

type financeHistoryDTO struct {
	HistoryID   int              `json:"historyId"`
	FinanceID   string           `json:"financeId"`
	UserID      string           `json:"userId"`
	Action      string           `json:"action"`
	OldValue    *decimal.Decimal `json:"oldValue"`
	NewValue    decimal.Decimal  `json:"newValue"`
	Description string           `json:"description"`
	Timestamp   time.Time        `json:"timestamp"`
}

func toFinanceHistoryDTO(e models.FinanceHistoryEntry) financeHistoryDTO {
	return financeHistoryDTO{
		HistoryID:   e.ID,
		FinanceID:   e.FinanceID,
		UserID:      e.UserID,
		Action:      e.Action,
		OldValue:    e.OldValue,
		NewValue:    e.NewValue,
		Description: e.Description,
		Timestamp:   e.Timestamp,
	}
}

type financeRequest struct {
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
}

func (s *Server) handleCreateOrUpdateFinance(w http.ResponseWriter, r *http.Request) {
	var req financeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fin, err := s.finance.CreateOrUpdateFinance(r.Context(), service.FinanceInput{
		CurrentBalance: req.CurrentBalance,
		TotalExpenses:  req.TotalExpenses,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFinanceDTO(*fin))
}

func (s *Server) handleGetFinance(w http.ResponseWriter, r *http.Request) {
	fin, err := s.finance.GetCurrentUserFinance(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if fin == nil {
		writeError(w, http.StatusNotFound, "finance record not found")
		return
	}
	writeJSON(w, http.StatusOK, toFinanceDTO(*fin))
}

type amountRequest struct {
	Value decimal.Decimal `json:"value"`
}

func (s *Server) handleUpdateBalance(w http.ResponseWriter, r *http.Request) {
	s.handleFinanceUpdate(w, r, s.finance.UpdateCurrentBalance)
}

func (s *Server) handleUpdateExpenses(w http.ResponseWriter, r *http.Request) {
	s.handleFinanceUpdate(w, r, s.finance.UpdateTotalExpenses)
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	s.handleFinanceUpdate(w, r, s.finance.UpdateTotalIncome)
}

func (s *Server) handleFinanceUpdate(w http.ResponseWriter, r *http.Request,
	update func(ctx context.Context, v decimal.Decimal) (*models.Finance, error),
) {
	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fin, err := update(r.Context(), req.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFinanceDTO(*fin))
}

func (s *Server) handleListFinanceHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.finance.GetUserFinanceHistory(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]financeHistoryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toFinanceHistoryDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleDeleteFinanceHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid history id")
		return
	}
	if err := s.finance.DeleteFinanceHistoryEntry(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
