package server

import (
	"net/http"
	"time"

	"gitlab.com/contasweb/contas-backend/internal/report"
)

func (s *Server) handleBillsCSV(w http.ResponseWriter, r *http.Request) {
	bills, err := s.bills.GetUserBills(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := report.GenerateBillsCSV(bills)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="contas.csv"`)
	_, _ = w.Write(data)
}

func (s *Server) handleBillsChart(w http.ResponseWriter, r *http.Request) {
	bills, err := s.bills.GetUserBills(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	title := "Contas por categoria - " + time.Now().Format("01/2006")
	data, err := report.GenerateBillsChart(bills, title)
	if err != nil {
		writeError(w, http.StatusNotFound, "no bills to chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

func (s *Server) handleBalanceChart(w http.ResponseWriter, r *http.Request) {
	entries, err := s.finance.GetUserFinanceHistory(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// History comes newest first; the chart wants a forward timeline.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	data, err := report.GenerateBalanceChart(entries, "Evolução do saldo")
	if err != nil {
		writeError(w, http.StatusNotFound, "no balance history to chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}
