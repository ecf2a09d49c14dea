package server

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/contasweb/contas-backend/internal/models"
	"gitlab.com/contasweb/contas-backend/internal/repository"
	"gitlab.com/contasweb/contas-backend/internal/service"
)

// billDTO mirrors the document shape the web UI already consumes.
type billDTO struct {
	BillID      int             `json:"billId"`
	UserID      string          `json:"userId"`
	BillName    string          `json:"billName"`
	DueDate     time.Time       `json:"dueDate"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Paid        bool            `json:"paid"`
	PaymentDate *time.Time      `json:"paymentDate"`
	Description string          `json:"description,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func toBillDTO(b models.Bill) billDTO {
	return billDTO{
		BillID:      b.ID,
		UserID:      b.UserID,
		BillName:    b.Name,
		DueDate:     b.DueDate,
		Amount:      b.Amount,
		Category:    b.Category,
		Paid:        b.Paid,
		PaymentDate: b.PaymentDate,
		Description: b.Description,
		Tags:        b.Tags,
		CreatedAt:   b.CreatedAt,
	}
}

type paymentDTO struct {
	PaymentID     int             `json:"paymentId"`
	UserID        string          `json:"userId"`
	BillID        int             `json:"billId"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus"`
	PaymentDate   time.Time       `json:"paymentDate"`
}

func toPaymentDTO(p models.Payment) paymentDTO {
	return paymentDTO{
		PaymentID:     p.ID,
		UserID:        p.UserID,
		BillID:        p.BillID,
		AmountPaid:    p.AmountPaid,
		PaymentMethod: p.PaymentMethod,
		PaymentStatus: p.PaymentStatus,
		PaymentDate:   p.PaymentDate,
	}
}

type createBillRequest struct {
	BillName    string          `json:"billName"`
	DueDate     time.Time       `json:"dueDate"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var req createBillRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.bills.CreateBill(r.Context(), service.BillInput{
		Name:        req.BillName,
		DueDate:     req.DueDate,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"billId": id})
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.bills.GetUserBills(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]billDTO, 0, len(bills))
	for _, b := range bills {
		dtos = append(dtos, toBillDTO(b))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	bill, err := s.bills.GetBillByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if bill == nil {
		writeError(w, http.StatusNotFound, "bill not found")
		return
	}
	writeJSON(w, http.StatusOK, toBillDTO(*bill))
}

type updateBillRequest struct {
	BillName    *string          `json:"billName"`
	DueDate     *time.Time       `json:"dueDate"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Tags        []string         `json:"tags"`
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	var req updateBillRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = s.bills.UpdateBill(r.Context(), id, repository.BillUpdate{
		Name:        req.BillName,
		DueDate:     req.DueDate,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	if err := s.bills.DeleteBill(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type payBillRequest struct {
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus"`
}

func (s *Server) handleMarkBillPaid(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	var req payBillRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment, err := s.bills.MarkAsPaid(r.Context(), id, service.PaymentInput{
		AmountPaid:    req.AmountPaid,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTO(*payment))
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	var req payBillRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment, err := s.bills.CreatePayment(r.Context(), id, service.PaymentInput{
		AmountPaid:    req.AmountPaid,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentDTO(*payment))
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.bills.GetUserPayments(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]paymentDTO, 0, len(payments))
	for _, p := range payments {
		dtos = append(dtos, toPaymentDTO(p))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleListBillPayments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bill id")
		return
	}
	payments, err := s.bills.GetBillPayments(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]paymentDTO, 0, len(payments))
	for _, p := range payments {
		dtos = append(dtos, toPaymentDTO(p))
	}
	writeJSON(w, http.StatusOK, dtos)
}

type billHistoryDTO struct {
	HistoryID int            `json:"historyId"`
	UserID    string         `json:"userId"`
	BillID    int            `json:"billId"`
	Action    string         `json:"action"`
	OldData   map[string]any `json:"oldData"`
	NewData   map[string]any `json:"newData"`
	Timestamp time.Time      `json:"timestamp"`
}

func (s *Server) handleListBillHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.bills.GetUserHistory(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]billHistoryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, billHistoryDTO{
			HistoryID: e.ID,
			UserID:    e.UserID,
			BillID:    e.BillID,
			Action:    e.Action,
			OldData:   e.OldData,
			NewData:   e.NewData,
			Timestamp: e.Timestamp,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}
