// Package server exposes the application services as a JSON HTTP API
// for the web UI.
package server

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gitlab.com/contasweb/contas-backend/internal/auth"
	"gitlab.com/contasweb/contas-backend/internal/config"
	"gitlab.com/contasweb/contas-backend/internal/database"
	"gitlab.com/contasweb/contas-backend/internal/service"
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	cfg        *config.Config
	tokens     *auth.TokenManager
	bills      *service.BillService
	finance    *service.FinanceService
	users      *service.UserService
	categories *service.CategoryService
}

// New creates a Server wired to the given database pool.
func New(cfg *config.Config, db database.TxBeginner) *Server {
	return &Server{
		cfg:        cfg,
		tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		bills:      service.NewBillService(db),
		finance:    service.NewFinanceService(db),
		users:      service.NewUserService(db),
		categories: service.NewCategoryService(db),
	}
}

// Handler builds the full middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	// Bills and payments.
	mux.Handle("POST /api/bills", s.requireAuth(s.handleCreateBill))
	mux.Handle("GET /api/bills", s.requireAuth(s.handleListBills))
	mux.Handle("GET /api/bills/{id}", s.requireAuth(s.handleGetBill))
	mux.Handle("PATCH /api/bills/{id}", s.requireAuth(s.handleUpdateBill))
	mux.Handle("DELETE /api/bills/{id}", s.requireAuth(s.handleDeleteBill))
	mux.Handle("POST /api/bills/{id}/pay", s.requireAuth(s.handleMarkBillPaid))
	mux.Handle("GET /api/bills/{id}/payments", s.requireAuth(s.handleListBillPayments))
	mux.Handle("POST /api/bills/{id}/payments", s.requireAuth(s.handleCreatePayment))
	mux.Handle("GET /api/payments", s.requireAuth(s.handleListPayments))
	mux.Handle("GET /api/history", s.requireAuth(s.handleListBillHistory))

	// Profile.
	mux.Handle("POST /api/users", s.requireAuth(s.handleCreateUser))
	mux.Handle("GET /api/users/me", s.requireAuth(s.handleGetCurrentUser))
	mux.Handle("PATCH /api/users/me", s.requireAuth(s.handleUpdateCurrentUser))
	mux.Handle("PUT /api/users/me/address", s.requireAuth(s.handleUpdateAddress))
	mux.Handle("GET /api/users/me/profile-complete", s.requireAuth(s.handleProfileComplete))

	// Finance aggregate and audit trail.
	mux.Handle("PUT /api/finance", s.requireAuth(s.handleCreateOrUpdateFinance))
	mux.Handle("GET /api/finance", s.requireAuth(s.handleGetFinance))
	mux.Handle("PUT /api/finance/balance", s.requireAuth(s.handleUpdateBalance))
	mux.Handle("PUT /api/finance/expenses", s.requireAuth(s.handleUpdateExpenses))
	mux.Handle("PUT /api/finance/income", s.requireAuth(s.handleUpdateIncome))
	mux.Handle("GET /api/finance/history", s.requireAuth(s.handleListFinanceHistory))
	mux.Handle("DELETE /api/finance/history/{id}", s.requireAuth(s.handleDeleteFinanceHistory))

	// Categories.
	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.Handle("POST /api/categories", s.requireAuth(s.handleCreateCategory))

	// Reports.
	mux.Handle("GET /api/reports/bills.csv", s.requireAuth(s.handleBillsCSV))
	mux.Handle("GET /api/reports/bills.png", s.requireAuth(s.handleBillsChart))
	mux.Handle("GET /api/reports/balance.png", s.requireAuth(s.handleBalanceChart))

	handler := s.loggingMiddleware(s.corsMiddleware(mux))
	return otelhttp.NewHandler(handler, "contas-backend")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
