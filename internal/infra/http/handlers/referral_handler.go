package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/tillit-parceiros/internal/auth"
	"github.com/xavierca1/tillit-parceiros/internal/infra/http/middleware"
	"github.com/xavierca1/tillit-parceiros/internal/usecase"
)

// ReferralHandler atende o portal do parceiro.
type ReferralHandler struct {
	CreateUC *usecase.CreateReferralUseCase
	Query    *usecase.ReferralQueryUseCase
	Logger   *zap.Logger
}

func NewReferralHandler(createUC *usecase.CreateReferralUseCase, query *usecase.ReferralQueryUseCase, logger *zap.Logger) *ReferralHandler {
	return &ReferralHandler{CreateUC: createUC, Query: query, Logger: logger}
}

// Create (POST /partner/referrals)
func (h *ReferralHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	var input usecase.CreateReferralInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.CreateUC.Execute(r.Context(), id, input)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}

	middleware.RecordReferralCreated(out.Tier)
	writeJSON(w, http.StatusCreated, out)
}

// List (GET /partner/referrals): só as indicações do próprio parceiro.
func (h *ReferralHandler) List(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	referrals, err := h.Query.List(r.Context(), id.UserID, r.URL.Query().Get("status"))
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, referrals)
}

// Dashboard (GET /partner/dashboard)
func (h *ReferralHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	dashboard, err := h.Query.PartnerDashboard(r.Context(), id.UserID)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
