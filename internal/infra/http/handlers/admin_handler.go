package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/tillit-parceiros/internal/entity"
	"github.com/xavierca1/tillit-parceiros/internal/infra/http/middleware"
	"github.com/xavierca1/tillit-parceiros/internal/usecase"
)

// AdminHandler atende o painel interno.
type AdminHandler struct {
	Query    *usecase.ReferralQueryUseCase
	StatusUC *usecase.UpdateReferralStatusUseCase
	Partners *usecase.PartnerUseCase
	Logger   *zap.Logger
}

func NewAdminHandler(
	query *usecase.ReferralQueryUseCase,
	statusUC *usecase.UpdateReferralStatusUseCase,
	partners *usecase.PartnerUseCase,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{Query: query, StatusUC: statusUC, Partners: partners, Logger: logger}
}

type adminReferralView struct {
	*entity.Referral
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
}

// ListReferrals (GET /admin/referrals?status=)
func (h *AdminHandler) ListReferrals(w http.ResponseWriter, r *http.Request) {
	referrals, err := h.Query.List(r.Context(), "", r.URL.Query().Get("status"))
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}

	views := make([]adminReferralView, 0, len(referrals))
	for _, ref := range referrals {
		views = append(views, adminReferralView{Referral: ref, WhatsAppURL: ref.WhatsAppURL()})
	}
	writeJSON(w, http.StatusOK, views)
}

// UpdateStatus (PATCH /admin/referrals/{id}/status)
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateReferralStatusInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ReferralID = chi.URLParam(r, "id")

	referral, err := h.StatusUC.Execute(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}

	middleware.RecordReferralStatusChange(string(referral.Status))
	writeJSON(w, http.StatusOK, referral)
}

// Summary (GET /admin/summary)
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Query.AdminSummary(r.Context())
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// PendingPartners (GET /admin/partners/pending)
func (h *AdminHandler) PendingPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.Partners.ListPending(r.Context())
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, partners)
}

// ApprovePartner (POST /admin/partners/{id}/approve)
func (h *AdminHandler) ApprovePartner(w http.ResponseWriter, r *http.Request) {
	partner, err := h.Partners.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	middleware.RecordPartnerDecision("approved")
	writeJSON(w, http.StatusOK, partner)
}

// RejectPartner (POST /admin/partners/{id}/reject)
func (h *AdminHandler) RejectPartner(w http.ResponseWriter, r *http.Request) {
	partner, err := h.Partners.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	middleware.RecordPartnerDecision("rejected")
	writeJSON(w, http.StatusOK, partner)
}
