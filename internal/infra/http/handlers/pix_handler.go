package handlers

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/tillit-parceiros/internal/auth"
	"github.com/xavierca1/tillit-parceiros/internal/entity"
	"github.com/xavierca1/tillit-parceiros/internal/usecase"
)

type PixHandler struct {
	Pix    *usecase.PixUseCase
	Logger *zap.Logger
}

func NewPixHandler(pix *usecase.PixUseCase, logger *zap.Logger) *PixHandler {
	return &PixHandler{Pix: pix, Logger: logger}
}

type pixView struct {
	PartnerID     string            `json:"partner_id"`
	PartnerName   string            `json:"partner_name"`
	PixKeyType    entity.PixKeyType `json:"pix_key_type"`
	PixKey        string            `json:"pix_key"`
	Display       string            `json:"display"`
	AccountHolder string            `json:"account_holder"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// newPixView com masked=true nunca expõe a chave completa.
func newPixView(p *entity.PartnerPixData, masked bool) pixView {
	v := pixView{
		PartnerID:     p.PartnerID,
		PartnerName:   p.PartnerName,
		PixKeyType:    p.PixKeyType,
		PixKey:        p.PixKey,
		Display:       p.Display(),
		AccountHolder: p.AccountHolder,
		UpdatedAt:     p.UpdatedAt,
	}
	if masked {
		v.PixKey = p.Masked()
		v.Display = v.PixKey
	}
	return v
}

// Get (GET /partner/pix)
func (h *PixHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	data, err := h.Pix.Get(r.Context(), id.UserID)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newPixView(data, false))
}

// Save (PUT /partner/pix)
func (h *PixHandler) Save(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	var input usecase.SavePixInput
	if !decodeJSON(w, r, &input) {
		return
	}

	data, err := h.Pix.Save(r.Context(), id, input)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newPixView(data, false))
}

// Batch (GET /admin/partners/pix?ids=a,b&mask=true)
func (h *PixHandler) Batch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ids := strings.Split(q.Get("ids"), ",")
	masked := q.Get("mask") == "true" || q.Get("mask") == "1"

	data, err := h.Pix.GetBatch(r.Context(), ids)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}

	out := make(map[string]pixView, len(data))
	for partnerID, p := range data {
		out[partnerID] = newPixView(p, masked)
	}
	writeJSON(w, http.StatusOK, out)
}
