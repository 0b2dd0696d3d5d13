package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/tillit-parceiros/internal/auth"
	"github.com/xavierca1/tillit-parceiros/internal/usecase"
)

type AuthHandler struct {
	Auth     *usecase.AuthUseCase
	Partners *usecase.PartnerUseCase
	Logger   *zap.Logger
}

func NewAuthHandler(authUC *usecase.AuthUseCase, partners *usecase.PartnerUseCase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Auth: authUC, Partners: partners, Logger: logger}
}

// Register (POST /auth/register)
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterPartnerInput
	if !decodeJSON(w, r, &input) {
		return
	}

	partner, err := h.Partners.Register(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, partner)
}

// Login (POST /auth/login)
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.Auth.PartnerLogin(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// AdminLogin (POST /auth/admin/login)
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.Auth.AdminLogin(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Me (GET /me): para parceiros o status vem do banco, não do token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "UNAUTHORIZED", "not authenticated")
		return
	}
	if id.IsAdmin() {
		writeJSON(w, http.StatusOK, id)
		return
	}

	partner, err := h.Partners.FindByEmail(r.Context(), id.Email)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	id.Name = partner.Name
	id.Status = partner.Status
	writeJSON(w, http.StatusOK, id)
}
