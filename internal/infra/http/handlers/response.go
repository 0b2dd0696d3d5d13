package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/tillit-parceiros/internal/usecase"
)

type errorResponse struct {
	Error   string                    `json:"error"`
	Message string                    `json:"message"`
	Fields  []usecase.ValidationError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// statusFor traduz o código do caso de uso para HTTP.
func statusFor(code string) int {
	switch code {
	case usecase.CodeValidation, usecase.CodeInvalidStatus:
		return http.StatusBadRequest
	case usecase.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case usecase.CodeAccessDenied, usecase.CodePartnerNotApproved:
		return http.StatusForbidden
	case usecase.CodeReferralNotFound, usecase.CodePartnerNotFound, usecase.CodePixNotFound:
		return http.StatusNotFound
	case usecase.CodeInvalidTransition, usecase.CodeEmailExists:
		return http.StatusConflict
	case usecase.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeUsecaseError: erro de domínio vai como está; erro técnico é logado e
// a mensagem interna não sai para o cliente.
func writeUsecaseError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeJSON(w, statusFor(de.Code), errorResponse{Error: de.Code, Message: de.Message, Fields: de.Fields})
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		logger.Error(te.Message, zap.String("code", te.Code), zap.Error(te.Err))
		writeErrorResponse(w, statusFor(te.Code), te.Code, "serviço temporariamente indisponível")
		return
	}

	logger.Error("erro inesperado", zap.Error(err))
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "erro interno")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return false
	}
	return true
}
