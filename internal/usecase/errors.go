package usecase

import "errors"

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeReferralNotFound   = "REFERRAL_NOT_FOUND"
	CodePartnerNotFound    = "PARTNER_NOT_FOUND"
	CodePixNotFound        = "PIX_NOT_FOUND"
	CodePartnerNotApproved = "PARTNER_NOT_APPROVED"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeEmailExists        = "EMAIL_ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccessDenied       = "ACCESS_DENIED"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
)

// DomainError é um erro de regra de negócio, mostrado ao usuário como está.
type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError encapsula falhas de infraestrutura (banco, rede).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode extrai o código de um DomainError/TechnicalError.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

func storeUnavailable(op string, err error) error {
	return &TechnicalError{
		Code:    CodeStoreUnavailable,
		Message: "falha ao acessar o banco (" + op + ")",
		Err:     err,
	}
}

func notFound(code, message string) error {
	return &DomainError{Code: code, Message: message}
}
