package entity

import "errors"

var (
	ErrReferralNotFound   = errors.New("indicação não encontrada")
	ErrPartnerNotFound    = errors.New("parceiro não encontrado")
	ErrPixNotFound        = errors.New("dados pix não encontrados")
	ErrEmailAlreadyExists = errors.New("email já cadastrado")
	ErrInvalidTransition  = errors.New("transição de status não permitida")
	ErrInvalidStatus      = errors.New("status inválido")
)
