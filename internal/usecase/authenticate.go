package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xavierca1/tillit-parceiros/internal/auth"
	"github.com/xavierca1/tillit-parceiros/internal/entity"
)

const adminUserID = "admin"

type AuthUseCase struct {
	PartnerRepo       PartnerRepositoryInterface
	Tokens            TokenIssuer
	AdminEmail        string
	AdminPasswordHash string
	Logger            *zap.Logger
}

func NewAuthUseCase(
	partnerRepo PartnerRepositoryInterface,
	tokens TokenIssuer,
	adminEmail, adminPasswordHash string,
	logger *zap.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		PartnerRepo:       partnerRepo,
		Tokens:            tokens,
		AdminEmail:        entity.NormalizeEmail(adminEmail),
		AdminPasswordHash: adminPasswordHash,
		Logger:            logger,
	}
}

var errInvalidCredentials = &DomainError{Code: CodeInvalidCredentials, Message: "e-mail ou senha inválidos"}

// PartnerLogin: parceiro recusado nunca recebe sessão.
func (uc *AuthUseCase) PartnerLogin(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	partner, err := uc.PartnerRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, entity.ErrPartnerNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, storeUnavailable("find partner by email", err)
	}

	if !auth.CheckPasswordHash(input.Password, partner.PasswordHash) {
		return nil, errInvalidCredentials
	}

	if !partner.CanSignIn() {
		uc.Logger.Info("login negado para parceiro recusado", zap.String("partner_id", partner.ID))
		return nil, &DomainError{Code: CodeAccessDenied, Message: "acesso negado"}
	}

	return uc.issue(auth.Identity{
		UserID: partner.ID,
		Name:   partner.Name,
		Email:  partner.Email,
		Role:   entity.RolePartner,
		Status: partner.Status,
	})
}

func (uc *AuthUseCase) AdminLogin(_ context.Context, input LoginInput) (*LoginOutput, error) {
	if uc.AdminEmail == "" || entity.NormalizeEmail(input.Email) != uc.AdminEmail {
		return nil, errInvalidCredentials
	}
	if !auth.CheckPasswordHash(input.Password, uc.AdminPasswordHash) {
		return nil, errInvalidCredentials
	}

	return uc.issue(auth.Identity{
		UserID: adminUserID,
		Name:   "Administrador",
		Email:  uc.AdminEmail,
		Role:   entity.RoleAdmin,
		Status: entity.PartnerApproved,
	})
}

func (uc *AuthUseCase) issue(id auth.Identity) (*LoginOutput, error) {
	token, expiresAt, err := uc.Tokens.Issue(id)
	if err != nil {
		return nil, &TechnicalError{Code: "TOKEN_ERROR", Message: "falha ao emitir sessão", Err: err}
	}
	return &LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    id.UserID,
		Name:      id.Name,
		Role:      id.Role,
		Status:    id.Status,
	}, nil
}
